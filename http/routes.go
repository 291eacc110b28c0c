package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter maps the forecast endpoints. Every route except the health check
// goes through the rate limiter.
func NewRouter(handler *ForecastHandler, limiter *RateLimiter) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", Health).Methods(http.MethodGet)

	limited := func(fn http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, fn)
	}

	api := router.PathPrefix("/forecast").Subrouter()
	api.Handle("/budget", limited(handler.GetBudget)).Methods(http.MethodGet)
	api.Handle("/scenarios", limited(handler.GetScenarios)).Methods(http.MethodGet)
	api.Handle("/simulate", limited(handler.RunSimulation)).Methods(http.MethodPost)
	api.Handle("/roi", limited(handler.CalculateROI)).Methods(http.MethodPost)

	return router
}
