package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"asset-forecast/domain"
	"asset-forecast/service"
)

const maxRequestBytes = 1 << 20

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

func (h *ForecastHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.service.GetBudgetPrediction(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, result)
}

// GetScenarios returns the catalog; ?limit=N keeps the top N entries.
func (h *ForecastHandler) GetScenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	scenarios, err := h.service.GetImpactScenarios(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if limit > 0 && limit < len(scenarios) {
		scenarios = scenarios[:limit]
	}
	writeJSON(w, scenarios)
}

func (h *ForecastHandler) RunSimulation(w http.ResponseWriter, r *http.Request) {
	var input domain.SimulationInput
	if !decodeJSONRequest(w, r, &input) {
		return
	}

	result, err := h.service.RunSimulation(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, result)
}

func (h *ForecastHandler) CalculateROI(w http.ResponseWriter, r *http.Request) {
	var input domain.ROIInput
	if !decodeJSONRequest(w, r, &input) {
		return
	}

	result, err := h.service.CalculateROI(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, result)
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// decodeJSONRequest enforces POST with a JSON body and writes the error
// response itself when it returns false.
func decodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(dst); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	var invalidErr *service.InvalidInputError
	var insufficientErr *service.InsufficientDataError
	switch {
	case errors.As(err, &invalidErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &insufficientErr):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.Printf("Error serving forecast request: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 response.
func writeJSON(w http.ResponseWriter, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
