package repository

import (
	"context"
	"errors"

	"asset-forecast/domain"
)

// ErrNotFound is returned when a provider has no record for the request.
var ErrNotFound = errors.New("record not found")

// HistoryRepository supplies monthly observations, oldest first, and the
// operational aggregates used to build a prediction context.
type HistoryRepository interface {
	Observations(ctx context.Context, months int) ([]domain.HistoricalObservation, error)
	Aggregates(ctx context.Context) (domain.OperationalAggregates, error)
}

// trailing returns the last n observations, or all of them when n <= 0.
func trailing(obs []domain.HistoricalObservation, n int) []domain.HistoricalObservation {
	if n <= 0 || n >= len(obs) {
		return obs
	}
	return obs[len(obs)-n:]
}

// HistoryWriter is implemented by providers that can be seeded.
type HistoryWriter interface {
	SaveObservation(ctx context.Context, obs domain.HistoricalObservation) error
	SaveAggregates(ctx context.Context, agg domain.OperationalAggregates) error
}
