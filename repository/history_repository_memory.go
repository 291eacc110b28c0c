package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"asset-forecast/domain"
)

// HistoryRepositoryMemory is an in-memory HistoryRepository.
type HistoryRepositoryMemory struct {
	mu           sync.RWMutex
	observations []domain.HistoricalObservation
	aggregates   domain.OperationalAggregates
}

// NewHistoryRepositoryMemory creates a repository preloaded with the seed year.
func NewHistoryRepositoryMemory() *HistoryRepositoryMemory {
	return NewHistoryRepositoryMemoryFrom(SeedObservations(), SeedAggregates())
}

func NewHistoryRepositoryMemoryFrom(
	obs []domain.HistoricalObservation,
	agg domain.OperationalAggregates,
) *HistoryRepositoryMemory {
	r := &HistoryRepositoryMemory{aggregates: agg}
	for _, o := range obs {
		r.insert(o)
	}
	return r
}

func (r *HistoryRepositoryMemory) Observations(
	ctx context.Context,
	months int,
) ([]domain.HistoricalObservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	window := trailing(r.observations, months)
	out := make([]domain.HistoricalObservation, len(window))
	copy(out, window)
	return out, nil
}

func (r *HistoryRepositoryMemory) Aggregates(ctx context.Context) (domain.OperationalAggregates, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.aggregates, nil
}

// SaveObservation inserts or replaces the observation for its period.
func (r *HistoryRepositoryMemory) SaveObservation(ctx context.Context, obs domain.HistoricalObservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(obs)
	return nil
}

func (r *HistoryRepositoryMemory) SaveAggregates(ctx context.Context, agg domain.OperationalAggregates) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aggregates = agg
	return nil
}

func (r *HistoryRepositoryMemory) insert(obs domain.HistoricalObservation) {
	for i := range r.observations {
		if r.observations[i].Period.Equal(obs.Period) {
			r.observations[i] = obs
			return
		}
	}
	r.observations = append(r.observations, obs)
	sort.SliceStable(r.observations, func(i, j int) bool {
		return r.observations[i].Period.Before(r.observations[j].Period)
	})
}

// seedCosts follows the cooling-season peak of an HVAC service business.
var seedCosts = [12]float64{
	118000, 112000, 101000, 96000, 108000, 126000,
	138000, 142000, 121000, 104000, 109000, 117000,
}

// SeedObservations returns a deterministic twelve month history (calendar 2024).
// It doubles as the default context when no provider data is available.
func SeedObservations() []domain.HistoricalObservation {
	obs := make([]domain.HistoricalObservation, 0, len(seedCosts))
	for i, cost := range seedCosts {
		utilization := 0.55 + 0.3*(cost-96000)/(142000-96000)
		obs = append(obs, domain.HistoricalObservation{
			Period:               time.Date(2024, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC),
			Revenue:              cost * 1.28,
			Costs:                cost,
			LaborHours:           cost / 42,
			EquipmentUtilization: utilization,
		})
	}
	return obs
}

func SeedAggregates() domain.OperationalAggregates {
	return domain.OperationalAggregates{
		ActiveProjectCount:  24,
		AverageProjectValue: 45000,
		EquipmentAverageAge: 8.2,
		TechnicianCount:     18,
	}
}
