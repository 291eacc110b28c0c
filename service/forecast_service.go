package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"asset-forecast/domain"
	"asset-forecast/repository"
)

// ForecastService puts a read-through cache and the data providers in front
// of the engine.
type ForecastService struct {
	engine    *ForecastEngine
	history   repository.HistoryRepository
	scenarios repository.ScenarioRepository
	cache     repository.CacheRepository
	advisor   *AdvisorService

	cacheTTL       time.Duration
	lookbackMonths int
}

// NewForecastService wires the engine to its collaborators. advisor may be nil.
func NewForecastService(
	engine *ForecastEngine,
	history repository.HistoryRepository,
	scenarios repository.ScenarioRepository,
	cache repository.CacheRepository,
	advisor *AdvisorService,
) *ForecastService {
	return &ForecastService{
		engine:         engine,
		history:        history,
		scenarios:      scenarios,
		cache:          cache,
		advisor:        advisor,
		cacheTTL:       DefaultCacheTTL,
		lookbackMonths: HistoryLookbackMonths,
	}
}

func (s *ForecastService) SetCacheTTL(ttl time.Duration) {
	s.cacheTTL = ttl
}

func (s *ForecastService) SetLookbackMonths(months int) {
	s.lookbackMonths = months
}

// GetBudgetPrediction serves the cached prediction while it is fresh and
// recomputes it otherwise.
func (s *ForecastService) GetBudgetPrediction(ctx context.Context) (domain.BudgetPrediction, error) {
	var cached domain.BudgetPrediction
	if s.readCache(BudgetCacheKey, &cached) {
		return cached, nil
	}
	return s.refreshBudget(ctx)
}

// GetImpactScenarios serves the scenario catalog through the cache.
func (s *ForecastService) GetImpactScenarios(ctx context.Context) ([]domain.ImpactScenario, error) {
	var cached []domain.ImpactScenario
	if s.readCache(ScenariosCacheKey, &cached) {
		return cached, nil
	}
	return s.refreshScenarios(ctx)
}

func (s *ForecastService) RunSimulation(input domain.SimulationInput) (domain.SimulationResult, error) {
	return s.engine.RunSimulation(input)
}

func (s *ForecastService) CalculateROI(input domain.ROIInput) (domain.ROIResult, error) {
	return s.engine.CalculateROI(input)
}

// WarmCache recomputes every cached key regardless of freshness.
func (s *ForecastService) WarmCache(ctx context.Context) error {
	if _, err := s.refreshBudget(ctx); err != nil {
		return fmt.Errorf("warming budget: %w", err)
	}
	if _, err := s.refreshScenarios(ctx); err != nil {
		return fmt.Errorf("warming scenarios: %w", err)
	}
	return nil
}

func (s *ForecastService) refreshBudget(ctx context.Context) (domain.BudgetPrediction, error) {
	pctx := s.loadContext(ctx)

	prediction, err := s.engine.PredictBudget(pctx)
	if err != nil {
		return domain.BudgetPrediction{}, err
	}
	if s.advisor != nil {
		prediction.Explanation = s.advisor.ExplainBudget(ctx, prediction)
	}

	s.writeCache(BudgetCacheKey, prediction)
	return prediction, nil
}

func (s *ForecastService) refreshScenarios(ctx context.Context) ([]domain.ImpactScenario, error) {
	scenarios, err := s.scenarios.Scenarios(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading scenarios: %w", err)
	}
	s.writeCache(ScenariosCacheKey, scenarios)
	return scenarios, nil
}

// loadContext builds the prediction context from the history provider. A
// failing or empty provider yields the default seed context so cold starts
// still produce a forecast.
func (s *ForecastService) loadContext(ctx context.Context) domain.PredictionContext {
	obs, err := s.history.Observations(ctx, s.lookbackMonths)
	if err != nil {
		log.Printf("Warning: history provider failed, using default context: %v", err)
		return DefaultPredictionContext()
	}
	if len(obs) == 0 {
		log.Printf("Warning: no history available, using default context")
		return DefaultPredictionContext()
	}

	agg, err := s.history.Aggregates(ctx)
	if err != nil {
		log.Printf("Warning: aggregates unavailable, using defaults: %v", err)
		agg = repository.SeedAggregates()
	}
	return BuildPredictionContext(obs, agg)
}

// DefaultPredictionContext is the documented cold-start context built from
// the seed year.
func DefaultPredictionContext() domain.PredictionContext {
	return BuildPredictionContext(repository.SeedObservations(), repository.SeedAggregates())
}

func (s *ForecastService) readCache(key string, dst interface{}) bool {
	raw, ok := s.cache.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("Warning: discarding unreadable cache entry %q: %v", key, err)
		return false
	}
	return true
}

// writeCache is best effort; a failed write only costs a recompute later.
func (s *ForecastService) writeCache(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Warning: failed to encode cache entry %q: %v", key, err)
		return
	}
	if err := s.cache.Set(key, string(data), s.cacheTTL); err != nil {
		log.Printf("Warning: failed to write cache entry %q: %v", key, err)
	}
}
