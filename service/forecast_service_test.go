package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"asset-forecast/domain"
	"asset-forecast/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockHistoryRepository struct {
	Obs            []domain.HistoricalObservation
	Agg            domain.OperationalAggregates
	ForceError     bool
	ObsCalls       int
	RequestedMonth int
}

func (m *MockHistoryRepository) Observations(ctx context.Context, months int) ([]domain.HistoricalObservation, error) {
	m.ObsCalls++
	m.RequestedMonth = months
	if m.ForceError {
		return nil, errors.New("provider down")
	}
	return m.Obs, nil
}

func (m *MockHistoryRepository) Aggregates(ctx context.Context) (domain.OperationalAggregates, error) {
	return m.Agg, nil
}

type failingCache struct{}

func (failingCache) Get(key string) (string, bool) { return "", false }

func (failingCache) Set(key, value string, ttl time.Duration) error {
	return errors.New("cache unavailable")
}

type serviceFixture struct {
	service *ForecastService
	engine  *ForecastEngine
	history *MockHistoryRepository
	cache   *repository.MemoryCache
	clock   *time.Time
}

func newServiceFixture(t *testing.T) serviceFixture {
	t.Helper()
	now := time.Date(2025, time.July, 1, 8, 0, 0, 0, time.UTC)
	clock := &now
	nowFn := func() time.Time { return *clock }

	engine := newTestEngine(t, time.July)
	provider := &MockHistoryRepository{Obs: history(100, 110, 121), Agg: domain.OperationalAggregates{ActiveProjectCount: 3}}
	cache := repository.NewMemoryCacheWithClock(nowFn)
	svc := NewForecastService(engine, provider, repository.NewScenarioCatalogMemory(), cache, nil)

	return serviceFixture{service: svc, engine: engine, history: provider, cache: cache, clock: clock}
}

func TestGetBudgetPrediction_ReadThrough(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	first, err := f.service.GetBudgetPrediction(ctx)
	require.NoError(t, err)
	assert.Equal(t, 455.0, first.NextQuarter)
	assert.Equal(t, HistoryLookbackMonths, f.history.RequestedMonth)

	second, err := f.service.GetBudgetPrediction(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.history.ObsCalls, "second call should be served from cache")
	assert.Equal(t, first.NextQuarter, second.NextQuarter)
	assert.Equal(t, first.Factors, second.Factors)
}

func TestGetBudgetPrediction_RecomputesAfterTTL(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.GetBudgetPrediction(ctx)
	require.NoError(t, err)

	f.history.Obs = history(200, 200, 200)
	*f.clock = f.clock.Add(DefaultCacheTTL)

	refreshed, err := f.service.GetBudgetPrediction(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.history.ObsCalls)
	assert.Equal(t, 750.0, refreshed.NextQuarter)
}

func TestGetBudgetPrediction_FallsBackToDefaultContext(t *testing.T) {
	f := newServiceFixture(t)
	f.history.ForceError = true

	prediction, err := f.service.GetBudgetPrediction(context.Background())
	require.NoError(t, err)

	expected, err := f.engine.PredictBudget(DefaultPredictionContext())
	require.NoError(t, err)
	assert.Equal(t, expected.NextQuarter, prediction.NextQuarter)
	assert.Equal(t, expected.NextYear, prediction.NextYear)

	f.history.ForceError = false
	f.history.Obs = nil
	f.cache.Delete(BudgetCacheKey)
	prediction, err = f.service.GetBudgetPrediction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected.NextQuarter, prediction.NextQuarter)
}

func TestGetBudgetPrediction_IgnoresCorruptCacheEntry(t *testing.T) {
	f := newServiceFixture(t)
	require.NoError(t, f.cache.Set(BudgetCacheKey, "{not json", time.Hour))

	prediction, err := f.service.GetBudgetPrediction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 455.0, prediction.NextQuarter)
	assert.Equal(t, 1, f.history.ObsCalls)
}

func TestGetBudgetPrediction_CacheWriteFailureIsNotFatal(t *testing.T) {
	engine := newTestEngine(t, time.July)
	provider := &MockHistoryRepository{Obs: history(100, 110, 121)}
	svc := NewForecastService(engine, provider, repository.NewScenarioCatalogMemory(), failingCache{}, nil)

	_, err := svc.GetBudgetPrediction(context.Background())
	require.NoError(t, err)
}

func TestGetBudgetPrediction_AttachesFallbackExplanation(t *testing.T) {
	engine := newTestEngine(t, time.July)
	provider := &MockHistoryRepository{Obs: history(100, 110, 121)}
	svc := NewForecastService(engine, provider, repository.NewScenarioCatalogMemory(),
		repository.NewMemoryCache(), NewAdvisorService(AdvisorOptions{}))

	prediction, err := svc.GetBudgetPrediction(context.Background())
	require.NoError(t, err)
	assert.Contains(t, prediction.Explanation, "$455")
}

func TestGetImpactScenarios_Idempotent(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	first, err := f.service.GetImpactScenarios(ctx)
	require.NoError(t, err)
	second, err := f.service.GetImpactScenarios(ctx)
	require.NoError(t, err)

	require.Len(t, first, 6)
	assert.Equal(t, first, second)
	for _, s := range first {
		assert.GreaterOrEqual(t, s.Probability, 0.0)
		assert.LessOrEqual(t, s.Probability, 1.0)
	}
	_, cached := f.cache.Get(ScenariosCacheKey)
	assert.True(t, cached)
}

func TestWarmCache_WritesBothKeys(t *testing.T) {
	f := newServiceFixture(t)

	require.NoError(t, f.service.WarmCache(context.Background()))

	_, ok := f.cache.Get(BudgetCacheKey)
	assert.True(t, ok)
	_, ok = f.cache.Get(ScenariosCacheKey)
	assert.True(t, ok)

	require.NoError(t, f.service.WarmCache(context.Background()))
	assert.Equal(t, 2, f.history.ObsCalls, "warming ignores fresh entries")
}

func TestForecastService_DelegatesCalculators(t *testing.T) {
	f := newServiceFixture(t)

	roi, err := f.service.CalculateROI(domain.ROIInput{InitialInvestment: 100, ExpectedReturns: []float64{110}, TimeframeInPeriods: 1})
	require.NoError(t, err)
	assert.Equal(t, 10.0, roi.ROI)

	sim, err := f.service.RunSimulation(domain.SimulationInput{ScenarioType: "x", Parameters: domain.SimulationParameters{BaseValue: 1000, Multiplier: 2}})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, sim.EstimatedImpact)
}
