package service

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"asset-forecast/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ForecastEngine holds the pure forecasting operations. It keeps no state
// between calls apart from its configuration, clock and random source.
type ForecastEngine struct {
	cfg EngineConfig
	now func() time.Time

	randMu sync.Mutex
	rng    *rand.Rand
}

// NewForecastEngine validates cfg and returns an engine on the wall clock.
func NewForecastEngine(cfg EngineConfig) (*ForecastEngine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	return &ForecastEngine{
		cfg: cfg,
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// WithClock replaces the clock used to pick the seasonal month.
func (e *ForecastEngine) WithClock(now func() time.Time) *ForecastEngine {
	e.now = now
	return e
}

// WithRandSource makes simulation confidence reproducible.
func (e *ForecastEngine) WithRandSource(src rand.Source) *ForecastEngine {
	e.randMu.Lock()
	e.rng = rand.New(src)
	e.randMu.Unlock()
	return e
}

func (e *ForecastEngine) Config() EngineConfig {
	return e.cfg
}

// BuildPredictionContext sorts a copy of obs chronologically and derives
// quarterly seasonal factors from revenue.
func BuildPredictionContext(
	obs []domain.HistoricalObservation,
	agg domain.OperationalAggregates,
) domain.PredictionContext {
	sorted := make([]domain.HistoricalObservation, len(obs))
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Period.Before(sorted[j].Period)
	})

	return domain.PredictionContext{
		Observations:        sorted,
		ActiveProjectCount:  agg.ActiveProjectCount,
		AverageProjectValue: agg.AverageProjectValue,
		SeasonalFactors:     quarterlyFactors(sorted),
		EquipmentAverageAge: agg.EquipmentAverageAge,
		TechnicianCount:     agg.TechnicianCount,
	}
}

func quarterLabel(m time.Month) string {
	return fmt.Sprintf("Q%d", (int(m)-1)/3+1)
}

func quarterlyFactors(obs []domain.HistoricalObservation) map[string]float64 {
	factors := map[string]float64{"Q1": 1, "Q2": 1, "Q3": 1, "Q4": 1}
	if len(obs) == 0 {
		return factors
	}

	var total float64
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, o := range obs {
		q := quarterLabel(o.Period.Month())
		sums[q] += o.Revenue
		counts[q]++
		total += o.Revenue
	}
	overall := total / float64(len(obs))
	if overall <= 0 {
		return factors
	}
	for q, n := range counts {
		if f := sums[q] / float64(n) / overall; f > 0 {
			factors[q] = f
		}
	}
	return factors
}

// CalculateGrowthRate averages the period-over-period cost change across the
// last GrowthWindowMonths observations. It returns 0 with fewer than two
// observations or when any previous cost is zero.
func CalculateGrowthRate(obs []domain.HistoricalObservation) float64 {
	window := obs
	if len(window) > GrowthWindowMonths {
		window = window[len(window)-GrowthWindowMonths:]
	}
	if len(window) < 2 {
		return 0
	}

	var sum float64
	for i := 1; i < len(window); i++ {
		prev := window[i-1].Costs
		if prev == 0 {
			return 0
		}
		sum += (window[i].Costs - prev) / prev
	}
	return sum / float64(len(window)-1)
}

// ProjectQuarter is the three month projection. Negative results clamp to 0.
func ProjectQuarter(avgMonthlyCost, growthRate, seasonal float64) float64 {
	return math.Max(0, math.Round(avgMonthlyCost*3*(1+growthRate)*seasonal))
}

// ProjectYear is the twelve month projection. It intentionally ignores the
// seasonal multiplier; a full year already spans every season.
func ProjectYear(avgMonthlyCost, growthRate float64) float64 {
	return math.Max(0, math.Round(avgMonthlyCost*12*(1+growthRate)))
}

// PredictBudget projects next quarter and next year costs from pctx.
func (e *ForecastEngine) PredictBudget(pctx domain.PredictionContext) (domain.BudgetPrediction, error) {
	obs := pctx.Observations
	if len(obs) == 0 {
		return domain.BudgetPrediction{}, &InsufficientDataError{Operation: "predict budget", Required: 1, Got: 0}
	}

	window := obs
	if len(window) > BudgetWindowMonths {
		window = window[len(window)-BudgetWindowMonths:]
	}
	var total float64
	for _, o := range window {
		total += o.Costs
	}
	avgMonthlyCost := total / float64(len(window))

	// below -100% the projection would flip sign
	growthRate := math.Max(-1, CalculateGrowthRate(obs))

	now := e.now()
	seasonal := e.cfg.SeasonalMultiplier(now.Month())

	return domain.BudgetPrediction{
		NextQuarter: ProjectQuarter(avgMonthlyCost, growthRate, seasonal),
		NextYear:    ProjectYear(avgMonthlyCost, growthRate),
		Factors:     budgetFactors(pctx, growthRate),
		GeneratedAt: now,
	}, nil
}

func budgetFactors(pctx domain.PredictionContext, growthRate float64) []string {
	var factors []string
	if growthRate > GrowthFactorThreshold {
		factors = append(factors, fmt.Sprintf("Rising cost trend (+%.1f%% per month)", growthRate*100))
	}
	if pctx.EquipmentAverageAge > EquipmentAgeThreshold {
		factors = append(factors, fmt.Sprintf("Aging equipment (average %.1f years) increases maintenance spend", pctx.EquipmentAverageAge))
	}
	if pctx.ActiveProjectCount > ProjectVolumeThreshold {
		factors = append(factors, fmt.Sprintf("High project volume (%d active projects)", pctx.ActiveProjectCount))
	}
	return append(factors, "Seasonal demand variation")
}

// RunSimulation scales baseValue by multiplier and splits the impact across
// cost centres. Recommendations come from configuration, not from the inputs.
func (e *ForecastEngine) RunSimulation(input domain.SimulationInput) (domain.SimulationResult, error) {
	scenarioType := strings.TrimSpace(input.ScenarioType)
	if scenarioType == "" {
		return domain.SimulationResult{}, invalid("scenarioType", "must not be empty")
	}
	p := input.Parameters
	if !isFinite(p.BaseValue) {
		return domain.SimulationResult{}, invalid("baseValue", "must be a finite number")
	}
	if !isFinite(p.Multiplier) {
		return domain.SimulationResult{}, invalid("multiplier", "must be a finite number")
	}

	impact := math.Round(p.BaseValue * p.Multiplier)
	if !isFinite(impact) {
		return domain.SimulationResult{}, invalid("parameters", "impact overflows")
	}

	return domain.SimulationResult{
		RunID:           uuid.NewString(),
		ScenarioType:    scenarioType,
		EstimatedImpact: impact,
		Confidence:      e.confidence(),
		Breakdown:       splitImpact(impact, e.cfg.CostSplit),
		Recommendations: e.cfg.recommendationsFor(scenarioType),
	}, nil
}

// splitImpact rounds labor and materials to whole units; overhead takes the
// remainder so the parts always add up to impact.
func splitImpact(impact float64, split CostSplit) domain.CostBreakdown {
	total := decimal.NewFromFloat(impact)
	labor := total.Mul(decimal.NewFromFloat(split.Labor)).Round(0)
	materials := total.Mul(decimal.NewFromFloat(split.Materials)).Round(0)
	overhead := total.Sub(labor).Sub(materials)

	return domain.CostBreakdown{
		Labor:     labor.InexactFloat64(),
		Materials: materials.InexactFloat64(),
		Overhead:  overhead.InexactFloat64(),
	}
}

func (e *ForecastEngine) confidence() float64 {
	e.randMu.Lock()
	u := e.rng.Float64()
	e.randMu.Unlock()
	return e.cfg.ConfidenceMin + u*(e.cfg.ConfidenceMax-e.cfg.ConfidenceMin)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
