package service

import (
	"fmt"
	"math"
	"time"
)

// CostSplit allocates a simulated impact across cost centres. Shares must sum to 1.
type CostSplit struct {
	Labor     float64
	Materials float64
	Overhead  float64
}

// EngineConfig carries the business tables the engine applies. Everything here
// is data so deployments can supply their own seasonal curve and policies.
type EngineConfig struct {
	// SeasonalCurve maps a calendar month to its demand multiplier.
	// Months without an entry use 1.0.
	SeasonalCurve map[time.Month]float64
	CostSplit     CostSplit
	// Recommendations are returned by every simulation unless
	// ScenarioRecommendations has an entry for the scenario type.
	Recommendations         []string
	ScenarioRecommendations map[string][]string
	DiscountRate            float64
	ConfidenceMin           float64
	ConfidenceMax           float64
}

// DefaultSeasonalCurve is the demand curve of an HVAC service business:
// winter heating calls, a spring lull and the cooling peak in July and August.
func DefaultSeasonalCurve() map[time.Month]float64 {
	return map[time.Month]float64{
		time.January:   1.10,
		time.February:  1.05,
		time.March:     0.90,
		time.April:     0.85,
		time.May:       0.95,
		time.June:      1.15,
		time.July:      1.25,
		time.August:    1.25,
		time.September: 1.05,
		time.October:   0.90,
		time.November:  0.95,
		time.December:  1.05,
	}
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SeasonalCurve: DefaultSeasonalCurve(),
		CostSplit: CostSplit{
			Labor:     0.45,
			Materials: 0.30,
			Overhead:  0.25,
		},
		Recommendations: []string{
			"Schedule preventive maintenance ahead of the projected peak",
			"Review technician allocation against forecast demand",
			"Lock in material pricing with key suppliers",
		},
		DiscountRate:  DefaultDiscountRate,
		ConfidenceMin: MinConfidence,
		ConfidenceMax: MaxConfidence,
	}
}

// Validate checks the tables for values the engine cannot apply.
func (c EngineConfig) Validate() error {
	for month, m := range c.SeasonalCurve {
		if month < time.January || month > time.December {
			return fmt.Errorf("seasonal curve: unknown month %d", month)
		}
		if !(m > 0) || math.IsInf(m, 0) {
			return fmt.Errorf("seasonal curve: multiplier for %s must be positive, got %v", month, m)
		}
	}

	split := c.CostSplit
	if split.Labor < 0 || split.Materials < 0 || split.Overhead < 0 {
		return fmt.Errorf("cost split: shares must not be negative")
	}
	if sum := split.Labor + split.Materials + split.Overhead; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("cost split: shares must sum to 1, got %.4f", sum)
	}

	if c.DiscountRate <= -1 || math.IsNaN(c.DiscountRate) {
		return fmt.Errorf("discount rate must be greater than -1, got %v", c.DiscountRate)
	}
	if c.ConfidenceMin < 0 || c.ConfidenceMax > 1 || c.ConfidenceMin > c.ConfidenceMax {
		return fmt.Errorf("confidence bounds [%v, %v] must lie within [0,1]", c.ConfidenceMin, c.ConfidenceMax)
	}
	return nil
}

// SeasonalMultiplier returns the curve value for month, 1.0 when unset.
func (c EngineConfig) SeasonalMultiplier(month time.Month) float64 {
	if m, ok := c.SeasonalCurve[month]; ok {
		return m
	}
	return 1.0
}

func (c EngineConfig) recommendationsFor(scenarioType string) []string {
	recs, ok := c.ScenarioRecommendations[scenarioType]
	if !ok {
		recs = c.Recommendations
	}
	out := make([]string, len(recs))
	copy(out, recs)
	return out
}
