package repository

import (
	"context"

	"asset-forecast/domain"
)

// ScenarioRepository supplies the impact-scenario catalog in display order.
type ScenarioRepository interface {
	Scenarios(ctx context.Context) ([]domain.ImpactScenario, error)
}

// ScenarioCatalogMemory serves a fixed catalog.
type ScenarioCatalogMemory struct {
	catalog []domain.ImpactScenario
}

// NewScenarioCatalogMemory returns the built-in six entry catalog.
func NewScenarioCatalogMemory() *ScenarioCatalogMemory {
	return NewScenarioCatalogMemoryFrom(seedScenarios)
}

func NewScenarioCatalogMemoryFrom(catalog []domain.ImpactScenario) *ScenarioCatalogMemory {
	c := make([]domain.ImpactScenario, len(catalog))
	copy(c, catalog)
	return &ScenarioCatalogMemory{catalog: c}
}

// Scenarios returns a copy so callers cannot reorder the catalog.
func (r *ScenarioCatalogMemory) Scenarios(ctx context.Context) ([]domain.ImpactScenario, error) {
	out := make([]domain.ImpactScenario, len(r.catalog))
	copy(out, r.catalog)
	return out, nil
}

var seedScenarios = []domain.ImpactScenario{
	{
		ID:              "1",
		Action:          "Replace aging rooftop units",
		Description:     "Swap the five oldest rooftop units before peak season to cut emergency repair callouts.",
		FinancialImpact: 45000,
		Timeframe:       "12 months",
		Probability:     0.85,
		Category:        domain.CategorySavings,
		Urgency:         domain.UrgencyShortTerm,
	},
	{
		ID:              "2",
		Action:          "Defer preventive maintenance",
		Description:     "Skipping the spring maintenance cycle raises the chance of compressor failures in July and August.",
		FinancialImpact: -28000,
		Timeframe:       "3 months",
		Probability:     0.7,
		Category:        domain.CategoryRisk,
		Urgency:         domain.UrgencyImmediate,
	},
	{
		ID:              "3",
		Action:          "Hire two seasonal technicians",
		Description:     "Extra summer capacity reduces overtime but adds payroll and onboarding cost.",
		FinancialImpact: -18500,
		Timeframe:       "6 months",
		Probability:     0.9,
		Category:        domain.CategoryCost,
		Urgency:         domain.UrgencyShortTerm,
	},
	{
		ID:              "4",
		Action:          "Renegotiate refrigerant supply contract",
		Description:     "Lock in annual pricing with the primary supplier ahead of the expected price increase.",
		FinancialImpact: 12000,
		Timeframe:       "1 month",
		Probability:     0.6,
		Category:        domain.CategorySavings,
		Urgency:         domain.UrgencyImmediate,
	},
	{
		ID:              "5",
		Action:          "Route optimization for field crews",
		Description:     "Cluster inspection visits by area to reduce drive time and fuel spend.",
		FinancialImpact: 22000,
		Timeframe:       "12 months",
		Probability:     0.75,
		Category:        domain.CategorySavings,
		Urgency:         domain.UrgencyLongTerm,
	},
	{
		ID:              "6",
		Action:          "Regulatory refrigerant phase-out",
		Description:     "Legacy units on phased-out refrigerants will need retrofits or replacement within two years.",
		FinancialImpact: -60000,
		Timeframe:       "24 months",
		Probability:     0.5,
		Category:        domain.CategoryRisk,
		Urgency:         domain.UrgencyLongTerm,
	},
}
