package service

import "time"

const (
	BudgetWindowMonths     = 3  // observations averaged for the monthly cost base
	GrowthWindowMonths     = 6  // observations used for the growth rate
	HistoryLookbackMonths  = 12 // trailing months requested from the provider
	GrowthFactorThreshold  = 0.05
	EquipmentAgeThreshold  = 7.0 // years
	ProjectVolumeThreshold = 20

	DefaultDiscountRate = 0.08 // per period, for NPV
	IRRInitialGuess     = 0.10
	IRRMaxIterations    = 100
	IRRTolerance        = 0.0001
	IRRMinRate          = -0.99 // keeps (1+r) positive during Newton steps

	MinConfidence = 0.65
	MaxConfidence = 0.95

	MaxInvestmentAmount = 1_000_000_000.0
	MaxReturnPeriods    = 600

	DefaultCacheTTL   = 3600 * time.Second
	BudgetCacheKey    = "budget"
	ScenariosCacheKey = "scenarios"
)
