package service

import (
	"fmt"
	"math"

	"asset-forecast/domain"
)

// roundTo2Decimals rounds a value to two decimals.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// CalculateROI analyses an investment against its expected per-period returns.
func (e *ForecastEngine) CalculateROI(input domain.ROIInput) (domain.ROIResult, error) {
	if err := validateROIInput(input); err != nil {
		return domain.ROIResult{}, err
	}

	inv := input.InitialInvestment
	var sum float64
	for _, r := range input.ExpectedReturns {
		sum += r
	}

	return domain.ROIResult{
		ROI:           roundTo2Decimals((sum - inv) / inv * 100),
		PaybackPeriod: PaybackPeriod(inv, input.ExpectedReturns, input.TimeframeInPeriods),
		NPV:           roundTo2Decimals(NPV(inv, input.ExpectedReturns, e.cfg.DiscountRate)),
		IRR:           roundTo2Decimals(IRR(append([]float64{-inv}, input.ExpectedReturns...)) * 100),
	}, nil
}

func validateROIInput(input domain.ROIInput) error {
	if !isFinite(input.InitialInvestment) {
		return invalid("initialInvestment", "must be a finite number")
	}
	if input.InitialInvestment <= 0 {
		return invalid("initialInvestment", "must be greater than zero")
	}
	if input.InitialInvestment > MaxInvestmentAmount {
		return invalid("initialInvestment", fmt.Sprintf("exceeds the maximum of %.2f", MaxInvestmentAmount))
	}
	if input.TimeframeInPeriods < 0 {
		return invalid("timeframeInPeriods", "must not be negative")
	}
	if len(input.ExpectedReturns) > MaxReturnPeriods {
		return invalid("expectedReturns", fmt.Sprintf("at most %d periods are supported", MaxReturnPeriods))
	}
	for i, r := range input.ExpectedReturns {
		if !isFinite(r) {
			return invalid("expectedReturns", fmt.Sprintf("period %d is not a finite number", i+1))
		}
	}
	return nil
}

// PaybackPeriod is the first 1-based period whose cumulative return covers
// the investment, or timeframe when the series never does.
func PaybackPeriod(investment float64, returns []float64, timeframe int) int {
	var cumulative float64
	for i, r := range returns {
		cumulative += r
		if cumulative >= investment {
			return i + 1
		}
	}
	return timeframe
}

// NPV discounts returns[i] by (1+rate)^(i+1) and subtracts the investment.
func NPV(investment float64, returns []float64, rate float64) float64 {
	npv := -investment
	for i, r := range returns {
		npv += r / math.Pow(1+rate, float64(i+1))
	}
	return npv
}

// IRR solves for the rate that zeroes the NPV of cashFlows, where
// cashFlows[0] is the (negative) outlay at t=0. Newton-Raphson stops on a
// step below IRRTolerance or after IRRMaxIterations; either way the latest
// estimate is returned, so the result is an approximation. Without any
// positive inflow after t=0 the investment is a total loss and IRRMinRate is
// returned.
func IRR(cashFlows []float64) float64 {
	if !hasInflow(cashFlows) {
		return IRRMinRate
	}

	rate := IRRInitialGuess
	for i := 0; i < IRRMaxIterations; i++ {
		var npv, derivative float64
		for t, cf := range cashFlows {
			denom := math.Pow(1+rate, float64(t))
			npv += cf / denom
			derivative -= float64(t) * cf / (denom * (1 + rate))
		}
		if derivative == 0 || !isFinite(derivative) || !isFinite(npv) {
			return rate
		}

		next := rate - npv/derivative
		if !isFinite(next) {
			return rate
		}
		if next < IRRMinRate {
			next = IRRMinRate
		}
		if math.Abs(next-rate) < IRRTolerance {
			return next
		}
		rate = next
	}
	return rate
}

func hasInflow(cashFlows []float64) bool {
	for t := 1; t < len(cashFlows); t++ {
		if cashFlows[t] > 0 {
			return true
		}
	}
	return false
}
