package service

import (
	"errors"
	"math"
	"testing"
	"time"

	"asset-forecast/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateROI_BreakEvenIsZero(t *testing.T) {
	engine := newTestEngine(t, time.July)

	result, err := engine.CalculateROI(domain.ROIInput{
		InitialInvestment:  50000,
		ExpectedReturns:    []float64{10000, 15000, 25000},
		TimeframeInPeriods: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.ROI)
	assert.Equal(t, 3, result.PaybackPeriod)
	assert.InDelta(t, 0.0, result.IRR, 0.01)
	assert.Less(t, result.NPV, 0.0)
}

func TestCalculateROI_ImmediatePayback(t *testing.T) {
	engine := newTestEngine(t, time.July)

	result, err := engine.CalculateROI(domain.ROIInput{
		InitialInvestment:  1000,
		ExpectedReturns:    []float64{1000, 200},
		TimeframeInPeriods: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.PaybackPeriod)
	assert.Equal(t, 20.0, result.ROI)
}

func TestCalculateROI_NeverPaysBack(t *testing.T) {
	engine := newTestEngine(t, time.July)

	result, err := engine.CalculateROI(domain.ROIInput{
		InitialInvestment:  1000,
		ExpectedReturns:    []float64{100, 100, 100},
		TimeframeInPeriods: 36,
	})
	require.NoError(t, err)
	assert.Equal(t, 36, result.PaybackPeriod)
	assert.Equal(t, -70.0, result.ROI)
}

func TestCalculateROI_SinglePeriodIRR(t *testing.T) {
	engine := newTestEngine(t, time.July)

	result, err := engine.CalculateROI(domain.ROIInput{
		InitialInvestment:  100,
		ExpectedReturns:    []float64{110},
		TimeframeInPeriods: 1,
	})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, result.IRR, 0.01)
	// 110 / 1.08 - 100
	assert.Equal(t, 1.85, result.NPV)
}

func TestCalculateROI_InvalidInvestment(t *testing.T) {
	engine := newTestEngine(t, time.July)

	for _, inv := range []float64{0, -500, math.NaN(), math.Inf(1)} {
		_, err := engine.CalculateROI(domain.ROIInput{
			InitialInvestment: inv,
			ExpectedReturns:   []float64{100},
		})
		var invalidErr *InvalidInputError
		require.True(t, errors.As(err, &invalidErr), "investment %v", inv)
		assert.Equal(t, "initialInvestment", invalidErr.Field)
	}
}

func TestCalculateROI_InvalidReturns(t *testing.T) {
	engine := newTestEngine(t, time.July)

	_, err := engine.CalculateROI(domain.ROIInput{
		InitialInvestment: 100,
		ExpectedReturns:   []float64{50, math.NaN()},
	})
	var invalidErr *InvalidInputError
	require.True(t, errors.As(err, &invalidErr))
	assert.Equal(t, "expectedReturns", invalidErr.Field)

	_, err = engine.CalculateROI(domain.ROIInput{
		InitialInvestment:  100,
		ExpectedReturns:    []float64{50},
		TimeframeInPeriods: -1,
	})
	assert.True(t, errors.As(err, &invalidErr))
}

func TestNPV_UsesPerPeriodDiscount(t *testing.T) {
	assert.InDelta(t, 0.0, NPV(100, []float64{108}, 0.08), 1e-9)
	assert.InDelta(t, 0.0, NPV(100, []float64{8, 108}, 0.08), 1e-9)
}

func TestIRR_MultiPeriod(t *testing.T) {
	// 1000 out, 400 back for three periods: ~9.7%
	rate := IRR([]float64{-1000, 400, 400, 400})
	assert.InDelta(t, 0.0970, rate, 0.0005)
	assert.InDelta(t, 0.0, NPV(1000, []float64{400, 400, 400}, rate), 0.5)
}

func TestIRR_NoRootStaysFinite(t *testing.T) {
	rate := IRR([]float64{100, 100})
	assert.False(t, math.IsNaN(rate))
	assert.False(t, math.IsInf(rate, 0))
}

func TestIRR_NoInflowIsTotalLoss(t *testing.T) {
	assert.Equal(t, IRRMinRate, IRR([]float64{-100}))
	assert.Equal(t, IRRMinRate, IRR([]float64{-100, 0, 0}))
	assert.Equal(t, IRRMinRate, IRR([]float64{-100, -5, 0}))
}

func TestCalculateROI_TotalLoss(t *testing.T) {
	engine := newTestEngine(t, time.July)

	for _, returns := range [][]float64{nil, {0, 0}} {
		result, err := engine.CalculateROI(domain.ROIInput{
			InitialInvestment:  100,
			ExpectedReturns:    returns,
			TimeframeInPeriods: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, -100.0, result.ROI)
		assert.Equal(t, -100.0, result.NPV)
		assert.Equal(t, -99.0, result.IRR, "returns %v", returns)
	}
}

func TestPaybackPeriod_EmptyReturns(t *testing.T) {
	assert.Equal(t, 5, PaybackPeriod(100, nil, 5))
}
