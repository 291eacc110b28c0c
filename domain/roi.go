package domain

type ROIInput struct {
	InitialInvestment  float64   `json:"initialInvestment"`
	ExpectedReturns    []float64 `json:"expectedReturns"`
	TimeframeInPeriods int       `json:"timeframeInPeriods"`
}

type ROIResult struct {
	ROI           float64 `json:"roi"`           // percent
	PaybackPeriod int     `json:"paybackPeriod"` // periods
	NPV           float64 `json:"npv"`
	IRR           float64 `json:"irr"` // percent, Newton-Raphson approximation
}
