package domain

import "time"

// HistoricalObservation is one accounting period (one month) of financial data.
type HistoricalObservation struct {
	Period               time.Time `json:"period"`
	Revenue              float64   `json:"revenue"`
	Costs                float64   `json:"costs"`
	LaborHours           float64   `json:"laborHours"`
	EquipmentUtilization float64   `json:"equipmentUtilization"` // fraction in [0,1]
}

// OperationalAggregates are the auxiliary figures the history provider returns
// alongside the observations.
type OperationalAggregates struct {
	ActiveProjectCount  int     `json:"activeProjectCount"`
	AverageProjectValue float64 `json:"averageProjectValue"`
	EquipmentAverageAge float64 `json:"equipmentAverageAge"` // years
	TechnicianCount     int     `json:"technicianCount"`
}

// PredictionContext is rebuilt for every prediction request.
type PredictionContext struct {
	Observations        []HistoricalObservation // oldest first
	ActiveProjectCount  int
	AverageProjectValue float64
	SeasonalFactors     map[string]float64 // "Q1".."Q4"
	EquipmentAverageAge float64
	TechnicianCount     int
}
