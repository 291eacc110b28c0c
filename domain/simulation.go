package domain

type SimulationParameters struct {
	BaseValue  float64 `json:"baseValue"`
	Multiplier float64 `json:"multiplier"`
}

type SimulationInput struct {
	ScenarioType string               `json:"scenarioType"`
	Parameters   SimulationParameters `json:"parameters"`
}

type CostBreakdown struct {
	Labor     float64 `json:"labor"`
	Materials float64 `json:"materials"`
	Overhead  float64 `json:"overhead"`
}

type SimulationResult struct {
	RunID           string        `json:"runId"`
	ScenarioType    string        `json:"scenarioType"`
	EstimatedImpact float64       `json:"estimatedImpact"`
	Confidence      float64       `json:"confidence"`
	Breakdown       CostBreakdown `json:"breakdown"`
	Recommendations []string      `json:"recommendations"`
}
