package domain

type ScenarioCategory string

const (
	CategorySavings ScenarioCategory = "savings"
	CategoryCost    ScenarioCategory = "cost"
	CategoryRisk    ScenarioCategory = "risk"
)

type ScenarioUrgency string

const (
	UrgencyImmediate ScenarioUrgency = "immediate"
	UrgencyShortTerm ScenarioUrgency = "short-term"
	UrgencyLongTerm  ScenarioUrgency = "long-term"
)

// ImpactScenario is an entry of the what-if catalog. FinancialImpact is signed:
// positive is a net benefit, negative a net cost or risk exposure.
type ImpactScenario struct {
	ID              string           `json:"id"`
	Action          string           `json:"action"`
	Description     string           `json:"description"`
	FinancialImpact float64          `json:"financialImpact"`
	Timeframe       string           `json:"timeframe"`
	Probability     float64          `json:"probability"`
	Category        ScenarioCategory `json:"category"`
	Urgency         ScenarioUrgency  `json:"urgency"`
}
