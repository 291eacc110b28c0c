package domain

import "time"

type BudgetPrediction struct {
	NextQuarter float64   `json:"nextQuarter"`
	NextYear    float64   `json:"nextYear"`
	Factors     []string  `json:"factors"`               // most significant first
	Explanation string    `json:"explanation,omitempty"` // advisor narrative
	GeneratedAt time.Time `json:"generatedAt"`
}
