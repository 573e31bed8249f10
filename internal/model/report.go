package model

import "time"

// ScoreResult is the scoring engine output: a bounded integer score and
// the reason strings for every rule that triggered, in rule order.
type ScoreResult struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Tier is one advisory band of the narrative generator.
type Tier struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Advice string `json:"advice"`
}

// AnalysisReport is the full result of analyzing one symbol: the score,
// the narrative tier, and the raw data the presentation layer charts.
type AnalysisReport struct {
	Symbol   string `json:"symbol"`
	Period   string `json:"period"`
	Interval string `json:"interval"`

	Price     float64     `json:"price"`
	Result    ScoreResult `json:"result"`
	Tier      Tier        `json:"tier"`
	Narrative string      `json:"narrative"`
	Metadata  Metadata    `json:"metadata"`

	Bars      []Bar               `json:"bars"`
	Snapshots []IndicatorSnapshot `json:"snapshots"`

	GeneratedAt time.Time `json:"generated_at"`
}
