package model

// Metadata holds point-in-time company facts from the data provider.
// Fields are pointers because any of them may be absent for a given
// symbol (ETFs have no short float, young companies no trailing EPS).
// Consumers apply their own per-rule defaults.
type Metadata struct {
	Symbol   string `json:"symbol"`
	LongName string `json:"long_name,omitempty"`

	ShortPercentOfFloat *float64 `json:"short_percent_of_float,omitempty"`
	DaysToCover         *float64 `json:"days_to_cover,omitempty"`
	TrailingPE          *float64 `json:"trailing_pe,omitempty"`
	TrailingEPS         *float64 `json:"trailing_eps,omitempty"`
	MarketCap           *float64 `json:"market_cap,omitempty"`
	RevenueGrowth       *float64 `json:"revenue_growth,omitempty"`
	DebtToEquity        *float64 `json:"debt_to_equity,omitempty"`
	FiftyTwoWeekHigh    *float64 `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow     *float64 `json:"fifty_two_week_low,omitempty"`

	RecommendationKey string `json:"recommendation_key,omitempty"`
}
