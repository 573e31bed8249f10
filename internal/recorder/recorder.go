package recorder

import (
	"time"

	"EquityScope/internal/model"
)

// AnalysisRecord is one persisted analysis result.
type AnalysisRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Symbol    string    `json:"symbol"`
	Period    string    `json:"period"`
	Interval  string    `json:"interval"`
	Price     float64   `json:"price"`
	Score     int       `json:"score"`
	TierKey   string    `json:"tier"`
	Reasons   []string  `json:"reasons"`

	RSI        *float64 `json:"rsi,omitempty"`
	MFI        *float64 `json:"mfi,omitempty"`
	StochK     *float64 `json:"stoch_k,omitempty"`
	MACD       *float64 `json:"macd,omitempty"`
	ShortFloat *float64 `json:"short_float,omitempty"`
}

// FromReport flattens an AnalysisReport into a record.
func FromReport(r *model.AnalysisReport) *AnalysisRecord {
	rec := &AnalysisRecord{
		Timestamp: r.GeneratedAt,
		Symbol:    r.Symbol,
		Period:    r.Period,
		Interval:  r.Interval,
		Price:     r.Price,
		Score:     r.Result.Score,
		TierKey:   r.Tier.Key,
		Reasons:   r.Result.Reasons,
	}
	if n := len(r.Snapshots); n > 0 {
		last := r.Snapshots[n-1]
		rec.RSI = last.RSI
		rec.MFI = last.MFI
		rec.StochK = last.StochK
		rec.MACD = last.MACD
	}
	rec.ShortFloat = r.Metadata.ShortPercentOfFloat
	return rec
}

// Recorder persists analysis history.
type Recorder interface {
	RecordAnalysis(rec *AnalysisRecord) error
	RecentBySymbol(symbol string, limit int) ([]AnalysisRecord, error)
	Close() error
}
