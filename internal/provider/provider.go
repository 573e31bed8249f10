package provider

import (
	"errors"
	"fmt"
	"time"

	"EquityScope/internal/model"
)

// ErrDataUnavailable indicates the upstream source failed or returned no
// data. Callers must surface this instead of scoring an empty series.
var ErrDataUnavailable = errors.New("market data unavailable")

// Provider supplies raw bars and company metadata for a symbol.
type Provider interface {
	// FetchHistory returns the chronological bar sequence for the given
	// period token (e.g. "1y") and sampling interval (e.g. "1d").
	FetchHistory(symbol, period, interval string) ([]model.Bar, error)
	// FetchMetadata returns point-in-time company facts. Individual
	// missing fields are nil, never an error.
	FetchMetadata(symbol string) (model.Metadata, error)
	Name() string
}

// periodStart translates a period token into the start time of the window.
func periodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case "1mo":
		return now.AddDate(0, -1, 0), nil
	case "3mo":
		return now.AddDate(0, -3, 0), nil
	case "6mo":
		return now.AddDate(0, -6, 0), nil
	case "1y":
		return now.AddDate(-1, 0, 0), nil
	case "2y":
		return now.AddDate(-2, 0, 0), nil
	case "5y":
		return now.AddDate(-5, 0, 0), nil
	case "max":
		return now.AddDate(-30, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("unknown period token %q", period)
}
