package model

import "time"

// IndicatorSnapshot holds the indicator readings attached to one bar.
// Every indicator field is a pointer: nil means the reading could not be
// computed (insufficient history), and scoring rules that depend on it
// are skipped rather than fed a zero.
type IndicatorSnapshot struct {
	Time  time.Time `json:"time"`
	Close float64   `json:"close"`

	SMAShort  *float64 `json:"sma_short,omitempty"`
	SMAMedium *float64 `json:"sma_medium,omitempty"`
	SMALong   *float64 `json:"sma_long,omitempty"`

	RSI        *float64 `json:"rsi,omitempty"`
	MACD       *float64 `json:"macd,omitempty"`
	MACDSignal *float64 `json:"macd_signal,omitempty"`
	MACDHist   *float64 `json:"macd_hist,omitempty"`
	StochK     *float64 `json:"stoch_k,omitempty"`
	StochD     *float64 `json:"stoch_d,omitempty"`

	MFI *float64 `json:"mfi,omitempty"`
	OBV *float64 `json:"obv,omitempty"`
	// OBVLookback is the OBV reading from the configured lookback window
	// earlier (nil until enough history has accumulated).
	OBVLookback *float64 `json:"obv_lookback,omitempty"`

	BollUpper  *float64 `json:"boll_upper,omitempty"`
	BollMiddle *float64 `json:"boll_middle,omitempty"`
	BollLower  *float64 `json:"boll_lower,omitempty"`
}

// Float returns a pointer to v. Convenience for building snapshots in tests.
func Float(v float64) *float64 { return &v }
