package engine

import (
	"errors"
	"fmt"
	"math"

	"EquityScope/internal/model"
)

// ErrInsufficientData is returned when fewer than two adjacent snapshots
// are available. Scoring a single bar would fabricate a crossover history
// that does not exist.
var ErrInsufficientData = errors.New("insufficient data: need at least two bars")

// Engine scores an indicator snapshot against its predecessor using a
// fixed, configurable rule set. It holds no mutable state; Score is a
// pure function of its inputs.
type Engine struct {
	cfg Config
}

// New creates an Engine with the given configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Score evaluates every rule against the current and previous snapshots
// plus the company metadata. cur and prev must come from adjacent bars.
// Rules whose inputs are missing are skipped; every triggered rule
// appends exactly one reason, in fixed dimension order. The result is
// clamped to [0,100].
func (e *Engine) Score(cur, prev *model.IndicatorSnapshot, meta model.Metadata) (model.ScoreResult, error) {
	if cur == nil || prev == nil {
		return model.ScoreResult{}, ErrInsufficientData
	}

	reasons := []string{}
	var trend, momentum, institution, shortRisk float64

	// --- Trend: long-term direction ---

	if cur.SMAShort != nil && cur.SMALong != nil {
		switch {
		case *cur.SMAShort > *cur.SMALong:
			trend += e.cfg.Trend.AlignedPoints
			reasons = append(reasons, "🟢 Long-term trend confirmed: short MA holding above the long MA, bias is bullish.")
		case *cur.SMAShort < *cur.SMALong:
			trend -= e.cfg.Trend.AlignedPoints
			reasons = append(reasons, "🔻 Long-term trend weakening: price is trading below the long MA, stay defensive.")
		}
	}
	if cur.SMAShort != nil {
		switch {
		case cur.Close > *cur.SMAShort:
			trend += e.cfg.Trend.PriceAbovePoints
			reasons = append(reasons, "🟢 Price holding above the short MA.")
		case cur.Close < *cur.SMAShort:
			trend -= e.cfg.Trend.PriceAbovePoints
			reasons = append(reasons, "🔻 Price slipped below the short MA.")
		}
	}

	// --- Momentum: short-term entry signals ---

	if cur.SMAShort != nil && cur.SMAMedium != nil && prev.SMAShort != nil && prev.SMAMedium != nil {
		if *cur.SMAShort > *cur.SMAMedium && *prev.SMAShort <= *prev.SMAMedium {
			momentum += e.cfg.Momentum.GoldenCrossPoints
			reasons = append(reasons, "🚀 MA golden cross: the short MA broke above the medium MA, strong short-term entry.")
		}
	}
	if cur.RSI != nil {
		switch {
		case *cur.RSI <= e.cfg.Momentum.RSIOversold:
			momentum += e.cfg.Momentum.RSIPoints
			reasons = append(reasons, fmt.Sprintf("💎 RSI oversold at %.0f, rebound setup.", *cur.RSI))
		case *cur.RSI >= e.cfg.Momentum.RSIOverbought:
			momentum -= e.cfg.Momentum.RSIPoints
			reasons = append(reasons, fmt.Sprintf("🛑 RSI overbought at %.0f, chasing here is risky.", *cur.RSI))
		}
	}
	if cur.MACD != nil && cur.MACDSignal != nil && prev.MACD != nil && prev.MACDSignal != nil {
		switch {
		case *cur.MACD > *cur.MACDSignal && *prev.MACD <= *prev.MACDSignal:
			momentum += e.cfg.Momentum.MACDCrossPoints
			reasons = append(reasons, "🚀 MACD bullish cross: the line broke above its signal.")
		case *cur.MACD < *cur.MACDSignal && *prev.MACD >= *prev.MACDSignal:
			momentum -= e.cfg.Momentum.MACDCrossPoints
			reasons = append(reasons, "🛑 MACD bearish cross: the line dropped below its signal.")
		}
	}
	if cur.StochK != nil && cur.StochD != nil {
		switch {
		case *cur.StochK > *cur.StochD && *cur.StochK < e.cfg.Momentum.StochOversold:
			momentum += e.cfg.Momentum.StochPoints
			reasons = append(reasons, fmt.Sprintf("💎 Stochastic golden cross in the low zone (K=%.0f), dip-buy window.", *cur.StochK))
		case *cur.StochK < *cur.StochD && *cur.StochK > e.cfg.Momentum.StochOverbought:
			momentum -= e.cfg.Momentum.StochPoints
			reasons = append(reasons, fmt.Sprintf("🛑 Stochastic dead cross in the high zone (K=%.0f), sell warning.", *cur.StochK))
		}
	}

	// --- Institution: money flow ---

	if cur.MFI != nil && cur.OBV != nil && cur.OBVLookback != nil {
		if *cur.MFI > e.cfg.Institution.MFIHot && *cur.OBV > *cur.OBVLookback {
			institution += e.cfg.Institution.AccumulationPoints
			reasons = append(reasons, fmt.Sprintf("💰 Institutional inflow: MFI hot at %.0f with OBV rising, accumulation under way.", *cur.MFI))
		}
	}
	if cur.MFI != nil && *cur.MFI < e.cfg.Institution.MFICold {
		institution += e.cfg.Institution.ReversalPoints
		reasons = append(reasons, fmt.Sprintf("🌊 MFI washed out at %.0f: outflow is exhausted, bounce-prone.", *cur.MFI))
	}

	// --- Short risk / fundamentals ---

	shortPct := floatOr(meta.ShortPercentOfFloat, 0)
	if shortPct > e.cfg.ShortRisk.ShortFloatMin {
		// High short interest reads as squeeze fuel, not as a bearish vote.
		shortRisk += e.cfg.ShortRisk.SqueezePoints
		reasons = append(reasons, fmt.Sprintf("🔥 Squeeze potential: %.1f%% of the float is sold short, a rally can force violent covering.", shortPct*100))
	}
	growth := floatOr(meta.RevenueGrowth, 0)
	switch {
	case growth > e.cfg.ShortRisk.RevenueGrowthMin:
		shortRisk += e.cfg.ShortRisk.GrowthPoints
		reasons = append(reasons, fmt.Sprintf("🟢 Revenue growing %.1f%% YoY.", growth*100))
	case growth < e.cfg.ShortRisk.RevenueGrowthMax:
		shortRisk -= e.cfg.ShortRisk.GrowthPoints
		reasons = append(reasons, fmt.Sprintf("🔻 Revenue shrinking %.1f%% YoY.", growth*100))
	}
	// Missing debt/equity must never award the low-debt bonus.
	debtEquity := floatOr(meta.DebtToEquity, math.Inf(1))
	if debtEquity < e.cfg.ShortRisk.DebtEquityMax {
		shortRisk += e.cfg.ShortRisk.LowDebtPoints
		reasons = append(reasons, fmt.Sprintf("🟢 Low leverage: debt/equity at %.2f.", debtEquity))
	}

	total := e.cfg.BaseScore +
		e.cfg.Weights.Trend*trend +
		e.cfg.Weights.Momentum*momentum +
		e.cfg.Weights.Institution*institution +
		e.cfg.Weights.ShortRisk*shortRisk

	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return model.ScoreResult{Score: int(total), Reasons: reasons}, nil
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
