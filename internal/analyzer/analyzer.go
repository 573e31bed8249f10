package analyzer

import (
	"fmt"
	"log"
	"time"

	"EquityScope/internal/engine"
	"EquityScope/internal/indicator"
	"EquityScope/internal/model"
	"EquityScope/internal/provider"
)

// Analyzer wires the data provider, the indicator builder, and the
// scoring engine into one synchronous analysis pipeline.
type Analyzer struct {
	Provider provider.Provider
	Engine   *engine.Engine
	Params   indicator.Params
}

// New creates an Analyzer.
func New(p provider.Provider, eng *engine.Engine, params indicator.Params) *Analyzer {
	return &Analyzer{Provider: p, Engine: eng, Params: params}
}

// Analyze fetches data for the symbol, derives indicators, scores the
// latest snapshot against its predecessor, and attaches the narrative.
// Returns provider.ErrDataUnavailable when the fetch fails or comes back
// empty, and engine.ErrInsufficientData when fewer than two bars exist.
// It never fabricates a neutral score.
func (a *Analyzer) Analyze(symbol, period, interval string) (*model.AnalysisReport, error) {
	bars, err := a.Provider.FetchHistory(symbol, period, interval)
	if err != nil {
		return nil, fmt.Errorf("fetch history %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("fetch history %s: %w", symbol, provider.ErrDataUnavailable)
	}

	// Metadata failure is not fatal: the fundamental rules fall back to
	// their neutral defaults on an empty Metadata.
	meta, err := a.Provider.FetchMetadata(symbol)
	if err != nil {
		log.Printf("[WARN] fetch metadata %s: %v, scoring without fundamentals", symbol, err)
		meta = model.Metadata{Symbol: symbol}
	}

	snaps := indicator.Build(bars, a.Params)
	if len(snaps) < 2 {
		return nil, fmt.Errorf("analyze %s: %w", symbol, engine.ErrInsufficientData)
	}
	cur := &snaps[len(snaps)-1]
	prev := &snaps[len(snaps)-2]

	result, err := a.Engine.Score(cur, prev, meta)
	if err != nil {
		return nil, fmt.Errorf("score %s: %w", symbol, err)
	}
	tier := a.Engine.Narrative(result.Score)

	return &model.AnalysisReport{
		Symbol:      symbol,
		Period:      period,
		Interval:    interval,
		Price:       bars[len(bars)-1].Close,
		Result:      result,
		Tier:        tier,
		Narrative:   tier.Advice,
		Metadata:    meta,
		Bars:        bars,
		Snapshots:   snaps,
		GeneratedAt: time.Now(),
	}, nil
}
