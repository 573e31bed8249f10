package scheduler

import (
	"strings"
	"testing"
	"time"

	"EquityScope/internal/analyzer"
	"EquityScope/internal/engine"
	"EquityScope/internal/indicator"
	"EquityScope/internal/provider"
	"EquityScope/internal/recorder"
)

type memoryRecorder struct {
	records []recorder.AnalysisRecord
}

func (m *memoryRecorder) RecordAnalysis(rec *recorder.AnalysisRecord) error {
	m.records = append(m.records, *rec)
	return nil
}

func (m *memoryRecorder) RecentBySymbol(symbol string, limit int) ([]recorder.AnalysisRecord, error) {
	var out []recorder.AnalysisRecord
	for _, r := range m.records {
		if r.Symbol == symbol {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryRecorder) Close() error { return nil }

func newTestScheduler(p provider.Provider, rec recorder.Recorder, wl Watchlist) *Scheduler {
	anl := analyzer.New(p, engine.New(engine.DefaultConfig()), indicator.DefaultParams())
	return NewScheduler(anl, rec, nil, wl)
}

func TestRegister(t *testing.T) {
	s := newTestScheduler(&provider.MockProvider{}, &memoryRecorder{}, Watchlist{})
	if err := s.Register("0 30 22 * * 1-5"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := s.Register("not a cron expr"); err == nil {
		t.Error("expected error for a bad cron expression")
	}
}

func TestRunScanNow_RecordsEverySymbol(t *testing.T) {
	rec := &memoryRecorder{}
	s := newTestScheduler(&provider.MockProvider{}, rec, Watchlist{
		Symbols:       []string{"NVDA", "TSLA"},
		Period:        "1y",
		Interval:      "1d",
		AlertScoreMin: 80,
		WarnScoreMax:  20,
	})

	s.RunScanNow()

	if len(rec.records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(rec.records))
	}
	if rec.records[0].Symbol != "NVDA" || rec.records[1].Symbol != "TSLA" {
		t.Errorf("unexpected symbols: %+v", rec.records)
	}
}

func TestRunScanNow_SkipsFailedSymbols(t *testing.T) {
	rec := &memoryRecorder{}
	s := newTestScheduler(&provider.MockProvider{BarsErr: provider.ErrDataUnavailable}, rec, Watchlist{
		Symbols: []string{"NVDA"},
		Period:  "1y", Interval: "1d",
		AlertScoreMin: 80, WarnScoreMax: 20,
	})

	s.RunScanNow()

	if len(rec.records) != 0 {
		t.Errorf("a failed fetch must not be recorded, got %d records", len(rec.records))
	}
}

func TestHandleCommand_Analyze(t *testing.T) {
	rec := &memoryRecorder{}
	s := newTestScheduler(&provider.MockProvider{}, rec, Watchlist{Period: "1y", Interval: "1d"})

	reply := s.HandleCommand("/analyze nvda")
	if !strings.Contains(reply, "NVDA") || !strings.Contains(reply, "/100") {
		t.Errorf("unexpected reply: %q", reply)
	}
	if len(rec.records) != 1 {
		t.Errorf("on-demand analysis must be recorded, got %d", len(rec.records))
	}

	if reply := s.HandleCommand("/analyze"); reply != "Usage: /analyze SYMBOL" {
		t.Errorf("unexpected usage reply: %q", reply)
	}
}

func TestHandleCommand_AnalyzeFailure(t *testing.T) {
	s := newTestScheduler(&provider.MockProvider{BarsErr: provider.ErrDataUnavailable}, &memoryRecorder{},
		Watchlist{Period: "1y", Interval: "1d"})

	reply := s.HandleCommand("/analyze GHOST")
	if !strings.Contains(reply, "cannot analyze GHOST") {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestHandleCommand_History(t *testing.T) {
	rec := &memoryRecorder{}
	rec.records = append(rec.records, recorder.AnalysisRecord{
		Timestamp: time.Now(), Symbol: "NVDA", Score: 82, TierKey: "strong-buy", Price: 131.25,
	})
	s := newTestScheduler(&provider.MockProvider{}, rec, Watchlist{})

	reply := s.HandleCommand("/history nvda")
	if !strings.Contains(reply, "82/100") {
		t.Errorf("unexpected reply: %q", reply)
	}

	reply = s.HandleCommand("/history GHOST")
	if !strings.Contains(reply, "No recorded analyses") {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestHandleCommand_HelpAndUnknown(t *testing.T) {
	s := newTestScheduler(&provider.MockProvider{}, &memoryRecorder{}, Watchlist{})

	if reply := s.HandleCommand("/help"); !strings.Contains(reply, "/analyze SYMBOL") {
		t.Errorf("unexpected help reply: %q", reply)
	}
	if reply := s.HandleCommand("/unknown"); reply != "" {
		t.Errorf("unknown command must be ignored, got %q", reply)
	}
	if reply := s.HandleCommand("   "); reply != "" {
		t.Errorf("blank input must be ignored, got %q", reply)
	}
}
