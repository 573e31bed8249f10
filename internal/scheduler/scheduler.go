package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"EquityScope/internal/analyzer"
	"EquityScope/internal/notifier"
	"EquityScope/internal/recorder"
)

// Watchlist describes the periodic scan.
type Watchlist struct {
	Symbols       []string
	Period        string
	Interval      string
	AlertScoreMin int // notify when score >= this
	WarnScoreMax  int // notify when score <= this
}

// Scheduler runs the watchlist scan on a cron expression, records every
// result, and pushes alerts for scores outside the quiet band.
type Scheduler struct {
	Cron      *cron.Cron
	Analyzer  *analyzer.Analyzer
	Recorder  recorder.Recorder
	Notifier  *notifier.TelegramNotifier
	Watchlist Watchlist
}

// NewScheduler creates a Scheduler. notifier may be nil (alerts are then
// only logged and recorded).
func NewScheduler(a *analyzer.Analyzer, rec recorder.Recorder, tn *notifier.TelegramNotifier, wl Watchlist) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Analyzer:  a,
		Recorder:  rec,
		Notifier:  tn,
		Watchlist: wl,
	}
}

// Register registers the watchlist scan on the given cron expression.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register watchlist scan: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the watchlist scan immediately.
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	log.Printf("[INFO] scanning watchlist (%d symbols)", len(s.Watchlist.Symbols))
	for _, symbol := range s.Watchlist.Symbols {
		report, err := s.Analyzer.Analyze(symbol, s.Watchlist.Period, s.Watchlist.Interval)
		if err != nil {
			log.Printf("[ERROR] scan %s: %v", symbol, err)
			continue
		}

		if err := s.Recorder.RecordAnalysis(recorder.FromReport(report)); err != nil {
			log.Printf("[ERROR] record %s: %v", symbol, err)
		}

		score := report.Result.Score
		if score >= s.Watchlist.AlertScoreMin || score <= s.Watchlist.WarnScoreMax {
			log.Printf("[INFO] alert %s: score %d (%s)", symbol, score, report.Tier.Key)
			s.trySend(notifier.FormatAlert(report))
		}
	}
}

// HandleCommand processes a Telegram command and returns the reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze SYMBOL"
		}
		symbol := strings.ToUpper(fields[1])
		report, err := s.Analyzer.Analyze(symbol, s.Watchlist.Period, s.Watchlist.Interval)
		if err != nil {
			return fmt.Sprintf("❌ cannot analyze %s: %v", symbol, err)
		}
		if err := s.Recorder.RecordAnalysis(recorder.FromReport(report)); err != nil {
			log.Printf("[ERROR] record %s: %v", symbol, err)
		}
		return notifier.FormatReport(report)
	case "/watchlist":
		go s.scanTask()
		return fmt.Sprintf("Scanning %d symbols: %s", len(s.Watchlist.Symbols), strings.Join(s.Watchlist.Symbols, ", "))
	case "/history":
		if len(fields) < 2 {
			return "Usage: /history SYMBOL"
		}
		symbol := strings.ToUpper(fields[1])
		recs, err := s.Recorder.RecentBySymbol(symbol, 10)
		if err != nil {
			return fmt.Sprintf("❌ history %s: %v", symbol, err)
		}
		return notifier.FormatHistory(symbol, recs)
	case "/help", "/start":
		return "Commands:\n/analyze SYMBOL — score a ticker now\n/watchlist — scan the configured watchlist\n/history SYMBOL — recent recorded scores"
	}
	return ""
}

func (s *Scheduler) trySend(msg string) {
	if s.Notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := s.Notifier.SendWithRetry(ctx, msg, 3); err != nil {
		log.Printf("[ERROR] telegram send: %v", err)
	}
}
