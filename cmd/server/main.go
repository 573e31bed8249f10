package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"EquityScope/internal/analyzer"
	"EquityScope/internal/config"
	"EquityScope/internal/engine"
	"EquityScope/internal/notifier"
	"EquityScope/internal/provider"
	"EquityScope/internal/recorder"
	"EquityScope/internal/scheduler"
	"EquityScope/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] EquityScope starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init provider with TTL cache
	var src provider.Provider
	if cfg.Data.Source == "mock" {
		src = &provider.MockProvider{}
	} else {
		src = provider.NewYahooProvider(cfg.Proxy)
	}
	cached := provider.NewCachedProvider(src, time.Duration(cfg.Data.CacheTTLMinutes)*time.Minute)
	log.Printf("[INFO] data source: %s", cached.Name())

	// Init scoring engine
	engCfg, err := cfg.EngineConfig()
	if err != nil {
		log.Fatalf("[FATAL] scoring config: %v", err)
	}
	eng := engine.New(engCfg)
	log.Printf("[INFO] scoring preset: %s", cfg.Scoring.Preset)

	anl := analyzer.New(cached, eng, cfg.Scoring.Indicators)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init Telegram notifier
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.Enabled {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init watchlist scheduler
	sched := scheduler.NewScheduler(anl, rec, tn, scheduler.Watchlist{
		Symbols:       cfg.Watchlist.Symbols,
		Period:        cfg.Watchlist.Period,
		Interval:      cfg.Watchlist.Interval,
		AlertScoreMin: cfg.Watchlist.AlertScoreMin,
		WarnScoreMax:  cfg.Watchlist.WarnScoreMax,
	})
	if len(cfg.Watchlist.Symbols) > 0 {
		if err := sched.Register(cfg.Watchlist.ScanCron); err != nil {
			log.Fatalf("[FATAL] register watchlist scan: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: scan immediately on start
	if os.Getenv("SCAN_ON_START") == "true" {
		log.Println("[INFO] SCAN_ON_START enabled, scanning watchlist now")
		go sched.RunScanNow()
	}

	// HTTP API
	srv := server.NewServer(anl, rec, cfg.Watchlist.Period, cfg.Watchlist.Interval)
	httpSrv := &http.Server{Addr: cfg.Server.Addr, Handler: srv.Router()}
	go func() {
		log.Printf("[INFO] HTTP API listening on %s", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Println("[INFO] EquityScope is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	log.Println("[INFO] EquityScope stopped")
}
