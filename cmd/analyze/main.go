package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"EquityScope/internal/analyzer"
	"EquityScope/internal/config"
	"EquityScope/internal/engine"
	"EquityScope/internal/provider"
)

func main() {
	symbol := flag.String("symbol", "", "ticker symbol to analyze (required)")
	period := flag.String("period", "1y", "history window (1mo, 3mo, 6mo, 1y, 2y, 5y, max)")
	interval := flag.String("interval", "1d", "sampling interval (1d, 1wk, 1mo)")
	preset := flag.String("preset", "", "scoring preset (classic, momentum, conservative)")
	cfgPath := flag.String("config", "configs/config.yaml", "config file path")
	flag.Parse()

	if *symbol == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if *preset != "" {
		cfg.Scoring.Preset = *preset
		cfg.Scoring.Override = nil
	}
	engCfg, err := cfg.EngineConfig()
	if err != nil {
		log.Fatalf("[FATAL] scoring config: %v", err)
	}

	var src provider.Provider
	if cfg.Data.Source == "mock" {
		src = &provider.MockProvider{}
	} else {
		src = provider.NewYahooProvider(cfg.Proxy)
	}
	cached := provider.NewCachedProvider(src, time.Duration(cfg.Data.CacheTTLMinutes)*time.Minute)

	anl := analyzer.New(cached, engine.New(engCfg), cfg.Scoring.Indicators)
	report, err := anl.Analyze(*symbol, *period, *interval)
	if err != nil {
		switch {
		case errors.Is(err, provider.ErrDataUnavailable):
			fmt.Fprintf(os.Stderr, "cannot analyze %s: market data unavailable (%v)\n", *symbol, err)
		case errors.Is(err, engine.ErrInsufficientData):
			fmt.Fprintf(os.Stderr, "cannot analyze %s: not enough history (%v)\n", *symbol, err)
		default:
			fmt.Fprintf(os.Stderr, "cannot analyze %s: %v\n", *symbol, err)
		}
		os.Exit(1)
	}

	name := report.Metadata.LongName
	if name == "" {
		name = report.Symbol
	}
	fmt.Printf("💡 %s (%s) — %s %s\n\n", name, report.Symbol, report.Period, report.Interval)
	fmt.Printf("Price:  $%.2f\n", report.Price)
	fmt.Printf("Score:  %d/100  %s\n\n", report.Result.Score, report.Tier.Label)

	if len(report.Result.Reasons) > 0 {
		fmt.Println("Signals:")
		for _, r := range report.Result.Reasons {
			fmt.Printf("  - %s\n", r)
		}
		fmt.Println()
	}
	fmt.Println(report.Narrative)
}
