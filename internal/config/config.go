package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"EquityScope/internal/engine"
	"EquityScope/internal/indicator"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Data struct {
		Source          string `yaml:"source"` // "yahoo" or "mock"
		CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
	} `yaml:"data"`
	Scoring struct {
		Preset     string           `yaml:"preset"`
		Override   *engine.Config   `yaml:"override"`
		Indicators indicator.Params `yaml:"indicators"`
	} `yaml:"scoring"`
	Watchlist struct {
		Symbols       []string `yaml:"symbols"`
		Period        string   `yaml:"period"`
		Interval      string   `yaml:"interval"`
		ScanCron      string   `yaml:"scan_cron"`
		AlertScoreMin int      `yaml:"alert_score_min"`
		WarnScoreMax  int      `yaml:"warn_score_max"`
	} `yaml:"watchlist"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
		Enabled  bool   `yaml:"enabled"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
		cfg.Telegram.Enabled = true
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SCORING_PRESET"); v != "" {
		cfg.Scoring.Preset = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Watchlist.ScanCron = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Data.Source == "" {
		cfg.Data.Source = "yahoo"
	}
	if cfg.Data.CacheTTLMinutes == 0 {
		cfg.Data.CacheTTLMinutes = 5
	}
	if cfg.Scoring.Preset == "" {
		cfg.Scoring.Preset = "classic"
	}
	// Per-field so a partial indicators section keeps the other windows.
	cfg.Scoring.Indicators = cfg.Scoring.Indicators.WithDefaults()
	if cfg.Watchlist.Period == "" {
		cfg.Watchlist.Period = "1y"
	}
	if cfg.Watchlist.Interval == "" {
		cfg.Watchlist.Interval = "1d"
	}
	if cfg.Watchlist.ScanCron == "" {
		cfg.Watchlist.ScanCron = "0 30 22 * * 1-5" // after US close
	}
	if cfg.Watchlist.AlertScoreMin == 0 {
		cfg.Watchlist.AlertScoreMin = 80
	}
	if cfg.Watchlist.WarnScoreMax == 0 {
		cfg.Watchlist.WarnScoreMax = 20
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/equityscope.db"
	}

	return cfg, nil
}

// EngineConfig resolves the preset plus any explicit override into the
// scoring configuration.
func (c *Config) EngineConfig() (engine.Config, error) {
	if c.Scoring.Override != nil {
		return *c.Scoring.Override, nil
	}
	return engine.Preset(c.Scoring.Preset)
}

// Validate checks that the configuration is coherent.
func (c *Config) Validate() error {
	if _, err := c.EngineConfig(); err != nil {
		return err
	}
	if c.Data.Source != "yahoo" && c.Data.Source != "mock" {
		return fmt.Errorf("data.source must be \"yahoo\" or \"mock\", got %q", c.Data.Source)
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}
	if c.Watchlist.AlertScoreMin <= c.Watchlist.WarnScoreMax {
		return fmt.Errorf("watchlist.alert_score_min must be above warn_score_max")
	}
	return nil
}

func splitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if sym := strings.TrimSpace(strings.ToUpper(part)); sym != "" {
			out = append(out, sym)
		}
	}
	return out
}
