package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ah-flipper/internal/hypixel"
	"ah-flipper/internal/scanner"
)

type Config struct {
	APIBaseURL            string `yaml:"api_base_url"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	Workers               int    `yaml:"workers"`
	ItemsCatalogPath      string `yaml:"items_catalog_path"`
	ReforgesPath          string `yaml:"reforges_path"`
	SnipeMinBucket        int    `yaml:"snipe_min_bucket"`
	SnipeMinProfit        int64  `yaml:"snipe_min_profit"`
	SnipeMaxCost          int64  `yaml:"snipe_max_cost"`
	FlipMinMargin         int64  `yaml:"flip_min_margin"`
	ReportXLSXPath        string `yaml:"report_xlsx_path"`
	LogLevel              string `yaml:"log_level"`
}

func defaults() Config {
	th := scanner.DefaultThresholds()
	return Config{
		APIBaseURL:            hypixel.DefaultBaseURL,
		RequestTimeoutSeconds: 30,
		Workers:               8,
		ItemsCatalogPath:      "./data/items.json",
		ReforgesPath:          "./data/reforges.json",
		SnipeMinBucket:        th.MinBucket,
		SnipeMinProfit:        th.MinProfit,
		SnipeMaxCost:          th.MaxCost,
		FlipMinMargin:         th.MinMargin,
		LogLevel:              "info",
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := defaults()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml: %w", err)
		}
	}
	if v := os.Getenv("HYPIXEL_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	return cfg, cfg.validate()
}

func (cfg *Config) validate() error {
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		return errors.New("api_base_url must be set")
	}
	if cfg.RequestTimeoutSeconds < 1 {
		return errors.New("request_timeout_seconds must be >=1")
	}
	if cfg.Workers < 1 {
		return errors.New("workers must be >=1")
	}
	if cfg.SnipeMinBucket < 2 {
		return errors.New("snipe_min_bucket must be >=2")
	}
	if cfg.SnipeMinProfit < 0 || cfg.SnipeMaxCost < 0 || cfg.FlipMinMargin < 0 {
		return errors.New("thresholds must not be negative")
	}
	return nil
}

func (cfg Config) RequestTimeout() time.Duration {
	return time.Duration(cfg.RequestTimeoutSeconds) * time.Second
}

func (cfg Config) Thresholds() scanner.Thresholds {
	return scanner.Thresholds{
		MinBucket: cfg.SnipeMinBucket,
		MinProfit: cfg.SnipeMinProfit,
		MaxCost:   cfg.SnipeMaxCost,
		MinMargin: cfg.FlipMinMargin,
	}
}

func NewLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(h)
}
