package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("HYPIXEL_API_URL", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	th := cfg.Thresholds()
	if th.MinBucket != 25 || th.MinProfit != 500_000 || th.MaxCost != 12_000_000 || th.MinMargin != 3_000_000 {
		t.Fatalf("default thresholds got %+v", th)
	}
	if cfg.APIBaseURL != "https://api.hypixel.net" {
		t.Fatalf("base url got %s", cfg.APIBaseURL)
	}
}

func TestLoadOverlay(t *testing.T) {
	t.Setenv("HYPIXEL_API_URL", "")
	p := writeConfig(t, "workers: 3\nflip_min_margin: 1000000\napi_base_url: http://localhost:9000/\nreport_xlsx_path: out.xlsx\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 3 || cfg.FlipMinMargin != 1_000_000 {
		t.Fatalf("overlay got %+v", cfg)
	}
	if cfg.APIBaseURL != "http://localhost:9000" {
		t.Fatalf("trailing slash not trimmed: %s", cfg.APIBaseURL)
	}
	if cfg.ReportXLSXPath != "out.xlsx" {
		t.Fatalf("xlsx path got %q", cfg.ReportXLSXPath)
	}
	if cfg.SnipeMinBucket != 25 {
		t.Fatalf("unset field lost its default: %d", cfg.SnipeMinBucket)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HYPIXEL_API_URL", "http://mirror.local")
	cfg, err := Load(writeConfig(t, "api_base_url: http://ignored\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIBaseURL != "http://mirror.local" {
		t.Fatalf("env override got %s", cfg.APIBaseURL)
	}
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("HYPIXEL_API_URL", "")
	for _, body := range []string{
		"workers: 0\n",
		"snipe_min_bucket: 1\n",
		"flip_min_margin: -5\n",
		"request_timeout_seconds: 0\n",
		"workers: [\n",
	} {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatalf("want error for %q", body)
		}
	}
}
