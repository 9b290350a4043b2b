package config

import (
	"os"
	"path/filepath"
	"testing"

	"liqdepth-api/pkg/feed"
)

// Test_feedConfig_envExpansion verifies that the feed section expands
// environment variables correctly when loaded via feed.LoadConfig.
func Test_feedConfig_envExpansion(t *testing.T) {
	dir := t.TempDir()

	feedYAML := []byte(`
hyperliquid_url: ${HL_URL}
bybit_base_url: ${BYBIT_BASE}
http_timeout: ${FEED_HTTP_TIMEOUT}
max_retries: 2
`)
	feedPath := filepath.Join(dir, "feed.yaml")
	if err := os.WriteFile(feedPath, feedYAML, 0o600); err != nil {
		t.Fatalf("write feed.yaml: %v", err)
	}

	t.Setenv("HL_URL", "https://hl.example/info")
	t.Setenv("BYBIT_BASE", "https://bybit.example")
	t.Setenv("FEED_HTTP_TIMEOUT", "7s")

	cfg, err := feed.LoadConfig(feedPath)
	if err != nil {
		t.Fatalf("feed.LoadConfig: %v", err)
	}
	if got := cfg.HyperliquidURL; got != "https://hl.example/info" {
		t.Fatalf("HyperliquidURL not expanded, got %q", got)
	}
	if got := cfg.BybitBaseURL; got != "https://bybit.example" {
		t.Fatalf("BybitBaseURL not expanded, got %q", got)
	}
	if cfg.HTTPTimeout.String() != "7s" {
		t.Fatalf("HTTPTimeout not parsed, got %s", cfg.HTTPTimeout)
	}
	if cfg.MaxRetries != 2 {
		t.Fatalf("MaxRetries got %d", cfg.MaxRetries)
	}
}

func TestValidate_DefaultTicker(t *testing.T) {
	cfg := &Config{DefaultTicker: "btc", PollIntervalMs: 1500}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.DefaultTicker != "BTC" {
		t.Fatalf("DefaultTicker not normalised, got %q", cfg.DefaultTicker)
	}

	cfg = &Config{DefaultTicker: "NOPE", PollIntervalMs: 1500}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected untracked ticker validation error")
	}
}

func TestValidate_PollIntervalBounds(t *testing.T) {
	cfg := &Config{DefaultTicker: "BTC", PollIntervalMs: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected pollIntervalMs validation error")
	}
}
