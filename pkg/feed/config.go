package feed

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultHyperliquidURL  = "https://api.hyperliquid.xyz/info"
	defaultDydxBaseURL     = "https://indexer.dydx.trade/v4"
	defaultLighterBaseURL  = "https://mainnet.zklighter.elliot.ai/api/v1"
	defaultLighterWsURL    = "wss://mainnet.zklighter.elliot.ai/stream"
	defaultAsterdexBaseURL = "https://fapi.asterdex.com"
	defaultBinanceBaseURL  = "https://fapi.binance.com"
	defaultBybitBaseURL    = "https://api.bybit.com"

	defaultHTTPTimeout    = 10 * time.Second
	defaultWsSnapshotWait = 8 * time.Second
	defaultMarketCacheTTL = 5 * time.Minute
	defaultMaxRetries     = 1

	// REST depth caps, matching what each venue actually serves.
	lighterRestOrderLimit = 250
	depthLevelLimit       = 1000
	bybitDepthLimit       = 500
)

// Config describes the upstream venue endpoints and fetch behaviour.
type Config struct {
	HyperliquidURL  string `yaml:"hyperliquid_url"`
	DydxBaseURL     string `yaml:"dydx_base_url"`
	LighterBaseURL  string `yaml:"lighter_base_url"`
	LighterWsURL    string `yaml:"lighter_ws_url"`
	AsterdexBaseURL string `yaml:"asterdex_base_url"`
	BinanceBaseURL  string `yaml:"binance_base_url"`
	BybitBaseURL    string `yaml:"bybit_base_url"`

	HTTPTimeoutRaw    string        `yaml:"http_timeout"`
	HTTPTimeout       time.Duration `yaml:"-"`
	WsSnapshotWaitRaw string        `yaml:"ws_snapshot_wait"`
	WsSnapshotWait    time.Duration `yaml:"-"`
	MarketCacheTTLRaw string        `yaml:"market_cache_ttl"`
	MarketCacheTTL    time.Duration `yaml:"-"`
	MaxRetries        int           `yaml:"max_retries"`
}

// DefaultConfig returns the production endpoint set.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads a feed configuration file from disk.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read feed config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal feed config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalise() error {
	c.expandEnv()
	if err := c.parseDurations(); err != nil {
		return err
	}
	c.applyDefaults()
	return nil
}

func (c *Config) expandEnv() {
	c.HyperliquidURL = strings.TrimSpace(os.ExpandEnv(c.HyperliquidURL))
	c.DydxBaseURL = strings.TrimSpace(os.ExpandEnv(c.DydxBaseURL))
	c.LighterBaseURL = strings.TrimSpace(os.ExpandEnv(c.LighterBaseURL))
	c.LighterWsURL = strings.TrimSpace(os.ExpandEnv(c.LighterWsURL))
	c.AsterdexBaseURL = strings.TrimSpace(os.ExpandEnv(c.AsterdexBaseURL))
	c.BinanceBaseURL = strings.TrimSpace(os.ExpandEnv(c.BinanceBaseURL))
	c.BybitBaseURL = strings.TrimSpace(os.ExpandEnv(c.BybitBaseURL))
	c.HTTPTimeoutRaw = strings.TrimSpace(os.ExpandEnv(c.HTTPTimeoutRaw))
	c.WsSnapshotWaitRaw = strings.TrimSpace(os.ExpandEnv(c.WsSnapshotWaitRaw))
	c.MarketCacheTTLRaw = strings.TrimSpace(os.ExpandEnv(c.MarketCacheTTLRaw))
}

func (c *Config) parseDurations() error {
	parse := func(field, raw string) (time.Duration, error) {
		if raw == "" {
			return 0, nil
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return 0, fmt.Errorf("feed config: invalid %s %q: %w", field, raw, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("feed config: %s must be positive, got %s", field, d)
		}
		return d, nil
	}

	var err error
	if c.HTTPTimeout, err = parse("http_timeout", c.HTTPTimeoutRaw); err != nil {
		return err
	}
	if c.WsSnapshotWait, err = parse("ws_snapshot_wait", c.WsSnapshotWaitRaw); err != nil {
		return err
	}
	if c.MarketCacheTTL, err = parse("market_cache_ttl", c.MarketCacheTTLRaw); err != nil {
		return err
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.HyperliquidURL == "" {
		c.HyperliquidURL = defaultHyperliquidURL
	}
	if c.DydxBaseURL == "" {
		c.DydxBaseURL = defaultDydxBaseURL
	}
	if c.LighterBaseURL == "" {
		c.LighterBaseURL = defaultLighterBaseURL
	}
	if c.LighterWsURL == "" {
		c.LighterWsURL = defaultLighterWsURL
	}
	if c.AsterdexBaseURL == "" {
		c.AsterdexBaseURL = defaultAsterdexBaseURL
	}
	if c.BinanceBaseURL == "" {
		c.BinanceBaseURL = defaultBinanceBaseURL
	}
	if c.BybitBaseURL == "" {
		c.BybitBaseURL = defaultBybitBaseURL
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = defaultHTTPTimeout
	}
	if c.WsSnapshotWait <= 0 {
		c.WsSnapshotWait = defaultWsSnapshotWait
	}
	if c.MarketCacheTTL <= 0 {
		c.MarketCacheTTL = defaultMarketCacheTTL
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
}

// Validate ensures the configuration is structurally sound.
func (c *Config) Validate() error {
	endpoints := map[string]string{
		"hyperliquid_url":   c.HyperliquidURL,
		"dydx_base_url":     c.DydxBaseURL,
		"lighter_base_url":  c.LighterBaseURL,
		"lighter_ws_url":    c.LighterWsURL,
		"asterdex_base_url": c.AsterdexBaseURL,
		"binance_base_url":  c.BinanceBaseURL,
		"bybit_base_url":    c.BybitBaseURL,
	}
	for name, value := range endpoints {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("feed config: %s cannot be empty", name)
		}
	}
	return nil
}
