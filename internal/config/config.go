package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"

	"liqdepth-api/pkg/confkit"
	feedpkg "liqdepth-api/pkg/feed"
	"liqdepth-api/pkg/symbols"
)

type Config struct {
	rest.RestConf
	// Env indicates the running environment: test | dev | prod
	// Defaults to test.
	Env string `json:",default=test"`

	// DefaultTicker is the pair polled when the service starts.
	DefaultTicker string `json:",default=BTC"`
	// PollIntervalMs is the cadence between poll cycles in milliseconds.
	PollIntervalMs int `json:",default=1500"`

	Feed confkit.Section[feedpkg.Config] `json:",optional"`

	mainPath string
	baseDir  string
}

func (c *Config) IsTestEnv() bool {
	return c.Env == "test" || c.Env == ""
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "test", "dev", "prod":
		if strings.TrimSpace(c.Env) == "" {
			c.Env = "test"
		}
	default:
		return errors.New("config: env must be one of test|dev|prod")
	}
	c.DefaultTicker = strings.ToUpper(strings.TrimSpace(c.DefaultTicker))
	if c.DefaultTicker == "" {
		return errors.New("config: defaultTicker is required")
	}
	if !symbols.IsTracked(c.DefaultTicker) {
		return fmt.Errorf("config: defaultTicker %s is not a tracked pair", c.DefaultTicker)
	}
	if c.PollIntervalMs <= 0 {
		return errors.New("config: pollIntervalMs must be positive")
	}
	return nil
}

func (c *Config) hydrateSections() error {
	if err := c.Feed.Hydrate(c.baseDir, feedpkg.LoadConfig); err != nil {
		return fmt.Errorf("load feed config: %w", err)
	}
	return nil
}

func (c *Config) MainPath() string {
	return c.mainPath
}

func (c *Config) BaseDir() string {
	return c.baseDir
}
