package config

import (
	"fmt"
	"path/filepath"

	"liqdepth-api/pkg/feed"
)

// MustLoadFeed loads etc/feed.yaml from the project root and panics on error.
// It isolates the feed section so tests that only need venue endpoints do not
// have to load the full service config.
func MustLoadFeed() *feed.Config {
	root := MustProjectRoot()
	path := filepath.Join(root, "etc", "feed.yaml")
	cfg, err := feed.LoadConfig(path)
	if err != nil {
		panic(fmt.Errorf("load feed config %s: %w", path, err))
	}
	return cfg
}
