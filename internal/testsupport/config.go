package testsupport

import (
	"path/filepath"
	"testing"

	"shunt/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.TVDB.SeriesSlug = "eisenbahn-romantik"
	cfg.Naming.SeriesLabel = "Eisenbahn-Romantik"
	cfg.Matching.SeriesPrefix = "Eisenbahn-Romantik"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithThreshold overrides the match acceptance threshold.
func WithThreshold(threshold float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.Threshold = threshold
	}
}

// WithLibraryDir points the config at an existing library directory.
func WithLibraryDir(dir string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.LibraryDir = dir
	}
}
