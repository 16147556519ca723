package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LibraryDir string `toml:"library_dir"`
	DataDir    string `toml:"data_dir"`
	LogDir     string `toml:"log_dir"`
}

// TVDB contains configuration for the public TheTVDB all-seasons pages.
type TVDB struct {
	BaseURL        string `toml:"base_url"`
	SeriesSlug     string `toml:"series_slug"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Mediathek contains configuration for the MediathekView Filmliste download.
type Mediathek struct {
	FilmlisteURL   string   `toml:"filmliste_url"`
	Keywords       []string `toml:"keywords"`
	MinDuration    string   `toml:"min_duration"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// Matching contains configuration for title matching.
type Matching struct {
	// Threshold is the minimum similarity score at which a suggested
	// filename is filled in. Low-confidence matches still surface their
	// score for review.
	Threshold float64 `toml:"threshold"`
	// SeriesPrefix is stripped from both broadcast and catalog titles
	// before comparison (e.g. "Eisenbahn-Romantik").
	SeriesPrefix string `toml:"series_prefix"`
}

// Naming contains configuration for canonical filename construction.
type Naming struct {
	SeriesLabel string `toml:"series_label"`
	Extension   string `toml:"extension"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for shunt.
//
// Configuration sections by subsystem:
//   - Paths: library, data, and log directories
//   - TVDB: canonical episode catalog source
//   - Mediathek: programme-guide Filmliste download and filtering
//   - Matching: title similarity threshold and series prefix
//   - Naming: canonical filename label and extension
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	TVDB      TVDB      `toml:"tvdb"`
	Mediathek Mediathek `toml:"mediathek"`
	Matching  Matching  `toml:"matching"`
	Naming    Naming    `toml:"naming"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/shunt/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean
// reports whether a config file was actually found.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("shunt.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories. The library
// directory is external media storage and is never created implicitly.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// AllSeasonsURL returns the all-seasons page URL for the configured series.
func (t TVDB) AllSeasonsURL() string {
	base := strings.TrimRight(strings.TrimSpace(t.BaseURL), "/")
	return fmt.Sprintf("%s/series/%s/allseasons/official", base, strings.TrimSpace(t.SeriesSlug))
}

// SpecialsURL returns the season-0 page URL for the configured series.
func (t TVDB) SpecialsURL() string {
	base := strings.TrimRight(strings.TrimSpace(t.BaseURL), "/")
	return fmt.Sprintf("%s/series/%s/seasons/official/0", base, strings.TrimSpace(t.SeriesSlug))
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
