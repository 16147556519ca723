package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTVDB()
	c.normalizeMediathek()
	c.normalizeNaming()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTVDB() {
	c.TVDB.BaseURL = strings.TrimSpace(c.TVDB.BaseURL)
	if c.TVDB.BaseURL == "" {
		c.TVDB.BaseURL = defaultTVDBBaseURL
	}
	c.TVDB.SeriesSlug = strings.TrimSpace(c.TVDB.SeriesSlug)
	if c.TVDB.SeriesSlug == "" {
		if value, ok := os.LookupEnv("SHUNT_SERIES_SLUG"); ok {
			c.TVDB.SeriesSlug = strings.TrimSpace(value)
		}
	}
	c.TVDB.UserAgent = strings.TrimSpace(c.TVDB.UserAgent)
	if c.TVDB.UserAgent == "" {
		c.TVDB.UserAgent = defaultTVDBUserAgent
	}
	if c.TVDB.TimeoutSeconds <= 0 {
		c.TVDB.TimeoutSeconds = defaultTVDBTimeout
	}
}

func (c *Config) normalizeMediathek() {
	c.Mediathek.FilmlisteURL = strings.TrimSpace(c.Mediathek.FilmlisteURL)
	if c.Mediathek.FilmlisteURL == "" {
		c.Mediathek.FilmlisteURL = defaultFilmlisteURL
	}
	trimmed := make([]string, 0, len(c.Mediathek.Keywords))
	for _, keyword := range c.Mediathek.Keywords {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			trimmed = append(trimmed, keyword)
		}
	}
	c.Mediathek.Keywords = trimmed
	if strings.TrimSpace(c.Mediathek.MinDuration) == "" {
		c.Mediathek.MinDuration = defaultMinDuration
	}
	if c.Mediathek.TimeoutSeconds <= 0 {
		c.Mediathek.TimeoutSeconds = defaultFilmlisteTimeout
	}
}

func (c *Config) normalizeNaming() {
	c.Naming.SeriesLabel = strings.TrimSpace(c.Naming.SeriesLabel)
	c.Naming.Extension = strings.TrimSpace(c.Naming.Extension)
	if c.Naming.Extension == "" {
		c.Naming.Extension = defaultNamingExtension
	}
	if !strings.HasPrefix(c.Naming.Extension, ".") {
		c.Naming.Extension = "." + c.Naming.Extension
	}
	c.Matching.SeriesPrefix = strings.TrimSpace(c.Matching.SeriesPrefix)
	if c.Matching.SeriesPrefix == "" {
		c.Matching.SeriesPrefix = c.Naming.SeriesLabel
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
