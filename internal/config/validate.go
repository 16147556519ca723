package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTVDB(); err != nil {
		return err
	}
	if err := c.validateMediathek(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTVDB() error {
	if _, err := url.Parse(c.TVDB.BaseURL); err != nil {
		return fmt.Errorf("tvdb.base_url is not a valid URL: %w", err)
	}
	return nil
}

func (c *Config) validateMediathek() error {
	if _, err := url.Parse(c.Mediathek.FilmlisteURL); err != nil {
		return fmt.Errorf("mediathek.filmliste_url is not a valid URL: %w", err)
	}
	if err := validateDuration(c.Mediathek.MinDuration); err != nil {
		return fmt.Errorf("mediathek.min_duration: %w", err)
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.Threshold < 0 || c.Matching.Threshold > 1 {
		return errors.New("matching.threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func validateDuration(value string) error {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return fmt.Errorf("expected HH:MM:SS, got %q", value)
	}
	for _, part := range parts {
		if part == "" {
			return fmt.Errorf("expected HH:MM:SS, got %q", value)
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return fmt.Errorf("expected HH:MM:SS, got %q", value)
			}
		}
	}
	return nil
}
