// Package config loads and validates the shunt configuration file.
//
// Configuration is TOML, found at ~/.config/shunt/config.toml, a
// shunt.toml in the working directory, or an explicit --config path.
// Loading applies defaults, expands ~ paths, pulls environment
// fallbacks, and validates the result.
package config
