// Package config loads, normalizes, and validates the TOML configuration.
//
// Load resolves the config path (explicit flag, then ~/.config/curator/
// config.toml, then ./curator.toml), decodes it over the repository defaults,
// expands ~ in every path field, pulls secrets from the environment when the
// file omits them, and validates the result. A missing file is not an error;
// defaults are used so read-only commands keep working.
package config
