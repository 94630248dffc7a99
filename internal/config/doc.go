// Package config loads, normalizes, and validates the BujoNow TOML
// configuration.
//
// Load resolves the config file (explicit path or the default under
// ~/.config/bujonow), decodes it over the repository defaults, expands
// filesystem paths, and validates cross-field constraints before any
// component sees the result.
package config
