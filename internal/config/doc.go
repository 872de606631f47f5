// Package config loads, normalizes, and validates lyricsync configuration.
//
// Files are TOML by default; a ".yaml" or ".yml" extension switches the
// decoder to YAML. Missing files are not an error: Load falls back to
// Default so the command works without any setup. Path fields are expanded
// (including "~") and made absolute during normalization.
package config
