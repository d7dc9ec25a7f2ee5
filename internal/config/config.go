// Package config loads aperctl's TOML configuration file, overlaying
// only the keys the file actually sets on top of built-in defaults.
// Grounded on danmuck-edgectl's cmd/miragectl/config.go loader
// (toml.DecodeFile + meta.IsDefined overlay), standardized on
// BurntSushi/toml per the majority of that repo's own call sites.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds aperctl's file-level settings. aperctl reads LogLevel
// (overridden by --verbose); DefaultSchema and StrictExtensions are
// loaded but aperctl does not consult them.
type Config struct {
	LogLevel         string
	DefaultSchema    string
	StrictExtensions bool
}

// Default returns the built-in configuration used when no file is
// supplied or a key is left unset.
func Default() Config {
	return Config{
		LogLevel:         "info",
		DefaultSchema:    "",
		StrictExtensions: false,
	}
}

type fileConfig struct {
	LogLevel         string `toml:"log_level"`
	DefaultSchema    string `toml:"default_schema"`
	StrictExtensions bool   `toml:"strict_extensions"`
}

// Load reads path and overlays defined keys onto Default().
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load aperctl config: %w", err)
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("default_schema") {
		cfg.DefaultSchema = strings.TrimSpace(raw.DefaultSchema)
	}
	if meta.IsDefined("strict_extensions") {
		cfg.StrictExtensions = raw.StrictExtensions
	}

	return cfg, nil
}
