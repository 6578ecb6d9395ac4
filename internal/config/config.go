// Package config holds the checker's build-time constants and the
// lunar.yaml configuration.
//
// Configuration is layered: defaults, then lunar.yaml from the source
// root, then LUNAR_* environment variables (a .env file next to the
// config is loaded first when present).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level lunar.yaml configuration.
type Config struct {
	// Strict promotes warnings (unreachable patterns) to errors.
	Strict bool `yaml:"strict,omitempty"`

	// Warnings toggles individual warning groups.
	Warnings Warnings `yaml:"warnings,omitempty"`

	// Defaults selects the types of unsuffixed numeric literals that
	// elaborate without context.
	Defaults Defaults `yaml:"defaults,omitempty"`
}

// Warnings toggles individual warning groups.
type Warnings struct {
	// Unreachable reports match arms shadowed by earlier arms.
	Unreachable bool `yaml:"unreachable"`
}

// Defaults selects the types of numeric literals without context.
type Defaults struct {
	// Int is the integer literal default (e.g. "i32").
	Int string `yaml:"int,omitempty"`

	// Float is the float literal default (e.g. "f64").
	Float string `yaml:"float,omitempty"`
}

// Default returns the configuration used when no lunar.yaml exists.
func Default() *Config {
	return &Config{
		Warnings: Warnings{Unreachable: true},
		Defaults: Defaults{Int: "i32", Float: "f64"},
	}
}

var validIntDefaults = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true,
}

var validFloatDefaults = map[string]bool{"f32": true, "f64": true}

// Load reads dir/lunar.yaml, applying .env and LUNAR_* environment
// overrides. A missing config file yields Default() without error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	// Best effort: a missing .env is not an error.
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if v := os.Getenv("LUNAR_STRICT"); v == "1" || v == "true" {
		cfg.Strict = true
	}
	if v := os.Getenv("LUNAR_DEFAULT_INT"); v != "" {
		cfg.Defaults.Int = v
	}
	if v := os.Getenv("LUNAR_DEFAULT_FLOAT"); v != "" {
		cfg.Defaults.Float = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configured literal defaults name real types.
func (c *Config) Validate() error {
	if c.Defaults.Int != "" && !validIntDefaults[c.Defaults.Int] {
		return fmt.Errorf("defaults.int: %q is not an integer type", c.Defaults.Int)
	}
	if c.Defaults.Float != "" && !validFloatDefaults[c.Defaults.Float] {
		return fmt.Errorf("defaults.float: %q is not a float type", c.Defaults.Float)
	}
	return nil
}
