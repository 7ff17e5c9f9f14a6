// Package config loads the optional YAML configuration of the Fabricator
// shell. Every field has a default, so the shell runs without a file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/germanamz/fabricator/pkg/display"
	"gopkg.in/yaml.v3"
)

// StartupPolicy decides what happens when a component fails to initialize.
type StartupPolicy string

const (
	// Lenient reports the failure and keeps starting the remaining
	// components; the shell runs degraded.
	Lenient StartupPolicy = "lenient"
	// Strict reports the failure and aborts startup.
	Strict StartupPolicy = "strict"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "fabricator.yaml"

// Config is the top-level shell configuration.
type Config struct {
	Prompt        string           `yaml:"prompt"`
	TickInterval  string           `yaml:"tick_interval"` // Idle wait between loop iterations, e.g. "100ms".
	StartupPolicy StartupPolicy    `yaml:"startup_policy"`
	Color         bool             `yaml:"color"`
	BannerStyle   string           `yaml:"banner_style"` // Colour name, e.g. "bright-cyan".
	Log           LogConfig        `yaml:"log"`
	Components    ComponentsConfig `yaml:"components"`
}

// LogConfig controls the diagnostic log written to stderr in verbose mode.
// Console output is not affected.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error.
}

// ComponentsConfig selects which standard components are registered.
type ComponentsConfig struct {
	Disabled []string `yaml:"disabled,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Prompt:        "<fabricatorguest>> ",
		TickInterval:  "100ms",
		StartupPolicy: Lenient,
		Color:         true,
		BannerStyle:   "bright-cyan",
		Log:           LogConfig{Level: "info"},
	}
}

// Load reads a YAML file on top of Default. Environment variables referenced
// as ${VAR} or $VAR are expanded before parsing.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration
	if err != nil {
		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	switch c.StartupPolicy {
	case Lenient, Strict:
	default:
		return fmt.Errorf("config: unknown startup_policy %q (want %q or %q)", c.StartupPolicy, Lenient, Strict)
	}

	if _, err := c.Tick(); err != nil {
		return err
	}

	if _, err := c.Banner(); err != nil {
		return err
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	for _, name := range c.Components.Disabled {
		if name == "" {
			return fmt.Errorf("config: components.disabled: empty component name")
		}
	}

	return nil
}

// Tick returns the parsed idle interval.
func (c Config) Tick() (time.Duration, error) {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0, fmt.Errorf("config: tick_interval: %w", err)
	}

	if d < 0 {
		return 0, fmt.Errorf("config: tick_interval: must not be negative, got %s", d)
	}

	return d, nil
}

// Banner returns the parsed banner style.
func (c Config) Banner() (display.Style, error) {
	st, ok := display.ParseStyle(c.BannerStyle)
	if !ok {
		return display.Default, fmt.Errorf("config: banner_style: unknown colour %q", c.BannerStyle)
	}

	return st, nil
}

// SlogLevel returns the parsed log level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("config: log.level: %w", err)
	}

	return lvl, nil
}

// Marshal encodes the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}

	return data, nil
}
