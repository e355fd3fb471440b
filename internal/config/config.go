// Package config loads the CLI configuration from opal.yaml.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level opal.yaml configuration.
type Config struct {
	// Prompt is the REPL prompt string.
	Prompt string `yaml:"prompt,omitempty"`

	// Color controls ANSI output: "auto" (default, on when stdout is a
	// terminal), "always", or "never".
	Color string `yaml:"color,omitempty"`

	// StorePath is the SQLite file holding sessions and definitions.
	// Defaults to opal.db next to the config file.
	StorePath string `yaml:"store_path,omitempty"`

	Log LogConfig `yaml:"log,omitempty"`
}

// LogConfig configures the CLI's logging.
type LogConfig struct {
	// File, when set, receives a JSON log stream alongside stderr.
	File string `yaml:"file,omitempty"`

	// Level is one of debug, info, warn, error. Defaults to info.
	Level string `yaml:"level,omitempty"`
}

// Default is the configuration used when no opal.yaml exists.
func Default() Config {
	return Config{
		Prompt:    "opal> ",
		Color:     "auto",
		StorePath: "opal.db",
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads path, falling back to defaults when the file does not exist.
// Fields missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q", c.Color)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}
