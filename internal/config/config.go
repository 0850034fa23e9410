// Package config reads basc settings from the environment. Command-line
// flags override these values.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds environment-provided defaults for the CLI.
type Config struct {
	// Format is the output format: "text" or "json".
	Format string `env:"BASC_FORMAT" envDefault:"text"`

	// Archive is the SQLite program archive path. Empty disables archiving
	// unless --archive is passed.
	Archive string `env:"BASC_ARCHIVE"`

	// Verbose enables debug logging on stderr.
	Verbose bool `env:"BASC_VERBOSE" envDefault:"false"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("BASC_FORMAT: unsupported format %q (want text or json)", c.Format)
	}
}
