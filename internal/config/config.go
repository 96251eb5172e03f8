// Package config loads diceroll settings from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config holds limits and interactive settings for the diceroll CLI.
type Config struct {
	// MaxDice caps the number of dice one term may roll. Zero disables the cap.
	MaxDice int `env:"DICEROLL_MAX_DICE" envDefault:"1000"`
	// MaxSides caps the number of sides a die may have. Zero disables the cap.
	MaxSides int `env:"DICEROLL_MAX_SIDES" envDefault:"10000"`
	// History is the number of results the REPL remembers for the session.
	History int `env:"DICEROLL_HISTORY" envDefault:"100"`
	// Prompt is the REPL prompt.
	Prompt string `env:"DICEROLL_PROMPT" envDefault:"roll> "`
}

// Load reads the configuration from environment variables.
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

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.MaxDice < 0:
		return fmt.Errorf("max dice must be non-negative, got %d", c.MaxDice)
	case c.MaxSides < 0:
		return fmt.Errorf("max sides must be non-negative, got %d", c.MaxSides)
	case c.History < 0:
		return fmt.Errorf("history size must be non-negative, got %d", c.History)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
