// Package config holds the CLI defaults that can be set from the environment.
package config

import (
	"fmt"

	"github.com/voxelsplace/sierpinski/meshpack"
	"github.com/voxelsplace/sierpinski/sierpinski"
)

// Config is the environment-provided default for every generation flag.
type Config struct {
	Level       int    `env:"SIERPINSKI_LEVEL" envDefault:"2"`
	MaxLevel    int    `env:"SIERPINSKI_MAX_LEVEL" envDefault:"5"`
	Compression string `env:"SIERPINSKI_COMPRESSION" envDefault:"zstd"`
	Workers     int    `env:"SIERPINSKI_WORKERS" envDefault:"0"`
	Weld        bool   `env:"SIERPINSKI_WELD" envDefault:"false"`
	Verbose     bool   `env:"SIERPINSKI_VERBOSE" envDefault:"false"`
}

// Load parses Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the ranges the CLI relies on.
func (c Config) Validate() error {
	if c.MaxLevel < 0 || c.MaxLevel > sierpinski.MaxLevel {
		return fmt.Errorf("max level %d outside [0, %d]", c.MaxLevel, sierpinski.MaxLevel)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d is negative", c.Workers)
	}
	if _, err := meshpack.ParseCompression(c.Compression); err != nil {
		return err
	}
	return nil
}

// CheckLevel rejects levels outside [0, MaxLevel].
func (c Config) CheckLevel(level int) error {
	if level < 0 || level > c.MaxLevel {
		return fmt.Errorf("level %d outside [0, %d]: %w", level, c.MaxLevel, sierpinski.ErrInvalidArgument)
	}
	return nil
}
