// Package config loads simulation settings from YAML.
package config

import (
	"bandit/experiments"
	"bandit/game"
	"bandit/meta"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when settings fail validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config contains everything needed for one estimate.
type Config struct {
	// Arms lists threshold to reward mappings, e.g. {0.6: 24, 1: 4}.
	Arms []game.ArmSpec `yaml:"arms"`

	RMax        int     `yaml:"r_max"`
	Games       int     `yaml:"games"`
	Alpha       float64 `yaml:"alpha"`
	TargetProb  float64 `yaml:"target_prob"`
	Experiments int     `yaml:"experiments"`
	Seed        uint64  `yaml:"seed"`

	// Goroutines bounds parallel experiments; 0 uses every CPU.
	Goroutines int `yaml:"goroutines"`

	// LogLevel is a zerolog level name: "debug", "info" (default), "warn" or "error".
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in bandit and constants.
func Default() *Config {
	return &Config{
		Arms:        meta.ARMS(),
		RMax:        meta.R_MAX,
		Games:       meta.N_GAMES,
		Alpha:       meta.ALPHA,
		TargetProb:  meta.TARGET_PROB,
		Experiments: meta.N_EXPERIMENTS,
		Seed:        meta.SEED,
		LogLevel:    "info",
	}
}

// LoadFromFile reads a YAML file over the defaults. Keys missing from the
// file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// Params returns the estimator constants.
func (c *Config) Params() experiments.Params {
	return experiments.Params{
		RMax:        c.RMax,
		Games:       c.Games,
		Alpha:       c.Alpha,
		TargetProb:  c.TargetProb,
		Experiments: c.Experiments,
		Seed:        c.Seed,
	}
}

// Bandit parses the configured arms.
func (c *Config) Bandit() (*game.Bandit, error) {
	b, err := game.ParseArms(c.Arms)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return b, nil
}

// Validate checks the arms and every constant before anything runs.
func (c *Config) Validate() error {
	b, err := c.Bandit()
	if err != nil {
		return err
	}
	if err := c.Params().Validate(b.K()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Goroutines < 0 {
		return fmt.Errorf("%w: goroutines must be non-negative, got %d", ErrInvalidConfig, c.Goroutines)
	}
	validLevels := map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("%w: invalid log level %q (valid: debug, info, warn, error)", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
