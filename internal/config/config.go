// Package config provides run configuration loading for swarm.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/felixgeelhaar/swarm/internal/errors"
)

// Config holds all run-wide settings.
type Config struct {
	Run RunOptions `koanf:"run"`
	Log LogOptions `koanf:"log"`
}

// RunOptions controls the swarm lifecycle.
type RunOptions struct {
	// MinScore is the review score threshold every feature must reach
	MinScore int `koanf:"min_score"`

	// MaxIterations bounds the implement loop per feature
	MaxIterations int `koanf:"max_iterations"`

	// MaxQuestions bounds the clarify stage
	MaxQuestions int `koanf:"max_questions"`

	// SkipClarify opts out of clarifying questions; the assumptions
	// artifact is still written
	SkipClarify bool `koanf:"skip_clarify"`

	// MaxTokens is the per-call token limit passed to the provider
	MaxTokens int `koanf:"max_tokens"`

	// Temperature is the sampling temperature for agent calls
	Temperature float64 `koanf:"temperature"`

	// OutputPath is where run artifacts (summary) are written,
	// relative to the project path unless absolute
	OutputPath string `koanf:"output_path"`
}

// LogOptions controls structured logging.
type LogOptions struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the hardcoded configuration defaults.
func Default() Config {
	return Config{
		Run: RunOptions{
			MinScore:      85,
			MaxIterations: 3,
			MaxQuestions:  5,
			MaxTokens:     4096,
			Temperature:   0.7,
			OutputPath:    "output",
		},
		Log: LogOptions{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the effective configuration.
//
// Precedence (highest to lowest):
//  1. Environment variables (SWARM_RUN_MIN_SCORE, SWARM_LOG_LEVEL, ...)
//  2. YAML config file, if configPath names an existing file
//  3. Hardcoded defaults
//
// Environment variables are prefixed with SWARM_ and use underscore
// separators; the first segment selects the section:
//
//	SWARM_RUN_MIN_SCORE  -> run.min_score
//	SWARM_LOG_LEVEL      -> log.level
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	cfg := Default()

	// Layer 3: file (optional)
	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, errors.NewConfigLoadError(configPath, err)
			}
		} else if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, errors.NewConfigLoadError(configPath, err)
		}
	}

	// Layer 2: environment overlay
	if err := k.Load(env.Provider("SWARM_", ".", func(s string) string {
		// SWARM_RUN_MIN_SCORE -> run.min_score
		trimmed := strings.ToLower(strings.TrimPrefix(s, "SWARM_"))
		parts := strings.SplitN(trimmed, "_", 2)
		if len(parts) == 1 {
			return trimmed
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, errors.NewConfigLoadError("environment", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.NewConfigLoadError(configPath, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Run.MinScore < 0 || cfg.Run.MinScore > 100 {
		return errors.New(errors.ErrCodeConfigInvalid, "run.min_score must be between 0 and 100")
	}
	if cfg.Run.MaxIterations < 1 {
		return errors.New(errors.ErrCodeConfigInvalid, "run.max_iterations must be at least 1")
	}
	if cfg.Run.MaxQuestions < 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "run.max_questions cannot be negative")
	}
	if cfg.Run.Temperature < 0 || cfg.Run.Temperature > 2 {
		return errors.New(errors.ErrCodeConfigInvalid, "run.temperature must be between 0 and 2")
	}
	return nil
}
