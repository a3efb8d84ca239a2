package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	eq "github.com/okian/pitcheq/internal/domain/equivalency"
	"github.com/okian/pitcheq/internal/domain/reference"
)

// Environment variable names.
const (
	EnvPrefix = "PITCHEQ_"
	EnvConfig = "PITCHEQ_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PITCHEQ_CONFIG is set
//  3. env (prefix PITCHEQ_)
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// PITCHEQ_DEFAULT_SPEED -> default_speed. Underscores are kept to match
	// the flat koanf tags; PITCHEQ_CONFIG itself is not a config key.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		if s == EnvConfig {
			return ""
		}
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	// Reference points are a list; decoding it over the default slice would
	// merge element-wise, so defaults are only filled in when unset.
	cfg := *New()
	cfg.ReferencePoints = nil
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if cfg.ReferencePoints == nil {
		cfg.ReferencePoints = reference.Defaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case FormatTable, FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("%w: unknown output_format %q", ErrInvalidConfig, c.OutputFormat)
	}
	if err := eq.CheckInput(eq.Speed(c.DefaultSpeed), eq.Distance(c.DefaultDistance)); err != nil {
		return fmt.Errorf("%w: defaults: %w", ErrInvalidConfig, err)
	}
	points, err := reference.Check(c.ReferencePoints)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	c.ReferencePoints = points
	return nil
}
