// Package config defines calculator configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	eq "github.com/okian/pitcheq/internal/domain/equivalency"
	"github.com/okian/pitcheq/internal/domain/reference"
)

// Output formats understood by the renderer.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// DefaultSpeed is used when no speed is given on the command line (mph).
	DefaultSpeed float64 `koanf:"default_speed"`

	// DefaultDistance is used when no distance is given (ft).
	DefaultDistance float64 `koanf:"default_distance"`

	// OutputFormat is one of table, csv, json.
	OutputFormat string `koanf:"output_format"`

	// MetricsFile, when set, receives a Prometheus textfile after the run.
	MetricsFile string `koanf:"metrics_file"`

	// ReferencePoints are the named distances annotated on every chart.
	ReferencePoints []reference.Point `koanf:"reference_points"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		DefaultSpeed:    90,
		DefaultDistance: float64(eq.MaxDistance),
		OutputFormat:    FormatTable,
		ReferencePoints: reference.Defaults(),
	}
}
