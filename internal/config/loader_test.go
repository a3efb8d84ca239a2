package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/pitcheq/internal/config"
	eq "github.com/okian/pitcheq/internal/domain/equivalency"
	"github.com/okian/pitcheq/internal/domain/reference"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PITCHEQ_DEFAULT_SPEED", "72.5")
			_ = os.Setenv("PITCHEQ_DEFAULT_DISTANCE", "46")
			_ = os.Setenv("PITCHEQ_OUTPUT_FORMAT", "json")
			_ = os.Setenv("PITCHEQ_LOG_LEVEL", "debug")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DefaultSpeed, convey.ShouldEqual, 72.5)
				convey.So(cfg.DefaultDistance, convey.ShouldEqual, 46.0)
				convey.So(cfg.OutputFormat, convey.ShouldEqual, config.FormatJSON)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := createTempConfigFile(t, `
default_speed: 65
output_format: csv
metrics_file: /tmp/pitcheq.prom
reference_points:
  - name: "43ft (Softball)"
    distance: 43
  - name: "54ft (14U)"
    distance: 54
`)
			_ = os.Setenv("PITCHEQ_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DefaultSpeed, convey.ShouldEqual, 65.0)
				convey.So(cfg.DefaultDistance, convey.ShouldEqual, 60.5)
				convey.So(cfg.OutputFormat, convey.ShouldEqual, config.FormatCSV)
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/pitcheq.prom")
			})

			convey.Convey("And configured reference points replace the defaults", func() {
				convey.So(cfg.ReferencePoints, convey.ShouldResemble, []reference.Point{
					{Name: "43ft (Softball)", Distance: eq.Distance(43)},
					{Name: "54ft (14U)", Distance: eq.Distance(54)},
				})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := createTempConfigFile(t, "default_speed: 65\noutput_format: csv\n")
			_ = os.Setenv("PITCHEQ_CONFIG", path)
			_ = os.Setenv("PITCHEQ_DEFAULT_SPEED", "80")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DefaultSpeed, convey.ShouldEqual, 80.0)
				convey.So(cfg.OutputFormat, convey.ShouldEqual, config.FormatCSV)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			path := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("PITCHEQ_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("PITCHEQ_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a numeric variable is not a number", func() {
			_ = os.Setenv("PITCHEQ_DEFAULT_SPEED", "fast")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidation(t *testing.T) {
	convey.Convey("Given config validation", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When the default distance is outside the domain", func() {
			_ = os.Setenv("PITCHEQ_DEFAULT_DISTANCE", "70")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an invalid config error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(err, eq.ErrInvalidInput), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the output format is unknown", func() {
			_ = os.Setenv("PITCHEQ_OUTPUT_FORMAT", "svg")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a reference point is out of range", func() {
			path := createTempConfigFile(t, "reference_points:\n  - name: far\n    distance: 90\n")
			_ = os.Setenv("PITCHEQ_CONFIG", path)
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then the reference error is wrapped", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(err, reference.ErrOutOfDomain), convey.ShouldBeTrue)
			})
		})
	})
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pitcheq.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearConfigEnvVars() {
	for _, k := range []string{
		"PITCHEQ_CONFIG",
		"PITCHEQ_LOG_LEVEL",
		"PITCHEQ_LOG_FORMAT",
		"PITCHEQ_DEFAULT_SPEED",
		"PITCHEQ_DEFAULT_DISTANCE",
		"PITCHEQ_OUTPUT_FORMAT",
		"PITCHEQ_METRICS_FILE",
	} {
		_ = os.Unsetenv(k)
	}
}
