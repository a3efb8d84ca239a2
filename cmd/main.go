package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/okian/pitcheq/internal/adapters/render"
	app "github.com/okian/pitcheq/internal/app"
	"github.com/okian/pitcheq/internal/config"
	eq "github.com/okian/pitcheq/internal/domain/equivalency"
	"github.com/okian/pitcheq/pkg/logger"
	"github.com/okian/pitcheq/pkg/metrics"
)

// Process exit codes.
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

// keepToken keeps the previous value in interactive mode.
const keepToken = "-"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type flags struct {
	speed       float64
	distance    float64
	format      string
	metricsFile string
	interactive bool
	help        bool
	set         map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{set: map[string]bool{}}
	fs := flag.NewFlagSet("pitcheq", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&f.speed, "speed", 0, "Pitch speed in mph (default from config, 90)")
	fs.Float64Var(&f.distance, "distance", 0, "Release distance in feet, 15-60.5 (default from config, 60.5)")
	fs.StringVar(&f.format, "format", "", "Output format: table, csv or json")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	fs.BoolVar(&f.interactive, "interactive", false, "Read '<speed> <distance>' lines from stdin; '-' keeps the last value")
	fs.BoolVar(&f.help, "help", false, "Show help")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if f.help {
		showHelp(stdout)
		return exitOK
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "failed to load config: "+err.Error())
		return exitInvalid
	}
	if err := logger.Init(logger.WithWriter(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		fmt.Fprintln(stderr, "failed to initialize logging: "+err.Error())
		return exitInvalid
	}
	log := logger.Named("cli")
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Flags win over config.
	format := cfg.OutputFormat
	if f.set["format"] {
		format = f.format
	}
	r, err := render.New(format)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitUsage
	}
	speed, distance := eq.Speed(cfg.DefaultSpeed), eq.Distance(cfg.DefaultDistance)
	if f.set["speed"] {
		speed = eq.Speed(f.speed)
	}
	if f.set["distance"] {
		distance = eq.Distance(f.distance)
	}
	metricsFile := cfg.MetricsFile
	if f.set["metrics-file"] {
		metricsFile = f.metricsFile
	}

	svc := app.New(
		app.WithLogger(logger.Named("service")),
		app.WithReferencePoints(cfg.ReferencePoints),
	)

	var code int
	if f.interactive {
		code = interactive(ctx, svc, r, app.NewSession(speed, distance), stdin, stdout, stderr)
	} else {
		_, code = step(ctx, svc, r, app.NewSession(speed, distance), app.Input{}, stdout, stderr)
	}

	if metricsFile != "" {
		if err := metrics.Default().WriteTextfile(metricsFile); err != nil {
			log.Error(ctx, "metrics textfile not written", logger.String("path", metricsFile), logger.Error(err))
		}
	}
	log.Debug(ctx, "run finished", logger.Any("stats", svc.GetStats()))
	return code
}

// step computes and renders one chart. Validation messages go to stderr
// and leave the session unchanged.
func step(ctx context.Context, svc *app.Service, r render.Renderer, sess app.Session, in app.Input, stdout, stderr io.Writer) (app.Session, int) {
	next, chart, err := svc.Step(ctx, sess, in)
	if err != nil {
		var ie *eq.InputError
		if errors.As(err, &ie) {
			_ = render.Messages(stderr, ie.Messages())
		} else {
			fmt.Fprintln(stderr, err.Error())
		}
		return sess, exitInvalid
	}
	if err := r.Render(stdout, chart); err != nil {
		metrics.RecordRenderError(r.Format())
		fmt.Fprintln(stderr, err.Error())
		return next, exitInvalid
	}
	metrics.RecordRender(r.Format())
	return next, exitOK
}

// interactive renders one chart per input line until EOF, "q" or ctx is done.
// It exits non-zero only if the last line was rejected.
func interactive(ctx context.Context, svc *app.Service, r render.Renderer, sess app.Session, stdin io.Reader, stdout, stderr io.Writer) int {
	code := exitOK
	sc := bufio.NewScanner(stdin)
	for sc.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "q" || line == "quit" {
			break
		}
		in, err := parseLine(line)
		if err != nil {
			fmt.Fprintln(stderr, "error: "+err.Error())
			code = exitUsage
			continue
		}
		sess, code = step(ctx, svc, r, sess, in, stdout, stderr)
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintln(stderr, "read input: "+err.Error())
		return exitInvalid
	}
	return code
}

// parseLine reads "<speed> [distance]". A token that is not a number becomes
// NaN so the validator reports it like any other invalid value.
func parseLine(line string) (app.Input, error) {
	fields := strings.Fields(line)
	if len(fields) > 2 {
		return app.Input{}, fmt.Errorf("expected '<speed> [distance]', got %q", line)
	}
	var in app.Input
	if tok := fields[0]; tok != keepToken {
		s := eq.Speed(parseNumber(tok))
		in.Speed = &s
	}
	if len(fields) == 2 && fields[1] != keepToken {
		d := eq.Distance(parseNumber(fields[1]))
		in.Distance = &d
	}
	return in, nil
}

func parseNumber(tok string) float64 {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func showHelp(w io.Writer) {
	fmt.Fprint(w, `Pitch Speed Equivalency Calculator
==================================

Computes the reaction time of a pitch and the speeds that give the same
reaction time at every distance from 15 ft to 60.5 ft (0.5 ft steps).

Usage:
  pitcheq [options]

Options:
  -speed float        Pitch speed in mph (default 90)
  -distance float     Release distance in feet, 15-60.5 (default 60.5)
  -format string      table, csv or json (default table)
  -interactive        Read '<speed> <distance>' lines from stdin; '-' keeps the last value
  -metrics-file path  Write Prometheus metrics after the run
  -help               Show this help message

Configuration:
  PITCHEQ_CONFIG points at a YAML file; PITCHEQ_* variables override it
  (e.g. PITCHEQ_DEFAULT_SPEED, PITCHEQ_OUTPUT_FORMAT, PITCHEQ_LOG_LEVEL).
  Flags override both.

Examples:
  pitcheq -speed 90 -distance 60.5
  pitcheq -speed 70 -distance 46 -format csv
  printf '90 60.5\n- 46\n' | pitcheq -interactive
`)
}
