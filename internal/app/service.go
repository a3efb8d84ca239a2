// Package service wires validation, the equivalency solver and reference
// annotations into one chart-building pass for the presentation layer.
package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	eq "github.com/okian/pitcheq/internal/domain/equivalency"
	"github.com/okian/pitcheq/internal/domain/model"
	"github.com/okian/pitcheq/internal/domain/reference"
	"github.com/okian/pitcheq/pkg/logger"
	"github.com/okian/pitcheq/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// Service builds equivalency charts. It holds no per-calculation state and
// is safe for concurrent use.
type Service struct {
	references []reference.Point
	newID      func() string
	metrics    *metrics.Manager
	logger     logger.Logger

	calculations atomic.Int64
	rejected     atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithReferencePoints replaces the default annotation distances.
// A nil slice keeps the defaults; an empty one disables annotations.
func WithReferencePoints(points []reference.Point) Option {
	return func(s *Service) {
		if points != nil {
			s.references = append([]reference.Point(nil), points...)
		}
	}
}

// WithIDGenerator overrides how chart IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithMetrics records into m instead of the process-wide manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		references: reference.Defaults(),
		newID:      uuid.NewString,
		metrics:    metrics.Default(),
		logger:     logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Calculate validates the pair and builds its chart. Invalid input returns
// an *equivalency.InputError listing every violation; nothing is computed.
func (s *Service) Calculate(ctx context.Context, speed eq.Speed, distance eq.Distance) (*model.Chart, error) {
	start := time.Now()

	if err := eq.CheckInput(speed, distance); err != nil {
		s.reject(ctx, speed, distance, err)
		return nil, err
	}

	rt := eq.ReactionTime(speed, distance)
	distances := eq.DistanceRange()
	chart := &model.Chart{
		ID:           s.newID(),
		Input:        model.Point{Distance: distance, Speed: speed},
		ReactionTime: rt,
		Curve:        model.NewCurve(distances, eq.EquivalentSpeeds(rt, distances)),
		Annotations:  reference.Annotate(rt, distance, s.references),
	}

	s.calculations.Add(1)
	durationMs := float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond
	s.metrics.RecordCalculation(float64(rt), len(chart.Curve), durationMs)

	s.logger.Debug(ctx, "chart computed",
		logger.String("chart_id", chart.ID),
		logger.Float64("speed_mph", float64(speed)),
		logger.Float64("distance_ft", float64(distance)),
		logger.Float64("reaction_time_s", float64(rt)),
		logger.Int("points", len(chart.Curve)),
	)
	return chart, nil
}

func (s *Service) reject(ctx context.Context, speed eq.Speed, distance eq.Distance, err error) {
	s.rejected.Add(1)
	var msgs []string
	var ie *eq.InputError
	if errors.As(err, &ie) {
		for _, v := range ie.Violations {
			s.metrics.RecordInvalidInput(v.Field)
		}
		msgs = ie.Messages()
	}
	s.logger.Warn(ctx, "input rejected",
		logger.Float64("speed_mph", float64(speed)),
		logger.Float64("distance_ft", float64(distance)),
		logger.Strings("violations", msgs),
	)
}

// ReferencePoints returns a copy of the configured annotation distances.
func (s *Service) ReferencePoints() []reference.Point {
	return append([]reference.Point(nil), s.references...)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	return map[string]any{
		"calculations":    int(s.calculations.Load()),
		"rejected":        int(s.rejected.Load()),
		"referencePoints": len(s.references),
	}
}
