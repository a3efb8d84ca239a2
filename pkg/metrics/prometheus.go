// Package metrics provides Prometheus metrics for the pitch equivalency calculator.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for invalid input counters.
const (
	FieldSpeed    = "speed"
	FieldDistance = "distance"
)

// Manager manages all Prometheus metrics for the calculator.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	reactionBuckets  []float64
	constLabels      prometheus.Labels
	registry         *prometheus.Registry

	// Core calculation metrics
	calculations        prometheus.Counter
	invalidInputs       *prometheus.CounterVec
	reactionTime        prometheus.Histogram
	calculationDuration prometheus.Histogram
	curvePoints         prometheus.Gauge

	// Presentation metrics
	renders      *prometheus.CounterVec
	renderErrors *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager. Without WithPrometheusRegistry
// it registers on a fresh private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pitcheq",
		subsystem:        "calculator",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		reactionBuckets:  []float64{0.2, 0.3, 0.35, 0.4, 0.45, 0.5, 0.6, 0.8, 1.0},
		constLabels:      prometheus.Labels{},
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.calculations = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "calculations_total",
		Help:        "Total number of equivalency charts computed",
		ConstLabels: m.constLabels,
	})

	m.invalidInputs = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "invalid_inputs_total",
			Help:        "Validation failures by field",
			ConstLabels: m.constLabels,
		},
		[]string{"field"},
	)

	m.reactionTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reaction_time_seconds",
		Help:        "Distribution of computed reaction times",
		Buckets:     m.reactionBuckets,
		ConstLabels: m.constLabels,
	})

	m.calculationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "calculation_duration_milliseconds",
		Help:        "Time spent building one chart",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.curvePoints = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "curve_points",
		Help:        "Number of samples in the last computed curve",
		ConstLabels: m.constLabels,
	})

	m.renders = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "renders_total",
			Help:        "Charts rendered by output format",
			ConstLabels: m.constLabels,
		},
		[]string{"format"},
	)

	m.renderErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "render_errors_total",
			Help:        "Render failures by output format",
			ConstLabels: m.constLabels,
		},
		[]string{"format"},
	)
}

// RecordCalculation records a successful chart computation.
func (m *Manager) RecordCalculation(reactionTimeSec float64, points int, durationMs float64) {
	m.calculations.Inc()
	m.reactionTime.Observe(reactionTimeSec)
	m.curvePoints.Set(float64(points))
	m.calculationDuration.Observe(durationMs)
}

// RecordInvalidInput increments the validation failure counter for field.
func (m *Manager) RecordInvalidInput(field string) {
	m.invalidInputs.WithLabelValues(field).Inc()
}

// RecordRender counts a rendered chart.
func (m *Manager) RecordRender(format string) {
	m.renders.WithLabelValues(format).Inc()
}

// RecordRenderError counts a failed render.
func (m *Manager) RecordRenderError(format string) {
	m.renderErrors.WithLabelValues(format).Inc()
}

// Registry returns the registry the manager's metrics live in.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics in text exposition format to path,
// for collection by node_exporter's textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}

// Default returns the process-wide manager.
func Default() *Manager {
	return globalManager
}

// RecordCalculation records a successful chart computation on the global manager.
func RecordCalculation(reactionTimeSec float64, points int, durationMs float64) {
	globalManager.RecordCalculation(reactionTimeSec, points, durationMs)
}

// RecordInvalidInput increments the global validation failure counter.
func RecordInvalidInput(field string) {
	globalManager.RecordInvalidInput(field)
}

// RecordRender counts a rendered chart on the global manager.
func RecordRender(format string) {
	globalManager.RecordRender(format)
}

// RecordRenderError counts a failed render on the global manager.
func RecordRenderError(format string) {
	globalManager.RecordRenderError(format)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
