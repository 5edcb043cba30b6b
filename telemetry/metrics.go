package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the metrics collected from a reactive World and
// vtree Renderer.
type Config struct {
	Namespace   string
	Subsystem   string
	ConstLabels prometheus.Labels
	Buckets     []float64
	Registry    prometheus.Registerer
}

// Option configures a Config.
type Option func(*Config)

func WithNamespace(ns string) Option    { return func(c *Config) { c.Namespace = ns } }
func WithSubsystem(sub string) Option   { return func(c *Config) { c.Subsystem = sub } }
func WithRegistry(r prometheus.Registerer) Option {
	return func(c *Config) { c.Registry = r }
}
func WithConstLabels(l prometheus.Labels) Option {
	return func(c *Config) { c.ConstLabels = l }
}

func defaultConfig() Config {
	return Config{
		Namespace: "reactive",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is the Prometheus surface exposed by this package: counters for
// track/trigger volume and batch flushes, plus a histogram for component
// render duration.
type Metrics struct {
	tracksTotal    *prometheus.CounterVec
	triggersTotal  *prometheus.CounterVec
	batchFlushes   prometheus.Counter
	renderDuration *prometheus.HistogramVec
	renderErrors   *prometheus.CounterVec
}

// NewMetrics registers and returns a new Metrics instance against opts'
// registry (or the default global registerer).
func NewMetrics(opts ...Option) *Metrics {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		tracksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "tracks_total",
			Help:        "Total number of dependency tracks recorded.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"subscriber_kind"}),

		triggersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "triggers_total",
			Help:        "Total number of dependency triggers fired.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"subscriber_kind"}),

		batchFlushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "batch_flushes_total",
			Help:        "Total number of batch scheduler flushes.",
			ConstLabels: cfg.ConstLabels,
		}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "component_render_duration_seconds",
			Help:        "Duration of a component's render+patch cycle.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"component"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "component_render_errors_total",
			Help:        "Total number of component render panics recovered.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"component"}),
	}
}

func (m *Metrics) ObserveRender(component string, seconds float64, err error) {
	m.renderDuration.WithLabelValues(component).Observe(seconds)
	if err != nil {
		m.renderErrors.WithLabelValues(component).Inc()
	}
}

func (m *Metrics) IncBatchFlush() { m.batchFlushes.Inc() }
