package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/reconcile/pkg/reconcile"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// MetricsConfig configures the Prometheus hook set.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reconcile").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus hook set.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "reconcile",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors fed by the hook set and by the
// stream server.
type Metrics struct {
	diffs         *prometheus.CounterVec
	renders       *prometheus.CounterVec
	unmounts      prometheus.Counter
	commits       prometheus.Counter
	callbacks     prometheus.Histogram
	failures      *prometheus.CounterVec
	passDuration  prometheus.Histogram
	mutationsSent prometheus.Counter
	batchesSent   prometheus.Counter
	activeStreams prometheus.Gauge
	wsErrors      *prometheus.CounterVec
}

// pass times one top-level diff. outer is the position whose BeforeDiff
// opened it.
type pass struct {
	outer   reconcile.Handle
	started time.Time
	open    bool
}

// NewMetrics registers the reconcile collectors.
//
// Metrics collected:
//   - reconcile_diffs_total: positions diffed, by kind
//   - reconcile_component_renders_total: component renders, by component
//   - reconcile_unmounts_total: positions torn down
//   - reconcile_commits_total: commit passes
//   - reconcile_commit_callbacks: instances with callbacks per commit
//   - reconcile_failures_total: recovered failures, by phase and code
//   - reconcile_pass_duration_seconds: duration of each top-level diff
//   - reconcile_mutations_sent_total: host mutations streamed to clients
//   - reconcile_batches_sent_total: mutation batches streamed to clients
//   - reconcile_active_streams: open websocket streams
//   - reconcile_websocket_errors_total: websocket errors, by type
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		diffs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diffs_total",
			Help:        "Total number of positions diffed",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_renders_total",
			Help:        "Total number of component renders",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),

		unmounts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unmounts_total",
			Help:        "Total number of positions torn down",
			ConstLabels: config.ConstLabels,
		}),

		commits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commits_total",
			Help:        "Total number of commit passes",
			ConstLabels: config.ConstLabels,
		}),

		callbacks: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commit_callbacks",
			Help:        "Instances with pending callbacks per commit",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),

		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "failures_total",
			Help:        "Total number of recovered failures",
			ConstLabels: config.ConstLabels,
		}, []string{"phase", "code"}),

		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Duration of each top-level diff in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		mutationsSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mutations_sent_total",
			Help:        "Total number of host mutations sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		batchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "batches_sent_total",
			Help:        "Total number of mutation batches sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		activeStreams: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_streams",
			Help:        "Number of open WebSocket streams",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Hooks returns a hook set that feeds m. Each Renderer needs its own
// set; the collectors behind them are shared.
func (m *Metrics) Hooks() reconcile.Hooks {
	p := &pass{}
	return reconcile.Hooks{
		BeforeDiff: func(n reconcile.Node) {
			if !p.open {
				p.open = true
				p.outer = n.Handle()
				p.started = time.Now()
			}
			m.diffs.WithLabelValues(kindLabel(n.Kind())).Inc()
		},
		BeforeRender: func(n reconcile.Node) {
			m.renders.WithLabelValues(n.Name()).Inc()
		},
		AfterDiff: func(n reconcile.Node) {
			if p.open && n.Handle() == p.outer {
				m.endPass(p)
			}
		},
		OnUnmount: func(reconcile.Node) {
			m.unmounts.Inc()
		},
		BeforeCommit: func(_ reconcile.Node, queue []reconcile.Node) {
			m.commits.Inc()
			m.callbacks.Observe(float64(len(queue)))
		},
		OnError: func(f *reconcile.Failure) {
			m.failures.WithLabelValues(f.Phase.String(), f.Phase.Code()).Inc()
			if f.Phase == reconcile.PhaseRender && p.open && f.Node.Handle() == p.outer {
				m.endPass(p)
			}
		},
	}
}

func (m *Metrics) endPass(p *pass) {
	m.passDuration.Observe(time.Since(p.started).Seconds())
	*p = pass{}
}

// kindLabel keeps the kind label set closed.
func kindLabel(k vdom.VKind) string {
	switch k {
	case vdom.KindElement:
		return "element"
	case vdom.KindText:
		return "text"
	case vdom.KindFragment:
		return "fragment"
	case vdom.KindComponent:
		return "component"
	default:
		return "unknown"
	}
}

// RecordBatch records one mutation batch of n mutations sent to a client.
func (m *Metrics) RecordBatch(n int) {
	m.batchesSent.Inc()
	m.mutationsSent.Add(float64(n))
}

// StreamOpened records a new websocket stream.
func (m *Metrics) StreamOpened() {
	m.activeStreams.Inc()
}

// StreamClosed records a closed websocket stream.
func (m *Metrics) StreamClosed() {
	m.activeStreams.Dec()
}

// RecordWebSocketError records a WebSocket error. errorType should come
// from a small closed set ("upgrade", "read", "write", "decode").
func (m *Metrics) RecordWebSocketError(errorType string) {
	m.wsErrors.WithLabelValues(errorType).Inc()
}
