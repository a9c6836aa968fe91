package middleware

import (
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/host/memhost"
	"github.com/vango-dev/reconcile/pkg/reconcile"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

var greeting = component.Func("Greeting", func(props component.Props, _ any) any {
	return vdom.Div(props["name"])
})

var boom = component.Func("Boom", func(component.Props, any) any {
	panic("boom")
})

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func newMetricsRenderer(m *Metrics) (*reconcile.Renderer, *memhost.Node) {
	doc := memhost.NewDocument()
	container := doc.Element("main")
	r := reconcile.New(doc, reconcile.WithLogger(quietLogger()), reconcile.WithHooks(m.Hooks()))
	return r, container
}

func TestMetricsHooks_CountsRenderAndUnmount(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	r, container := newMetricsRenderer(m)

	r.Render(container, vdom.C(greeting, vdom.Props{"name": "Ada"}))

	for kind, want := range map[string]float64{"fragment": 1, "component": 1, "element": 1, "text": 1} {
		if got := metricCounterValue(t, m.diffs.WithLabelValues(kind)); got != want {
			t.Errorf("diffs_total(%s) = %v, want %v", kind, got, want)
		}
	}
	if got := metricCounterValue(t, m.renders.WithLabelValues("Greeting")); got != 1 {
		t.Errorf("component_renders_total(Greeting) = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.commits); got != 1 {
		t.Errorf("commits_total = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.passDuration); got != 1 {
		t.Errorf("pass_duration_seconds count = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.callbacks); got != 1 {
		t.Errorf("commit_callbacks count = %v, want 1", got)
	}

	r.Unmount(container)
	if got := metricCounterValue(t, m.unmounts); got != 4 {
		t.Errorf("unmounts_total = %v, want 4", got)
	}
}

func TestMetricsHooks_RecordsFailures(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	r, container := newMetricsRenderer(m)

	r.Render(container, vdom.Div(vdom.C(boom, nil), vdom.Span("ok")))

	if got := metricCounterValue(t, m.failures.WithLabelValues("render", "R001")); got != 1 {
		t.Errorf("failures_total(render, R001) = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.passDuration); got != 1 {
		t.Errorf("pass_duration_seconds count = %v, want 1", got)
	}

	// A second render opens a fresh pass.
	r.Render(container, vdom.Div(vdom.Span("ok")))
	if got := metricHistogramCount(t, m.passDuration); got != 2 {
		t.Errorf("pass_duration_seconds count = %v, want 2", got)
	}
}

func TestMetricsHooks_FailedRootClosesPass(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	hooks := m.Hooks()

	doc := memhost.NewDocument()
	container := doc.Element("main")
	r := reconcile.New(doc,
		reconcile.WithLogger(quietLogger()),
		reconcile.WithHooks(hooks),
		reconcile.WithHooks(reconcile.Hooks{
			BeforeDiff: func(n reconcile.Node) {
				if n.Depth() == 0 {
					panic("root hook")
				}
			},
		}),
	)

	r.Render(container, vdom.Div())
	if got := metricHistogramCount(t, m.passDuration); got != 1 {
		t.Errorf("pass_duration_seconds count = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.failures.WithLabelValues("render", "R001")); got != 1 {
		t.Errorf("failures_total(render, R001) = %v, want 1", got)
	}
}

func TestMetrics_TransportRecorders(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))

	m.RecordBatch(3)
	m.RecordBatch(2)
	m.StreamOpened()
	m.StreamOpened()
	m.StreamClosed()
	m.RecordWebSocketError("read")

	if got := metricCounterValue(t, m.batchesSent); got != 2 {
		t.Errorf("batches_sent_total = %v, want 2", got)
	}
	if got := metricCounterValue(t, m.mutationsSent); got != 5 {
		t.Errorf("mutations_sent_total = %v, want 5", got)
	}
	if got := metricGaugeValue(t, m.activeStreams); got != 1 {
		t.Errorf("active_streams = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.wsErrors.WithLabelValues("read")); got != 1 {
		t.Errorf("websocket_errors_total(read) = %v, want 1", got)
	}
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	// Registering twice against one registry panics; separate registries
	// must not.
	NewMetrics(WithRegistry(prometheus.NewRegistry()))
	NewMetrics(WithRegistry(prometheus.NewRegistry()))
}

func TestKindLabel(t *testing.T) {
	tests := []struct {
		kind vdom.VKind
		want string
	}{
		{vdom.KindElement, "element"},
		{vdom.KindText, "text"},
		{vdom.KindFragment, "fragment"},
		{vdom.KindComponent, "component"},
		{0, "unknown"},
	}
	for _, tt := range tests {
		if got := kindLabel(tt.kind); got != tt.want {
			t.Errorf("kindLabel(%v) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
