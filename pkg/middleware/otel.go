package middleware

import (
	"context"
	"fmt"

	"github.com/vango-dev/reconcile/pkg/reconcile"
	"github.com/vango-dev/reconcile/pkg/vdom"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for reconcile spans.
const defaultTracerName = "reconcile"

// OTelConfig configures the OpenTelemetry hook set.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "reconcile").
	TracerName string

	// Provider supplies the tracer (default: the global provider).
	Provider trace.TracerProvider

	// Filter determines which positions get a span.
	// If nil, component and fragment positions are traced.
	Filter func(n reconcile.Node) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(n reconcile.Node) []attribute.KeyValue

	// Context is the parent of every top-level span (default: Background).
	Context context.Context
}

// OTelOption configures the OpenTelemetry hook set.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.Provider = tp
	}
}

// WithNodeFilter sets a filter function for positions.
func WithNodeFilter(filter func(n reconcile.Node) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(n reconcile.Node) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// WithParentContext sets the context top-level spans are started from.
func WithParentContext(ctx context.Context) OTelOption {
	return func(c *OTelConfig) {
		c.Context = ctx
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
		Filter:     componentsOnly,
		Context:    context.Background(),
	}
}

func componentsOnly(n reconcile.Node) bool {
	k := n.Kind()
	return k == vdom.KindComponent || k == vdom.KindFragment
}

// Tracing turns hook callbacks into nested spans.
type Tracing struct {
	config OTelConfig
	tracer trace.Tracer
	stack  []openSpan
}

type openSpan struct {
	h    reconcile.Handle
	ctx  context.Context
	span trace.Span
}

// NewTracing creates a tracing hook set.
//
// Spans:
//   - "reconcile <Name>" for each traced position, child of the nearest
//     traced ancestor being diffed
//   - "reconcile.commit" for each commit, with the callback count
//
// Failures are recorded on the span of the failing position; failures
// outside a diff (refs, unmount, callbacks) are recorded on the innermost
// open span or on a short span of their own.
func NewTracing(opts ...OTelOption) *Tracing {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Filter == nil {
		config.Filter = componentsOnly
	}
	if config.Context == nil {
		config.Context = context.Background()
	}

	var tracer trace.Tracer
	if config.Provider != nil {
		tracer = config.Provider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}
	return &Tracing{config: config, tracer: tracer}
}

// Hooks returns the hook set that drives t.
func (t *Tracing) Hooks() reconcile.Hooks {
	return reconcile.Hooks{
		BeforeDiff: t.begin,
		AfterDiff: func(n reconcile.Node) {
			t.end(n.Handle(), nil)
		},
		BeforeCommit: t.commit,
		OnError:      t.failure,
	}
}

// Open returns the number of spans currently open.
func (t *Tracing) Open() int { return len(t.stack) }

func (t *Tracing) parent() context.Context {
	if n := len(t.stack); n > 0 {
		return t.stack[n-1].ctx
	}
	return t.config.Context
}

func (t *Tracing) attributes(n reconcile.Node) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("reconcile.kind", kindLabel(n.Kind())),
		attribute.Int("reconcile.depth", n.Depth()),
	}
	if key := n.Key(); key != "" {
		attrs = append(attrs, attribute.String("reconcile.key", key))
	}
	if t.config.AttributeExtractor != nil {
		attrs = append(attrs, t.config.AttributeExtractor(n)...)
	}
	return attrs
}

func (t *Tracing) begin(n reconcile.Node) {
	if !t.config.Filter(n) {
		return
	}
	ctx, span := t.tracer.Start(t.parent(), fmt.Sprintf("reconcile %s", n.Name()),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(t.attributes(n)...),
	)
	t.stack = append(t.stack, openSpan{h: n.Handle(), ctx: ctx, span: span})
}

// end closes the span of h and every span opened above it. Spans above h
// belong to diffs that failed without an AfterDiff of their own.
func (t *Tracing) end(h reconcile.Handle, err error) bool {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i].h != h {
			continue
		}
		for j := len(t.stack) - 1; j >= i; j-- {
			s := t.stack[j].span
			if j == i && err != nil {
				s.RecordError(err)
				s.SetStatus(codes.Error, err.Error())
			} else if j == i {
				s.SetStatus(codes.Ok, "")
			}
			s.End()
		}
		t.stack = t.stack[:i]
		return true
	}
	return false
}

func (t *Tracing) commit(root reconcile.Node, queue []reconcile.Node) {
	_, span := t.tracer.Start(t.parent(), "reconcile.commit",
		trace.WithAttributes(
			attribute.String("reconcile.root", root.Name()),
			attribute.Int("reconcile.callbacks", len(queue)),
		),
	)
	span.End()
}

func (t *Tracing) failure(f *reconcile.Failure) {
	if f.Phase == reconcile.PhaseRender && t.end(f.Node.Handle(), f) {
		return
	}
	attrs := trace.WithAttributes(
		attribute.String("reconcile.phase", f.Phase.String()),
		attribute.String("reconcile.code", f.Phase.Code()),
		attribute.String("reconcile.node", f.Node.Name()),
	)
	if n := len(t.stack); n > 0 {
		t.stack[n-1].span.RecordError(f, attrs)
		return
	}
	_, span := t.tracer.Start(t.config.Context, "reconcile.failure", attrs)
	span.RecordError(f)
	span.SetStatus(codes.Error, f.Error())
	span.End()
}
