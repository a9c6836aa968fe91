// Package middleware provides observability hook sets for a reconcile.Renderer.
//
// Both sets are plain reconcile.Hooks values and compose with each other
// and with application hooks through reconcile.WithHooks.
//
// # Prometheus Metrics
//
// The metrics set counts diffs, component renders, unmounts, commits and
// failures, and times each top-level reconciliation pass:
//
//	m := middleware.NewMetrics(
//	    middleware.WithNamespace("myapp"),
//	)
//	r := reconcile.New(doc, reconcile.WithHooks(m.Hooks()))
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
//
// The stream server reports transport figures through the same value:
// RecordBatch, StreamOpened, StreamClosed and RecordWebSocketError.
//
// # OpenTelemetry Tracing
//
// The tracing set opens one span per traced position, nested the way the
// tree is, and records failures on the span of the failing position:
//
//	t := middleware.NewTracing(
//	    middleware.WithTracerName("my-app"),
//	)
//	r := reconcile.New(doc, reconcile.WithHooks(t.Hooks()))
//
// By default only component positions are traced; WithNodeFilter widens or
// narrows that. The tracer comes from the global OpenTelemetry provider
// unless WithTracerProvider is given.
//
// A hook set is not safe for concurrent use, matching the Renderer it
// observes; call Hooks once per Renderer. The Prometheus collectors behind a
// Metrics value are shared and safe to feed from many renderers.
package middleware
