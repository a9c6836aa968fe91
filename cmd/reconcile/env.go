package main

import (
	"io"
	"log/slog"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/fixture"
	"github.com/vango-dev/reconcile/pkg/middleware"
	"github.com/vango-dev/reconcile/pkg/reconcile"
	"github.com/vango-dev/reconcile/pkg/render"
	"github.com/vango-dev/reconcile/pkg/snapshot"
)

// env is what every command needs before it touches a fixture.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry fixture.Registry
}

// loadEnv reads reconcile.json from the --config directory, falling back to
// defaults when there is none, and builds the logger.
func loadEnv(cmd *cobra.Command, g *globalFlags) (*env, error) {
	cfg, err := config.Load(g.configDir)
	if errors.Is(err, "C141") {
		cfg = config.New()
		if !filepath.IsAbs(cfg.Snapshot.Dir) {
			cfg.Snapshot.Dir = filepath.Join(g.configDir, cfg.Snapshot.Dir)
		}
	} else if err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, registry: fixture.Demo()}, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func (e *env) loadFixture(path string) (*fixture.Fixture, error) {
	return fixture.Load(path, e.registry)
}

// store opens the snapshot store named by the config.
func (e *env) store() (snapshot.Store, error) {
	s := e.cfg.Snapshot
	if s.Driver == config.DriverS3 {
		client := snapshot.NewS3Client(s.Region, s.Endpoint)
		return snapshot.NewS3Store(client, s.Bucket, s.Prefix), nil
	}
	return snapshot.NewFileStore(e.cfg.SnapshotDir())
}

func (e *env) htmlRenderer(pretty bool) *render.Renderer {
	return render.NewRenderer(render.Config{
		Pretty: pretty || e.cfg.Render.Pretty,
		Indent: e.cfg.Render.Indent,
	})
}

// rendererOptions returns renderer options carrying the tracing hooks when
// tracing is enabled. Each call builds its own tracer state so sessions
// never share a span stack.
func (e *env) rendererOptions() []reconcile.Option {
	opts := []reconcile.Option{reconcile.WithLogger(e.logger)}
	if e.cfg.Tracing.Enabled {
		t := middleware.NewTracing(
			middleware.WithTracerName(e.cfg.Tracing.Tracer),
			middleware.WithTracerProvider(otel.GetTracerProvider()),
		)
		opts = append(opts, reconcile.WithHooks(t.Hooks()))
	}
	return opts
}

// metrics builds the collectors on a fresh registry that also carries the
// Go runtime and process collectors. It returns nils when metrics are off.
func (e *env) metrics() (*middleware.Metrics, *prometheus.Registry) {
	if !e.cfg.Metrics.Enabled {
		return nil, nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := middleware.NewMetrics(
		middleware.WithNamespace(e.cfg.Metrics.Namespace),
		middleware.WithSubsystem(e.cfg.Metrics.Subsystem),
		middleware.WithRegistry(reg),
	)
	return m, reg
}
