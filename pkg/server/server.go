package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-dev/reconcile/pkg/fixture"
	"github.com/vango-dev/reconcile/pkg/middleware"
	"github.com/vango-dev/reconcile/pkg/reconcile"
	"github.com/vango-dev/reconcile/pkg/render"
)

// Server serves one fixture to any number of stream clients.
type Server struct {
	config   *Config
	registry fixture.Registry

	// mu guards fixture, which SetFixture replaces on reload.
	mu      sync.RWMutex
	fixture *fixture.Fixture

	metrics  *middleware.Metrics
	gatherer prometheus.Gatherer

	// rendererOptions builds the options of each session's renderer.
	rendererOptions func() []reconcile.Option

	upgrader   websocket.Upgrader
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetrics feeds m from every session and serves g on /metrics.
func WithMetrics(m *middleware.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithRendererOptions sets a factory for per-session renderer options.
// It is called once per session, so stateful hook sets are not shared.
func WithRendererOptions(fn func() []reconcile.Option) Option {
	return func(s *Server) {
		s.rendererOptions = fn
	}
}

// New creates a Server for f. Components named by f are looked up in reg.
func New(f *fixture.Fixture, reg fixture.Registry, config *Config, opts ...Option) *Server {
	config = config.withDefaults()
	s := &Server{
		config:   config,
		fixture:  f,
		registry: reg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.accessLog)

	r.Get("/", s.handlePage)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get(s.config.Path, s.HandleWebSocket)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// Config returns the effective configuration.
func (s *Server) Config() *Config { return s.config }

// Fixture returns the fixture new sessions play.
func (s *Server) Fixture() *fixture.Fixture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fixture
}

// SetFixture replaces the fixture. Open streams keep playing the one they
// started with.
func (s *Server) SetFixture(f *fixture.Fixture) {
	s.mu.Lock()
	s.fixture = f
	s.mu.Unlock()
	s.logger.Info("fixture loaded", "fixture", f.Name, "steps", len(f.Steps))
}

// newSession prepares a fixture session wired to the server's hooks.
func (s *Server) newSession() *fixture.Session {
	opts := []reconcile.Option{reconcile.WithLogger(s.logger)}
	if s.metrics != nil {
		opts = append(opts, reconcile.WithHooks(s.metrics.Hooks()))
	}
	if s.rendererOptions != nil {
		opts = append(opts, s.rendererOptions()...)
	}
	return fixture.NewSession(s.Fixture(), s.registry, opts...)
}

// handlePage renders the first step as a standalone document.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := s.newSession()
	if _, err := sess.Step(); err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	body, err := render.NewRenderer(render.Config{}).RenderChildren(sess.Container)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<!DOCTYPE html>\n<html><head><title>" + sess.Fixture().Name +
		"</title></head><body>" + body + "</body></html>\n"))
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address, "stream", s.config.Path)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown stops accepting connections and waits for in-flight requests.
// Hijacked stream connections are not tracked and close with the process.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}
