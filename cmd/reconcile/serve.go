package main

import (
	"context"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/internal/watch"
	"github.com/vango-dev/reconcile/pkg/server"
)

func serveCmd(g *globalFlags) *cobra.Command {
	var (
		port     int
		host     string
		interval time.Duration
		watchFx  bool
	)

	cmd := &cobra.Command{
		Use:   "serve <fixture.yaml>",
		Short: "Stream a fixture to browsers over WebSocket",
		Long: `Serve a fixture to live preview clients.

Each client gets its own session: a snapshot of the first step, then one
mutation batch per event it sends. Prometheus metrics are served on
/metrics unless disabled in reconcile.json.

Examples:
  reconcile serve counter.yaml
  reconcile serve counter.yaml --port 8080
  reconcile serve counter.yaml --interval 1s
  reconcile serve counter.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, g)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				e.cfg.Server.Port = port
			}
			if cmd.Flags().Changed("host") {
				e.cfg.Server.Host = host
			}
			if err := e.cfg.Validate(); err != nil {
				return err
			}
			fx, err := e.loadFixture(args[0])
			if err != nil {
				return err
			}

			opts := []server.Option{
				server.WithLogger(e.logger),
				server.WithRendererOptions(e.rendererOptions),
			}
			if m, reg := e.metrics(); m != nil {
				opts = append(opts, server.WithMetrics(m, reg))
			}
			srv := server.New(fx, e.registry, &server.Config{
				Address:      e.cfg.Address(),
				Path:         e.cfg.Server.Path,
				StepInterval: interval,
			}, opts...)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if watchFx {
				go reloadOnChange(ctx, e, srv, args[0])
			}

			out := cmd.OutOrStdout()
			success(out, "Serving %s (%d steps)", fx.Name, len(fx.Steps))
			info(out, "Page:   http://%s/", e.cfg.Address())
			info(out, "Stream: ws://%s%s", e.cfg.Address(), e.cfg.Server.Path)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default from reconcile.json, "+strconv.Itoa(config.DefaultPort)+")")
	cmd.Flags().StringVar(&host, "host", "", "Listen host (default from reconcile.json)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Advance the fixture on a timer")
	cmd.Flags().BoolVarP(&watchFx, "watch", "w", false, "Reload the fixture when its file changes")

	return cmd
}

// reloadOnChange swaps the served fixture whenever path changes. A fixture
// that fails to load is logged and the previous one stays in place.
func reloadOnChange(ctx context.Context, e *env, srv *server.Server, path string) {
	w := watch.New(watch.Config{Paths: []string{path}})
	w.OnChange(func(string) {
		fx, err := e.loadFixture(path)
		if err != nil {
			e.logger.Error("fixture reload failed", "path", path, "error", err)
			return
		}
		srv.SetFixture(fx)
	})
	w.Run(ctx)
}
