// Command reconcile plays component fixtures through the reconciler. It
// renders them to HTML, checks the output against stored snapshots, logs
// the host mutations of every step, and serves them to live clients.
package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/reconcile/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configDir string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Play component fixtures through the reconciler",
		Long: `reconcile drives a virtual DOM reconciler over YAML fixtures.

A fixture is a list of steps. Each step renders a new tree or dispatches
an event to an element, and the reconciler patches an in-memory document.
From there the output can be:

  • rendered to HTML and compared with stored snapshots
  • logged as the host mutations of every step
  • streamed to browsers over WebSocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configDir, "config", ".", "Directory holding reconcile.json")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		renderCmd(g),
		diffCmd(g),
		serveCmd(g),
		versionCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError prints registered errors in their long form.
func printError(w io.Writer, err error) {
	var re *errors.ReconcileError
	if stderrors.As(err, &re) {
		fmt.Fprint(w, re.Format())
		return
	}
	fmt.Fprintf(w, "\033[31mError:\033[0m %s\n", err)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
