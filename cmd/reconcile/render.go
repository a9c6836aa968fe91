package main

import (
	"context"
	"os"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/fixture"
	"github.com/vango-dev/reconcile/pkg/snapshot"
)

type renderFlags struct {
	pretty bool
	out    string
	steps  int
	key    string
	update bool
	check  bool
}

func renderCmd(g *globalFlags) *cobra.Command {
	f := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <fixture.yaml>",
		Short: "Render a fixture to HTML",
		Long: `Play a fixture and print the HTML of its container.

With --update the output is stored as the fixture's snapshot; with
--check it is compared against the stored snapshot instead.

Examples:
  reconcile render counter.yaml
  reconcile render counter.yaml --steps 1 --pretty
  reconcile render counter.yaml --update
  reconcile render counter.yaml --check`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, g, f, args[0])
		},
	}

	cmd.Flags().BoolVarP(&f.pretty, "pretty", "p", false, "Indent the output")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Write HTML to a file instead of stdout")
	cmd.Flags().IntVarP(&f.steps, "steps", "n", 0, "Play only the first n steps (0 = all)")
	cmd.Flags().StringVarP(&f.key, "key", "k", "", "Snapshot key (default: fixture name)")
	cmd.Flags().BoolVarP(&f.update, "update", "u", false, "Store the output as the snapshot")
	cmd.Flags().BoolVar(&f.check, "check", false, "Compare the output with the snapshot")
	cmd.MarkFlagsMutuallyExclusive("update", "check")

	return cmd
}

func runRender(cmd *cobra.Command, g *globalFlags, f *renderFlags, path string) error {
	e, err := loadEnv(cmd, g)
	if err != nil {
		return err
	}
	fx, err := e.loadFixture(path)
	if err != nil {
		return err
	}

	sess := fixture.NewSession(fx, e.registry, e.rendererOptions()...)
	for !sess.Done() && (f.steps == 0 || sess.Position() < f.steps) {
		if _, err := sess.Step(); err != nil {
			return err
		}
	}
	e.logger.Debug("fixture played", "fixture", fx.Name, "steps", sess.Position())

	html, err := e.htmlRenderer(f.pretty).RenderChildren(sess.Container)
	if err != nil {
		return err
	}

	key := f.key
	if key == "" {
		key = fx.Name
	}
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch {
	case f.update:
		store, err := e.store()
		if err != nil {
			return err
		}
		if err := store.Put(ctx, key, []byte(html)); err != nil {
			return err
		}
		success(out, "Stored snapshot %s (%d bytes)", key, len(html))
		return nil

	case f.check:
		store, err := e.store()
		if err != nil {
			return err
		}
		mismatch, err := snapshot.Check(ctx, store, key, []byte(html))
		if err != nil {
			if snapshot.NotFound(err) {
				warn(out, "No snapshot %s, run with --update to create it", key)
			}
			return err
		}
		if mismatch != nil {
			info(out, "Snapshot %s (-want +got):", key)
			out.Write([]byte(cmp.Diff(lines(mismatch.Want), lines(mismatch.Got))))
			return errors.New("S154").WithDetail("Snapshot " + key + " differs from the rendered output").
				WithSuggestion("Run with --update if the change is intended")
		}
		success(out, "Snapshot %s matches", key)
		return nil
	}

	if f.out != "" {
		if err := os.WriteFile(f.out, []byte(html), 0644); err != nil {
			return err
		}
		success(out, "Wrote %s", f.out)
		return nil
	}
	out.Write([]byte(html))
	if !strings.HasSuffix(html, "\n") {
		out.Write([]byte("\n"))
	}
	return nil
}

func lines(b []byte) []string {
	return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
}
