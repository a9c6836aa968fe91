package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/pkg/fixture"
	"github.com/vango-dev/reconcile/pkg/host/memhost"
)

func diffCmd(g *globalFlags) *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "diff <fixture.yaml>",
		Short: "Log the host mutations of every fixture step",
		Long: `Play a fixture and print the host mutations each step caused.

Examples:
  reconcile diff counter.yaml
  reconcile diff counter.yaml --summary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, g)
			if err != nil {
				return err
			}
			fx, err := e.loadFixture(args[0])
			if err != nil {
				return err
			}
			return playDiff(cmd, e, fx, summary)
		},
	}

	cmd.Flags().BoolVarP(&summary, "summary", "s", false, "Print mutation counts per operation only")

	return cmd
}

func playDiff(cmd *cobra.Command, e *env, fx *fixture.Fixture, summary bool) error {
	out := cmd.OutOrStdout()
	sess := fixture.NewSession(fx, e.registry, e.rendererOptions()...)

	for !sess.Done() {
		i := sess.Position()
		muts, err := sess.Step()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "step %d/%d %s: %d mutations\n",
			i+1, len(fx.Steps), fx.Steps[i].Label(i), len(muts))
		if summary {
			for _, line := range countOps(muts) {
				info(out, "%s", line)
			}
			continue
		}
		for _, m := range muts {
			info(out, "%s", m)
		}
	}
	return nil
}

// countOps returns "Op: n" lines in Op order.
func countOps(muts []memhost.Mutation) []string {
	counts := make(map[memhost.Op]int)
	for _, m := range muts {
		counts[m.Op]++
	}
	ops := make([]memhost.Op, 0, len(counts))
	for op := range counts {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })

	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = fmt.Sprintf("%s: %d", op, counts[op])
	}
	return out
}
