package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan [dir]",
		Short: "Preview the moves an organize run would perform",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			_, plan, err := ctx.buildPlan(dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(plan.Moves) == 0 && len(plan.Skips) == 0 {
				fmt.Fprintf(out, "Nothing to organize in %s\n", plan.SourceDir)
				return nil
			}

			if len(plan.Moves) > 0 {
				fmt.Fprintln(out, renderPlanTree(plan))
			}
			if len(plan.Skips) > 0 {
				fmt.Fprintln(out, "Skipped:")
				fmt.Fprintln(out, renderSkipTable(plan.Skips))
			}
			fmt.Fprintf(out, "%d to move, %d skipped. Run `sortd apply` to organize.\n",
				len(plan.Moves), len(plan.Skips))
			return nil
		},
	}
}
