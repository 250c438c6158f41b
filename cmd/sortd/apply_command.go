package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sortd/internal/config"
	"sortd/internal/executor"
	"sortd/internal/journal"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply [dir]",
		Short: "Organize the source directory and record the batch",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			planCfg, plan, err := ctx.buildPlan(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if dryRun {
				exec := executor.New(planCfg, nil, ctx.ensureLogger())
				result, err := exec.Execute(cmd.Context(), plan, executor.DryRun)
				if err != nil {
					return err
				}
				if len(plan.Moves) > 0 {
					fmt.Fprintln(out, renderPlanTree(plan))
				}
				fmt.Fprintf(out, "Dry run: %d would move, %d skipped\n", result.Moved, result.Skipped)
				return nil
			}

			return ctx.withJournal(func(cfg *config.Config, store *journal.Store) error {
				exec := executor.New(cfg, store, ctx.ensureLogger())
				result, err := exec.Execute(cmd.Context(), plan, executor.Apply)
				if err != nil {
					return err
				}

				for _, failure := range result.Failures {
					fmt.Fprintf(out, "  failed: %s (%s)\n", failure.Name, failure.Message)
				}
				ok := len(result.Failures) == 0
				summaryLine(out, ok, "Batch %s: %d moved, %d skipped, %d failed",
					result.BatchID, result.Moved, result.Skipped, len(result.Failures))
				if result.Moved > 0 {
					fmt.Fprintln(out, "Undo with `sortd undo`.")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report planned moves without touching anything")
	return cmd
}
