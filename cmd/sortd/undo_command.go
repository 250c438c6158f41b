package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sortd/internal/config"
	"sortd/internal/journal"
	"sortd/internal/undo"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	var listOnly bool

	cmd := &cobra.Command{
		Use:   "undo [batch-id]",
		Short: "Restore the files of an executed batch",
		Long: "Restore the files of an executed batch to their original paths.\n" +
			"Without an argument the most recent executed batch is undone.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withJournal(func(cfg *config.Config, store *journal.Store) error {
				if listOnly {
					return listUndoable(cmd, store)
				}
				undoer := undo.New(cfg, store, ctx.ensureLogger())

				var (
					result *undo.Result
					err    error
				)
				if len(args) == 1 {
					result, err = undoer.Undo(cmd.Context(), args[0])
				} else {
					result, err = undoer.Latest(cmd.Context())
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, failure := range result.Failures {
					fmt.Fprintf(out, "  failed: %s (%s)\n", failure.Name, failure.Message)
				}
				ok := len(result.Failures) == 0
				summaryLine(out, ok, "Batch %s: %d restored, %d skipped, %d failed",
					result.BatchID, result.Restored, result.Skipped, len(result.Failures))
				if !ok {
					fmt.Fprintln(out, "The batch stays undoable; clear the obstructions and retry.")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&listOnly, "list", "l", false, "List undoable batches instead of undoing")
	return cmd
}

func listUndoable(cmd *cobra.Command, store *journal.Store) error {
	batches, err := store.Batches(cmd.Context(), 0)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	rows := make([][]string, 0, len(batches))
	for _, batch := range batches {
		if batch.Status != journal.StatusExecuted {
			continue
		}
		rows = append(rows, []string{
			batch.ID,
			batch.CreatedAt.Local().Format(time.DateTime),
			fmt.Sprintf("%d", batch.Moved),
			batch.SourceDir,
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "No undoable batches.")
		return nil
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Batch", "Created", "Moved", "Source"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))
	return nil
}
