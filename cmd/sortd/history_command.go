package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sortd/internal/config"
	"sortd/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded batches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withJournal(func(cfg *config.Config, store *journal.Store) error {
				batches, err := store.Batches(cmd.Context(), limit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(batches) == 0 {
					fmt.Fprintln(out, "No batches recorded yet.")
					return nil
				}

				rows := make([][]string, 0, len(batches))
				for _, batch := range batches {
					rows = append(rows, []string{
						batch.ID,
						string(batch.Status),
						batch.CreatedAt.Local().Format(time.DateTime),
						fmt.Sprintf("%d", batch.Moved),
						fmt.Sprintf("%d", batch.Skipped),
						fmt.Sprintf("%d", batch.Failed),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Batch", "Status", "Created", "Moved", "Skipped", "Failed"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum batches to list (0 for all)")
	return cmd
}
