package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createSortCommand creates the one-shot sort command.
func createSortCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Sort the root once and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cliApp, err := createAppFromCommand(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = cliApp.Close() }()

			summary, err := cliApp.Sort(ctx)
			if err != nil {
				return fmt.Errorf("sort failed: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "moved %d, renamed %d, skipped %d, ignored %d\n",
				summary.Moved, summary.Renamed, summary.Skipped, summary.Ignored)
			if err != nil {
				return fmt.Errorf("failed to print summary: %w", err)
			}
			return nil
		},
	}
}
