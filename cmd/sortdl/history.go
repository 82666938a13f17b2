package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/sortdl/internal/app"
	"github.com/wizzomafizzo/sortdl/internal/journal"
)

const defaultHistoryLimit = 20

// createHistoryCommand creates the history command.
func createHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently moved entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return fmt.Errorf("failed to get limit flag: %w", err)
			}

			ctx, cliApp, err := createAppFromCommand(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = cliApp.Close() }()

			records, err := cliApp.History(ctx, limit)
			if errors.Is(err, app.ErrJournalDisabled) {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Journal is disabled in the config.")
				return err
			}
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}

			return formatHistory(cmd.OutOrStdout(), records, time.Now())
		},
	}
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Number of entries to show")
	return cmd
}

func formatHistory(w io.Writer, records []journal.Record, now time.Time) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No moves recorded yet.")
		return err
	}

	outcomeColor := map[string]*color.Color{
		"moved":   color.New(color.FgGreen),
		"renamed": color.New(color.FgYellow),
	}

	for _, rec := range records {
		paint, ok := outcomeColor[rec.Outcome]
		if !ok {
			paint = color.New(color.Reset)
		}

		line := fmt.Sprintf("%-14s %s %-15s %s -> %s",
			humanize.RelTime(rec.MovedAt, now, "ago", "from now"),
			paint.Sprintf("%-8s", rec.Outcome),
			rec.Category,
			filepath.Base(rec.Source),
			rec.Destination,
		)
		if rec.Size > 0 {
			line += " (" + humanize.Bytes(uint64(rec.Size)) + ")"
		}
		if rec.Displaced != "" {
			line += color.YellowString(" [previous file now %s]", filepath.Base(rec.Displaced))
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to print history: %w", err)
		}
	}
	return nil
}
