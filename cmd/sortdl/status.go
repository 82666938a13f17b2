package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/sortdl/internal/app"
)

// createStatusCommand creates the status command.
func createStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the resolved root and destination folders",
		Long: "Show the watched root, config file, collision policy and journal location, " +
			"and whether each destination folder exists yet.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cliApp, err := createAppFromCommand(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = cliApp.Close() }()

			status, err := cliApp.Status()
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}

			return formatStatus(cmd.OutOrStdout(), status)
		},
	}
}

func formatStatus(w io.Writer, status app.Status) error {
	mark := func(ok bool) string {
		if ok {
			return color.GreenString("ok")
		}
		return color.RedString("missing")
	}

	journal := "off"
	if status.Journal {
		journal = "on"
		if status.JournalPath != "" {
			journal = fmt.Sprintf("on (%s)", status.JournalPath)
		}
	}

	_, err := fmt.Fprintf(w, "Root:      %s (%s)\nConfig:    %s\nCollision: %s\nJournal:   %s\n",
		status.Root, mark(status.RootExists), status.ConfigPath, status.Policy, journal)
	if err != nil {
		return fmt.Errorf("failed to print status: %w", err)
	}

	for _, folder := range status.Folders {
		_, err := fmt.Fprintf(w, "  %-15s %s (%s)\n", folder.Category, folder.Path, mark(folder.Exists))
		if err != nil {
			return fmt.Errorf("failed to print status: %w", err)
		}
	}
	return nil
}
