package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/sortdl/internal/logging"
)

// createWatchCommand creates the watch command.
func createWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sort the root on every change until interrupted",
		Long: "Watch the root directory and move new entries into category folders. " +
			"Runs until interrupted with Ctrl-C.",
		RunE: runWatchCommand,
	}
	cmd.Flags().Bool("no-initial-scan", false, "Do not sort existing entries before watching")
	return cmd
}

func runWatchCommand(cmd *cobra.Command, _ []string) error {
	noInitialScan, err := cmd.Flags().GetBool("no-initial-scan")
	if err != nil {
		return fmt.Errorf("failed to get no-initial-scan flag: %w", err)
	}

	ctx, cliApp, err := createAppFromCommand(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliApp.Close() }()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cliApp.Watch(ctx, !noInitialScan); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	if ctx.Err() != nil {
		logging.Get(ctx).Info().Msg("Interrupted, exiting")
	}
	return nil
}
