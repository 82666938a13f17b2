package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/sortdl/internal/app"
	"github.com/wizzomafizzo/sortdl/internal/prompt"
	"github.com/wizzomafizzo/sortdl/internal/storage"
)

// createInitCommand creates the init command.
func createInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return fmt.Errorf("failed to get force flag: %w", err)
			}
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}

			fs := afero.NewOsFs()
			if configPath == "" {
				configPath = storage.New(fs).GetConfigPath()
			}

			confirm := prompt.Confirm
			if force {
				confirm = func(string) (bool, error) { return true, nil }
			}

			if err := app.InitConfig(fs, configPath, confirm); err != nil {
				return fmt.Errorf("init failed: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
			return err
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config without asking")
	return cmd
}
