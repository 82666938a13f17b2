package main

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/sortdl/internal/app"
	"github.com/wizzomafizzo/sortdl/internal/config"
	"github.com/wizzomafizzo/sortdl/internal/logging"
	"github.com/wizzomafizzo/sortdl/internal/storage"
)

// createNewRootCommand creates the main root command that shows help by default.
func createNewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sortdl",
		Short:         "Sort a downloads folder into category subfolders",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default $XDG_CONFIG_HOME/sortdl/config.yaml)")
	rootCmd.PersistentFlags().String("root", "", "Directory to sort (default: the downloads directory)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override (trace, debug, info, warn, error)")

	rootCmd.AddCommand(
		createWatchCommand(),
		createSortCommand(),
		createHistoryCommand(),
		createStatusCommand(),
		createInitCommand(),
	)

	return rootCmd
}

// createAppFromCommand builds the app from persistent flags and returns a
// context carrying the configured logger.
func createAppFromCommand(cmd *cobra.Command) (context.Context, *app.App, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get root flag: %w", err)
	}

	fs := afero.NewOsFs()
	lockPath, err := storage.New(fs).GetLockPath()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get lock path: %w", err)
	}

	opts := app.AppOptions{
		Fs:         fs,
		ConfigPath: configPath,
		Root:       root,
		LockPath:   lockPath,
	}
	cfg, err := app.LoadConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	ctx, err := initLogging(cmd, fs, cfg)
	if err != nil {
		return nil, nil, err
	}

	opts.Config = cfg
	cliApp, err := app.NewAppWithOptions(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	return ctx, cliApp, nil
}

// initLogging attaches the file and console logger configured by cfg.
func initLogging(cmd *cobra.Command, fs afero.Fs, cfg *config.Config) (context.Context, error) {
	levelName := cfg.Logging.Level
	if override, err := cmd.Flags().GetString("log-level"); err == nil && override != "" {
		levelName = override
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	root, err := cfg.ResolveRoot()
	if err != nil {
		return nil, err
	}

	ctx, err := logging.New(commandContext(cmd), fs, logging.Config{
		Root:       root,
		Level:      level,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Console:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return ctx, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
