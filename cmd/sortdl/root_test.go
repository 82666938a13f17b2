package main

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/sortdl/internal/config"
)

func TestRootCommandSubcommands(t *testing.T) {
	t.Parallel()

	rootCmd := createNewRootCommand()
	assert.Equal(t, "sortdl", rootCmd.Use)

	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"watch", "sort", "history", "status", "init"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	t.Parallel()

	rootCmd := createNewRootCommand()
	for _, flag := range []string{"config", "root", "log-level"} {
		require.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
	assert.Equal(t, "c", rootCmd.PersistentFlags().Lookup("config").Shorthand)
}

func TestSubcommandsHaveRunE(t *testing.T) {
	t.Parallel()

	for _, sub := range createNewRootCommand().Commands() {
		assert.NotNil(t, sub.RunE, sub.Name())
		assert.NotEmpty(t, sub.Short, sub.Name())
	}
}

func TestWatchCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := createWatchCommand()
	flag := cmd.Flags().Lookup("no-initial-scan")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestHistoryCommandFlags(t *testing.T) {
	t.Parallel()

	flag := createHistoryCommand().Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "20", flag.DefValue)
}

func TestInitLoggingRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	cmd := createNewRootCommand()
	require.NoError(t, cmd.PersistentFlags().Set("log-level", "chatty"))

	_, err := initLogging(cmd, afero.NewMemMapFs(), config.DefaultConfig())
	require.Error(t, err)
}
