package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/sortdl/internal/app"
	"github.com/wizzomafizzo/sortdl/internal/classify"
)

func TestCreateStatusCommand(t *testing.T) {
	t.Parallel()

	cmd := createStatusCommand()

	assert.Equal(t, "status", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEqual(t, cmd.Short, cmd.Long)
	assert.NotNil(t, cmd.RunE)
}

func TestFormatStatus(t *testing.T) {
	t.Parallel()

	status := app.Status{
		Root:        "/dl",
		RootExists:  true,
		ConfigPath:  "/home/u/.config/sortdl/config.yaml",
		Policy:      "incoming",
		Journal:     true,
		JournalPath: "/home/u/.local/share/sortdl/journal.db",
		Folders: []app.FolderStatus{
			{Category: classify.Music, Path: "/dl/Music", Exists: true},
			{Category: classify.Videos, Path: "/dl/Videos", Exists: false},
		},
	}

	var out strings.Builder
	require.NoError(t, formatStatus(&out, status))

	text := out.String()
	assert.Contains(t, text, "Root:      /dl")
	assert.Contains(t, text, "Collision: incoming")
	assert.Contains(t, text, "Journal:   on (/home/u/.local/share/sortdl/journal.db)")
	assert.Contains(t, text, "/dl/Music")
	assert.Contains(t, text, "missing")
}
