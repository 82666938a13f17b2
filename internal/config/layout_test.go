package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/sortdl/internal/classify"
)

func testLayout(t *testing.T) Layout {
	t.Helper()

	config := DefaultConfig()
	config.Root = "/dl"
	layout, err := config.Layout()
	require.NoError(t, err)
	return layout
}

func TestLayoutFolders(t *testing.T) {
	t.Parallel()

	layout := testLayout(t)

	assert.Equal(t, "/dl", layout.Root)
	assert.Equal(t, filepath.Join("/dl", "Misc_Documents"), layout.Folder(classify.MiscDocs))
	assert.Equal(t, []string{
		"/dl/Music", "/dl/Applications", "/dl/Schoolwork",
		"/dl/Misc_Documents", "/dl/Images", "/dl/Videos",
	}, layout.Folders())
}

func TestLayoutIsDestination(t *testing.T) {
	t.Parallel()

	layout := testLayout(t)

	assert.True(t, layout.IsDestination("/dl/Music"))
	assert.True(t, layout.IsDestination("/dl/Videos/"))
	assert.False(t, layout.IsDestination("/dl/CSC101"))
	assert.False(t, layout.IsDestination("/dl"))
}

func TestEnsureFoldersCreatesMissing(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/dl/Music", 0o750))

	layout := testLayout(t)
	require.NoError(t, layout.EnsureFolders(fs))

	for _, folder := range layout.Folders() {
		exists, err := afero.DirExists(fs, folder)
		require.NoError(t, err)
		assert.True(t, exists, folder)
	}
}

func TestEnsureFoldersReadOnly(t *testing.T) {
	t.Parallel()

	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := testLayout(t).EnsureFolders(fs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create destination folder")
}
