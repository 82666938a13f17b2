package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// WriteTree creates files and directories under root. Names ending in "/"
// are created as directories, everything else as a file whose content is
// its own name.
func WriteTree(t *testing.T, fs afero.Fs, root string, names ...string) {
	t.Helper()

	if err := fs.MkdirAll(root, 0o750); err != nil {
		t.Fatalf("Failed to create root %s: %v", root, err)
	}

	for _, name := range names {
		if strings.HasSuffix(name, "/") {
			dir := filepath.Join(root, strings.TrimSuffix(name, "/"))
			if err := fs.MkdirAll(dir, 0o750); err != nil {
				t.Fatalf("Failed to create directory %s: %v", dir, err)
			}
			continue
		}

		path := filepath.Join(root, name)
		if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("Failed to create parent of %s: %v", path, err)
		}
		if err := afero.WriteFile(fs, path, []byte(name), 0o600); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
}

// ReadString returns the content of path, failing the test if it cannot be read.
func ReadString(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
