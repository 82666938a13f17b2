package watcher

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// subdirectories lists every directory below root, skipping hidden
// trees. Unreadable subdirectories are skipped; only a failure to read
// root itself is returned.
func subdirectories(root string) ([]string, error) {
	var dirs []string
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return fs.SkipDir
		}
		if path == root || !entry.IsDir() {
			return nil
		}
		if strings.HasPrefix(entry.Name(), ".") {
			return fs.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, walkErr
}
