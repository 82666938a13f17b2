package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/sortdl/internal/classify"
)

// Layout is the resolved watched root and its destination folders.
type Layout struct {
	folders map[classify.Category]string
	Root    string
}

// NewLayout builds a Layout from folder names relative to root.
func NewLayout(root string, names map[classify.Category]string) Layout {
	folders := make(map[classify.Category]string, len(names))
	for category, name := range names {
		folders[category] = filepath.Join(root, name)
	}
	return Layout{Root: root, folders: folders}
}

// Folder returns the absolute destination directory for category.
func (l Layout) Folder(category classify.Category) string {
	return l.folders[category]
}

// Folders returns every destination directory in category order.
func (l Layout) Folders() []string {
	paths := make([]string, 0, len(l.folders))
	for _, category := range classify.AllCategories {
		if path, ok := l.folders[category]; ok {
			paths = append(paths, path)
		}
	}
	return paths
}

// IsDestination reports whether path is one of the destination folders.
func (l Layout) IsDestination(path string) bool {
	cleaned := filepath.Clean(path)
	for _, folder := range l.folders {
		if folder == cleaned {
			return true
		}
	}
	return false
}

// EnsureFolders creates any missing destination folder.
func (l Layout) EnsureFolders(fs afero.Fs) error {
	for _, folder := range l.Folders() {
		if err := fs.MkdirAll(folder, 0o750); err != nil {
			return fmt.Errorf("failed to create destination folder %s: %w", folder, err)
		}
	}
	return nil
}
