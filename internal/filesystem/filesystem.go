// Package filesystem holds small helpers over afero used when relocating entries.
package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// maxUniqueAttempts bounds the "(n)" counter search.
const maxUniqueAttempts = 10000

// ErrNoUniqueName is returned when every candidate name is already taken.
var ErrNoUniqueName = errors.New("no free name found")

// NewOSFileSystem returns the real filesystem.
func NewOSFileSystem() afero.Fs {
	return afero.NewOsFs()
}

// Exists reports whether path exists. Errors other than "not exist" are returned.
func Exists(fs afero.Fs, path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}

// SplitExt splits name into base and extension. Names without a dot after
// the first character (including dot-files) have no extension.
func SplitExt(name string) (base, ext string) {
	ext = filepath.Ext(name)
	if ext == name || ext == "" {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}

// UniqueName returns name if it is free in dir, otherwise the first free
// "base(n)ext" with n counting from 1.
func UniqueName(fs afero.Fs, dir, name string) (string, error) {
	taken, err := Exists(fs, filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	if !taken {
		return name, nil
	}

	base, ext := SplitExt(name)
	for counter := 1; counter <= maxUniqueAttempts; counter++ {
		candidate := base + "(" + strconv.Itoa(counter) + ")" + ext
		taken, err := Exists(fs, filepath.Join(dir, candidate))
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w for %s in %s", ErrNoUniqueName, name, dir)
}
