package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/sortdl/internal/config"
	"github.com/wizzomafizzo/sortdl/internal/filesystem"
)

// ErrConfigExists is returned by InitConfig when the file exists and
// overwriting was not confirmed.
var ErrConfigExists = errors.New("config file already exists")

// InitConfig writes the default config to path. When the file exists,
// confirm is asked; a nil confirm refuses.
func InitConfig(fs afero.Fs, path string, confirm func(question string) (bool, error)) error {
	exists, err := filesystem.Exists(fs, path)
	if err != nil {
		return err
	}

	if exists {
		if confirm == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
		ok, err := confirm(fmt.Sprintf("Overwrite %s?", path))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	data, err := config.DefaultConfigYAML()
	if err != nil {
		return err
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
