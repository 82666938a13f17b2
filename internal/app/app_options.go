package app

import (
	"github.com/spf13/afero"
	"github.com/wizzomafizzo/sortdl/internal/config"
	"github.com/wizzomafizzo/sortdl/internal/sorter"
)

// AppOptions contains configuration options for creating an App
type AppOptions struct {
	// Fs defaults to the OS filesystem.
	Fs afero.Fs
	// Notifier defaults to an fsnotify watcher built from the config.
	Notifier sorter.Notifier
	// Config skips loading when set. It must already be validated.
	Config *config.Config
	// ConfigPath defaults to the XDG config file.
	ConfigPath string
	// Root overrides the configured watched directory.
	Root string
	// DatabaseDSN overrides the journal database location.
	DatabaseDSN string
	// DisableJournal skips opening the journal regardless of config.
	DisableJournal bool
	// LockPath is the lock file held while watching. Empty disables locking.
	LockPath string
}
