// Package app wires config, sorter, watcher and journal into the
// operations exposed by the sortdl commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
	"github.com/wizzomafizzo/sortdl/internal/classify"
	"github.com/wizzomafizzo/sortdl/internal/config"
	"github.com/wizzomafizzo/sortdl/internal/database"
	"github.com/wizzomafizzo/sortdl/internal/filesystem"
	"github.com/wizzomafizzo/sortdl/internal/journal"
	"github.com/wizzomafizzo/sortdl/internal/logging"
	"github.com/wizzomafizzo/sortdl/internal/sorter"
	"github.com/wizzomafizzo/sortdl/internal/storage"
	"github.com/wizzomafizzo/sortdl/internal/watcher"
)

// ErrJournalDisabled is returned by History when no journal is open.
var ErrJournalDisabled = errors.New("move journal is disabled")

// ErrAlreadyWatching is returned by Watch when another process holds the lock.
var ErrAlreadyWatching = errors.New("another sortdl watcher is already running")

// App is a configured sortdl instance.
type App struct {
	fs         afero.Fs
	notifier   sorter.Notifier
	config     *config.Config
	sorter     *sorter.Sorter
	dbManager  *database.Manager
	journal    *journal.Journal
	configPath string
	lockPath   string
}

// FolderStatus describes one destination folder.
type FolderStatus struct {
	Category classify.Category
	Path     string
	Exists   bool
}

// Status is a snapshot of the resolved configuration.
type Status struct {
	Root        string
	ConfigPath  string
	Policy      string
	JournalPath string
	Folders     []FolderStatus
	RootExists  bool
	Journal     bool
}

// LoadConfig resolves, loads and validates the config named by opts,
// applying the root override.
func LoadConfig(opts AppOptions) (*config.Config, error) {
	fs := opts.Fs
	if fs == nil {
		fs = filesystem.NewOSFileSystem()
	}

	cfg, err := config.Load(fs, configPathFor(fs, opts))
	if err != nil {
		return nil, err
	}
	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func configPathFor(fs afero.Fs, opts AppOptions) string {
	if opts.ConfigPath != "" {
		return opts.ConfigPath
	}
	return storage.New(fs).GetConfigPath()
}

// NewAppWithOptions builds the sorter from opts.Config, loading it with
// LoadConfig when unset. Destination folders are not created until Prepare.
func NewAppWithOptions(ctx context.Context, opts AppOptions) (*App, error) {
	fs := opts.Fs
	if fs == nil {
		fs = filesystem.NewOSFileSystem()
		opts.Fs = fs
	}
	configPath := configPathFor(fs, opts)

	cfg := opts.Config
	if cfg == nil {
		loaded, err := LoadConfig(opts)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	layout, err := cfg.Layout()
	if err != nil {
		return nil, err
	}
	rules, err := cfg.Rules()
	if err != nil {
		return nil, err
	}

	a := &App{
		fs:         fs,
		config:     cfg,
		configPath: configPath,
		notifier:   opts.Notifier,
		lockPath:   opts.LockPath,
	}

	if cfg.Journal && !opts.DisableJournal {
		if err := a.openJournal(ctx, opts.DatabaseDSN); err != nil {
			return nil, err
		}
	}

	sorterOptions := sorter.Options{
		Layout: layout,
		Rules:  rules,
		Policy: cfg.Policy(),
		Ignore: cfg.Ignore,
	}
	if a.journal != nil {
		sorterOptions.Recorder = a.journal
	}
	a.sorter = sorter.New(fs, sorterOptions)

	if a.notifier == nil {
		a.notifier = watcher.New(watcher.Options{
			Debounce:  cfg.Debounce,
			Recursive: cfg.Recursive,
		})
	}

	logging.Get(ctx).Debug().
		Str("config", configPath).
		Str("root", layout.Root).
		Str("policy", cfg.Collision).
		Bool("journal", a.journal != nil).
		Msg("App configured")

	return a, nil
}

func (a *App) openJournal(ctx context.Context, dsn string) error {
	if dsn == "" {
		path, err := storage.New(a.fs).GetDatabasePath()
		if err != nil {
			return fmt.Errorf("failed to get journal path: %w", err)
		}
		dsn = path
	}

	manager, err := database.NewManager(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	a.dbManager = manager
	a.journal = journal.New(manager)
	return nil
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// Prepare creates the destination folders.
func (a *App) Prepare() error {
	return a.sorter.Prepare()
}

// Sort runs a single scan of the root.
func (a *App) Sort(ctx context.Context) (sorter.Summary, error) {
	if err := a.Prepare(); err != nil {
		return sorter.Summary{}, err
	}
	return a.sorter.Scan(ctx)
}

// Watch sorts on every change until ctx is cancelled. Only one
// process may watch at a time when a lock path is configured.
func (a *App) Watch(ctx context.Context, initialScan bool) error {
	if a.lockPath != "" {
		lock := flock.New(a.lockPath)
		ok, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("failed to acquire watch lock: %w", err)
		}
		if !ok {
			return ErrAlreadyWatching
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logging.Get(ctx).Warn().Err(err).Msg("Failed to release watch lock")
			}
		}()
		logging.Get(ctx).Debug().Str("lock", a.lockPath).Msg("Acquired watch lock")
	}

	if err := a.Prepare(); err != nil {
		return err
	}
	return a.sorter.Run(ctx, a.notifier, initialScan)
}

// History returns up to limit journaled moves, newest first.
func (a *App) History(ctx context.Context, limit int) ([]journal.Record, error) {
	if a.journal == nil {
		return nil, ErrJournalDisabled
	}
	return a.journal.Recent(ctx, limit)
}

// Status reports the root, config path and destination folders.
func (a *App) Status() (Status, error) {
	layout := a.sorter.Layout()

	rootExists, err := afero.DirExists(a.fs, layout.Root)
	if err != nil {
		return Status{}, fmt.Errorf("failed to check root: %w", err)
	}

	status := Status{
		Root:       layout.Root,
		RootExists: rootExists,
		ConfigPath: a.configPath,
		Policy:     a.config.Collision,
		Journal:    a.journal != nil,
	}
	if a.dbManager != nil {
		status.JournalPath = a.dbManager.DSN()
	}
	for _, category := range classify.AllCategories {
		path := layout.Folder(category)
		exists, err := afero.DirExists(a.fs, path)
		if err != nil {
			return Status{}, fmt.Errorf("failed to check %s: %w", path, err)
		}
		status.Folders = append(status.Folders, FolderStatus{Category: category, Path: path, Exists: exists})
	}

	return status, nil
}

// Close releases the notifier and the journal database.
func (a *App) Close() error {
	var errs []error
	if closer, ok := a.notifier.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close notifier: %w", err))
		}
	}
	if a.dbManager != nil {
		if err := a.dbManager.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
