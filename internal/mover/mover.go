// Package mover relocates directory entries into destination folders.
package mover

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/sortdl/internal/classify"
	"github.com/wizzomafizzo/sortdl/internal/filesystem"
	"github.com/wizzomafizzo/sortdl/internal/logging"
)

// Policy selects which entry gets the "(n)" suffix on a name collision.
type Policy string

const (
	// RenameIncoming stores the arriving entry under a unique name.
	RenameIncoming Policy = "incoming"
	// RenameExisting renames the occupant and gives the arriving entry the original name.
	RenameExisting Policy = "existing"
)

// ErrUnknownPolicy is returned by ParsePolicy.
var ErrUnknownPolicy = errors.New("unknown collision policy")

// ParsePolicy converts a config value to a Policy. Empty means RenameIncoming.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(value) {
	case "", RenameIncoming:
		return RenameIncoming, nil
	case RenameExisting:
		return RenameExisting, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownPolicy, value)
	}
}

// Outcome describes what Move did.
type Outcome int

const (
	Moved Outcome = iota
	Renamed
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Renamed:
		return "renamed"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result reports a single move. Displaced is set when RenameExisting moved
// the previous occupant out of the way.
type Result struct {
	Source      string
	Destination string
	Displaced   string
	Size        int64
	Outcome     Outcome
}

// Mover performs moves on an afero filesystem.
type Mover struct {
	fs     afero.Fs
	policy Policy
}

// New creates a Mover. An empty policy means RenameIncoming.
func New(fs afero.Fs, policy Policy) *Mover {
	if policy == "" {
		policy = RenameIncoming
	}
	return &Mover{fs: fs, policy: policy}
}

// Move relocates entry into destDir. A source that no longer exists is
// logged and skipped without error.
func (m *Mover) Move(ctx context.Context, destDir string, entry classify.Entry) (Result, error) {
	result := Result{Source: entry.Path}

	info, err := m.fs.Stat(entry.Path)
	if errors.Is(err, os.ErrNotExist) {
		logging.Get(ctx).Warn().Str("path", entry.Path).
			Msgf("File or folder does not exist: %s", entry.Path)
		result.Outcome = Skipped
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("failed to stat %s: %w", entry.Path, err)
	}
	if !info.IsDir() {
		result.Size = info.Size()
	}

	target := filepath.Join(destDir, entry.Name)
	occupied, err := filesystem.Exists(m.fs, target)
	if err != nil {
		return result, err
	}

	if !occupied {
		if err := m.relocate(ctx, entry.Path, target); err != nil {
			return result, err
		}
		result.Destination = target
		result.Outcome = Moved
		return result, nil
	}

	unique, err := filesystem.UniqueName(m.fs, destDir, entry.Name)
	if err != nil {
		return result, fmt.Errorf("failed to resolve collision for %s: %w", entry.Name, err)
	}
	uniquePath := filepath.Join(destDir, unique)

	switch m.policy {
	case RenameExisting:
		if err := m.rename(target, uniquePath); err != nil {
			return result, err
		}
		if err := m.relocate(ctx, entry.Path, target); err != nil {
			if restoreErr := m.rename(uniquePath, target); restoreErr != nil {
				return result, errors.Join(err, fmt.Errorf("failed to restore %s: %w", target, restoreErr))
			}
			return result, err
		}
		result.Destination = target
		result.Displaced = uniquePath
	default:
		if err := m.relocate(ctx, entry.Path, uniquePath); err != nil {
			return result, err
		}
		result.Destination = uniquePath
	}

	logging.Get(ctx).Debug().
		Str("name", entry.Name).
		Str("unique", unique).
		Str("policy", string(m.policy)).
		Msg("Resolved name collision")

	result.Outcome = Renamed
	return result, nil
}

// relocate renames from to to, copying and then removing the source
// when the two paths are on different filesystems.
func (m *Mover) relocate(ctx context.Context, from, to string) error {
	err := m.fs.Rename(from, to)
	if err == nil {
		return nil
	}
	if !crossDevice(err) {
		return fmt.Errorf("failed to move %s to %s: %w", from, to, err)
	}

	log := logging.Get(ctx)
	log.Debug().Str("from", from).Str("to", to).Msg("Destination is on another filesystem, copying")

	if err := filesystem.CopyTree(m.fs, from, to); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", from, to, err)
	}
	if err := m.fs.RemoveAll(from); err != nil {
		log.Warn().Err(err).Str("path", from).Msg("Failed to remove source after copy, duplicate remains")
	}
	return nil
}

func crossDevice(err error) bool {
	var linkErr *os.LinkError
	return errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV)
}

func (m *Mover) rename(from, to string) error {
	if err := m.fs.Rename(from, to); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", from, to, err)
	}
	return nil
}
