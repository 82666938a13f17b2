// Package sorter scans the watched root and routes each entry to its
// destination folder.
package sorter

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/wizzomafizzo/sortdl/internal/classify"
	"github.com/wizzomafizzo/sortdl/internal/config"
	"github.com/wizzomafizzo/sortdl/internal/journal"
	"github.com/wizzomafizzo/sortdl/internal/logging"
	"github.com/wizzomafizzo/sortdl/internal/mover"
	"github.com/wizzomafizzo/sortdl/internal/watcher"
)

// Notifier delivers change notifications for root until ctx is cancelled.
type Notifier interface {
	Watch(ctx context.Context, root string, onChange func(watcher.Event)) error
}

// Recorder persists completed moves.
type Recorder interface {
	Record(ctx context.Context, rec journal.Record) error
}

// Options configures a Sorter.
type Options struct {
	Recorder Recorder
	Ignore   []string
	Layout   config.Layout
	Rules    classify.Rules
	Policy   mover.Policy
}

// Summary counts what one scan did.
type Summary struct {
	ScanID  string
	Moved   int
	Renamed int
	Skipped int
	Ignored int
}

// Sorter is the change handler: every notification re-lists the root.
type Sorter struct {
	fs         afero.Fs
	classifier *classify.Classifier
	mover      *mover.Mover
	recorder   Recorder
	layout     config.Layout
	ignore     []string
	mu         sync.Mutex
}

// New creates a Sorter. Call Prepare before the first scan.
func New(fs afero.Fs, options Options) *Sorter {
	return &Sorter{
		fs:         fs,
		classifier: classify.New(options.Rules),
		mover:      mover.New(fs, options.Policy),
		recorder:   options.Recorder,
		layout:     options.Layout,
		ignore:     options.Ignore,
	}
}

// Prepare creates the destination folders.
func (s *Sorter) Prepare() error {
	return s.layout.EnsureFolders(s.fs)
}

// Layout returns the resolved root and destinations.
func (s *Sorter) Layout() config.Layout {
	return s.layout
}

// Scan lists the immediate children of the root and sorts each one.
func (s *Sorter) Scan(ctx context.Context) (Summary, error) {
	infos, err := afero.ReadDir(s.fs, s.layout.Root)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list %s: %w", s.layout.Root, err)
	}

	entries := make([]classify.Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, classify.Entry{
			Name:  info.Name(),
			Path:  filepath.Join(s.layout.Root, info.Name()),
			IsDir: info.IsDir(),
		})
	}

	return s.HandleEntries(ctx, entries)
}

// HandleEntries runs the classify and move pipeline over entries in name
// order. Scans are serialized. The first move error aborts the pass.
func (s *Sorter) HandleEntries(ctx context.Context, entries []classify.Entry) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := Summary{ScanID: uuid.NewString()}
	log := logging.Get(ctx).With().Str("scan_id", summary.ScanID).Logger()
	ctx = log.WithContext(ctx)

	sorted := make([]classify.Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, entry := range sorted {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("scan interrupted: %w", err)
		}

		if reason, skip := s.shouldIgnore(entry); skip {
			log.Debug().Str("name", entry.Name).Str("reason", reason).Msg("Ignoring entry")
			summary.Ignored++
			continue
		}

		decision := s.classifier.Classify(entry)
		destDir := s.layout.Folder(decision.Category)

		result, err := s.mover.Move(ctx, destDir, entry)
		if err != nil {
			return summary, fmt.Errorf("failed to sort %s: %w", entry.Name, err)
		}

		switch result.Outcome {
		case mover.Skipped:
			summary.Skipped++
			continue
		case mover.Renamed:
			summary.Renamed++
		default:
			summary.Moved++
		}

		log.Info().
			Str("category", string(decision.Category)).
			Str("destination", result.Destination).
			Str("outcome", result.Outcome.String()).
			Msgf("Moved %s: %s", decision.Reason, entry.Name)

		s.record(ctx, summary.ScanID, decision.Category, result)
	}

	log.Debug().
		Int("moved", summary.Moved).
		Int("renamed", summary.Renamed).
		Int("skipped", summary.Skipped).
		Int("ignored", summary.Ignored).
		Msg("Scan complete")

	return summary, nil
}

// Run optionally scans once, then scans on every notification until ctx
// is cancelled. A scan error stops the watch and is returned. The notifier
// must deliver callbacks sequentially on the goroutine calling Watch.
func (s *Sorter) Run(ctx context.Context, notifier Notifier, initialScan bool) error {
	if initialScan {
		if _, err := s.Scan(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var scanErr error
	err := notifier.Watch(ctx, s.layout.Root, func(event watcher.Event) {
		logging.Get(ctx).Debug().Str("path", event.Path).Str("op", event.Op.String()).Msg("Change detected")
		_, err := s.Scan(ctx)
		if err == nil || ctx.Err() != nil || scanErr != nil {
			return
		}
		scanErr = err
		cancel()
	})
	if scanErr != nil {
		return scanErr
	}
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

func (s *Sorter) shouldIgnore(entry classify.Entry) (string, bool) {
	if s.layout.IsDestination(entry.Path) {
		return "destination folder", true
	}
	if strings.HasPrefix(entry.Name, ".") {
		return "hidden", true
	}
	for _, suffix := range s.ignore {
		if classify.HasSuffix(entry.Name, suffix) {
			return "in progress download", true
		}
	}
	return "", false
}

func (s *Sorter) record(ctx context.Context, scanID string, category classify.Category, result mover.Result) {
	if s.recorder == nil {
		return
	}
	err := s.recorder.Record(ctx, journal.Record{
		ScanID:      scanID,
		Source:      result.Source,
		Destination: result.Destination,
		Displaced:   result.Displaced,
		Category:    string(category),
		Outcome:     result.Outcome.String(),
		Size:        result.Size,
	})
	if err != nil {
		logging.Get(ctx).Warn().Err(err).Str("source", result.Source).Msg("Failed to journal move")
	}
}
