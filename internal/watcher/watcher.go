// Package watcher adapts fsnotify into a blocking, coalescing change
// notification for a single directory tree.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/wizzomafizzo/sortdl/internal/logging"
)

// ErrClosed is returned when Watch is called on a closed Watcher.
var ErrClosed = errors.New("watcher closed")

// Watcher is the concrete fsnotify-backed implementation.
type Watcher struct {
	onReady         func()
	options         Options
	closed          atomic.Bool
	eventsDelivered atomic.Uint64
	eventsDropped   atomic.Uint64
}

// Metrics reports watcher counters.
type Metrics struct {
	EventsDelivered uint64
	EventsDropped   uint64
}

// New creates a Watcher with the given options.
func New(options Options) *Watcher {
	if options.Debounce < 0 {
		options.Debounce = 0
	}
	return &Watcher{options: options}
}

// Close marks the watcher closed. Running Watch calls stop on context
// cancellation; later Watch calls fail with ErrClosed.
func (w *Watcher) Close() error {
	w.closed.Store(true)
	return nil
}

// Metrics reports current watcher stats.
func (w *Watcher) Metrics() Metrics {
	return Metrics{
		EventsDelivered: w.eventsDelivered.Load(),
		EventsDropped:   w.eventsDropped.Load(),
	}
}

// Watch subscribes to changes under root and calls callback once per
// quiet period. Callbacks run on the calling goroutine, one at a time. It
// blocks until ctx is cancelled and returns nil then; setup failures are
// returned immediately.
func (w *Watcher) Watch(ctx context.Context, root string, callback func(Event)) error {
	if w.closed.Load() {
		return ErrClosed
	}

	log := logging.Get(ctx)

	source, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer func() { _ = source.Close() }()

	if err := source.Add(root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	if w.options.Recursive {
		w.addRecursive(log, source, root)
	}
	log.Info().Str("path", root).Bool("recursive", w.options.Recursive).Msg("Watching for changes")
	if w.onReady != nil {
		w.onReady()
	}

	debounce := newDebouncer(w.options.Debounce)
	defer debounce.stop()

	for {
		select {
		case <-ctx.Done():
			metrics := w.Metrics()
			log.Info().
				Str("path", root).
				Uint64("delivered", metrics.EventsDelivered).
				Uint64("dropped", metrics.EventsDropped).
				Msg("Stopped watching")
			return nil
		case event, ok := <-source.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			if w.options.Recursive && event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					w.addWatch(log, source, event.Name)
					w.addRecursive(log, source, event.Name)
				}
			}

			entry := Event{Path: event.Name, Op: event.Op, Timestamp: time.Now().UTC()}
			if w.options.Debounce == 0 {
				w.deliver(callback, entry)
				continue
			}
			if debounce.schedule(entry) {
				w.eventsDropped.Add(1)
			}
		case <-debounce.C():
			if entry, ok := debounce.pop(); ok {
				w.deliver(callback, entry)
			}
		case err, ok := <-source.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("path", root).Msg("Watcher error")
		}
	}
}

func (w *Watcher) deliver(callback func(Event), event Event) {
	callback(event)
	w.eventsDelivered.Add(1)
}

func (w *Watcher) addRecursive(log *zerolog.Logger, source *fsnotify.Watcher, root string) {
	dirs, err := subdirectories(root)
	if err != nil {
		log.Warn().Err(err).Str("path", root).Msg("Failed to list subdirectories")
	}
	for _, dir := range dirs {
		w.addWatch(log, source, dir)
	}
}

func (*Watcher) addWatch(log *zerolog.Logger, source *fsnotify.Watcher, path string) {
	if err := source.Add(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("watch add failed")
		return
	}
	log.Debug().Str("path", path).Msg("watch added")
}

// relevant drops chmod-only events, which fire for metadata changes.
func relevant(event fsnotify.Event) bool {
	return event.Op != 0 && event.Op != fsnotify.Chmod
}
