package watcher

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event represents a single filesystem change. When events are coalesced
// the last one in the burst is delivered.
type Event struct {
	Timestamp time.Time
	Path      string
	Op        fsnotify.Op
}

// Options controls watcher behavior.
type Options struct {
	// Debounce is the quiet period before a burst is delivered. Zero
	// delivers every event immediately.
	Debounce time.Duration
	// Recursive also watches every subdirectory of the root, including
	// directories created while watching.
	Recursive bool
}
