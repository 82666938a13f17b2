package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testutil "github.com/wizzomafizzo/sortdl/internal/testing"
)

type runningWatch struct {
	events chan Event
	done   chan error
	cancel context.CancelFunc
}

// startWatch runs Watch in the background and returns once it is subscribed.
func startWatch(t *testing.T, w *Watcher, root string) *runningWatch {
	t.Helper()

	ctx, _ := testutil.NewTestContext(t)
	ctx, cancel := context.WithCancel(ctx)

	ready := make(chan struct{})
	w.onReady = func() { close(ready) }

	running := &runningWatch{
		events: make(chan Event, 64),
		done:   make(chan error, 1),
		cancel: cancel,
	}
	go func() {
		running.done <- w.Watch(ctx, root, func(event Event) {
			running.events <- event
		})
	}()

	select {
	case <-ready:
	case err := <-running.done:
		t.Fatalf("watch exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher setup")
	}
	return running
}

func (r *runningWatch) stop(t *testing.T) {
	t.Helper()

	r.cancel()
	select {
	case err := <-r.done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch to stop")
	}
}

func waitForEvent(events <-chan Event, timeout time.Duration) (Event, bool) {
	select {
	case event := <-events:
		return event, true
	case <-time.After(timeout):
		return Event{}, false
	}
}

func TestWatchDeliversCreate(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	root := t.TempDir()
	w := New(Options{})
	running := startWatch(t, w, root)

	path := filepath.Join(root, "song.mp3")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

	event, ok := waitForEvent(running.events, 5*time.Second)
	require.True(t, ok, "timed out waiting for create event")
	assert.Equal(t, path, event.Path)

	running.stop(t)
	assert.GreaterOrEqual(t, w.Metrics().EventsDelivered, uint64(1))
}

func TestWatchCoalescesBurst(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	root := t.TempDir()
	w := New(Options{Debounce: 150 * time.Millisecond})
	running := startWatch(t, w, root)

	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(name), 0o600))
	}

	_, ok := waitForEvent(running.events, 5*time.Second)
	require.True(t, ok, "timed out waiting for coalesced event")

	_, extra := waitForEvent(running.events, 400*time.Millisecond)
	assert.False(t, extra, "burst should produce a single callback")

	running.stop(t)
	metrics := w.Metrics()
	assert.Equal(t, uint64(1), metrics.EventsDelivered)
	assert.GreaterOrEqual(t, metrics.EventsDropped, uint64(3))
}

func TestWatchRecursiveSeesNewSubdirectory(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "Music"), 0o750))

	w := New(Options{Recursive: true})
	running := startWatch(t, w, root)

	nested := filepath.Join(root, "Music", "track.flac")
	require.NoError(t, os.WriteFile(nested, []byte("x"), 0o600))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case event := <-running.events:
			if event.Path == nested {
				running.stop(t)
				return
			}
		case <-deadline:
			running.stop(t)
			t.Fatal("timed out waiting for nested event")
		}
	}
}

func TestWatchMissingRoot(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	ctx, _ := testutil.NewTestContext(t)
	err := New(Options{}).Watch(ctx, filepath.Join(t.TempDir(), "missing"), func(Event) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}

func TestWatchAfterClose(t *testing.T) {
	w := New(Options{})
	require.NoError(t, w.Close())

	err := w.Watch(context.Background(), t.TempDir(), func(Event) {})
	require.ErrorIs(t, err, ErrClosed)
}
