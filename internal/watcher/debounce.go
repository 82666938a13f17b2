package watcher

import "time"

// debouncer coalesces a burst of events into the last one. It is owned by
// the watch loop goroutine and is not safe for concurrent use.
type debouncer struct {
	timer    *time.Timer
	pending  Event
	duration time.Duration
	armed    bool
}

func newDebouncer(duration time.Duration) *debouncer {
	return &debouncer{duration: duration}
}

// schedule stores event and restarts the quiet period. It reports whether
// an earlier pending event was coalesced.
func (d *debouncer) schedule(event Event) bool {
	coalesced := d.armed
	d.pending = event
	d.armed = true
	if d.timer == nil {
		d.timer = time.NewTimer(d.duration)
	} else {
		d.timer.Reset(d.duration)
	}
	return coalesced
}

// C fires when the quiet period ends. It is nil while nothing is pending.
func (d *debouncer) C() <-chan time.Time {
	if !d.armed {
		return nil
	}
	return d.timer.C
}

func (d *debouncer) pop() (Event, bool) {
	if !d.armed {
		return Event{}, false
	}
	d.armed = false
	return d.pending, true
}

func (d *debouncer) stop() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.armed = false
}
