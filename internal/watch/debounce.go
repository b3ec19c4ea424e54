package watch

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of events for the same file. An atomic write
// shows up as several filesystem events; only the last survives, except that
// a creation stays a creation.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingEvent
	stopped bool
	wg      sync.WaitGroup
}

type pendingEvent struct {
	event Event
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]*pendingEvent),
	}
}

func (d *debouncer) add(e Event, fn func(Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if prev, ok := d.pending[e.Path]; ok {
		if prev.event.Op == Created && e.Op == Modified {
			e.Op = Created
		}
		if prev.timer.Stop() {
			d.wg.Done()
		}
	}

	p := &pendingEvent{event: e}
	d.wg.Add(1)
	p.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		if d.pending[e.Path] != p {
			d.mu.Unlock()
			return
		}
		delete(d.pending, e.Path)
		d.mu.Unlock()

		fn(p.event)
	})
	d.pending[e.Path] = p
}

// stopAndWait drops pending events and waits up to timeout for deliveries
// already in flight.
func (d *debouncer) stopAndWait(timeout time.Duration) bool {
	d.mu.Lock()
	d.stopped = true
	for path, p := range d.pending {
		if p.timer.Stop() {
			d.wg.Done()
		}
		delete(d.pending, path)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
