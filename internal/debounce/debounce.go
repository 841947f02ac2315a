// Package debounce provides a timer-based coalescing primitive.
//
// A Debouncer collapses bursts of Trigger calls into a single invocation of
// the wrapped function: each Trigger replaces any pending run and restarts
// the quiescence window, so only the payload of the last call within the
// window is delivered. The owning component can Flush on teardown to avoid
// losing the pending payload, or Stop to discard it.
package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid Trigger calls into one delayed invocation of fn.
// It is safe for concurrent use.
type Debouncer[T any] struct {
	mu      sync.Mutex
	window  time.Duration
	fn      func(T)
	timer   *time.Timer
	pending T
	armed   bool
	stopped bool
}

// New creates a Debouncer that invokes fn with the most recent payload once
// window has elapsed without further triggers. A non-positive window makes
// every Trigger fire synchronously.
func New[T any](window time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{window: window, fn: fn}
}

// Trigger schedules fn with v, replacing any pending invocation and
// restarting the quiescence window.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.window <= 0 {
		d.mu.Unlock()
		d.fn(v)
		return
	}
	d.pending = v
	d.armed = true
	if d.timer == nil {
		d.timer = time.AfterFunc(d.window, d.fire)
	} else {
		d.timer.Reset(d.window)
	}
	d.mu.Unlock()
}

// Flush runs any pending invocation immediately. It is a no-op when nothing
// is pending or the debouncer has been stopped.
func (d *Debouncer[T]) Flush() {
	d.fire()
}

// Stop cancels any pending invocation and rejects future triggers.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
}

// Pending reports whether an invocation is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}

// fire delivers the pending payload, if any. The payload is cleared before
// fn runs so a Trigger from inside fn schedules a fresh window.
func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if !d.armed || d.stopped {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.armed = false
	var zero T
	d.pending = zero
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	d.fn(v)
}
