// Package debounce collapses rapid repeated triggers into a single
// invocation after a quiet period.
package debounce

import (
	"sync"
	"time"
)

// Debouncer schedules a function to run with the most recent value once the
// quiet period elapses with no further triggers. Only scheduling is
// collapsed: the function runs on the timer goroutine, and an invocation
// already in flight is never cancelled by a later trigger. Independent
// Debouncer instances have independent timers.
type Debouncer[T any] struct {
	quiet time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending bool
	latest  T
}

// New creates a Debouncer that invokes fn with the latest triggered value
// after quiet has elapsed without another trigger.
func New[T any](quiet time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		quiet: quiet,
		fn:    fn,
	}
}

// Trigger records v as the latest value and restarts the quiet-period timer,
// cancelling any invocation scheduled by a prior call.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.latest = v
	d.pending = true
	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
	}
	// The generation check covers the window where a stopped timer has
	// already fired and is waiting on the mutex.
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(gen) })
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	v := d.latest
	d.pending = false
	d.mu.Unlock()

	d.fn(v)
}

// Cancel drops a pending invocation, if any.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

// Flush runs a pending invocation immediately instead of waiting out the
// quiet period. No-op when nothing is pending.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.gen++
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
	v := d.latest
	d.mu.Unlock()

	d.fn(v)
}

// Pending reports whether an invocation is currently scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
