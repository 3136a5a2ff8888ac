package input

import (
	"sync"
	"time"
)

// Debouncer runs only the last of a burst of triggers, delay after it.
type Debouncer struct {
	delay time.Duration
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewDebouncer creates a debouncer. A non-positive delay runs triggers
// immediately.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, replacing any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	d.stopLocked()
	if d.delay <= 0 {
		d.mu.Unlock()
		fn()
		return
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen, fn) })
	d.mu.Unlock()
}

// Cancel drops the pending call, if any. A timer that already fired but has
// not yet run fn is dropped too.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Debouncer) stopLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire runs fn unless Trigger or Cancel happened after gen was scheduled.
// fn runs under mu, so Cancel returns only after an in-flight call is done.
func (d *Debouncer) fire(gen uint64, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return
	}
	d.timer = nil
	fn()
}
