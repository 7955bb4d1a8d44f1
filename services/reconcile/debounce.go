package reconcile

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of qualifying changes into a single deferred
// call. Every Schedule restarts the window; only the last scheduled function
// within the window runs. A generation counter makes a timer that fires after
// a newer one was scheduled a no-op, so cancellation never races the firing
// goroutine.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	gen    uint64
	timer  *time.Timer
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Schedule arms the debouncer to run fn after the window elapses, replacing
// any previously scheduled call.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		stale := gen != d.gen
		d.mu.Unlock()
		if stale {
			return
		}
		fn()
	})
}

// Cancel drops any pending call without scheduling a new one.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
