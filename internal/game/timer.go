package game

import (
	"sync"
	"time"
)

// IntervalTimer is an owned periodic timer resource. Start and Stop are
// the only mutators; at most one tick stream is active at a time.
// Starting cancels any existing run first, so repeated Start calls can
// never leak concurrent tickers.
type IntervalTimer struct {
	interval time.Duration
	fn       func()

	mu     sync.Mutex
	stopCh chan struct{}
}

// NewIntervalTimer creates a timer that invokes fn every interval once started
func NewIntervalTimer(interval time.Duration, fn func()) *IntervalTimer {
	return &IntervalTimer{
		interval: interval,
		fn:       fn,
	}
}

// Start begins the tick stream, cancelling any run already in progress
func (t *IntervalTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()

	stopCh := make(chan struct{})
	t.stopCh = stopCh
	go t.run(stopCh)
}

// Stop halts the tick stream. Safe to call when already stopped, and safe
// to call from within the timer's own callback.
func (t *IntervalTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Running reports whether a tick stream is currently active
func (t *IntervalTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopCh != nil
}

func (t *IntervalTimer) stopLocked() {
	if t.stopCh != nil {
		close(t.stopCh)
		t.stopCh = nil
	}
}

func (t *IntervalTimer) run(stopCh chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// A tick racing a Stop can still fire once after cancellation;
			// callbacks re-check session state so the late tick is a no-op.
			t.fn()
		}
	}
}
