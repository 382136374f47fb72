package async

import (
	"context"
	"sync"
	"time"
)

// Debouncer coalesces rapid triggers into one action: the action runs only
// after a quiet period, and each new trigger restarts the timer and cancels
// the context of any still-running action. Stop must be called on teardown so
// no pending action fires afterwards.
type Debouncer struct {
	quiet time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	inflight context.CancelFunc
	stopped  bool
}

func NewDebouncer(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Trigger schedules fn to run after the quiet period. A trigger arriving
// before the period elapses replaces the pending fn entirely; only the latest
// one runs. fn receives a context that is cancelled by the next trigger or by
// Stop.
func (d *Debouncer) Trigger(fn func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.fire(fn)
	})
}

func (d *Debouncer) fire(fn func(ctx context.Context)) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.inflight != nil {
		d.inflight()
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.inflight = cancel
	d.mu.Unlock()

	fn(ctx)
}

// Stop cancels any pending trigger and any in-flight action. The debouncer
// cannot be reused afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.inflight != nil {
		d.inflight()
	}
}
