// Package scheduler provides the repeating drop timer used by the frontends.
//
// A Repeater delivers ticks on a channel at an interval that can be swapped
// while running. Swapping stops the old timer goroutine and drains any
// undelivered tick before the new timer starts, so ticks of two intervals
// never overlap.
package scheduler

import (
	"context"
	"sync"
	"time"
)

// Repeater is a cancellable repeating timer with a swappable interval.
type Repeater struct {
	mu       sync.Mutex
	ticks    chan time.Time
	interval time.Duration
	ctx      context.Context
	stop     chan struct{}
	done     chan struct{}
}

// New creates a stopped Repeater. Non-positive intervals are clamped to 1ms.
func New(interval time.Duration) *Repeater {
	return &Repeater{
		ticks:    make(chan time.Time, 1),
		interval: normalize(interval),
	}
}

func normalize(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Millisecond
	}
	return d
}

// C returns the channel ticks are delivered on. It is never closed.
// A tick is dropped if the previous one has not been consumed yet.
func (r *Repeater) C() <-chan time.Time {
	return r.ticks
}

// Interval returns the currently configured interval.
func (r *Repeater) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}

// Running reports whether the timer goroutine is active.
func (r *Repeater) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}

// Start begins ticking. The timer also stops when ctx is done.
// Starting a running Repeater is a no-op.
func (r *Repeater) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stop != nil {
		return
	}
	r.ctx = ctx
	r.launch()
}

// Reset swaps the interval. If running, the old timer is fully stopped
// and pending ticks are discarded before the new timer starts.
func (r *Repeater) Reset(interval time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.interval = normalize(interval)
	if r.stop == nil {
		return
	}
	r.halt()
	r.launch()
}

// Stop halts the timer and discards a pending tick. Safe to call twice.
func (r *Repeater) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stop != nil {
		r.halt()
	}
}

// launch starts the timer goroutine. Caller holds mu.
func (r *Repeater) launch() {
	stop := make(chan struct{})
	done := make(chan struct{})
	r.stop = stop
	r.done = done
	go r.loop(r.ctx, r.interval, stop, done)
}

// halt stops the timer goroutine and waits for it to exit. Caller holds mu.
func (r *Repeater) halt() {
	close(r.stop)
	<-r.done
	r.stop = nil
	r.done = nil

	select {
	case <-r.ticks:
	default:
	}
}

func (r *Repeater) loop(ctx context.Context, interval time.Duration, stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			select {
			case r.ticks <- now:
			default:
			}
		}
	}
}
