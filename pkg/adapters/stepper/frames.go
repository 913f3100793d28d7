package stepper

import (
	"context"
	"sync"
	"time"
)

// FrameQueue is a ports.FrameScheduler pumped explicitly with Tick.
// Safe for concurrent use.
type FrameQueue struct {
	mu      sync.Mutex
	seq     uint64
	pending map[uint64]func(time.Time)
	order   []uint64
}

// NewFrameQueue creates an empty frame queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[uint64]func(time.Time))}
}

// RequestFrame queues fn for the next Tick.
func (q *FrameQueue) RequestFrame(fn func(now time.Time)) (cancel func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.seq++
	id := q.seq
	q.pending[id] = fn
	q.order = append(q.order, id)

	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		delete(q.pending, id)
	}
}

// Tick runs the callbacks queued before the call, in request order, and returns how
// many ran. Callbacks requested during the tick wait for the next one.
func (q *FrameQueue) Tick(now time.Time) int {
	q.mu.Lock()
	order := q.order
	q.order = nil
	var due []func(time.Time)
	for _, id := range order {
		if fn, ok := q.pending[id]; ok {
			due = append(due, fn)
			delete(q.pending, id)
		}
	}
	q.mu.Unlock()

	for _, fn := range due {
		fn(now)
	}
	return len(due)
}

// Len returns the number of queued callbacks.
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Run ticks the queue every interval until ctx is cancelled.
func (q *FrameQueue) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			q.Tick(now)
		}
	}
}
