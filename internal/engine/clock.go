package engine

import (
	"sync"
	"time"
)

// FrameHandle identifies a scheduled frame callback. Handles increase
// monotonically per scheduler.
type FrameHandle uint64

// Scheduler is the host's frame-pacing primitive.
type Scheduler interface {
	RequestFrame(cb func(now time.Time)) FrameHandle
	CancelFrame(h FrameHandle)
	Now() time.Time
}

// FrameClock drives a self-rescheduling tick chain.
type FrameClock struct {
	sched    Scheduler
	maxDelta time.Duration

	onTick  func(dtMillis float64)
	last    time.Time
	handle  FrameHandle
	running bool
	gen     uint64
}

// NewFrameClock creates a stopped clock. A positive maxDelta caps a
// single tick's dt.
func NewFrameClock(sched Scheduler, maxDelta time.Duration) *FrameClock {
	return &FrameClock{sched: sched, maxDelta: maxDelta}
}

// Start begins ticking. The first dt is measured from Start.
// Starting a running clock restarts it.
func (c *FrameClock) Start(onTick func(dtMillis float64)) {
	c.Stop()
	c.gen++
	c.running = true
	c.onTick = onTick
	c.last = c.sched.Now()
	c.schedule()
}

// Stop cancels the pending tick. After Stop returns the tick callback
// passed to Start is never invoked again.
func (c *FrameClock) Stop() {
	if !c.running {
		return
	}
	c.running = false
	c.gen++
	c.sched.CancelFrame(c.handle)
	c.onTick = nil
}

// Running reports whether the clock is ticking.
func (c *FrameClock) Running() bool {
	return c.running
}

func (c *FrameClock) schedule() {
	gen := c.gen
	c.handle = c.sched.RequestFrame(func(now time.Time) {
		c.frame(gen, now)
	})
}

func (c *FrameClock) frame(gen uint64, now time.Time) {
	if !c.running || gen != c.gen {
		return
	}
	dt := now.Sub(c.last)
	c.last = now
	if dt < 0 {
		dt = 0
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		dt = c.maxDelta
	}

	c.onTick(float64(dt) / float64(time.Millisecond))

	// onTick may have stopped or restarted the clock.
	if c.running && gen == c.gen {
		c.schedule()
	}
}

type frameRequest struct {
	handle    FrameHandle
	cb        func(now time.Time)
	cancelled bool
}

// FrameQueue is a Scheduler flushed by a host once per host frame.
// Callbacks requested while a flush is running wait for the next flush.
type FrameQueue struct {
	mu      sync.Mutex
	now     func() time.Time
	next    FrameHandle
	pending []*frameRequest
	running []*frameRequest
}

// NewFrameQueue creates a queue. A nil now uses time.Now.
func NewFrameQueue(now func() time.Time) *FrameQueue {
	if now == nil {
		now = time.Now
	}
	return &FrameQueue{now: now}
}

// RequestFrame queues cb for the next flush.
func (q *FrameQueue) RequestFrame(cb func(now time.Time)) FrameHandle {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.next++
	q.pending = append(q.pending, &frameRequest{handle: q.next, cb: cb})
	return q.next
}

// CancelFrame drops a queued callback. Unknown handles are ignored.
func (q *FrameQueue) CancelFrame(h FrameHandle) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, req := range q.pending {
		if req.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for _, req := range q.running {
		if req.handle == h {
			req.cancelled = true
			return
		}
	}
}

// Now returns the queue's clock reading.
func (q *FrameQueue) Now() time.Time {
	return q.now()
}

// Flush runs every callback queued before the call. It returns how many ran.
func (q *FrameQueue) Flush(now time.Time) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.running = batch
	q.mu.Unlock()

	ran := 0
	for _, req := range batch {
		q.mu.Lock()
		cancelled := req.cancelled
		q.mu.Unlock()
		if cancelled {
			continue
		}
		req.cb(now)
		ran++
	}

	q.mu.Lock()
	q.running = nil
	q.mu.Unlock()
	return ran
}

// Pending returns the number of queued callbacks.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
