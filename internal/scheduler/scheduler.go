// internal/scheduler/scheduler.go
package scheduler

import (
	"container/heap"
	"time"
)

// FrameScheduler runs delayed one-shot callbacks on the host frame loop.
// Time only moves when the host calls Advance, so a paused or throttled loop
// delays callbacks instead of bunching them up on a wall clock.
type FrameScheduler struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

type timer struct {
	deadline  time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

// New creates a scheduler at time zero.
func New() *FrameScheduler {
	return &FrameScheduler{}
}

// Now returns the accumulated frame time.
func (s *FrameScheduler) Now() time.Duration {
	return s.now
}

// Schedule registers fn to run once delay has elapsed. The returned func
// cancels the call if it has not fired yet.
func (s *FrameScheduler) Schedule(delay time.Duration, fn func()) (cancel func()) {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &timer{deadline: s.now + delay, seq: s.seq, fn: fn}
	heap.Push(&s.queue, t)
	return func() { t.cancelled = true }
}

// Advance moves time forward by dt and fires every callback whose deadline
// has passed, earliest first, ties in scheduling order. Callbacks scheduled
// while advancing wait for the next call. Returns the number fired.
func (s *FrameScheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}
	limit := s.seq
	fired := 0
	for s.queue.Len() > 0 {
		t := s.queue[0]
		if t.deadline > s.now || t.seq > limit {
			break
		}
		heap.Pop(&s.queue)
		if t.cancelled {
			continue
		}
		t.cancelled = true
		t.fn()
		fired++
	}
	return fired
}

// Pending returns the number of callbacks that are still due to fire.
func (s *FrameScheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Clear drops every pending callback.
func (s *FrameScheduler) Clear() {
	for _, t := range s.queue {
		t.cancelled = true
	}
	s.queue = s.queue[:0]
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline == q[j].deadline {
		return q[i].seq < q[j].seq
	}
	return q[i].deadline < q[j].deadline
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*timer)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
