package ambient

import (
	"container/heap"
	"time"
)

// Scheduler is a cooperative queue of timed tasks. It is driven by RunDue and
// is not safe for concurrent use.
type Scheduler struct {
	queue taskQueue
	seq   uint64
}

type task struct {
	at  time.Time
	seq uint64
	fn  func(now time.Time)
}

func (s *Scheduler) Schedule(at time.Time, fn func(now time.Time)) {
	s.seq++
	heap.Push(&s.queue, &task{at: at, seq: s.seq, fn: fn})
}

// RunDue runs every task due at or before now, earliest first, and returns
// how many ran. Tasks scheduled by a running task are considered too.
func (s *Scheduler) RunDue(now time.Time) int {
	ran := 0
	for len(s.queue) > 0 && !s.queue[0].at.After(now) {
		t := heap.Pop(&s.queue).(*task)
		t.fn(t.at)
		ran++
	}
	return ran
}

func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Reset drops every queued task.
func (s *Scheduler) Reset() {
	s.queue = nil
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) { *q = append(*q, x.(*task)) }

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
