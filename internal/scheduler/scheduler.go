// Package scheduler delays delivery of notifications carrying a
// schedule-time hint until that time arrives, using a min-heap keyed by
// fire time so PopDue can drain everything due in one pass.
package scheduler

import (
	"container/heap"
	"log"
	"time"
)

// Item is one scheduled notification awaiting its fire time.
type Item struct {
	FireTime time.Time
	ID       uint32
	Payload  any
}

type itemHeap []Item

func (h itemHeap) Len() int { return len(h) }
func (h itemHeap) Less(i, j int) bool {
	if h[i].FireTime.Equal(h[j].FireTime) {
		return h[i].ID < h[j].ID
	}
	return h[i].FireTime.Before(h[j].FireTime)
}
func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap) Push(x any) { *h = append(*h, x.(Item)) }

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Scheduler is a min-heap of pending items ordered by (FireTime, ID).
type Scheduler struct {
	queue itemHeap
}

// New returns an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Add resolves timeStr (a duration or RFC3339 timestamp, relative to now)
// and pushes payload to fire at that time. A malformed timeStr is logged
// and the item is dropped, matching the original's non-fatal handling.
func (s *Scheduler) Add(id uint32, timeStr string, payload any, now time.Time) {
	fireTime, err := parseTime(timeStr, now)
	if err != nil {
		log.Printf("scheduler: %v", err)
		return
	}
	heap.Push(&s.queue, Item{FireTime: fireTime, ID: id, Payload: payload})
}

// PopDue removes and returns every item whose FireTime has passed as of
// now, in fire-time order.
func (s *Scheduler) PopDue(now time.Time) []Item {
	var due []Item
	for s.queue.Len() > 0 && !s.queue[0].FireTime.After(now) {
		due = append(due, heap.Pop(&s.queue).(Item))
	}
	return due
}

// PeekNextFire returns the earliest pending FireTime and true, or the zero
// time and false if nothing is scheduled.
func (s *Scheduler) PeekNextFire() (time.Time, bool) {
	if s.queue.Len() == 0 {
		return time.Time{}, false
	}
	return s.queue[0].FireTime, true
}

// Len reports how many items are pending.
func (s *Scheduler) Len() int { return s.queue.Len() }
