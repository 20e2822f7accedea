// Package schedule runs one-shot deferred actions against a tick-driven clock.
//
// The clock only moves when the owner calls Advance, so every action fires
// from inside the frame that crossed its due time and never from another
// goroutine.
package schedule

import (
	"time"

	"github.com/elliotchance/orderedmap/v2"
)

// Handle identifies a scheduled action. The zero Handle is never issued.
type Handle uint64

// Scheduler is the subset of Timers that deferred-action users need.
type Scheduler interface {
	ScheduleOnce(delay time.Duration, fn func()) Handle
	Cancel(h Handle) bool
}

type task struct {
	due time.Duration
	fn  func()
}

// Timers is a single-threaded one-shot timer queue.
type Timers struct {
	now     time.Duration
	last    Handle
	pending *orderedmap.OrderedMap[Handle, task]
}

// New creates an empty timer queue at time zero.
func New() *Timers {
	return &Timers{pending: orderedmap.NewOrderedMap[Handle, task]()}
}

// Now returns the current clock value.
func (t *Timers) Now() time.Duration {
	return t.now
}

// Len returns the number of pending actions.
func (t *Timers) Len() int {
	return t.pending.Len()
}

// ScheduleOnce queues fn to run once the clock has advanced by delay.
// Negative delays are treated as zero.
func (t *Timers) ScheduleOnce(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	t.last++
	t.pending.Set(t.last, task{due: t.now + delay, fn: fn})
	return t.last
}

// Cancel removes a pending action. It reports whether the action was still
// pending; cancelling a fired or unknown handle is a no-op.
func (t *Timers) Cancel(h Handle) bool {
	return t.pending.Delete(h)
}

// Pending reports whether h has neither fired nor been cancelled.
func (t *Timers) Pending(h Handle) bool {
	_, ok := t.pending.Get(h)
	return ok
}

// Advance moves the clock forward by dt and runs every action that became
// due, earliest first. Actions due at the same instant run in the order they
// were scheduled. An action may schedule or cancel others; new actions that
// are already due run within the same call. Returns the number fired.
func (t *Timers) Advance(dt time.Duration) int {
	if dt > 0 {
		t.now += dt
	}

	fired := 0
	for {
		h, tk, ok := t.nextDue()
		if !ok {
			return fired
		}
		t.pending.Delete(h)
		fired++
		if tk.fn != nil {
			tk.fn()
		}
	}
}

func (t *Timers) nextDue() (Handle, task, bool) {
	var (
		best   Handle
		bestTk task
		found  bool
	)
	for el := t.pending.Front(); el != nil; el = el.Next() {
		if el.Value.due > t.now {
			continue
		}
		if !found || el.Value.due < bestTk.due {
			best, bestTk, found = el.Key, el.Value, true
		}
	}
	return best, bestTk, found
}

// Group tracks the handles issued for one owner so they can be cancelled
// together.
type Group struct {
	s       Scheduler
	handles []Handle
}

// NewGroup creates a group issuing handles from s.
func NewGroup(s Scheduler) *Group {
	return &Group{s: s}
}

// Once schedules fn on the underlying scheduler and remembers its handle.
func (g *Group) Once(delay time.Duration, fn func()) Handle {
	h := g.s.ScheduleOnce(delay, fn)
	g.handles = append(g.handles, h)
	return h
}

// CancelAll cancels every remembered handle and returns how many were still
// pending.
func (g *Group) CancelAll() int {
	n := 0
	for _, h := range g.handles {
		if g.s.Cancel(h) {
			n++
		}
	}
	g.handles = g.handles[:0]
	return n
}
