// Package sched runs timed callbacks against a simulated clock.
//
// Every timer belongs to an owner so all of an entity's pending work can be
// cancelled at once. The clock only moves when Advance is called, so pausing
// the caller pauses every timer.
package sched

import (
	"sort"
	"time"
)

// Owner identifies the entity a timer belongs to.
type Owner string

// ID identifies one scheduled timer.
type ID uint64

type timer struct {
	id       ID
	owner    Owner
	at       time.Duration
	interval time.Duration // zero for one-shot timers
	once     func()
	tick     func() bool
}

// Scheduler is a timer list keyed by owner. It is not safe for concurrent
// use; the simulation loop owns it.
type Scheduler struct {
	now    time.Duration
	nextID ID
	timers []*timer
}

// New creates a scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the simulated time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After runs fn once, d after the current time.
func (s *Scheduler) After(owner Owner, d time.Duration, fn func()) ID {
	return s.add(&timer{owner: owner, at: s.now + d, once: fn})
}

// Every runs fn each interval until it returns false or the timer is
// cancelled. The first call happens one interval from now.
func (s *Scheduler) Every(owner Owner, interval time.Duration, fn func() bool) ID {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return s.add(&timer{owner: owner, at: s.now + interval, interval: interval, tick: fn})
}

func (s *Scheduler) add(t *timer) ID {
	s.nextID++
	t.id = s.nextID
	s.timers = append(s.timers, t)
	return t.id
}

// Cancel removes one timer. It reports whether the timer was pending.
func (s *Scheduler) Cancel(id ID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// CancelOwner removes every timer of an owner and returns how many were
// pending.
func (s *Scheduler) CancelOwner(owner Owner) int {
	kept := s.timers[:0]
	removed := 0
	for _, t := range s.timers {
		if t.owner == owner {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	clear(s.timers[len(kept):])
	s.timers = kept
	return removed
}

// CancelAll removes every pending timer.
func (s *Scheduler) CancelAll() {
	s.timers = nil
}

// Pending returns the number of timers an owner has waiting.
func (s *Scheduler) Pending(owner Owner) int {
	n := 0
	for _, t := range s.timers {
		if t.owner == owner {
			n++
		}
	}
	return n
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	return len(s.timers)
}

// Advance moves the clock forward by dt and fires every timer that comes
// due, in due-time order with ties broken by scheduling order. Callbacks may
// schedule or cancel timers; a periodic timer that falls several intervals
// behind fires once per interval. Returns the number of callbacks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}
	fired := 0
	for {
		t := s.popDue()
		if t == nil {
			return fired
		}
		fired++
		if t.interval == 0 {
			t.once()
			continue
		}
		// Re-arm before running so the callback can cancel its own timer.
		t.at += t.interval
		s.timers = append(s.timers, t)
		if !t.tick() {
			s.Cancel(t.id)
		}
	}
}

// popDue removes and returns the earliest due timer, or nil.
func (s *Scheduler) popDue() *timer {
	due := -1
	for i, t := range s.timers {
		if t.at > s.now {
			continue
		}
		if due < 0 || t.at < s.timers[due].at || (t.at == s.timers[due].at && t.id < s.timers[due].id) {
			due = i
		}
	}
	if due < 0 {
		return nil
	}
	t := s.timers[due]
	s.timers = append(s.timers[:due], s.timers[due+1:]...)
	return t
}

// Remaining returns the time left on each pending timer of an owner,
// soonest first.
func (s *Scheduler) Remaining(owner Owner) []time.Duration {
	var out []time.Duration
	for _, t := range s.timers {
		if t.owner == owner {
			out = append(out, t.at-s.now)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
