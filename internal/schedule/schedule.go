// Package schedule abstracts the timers the drag engine needs so that the
// engine can run on any single-threaded event loop. Implementations must
// invoke callbacks on the owner's loop, never concurrently with other
// engine calls.
package schedule

import (
	"sort"
	"time"
)

// Scheduler runs deferred and repeating work on the owner's event loop
type Scheduler interface {
	// Now returns the loop's notion of the current time
	Now() time.Time
	// After runs fn once d has elapsed. The returned cancel func prevents a
	// pending fn from running; it is safe to call more than once.
	After(d time.Duration, fn func()) (cancel func())
	// Every runs fn each interval until the returned stop func is called.
	// A stopped task never fires again, even if a tick is already queued.
	Every(interval time.Duration, fn func(elapsed time.Duration)) (stop func())
}

// timer is a pending callback in a Manual scheduler
type timer struct {
	id       uint64
	at       time.Time
	interval time.Duration
	once     func()
	repeat   func(time.Duration)
	stopped  bool
}

// Manual is a deterministic Scheduler driven by Advance. Hosts without a
// real clock and tests use it to step animations and ticks explicitly.
type Manual struct {
	now    time.Time
	nextID uint64
	timers []*timer
}

// NewManual returns a Manual scheduler whose clock starts at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	return m.now
}

func (m *Manual) After(d time.Duration, fn func()) func() {
	t := m.add(d, 0)
	t.once = fn
	return func() { t.stopped = true }
}

func (m *Manual) Every(interval time.Duration, fn func(time.Duration)) func() {
	if interval <= 0 {
		interval = time.Millisecond
	}
	t := m.add(interval, interval)
	t.repeat = fn
	return func() { t.stopped = true }
}

// Pending returns the number of live timers
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due timers in order.
// Callbacks may schedule further timers; those fire too if they fall due
// within the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now.Add(d)
	for {
		t := m.next(end)
		if t == nil {
			break
		}
		m.now = t.at
		if t.repeat != nil {
			t.at = t.at.Add(t.interval)
			t.repeat(t.interval)
		} else {
			t.stopped = true
			t.once()
		}
	}
	m.now = end
	m.compact()
}

// Flush fires every pending one-shot timer regardless of its deadline,
// leaving repeating timers alone. It reports how many callbacks ran.
func (m *Manual) Flush() int {
	n := 0
	for {
		var due *timer
		for _, t := range m.sorted() {
			if !t.stopped && t.once != nil {
				due = t
				break
			}
		}
		if due == nil {
			m.compact()
			return n
		}
		if due.at.After(m.now) {
			m.now = due.at
		}
		due.stopped = true
		due.once()
		n++
	}
}

func (m *Manual) add(d, interval time.Duration) *timer {
	m.nextID++
	t := &timer{id: m.nextID, at: m.now.Add(d), interval: interval}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) next(end time.Time) *timer {
	for _, t := range m.sorted() {
		if t.stopped {
			continue
		}
		if t.at.After(end) {
			return nil
		}
		return t
	}
	return nil
}

func (m *Manual) sorted() []*timer {
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].at.Equal(m.timers[j].at) {
			return m.timers[i].id < m.timers[j].id
		}
		return m.timers[i].at.Before(m.timers[j].at)
	})
	return m.timers
}

func (m *Manual) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	m.timers = live
}
