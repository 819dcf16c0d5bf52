package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerMsg delivers one tick of a scheduled timer. Timers are keyed by a
// generation number that is never reused, so a tick for a timer that was
// cancelled in the meantime finds nothing and is dropped.
type timerMsg struct {
	gen uint64
	at  time.Time
}

type teaTimer struct {
	once     func()
	every    func(time.Duration)
	interval time.Duration
	last     time.Time
}

// Scheduler runs engine timers on the bubbletea event loop. Callbacks fire
// from Update, never from another goroutine; pending ticks are handed to
// the program through Commands.
type Scheduler struct {
	clock  func() time.Time
	gen    uint64
	timers map[uint64]*teaTimer
	queued []tea.Cmd
	tick   func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

// NewScheduler creates a scheduler reading time from clock, or time.Now
// when clock is nil
func NewScheduler(clock func() time.Time) *Scheduler {
	if clock == nil {
		clock = time.Now
	}
	return &Scheduler{clock: clock, timers: make(map[uint64]*teaTimer), tick: tea.Tick}
}

func (s *Scheduler) Now() time.Time {
	return s.clock()
}

func (s *Scheduler) After(d time.Duration, fn func()) func() {
	gen := s.add(&teaTimer{once: fn})
	s.queue(gen, d)
	return s.cancel(gen)
}

func (s *Scheduler) Every(interval time.Duration, fn func(time.Duration)) func() {
	gen := s.add(&teaTimer{every: fn, interval: interval, last: s.clock()})
	s.queue(gen, interval)
	return s.cancel(gen)
}

// Pending returns the number of live timers
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Commands drains the ticks queued since the last call
func (s *Scheduler) Commands() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// Fire runs the timer a tick belongs to. Repeating timers are re-armed
// unless their callback cancelled them.
func (s *Scheduler) Fire(msg timerMsg) bool {
	t, ok := s.timers[msg.gen]
	if !ok {
		return false
	}
	if t.once != nil {
		delete(s.timers, msg.gen)
		t.once()
		return true
	}

	elapsed := msg.at.Sub(t.last)
	if elapsed <= 0 {
		elapsed = t.interval
	}
	t.last = msg.at
	t.every(elapsed)
	if _, ok := s.timers[msg.gen]; ok {
		s.queue(msg.gen, t.interval)
	}
	return true
}

func (s *Scheduler) add(t *teaTimer) uint64 {
	s.gen++
	s.timers[s.gen] = t
	return s.gen
}

func (s *Scheduler) queue(gen uint64, d time.Duration) {
	s.queued = append(s.queued, s.tick(d, func(at time.Time) tea.Msg {
		return timerMsg{gen: gen, at: at}
	}))
}

func (s *Scheduler) cancel(gen uint64) func() {
	return func() { delete(s.timers, gen) }
}
