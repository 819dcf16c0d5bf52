package gesture

import (
	"time"

	"stackgrid/internal/geometry"
	"stackgrid/internal/schedule"
)

// DefaultAllowableMovement is how far the pointer may wander before a
// pending long press fails
const DefaultAllowableMovement = 10.0

// Phase is the recognizer's state
type Phase int

const (
	Idle Phase = iota
	Possible
	Began
	Changed
	Ended
	Cancelled
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Possible:
		return "possible"
	case Began:
		return "began"
	case Changed:
		return "changed"
	case Ended:
		return "ended"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Handler receives the continuous long-press gesture
type Handler interface {
	Began(p geometry.Point)
	Changed(p, velocity geometry.Point)
	Ended(p geometry.Point)
	Cancelled()
}

// LongPress recognises press-and-hold followed by a drag. A press becomes
// a gesture once the pointer has been held for Duration without moving
// farther than AllowableMovement; from then on every move is reported.
type LongPress struct {
	Duration          time.Duration
	AllowableMovement float64

	sched   schedule.Scheduler
	handler Handler
	enabled bool
	phase   Phase
	origin  geometry.Point
	tracker Tracker
	disarm  func()
}

// NewLongPress returns an enabled recognizer
func NewLongPress(sched schedule.Scheduler, d time.Duration, h Handler) *LongPress {
	return &LongPress{
		Duration:          d,
		AllowableMovement: DefaultAllowableMovement,
		sched:             sched,
		handler:           h,
		enabled:           true,
	}
}

// Phase returns the current recognizer phase
func (r *LongPress) Phase() Phase {
	return r.phase
}

// Active reports whether a recognised gesture is in progress
func (r *LongPress) Active() bool {
	return r.phase == Began || r.phase == Changed
}

func (r *LongPress) Enabled() bool {
	return r.enabled
}

// SetEnabled toggles the recognizer. Disabling cancels a gesture in
// progress and drops a pending press.
func (r *LongPress) SetEnabled(enabled bool) {
	if r.enabled == enabled {
		return
	}
	r.enabled = enabled
	if !enabled {
		r.Cancel()
	}
}

// Cancel aborts the current press or gesture. An active gesture reports
// Cancelled to the handler.
func (r *LongPress) Cancel() {
	r.stopTimer()
	switch {
	case r.Active():
		r.phase = Cancelled
		r.handler.Cancelled()
	case r.phase == Possible:
		r.phase = Failed
	}
}

// Handle feeds one pointer event into the recognizer
func (r *LongPress) Handle(ev Event) {
	if !r.enabled {
		return
	}

	switch ev.Kind {
	case Down:
		if r.Active() || r.phase == Possible {
			return
		}
		r.tracker.Reset()
		r.tracker.Add(ev.Position, ev.Time)
		r.origin = ev.Position
		r.phase = Possible
		r.disarm = r.sched.After(r.Duration, r.recognize)

	case Move:
		switch {
		case r.phase == Possible:
			r.tracker.Add(ev.Position, ev.Time)
			if geometry.Distance(r.origin, ev.Position) > r.AllowableMovement {
				r.stopTimer()
				r.phase = Failed
			}
		case r.Active():
			r.tracker.Add(ev.Position, ev.Time)
			r.phase = Changed
			r.handler.Changed(ev.Position, r.tracker.Velocity())
		}

	case Up:
		switch {
		case r.phase == Possible:
			r.stopTimer()
			r.phase = Failed
		case r.Active():
			r.tracker.Add(ev.Position, ev.Time)
			r.phase = Ended
			r.handler.Ended(ev.Position)
		}

	case Cancel:
		r.Cancel()
	}
}

func (r *LongPress) recognize() {
	r.disarm = nil
	if !r.enabled || r.phase != Possible {
		return
	}
	r.phase = Began
	r.handler.Began(r.tracker.Location())
}

func (r *LongPress) stopTimer() {
	if r.disarm != nil {
		r.disarm()
		r.disarm = nil
	}
}
