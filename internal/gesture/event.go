package gesture

import (
	"time"

	"stackgrid/internal/geometry"
)

// Kind identifies a raw pointer event
type Kind int

const (
	Down Kind = iota
	Move
	Up
	Cancel
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event is a single pointer sample in content coordinates
type Event struct {
	Kind     Kind
	Position geometry.Point
	Time     time.Time
}

type sample struct {
	at time.Time
	p  geometry.Point
}

// Tracker remembers the latest pointer location and derives a velocity
// from the last two samples
type Tracker struct {
	last sample
	prev sample
	n    int
}

// Reset forgets all samples
func (t *Tracker) Reset() {
	*t = Tracker{}
}

// Add records a sample
func (t *Tracker) Add(p geometry.Point, at time.Time) {
	t.prev = t.last
	t.last = sample{at: at, p: p}
	t.n++
}

// Location returns the most recent position
func (t *Tracker) Location() geometry.Point {
	return t.last.p
}

// Velocity returns points per second between the last two samples. It is
// zero until two samples with distinct timestamps exist.
func (t *Tracker) Velocity() geometry.Point {
	if t.n < 2 {
		return geometry.Point{}
	}
	dt := t.last.at.Sub(t.prev.at).Seconds()
	if dt <= 0 {
		return geometry.Point{}
	}
	d := t.last.p.Sub(t.prev.p)
	return geometry.Point{X: d.X / dt, Y: d.Y / dt}
}
