package snapshot

import (
	"time"

	"stackgrid/internal/geometry"
	"stackgrid/internal/transition"
)

// Slot identifies one of the captured representations
type Slot int

const (
	SlotNormal Slot = iota
	SlotDrag
	SlotStack
	slotCount
)

// slot holds one captured representation and its current layout values
type slot struct {
	view  transition.View
	size  geometry.Size // size at capture time
	shown geometry.Size // current laid-out size
	alpha float64
}

// SlotFrame is the rendered geometry of one slot
type SlotFrame struct {
	View  transition.View
	Size  geometry.Size
	Alpha float64
}

// Frame is everything needed to draw the snapshot at one instant
type Frame struct {
	Center geometry.Point
	Slots  [slotCount]SlotFrame
}

// Active returns the most opaque slot, which is the one to draw when a
// renderer cannot blend
func (f Frame) Active() SlotFrame {
	best := f.Slots[SlotNormal]
	for _, s := range f.Slots[1:] {
		if s.Alpha > best.Alpha {
			best = s
		}
	}
	return best
}

// tween interpolates between two frames
type tween struct {
	from     Frame
	start    time.Time
	duration time.Duration
}

// Snapshot is the floating proxy that follows the pointer during a drag.
// All slots share the same centre; only the active slot is visible.
type Snapshot struct {
	slots  [slotCount]*slot
	center geometry.Point
	state  transition.State
	tween  *tween
}

// New creates an empty snapshot centred at center
func New(center geometry.Point) *Snapshot {
	return &Snapshot{center: center, state: transition.Unknown}
}

// Set replaces the representation held in a slot
func (s *Snapshot) Set(which Slot, view transition.View, size geometry.Size) {
	if which < 0 || which >= slotCount {
		return
	}
	s.slots[which] = &slot{view: view, size: size, shown: size}
}

// State returns the state of the last show call
func (s *Snapshot) State() transition.State {
	return s.state
}

// Center returns the target centre, ignoring any running animation
func (s *Snapshot) Center() geometry.Point {
	return s.center
}

// SetCenter moves the snapshot
func (s *Snapshot) SetCenter(p geometry.Point) {
	s.center = p
}

func (s *Snapshot) ShowNormal() {
	if s.show(SlotNormal) {
		s.state = transition.Normal
	}
}

func (s *Snapshot) ShowDrag() {
	if s.show(SlotDrag) {
		s.state = transition.Drag
	}
}

func (s *Snapshot) ShowStack() {
	if s.show(SlotStack) {
		s.state = transition.StackDrag
	}
}

// ShowVanished shrinks every slot to nothing ahead of removal
func (s *Snapshot) ShowVanished() {
	for _, sl := range s.slots {
		if sl != nil {
			sl.shown = geometry.Size{}
		}
	}
}

// Refresh re-applies the show call matching the current state, used after
// slots are re-captured
func (s *Snapshot) Refresh() {
	switch s.state {
	case transition.Drag:
		s.ShowDrag()
	case transition.StackDrag:
		s.ShowStack()
	default:
		s.ShowNormal()
	}
}

// show makes one slot visible and sizes every slot to match it so the
// container geometry stays consistent
func (s *Snapshot) show(which Slot) bool {
	target := s.slots[which]
	if target == nil {
		return false
	}
	for _, sl := range s.slots {
		if sl == nil {
			continue
		}
		if sl == target {
			sl.alpha = 1
		} else {
			sl.alpha = 0
		}
		sl.shown = target.size
	}
	return true
}

// Animate applies changes and tweens from the frame visible at now to the
// resulting frame over d. A running animation is continued from its
// current position.
func (s *Snapshot) Animate(d time.Duration, now time.Time, changes func()) {
	from := s.Frame(now)
	changes()
	if d <= 0 {
		s.tween = nil
		return
	}
	s.tween = &tween{from: from, start: now, duration: d}
}

// Animating reports whether a tween is still running at now
func (s *Snapshot) Animating(now time.Time) bool {
	return s.tween != nil && now.Sub(s.tween.start) < s.tween.duration
}

// Frame returns the snapshot geometry at now
func (s *Snapshot) Frame(now time.Time) Frame {
	target := s.target()
	if s.tween == nil {
		return target
	}
	elapsed := now.Sub(s.tween.start)
	if elapsed >= s.tween.duration {
		s.tween = nil
		return target
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return interpolate(s.tween.from, target, float64(elapsed)/float64(s.tween.duration))
}

func (s *Snapshot) target() Frame {
	f := Frame{Center: s.center}
	for i, sl := range s.slots {
		if sl == nil {
			continue
		}
		f.Slots[i] = SlotFrame{View: sl.view, Size: sl.shown, Alpha: sl.alpha}
	}
	return f
}

func interpolate(from, to Frame, t float64) Frame {
	out := Frame{
		Center: geometry.Point{
			X: lerp(from.Center.X, to.Center.X, t),
			Y: lerp(from.Center.Y, to.Center.Y, t),
		},
	}
	for i := range out.Slots {
		out.Slots[i] = SlotFrame{
			View: to.Slots[i].View,
			Size: geometry.Size{
				Width:  lerp(from.Slots[i].Size.Width, to.Slots[i].Size.Width, t),
				Height: lerp(from.Slots[i].Size.Height, to.Slots[i].Size.Height, t),
			},
			Alpha: lerp(from.Slots[i].Alpha, to.Slots[i].Alpha, t),
		}
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
