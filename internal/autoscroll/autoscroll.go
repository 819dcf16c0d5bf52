package autoscroll

import (
	"math"
	"time"

	"stackgrid/internal/geometry"
)

// Direction is the direction the viewport scrolls in
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "right"
	}
}

// Request asks for scrolling in a direction at Magnitude points per second
type Request struct {
	Direction Direction
	Magnitude float64
}

// Scroller is the scrollable viewport the driver moves
type Scroller interface {
	// Bounds is the visible viewport in content coordinates; its origin is
	// the current content offset
	Bounds() geometry.Rect
	ContentSize() geometry.Size
	ContentInset() geometry.Insets
	SetContentOffset(offset geometry.Point)
}

// Classify decides whether p sits inside an edge-trigger zone of the
// viewport. Only axes along which the content actually scrolls are
// considered. The magnitude grows linearly with how deep p is inside the
// trigger inset and saturates at maxSpeed on the viewport edge.
func Classify(p geometry.Point, bounds geometry.Rect, content geometry.Size, triggers geometry.Insets, maxSpeed float64) *Request {
	speed := func(v, inMin, inMax float64) float64 {
		return geometry.Clamp(geometry.MapValue(v, inMin, inMax, 0, maxSpeed), 0, maxSpeed)
	}

	if content.Height > bounds.Size.Height {
		if top := bounds.MinY() + triggers.Top; triggers.Top > 0 && p.Y < top {
			return &Request{Direction: Up, Magnitude: speed(p.Y, top, bounds.MinY())}
		}
		if bottom := bounds.MaxY() - triggers.Bottom; triggers.Bottom > 0 && p.Y > bottom {
			return &Request{Direction: Down, Magnitude: speed(p.Y, bottom, bounds.MaxY())}
		}
	}

	if content.Width > bounds.Size.Width {
		if left := bounds.MinX() + triggers.Left; triggers.Left > 0 && p.X < left {
			return &Request{Direction: Left, Magnitude: speed(p.X, left, bounds.MinX())}
		}
		if right := bounds.MaxX() - triggers.Right; triggers.Right > 0 && p.X > right {
			return &Request{Direction: Right, Magnitude: speed(p.X, right, bounds.MaxX())}
		}
	}

	return nil
}

// Step advances the scroller by one tick of req and returns the translation
// that was applied. The offset never leaves the content bounds, including
// the leading and trailing insets.
func Step(req Request, s Scroller, tick time.Duration) geometry.Point {
	bounds := s.Bounds()
	frame := bounds.Size
	offset := bounds.Origin
	content := s.ContentSize()
	inset := s.ContentInset()

	distance := math.Round(req.Magnitude * tick.Seconds())
	var translation geometry.Point

	switch req.Direction {
	case Up:
		distance = -distance
		if minY := -inset.Top; offset.Y+distance <= minY {
			distance = minY - offset.Y
		}
		translation.Y = distance
	case Down:
		maxY := math.Max(content.Height, frame.Height) - frame.Height + inset.Bottom
		if offset.Y+distance >= maxY {
			distance = maxY - offset.Y
		}
		translation.Y = distance
	case Left:
		distance = -distance
		if minX := -inset.Left; offset.X+distance <= minX {
			distance = minX - offset.X
		}
		translation.X = distance
	case Right:
		maxX := math.Max(content.Width, frame.Width) - frame.Width + inset.Right
		if offset.X+distance >= maxX {
			distance = maxX - offset.X
		}
		translation.X = distance
	}

	if translation != (geometry.Point{}) {
		s.SetContentOffset(offset.Add(translation))
	}
	return translation
}
