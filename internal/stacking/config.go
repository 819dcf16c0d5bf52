package stacking

import (
	"time"

	"stackgrid/internal/autoscroll"
	"stackgrid/internal/geometry"
)

// Config holds the tunables of a Layout
type Config struct {
	// TriggerInsets are the edge zones of the viewport that start
	// auto-scrolling
	TriggerInsets geometry.Insets
	// MaxScrollSpeed is the auto-scroll speed in points per second at the
	// very edge of the viewport
	MaxScrollSpeed float64
	// StackZone is the fraction of a cell's bounds, centred, that signals
	// stacking intent
	StackZone float64
	// LongPressDuration is how long a press must be held to pick up an item
	LongPressDuration time.Duration
	// MaxTriggerVelocity suspends hover resolution while the pointer moves
	// faster than this on either axis
	MaxTriggerVelocity float64
	// TriggerRadius is the distance from the gesture origin after which the
	// delegate hears DidMoveOutsideTriggerRadius
	TriggerRadius float64
	// ScrollTick is the auto-scroll timer interval
	ScrollTick time.Duration
}

// DefaultConfig returns the stock configuration
func DefaultConfig() Config {
	return Config{
		TriggerInsets:      geometry.UniformInsets(64),
		MaxScrollSpeed:     800,
		StackZone:          0.6,
		LongPressDuration:  150 * time.Millisecond,
		MaxTriggerVelocity: 200,
		TriggerRadius:      12,
		ScrollTick:         autoscroll.DefaultTick,
	}
}
