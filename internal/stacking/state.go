package stacking

import (
	"github.com/google/uuid"

	"stackgrid/internal/geometry"
)

// Phase names the state of a Layout
type Phase int

const (
	Idle Phase = iota
	Dragging
	HoveringStack
	Settling
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case HoveringStack:
		return "hovering-stack"
	case Settling:
		return "settling"
	default:
		return "unknown"
	}
}

// Session is a read-only view of the drag in progress
type Session struct {
	ID                 uuid.UUID
	Source             int
	Destination        int
	StackTarget        int // -1 when not hovering a stack
	Origin             geometry.Point
	Pointer            geometry.Point
	MovedOutsideRadius bool
}

// session is the mutable gesture session owned by the layout
type session struct {
	id          uuid.UUID
	source      int
	destination int
	pointer     geometry.Point
	origin      *geometry.Point
	moved       bool
}

// state is one of idleState, draggingState, hoveringState or settlingState
type state interface {
	phase() Phase
}

type idleState struct{}

type draggingState struct {
	s *session
}

type hoveringState struct {
	s      *session
	target int
}

type settlingState struct {
	s *session
}

func (idleState) phase() Phase     { return Idle }
func (draggingState) phase() Phase { return Dragging }
func (hoveringState) phase() Phase { return HoveringStack }
func (settlingState) phase() Phase { return Settling }

// live returns the session of a drag that still follows the pointer
func live(st state) (*session, bool) {
	switch st := st.(type) {
	case draggingState:
		return st.s, true
	case hoveringState:
		return st.s, true
	}
	return nil, false
}

// stackTarget returns the hovered stack index, or -1
func stackTarget(st state) int {
	if h, ok := st.(hoveringState); ok {
		return h.target
	}
	return -1
}
