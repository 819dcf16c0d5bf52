package transition

import "time"

// State is the visual state of a cell or of the floating snapshot
type State int

const (
	Unknown State = iota
	Normal
	Drag
	StackBase // the item a drag is hovering over
	StackDrag // the floating snapshot while inside a stack zone
)

func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case Drag:
		return "drag"
	case StackBase:
		return "stack-base"
	case StackDrag:
		return "stack-drag"
	default:
		return "unknown"
	}
}

// View is the visual surface an animator mutates
type View interface {
	SetAlpha(alpha float64)
	SetScale(scale float64)
}

// StackIndicatorView is implemented by views that can draw a stack outline
// inset by a fraction of their bounds
type StackIndicatorView interface {
	View
	SetStackIndicator(inset float64)
}

// LabelView is implemented by views with a caption that can fade
type LabelView interface {
	View
	SetLabelAlpha(alpha float64)
}

// Context describes one transition handed to an Animator
type Context struct {
	View     View
	From     State
	To       State
	Duration time.Duration
}

// Animator produces the duration of a transition and applies its visual
// effect. Animate is expected to run inside the caller's animation block,
// so it should only assign final values.
type Animator interface {
	Duration(ctx Context) time.Duration
	Animate(ctx Context)
}

// Resolve returns a unless it is nil, in which case it returns the default
// animator
func Resolve(a Animator) Animator {
	if a == nil {
		return DefaultAnimator{}
	}
	return a
}

// Apply runs a transition of view from one state to another with the
// duration the animator asks for, and returns that duration
func Apply(a Animator, view View, from, to State) time.Duration {
	a = Resolve(a)
	ctx := Context{View: view, From: from, To: to}
	ctx.Duration = a.Duration(ctx)
	if view != nil {
		a.Animate(ctx)
	}
	return ctx.Duration
}
