package transition

import "time"

// DefaultDuration is the transition length used by the built-in animators
const DefaultDuration = 150 * time.Millisecond

// DefaultAnimator distinguishes only between dragging and everything else
type DefaultAnimator struct{}

func (DefaultAnimator) Duration(Context) time.Duration {
	return DefaultDuration
}

func (DefaultAnimator) Animate(ctx Context) {
	switch ctx.To {
	case Drag:
		ctx.View.SetAlpha(0.7)
		ctx.View.SetScale(1.1)
	default:
		ctx.View.SetAlpha(1.0)
		ctx.View.SetScale(1.0)
	}
}

// StackAnimator renders all four states. Views that implement
// StackIndicatorView or LabelView get the extra effects; plain views get
// alpha and scale only.
type StackAnimator struct {
	// IndicatorInset is the stack outline inset for StackBase, as a
	// fraction of the view bounds
	IndicatorInset float64
}

// NewStackAnimator returns a StackAnimator with a 12% indicator inset
func NewStackAnimator() *StackAnimator {
	return &StackAnimator{IndicatorInset: 0.12}
}

func (a *StackAnimator) Duration(Context) time.Duration {
	return DefaultDuration
}

func (a *StackAnimator) Animate(ctx Context) {
	alpha, scale, indicator, label := 1.0, 1.0, 0.0, 1.0

	switch ctx.To {
	case Drag:
		alpha, scale = 0.7, 1.1
	case StackBase:
		indicator = a.IndicatorInset
		label = 0
	case StackDrag:
		alpha, scale = 0.5, 0.8
		label = 0
	}

	ctx.View.SetAlpha(alpha)
	ctx.View.SetScale(scale)
	if v, ok := ctx.View.(StackIndicatorView); ok {
		v.SetStackIndicator(indicator)
	}
	if v, ok := ctx.View.(LabelView); ok {
		v.SetLabelAlpha(label)
	}
}
