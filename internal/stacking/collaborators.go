package stacking

import (
	"stackgrid/internal/autoscroll"
	"stackgrid/internal/geometry"
	"stackgrid/internal/transition"
)

// DataSource owns the item sequence. The layout only ever asks it to
// mutate; it never touches items itself. Embed DefaultDataSource to get
// the stated defaults for anything not implemented.
type DataSource interface {
	// CanSelect reports whether the item at index may be picked up
	CanSelect(index int) bool
	// CanMoveInto reports whether the item at source may be merged into
	// the item at target
	CanMoveInto(source, target int) bool
	// MoveItem moves the item at source to destination
	MoveItem(source, destination int)
	// MergeItem merges the item at source into the stack at target and
	// removes the source slot
	MergeItem(source, target int)
	// ShouldRefreshMergedTarget reports whether the target cell needs a
	// reload after a merge
	ShouldRefreshMergedTarget(target int) bool
	// FinalizeMove runs once a reorder has settled with a net change
	FinalizeMove(source, destination int)
}

// DefaultDataSource allows everything and ignores mutations
type DefaultDataSource struct{}

func (DefaultDataSource) CanSelect(int) bool                 { return true }
func (DefaultDataSource) CanMoveInto(int, int) bool          { return true }
func (DefaultDataSource) MoveItem(int, int)                  {}
func (DefaultDataSource) MergeItem(int, int)                 {}
func (DefaultDataSource) ShouldRefreshMergedTarget(int) bool { return true }
func (DefaultDataSource) FinalizeMove(int, int)              {}

// Delegate observes the drag lifecycle
type Delegate interface {
	WillBeginDragging(index int)
	DidBeginDragging(index int)
	// DidMoveOutsideTriggerRadius fires at most once per drag, with the
	// current destination index
	DidMoveOutsideTriggerRadius(index int)
	WillEndDragging(index int)
	DidEndDragging(index int)
	// AnimatorFor returns the animator for the item at index; nil selects
	// the default animator
	AnimatorFor(index int) transition.Animator
}

// NopDelegate ignores every notification and uses the default animator
type NopDelegate struct{}

func (NopDelegate) WillBeginDragging(int)               {}
func (NopDelegate) DidBeginDragging(int)                {}
func (NopDelegate) DidMoveOutsideTriggerRadius(int)     {}
func (NopDelegate) WillEndDragging(int)                 {}
func (NopDelegate) DidEndDragging(int)                  {}
func (NopDelegate) AnimatorFor(int) transition.Animator { return nil }

// Batch is a set of slot changes applied together. Deleted and Reloaded
// refer to indices before the update, Inserted to indices after it.
type Batch struct {
	Deleted  []int
	Inserted []int
	Reloaded []int
}

// Container is the view hosting the laid-out cells. All positions are in
// content coordinates.
type Container interface {
	autoscroll.Scroller

	// IndexAt returns the index of the cell under p
	IndexAt(p geometry.Point) (int, bool)
	// FrameOf returns the laid-out frame of the cell at index
	FrameOf(index int) (geometry.Rect, bool)
	// Cell returns the live cell view at index, if it exists
	Cell(index int) (transition.View, bool)
	// Capture returns a detached copy of the cell at index in its current
	// appearance, plus its size
	Capture(index int) (transition.View, geometry.Size)
	// PerformBatchUpdates applies b and calls completion, if not nil, once
	// the update has finished
	PerformBatchUpdates(b Batch, completion func())
	// InvalidateLayout asks for the layout to be queried again
	InvalidateLayout()
	// Feedback triggers a haptic or equivalent acknowledgement
	Feedback()
}
