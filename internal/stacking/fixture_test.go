package stacking

import (
	"fmt"
	"math"
	"strings"
	"time"

	"stackgrid/internal/geometry"
	"stackgrid/internal/transition"
)

const cellSide = 100.0

// cellView records the state the animator last put it in
type cellView struct {
	label string
	state transition.State
	alpha float64
	scale float64
}

func (v *cellView) SetAlpha(a float64) { v.alpha = a }
func (v *cellView) SetScale(s float64) { v.scale = s }

// stateAnimator marks cell views with the target state
type stateAnimator struct {
	d time.Duration
}

func (a stateAnimator) Duration(transition.Context) time.Duration { return a.d }

func (a stateAnimator) Animate(ctx transition.Context) {
	if v, ok := ctx.View.(*cellView); ok {
		v.state = ctx.To
	}
}

// grid is a fixed-column container that also owns the item sequence
type grid struct {
	stacks [][]string
	views  []*cellView
	cols   int

	offset geometry.Point
	frame  geometry.Size
	inset  geometry.Insets

	locked      map[int]bool
	canMoveInto func(source, target int) bool
	noRefresh   bool

	calls         []string
	batches       []Batch
	invalidations int
	feedback      int
}

func newGrid(cols int, labels ...string) *grid {
	g := &grid{cols: cols, locked: map[int]bool{}}
	for _, l := range labels {
		g.stacks = append(g.stacks, []string{l})
		g.views = append(g.views, &cellView{label: l, state: transition.Normal})
	}
	g.frame = g.ContentSize()
	return g
}

func (g *grid) labels() []string {
	out := make([]string, len(g.stacks))
	for i, s := range g.stacks {
		out[i] = strings.Join(s, "+")
	}
	return out
}

func (g *grid) Bounds() geometry.Rect {
	return geometry.Rect{Origin: g.offset, Size: g.frame}
}

func (g *grid) ContentSize() geometry.Size {
	rows := math.Ceil(float64(len(g.stacks)) / float64(g.cols))
	return geometry.Size{Width: float64(g.cols) * cellSide, Height: rows * cellSide}
}

func (g *grid) ContentInset() geometry.Insets     { return g.inset }
func (g *grid) SetContentOffset(p geometry.Point) { g.offset = p }

func (g *grid) IndexAt(p geometry.Point) (int, bool) {
	if p.X < 0 || p.Y < 0 {
		return 0, false
	}
	col, row := int(p.X/cellSide), int(p.Y/cellSide)
	if col >= g.cols {
		return 0, false
	}
	i := row*g.cols + col
	return i, i < len(g.stacks)
}

func (g *grid) FrameOf(i int) (geometry.Rect, bool) {
	if i < 0 || i >= len(g.stacks) {
		return geometry.Rect{}, false
	}
	return geometry.NewRect(float64(i%g.cols)*cellSide, float64(i/g.cols)*cellSide, cellSide, cellSide), true
}

func (g *grid) Cell(i int) (transition.View, bool) {
	if i < 0 || i >= len(g.views) {
		return nil, false
	}
	return g.views[i], true
}

func (g *grid) Capture(i int) (transition.View, geometry.Size) {
	c := *g.views[i]
	return &c, geometry.Size{Width: cellSide, Height: cellSide}
}

func (g *grid) PerformBatchUpdates(b Batch, completion func()) {
	g.batches = append(g.batches, b)
	if completion != nil {
		completion()
	}
}

func (g *grid) InvalidateLayout() { g.invalidations++ }
func (g *grid) Feedback()         { g.feedback++ }

func (g *grid) CanSelect(i int) bool { return !g.locked[i] }

func (g *grid) CanMoveInto(source, target int) bool {
	return g.canMoveInto == nil || g.canMoveInto(source, target)
}

func (g *grid) MoveItem(source, destination int) {
	g.calls = append(g.calls, fmt.Sprintf("move %d %d", source, destination))
	s, v := g.stacks[source], g.views[source]
	g.stacks = append(g.stacks[:source], g.stacks[source+1:]...)
	g.views = append(g.views[:source], g.views[source+1:]...)
	g.stacks = append(g.stacks[:destination], append([][]string{s}, g.stacks[destination:]...)...)
	g.views = append(g.views[:destination], append([]*cellView{v}, g.views[destination:]...)...)
}

func (g *grid) MergeItem(source, target int) {
	g.calls = append(g.calls, fmt.Sprintf("merge %d %d", source, target))
	merged := append(append([]string{}, g.stacks[source]...), g.stacks[target]...)
	g.stacks[target] = merged
	g.views[target].label = strings.Join(merged, "+")
	g.stacks = append(g.stacks[:source], g.stacks[source+1:]...)
	g.views = append(g.views[:source], g.views[source+1:]...)
}

func (g *grid) ShouldRefreshMergedTarget(int) bool { return !g.noRefresh }

func (g *grid) FinalizeMove(source, destination int) {
	g.calls = append(g.calls, fmt.Sprintf("finalize %d %d", source, destination))
}

// recorder is a Delegate that logs every notification
type recorder struct {
	events   []string
	animator transition.Animator
}

func (r *recorder) WillBeginDragging(i int) { r.add("will-begin", i) }
func (r *recorder) DidBeginDragging(i int)  { r.add("did-begin", i) }
func (r *recorder) WillEndDragging(i int)   { r.add("will-end", i) }
func (r *recorder) DidEndDragging(i int)    { r.add("did-end", i) }

func (r *recorder) DidMoveOutsideTriggerRadius(i int) { r.add("outside", i) }

func (r *recorder) AnimatorFor(int) transition.Animator { return r.animator }

func (r *recorder) add(name string, i int) {
	r.events = append(r.events, fmt.Sprintf("%s %d", name, i))
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, e := range r.events {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

func pt(x, y float64) geometry.Point {
	return geometry.Point{X: x, Y: y}
}
