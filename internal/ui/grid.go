package ui

import (
	"math"
	"slices"

	"stackgrid/internal/board"
	"stackgrid/internal/config"
	"stackgrid/internal/domain"
	"stackgrid/internal/geometry"
	"stackgrid/internal/stacking"
	"stackgrid/internal/transition"
)

// The engine works in points. One terminal column is 8 points wide and
// one row is 16 points tall, roughly the aspect of a terminal glyph.
const (
	PointsPerColumn = 8.0
	PointsPerRow    = 16.0
)

// CellView is the animatable appearance of one card
type CellView struct {
	Alpha      float64
	Scale      float64
	Indicator  float64
	LabelAlpha float64

	// Stack is only set on captured copies, which outlive the board slot
	// they were taken from
	Stack domain.Stack
}

var (
	_ transition.StackIndicatorView = (*CellView)(nil)
	_ transition.LabelView          = (*CellView)(nil)
)

func newCellView() *CellView {
	return &CellView{Alpha: 1, Scale: 1, LabelAlpha: 1}
}

func (v *CellView) SetAlpha(a float64)          { v.Alpha = a }
func (v *CellView) SetScale(s float64)          { v.Scale = s }
func (v *CellView) SetStackIndicator(i float64) { v.Indicator = i }
func (v *CellView) SetLabelAlpha(a float64)     { v.LabelAlpha = a }

// Grid lays the board out in fixed columns and is the drag engine's
// container. The viewport is measured in points; see PointsPerColumn.
type Grid struct {
	board    *board.Board
	settings config.GridSettings

	viewport geometry.Size
	offset   geometry.Point
	views    []*CellView

	invalidations int
	feedback      int
}

var _ stacking.Container = (*Grid)(nil)

// NewGrid creates a grid over b
func NewGrid(b *board.Board, settings config.GridSettings) *Grid {
	g := &Grid{board: b, settings: settings}
	g.Sync()
	return g
}

// Resize sets the viewport to cols by rows terminal cells
func (g *Grid) Resize(cols, rows int) {
	g.viewport = geometry.Size{
		Width:  float64(max(cols, 0)) * PointsPerColumn,
		Height: float64(max(rows, 0)) * PointsPerRow,
	}
	g.SetContentOffset(g.offset)
}

// Sync makes the cell views match the board length, resetting them all.
// Call it after the board changes outside a drag.
func (g *Grid) Sync() {
	g.views = make([]*CellView, g.board.Len())
	for i := range g.views {
		g.views[i] = newCellView()
	}
	g.SetContentOffset(g.offset)
}

// View returns the live view at index without bounds surprises
func (g *Grid) View(index int) (*CellView, bool) {
	if index < 0 || index >= len(g.views) {
		return nil, false
	}
	return g.views[index], true
}

// ScrollBy moves the viewport by rows terminal rows
func (g *Grid) ScrollBy(rows int) {
	g.SetContentOffset(g.offset.Add(geometry.Point{Y: float64(rows) * PointsPerRow}))
}

// Offset returns the content offset in points
func (g *Grid) Offset() geometry.Point {
	return g.offset
}

// TopRow is the first content row visible in the viewport
func (g *Grid) TopRow() int {
	return int(math.Floor(g.offset.Y / PointsPerRow))
}

// LeftColumn is the first content column visible in the viewport
func (g *Grid) LeftColumn() int {
	return int(math.Floor(g.offset.X / PointsPerColumn))
}

// CellRect returns the terminal rectangle of the cell at index in content
// cells
func (g *Grid) CellRect(index int) (x, y, w, h int) {
	s := g.settings
	col, row := index%s.Columns, index/s.Columns
	return s.Gap + col*(s.CellWidth+s.Gap), s.Gap + row*(s.CellHeight+s.Gap), s.CellWidth, s.CellHeight
}

// ToPoint converts a terminal position relative to the viewport into
// content points at the centre of that terminal cell
func (g *Grid) ToPoint(col, row int) geometry.Point {
	return geometry.Point{
		X: (float64(col+g.LeftColumn()) + 0.5) * PointsPerColumn,
		Y: (float64(row+g.TopRow()) + 0.5) * PointsPerRow,
	}
}

// ToCell converts content points into a terminal position relative to the
// viewport
func (g *Grid) ToCell(p geometry.Point) (col, row int) {
	return int(math.Floor(p.X/PointsPerColumn)) - g.LeftColumn(), int(math.Floor(p.Y/PointsPerRow)) - g.TopRow()
}

// Feedbacks counts the acknowledgements requested so far
func (g *Grid) Feedbacks() int {
	return g.feedback
}

// Invalidations counts the layout invalidations requested so far
func (g *Grid) Invalidations() int {
	return g.invalidations
}

func (g *Grid) Bounds() geometry.Rect {
	return geometry.Rect{Origin: g.offset, Size: g.viewport}
}

// Rows is the content height in terminal rows
func (g *Grid) Rows() int {
	s := g.settings
	cards := (len(g.views) + s.Columns - 1) / s.Columns
	return s.Gap + cards*(s.CellHeight+s.Gap)
}

func (g *Grid) ContentSize() geometry.Size {
	s := g.settings
	return geometry.Size{
		Width:  float64(s.Gap+s.Columns*(s.CellWidth+s.Gap)) * PointsPerColumn,
		Height: float64(g.Rows()) * PointsPerRow,
	}
}

func (g *Grid) ContentInset() geometry.Insets {
	return geometry.Insets{}
}

// SetContentOffset clamps to the scrollable range
func (g *Grid) SetContentOffset(offset geometry.Point) {
	content := g.ContentSize()
	g.offset = geometry.Point{
		X: geometry.Clamp(offset.X, 0, math.Max(0, content.Width-g.viewport.Width)),
		Y: geometry.Clamp(offset.Y, 0, math.Max(0, content.Height-g.viewport.Height)),
	}
}

func (g *Grid) IndexAt(p geometry.Point) (int, bool) {
	s := g.settings
	pitchX := float64(s.CellWidth+s.Gap) * PointsPerColumn
	pitchY := float64(s.CellHeight+s.Gap) * PointsPerRow
	gapX := float64(s.Gap) * PointsPerColumn
	gapY := float64(s.Gap) * PointsPerRow
	if p.X < gapX || p.Y < gapY {
		return 0, false
	}
	col := int((p.X - gapX) / pitchX)
	row := int((p.Y - gapY) / pitchY)
	if col >= s.Columns {
		return 0, false
	}
	index := row*s.Columns + col
	frame, ok := g.FrameOf(index)
	if !ok || !frame.Contains(p) {
		return 0, false
	}
	return index, true
}

func (g *Grid) FrameOf(index int) (geometry.Rect, bool) {
	if index < 0 || index >= len(g.views) {
		return geometry.Rect{}, false
	}
	x, y, w, h := g.CellRect(index)
	return geometry.NewRect(
		float64(x)*PointsPerColumn, float64(y)*PointsPerRow,
		float64(w)*PointsPerColumn, float64(h)*PointsPerRow,
	), true
}

func (g *Grid) Cell(index int) (transition.View, bool) {
	v, ok := g.View(index)
	if !ok {
		return nil, false
	}
	return v, true
}

func (g *Grid) Capture(index int) (transition.View, geometry.Size) {
	v, ok := g.View(index)
	if !ok {
		return nil, geometry.Size{}
	}
	captured := *v
	captured.Stack, _ = g.board.At(index)
	frame, _ := g.FrameOf(index)
	return &captured, frame.Size
}

// PerformBatchUpdates applies deletions and reloads against the old
// indices and insertions against the new ones. Inserted and reloaded
// slots get fresh views. Updates are not animated, so completion runs
// before returning.
func (g *Grid) PerformBatchUpdates(b stacking.Batch, completion func()) {
	deleted := slices.Clone(b.Deleted)
	slices.Sort(deleted)
	deleted = slices.Compact(deleted)

	reloaded := make([]int, 0, len(b.Reloaded))
	for _, r := range b.Reloaded {
		if _, gone := slices.BinarySearch(deleted, r); gone {
			continue
		}
		shift := 0
		for _, d := range deleted {
			if d < r {
				shift++
			}
		}
		reloaded = append(reloaded, r-shift)
	}

	for i := len(deleted) - 1; i >= 0; i-- {
		if d := deleted[i]; d >= 0 && d < len(g.views) {
			g.views = slices.Delete(g.views, d, d+1)
		}
	}

	inserted := slices.Clone(b.Inserted)
	slices.Sort(inserted)
	for _, ins := range inserted {
		for j := range reloaded {
			if ins <= reloaded[j] {
				reloaded[j]++
			}
		}
		ins = min(max(ins, 0), len(g.views))
		g.views = slices.Insert(g.views, ins, newCellView())
	}

	for _, r := range reloaded {
		if r >= 0 && r < len(g.views) {
			g.views[r] = newCellView()
		}
	}

	// the board is the source of truth for the count
	for len(g.views) < g.board.Len() {
		g.views = append(g.views, newCellView())
	}
	g.views = g.views[:g.board.Len()]

	g.SetContentOffset(g.offset)
	g.invalidations++
	if completion != nil {
		completion()
	}
}

func (g *Grid) InvalidateLayout() {
	g.invalidations++
}

func (g *Grid) Feedback() {
	g.feedback++
}
