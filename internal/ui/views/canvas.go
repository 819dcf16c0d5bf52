package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type glyph struct {
	r     rune
	style *lipgloss.Style
}

// Canvas is a fixed-size grid of styled runes. Later draws overwrite
// earlier ones, which is how the floating card ends up above the grid.
type Canvas struct {
	width  int
	height int
	cells  []glyph
}

// NewCanvas returns a blank canvas
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{width: width, height: height, cells: make([]glyph, width*height)}
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Set writes one rune; positions outside the canvas are clipped
func (c *Canvas) Set(x, y int, r rune, style *lipgloss.Style) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = glyph{r: r, style: style}
}

// At returns the rune at x, y
func (c *Canvas) At(x, y int) rune {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return 0
	}
	return c.cells[y*c.width+x].r
}

// Text writes s starting at x, y, truncated to limit runes with an ellipsis
func (c *Canvas) Text(x, y int, s string, limit int, style *lipgloss.Style) {
	if limit <= 0 {
		return
	}
	runes := []rune(s)
	if len(runes) > limit {
		runes = append(runes[:limit-1], '…')
	}
	for i, r := range runes {
		c.Set(x+i, y, r, style)
	}
}

// Fill blanks a rectangle
func (c *Canvas) Fill(x, y, w, h int) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			c.Set(i, j, ' ', nil)
		}
	}
}

// Box draws a border around the rectangle. Boxes smaller than 2x2 are
// not drawn.
func (c *Canvas) Box(x, y, w, h int, border lipgloss.Border, style *lipgloss.Style) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1
	top, bot := first(border.Top), first(border.Bottom)
	left, rgt := first(border.Left), first(border.Right)
	for i := x + 1; i < right; i++ {
		c.Set(i, y, top, style)
		c.Set(i, bottom, bot, style)
	}
	for j := y + 1; j < bottom; j++ {
		c.Set(x, j, left, style)
		c.Set(right, j, rgt, style)
	}
	c.Set(x, y, first(border.TopLeft), style)
	c.Set(right, y, first(border.TopRight), style)
	c.Set(x, bottom, first(border.BottomLeft), style)
	c.Set(right, bottom, first(border.BottomRight), style)
}

// String renders the canvas row by row, styling runs of equal style
// together
func (c *Canvas) String() string {
	var b strings.Builder
	var run strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var current *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current == nil {
				b.WriteString(run.String())
			} else {
				b.WriteString(current.Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < c.width; x++ {
			g := c.cells[y*c.width+x]
			if g.style != current {
				flush()
				current = g.style
			}
			run.WriteRune(g.r)
		}
		flush()
	}
	return b.String()
}

func first(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}
