package views

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Card is one stack as it appears on screen. Coordinates are terminal
// cells relative to the board's top-left corner and may lie partly
// outside it.
type Card struct {
	X, Y, W, H int
	Title      string
	Detail     string
	Count      int

	Alpha      float64
	Scale      float64
	Indicator  float64
	LabelAlpha float64
}

// BoardView contains all the state needed for rendering the board
type BoardView struct {
	Width    int
	Height   int
	Cards    []Card
	Floating *Card
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// RenderBoard draws every card and then the floating card on top
func (r *Renderer) RenderBoard(v BoardView) string {
	c := NewCanvas(v.Width, v.Height)
	for _, card := range v.Cards {
		r.drawCard(c, card, false)
	}
	if v.Floating != nil {
		r.drawCard(c, *v.Floating, true)
	}
	return c.String()
}

func (r *Renderer) drawCard(c *Canvas, card Card, lifted bool) {
	if card.Alpha < 0.05 || card.W <= 0 || card.H <= 0 {
		return
	}
	scale := card.Scale
	if scale <= 0 {
		scale = 1
	}
	w := max(3, int(math.Round(float64(card.W)*scale)))
	h := max(2, int(math.Round(float64(card.H)*scale)))
	x := int(math.Round(float64(card.X) + float64(card.W-w)/2))
	y := int(math.Round(float64(card.Y) + float64(card.H-h)/2))

	style := &r.styles.Cell
	switch {
	case lifted:
		style = &r.styles.CellLifted
	case card.Indicator > 0:
		style = &r.styles.CellTarget
	case card.Alpha < 0.75:
		style = &r.styles.CellFaded
	}

	border := lipgloss.RoundedBorder()
	switch {
	case card.Indicator > 0:
		border = lipgloss.DoubleBorder()
	case scale > 1.01:
		border = lipgloss.ThickBorder()
	}

	c.Fill(x, y, w, h)
	c.Box(x, y, w, h, border, style)

	if card.Indicator > 0 {
		ix := max(1, int(math.Round(float64(w)*card.Indicator)))
		iy := max(1, int(math.Round(float64(h)*card.Indicator)))
		c.Box(x+ix, y+iy, w-2*ix, h-2*iy, lipgloss.NormalBorder(), &r.styles.Badge)
	}

	if card.LabelAlpha >= 0.5 && h >= 3 {
		label, detail := &r.styles.Label, &r.styles.Detail
		if style == &r.styles.CellFaded {
			label, detail = style, style
		}
		c.Text(x+2, y+1, card.Title, w-4, label)
		if h >= 4 && card.Detail != "" {
			c.Text(x+2, y+2, card.Detail, w-4, detail)
		}
	}

	if card.Count > 1 {
		badge := fmt.Sprintf(" ×%d ", card.Count)
		n := len([]rune(badge))
		if n <= w-2 {
			c.Text(x+w-1-n, y, badge, n, &r.styles.Badge)
		}
	}
}
