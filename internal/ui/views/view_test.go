package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainLines(s string) []string {
	return strings.Split(s, "\n")
}

func TestCanvasClipsAndTruncates(t *testing.T) {
	c := NewCanvas(6, 2)
	c.Set(-1, 0, 'x', nil)
	c.Set(6, 1, 'x', nil)
	c.Text(1, 0, "abcdefgh", 4, nil)

	assert.Equal(t, 'a', c.At(1, 0))
	assert.Equal(t, '…', c.At(4, 0))
	assert.Equal(t, ' ', c.At(5, 0))
	assert.Equal(t, rune(0), c.At(9, 9))
}

func TestCanvasBox(t *testing.T) {
	c := NewCanvas(5, 3)
	c.Box(0, 0, 5, 3, lipgloss.NormalBorder(), nil)

	assert.Equal(t, []string{"┌───┐", "│   │", "└───┘"}, plainLines(c.String()))

	small := NewCanvas(3, 3)
	small.Box(0, 0, 1, 3, lipgloss.NormalBorder(), nil)
	assert.Equal(t, ' ', small.At(0, 0), "degenerate boxes are skipped")
}

func TestRenderBoardDrawsCards(t *testing.T) {
	r := NewRenderer()
	out := r.RenderBoard(BoardView{
		Width:  40,
		Height: 6,
		Cards: []Card{
			{X: 1, Y: 0, W: 16, H: 5, Title: "Aurora", Count: 1, Alpha: 1, Scale: 1, LabelAlpha: 1},
			{X: 18, Y: 0, W: 16, H: 5, Title: "Basalt", Detail: "Basalt, Cinder", Count: 2, Alpha: 1, Scale: 1, LabelAlpha: 1},
		},
	})

	lines := plainLines(out)
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "×2")
	assert.Contains(t, lines[1], "Aurora")
	assert.Contains(t, lines[1], "Basalt")
	assert.Contains(t, lines[2], "Basalt, Cin…", "details are truncated to the card")
}

func TestRenderBoardHidesLabelForStackBase(t *testing.T) {
	r := NewRenderer()
	out := r.RenderBoard(BoardView{
		Width:  20,
		Height: 5,
		Cards:  []Card{{X: 0, Y: 0, W: 16, H: 5, Title: "Aurora", Alpha: 1, Scale: 1, Indicator: 0.12}},
	})

	assert.NotContains(t, out, "Aurora")
	assert.Contains(t, out, "╔", "stack targets get a double border")
}

func TestRenderBoardFloatingCardCoversGrid(t *testing.T) {
	r := NewRenderer()
	out := r.RenderBoard(BoardView{
		Width:    20,
		Height:   5,
		Cards:    []Card{{X: 0, Y: 0, W: 16, H: 5, Title: "Below", Alpha: 1, Scale: 1, LabelAlpha: 1}},
		Floating: &Card{X: 0, Y: 0, W: 16, H: 5, Title: "Above", Alpha: 1, Scale: 1, LabelAlpha: 1},
	})

	assert.Contains(t, out, "Above")
	assert.NotContains(t, out, "Below")
}

func TestRenderBoardSkipsInvisibleCards(t *testing.T) {
	r := NewRenderer()
	out := r.RenderBoard(BoardView{
		Width:  20,
		Height: 5,
		Cards: []Card{
			{X: 0, Y: 0, W: 16, H: 5, Title: "Ghost", Alpha: 0, Scale: 1, LabelAlpha: 1},
			{X: 0, Y: 0, W: 0, H: 0, Title: "Vanished", Alpha: 1, Scale: 1, LabelAlpha: 1},
		},
	})

	assert.Equal(t, strings.Repeat(" ", 20), plainLines(out)[0])
}

func TestRenderBoardScalesAroundCentre(t *testing.T) {
	r := NewRenderer()
	out := r.RenderBoard(BoardView{
		Width:  20,
		Height: 7,
		Cards:  []Card{{X: 2, Y: 1, W: 10, H: 5, Title: "Big", Alpha: 1, Scale: 1.2, LabelAlpha: 1}},
	})

	lines := plainLines(out)
	// 12 wide and 6 tall, centred on the original 10x5 box
	assert.Equal(t, "┏", string([]rune(lines[1])[1]))
	assert.Equal(t, "┓", string([]rune(lines[1])[12]))
	assert.Equal(t, "┗", string([]rune(lines[6])[1]))
}
