package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	title string
	err   error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// renderHelpContent renders the help information
func (r *HelpRenderer) renderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	line := func(k, desc string) {
		help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(k), descStyle.Render(desc)))
	}

	help.WriteString(titleStyle.Render("StackGrid Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Dragging"))
	help.WriteString("\n")
	line("press + hold", "Pick up the card under the pointer")
	line("move", "Reorder; cards make room as you pass them")
	line("hover centre", "Slow down over a card's centre to stack onto it")
	line("release", "Drop: merge into the highlighted card or settle in place")
	line("board edge", "Hold near the top or bottom edge to scroll")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Keys"))
	help.WriteString("\n")
	line("Esc", "Cancel the current drag")
	line("r", "Reset the board to the default items")
	line("a", "Toggle between the default and stack animators")
	line("↑/↓, j/k", "Scroll the board")
	line("PgUp/PgDn", "Page up/down")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	line("J", "Show the event journal")
	line("?", "Show this help")
	help.WriteString(fmt.Sprintf("  %s %s", keyStyle.Render("q"), descStyle.Render("Quit")))

	return help.String()
}

// PagerOps shows long text in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// ShowInPager hands the terminal to ov until the user quits it
func (h *PagerOps) ShowInPager(content string) error {
	if h == nil || h.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// pagerCmd runs the pager off the event loop and reports back with a
// pagerMsg
func (h *PagerOps) pagerCmd(title, content string) tea.Cmd {
	return func() tea.Msg {
		return pagerMsg{title: title, err: h.ShowInPager(content)}
	}
}
