package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Button      lipgloss.Style
	ButtonOn    lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
	Scroll      lipgloss.Style
	Cell        lipgloss.Style
	CellFaded   lipgloss.Style
	CellLifted  lipgloss.Style
	CellTarget  lipgloss.Style
	Badge       lipgloss.Style
	Label       lipgloss.Style
	Detail      lipgloss.Style
	StatusError lipgloss.Style
	StatusDrag  lipgloss.Style
	StatusStack lipgloss.Style
	StatusIdle  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 1),
		ButtonOn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("214")).
			Padding(0, 1),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:        lipgloss.NewStyle().Faint(true),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Cell:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		CellFaded:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Faint(true),
		CellLifted:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		CellTarget:  lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Badge:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Detail:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusDrag:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusStack: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		StatusIdle:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
