package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Dim       lipgloss.Style
	Help      lipgloss.Style
	Status    lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Marker    lipgloss.Style
	Tool      lipgloss.Style
	Filter    lipgloss.Style
	SearchBox lipgloss.Style
	Main      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Header: lipgloss.NewStyle().Bold(true),
		Dim:    lipgloss.NewStyle().Faint(true),
		Help:   lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true),
		Marker:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Tool:     lipgloss.NewStyle().Faint(true),
		Filter:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		SearchBox: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Main: lipgloss.NewStyle().Padding(1, 2),
	}
}
