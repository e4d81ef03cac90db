package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Button        lipgloss.Style
	Kbd           lipgloss.Style
	Feature       lipgloss.Style
	Dim           lipgloss.Style
	Box           lipgloss.Style
	Separator     lipgloss.Style
	Prompt        lipgloss.Style
	SectionHeader lipgloss.Style
	Pending       lipgloss.Style
	Item          lipgloss.Style
	ItemActive    lipgloss.Style
	Highlight     lipgloss.Style
	Price         lipgloss.Style
	SelectHint    lipgloss.Style
	Empty         lipgloss.Style
	Help          lipgloss.Style
	Brand         lipgloss.Style
	Backdrop      lipgloss.Style
	Scroll        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Button: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 2).
			Bold(true),
		Kbd: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 1),
		Feature:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Dim:       lipgloss.NewStyle().Faint(true),
		Box:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("99")).Padding(0, 1),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		SectionHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		Pending:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Item:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive: lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("238")),
		Highlight:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Price:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		SelectHint: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Empty:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Help:       lipgloss.NewStyle().Faint(true),
		Brand:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Backdrop:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Scroll:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}
