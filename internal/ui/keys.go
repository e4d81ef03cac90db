package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds every binding of the landing screen and the overlay
type keyMap struct {
	Open     key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Close    key.Binding
	Clear    key.Binding
	Details  key.Binding
	Navigate key.Binding // footer only
}

func newKeyMap() keyMap {
	return keyMap{
		Open: key.NewBinding(
			key.WithKeys("ctrl+k", "/"),
			key.WithHelp("ctrl+k", "Search"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "Down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "Select"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Clear"),
		),
		Details: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "Details"),
		),
		Navigate: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑↓", "Navigate"),
		),
	}
}

// overlayHelp is the footer of the overlay box
type overlayHelp struct {
	keys keyMap
}

func (h overlayHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.Select, h.keys.Navigate, h.keys.Close}
}

func (h overlayHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.keys.Select, h.keys.Navigate, h.keys.Close},
		{h.keys.Clear, h.keys.Details},
	}
}
