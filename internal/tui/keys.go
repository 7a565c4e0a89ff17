package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines the key bindings for the ticket view. Action keys
// only take effect when the selected ticket's control set renders the
// matching control.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Refresh    key.Binding
	Comment    key.Binding
	Status     key.Binding
	AssignDept key.Binding
	Reassign   key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous ticket"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next ticket"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "update status"),
		),
		AssignDept: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "assign department"),
		),
		Reassign: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "reassign support"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
