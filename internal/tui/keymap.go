package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the live calculator. Printable keys
// go to the input field, so every binding uses a non-printable key.
type KeyMap struct {
	Quit   key.Binding
	NextOp key.Binding
	PrevOp key.Binding
	Clear  key.Binding
	Help   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		NextOp: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next op"),
		),
		PrevOp: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous op"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "more keys"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextOp, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextOp, k.PrevOp},
		{k.Clear, k.Help, k.Quit},
	}
}
