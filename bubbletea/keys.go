package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the viewer key bindings. Scrolling keys belong to the
// viewport.
type KeyMap struct {
	NextTarget key.Binding
	PrevTarget key.Binding
	Activate   key.Binding
	NextDoc    key.Binding
	PrevDoc    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTarget: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next link")),
		PrevTarget: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev link")),
		Activate:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/toggle")),
		NextDoc:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next doc")),
		PrevDoc:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev doc")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTarget, k.Activate, k.NextDoc, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTarget, k.PrevTarget, k.Activate},
		{k.NextDoc, k.PrevDoc},
		{k.Help, k.Quit},
	}
}
