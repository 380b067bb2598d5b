package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the editor's key bindings
type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	FineLeft  key.Binding
	FineRight key.Binding
	FineUp    key.Binding
	FineDown  key.Binding
	NextMode  key.Binding
	PrevMode  key.Binding
	Rotate    key.Binding
	ScaleUp   key.Binding
	ScaleDown key.Binding
	Toggle    key.Binding
	Arrange   key.Binding
	Reload    key.Binding
	Save      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next monitor")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous monitor")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "move left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "move right")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		FineLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "nudge left")),
		FineRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "nudge right")),
		FineUp:    key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("K", "nudge up")),
		FineDown:  key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("J", "nudge down")),
		NextMode:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "next mode")),
		PrevMode:  key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "previous mode")),
		Rotate:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "rotate")),
		ScaleUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "scale up")),
		ScaleDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "scale down")),
		Toggle:    key.NewBinding(key.WithKeys("d", " "), key.WithHelp("d", "enable/disable")),
		Arrange:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "arrange in a row")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload config")),
		Save:      key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Left, k.NextMode, k.Rotate, k.Toggle, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Left, k.Right, k.Up, k.Down},
		{k.FineLeft, k.FineRight, k.FineUp, k.FineDown},
		{k.NextMode, k.PrevMode, k.Rotate, k.ScaleUp, k.ScaleDown},
		{k.Toggle, k.Arrange, k.Reload, k.Save, k.Help, k.Quit},
	}
}
