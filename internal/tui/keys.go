package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down     key.Binding
	Edit, Reload key.Binding
	Apply, Abort key.Binding
	Help, Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "edit filters")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Apply:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Abort:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Edit, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Edit, k.Apply, k.Abort},
		{k.Reload, k.Help, k.Quit},
	}
}
