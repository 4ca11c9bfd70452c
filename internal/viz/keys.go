package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Disc     key.Binding
	Triangle key.Binding
	Square   key.Binding
	Reset    key.Binding
	Visible  key.Binding
	Pause    key.Binding
	Theme    key.Binding
	Record   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Disc:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "discs")),
		Triangle: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "triangles")),
		Square:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "squares")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Visible:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "arms")),
		Pause:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pause")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Record:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "record gif")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Disc, k.Triangle, k.Square},
		{k.Reset, k.Visible, k.Pause},
		{k.Theme, k.Record, k.Help, k.Quit},
	}
}
