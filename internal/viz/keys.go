package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextAxis key.Binding
	PrevAxis key.Binding
	Clear    key.Binding
	ClearAll key.Binding
	Theme    key.Binding
	Save     key.Binding
	Export   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	NextAxis: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("tab/→", "next axis"),
	),
	PrevAxis: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("shift+tab/←", "prev axis"),
	),
	Clear: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear axis brush"),
	),
	ClearAll: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear all"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save snapshot"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export svg"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextAxis, k.Clear, k.ClearAll, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextAxis, k.PrevAxis},
		{k.Clear, k.ClearAll},
		{k.Theme, k.Save, k.Export},
		{k.Help, k.Quit},
	}
}
