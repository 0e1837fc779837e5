package browse

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextMap  key.Binding
	PrevMap  key.Binding
	NextKill key.Binding
	PrevKill key.Binding
	Swap     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextMap:  key.NewBinding(key.WithKeys("m", "right"), key.WithHelp("m/→", "next map")),
		PrevMap:  key.NewBinding(key.WithKeys("M", "left"), key.WithHelp("M/←", "prev map")),
		NextKill: key.NewBinding(key.WithKeys("k", "down"), key.WithHelp("k/↓", "next kill type")),
		PrevKill: key.NewBinding(key.WithKeys("K", "up"), key.WithHelp("K/↑", "prev kill type")),
		Swap:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "swap teams")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextMap, k.NextKill, k.Swap, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextMap, k.PrevMap},
		{k.NextKill, k.PrevKill},
		{k.Swap, k.Help, k.Quit},
	}
}
