package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start key.Binding
	Deal  key.Binding
	Bet   key.Binding
	Hold  [5]key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	km := keyMap{
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start/restart"),
		),
		Deal: key.NewBinding(
			key.WithKeys("d", "enter", " "),
			key.WithHelp("d/enter", "deal/draw"),
		),
		Bet: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bet"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "paytable"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
	for i := range km.Hold {
		k := string(rune('1' + i))
		km.Hold[i] = key.NewBinding(key.WithKeys(k))
	}
	km.Hold[0].SetHelp("1-5", "hold")
	return km
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Deal, k.Bet, k.Hold[0], k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Deal, k.Bet},
		{k.Hold[0], k.Help, k.Quit},
	}
}
