package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the explorer's keyboard shortcuts
type KeyMap struct {
	Step  key.Binding
	Back  key.Binding
	End   key.Binding
	Reset key.Binding
	Play  key.Binding
	Copy  key.Binding
	Help  key.Binding
	Close key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Step: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→/n", "next event"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "h", "b"),
			key.WithHelp("←/b", "previous event"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "run to end"),
		),
		Reset: key.NewBinding(
			key.WithKeys("home", "g", "r"),
			key.WithHelp("g/r", "restart"),
		),
		Play: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play/pause"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy pool state"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Step, k.Back, k.Play, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Step, k.Back, k.End, k.Reset},
		{k.Play, k.Copy, k.Help, k.Close, k.Quit},
	}
}
