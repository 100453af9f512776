package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the prompt and countdown views
type KeyMap struct {
	// Countdown
	Pause key.Binding
	Quit  key.Binding
	Help  key.Binding

	// Prompt
	Change  key.Binding
	Confirm key.Binding
	Keep    key.Binding

	Interrupt key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p/space", "pause/resume"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Change: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "change title"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Keep: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "keep title"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "exit"),
		),
	}
}

// ShortHelp returns the countdown bindings shown by default
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Quit, k.Help}
}

// FullHelp returns every countdown binding
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Help},
		{k.Quit, k.Interrupt},
	}
}

// promptHelp exposes the prompt bindings to help.Model
type promptHelp struct {
	keys    KeyMap
	editing bool
}

func (p promptHelp) ShortHelp() []key.Binding {
	if p.editing {
		return []key.Binding{p.keys.Confirm, p.keys.Keep, p.keys.Interrupt}
	}
	return []key.Binding{p.keys.Change, p.keys.Keep, p.keys.Interrupt}
}

func (p promptHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{p.ShortHelp()}
}
