package tui

import "github.com/charmbracelet/bubbles/key"

// inputKeyMap is active while a file path can be entered
type inputKeyMap struct {
	Submit key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k inputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Reset, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k inputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Reset, k.Quit}}
}

// analyzingKeyMap is active while an analysis is in flight
type analyzingKeyMap struct {
	Reset key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k analyzingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reset, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k analyzingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Reset, k.Quit}}
}

// resultKeyMap is active while a result is shown
type resultKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	CopyCaption  key.Binding
	CopyHashtags key.Binding
	Regenerate   key.Binding
	Reset        key.Binding
	Quit         key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k resultKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.CopyCaption, k.CopyHashtags, k.Regenerate, k.Reset, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k resultKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.CopyCaption, k.CopyHashtags},
		{k.Regenerate, k.Reset, k.Quit},
	}
}

func newInputKeyMap() inputKeyMap {
	return inputKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load / decode vibe"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

func newAnalyzingKeyMap() analyzingKeyMap {
	return analyzingKeyMap{
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func newResultKeyMap() resultKeyMap {
	return resultKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev caption"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next caption"),
		),
		CopyCaption: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy caption"),
		),
		CopyHashtags: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "copy hashtags"),
		),
		Regenerate: key.NewBinding(
			key.WithKeys("enter", "g"),
			key.WithHelp("enter", "regenerate"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r", "n"),
			key.WithHelp("n", "new image"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
