package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI. It satisfies help.KeyMap.
type KeyMap struct {
	Start   key.Binding
	ChooseA key.Binding
	ChooseB key.Binding
	Finish  key.Binding

	Share key.Binding
	Naver key.Binding
	Kakao key.Binding
	Retry key.Binding

	Copy  key.Binding
	Close key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = KeyMap{
	Start: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "start"),
	),
	ChooseA: key.NewBinding(
		key.WithKeys("a", "A", "1", "left"),
		key.WithHelp("a/1/←", "choose A"),
	),
	ChooseB: key.NewBinding(
		key.WithKeys("b", "B", "2", "right"),
		key.WithHelp("b/2/→", "choose B"),
	),
	Finish: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "see result"),
	),
	Share: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "share"),
	),
	Naver: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "naver"),
	),
	Kakao: key.NewBinding(
		key.WithKeys("k"),
		key.WithHelp("k", "kakao"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ChooseA, k.ChooseB, k.Share, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped by screen.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.ChooseA, k.ChooseB, k.Finish},
		{k.Share, k.Naver, k.Kakao, k.Retry},
		{k.Copy, k.Close, k.Help, k.Quit},
	}
}
