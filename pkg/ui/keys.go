package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/vanderheijden86/farewell/pkg/deck"
)

// KeyMap holds the presentation key bindings. It implements help.KeyMap.
type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Restart   key.Binding
	Skip      key.Binding
	SlideNext key.Binding
	SlidePrev key.Binding
	SlideJump key.Binding
	Copy      key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", " ", "l", "enter"),
			key.WithHelp("→/space", "siguiente"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "backspace"),
			key.WithHelp("←", "anterior"),
		),
		Restart: key.NewBinding(
			key.WithKeys("home", "0"),
			key.WithHelp("0", "inicio"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s", "esc"),
			key.WithHelp("s", "saltar"),
		),
		SlideNext: key.NewBinding(
			key.WithKeys("]", "."),
			key.WithHelp("]", "recuerdo →"),
		),
		SlidePrev: key.NewBinding(
			key.WithKeys("[", ","),
			key.WithHelp("[", "← recuerdo"),
		),
		SlideJump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "ir a recuerdo"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copiar carta"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "subir"),
		),
		ScrollDn: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "bajar"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ayuda"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "salir"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Restart},
		{k.SlidePrev, k.SlideNext, k.SlideJump},
		{k.Skip, k.ScrollUp, k.ScrollDn},
		{k.Copy, k.Help, k.Quit},
	}
}

// forKind enables the section-specific bindings for kind so help only
// lists what works on screen.
func (k KeyMap) forKind(kind deck.Kind) KeyMap {
	carousel := kind == deck.KindCarousel
	closing := kind == deck.KindClosing
	k.SlideNext.SetEnabled(carousel)
	k.SlidePrev.SetEnabled(carousel)
	k.SlideJump.SetEnabled(carousel)
	k.Skip.SetEnabled(closing || kind == deck.KindInstitutional)
	k.ScrollUp.SetEnabled(closing)
	k.ScrollDn.SetEnabled(closing)
	k.Copy.SetEnabled(kind == deck.KindFooter)
	return k
}
