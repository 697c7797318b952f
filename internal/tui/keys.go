package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/colonyops/redguard/internal/core/styles"
)

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	First  key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("n", "tab"), key.WithHelp("n/tab", "next risk")),
		Prev:   key.NewBinding(key.WithKeys("p", "shift+tab"), key.WithHelp("p", "prev risk")),
		First:  key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first risk")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// newHelp returns a help model drawn in the active theme.
func newHelp() help.Model {
	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.FullDesc = styles.HelpStyle
	h.Styles.ShortSeparator = styles.HelpStyle
	h.Styles.FullSeparator = styles.HelpStyle
	h.Styles.Ellipsis = styles.HelpStyle
	return h
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Next,
		k.Prev,
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
		k.Reload,
		k.Quit,
	}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.First}, {k.Reload, k.Quit}}
}
