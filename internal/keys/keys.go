// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// FormKeyMap defines the keybindings of the form host. Everything else is
// forwarded to the focused field's editor.
type FormKeyMap struct {
	// Focus
	Next key.Binding
	Prev key.Binding
	Blur key.Binding

	// Actions
	Submit key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// Form holds the default form bindings.
var Form = DefaultFormKeyMap()

// DefaultFormKeyMap returns the default form keybindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		// Focus
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "preview"),
		),

		// Actions
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("ctrl+_", "f1"),
			key.WithHelp("ctrl+/", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k FormKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k FormKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Blur}, // Focus
		{k.Submit},               // Actions
		{k.Help, k.Quit},         // General
	}
}
