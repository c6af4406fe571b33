// file: internal/tui/keys.go
// version: 1.0.0
// guid: 2f6a9c31-8e4b-4d07-b5a2-7c1e0d9f3b68

package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the bindings that exist only in the terminal. Selection,
// guides, spin and clear go through the shared preview key table.
type KeyMap struct {
	Mode      key.Binding
	Scale     key.Binding
	BookSize  key.Binding
	FauxVol   key.Binding
	MaskBleed key.Binding
	Code      key.Binding
	SpinNow   key.Binding
	Edit      key.Binding
	Quit      key.Binding

	// Override editor.
	NextField key.Binding
	Save      key.Binding
	Cancel    key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Mode:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
	Scale:     key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "scale")),
	BookSize:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "trim size")),
	FauxVol:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "faux volume")),
	MaskBleed: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "mask bleed")),
	Code:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "code")),
	SpinNow:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "spin now")),
	Edit:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "edit override")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

	NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// ShortHelp lists the toolbar bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Scale, k.BookSize, k.FauxVol, k.MaskBleed, k.Code, k.SpinNow, k.Edit, k.Quit}
}

// canonicalKey maps a terminal key press onto the shared key names:
// uppercase letters become shift+letter and page keys get their long names.
func canonicalKey(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyPgUp:
		return "pageup"
	case tea.KeyPgDown:
		return "pagedown"
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && unicode.IsUpper(msg.Runes[0]) {
			return "shift+" + strings.ToLower(string(msg.Runes[0]))
		}
	}
	return msg.String()
}
