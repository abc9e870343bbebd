package tui

import (
	"lined/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap binds terminal keys to editor commands. Printable keys that match no
// binding are typed into the document.
type KeyMap struct {
	Up, Down, Left, Right key.Binding
	Backspace, Delete     key.Binding
	Newline               key.Binding
	Save, Quit            key.Binding
}

// NewKeyMap builds the key map from configured key names.
func NewKeyMap(kb config.KeyBindings) KeyMap {
	return KeyMap{
		Up:        binding(kb.Up, "up"),
		Down:      binding(kb.Down, "down"),
		Left:      binding(kb.Left, "left"),
		Right:     binding(kb.Right, "right"),
		Backspace: binding(kb.Backspace, "delete left"),
		Delete:    binding(kb.Delete, "delete right"),
		Newline:   binding(kb.Newline, "newline"),
		Save:      binding(kb.Save, "save"),
		Quit:      binding(kb.Quit, "quit"),
	}
}

// binding disables itself when no keys are configured.
func binding(keys []string, desc string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], desc))
}

// ShortHelp is shown in the status bar when there is no message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Backspace, k.Delete, k.Newline},
		{k.Save, k.Quit},
	}
}
