package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"todo/internal/config"
)

type keyMap struct {
	Quit    key.Binding
	Add     key.Binding
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Edit    key.Binding
	Clear   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// newKeyMap binds the configured keys. Arrow keys always move, and enter on
// a row starts editing it like the edit key does.
func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:    bind("quit", k.Quit),
		Add:     bind("add", k.Add),
		Up:      bind("up", k.Up, "up"),
		Down:    bind("down", k.Down, "down"),
		Toggle:  bind("toggle", k.Toggle),
		Delete:  bind("delete", k.Delete),
		Edit:    bind("edit", k.Edit, k.Confirm),
		Clear:   bind("clear all", k.Clear),
		Confirm: bind("save", k.Confirm),
		Cancel:  bind("cancel", k.Cancel),
	}
}

func bind(desc, primary string, extra ...string) key.Binding {
	keys := append([]string{primary}, extra...)
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label(primary), desc))
}

func label(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Toggle, k.Edit, k.Delete, k.Clear, k.Quit}
}
