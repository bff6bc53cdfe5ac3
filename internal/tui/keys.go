package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the task-pane key bindings.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Start   key.Binding
	Stop    key.Binding
	Done    key.Binding
	Undone  key.Binding
	Delete  key.Binding
	New     key.Binding
	Subtask key.Binding
	Switch  key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Start:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Stop:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Done:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done")),
		Undone:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undone")),
		Delete:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		Subtask: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new subtask")),
		Switch:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}
