package tui

// Mode is the input mode of the TUI.
type Mode int

const (
	// ModeEditor focuses the document editor.
	ModeEditor Mode = iota
	// ModeTasks focuses the task tree.
	ModeTasks
	// ModeGate shows the commitment prompt for an activation in progress.
	ModeGate
	// ModeNewTask shows the text prompt for a new task.
	ModeNewTask
	// ModeNewSubtask shows the text prompt for a subtask of the selection.
	ModeNewSubtask
)
