package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chrct/chrct/internal/sync"
	"github.com/chrct/chrct/internal/usecase"
)

// Update handles all messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case syncMsg:
		m.snap = sync.Snapshot(msg)
		// Adopt a pulled document without clobbering edits on no-ops.
		if m.snap.Local != m.editor.Value() {
			m.editor.SetValue(m.snap.Local)
		}
		return m, m.waitSyncCmd()

	case watchReadyMsg:
		m.remoteCh = msg.ch
		return m, waitRemoteCmd(m.remoteCh)

	case remoteMsg:
		m.engine.HandleRemote(msg.Document)
		return m, tea.Batch(m.loadTasksCmd(), waitRemoteCmd(m.remoteCh))

	case tasksMsg:
		m.rows = flatten(msg.out.Roots)
		m.active = msg.out.Active
		m.now = msg.out.Now
		if m.cursor >= len(m.rows) {
			m.cursor = len(m.rows) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, m.maybeTickCmd()

	case tickMsg:
		m.now = m.c.Clock.Now()
		// An expired gate closes silently; the countdown just disappears.
		if m.mode == ModeGate && m.gate != nil && m.now.After(m.gate.Deadline) {
			m.gate = nil
			m.mode = ModeTasks
		}
		if m.ticking() {
			return m, tickCmd()
		}
		m.tickScheduled = false
		return m, nil

	case alertMsg:
		m.alert = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

// handleKey routes key presses by mode.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.engine.Close()
		return m, tea.Quit
	}
	m.alert = ""

	switch m.mode {
	case ModeEditor:
		if key.Matches(msg, m.keys.Switch) {
			m.mode = ModeTasks
			m.editor.Blur()
			return m, nil
		}
		return m.updateEditor(msg)

	case ModeTasks:
		return m.handleTaskKey(msg)

	case ModeGate:
		switch msg.String() {
		case "enter":
			return m.commitGate()
		case "esc":
			m.gate = nil
			m.mode = ModeTasks
			return m, nil
		}
		return m.updateInput(msg)

	case ModeNewTask, ModeNewSubtask:
		switch msg.String() {
		case "enter":
			return m.submitNewTask()
		case "esc":
			m.mode = ModeTasks
			return m, nil
		}
		return m.updateInput(msg)
	}
	return m, nil
}

// handleTaskKey handles keys while the task pane is focused.
func (m *Model) handleTaskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Switch):
		m.mode = ModeEditor
		return m, m.editor.Focus()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Start):
		task := m.selected()
		if task == nil {
			return m, nil
		}
		gate, err := m.c.ActivateTaskUseCase().Initiate(context.Background(), task.ID)
		if err != nil {
			m.alert = err.Error()
			return m, nil
		}
		m.gate = gate
		m.mode = ModeGate
		m.input.SetValue("")
		m.input.Placeholder = "first concrete move"
		return m, tea.Batch(m.input.Focus(), m.maybeTickCmd())

	case key.Matches(msg, m.keys.Stop):
		return m.runTaskAction(func(id string) error {
			_, err := m.c.StopTaskUseCase().Execute(context.Background(), usecase.StopTaskInput{TaskID: id})
			return err
		})

	case key.Matches(msg, m.keys.Done):
		return m.runTaskAction(func(id string) error {
			_, err := m.c.CompleteTaskUseCase().Execute(context.Background(), usecase.CompleteTaskInput{TaskID: id})
			return err
		})

	case key.Matches(msg, m.keys.Undone):
		return m.runTaskAction(func(id string) error {
			_, err := m.c.UncompleteTaskUseCase().Execute(context.Background(), usecase.UncompleteTaskInput{TaskID: id})
			return err
		})

	case key.Matches(msg, m.keys.Delete):
		return m.runTaskAction(func(id string) error {
			_, err := m.c.DeleteTaskUseCase().Execute(context.Background(), usecase.DeleteTaskInput{TaskID: id})
			return err
		})

	case key.Matches(msg, m.keys.New):
		m.mode = ModeNewTask
		m.input.SetValue("")
		m.input.Placeholder = "new task"
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Subtask):
		if m.selected() == nil {
			return m, nil
		}
		m.mode = ModeNewSubtask
		m.input.SetValue("")
		m.input.Placeholder = "new subtask"
		return m, m.input.Focus()
	}
	return m, nil
}

// runTaskAction applies fn to the selection and reloads the tree.
func (m *Model) runTaskAction(fn func(id string) error) (tea.Model, tea.Cmd) {
	task := m.selected()
	if task == nil {
		return m, nil
	}
	if err := fn(task.ID); err != nil {
		m.alert = err.Error()
		return m, nil
	}
	return m, m.loadTasksCmd()
}

// commitGate answers the commitment prompt.
func (m *Model) commitGate() (tea.Model, tea.Cmd) {
	_, err := m.c.ActivateTaskUseCase().Commit(context.Background(), m.gate, m.input.Value())
	m.gate = nil
	m.mode = ModeTasks
	if err != nil {
		m.alert = err.Error()
		return m, nil
	}
	return m, m.loadTasksCmd()
}

// submitNewTask creates the task typed into the prompt.
func (m *Model) submitNewTask() (tea.Model, tea.Cmd) {
	input := usecase.NewTaskInput{Text: m.input.Value()}
	if m.mode == ModeNewSubtask {
		if task := m.selected(); task != nil {
			input.ParentID = &task.ID
		}
	}
	m.mode = ModeTasks
	if _, err := m.c.NewTaskUseCase().Execute(context.Background(), input); err != nil {
		m.alert = err.Error()
		return m, nil
	}
	return m, m.loadTasksCmd()
}

// updateEditor forwards a message to the textarea and mirrors edits into the
// sync engine.
func (m *Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.engine.SetLocal(after)
	}
	return m, cmd
}

// updateInput forwards a message to the prompt input.
func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateFocused forwards non-key messages to the focused component.
func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == ModeEditor {
		return m.updateEditor(msg)
	}
	return m, nil
}
