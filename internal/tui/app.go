// Package tui implements the full-screen editor: the document on the left,
// the task tree on the right, and a commitment prompt overlay for starting
// tasks.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chrct/chrct/internal/app"
	"github.com/chrct/chrct/internal/domain"
	"github.com/chrct/chrct/internal/sync"
	"github.com/chrct/chrct/internal/usecase"
)

// taskRow is one visible line of the task tree.
type taskRow struct {
	Task  *domain.Task
	Depth int
}

// Model is the root bubbletea model.
type Model struct {
	c        *app.Container
	engine   *sync.Engine
	syncCh   chan sync.Snapshot
	remoteCh <-chan domain.RemoteUpdate

	editor textarea.Model
	input  textinput.Model
	keys   keyMap
	mode   Mode

	snap          sync.Snapshot
	rows          []taskRow
	active        *domain.Task
	cursor        int
	gate          *usecase.Gate
	now           time.Time
	tickScheduled bool // a tick chain is already running

	alert  string
	width  int
	height int
}

// New creates the TUI model wired to the container.
func New(c *app.Container) *Model {
	editor := textarea.New()
	editor.Placeholder = "Start writing..."
	editor.CharLimit = 0
	editor.Focus()

	input := textinput.New()
	input.CharLimit = 200

	engine := c.SyncEngine()
	m := &Model{
		c:      c,
		engine: engine,
		syncCh: make(chan sync.Snapshot, 8),
		editor: editor,
		input:  input,
		keys:   defaultKeyMap(),
		mode:   ModeEditor,
		now:    c.Clock.Now(),
	}
	engine.SetOnChange(func(s sync.Snapshot) {
		select {
		case m.syncCh <- s:
		default:
		}
	})
	return m
}

// Init seeds the editor from the local cache, kicks off the initial
// reconciliation, and starts the remote watch when one is configured.
func (m *Model) Init() tea.Cmd {
	if doc, err := m.c.LocalDocs.GetDocument(); err == nil && doc != nil {
		m.engine.SeedLocal(doc.Text)
		m.editor.SetValue(doc.Text)
	}

	cmds := []tea.Cmd{
		textarea.Blink,
		m.reconcileCmd(),
		m.loadTasksCmd(),
		m.waitSyncCmd(),
	}
	if m.c.Watcher != nil {
		cmds = append(cmds, m.startWatchCmd())
	}
	return tea.Batch(cmds...)
}

// reconcileCmd fetches the authoritative document once and feeds it to the
// engine. Failures are left to the watcher; the engine stays in loading.
func (m *Model) reconcileCmd() tea.Cmd {
	return func() tea.Msg {
		doc, err := m.c.Docs.GetDocument()
		if err != nil {
			return nil
		}
		m.engine.HandleRemote(doc)
		return nil
	}
}

// waitSyncCmd delivers the next engine snapshot.
func (m *Model) waitSyncCmd() tea.Cmd {
	return func() tea.Msg {
		return syncMsg(<-m.syncCh)
	}
}

// startWatchCmd opens the remote subscription and waits for the first update.
func (m *Model) startWatchCmd() tea.Cmd {
	return func() tea.Msg {
		ch, err := m.c.Watcher.Watch(context.Background())
		if err != nil {
			return alertMsg{err: err}
		}
		return watchReadyMsg{ch: ch}
	}
}

// waitRemoteCmd delivers the next remote update.
func waitRemoteCmd(ch <-chan domain.RemoteUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return nil
		}
		return remoteMsg(update)
	}
}

// loadTasksCmd runs the list use case (including the rollover sweep).
func (m *Model) loadTasksCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.c.ListTasksUseCase().Execute(context.Background(), usecase.ListTasksInput{})
		if err != nil {
			return alertMsg{err: err}
		}
		return tasksMsg{out: out}
	}
}

// tickCmd schedules the next clock tick. Scheduled only while something on
// screen is counting: an active session or an open commitment window.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ticking reports whether the model needs a live clock.
func (m *Model) ticking() bool {
	return m.active != nil || m.mode == ModeGate
}

// maybeTickCmd starts a tick chain if one is needed and none is running.
// At most one chain exists at a time; tickMsg re-arms it.
func (m *Model) maybeTickCmd() tea.Cmd {
	if !m.ticking() || m.tickScheduled {
		return nil
	}
	m.tickScheduled = true
	return tickCmd()
}

// flatten converts the forest into visible rows, depth-first.
func flatten(roots []*domain.TaskNode) []taskRow {
	var rows []taskRow
	var walk func(node *domain.TaskNode, depth int)
	walk = func(node *domain.TaskNode, depth int) {
		rows = append(rows, taskRow{Task: node.Task, Depth: depth})
		for _, child := range node.Children {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
	return rows
}

// selected returns the task under the cursor, or nil.
func (m *Model) selected() *domain.Task {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].Task
}
