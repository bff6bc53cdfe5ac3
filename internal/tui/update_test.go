package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chrct/chrct/internal/app"
	"github.com/chrct/chrct/internal/domain"
	"github.com/chrct/chrct/internal/testutil"
	"github.com/chrct/chrct/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestModel creates a Model wired to mock stores.
func newTestModel(store *testutil.MockTaskStore, clock *testutil.MockClock) *Model {
	c := app.NewWithDeps(
		domain.NewDefaultConfig(),
		store,
		testutil.NewMockGoalStore(),
		&testutil.MockDocumentStore{},
		&testutil.MockWatermarkStore{},
		clock,
	)
	return New(c)
}

func idleTask(id, text string, created time.Time) *domain.Task {
	return &domain.Task{ID: id, Text: text, Status: domain.StatusIdle, Created: created}
}

func tasksLoaded(store *testutil.MockTaskStore, now time.Time) tasksMsg {
	tasks := make([]*domain.Task, 0, len(store.Tasks))
	for _, t := range store.Tasks {
		tasks = append(tasks, t)
	}
	return tasksMsg{out: &usecase.ListTasksOutput{
		Roots:  domain.BuildForest(tasks),
		Tasks:  tasks,
		Active: domain.ActiveTask(tasks),
		Now:    now,
	}}
}

func TestUpdate_StartOpensGate(t *testing.T) {
	clock := &testutil.MockClock{NowTime: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	store := testutil.NewMockTaskStore()
	store.Add(idleTask("t1", "write the report", clock.Now()))

	m := newTestModel(store, clock)
	m.mode = ModeTasks
	updated, _ := m.Update(tasksLoaded(store, clock.Now()))
	m = updated.(*Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*Model)

	assert.Equal(t, ModeGate, m.mode)
	require.NotNil(t, m.gate)
	assert.Equal(t, "t1", m.gate.TaskID)
	assert.Equal(t, clock.Now().Add(60*time.Second), m.gate.Deadline)
	assert.NotNil(t, cmd)

	// The task itself stays idle until the move is committed.
	assert.Equal(t, domain.StatusIdle, store.Tasks["t1"].Status)
}

func TestUpdate_GateCommitActivatesTask(t *testing.T) {
	clock := &testutil.MockClock{NowTime: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	store := testutil.NewMockTaskStore()
	store.Add(idleTask("t1", "write the report", clock.Now()))

	m := newTestModel(store, clock)
	m.mode = ModeTasks
	updated, _ := m.Update(tasksLoaded(store, clock.Now()))
	m = updated.(*Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*Model)
	require.Equal(t, ModeGate, m.mode)

	m.input.SetValue("open the outline doc")
	clock.Advance(10 * time.Second)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*Model)

	assert.Equal(t, ModeTasks, m.mode)
	assert.Nil(t, m.gate)
	assert.Empty(t, m.alert)
	assert.NotNil(t, cmd)

	task := store.Tasks["t1"]
	assert.Equal(t, domain.StatusActive, task.Status)
	assert.Equal(t, domain.Some("open the outline doc"), task.FirstMove)
}

func TestUpdate_GateEscCancels(t *testing.T) {
	clock := &testutil.MockClock{NowTime: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	store := testutil.NewMockTaskStore()
	store.Add(idleTask("t1", "write the report", clock.Now()))

	m := newTestModel(store, clock)
	m.mode = ModeTasks
	updated, _ := m.Update(tasksLoaded(store, clock.Now()))
	m = updated.(*Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(*Model)

	assert.Equal(t, ModeTasks, m.mode)
	assert.Nil(t, m.gate)
	assert.Equal(t, domain.StatusIdle, store.Tasks["t1"].Status)
}

func TestUpdate_GateExpiresSilently(t *testing.T) {
	clock := &testutil.MockClock{NowTime: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	store := testutil.NewMockTaskStore()
	store.Add(idleTask("t1", "write the report", clock.Now()))

	m := newTestModel(store, clock)
	m.mode = ModeTasks
	updated, _ := m.Update(tasksLoaded(store, clock.Now()))
	m = updated.(*Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*Model)
	require.Equal(t, ModeGate, m.mode)

	clock.Advance(61 * time.Second)
	updated, cmd := m.Update(tickMsg(clock.Now()))
	m = updated.(*Model)

	// The window just closes: no alert, no task change, no further ticks.
	assert.Equal(t, ModeTasks, m.mode)
	assert.Nil(t, m.gate)
	assert.Empty(t, m.alert)
	assert.Equal(t, domain.StatusIdle, store.Tasks["t1"].Status)
	assert.Nil(t, cmd)
	assert.False(t, m.tickScheduled)
}

func TestUpdate_SingleTickChain(t *testing.T) {
	clock := &testutil.MockClock{NowTime: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	store := testutil.NewMockTaskStore()
	active := idleTask("t1", "write the report", clock.Now())
	active.Status = domain.StatusActive
	active.ActiveSince = domain.Some(clock.Now())
	store.Add(active)

	m := newTestModel(store, clock)

	// First load with an active task starts the chain.
	updated, cmd := m.Update(tasksLoaded(store, clock.Now()))
	m = updated.(*Model)
	assert.NotNil(t, cmd)
	assert.True(t, m.tickScheduled)

	// Reloads while the chain runs must not start another one.
	updated, cmd = m.Update(tasksLoaded(store, clock.Now()))
	m = updated.(*Model)
	assert.Nil(t, cmd)

	// The running chain re-arms itself on each tick.
	updated, cmd = m.Update(tickMsg(clock.Now()))
	m = updated.(*Model)
	assert.NotNil(t, cmd)
	assert.True(t, m.tickScheduled)
}

func TestUpdate_TickChainStopsWhenNothingCounts(t *testing.T) {
	clock := &testutil.MockClock{NowTime: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	store := testutil.NewMockTaskStore()
	active := idleTask("t1", "write the report", clock.Now())
	active.Status = domain.StatusActive
	active.ActiveSince = domain.Some(clock.Now())
	store.Add(active)

	m := newTestModel(store, clock)
	updated, _ := m.Update(tasksLoaded(store, clock.Now()))
	m = updated.(*Model)
	require.True(t, m.tickScheduled)

	// The task stops; the next reload has no active task and no open gate.
	active.Status = domain.StatusIdle
	active.ActiveSince = domain.None[time.Time]()
	updated, _ = m.Update(tasksLoaded(store, clock.Now()))
	m = updated.(*Model)

	updated, cmd := m.Update(tickMsg(clock.Now()))
	m = updated.(*Model)
	assert.Nil(t, cmd)
	assert.False(t, m.tickScheduled)

	// A fresh activation later starts a fresh chain.
	active.Status = domain.StatusActive
	active.ActiveSince = domain.Some(clock.Now())
	updated, cmd = m.Update(tasksLoaded(store, clock.Now()))
	m = updated.(*Model)
	assert.NotNil(t, cmd)
	assert.True(t, m.tickScheduled)
}

func TestUpdate_RemoteUpdateRefreshesTasks(t *testing.T) {
	clock := &testutil.MockClock{NowTime: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	store := testutil.NewMockTaskStore()
	m := newTestModel(store, clock)

	ch := make(chan domain.RemoteUpdate, 1)
	updated, cmd := m.Update(watchReadyMsg{ch: ch})
	m = updated.(*Model)
	assert.NotNil(t, cmd)

	updated, cmd = m.Update(remoteMsg(domain.RemoteUpdate{Document: &domain.Document{Text: "from elsewhere"}}))
	m = updated.(*Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, "from elsewhere", m.engine.Snapshot().Local)
}
