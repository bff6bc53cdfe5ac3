package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/chrct/chrct/internal/domain"
	"github.com/chrct/chrct/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// activate is a test helper for the full two-phase activation.
func activate(t *testing.T, store *testutil.MockTaskStore, clock *testutil.MockClock, id string) {
	t.Helper()
	uc := NewActivateTask(store, clock, nil, time.Minute)
	gate, err := uc.Initiate(context.Background(), id)
	require.NoError(t, err)
	_, err = uc.Commit(context.Background(), gate, "get going")
	require.NoError(t, err)
}

func TestStopTask_AccruesSession(t *testing.T) {
	store := testutil.NewMockTaskStore()
	store.Add(testTask("t1", "write report"))
	clock := &testutil.MockClock{NowTime: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)}

	activate(t, store, clock, "t1")
	clock.Advance(25 * time.Minute)

	out, err := NewStopTask(store, clock, nil).Execute(context.Background(), StopTaskInput{TaskID: "t1"})
	require.NoError(t, err)

	assert.Equal(t, 25*time.Minute, out.Session)
	assert.Equal(t, domain.StatusIdle, out.Task.Status)
	assert.Equal(t, 25*time.Minute, out.Task.TotalTime)
	assert.False(t, out.Task.ActiveSince.Present)
	// Stopping never touches completion bookkeeping.
	assert.False(t, out.Task.CompletedAt.Present)
}

func TestLifecycle_TotalTimeAccumulatesAcrossSessions(t *testing.T) {
	store := testutil.NewMockTaskStore()
	store.Add(testTask("t1", "write report"))
	clock := &testutil.MockClock{NowTime: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)}

	// First session: 10 minutes, then pause.
	activate(t, store, clock, "t1")
	clock.Advance(10 * time.Minute)
	_, err := NewStopTask(store, clock, nil).Execute(context.Background(), StopTaskInput{TaskID: "t1"})
	require.NoError(t, err)

	// Second session: 15 minutes, then complete.
	clock.Advance(time.Hour)
	activate(t, store, clock, "t1")
	clock.Advance(15 * time.Minute)
	out, err := NewCompleteTask(store, clock, nil).Execute(context.Background(), CompleteTaskInput{TaskID: "t1"})
	require.NoError(t, err)

	assert.Equal(t, 25*time.Minute, out.Task.TotalTime)
	assert.Equal(t, domain.StatusCompleted, out.Task.Status)
	assert.Equal(t, domain.Some(clock.NowTime.Format(domain.DateLayout)), out.Task.CompletedAt)
	assert.Equal(t, domain.Some(clock.NowTime), out.Task.CompletedTimestamp)
	assert.False(t, out.Task.ActiveSince.Present)
}

func TestCompleteTask_RequiresActive(t *testing.T) {
	store := testutil.NewMockTaskStore()
	store.Add(testTask("t1", "write report"))
	clock := &testutil.MockClock{NowTime: time.Now()}

	_, err := NewCompleteTask(store, clock, nil).Execute(context.Background(), CompleteTaskInput{TaskID: "t1"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestStopTask_RequiresActive(t *testing.T) {
	store := testutil.NewMockTaskStore()
	task := store.Add(testTask("t1", "write report"))
	task.Status = domain.StatusCompleted
	clock := &testutil.MockClock{NowTime: time.Now()}

	_, err := NewStopTask(store, clock, nil).Execute(context.Background(), StopTaskInput{TaskID: "t1"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUncompleteTask_ClearsCompletionAndKeepsTime(t *testing.T) {
	store := testutil.NewMockTaskStore()
	clock := &testutil.MockClock{NowTime: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)}
	store.Add(testTask("t1", "write report"))
	activate(t, store, clock, "t1")
	clock.Advance(20 * time.Minute)
	_, err := NewCompleteTask(store, clock, nil).Execute(context.Background(), CompleteTaskInput{TaskID: "t1"})
	require.NoError(t, err)

	out, err := NewUncompleteTask(store, nil).Execute(context.Background(), UncompleteTaskInput{TaskID: "t1"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusIdle, out.Task.Status)
	assert.False(t, out.Task.CompletedAt.Present)
	assert.False(t, out.Task.CompletedTimestamp.Present)
	assert.Equal(t, 20*time.Minute, out.Task.TotalTime)
}

func TestUncompleteTask_RequiresCompleted(t *testing.T) {
	store := testutil.NewMockTaskStore()
	store.Add(testTask("t1", "write report"))

	_, err := NewUncompleteTask(store, nil).Execute(context.Background(), UncompleteTaskInput{TaskID: "t1"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRolloverTasks_ResetsStaleDailyRepeats(t *testing.T) {
	store := testutil.NewMockTaskStore()
	clock := &testutil.MockClock{NowTime: time.Date(2026, 8, 29, 22, 0, 0, 0, time.UTC)}

	repeat := store.Add(testTask("daily", "morning pages"))
	repeat.DailyRepeat = true
	activate(t, store, clock, "daily")
	clock.Advance(30 * time.Minute)
	_, err := NewCompleteTask(store, clock, nil).Execute(context.Background(), CompleteTaskInput{TaskID: "daily"})
	require.NoError(t, err)

	done := store.Add(testTask("once", "one-off"))
	done.Status = domain.StatusCompleted
	done.CompletedAt = domain.Some("2026-08-29")

	// Same day: nothing to do.
	out, err := NewRolloverTasks(store, clock, nil).Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out.ResetIDs)

	// Next day: only the repeater resets, with its time cleared.
	clock.NowTime = time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC)
	out, err = NewRolloverTasks(store, clock, nil).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"daily"}, out.ResetIDs)

	task, _ := store.Get("daily")
	assert.Equal(t, domain.StatusIdle, task.Status)
	assert.Equal(t, time.Duration(0), task.TotalTime)
	assert.False(t, task.FirstMove.Present)
	assert.False(t, task.CompletedAt.Present)
	assert.False(t, task.CompletedTimestamp.Present)

	once, _ := store.Get("once")
	assert.Equal(t, domain.StatusCompleted, once.Status)
}

func TestListTasks_HidesStaleCompletedSubtrees(t *testing.T) {
	store := testutil.NewMockTaskStore()
	clock := &testutil.MockClock{NowTime: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}

	stale := store.Add(testTask("stale", "finished last week"))
	stale.Status = domain.StatusCompleted
	stale.CompletedTimestamp = domain.Some(clock.NowTime.Add(-48 * time.Hour))

	child := store.Add(testTask("child", "subtask of stale"))
	child.ParentID = ptr("stale")

	fresh := store.Add(testTask("fresh", "finished this morning"))
	fresh.Status = domain.StatusCompleted
	fresh.CompletedTimestamp = domain.Some(clock.NowTime.Add(-2 * time.Hour))

	store.Add(testTask("open", "still to do"))

	uc := NewListTasks(store, nil, clock)
	out, err := uc.Execute(context.Background(), ListTasksInput{})
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, task := range out.Tasks {
		ids[task.ID] = true
	}
	assert.False(t, ids["stale"])
	assert.False(t, ids["child"], "descendants of hidden tasks go with them")
	assert.True(t, ids["fresh"])
	assert.True(t, ids["open"])

	// With IncludeCompleted everything is visible again.
	out, err = uc.Execute(context.Background(), ListTasksInput{IncludeCompleted: true})
	require.NoError(t, err)
	assert.Len(t, out.Tasks, 4)
}

func TestListTasks_ReportsActiveTask(t *testing.T) {
	store := testutil.NewMockTaskStore()
	clock := &testutil.MockClock{NowTime: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
	store.Add(testTask("t1", "one"))
	store.Add(testTask("t2", "two"))
	activate(t, store, clock, "t2")

	out, err := NewListTasks(store, NewRolloverTasks(store, clock, nil), clock).
		Execute(context.Background(), ListTasksInput{})
	require.NoError(t, err)

	require.NotNil(t, out.Active)
	assert.Equal(t, "t2", out.Active.ID)
}
