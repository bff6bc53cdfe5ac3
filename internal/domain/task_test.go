package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusIdle, StatusActive, true},
		{StatusIdle, StatusCompleted, false},
		{StatusActive, StatusIdle, true},
		{StatusActive, StatusCompleted, true},
		{StatusCompleted, StatusIdle, true},
		{StatusCompleted, StatusActive, false},
		{Status("bogus"), StatusActive, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestStatus_IsValid(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.IsValid())
	}
	assert.False(t, Status("bogus").IsValid())
}

func TestTask_SessionTime(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	task := &Task{Status: StatusActive, ActiveSince: Some(now.Add(-10 * time.Minute))}
	assert.Equal(t, 10*time.Minute, task.SessionTime(now))

	idle := &Task{Status: StatusIdle, ActiveSince: Some(now.Add(-10 * time.Minute))}
	assert.Equal(t, time.Duration(0), idle.SessionTime(now))

	noSince := &Task{Status: StatusActive}
	assert.Equal(t, time.Duration(0), noSince.SessionTime(now))

	// A clock that moved backwards never yields a negative session.
	future := &Task{Status: StatusActive, ActiveSince: Some(now.Add(time.Minute))}
	assert.Equal(t, time.Duration(0), future.SessionTime(now))
}

func TestTask_DisplayTime(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	task := &Task{
		Status:      StatusActive,
		TotalTime:   time.Hour,
		ActiveSince: Some(now.Add(-15 * time.Minute)),
	}

	assert.Equal(t, time.Hour+15*time.Minute, task.DisplayTime(now))
}

func TestTask_NeedsRollover(t *testing.T) {
	repeat := &Task{DailyRepeat: true, Status: StatusCompleted, CompletedAt: Some("2026-08-29")}
	assert.True(t, repeat.NeedsRollover("2026-08-30"))
	assert.False(t, repeat.NeedsRollover("2026-08-29"))

	oneOff := &Task{Status: StatusCompleted, CompletedAt: Some("2026-08-29")}
	assert.False(t, oneOff.NeedsRollover("2026-08-30"))

	idle := &Task{DailyRepeat: true, Status: StatusIdle}
	assert.False(t, idle.NeedsRollover("2026-08-30"))
}

func TestOptional_JSON(t *testing.T) {
	data, err := json.Marshal(Some("hello"))
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, string(data))

	data, err = json.Marshal(None[string]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var o Optional[string]
	require.NoError(t, json.Unmarshal([]byte(`"hi"`), &o))
	assert.Equal(t, Some("hi"), o)

	require.NoError(t, json.Unmarshal([]byte("null"), &o))
	assert.False(t, o.Present)
}

func TestOptional_StructRoundTrip(t *testing.T) {
	type record struct {
		Note Optional[string]    `json:"note"`
		At   Optional[time.Time] `json:"at"`
	}

	in := record{Note: Some("x")}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"at":null`)

	var out record
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestTaskPatch_ApplyAndIsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())

	task := &Task{Text: "before", Status: StatusActive, ActiveSince: Some(time.Now())}
	status := StatusIdle
	patch := TaskPatch{
		Status:      &status,
		ActiveSince: &Optional[time.Time]{},
	}
	assert.False(t, patch.IsEmpty())

	patch.Apply(task)
	assert.Equal(t, StatusIdle, task.Status)
	assert.False(t, task.ActiveSince.Present)
	assert.Equal(t, "before", task.Text)
}

func TestCountText(t *testing.T) {
	assert.Equal(t, TextStats{}, CountText(""))
	assert.Equal(t, TextStats{Chars: 11, Words: 2, Lines: 1}, CountText("hello world"))
	assert.Equal(t, TextStats{Chars: 7, Words: 2, Lines: 2}, CountText("one\ntwo"))
	// Chars counts code points, not bytes.
	assert.Equal(t, 2, CountText("日本").Chars)
}
