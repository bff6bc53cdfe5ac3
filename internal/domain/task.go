// Package domain contains core business entities and interfaces.
package domain

import "time"

// DateLayout is the calendar-date format used for completion bookkeeping
// and daily-repeat rollover ("today" comparisons).
const DateLayout = "2006-01-02"

// Task represents a work unit in the launchpad.
// Fields are ordered to minimize memory padding.
type Task struct {
	Created            time.Time            `json:"created"`            // Creation time, tie-breaker for sibling ordering
	ParentID           *string              `json:"parentID"`           // Parent task ID (nil = root task)
	Text               string               `json:"text"`               // Task text (required)
	FirstMove          Optional[string]     `json:"firstMove"`          // Commitment note recorded on activation
	ActiveSince        Optional[time.Time]  `json:"activeSince"`        // Set while status is active, cleared otherwise
	CompletedAt        Optional[string]     `json:"completedAt"`        // Calendar date of completion (DateLayout)
	CompletedTimestamp Optional[time.Time]  `json:"completedTimestamp"` // Exact completion time
	Status             Status               `json:"status"`             // Current status
	TotalTime          time.Duration        `json:"totalTime"`          // Accrued active time, excluding the in-progress session
	Order              int                  `json:"order"`              // Sort key among siblings, ascending
	DailyRepeat        bool                 `json:"dailyRepeat"`        // Completed task resets to idle when the date changes
	ID                 string               `json:"-"`                  // Task ID (stored as map key, not in value)
}

// IsRoot returns true if this is a root task (no parent).
func (t *Task) IsRoot() bool {
	return t.ParentID == nil
}

// IsActive returns true if the task is currently active.
func (t *Task) IsActive() bool {
	return t.Status == StatusActive
}

// SessionTime returns the elapsed time of the in-progress session,
// or 0 if the task is not active.
func (t *Task) SessionTime(now time.Time) time.Duration {
	since, ok := t.ActiveSince.Get()
	if !ok || t.Status != StatusActive {
		return 0
	}
	d := now.Sub(since)
	if d < 0 {
		return 0
	}
	return d
}

// DisplayTime returns the accrued time including the in-progress session.
func (t *Task) DisplayTime(now time.Time) time.Duration {
	return t.TotalTime + t.SessionTime(now)
}

// NeedsRollover reports whether a daily-repeat task completed on an earlier
// calendar date should be reset to idle.
func (t *Task) NeedsRollover(today string) bool {
	if !t.DailyRepeat || t.Status != StatusCompleted {
		return false
	}
	date, ok := t.CompletedAt.Get()
	if !ok {
		return false
	}
	return date != today
}

// TaskPatch describes a partial update to a task. Nil fields are omitted from
// the write and left untouched by the store; Optional fields carried by a
// non-nil pointer are written explicitly, including Absent (= clear).
type TaskPatch struct {
	Text               *string
	Status             *Status
	Order              *int
	TotalTime          *time.Duration
	DailyRepeat        *bool
	FirstMove          *Optional[string]
	ActiveSince        *Optional[time.Time]
	CompletedAt        *Optional[string]
	CompletedTimestamp *Optional[time.Time]
}

// IsEmpty returns true if the patch carries no fields.
func (p TaskPatch) IsEmpty() bool {
	return p.Text == nil && p.Status == nil && p.Order == nil &&
		p.TotalTime == nil && p.DailyRepeat == nil && p.FirstMove == nil &&
		p.ActiveSince == nil && p.CompletedAt == nil && p.CompletedTimestamp == nil
}

// Apply writes the patch onto a task in place.
func (p TaskPatch) Apply(t *Task) {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Order != nil {
		t.Order = *p.Order
	}
	if p.TotalTime != nil {
		t.TotalTime = *p.TotalTime
	}
	if p.DailyRepeat != nil {
		t.DailyRepeat = *p.DailyRepeat
	}
	if p.FirstMove != nil {
		t.FirstMove = *p.FirstMove
	}
	if p.ActiveSince != nil {
		t.ActiveSince = *p.ActiveSince
	}
	if p.CompletedAt != nil {
		t.CompletedAt = *p.CompletedAt
	}
	if p.CompletedTimestamp != nil {
		t.CompletedTimestamp = *p.CompletedTimestamp
	}
}

// Goal groups root-level tasks under a named objective.
type Goal struct {
	Created time.Time `json:"created"`
	Name    string    `json:"name"`
	TaskIDs []string  `json:"taskIDs"`
	ID      string    `json:"-"`
}

// Contains returns true if the goal references the given task.
func (g *Goal) Contains(taskID string) bool {
	for _, id := range g.TaskIDs {
		if id == taskID {
			return true
		}
	}
	return false
}
