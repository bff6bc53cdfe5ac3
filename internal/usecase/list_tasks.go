package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/chrct/chrct/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	IncludeCompleted bool // Include completed tasks (default hides those older than a day)
}

// ListTasksOutput contains the task forest with display times resolved.
type ListTasksOutput struct {
	Roots  []*domain.TaskNode
	Tasks  []*domain.Task // Flat list after the rollover sweep
	Active *domain.Task   // The single active task, or nil
	Now    time.Time      // Snapshot time used for display durations
}

// completedRetention is how long completed tasks stay visible in the list.
const completedRetention = 24 * time.Hour

// ListTasks is the use case for loading the task list. Every load applies
// the daily-repeat rollover sweep first, then reconstructs the forest with
// the active branch sorted to the top.
type ListTasks struct {
	tasks    domain.TaskStore
	rollover *RolloverTasks
	clock    domain.Clock
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskStore, rollover *RolloverTasks, clock domain.Clock) *ListTasks {
	return &ListTasks{
		tasks:    tasks,
		rollover: rollover,
		clock:    clock,
	}
}

// Execute lists tasks as a forest.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	if uc.rollover != nil {
		if _, err := uc.rollover.Execute(ctx); err != nil {
			return nil, err
		}
	}

	all, err := uc.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	now := uc.clock.Now()
	if !in.IncludeCompleted {
		all = filterRecent(all, now)
	}

	return &ListTasksOutput{
		Roots:  domain.BuildForest(all),
		Tasks:  all,
		Active: domain.ActiveTask(all),
		Now:    now,
	}, nil
}

// filterRecent hides completed tasks whose completion is older than the
// retention window. Their subtrees go with them.
func filterRecent(tasks []*domain.Task, now time.Time) []*domain.Task {
	hidden := make(map[string]bool)
	for _, t := range tasks {
		if t.Status != domain.StatusCompleted {
			continue
		}
		done, ok := t.CompletedTimestamp.Get()
		if ok && now.Sub(done) <= completedRetention {
			continue
		}
		hidden[t.ID] = true
	}
	if len(hidden) == 0 {
		return tasks
	}

	// Hide descendants of hidden tasks as well.
	for changed := true; changed; {
		changed = false
		for _, t := range tasks {
			if hidden[t.ID] || t.ParentID == nil {
				continue
			}
			if hidden[*t.ParentID] {
				hidden[t.ID] = true
				changed = true
			}
		}
	}

	var kept []*domain.Task
	for _, t := range tasks {
		if !hidden[t.ID] {
			kept = append(kept, t)
		}
	}
	return kept
}
