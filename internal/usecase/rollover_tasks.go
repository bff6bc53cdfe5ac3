package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/chrct/chrct/internal/domain"
)

// RolloverTasksOutput contains the result of a daily-repeat sweep.
type RolloverTasksOutput struct {
	ResetIDs []string // Tasks that were reset to idle
}

// RolloverTasks resets completed daily-repeat tasks back to idle once the
// calendar date has advanced past their completion date. The sweep runs on
// every load of the task list, so the reset is eventually applied rather
// than firing at midnight.
type RolloverTasks struct {
	tasks  domain.TaskStore
	clock  domain.Clock
	logger domain.Logger
}

// NewRolloverTasks creates a new RolloverTasks use case.
func NewRolloverTasks(tasks domain.TaskStore, clock domain.Clock, logger domain.Logger) *RolloverTasks {
	return &RolloverTasks{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute sweeps all tasks and resets the stale completed repeaters.
func (uc *RolloverTasks) Execute(_ context.Context) (*RolloverTasksOutput, error) {
	all, err := uc.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	today := uc.clock.Now().Format(domain.DateLayout)
	out := &RolloverTasksOutput{}
	for _, t := range all {
		if !t.NeedsRollover(today) {
			continue
		}

		status := domain.StatusIdle
		total := time.Duration(0)
		patch := domain.TaskPatch{
			Status:             &status,
			TotalTime:          &total,
			FirstMove:          ptr(domain.None[string]()),
			ActiveSince:        ptr(domain.None[time.Time]()),
			CompletedAt:        ptr(domain.None[string]()),
			CompletedTimestamp: ptr(domain.None[time.Time]()),
		}
		if err := uc.tasks.Patch(t.ID, patch); err != nil {
			return nil, fmt.Errorf("reset task %s: %w", t.ID, err)
		}
		patch.Apply(t)
		out.ResetIDs = append(out.ResetIDs, t.ID)

		if uc.logger != nil {
			uc.logger.Info(t.ID, "task", "daily repeat reset to idle")
		}
	}
	return out, nil
}
