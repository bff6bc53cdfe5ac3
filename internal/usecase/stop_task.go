package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/chrct/chrct/internal/domain"
)

// StopTaskInput contains the parameters for stopping an active task.
type StopTaskInput struct {
	TaskID string
}

// StopTaskOutput contains the result of stopping a task.
type StopTaskOutput struct {
	Task    *domain.Task
	Session time.Duration // Length of the session that was just accrued
}

// StopTask is the use case for the active → idle transition. The session is
// accrued into TotalTime exactly as on completion; completion bookkeeping is
// left untouched.
type StopTask struct {
	tasks  domain.TaskStore
	clock  domain.Clock
	logger domain.Logger
}

// NewStopTask creates a new StopTask use case.
func NewStopTask(tasks domain.TaskStore, clock domain.Clock, logger domain.Logger) *StopTask {
	return &StopTask{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute stops an active task.
func (uc *StopTask) Execute(_ context.Context, in StopTaskInput) (*StopTaskOutput, error) {
	task, err := getTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}
	if task.Status != domain.StatusActive {
		return nil, fmt.Errorf("cannot stop task in %s status (must be active): %w", task.Status, domain.ErrInvalidTransition)
	}

	now := uc.clock.Now()
	session := task.SessionTime(now)
	total := task.TotalTime + session

	status := domain.StatusIdle
	patch := domain.TaskPatch{
		Status:      &status,
		TotalTime:   &total,
		ActiveSince: ptr(domain.None[time.Time]()),
	}
	if err := uc.tasks.Patch(task.ID, patch); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	patch.Apply(task)

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("stopped after %s (total %s)", session, total))
	}
	return &StopTaskOutput{Task: task, Session: session}, nil
}
