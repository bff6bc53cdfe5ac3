package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/chrct/chrct/internal/domain"
)

// CompleteTaskInput contains the parameters for completing a task.
type CompleteTaskInput struct {
	TaskID string
}

// CompleteTaskOutput contains the result of completing a task.
type CompleteTaskOutput struct {
	Task *domain.Task // The completed task, with the session accrued
}

// CompleteTask is the use case for the active → completed transition.
// The in-progress session is folded into TotalTime and ActiveSince is
// cleared with an explicit null.
type CompleteTask struct {
	tasks  domain.TaskStore
	clock  domain.Clock
	logger domain.Logger
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(tasks domain.TaskStore, clock domain.Clock, logger domain.Logger) *CompleteTask {
	return &CompleteTask{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute marks a task as completed.
func (uc *CompleteTask) Execute(_ context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	task, err := getTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}
	if task.Status != domain.StatusActive {
		return nil, fmt.Errorf("cannot complete task in %s status (must be active): %w", task.Status, domain.ErrInvalidTransition)
	}

	now := uc.clock.Now()
	total := task.TotalTime + task.SessionTime(now)

	status := domain.StatusCompleted
	patch := domain.TaskPatch{
		Status:             &status,
		TotalTime:          &total,
		ActiveSince:        ptr(domain.None[time.Time]()),
		CompletedAt:        ptr(domain.Some(now.Format(domain.DateLayout))),
		CompletedTimestamp: ptr(domain.Some(now)),
	}
	if err := uc.tasks.Patch(task.ID, patch); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	patch.Apply(task)

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("completed (total %s)", total))
	}
	return &CompleteTaskOutput{Task: task}, nil
}
