package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/chrct/chrct/internal/domain"
)

// UncompleteTaskInput contains the parameters for reverting a completion.
type UncompleteTaskInput struct {
	TaskID string
}

// UncompleteTaskOutput contains the result of reverting a completion.
type UncompleteTaskOutput struct {
	Task *domain.Task
}

// UncompleteTask is the use case for the completed → idle transition.
// Completion bookkeeping is cleared with explicit nulls so a revived task
// does not retain a stale completion date.
type UncompleteTask struct {
	tasks  domain.TaskStore
	logger domain.Logger
}

// NewUncompleteTask creates a new UncompleteTask use case.
func NewUncompleteTask(tasks domain.TaskStore, logger domain.Logger) *UncompleteTask {
	return &UncompleteTask{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute reverts a completed task to idle.
func (uc *UncompleteTask) Execute(_ context.Context, in UncompleteTaskInput) (*UncompleteTaskOutput, error) {
	task, err := getTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}
	if task.Status != domain.StatusCompleted {
		return nil, fmt.Errorf("cannot uncomplete task in %s status: %w", task.Status, domain.ErrInvalidTransition)
	}

	status := domain.StatusIdle
	patch := domain.TaskPatch{
		Status:             &status,
		CompletedAt:        ptr(domain.None[string]()),
		CompletedTimestamp: ptr(domain.None[time.Time]()),
	}
	if err := uc.tasks.Patch(task.ID, patch); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	patch.Apply(task)

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", "uncompleted")
	}
	return &UncompleteTaskOutput{Task: task}, nil
}
