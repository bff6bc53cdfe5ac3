package usecase

import (
	"context"
	"fmt"

	"github.com/chrct/chrct/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID string
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	DeletedIDs []string // The whole subtree, children before parent
}

// DeleteTask is the use case for deleting a task and its subtree. The store
// delete is non-recursive, so descendants are removed depth-first to avoid
// orphaned references.
type DeleteTask struct {
	tasks  domain.TaskStore
	goals  domain.GoalStore
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskStore, goals domain.GoalStore, logger domain.Logger) *DeleteTask {
	return &DeleteTask{
		tasks:  tasks,
		goals:  goals,
		logger: logger,
	}
}

// Execute deletes a task and all of its descendants.
func (uc *DeleteTask) Execute(_ context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	if _, err := getTask(uc.tasks, in.TaskID); err != nil {
		return nil, err
	}

	all, err := uc.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	ids := domain.Subtree(all, in.TaskID)
	for _, id := range ids {
		if err := uc.tasks.Delete(id); err != nil {
			return nil, fmt.Errorf("delete task %s: %w", id, err)
		}
	}

	if err := uc.removeFromGoals(in.TaskID); err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Info(in.TaskID, "task", fmt.Sprintf("deleted subtree of %d task(s)", len(ids)))
	}
	return &DeleteTaskOutput{DeletedIDs: ids}, nil
}

// removeFromGoals drops the deleted root from any goal that references it.
func (uc *DeleteTask) removeFromGoals(taskID string) error {
	if uc.goals == nil {
		return nil
	}
	goals, err := uc.goals.ListGoals()
	if err != nil {
		return fmt.Errorf("list goals: %w", err)
	}
	for _, g := range goals {
		if !g.Contains(taskID) {
			continue
		}
		kept := g.TaskIDs[:0]
		for _, id := range g.TaskIDs {
			if id != taskID {
				kept = append(kept, id)
			}
		}
		g.TaskIDs = kept
		if err := uc.goals.SaveGoal(g); err != nil {
			return fmt.Errorf("save goal: %w", err)
		}
	}
	return nil
}
