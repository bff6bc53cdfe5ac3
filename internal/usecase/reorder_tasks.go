package usecase

import (
	"context"
	"fmt"

	"github.com/chrct/chrct/internal/domain"
)

// ReorderTasksInput contains the parameters for reordering a sibling group.
type ReorderTasksInput struct {
	ParentID   *string  // The sibling group to reorder (nil = root tasks)
	OrderedIDs []string // Every sibling, in the new order
}

// ReorderTasksOutput contains the result of reordering.
type ReorderTasksOutput struct {
	Tasks []*domain.Task // The siblings with their new order values
}

// ReorderTasks rewrites every sibling's order field to its new positional
// index. Cross-parent moves are not supported; OrderedIDs must be exactly the
// sibling set under ParentID.
type ReorderTasks struct {
	tasks  domain.TaskStore
	logger domain.Logger
}

// NewReorderTasks creates a new ReorderTasks use case.
func NewReorderTasks(tasks domain.TaskStore, logger domain.Logger) *ReorderTasks {
	return &ReorderTasks{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute renumbers a sibling group.
func (uc *ReorderTasks) Execute(_ context.Context, in ReorderTasksInput) (*ReorderTasksOutput, error) {
	all, err := uc.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	siblings := make(map[string]*domain.Task)
	for _, t := range all {
		if sameParent(t.ParentID, in.ParentID) {
			siblings[t.ID] = t
		}
	}

	if len(in.OrderedIDs) != len(siblings) {
		return nil, fmt.Errorf("got %d ids for %d siblings: %w", len(in.OrderedIDs), len(siblings), domain.ErrNotSiblings)
	}
	seen := make(map[string]bool, len(in.OrderedIDs))
	for _, id := range in.OrderedIDs {
		if _, ok := siblings[id]; !ok || seen[id] {
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotSiblings)
		}
		seen[id] = true
	}

	out := make([]*domain.Task, 0, len(in.OrderedIDs))
	for i, id := range in.OrderedIDs {
		order := i
		if err := uc.tasks.Patch(id, domain.TaskPatch{Order: &order}); err != nil {
			return nil, fmt.Errorf("save task %s: %w", id, err)
		}
		task := siblings[id]
		task.Order = order
		out = append(out, task)
	}

	if uc.logger != nil {
		uc.logger.Info("", "task", fmt.Sprintf("renumbered %d sibling(s)", len(out)))
	}
	return &ReorderTasksOutput{Tasks: out}, nil
}
