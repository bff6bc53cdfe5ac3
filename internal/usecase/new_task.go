package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/chrct/chrct/internal/domain"
	"github.com/google/uuid"
)

// NewTaskInput contains the parameters for creating a new task.
type NewTaskInput struct {
	ParentID    *string // Parent task ID (optional, nil = root task)
	Text        string  // Task text (required)
	DailyRepeat bool    // Reset to idle when the calendar date changes
}

// NewTaskOutput contains the result of creating a new task.
type NewTaskOutput struct {
	Task *domain.Task
}

// NewTask is the use case for creating a new task. The task is created idle
// with its order appended at the end of its sibling group.
type NewTask struct {
	tasks  domain.TaskStore
	clock  domain.Clock
	logger domain.Logger
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(tasks domain.TaskStore, clock domain.Clock, logger domain.Logger) *NewTask {
	return &NewTask{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute creates a new task with the given input.
func (uc *NewTask) Execute(_ context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}

	if in.ParentID != nil {
		parent, err := uc.tasks.Get(*in.ParentID)
		if err != nil {
			return nil, fmt.Errorf("get parent task: %w", err)
		}
		if parent == nil {
			return nil, domain.ErrParentNotFound
		}
	}

	order, err := uc.nextOrder(in.ParentID)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:          uuid.NewString(),
		ParentID:    in.ParentID,
		Text:        text,
		Status:      domain.StatusIdle,
		Order:       order,
		DailyRepeat: in.DailyRepeat,
		Created:     uc.clock.Now(),
	}
	if err := uc.tasks.Create(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("created: %q", text))
	}
	return &NewTaskOutput{Task: task}, nil
}

// nextOrder returns one past the highest order in the sibling group.
func (uc *NewTask) nextOrder(parentID *string) (int, error) {
	tasks, err := uc.tasks.List()
	if err != nil {
		return 0, fmt.Errorf("list tasks: %w", err)
	}
	order := 0
	for _, t := range tasks {
		if !sameParent(t.ParentID, parentID) {
			continue
		}
		if t.Order >= order {
			order = t.Order + 1
		}
	}
	return order, nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
