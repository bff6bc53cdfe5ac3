package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/chrct/chrct/internal/domain"
	"github.com/google/uuid"
)

// NewGoalInput contains the parameters for creating a goal.
type NewGoalInput struct {
	Name    string
	TaskIDs []string // Initial members (root tasks only)
}

// NewGoalOutput contains the created goal.
type NewGoalOutput struct {
	Goal *domain.Goal
}

// NewGoal is the use case for creating a goal.
type NewGoal struct {
	goals  domain.GoalStore
	tasks  domain.TaskStore
	clock  domain.Clock
	logger domain.Logger
}

// NewNewGoal creates a new NewGoal use case.
func NewNewGoal(goals domain.GoalStore, tasks domain.TaskStore, clock domain.Clock, logger domain.Logger) *NewGoal {
	return &NewGoal{
		goals:  goals,
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute creates a goal.
func (uc *NewGoal) Execute(_ context.Context, in NewGoalInput) (*NewGoalOutput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrEmptyName
	}
	for _, id := range in.TaskIDs {
		if err := requireRootTask(uc.tasks, id); err != nil {
			return nil, err
		}
	}

	goal := &domain.Goal{
		ID:      uuid.NewString(),
		Name:    name,
		TaskIDs: in.TaskIDs,
		Created: uc.clock.Now(),
	}
	if err := uc.goals.SaveGoal(goal); err != nil {
		return nil, fmt.Errorf("save goal: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info("", "goal", fmt.Sprintf("created: %q", name))
	}
	return &NewGoalOutput{Goal: goal}, nil
}

// AddToGoalInput contains the parameters for adding a task to a goal.
type AddToGoalInput struct {
	GoalID string
	TaskID string
}

// AddToGoalOutput contains the updated goal.
type AddToGoalOutput struct {
	Goal *domain.Goal
}

// AddToGoal adds a root task to an existing goal.
type AddToGoal struct {
	goals  domain.GoalStore
	tasks  domain.TaskStore
	logger domain.Logger
}

// NewAddToGoal creates a new AddToGoal use case.
func NewAddToGoal(goals domain.GoalStore, tasks domain.TaskStore, logger domain.Logger) *AddToGoal {
	return &AddToGoal{
		goals:  goals,
		tasks:  tasks,
		logger: logger,
	}
}

// Execute adds a task to a goal. Adding a task that is already a member is a
// no-op.
func (uc *AddToGoal) Execute(_ context.Context, in AddToGoalInput) (*AddToGoalOutput, error) {
	goal, err := uc.goals.GetGoal(in.GoalID)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	if goal == nil {
		return nil, domain.ErrGoalNotFound
	}
	if err := requireRootTask(uc.tasks, in.TaskID); err != nil {
		return nil, err
	}

	if !goal.Contains(in.TaskID) {
		goal.TaskIDs = append(goal.TaskIDs, in.TaskID)
		if err := uc.goals.SaveGoal(goal); err != nil {
			return nil, fmt.Errorf("save goal: %w", err)
		}
	}
	return &AddToGoalOutput{Goal: goal}, nil
}

// GoalWithTasks is a goal with its member tasks resolved.
type GoalWithTasks struct {
	Goal  *domain.Goal
	Tasks []*domain.Task // Members that still exist, in goal order
}

// ListGoalsOutput contains all goals with members resolved.
type ListGoalsOutput struct {
	Goals []GoalWithTasks
}

// ListGoals lists goals with their member tasks resolved against the store.
type ListGoals struct {
	goals domain.GoalStore
	tasks domain.TaskStore
}

// NewListGoals creates a new ListGoals use case.
func NewListGoals(goals domain.GoalStore, tasks domain.TaskStore) *ListGoals {
	return &ListGoals{
		goals: goals,
		tasks: tasks,
	}
}

// Execute lists all goals.
func (uc *ListGoals) Execute(_ context.Context) (*ListGoalsOutput, error) {
	goals, err := uc.goals.ListGoals()
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	all, err := uc.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	byID := make(map[string]*domain.Task, len(all))
	for _, t := range all {
		byID[t.ID] = t
	}

	out := &ListGoalsOutput{}
	for _, g := range goals {
		entry := GoalWithTasks{Goal: g}
		for _, id := range g.TaskIDs {
			if t, ok := byID[id]; ok {
				entry.Tasks = append(entry.Tasks, t)
			}
		}
		out.Goals = append(out.Goals, entry)
	}
	return out, nil
}

// requireRootTask verifies that the task exists and has no parent.
func requireRootTask(tasks domain.TaskStore, id string) error {
	task, err := getTask(tasks, id)
	if err != nil {
		return err
	}
	if !task.IsRoot() {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotRootTask)
	}
	return nil
}
