package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chrct/chrct/internal/domain"
)

// Gate is an open commitment window for activating a task. The task becomes
// active only if a non-empty first move is committed before the deadline;
// an expired gate closes silently with no state change.
type Gate struct {
	Deadline time.Time
	TaskID   string
}

// Remaining returns the time left in the commitment window.
func (g *Gate) Remaining(now time.Time) time.Duration {
	d := g.Deadline.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// ActivateTask is the use case for the idle → active transition.
// Activation is two-phase: Initiate opens the gate, Commit closes it.
type ActivateTask struct {
	tasks  domain.TaskStore
	clock  domain.Clock
	logger domain.Logger
	window time.Duration
}

// NewActivateTask creates a new ActivateTask use case.
func NewActivateTask(tasks domain.TaskStore, clock domain.Clock, logger domain.Logger, window time.Duration) *ActivateTask {
	return &ActivateTask{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
		window: window,
	}
}

// Initiate opens a commitment window for the task. It is refused outright if
// the task is not idle or any other task is already active.
func (uc *ActivateTask) Initiate(_ context.Context, taskID string) (*Gate, error) {
	task, err := getTask(uc.tasks, taskID)
	if err != nil {
		return nil, err
	}
	if !task.Status.CanTransitionTo(domain.StatusActive) {
		return nil, fmt.Errorf("cannot activate task in %s status: %w", task.Status, domain.ErrInvalidTransition)
	}

	if err := uc.checkExclusivity(); err != nil {
		return nil, err
	}

	return &Gate{
		TaskID:   taskID,
		Deadline: uc.clock.Now().Add(uc.window),
	}, nil
}

// Commit supplies the first move and performs the transition. The exclusivity
// check is repeated against the latest snapshot before any write.
func (uc *ActivateTask) Commit(_ context.Context, gate *Gate, firstMove string) (*domain.Task, error) {
	if gate == nil {
		return nil, domain.ErrGateClosed
	}
	firstMove = strings.TrimSpace(firstMove)
	if firstMove == "" {
		return nil, domain.ErrEmptyFirstMove
	}

	now := uc.clock.Now()
	if now.After(gate.Deadline) {
		return nil, domain.ErrGateExpired
	}

	task, err := getTask(uc.tasks, gate.TaskID)
	if err != nil {
		return nil, err
	}
	if !task.Status.CanTransitionTo(domain.StatusActive) {
		return nil, fmt.Errorf("cannot activate task in %s status: %w", task.Status, domain.ErrInvalidTransition)
	}
	if err := uc.checkExclusivity(); err != nil {
		return nil, err
	}

	status := domain.StatusActive
	patch := domain.TaskPatch{
		Status:      &status,
		FirstMove:   ptr(domain.Some(firstMove)),
		ActiveSince: ptr(domain.Some(now)),
	}
	if err := uc.tasks.Patch(task.ID, patch); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	patch.Apply(task)

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("activated with first move %q", firstMove))
	}
	return task, nil
}

// checkExclusivity enforces the single-active-task constraint against the
// latest snapshot of all tasks.
func (uc *ActivateTask) checkExclusivity() error {
	tasks, err := uc.tasks.List()
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	if active := domain.ActiveTask(tasks); active != nil {
		return fmt.Errorf("task %q is active: %w", active.Text, domain.ErrTaskAlreadyActive)
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
