package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/chrct/chrct/internal/domain"
)

// SplitTaskInput contains the parameters for decomposing a task.
type SplitTaskInput struct {
	TaskID string
	Max    int // Upper bound on created subtasks (0 = config default)
}

// SplitTaskOutput contains the created subtasks.
type SplitTaskOutput struct {
	Subtasks []*domain.Task
}

// SplitTask asks the completion endpoint to break a task into concrete
// subtasks and creates them as idle children.
type SplitTask struct {
	tasks       domain.TaskStore
	completer   domain.Completer
	newTask     *NewTask
	logger      domain.Logger
	maxSubtasks int
}

// NewSplitTask creates a new SplitTask use case. completer may be nil when
// no endpoint is configured; Execute then fails with ErrAINotConfigured.
func NewSplitTask(tasks domain.TaskStore, completer domain.Completer, newTask *NewTask, logger domain.Logger, maxSubtasks int) *SplitTask {
	if maxSubtasks <= 0 {
		maxSubtasks = domain.DefaultMaxSubtasks
	}
	return &SplitTask{
		tasks:       tasks,
		completer:   completer,
		newTask:     newTask,
		logger:      logger,
		maxSubtasks: maxSubtasks,
	}
}

// Execute decomposes a task into subtasks.
func (uc *SplitTask) Execute(ctx context.Context, in SplitTaskInput) (*SplitTaskOutput, error) {
	if uc.completer == nil {
		return nil, domain.ErrAINotConfigured
	}

	task, err := getTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	max := in.Max
	if max <= 0 || max > uc.maxSubtasks {
		max = uc.maxSubtasks
	}

	prompt := fmt.Sprintf(
		"Break the following task into at most %d concrete, independently completable subtasks. "+
			"Reply with one subtask per line and nothing else.\n\nTask: %s",
		max, task.Text,
	)
	completion, err := uc.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	lines := parseSubtaskLines(completion, max)
	if len(lines) == 0 {
		return nil, fmt.Errorf("completion contained no subtasks: %w", domain.ErrEmptyText)
	}

	out := &SplitTaskOutput{}
	for _, text := range lines {
		created, err := uc.newTask.Execute(ctx, NewTaskInput{ParentID: &task.ID, Text: text})
		if err != nil {
			return nil, err
		}
		out.Subtasks = append(out.Subtasks, created.Task)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("split into %d subtask(s)", len(out.Subtasks)))
	}
	return out, nil
}

// parseSubtaskLines extracts subtask texts from a completion, tolerating
// bullet and numbered list markers.
func parseSubtaskLines(completion string, max int) []string {
	var lines []string
	for _, line := range strings.Split(completion, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		for i, r := range line {
			if r >= '0' && r <= '9' {
				continue
			}
			if r == '.' || r == ')' {
				line = strings.TrimSpace(line[i+1:])
			}
			break
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == max {
			break
		}
	}
	return lines
}
