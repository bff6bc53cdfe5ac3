// Package usecase contains application use cases.
package usecase

import (
	"fmt"

	"github.com/chrct/chrct/internal/domain"
)

// getTask retrieves a task and normalizes "not found" into the domain error.
func getTask(tasks domain.TaskStore, id string) (*domain.Task, error) {
	task, err := tasks.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}
