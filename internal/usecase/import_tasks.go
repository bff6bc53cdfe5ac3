package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/chrct/chrct/internal/domain"
	"gopkg.in/yaml.v3"
)

// ImportTasksInput contains the parameters for importing a task tree.
type ImportTasksInput struct {
	ParentID *string // Attach the imported roots under this task (optional)
	Content  []byte  // YAML task tree
	DryRun   bool    // Parse and validate without creating tasks
}

// ImportedTask describes one task that was (or would be) created. Depth
// carries the tree shape so dry runs can preview the nesting before any ID
// exists.
type ImportedTask struct {
	ParentID *string
	ID       string
	Text     string
	Depth    int
}

// ImportTasksOutput contains the result of the import.
type ImportTasksOutput struct {
	Tasks []ImportedTask
}

// importNode is the YAML shape of one task in the import file.
type importNode struct {
	Text        string       `yaml:"text"`
	DailyRepeat bool         `yaml:"dailyRepeat"`
	Children    []importNode `yaml:"children"`
}

// ImportTasks creates a tree of tasks from a YAML file, parents before
// children, each appended at the end of its sibling group.
type ImportTasks struct {
	newTask *NewTask
	logger  domain.Logger
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(newTask *NewTask, logger domain.Logger) *ImportTasks {
	return &ImportTasks{
		newTask: newTask,
		logger:  logger,
	}
}

// Execute imports tasks from the given YAML content.
func (uc *ImportTasks) Execute(ctx context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	var nodes []importNode
	if err := yaml.Unmarshal(in.Content, &nodes); err != nil {
		return nil, fmt.Errorf("parse import file: %w", err)
	}
	if err := validateImport(nodes); err != nil {
		return nil, err
	}

	out := &ImportTasksOutput{}
	if in.DryRun {
		collectImport(nodes, in.ParentID, 0, out)
		return out, nil
	}

	if err := uc.create(ctx, nodes, in.ParentID, 0, out); err != nil {
		return nil, err
	}
	if uc.logger != nil {
		uc.logger.Info("", "task", fmt.Sprintf("imported %d task(s)", len(out.Tasks)))
	}
	return out, nil
}

func validateImport(nodes []importNode) error {
	for _, n := range nodes {
		if strings.TrimSpace(n.Text) == "" {
			return domain.ErrEmptyText
		}
		if err := validateImport(n.Children); err != nil {
			return err
		}
	}
	return nil
}

// collectImport mirrors create for dry runs. Children have no ID to link to
// yet, so only the depth records the nesting.
func collectImport(nodes []importNode, parentID *string, depth int, out *ImportTasksOutput) {
	for _, n := range nodes {
		out.Tasks = append(out.Tasks, ImportedTask{ParentID: parentID, Text: strings.TrimSpace(n.Text), Depth: depth})
		collectImport(n.Children, nil, depth+1, out)
	}
}

func (uc *ImportTasks) create(ctx context.Context, nodes []importNode, parentID *string, depth int, out *ImportTasksOutput) error {
	for _, n := range nodes {
		created, err := uc.newTask.Execute(ctx, NewTaskInput{
			ParentID:    parentID,
			Text:        n.Text,
			DailyRepeat: n.DailyRepeat,
		})
		if err != nil {
			return err
		}
		task := created.Task
		out.Tasks = append(out.Tasks, ImportedTask{ParentID: parentID, ID: task.ID, Text: task.Text, Depth: depth})
		if err := uc.create(ctx, n.Children, &task.ID, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}
