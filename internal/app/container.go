// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrct/chrct/internal/domain"
	"github.com/chrct/chrct/internal/infra/ai"
	"github.com/chrct/chrct/internal/infra/config"
	"github.com/chrct/chrct/internal/infra/jsonstore"
	"github.com/chrct/chrct/internal/infra/logging"
	"github.com/chrct/chrct/internal/infra/remote"
	"github.com/chrct/chrct/internal/sync"
	"github.com/chrct/chrct/internal/usecase"
)

// Paths holds the resolved filesystem locations.
type Paths struct {
	ConfigDir string // Config directory (config.toml)
	DataDir   string // Data directory (store, logs)
	StorePath string // Path to the local JSON store
}

// newPaths resolves the XDG directories.
func newPaths(configDir string) Paths {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	dataDir := domain.DataDir(dataHome)
	return Paths{
		ConfigDir: configDir,
		DataDir:   dataDir,
		StorePath: domain.StorePath(dataDir),
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks      domain.TaskStore
	Goals      domain.GoalStore
	Docs       domain.DocumentStore // Backend for the live sync engine
	LocalDocs  domain.DocumentStore // On-device document cache
	RemoteDocs domain.DocumentStore // nil when no remote is configured
	Marks      domain.WatermarkStore
	Watcher    domain.Watcher // nil when no remote is configured
	Completer  domain.Completer
	Clock      domain.Clock

	// Pointer fields
	Logger *logging.Logger

	// Configuration
	Config *domain.Config
	Paths  Paths
}

// New creates a Container from the on-disk configuration. The local JSON
// store backs the watermark and goals in every mode; when a remote is
// configured it also serves tasks and the document.
func New() (*Container, error) {
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	paths := newPaths(loader.Dir())
	clock := domain.RealClock{}
	logger := logging.New(paths.DataDir, logging.ParseLevel(cfg.Log.Level))

	local := jsonstore.New(paths.StorePath, clock)
	if err := local.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	c := &Container{
		Tasks:     local,
		Goals:     local,
		Docs:      local,
		LocalDocs: local,
		Marks:     local,
		Clock:     clock,
		Logger:    logger,
		Config:    cfg,
		Paths:     paths,
	}
	if client := ai.New(cfg.AI.URL, cfg.AI.Token, cfg.AI.Model); client != nil {
		c.Completer = client
	}

	if cfg.Remote.URL != "" {
		client, err := remote.New(cfg.Remote.URL, cfg.Remote.Token, cfg.WatchInterval())
		if err != nil {
			return nil, err
		}
		c.Tasks = client
		c.Docs = client
		c.RemoteDocs = client
		c.Watcher = client
	}

	return c, nil
}

// NewWithDeps creates a Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, tasks domain.TaskStore, goals domain.GoalStore, docs domain.DocumentStore, marks domain.WatermarkStore, clock domain.Clock) *Container {
	return &Container{
		Tasks:     tasks,
		Goals:     goals,
		Docs:      docs,
		LocalDocs: docs,
		Marks:     marks,
		Clock:     clock,
		Config:    cfg,
	}
}

// logger returns the domain logger, nil-safe for test containers.
func (c *Container) logger() domain.Logger {
	if c.Logger == nil {
		return nil
	}
	return c.Logger
}

// SyncEngine creates the document sync engine wired to the configured
// document backend.
func (c *Container) SyncEngine() *sync.Engine {
	return sync.New(c.Docs, c.Marks, c.logger(), c.Config.Debounce())
}

// UseCase factory methods

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Tasks, c.Clock, c.logger())
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks, c.RolloverTasksUseCase(), c.Clock)
}

// ActivateTaskUseCase returns a new ActivateTask use case.
func (c *Container) ActivateTaskUseCase() *usecase.ActivateTask {
	return usecase.NewActivateTask(c.Tasks, c.Clock, c.logger(), c.Config.GateWindow())
}

// StopTaskUseCase returns a new StopTask use case.
func (c *Container) StopTaskUseCase() *usecase.StopTask {
	return usecase.NewStopTask(c.Tasks, c.Clock, c.logger())
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Tasks, c.Clock, c.logger())
}

// UncompleteTaskUseCase returns a new UncompleteTask use case.
func (c *Container) UncompleteTaskUseCase() *usecase.UncompleteTask {
	return usecase.NewUncompleteTask(c.Tasks, c.logger())
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks, c.Goals, c.logger())
}

// ReorderTasksUseCase returns a new ReorderTasks use case.
func (c *Container) ReorderTasksUseCase() *usecase.ReorderTasks {
	return usecase.NewReorderTasks(c.Tasks, c.logger())
}

// RolloverTasksUseCase returns a new RolloverTasks use case.
func (c *Container) RolloverTasksUseCase() *usecase.RolloverTasks {
	return usecase.NewRolloverTasks(c.Tasks, c.Clock, c.logger())
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.NewTaskUseCase(), c.logger())
}

// SplitTaskUseCase returns a new SplitTask use case.
func (c *Container) SplitTaskUseCase() *usecase.SplitTask {
	return usecase.NewSplitTask(c.Tasks, c.Completer, c.NewTaskUseCase(), c.logger(), c.Config.AI.MaxSubtasks)
}

// NewGoalUseCase returns a new NewGoal use case.
func (c *Container) NewGoalUseCase() *usecase.NewGoal {
	return usecase.NewNewGoal(c.Goals, c.Tasks, c.Clock, c.logger())
}

// AddToGoalUseCase returns a new AddToGoal use case.
func (c *Container) AddToGoalUseCase() *usecase.AddToGoal {
	return usecase.NewAddToGoal(c.Goals, c.Tasks, c.logger())
}

// SyncDocumentUseCase returns a new SyncDocument use case.
func (c *Container) SyncDocumentUseCase() *usecase.SyncDocument {
	return usecase.NewSyncDocument(c.LocalDocs, c.RemoteDocs, c.Marks, c.logger())
}

// ListGoalsUseCase returns a new ListGoals use case.
func (c *Container) ListGoalsUseCase() *usecase.ListGoals {
	return usecase.NewListGoals(c.Goals, c.Tasks)
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.Logger != nil {
		return c.Logger.Close()
	}
	return nil
}
