package domain

import (
	"context"
	"time"
)

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	Initialize() error
}

// DocumentStore manages the user's single document.
type DocumentStore interface {
	// GetDocument retrieves the document. Returns nil if none exists yet.
	GetDocument() (*Document, error)

	// SaveDocument writes the document text, creating it on first write.
	SaveDocument(text string) error
}

// TaskStore manages task persistence.
type TaskStore interface {
	// Get retrieves a task by ID. Returns nil if not found.
	Get(id string) (*Task, error)

	// List retrieves all tasks as a flat list.
	List() ([]*Task, error)

	// Create stores a new task. The caller assigns the ID.
	Create(task *Task) error

	// Patch applies a partial update. Omitted fields are left untouched;
	// explicitly absent Optional fields are cleared.
	Patch(id string, patch TaskPatch) error

	// Delete removes a task by ID. Not recursive; the caller cascades.
	Delete(id string) error
}

// GoalStore manages goal persistence.
type GoalStore interface {
	// GetGoal retrieves a goal by ID. Returns nil if not found.
	GetGoal(id string) (*Goal, error)

	// ListGoals retrieves all goals.
	ListGoals() ([]*Goal, error)

	// SaveGoal creates or updates a goal.
	SaveGoal(goal *Goal) error

	// DeleteGoal removes a goal by ID.
	DeleteGoal(id string) error
}

// WatermarkStore persists the last-synced document text on the local device.
type WatermarkStore interface {
	// LoadWatermark returns the watermark, absent on a fresh installation.
	LoadWatermark() (Optional[string], error)

	// StoreWatermark records text as the last value local and remote agreed on.
	StoreWatermark(text string) error
}

// RemoteUpdate is a snapshot pushed by the remote store when data changes.
type RemoteUpdate struct {
	Document *Document // nil = no document exists
	Tasks    []*Task
}

// Watcher delivers the latest remote snapshot whenever the backing data changes.
type Watcher interface {
	// Watch returns a channel of updates. The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan RemoteUpdate, error)
}

// Completer produces a text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Logger provides leveled logging scoped to a task.
// An empty taskID logs to the global log only.
type Logger interface {
	Debug(taskID, category, msg string)
	Info(taskID, category, msg string)
	Warn(taskID, category, msg string)
	Error(taskID, category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
