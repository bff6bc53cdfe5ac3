// Package jsonstore provides a JSON file-based implementation of the chrct
// stores: tasks, goals, the document, and the sync watermark.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/chrct/chrct/internal/domain"
)

// storeData represents the JSON file structure.
type storeData struct {
	Tasks     map[string]*domain.Task `json:"tasks"`
	Goals     map[string]*domain.Goal `json:"goals"`
	Document  *domain.Document        `json:"document"`
	Watermark *string                 `json:"watermark"`
}

// Store implements the domain stores using a single JSON file.
type Store struct {
	clock    domain.Clock
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string, clock domain.Clock) *Store {
	return &Store{
		clock:    clock,
		path:     path,
		lockPath: path + ".lock",
	}
}

// === TaskStore ===

// Get retrieves a task by ID.
func (s *Store) Get(id string) (*domain.Task, error) {
	var task *domain.Task
	err := s.withLock(func(data *storeData) error {
		if t, ok := data.Tasks[id]; ok {
			task = t
			task.ID = id
		}
		return nil
	})
	return task, err
}

// List retrieves all tasks as a flat list.
func (s *Store) List() ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := s.withLock(func(data *storeData) error {
		for id, t := range data.Tasks {
			t.ID = id
			tasks = append(tasks, t)
		}
		return nil
	})

	// Sort by creation for consistent ordering
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return tasks, err
}

// Create stores a new task under its caller-assigned ID.
func (s *Store) Create(task *domain.Task) error {
	return s.withLockWrite(func(data *storeData) error {
		data.Tasks[task.ID] = task
		return nil
	})
}

// Patch applies a partial update to a task. Omitted fields are left
// untouched; explicitly absent Optional fields are cleared.
func (s *Store) Patch(id string, patch domain.TaskPatch) error {
	if patch.IsEmpty() {
		return domain.ErrNoFieldsToUpdate
	}
	return s.withLockWrite(func(data *storeData) error {
		task, ok := data.Tasks[id]
		if !ok {
			return domain.ErrTaskNotFound
		}
		patch.Apply(task)
		return nil
	})
}

// Delete removes a task by ID. Not recursive.
func (s *Store) Delete(id string) error {
	return s.withLockWrite(func(data *storeData) error {
		delete(data.Tasks, id)
		return nil
	})
}

// === GoalStore ===

// GetGoal retrieves a goal by ID.
func (s *Store) GetGoal(id string) (*domain.Goal, error) {
	var goal *domain.Goal
	err := s.withLock(func(data *storeData) error {
		if g, ok := data.Goals[id]; ok {
			goal = g
			goal.ID = id
		}
		return nil
	})
	return goal, err
}

// ListGoals retrieves all goals.
func (s *Store) ListGoals() ([]*domain.Goal, error) {
	var goals []*domain.Goal
	err := s.withLock(func(data *storeData) error {
		for id, g := range data.Goals {
			g.ID = id
			goals = append(goals, g)
		}
		return nil
	})

	slices.SortFunc(goals, func(a, b *domain.Goal) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return goals, err
}

// SaveGoal creates or updates a goal.
func (s *Store) SaveGoal(goal *domain.Goal) error {
	return s.withLockWrite(func(data *storeData) error {
		data.Goals[goal.ID] = goal
		return nil
	})
}

// DeleteGoal removes a goal by ID.
func (s *Store) DeleteGoal(id string) error {
	return s.withLockWrite(func(data *storeData) error {
		delete(data.Goals, id)
		return nil
	})
}

// === DocumentStore ===

// GetDocument retrieves the document. Returns nil if none exists yet.
func (s *Store) GetDocument() (*domain.Document, error) {
	var doc *domain.Document
	err := s.withLock(func(data *storeData) error {
		doc = data.Document
		return nil
	})
	return doc, err
}

// SaveDocument writes the document text, stamping UpdatedAt.
func (s *Store) SaveDocument(text string) error {
	return s.withLockWrite(func(data *storeData) error {
		data.Document = &domain.Document{
			Text:      text,
			UpdatedAt: s.clock.Now(),
		}
		return nil
	})
}

// === WatermarkStore ===

// LoadWatermark returns the last-synced text, absent on a fresh install.
func (s *Store) LoadWatermark() (domain.Optional[string], error) {
	mark := domain.None[string]()
	err := s.withLock(func(data *storeData) error {
		if data.Watermark != nil {
			mark = domain.Some(*data.Watermark)
		}
		return nil
	})
	return mark, err
}

// StoreWatermark records text as the last value local and remote agreed on.
func (s *Store) StoreWatermark(text string) error {
	return s.withLockWrite(func(data *storeData) error {
		data.Watermark = &text
		return nil
	})
}

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates an empty store file if it doesn't exist.
func (s *Store) Initialize() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil // Already exists
	}

	data := &storeData{
		Tasks: make(map[string]*domain.Task),
		Goals: make(map[string]*domain.Goal),
	}
	return s.write(data)
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}

	// Ensure maps are initialized
	if data.Tasks == nil {
		data.Tasks = make(map[string]*domain.Task)
	}
	if data.Goals == nil {
		data.Goals = make(map[string]*domain.Goal)
	}

	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Interface checks.
var (
	_ domain.TaskStore      = (*Store)(nil)
	_ domain.GoalStore      = (*Store)(nil)
	_ domain.DocumentStore  = (*Store)(nil)
	_ domain.WatermarkStore = (*Store)(nil)
)
