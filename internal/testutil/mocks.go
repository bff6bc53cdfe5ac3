// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"time"

	"github.com/chrct/chrct/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MockTaskStore is a test double for domain.TaskStore.
type MockTaskStore struct {
	Tasks     map[string]*domain.Task
	GetErr    error
	CreateErr error
	PatchErr  error
	DeleteErr error
	Deleted   []string // IDs in deletion order
	Patches   []string // IDs in patch order
}

// NewMockTaskStore creates a new MockTaskStore with an initialized map.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{Tasks: make(map[string]*domain.Task)}
}

// Add is a test helper that stores a task directly.
func (m *MockTaskStore) Add(task *domain.Task) *domain.Task {
	m.Tasks[task.ID] = task
	return task
}

// Get retrieves a task by ID.
func (m *MockTaskStore) Get(id string) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Tasks[id], nil
}

// List returns all tasks.
func (m *MockTaskStore) List() ([]*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Create stores a new task.
func (m *MockTaskStore) Create(task *domain.Task) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Tasks[task.ID] = task
	return nil
}

// Patch applies a partial update.
func (m *MockTaskStore) Patch(id string, patch domain.TaskPatch) error {
	if m.PatchErr != nil {
		return m.PatchErr
	}
	if patch.IsEmpty() {
		return domain.ErrNoFieldsToUpdate
	}
	task, ok := m.Tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	patch.Apply(task)
	m.Patches = append(m.Patches, id)
	return nil
}

// Delete removes a task by ID.
func (m *MockTaskStore) Delete(id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Tasks, id)
	m.Deleted = append(m.Deleted, id)
	return nil
}

// MockGoalStore is a test double for domain.GoalStore.
type MockGoalStore struct {
	Goals   map[string]*domain.Goal
	SaveErr error
}

// NewMockGoalStore creates a new MockGoalStore with an initialized map.
func NewMockGoalStore() *MockGoalStore {
	return &MockGoalStore{Goals: make(map[string]*domain.Goal)}
}

// GetGoal retrieves a goal by ID.
func (m *MockGoalStore) GetGoal(id string) (*domain.Goal, error) {
	return m.Goals[id], nil
}

// ListGoals returns all goals.
func (m *MockGoalStore) ListGoals() ([]*domain.Goal, error) {
	goals := make([]*domain.Goal, 0, len(m.Goals))
	for _, g := range m.Goals {
		goals = append(goals, g)
	}
	return goals, nil
}

// SaveGoal creates or updates a goal.
func (m *MockGoalStore) SaveGoal(goal *domain.Goal) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Goals[goal.ID] = goal
	return nil
}

// DeleteGoal removes a goal by ID.
func (m *MockGoalStore) DeleteGoal(id string) error {
	delete(m.Goals, id)
	return nil
}

// MockDocumentStore is a test double for domain.DocumentStore.
type MockDocumentStore struct {
	Doc      *domain.Document
	SaveErr  error
	SaveHook func(text string) // Called at the start of SaveDocument when set
	Saves    []string          // Texts in save order
	Clock    domain.Clock
}

// GetDocument returns the stored document.
func (m *MockDocumentStore) GetDocument() (*domain.Document, error) {
	return m.Doc, nil
}

// SaveDocument records the save and updates the document.
func (m *MockDocumentStore) SaveDocument(text string) error {
	if m.SaveHook != nil {
		m.SaveHook(text)
	}
	if m.SaveErr != nil {
		return m.SaveErr
	}
	now := time.Time{}
	if m.Clock != nil {
		now = m.Clock.Now()
	}
	m.Doc = &domain.Document{Text: text, UpdatedAt: now}
	m.Saves = append(m.Saves, text)
	return nil
}

// MockWatermarkStore is a test double for domain.WatermarkStore.
type MockWatermarkStore struct {
	Mark    domain.Optional[string]
	LoadErr error
	Stores  []string // Texts in store order
}

// LoadWatermark returns the stored watermark.
func (m *MockWatermarkStore) LoadWatermark() (domain.Optional[string], error) {
	if m.LoadErr != nil {
		return domain.None[string](), m.LoadErr
	}
	return m.Mark, nil
}

// StoreWatermark records the watermark.
func (m *MockWatermarkStore) StoreWatermark(text string) error {
	m.Mark = domain.Some(text)
	m.Stores = append(m.Stores, text)
	return nil
}

// MockCompleter is a test double for domain.Completer.
type MockCompleter struct {
	Response string
	Err      error
	Prompts  []string // Prompts in call order
}

// Complete returns the configured response.
func (m *MockCompleter) Complete(_ context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Interface checks.
var (
	_ domain.Clock          = (*MockClock)(nil)
	_ domain.TaskStore      = (*MockTaskStore)(nil)
	_ domain.GoalStore      = (*MockGoalStore)(nil)
	_ domain.DocumentStore  = (*MockDocumentStore)(nil)
	_ domain.WatermarkStore = (*MockWatermarkStore)(nil)
	_ domain.Completer      = (*MockCompleter)(nil)
)
