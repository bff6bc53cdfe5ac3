// Package remote provides an HTTP client for the hosted chrct backend.
// All queries and mutations are scoped to the authenticated user by the
// bearer token; the client never sees another user's records.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/chrct/chrct/internal/domain"
)

// Client implements the remote document and task stores plus the reactive
// watch subscription.
type Client struct {
	http     *http.Client
	base     *url.URL
	token    string
	interval time.Duration
}

// New creates a Client for the given base URL.
func New(baseURL, token string, interval time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, domain.ErrNoRemote
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote url: %w", err)
	}
	if interval <= 0 {
		interval = time.Duration(domain.DefaultWatchInterval) * time.Second
	}
	return &Client{
		http:     &http.Client{Timeout: 15 * time.Second},
		base:     base,
		token:    token,
		interval: interval,
	}, nil
}

// wireTask is the task representation on the wire, with the ID inline.
type wireTask struct {
	domain.Task
	ID string `json:"id"`
}

func toWire(t *domain.Task) wireTask {
	return wireTask{Task: *t, ID: t.ID}
}

func fromWire(w wireTask) *domain.Task {
	task := w.Task
	task.ID = w.ID
	return &task
}

// === DocumentStore ===

// GetDocument retrieves the user's document. Returns nil if none exists.
func (c *Client) GetDocument() (*domain.Document, error) {
	var doc domain.Document
	found, err := c.getJSON(context.Background(), "/api/document", &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &doc, nil
}

// SaveDocument writes the document text; the backend stamps UpdatedAt.
func (c *Client) SaveDocument(text string) error {
	body := map[string]string{"text": text}
	return c.send(context.Background(), http.MethodPut, "/api/document", body)
}

// === TaskStore ===

// Get retrieves a task by ID. Returns nil if not found.
func (c *Client) Get(id string) (*domain.Task, error) {
	var w wireTask
	found, err := c.getJSON(context.Background(), "/api/tasks/"+url.PathEscape(id), &w)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return fromWire(w), nil
}

// List retrieves all tasks as a flat list.
func (c *Client) List() ([]*domain.Task, error) {
	var payload struct {
		Tasks []wireTask `json:"tasks"`
	}
	if _, err := c.getJSON(context.Background(), "/api/tasks", &payload); err != nil {
		return nil, err
	}
	tasks := make([]*domain.Task, 0, len(payload.Tasks))
	for _, w := range payload.Tasks {
		tasks = append(tasks, fromWire(w))
	}
	return tasks, nil
}

// Create stores a new task.
func (c *Client) Create(task *domain.Task) error {
	return c.send(context.Background(), http.MethodPost, "/api/tasks", toWire(task))
}

// Patch applies a partial update. Only fields carried by the patch are
// serialized; Optional fields are written explicitly, null meaning clear.
func (c *Client) Patch(id string, patch domain.TaskPatch) error {
	if patch.IsEmpty() {
		return domain.ErrNoFieldsToUpdate
	}
	body := map[string]any{}
	if patch.Text != nil {
		body["text"] = *patch.Text
	}
	if patch.Status != nil {
		body["status"] = *patch.Status
	}
	if patch.Order != nil {
		body["order"] = *patch.Order
	}
	if patch.TotalTime != nil {
		body["totalTime"] = *patch.TotalTime
	}
	if patch.DailyRepeat != nil {
		body["dailyRepeat"] = *patch.DailyRepeat
	}
	if patch.FirstMove != nil {
		body["firstMove"] = *patch.FirstMove
	}
	if patch.ActiveSince != nil {
		body["activeSince"] = *patch.ActiveSince
	}
	if patch.CompletedAt != nil {
		body["completedAt"] = *patch.CompletedAt
	}
	if patch.CompletedTimestamp != nil {
		body["completedTimestamp"] = *patch.CompletedTimestamp
	}
	return c.send(context.Background(), http.MethodPatch, "/api/tasks/"+url.PathEscape(id), body)
}

// Delete removes a task by ID. Not recursive; the caller cascades.
func (c *Client) Delete(id string) error {
	return c.send(context.Background(), http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil)
}

// === Watcher ===

// statePayload is the full user snapshot returned by /api/state.
type statePayload struct {
	Document *domain.Document `json:"document"`
	Tasks    []wireTask       `json:"tasks"`
	Revision string           `json:"revision"`
}

// Watch polls the backend and delivers a snapshot whenever the revision
// advances. The channel is closed when ctx is done.
func (c *Client) Watch(ctx context.Context) (<-chan domain.RemoteUpdate, error) {
	ch := make(chan domain.RemoteUpdate, 1)
	go func() {
		defer close(ch)
		lastRev := ""
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			var payload statePayload
			found, err := c.getJSON(ctx, "/api/state?since="+url.QueryEscape(lastRev), &payload)
			if err == nil && found && payload.Revision != lastRev {
				lastRev = payload.Revision
				tasks := make([]*domain.Task, 0, len(payload.Tasks))
				for _, w := range payload.Tasks {
					tasks = append(tasks, fromWire(w))
				}
				select {
				case ch <- domain.RemoteUpdate{Document: payload.Document, Tasks: tasks}:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

// getJSON performs a GET and decodes the response. Returns found=false on 404.
func (c *Client) getJSON(ctx context.Context, path string, out any) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 300:
		return false, fmt.Errorf("%w: GET %s: %s", domain.ErrRemoteUnavailable, path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return true, nil
}

// send performs a mutating request with a JSON body.
func (c *Client) send(ctx context.Context, method, path string, body any) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		buf = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, buf)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s: %s", domain.ErrRemoteUnavailable, method, path, resp.Status)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.ResolveReference(ref).String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Interface checks.
var (
	_ domain.DocumentStore = (*Client)(nil)
	_ domain.TaskStore     = (*Client)(nil)
	_ domain.Watcher       = (*Client)(nil)
)
