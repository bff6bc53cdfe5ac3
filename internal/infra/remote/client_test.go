package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chrct/chrct/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresURL(t *testing.T) {
	_, err := New("", "token", time.Second)
	assert.ErrorIs(t, err, domain.ErrNoRemote)
}

func TestClient_GetDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/document", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(domain.Document{Text: "hello"})
	}))
	defer server.Close()

	client, err := New(server.URL, "secret", time.Second)
	require.NoError(t, err)

	doc, err := client.GetDocument()
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "hello", doc.Text)
}

func TestClient_GetDocument_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := New(server.URL, "", time.Second)
	require.NoError(t, err)

	doc, err := client.GetDocument()
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestClient_SaveDocument(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
	}))
	defer server.Close()

	client, err := New(server.URL, "", time.Second)
	require.NoError(t, err)

	require.NoError(t, client.SaveDocument("new text"))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/document", gotPath)
	assert.Equal(t, map[string]string{"text": "new text"}, gotBody)
}

func TestClient_Patch_SerializesExplicitNulls(t *testing.T) {
	var gotBody map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/tasks/t1", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
	}))
	defer server.Close()

	client, err := New(server.URL, "", time.Second)
	require.NoError(t, err)

	status := domain.StatusIdle
	total := 25 * time.Minute
	err = client.Patch("t1", domain.TaskPatch{
		Status:      &status,
		TotalTime:   &total,
		ActiveSince: &domain.Optional[time.Time]{},
	})
	require.NoError(t, err)

	// Cleared fields go over the wire as explicit null; omitted fields are
	// absent entirely so the backend leaves them untouched.
	assert.Equal(t, `"idle"`, string(gotBody["status"]))
	assert.Equal(t, "null", string(gotBody["activeSince"]))
	_, hasText := gotBody["text"]
	assert.False(t, hasText)
	_, hasCompleted := gotBody["completedAt"]
	assert.False(t, hasCompleted)
}

func TestClient_Patch_EmptyPatchRejectedLocally(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls++
	}))
	defer server.Close()

	client, err := New(server.URL, "", time.Second)
	require.NoError(t, err)

	err = client.Patch("t1", domain.TaskPatch{})
	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
	assert.Zero(t, calls)
}

func TestClient_Get_RoundTripsID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks/t1", r.URL.Path)
		_, _ = fmt.Fprint(w, `{"id":"t1","text":"write the report","status":"idle"}`)
	}))
	defer server.Close()

	client, err := New(server.URL, "", time.Second)
	require.NoError(t, err)

	task, err := client.Get("t1")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "t1", task.ID)
	assert.Equal(t, "write the report", task.Text)
}

func TestClient_ServerErrorIsRemoteUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := New(server.URL, "", time.Second)
	require.NoError(t, err)

	_, err = client.List()
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)

	err = client.SaveDocument("text")
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}

func TestClient_Watch_DeliversOnRevisionChange(t *testing.T) {
	var rev atomic.Int32
	rev.Store(1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/state", r.URL.Path)
		n := rev.Load()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"revision": fmt.Sprintf("r%d", n),
			"document": domain.Document{Text: fmt.Sprintf("text %d", n)},
			"tasks":    []any{},
		})
	}))
	defer server.Close()

	client, err := New(server.URL, "", 10*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := client.Watch(ctx)
	require.NoError(t, err)

	first := receiveUpdate(t, ch)
	require.NotNil(t, first.Document)
	assert.Equal(t, "text 1", first.Document.Text)

	// The same revision is not redelivered; bumping it is.
	rev.Store(2)
	second := receiveUpdate(t, ch)
	require.NotNil(t, second.Document)
	assert.Equal(t, "text 2", second.Document.Text)

	cancel()
	assertClosed(t, ch)
}

func receiveUpdate(t *testing.T, ch <-chan domain.RemoteUpdate) domain.RemoteUpdate {
	t.Helper()
	select {
	case update := <-ch:
		return update
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a remote update")
		return domain.RemoteUpdate{}
	}
}

func assertClosed(t *testing.T, ch <-chan domain.RemoteUpdate) {
	t.Helper()
	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
