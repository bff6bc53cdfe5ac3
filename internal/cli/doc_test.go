package cli

import (
	"bytes"
	"testing"

	"github.com/chrct/chrct/internal/domain"
	"github.com/chrct/chrct/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocCountCommand(t *testing.T) {
	container := newTestContainer(testutil.NewMockTaskStore(), testClock())
	container.LocalDocs = &testutil.MockDocumentStore{Doc: &domain.Document{Text: "hello world\nsecond line"}}

	cmd := newDocCountCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "23 chars, 4 words, 2 lines")
}

func TestDocCountCommand_EmptyStore(t *testing.T) {
	container := newTestContainer(testutil.NewMockTaskStore(), testClock())

	cmd := newDocCountCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "0 chars")
}

func TestDocStatusCommand_NoRemote(t *testing.T) {
	container := newTestContainer(testutil.NewMockTaskStore(), testClock())

	cmd := newDocStatusCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.ErrorIs(t, err, domain.ErrNoRemote)
}

func TestDocStatusCommand_PushPending(t *testing.T) {
	container := newTestContainer(testutil.NewMockTaskStore(), testClock())
	local := &testutil.MockDocumentStore{Doc: &domain.Document{Text: "edited locally"}}
	remote := &testutil.MockDocumentStore{Doc: &domain.Document{Text: "base"}}
	container.LocalDocs = local
	container.RemoteDocs = remote
	container.Marks.(*testutil.MockWatermarkStore).Mark = domain.Some("base")

	cmd := newDocStatusCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "push")
	// Status is read-only; nothing may be written.
	assert.Empty(t, remote.Saves)
	assert.Empty(t, local.Saves)
}

func TestDocSyncCommand_Pushes(t *testing.T) {
	container := newTestContainer(testutil.NewMockTaskStore(), testClock())
	local := &testutil.MockDocumentStore{Doc: &domain.Document{Text: "edited locally"}}
	remote := &testutil.MockDocumentStore{Doc: &domain.Document{Text: "base"}}
	container.LocalDocs = local
	container.RemoteDocs = remote
	container.Marks.(*testutil.MockWatermarkStore).Mark = domain.Some("base")

	cmd := newDocSyncCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Pushed 14 chars")
	assert.Equal(t, []string{"edited locally"}, remote.Saves)
}

func TestDocPullCommand_OverwritesLocal(t *testing.T) {
	container := newTestContainer(testutil.NewMockTaskStore(), testClock())
	local := &testutil.MockDocumentStore{Doc: &domain.Document{Text: "stale"}}
	remote := &testutil.MockDocumentStore{Doc: &domain.Document{Text: "remote wins"}}
	container.LocalDocs = local
	container.RemoteDocs = remote

	cmd := newDocPullCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []string{"remote wins"}, local.Saves)
}
