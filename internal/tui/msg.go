package tui

import (
	"time"

	"github.com/chrct/chrct/internal/domain"
	"github.com/chrct/chrct/internal/sync"
	"github.com/chrct/chrct/internal/usecase"
)

// syncMsg carries an engine snapshot after a sync state change.
type syncMsg sync.Snapshot

// remoteMsg carries a remote data push.
type remoteMsg domain.RemoteUpdate

// watchReadyMsg carries the opened remote subscription channel.
type watchReadyMsg struct {
	ch <-chan domain.RemoteUpdate
}

// tasksMsg carries a reloaded task forest.
type tasksMsg struct {
	out *usecase.ListTasksOutput
}

// tickMsg advances the on-screen clock.
type tickMsg time.Time

// alertMsg surfaces a use case error to the status line.
type alertMsg struct {
	err error
}
