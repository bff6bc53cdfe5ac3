package domain

import "time"

// Document is the user's single free-text document.
type Document struct {
	UpdatedAt time.Time `json:"updatedAt"` // Set by the store on every write
	Text      string    `json:"text"`
}

// SyncState describes the document sync engine's relationship to the remote store.
type SyncState string

const (
	SyncStateLoading SyncState = "loading" // Remote value not yet observed
	SyncStateSynced  SyncState = "synced"  // Local buffer matches the watermark
	SyncStateSaving  SyncState = "saving"  // A push is pending or in flight
	SyncStateOffline SyncState = "offline" // The last push failed; no retry until the next edit
)

// SyncAction is the outcome of the three-way reconciliation decision.
type SyncAction int

const (
	SyncNone SyncAction = iota // Local and remote already agree
	SyncPush                   // Write the local buffer to the remote store
	SyncPull                   // Replace the local buffer with the remote value
)

// String returns the action name for logs.
func (a SyncAction) String() string {
	switch a {
	case SyncPush:
		return "push"
	case SyncPull:
		return "pull"
	default:
		return "none"
	}
}
