package usecase

import (
	"context"
	"fmt"

	"github.com/chrct/chrct/internal/domain"
	"github.com/chrct/chrct/internal/sync"
)

// SyncDocumentInput contains the parameters for a one-shot document sync.
type SyncDocumentInput struct {
	Force  domain.SyncAction // SyncNone = decide from the three-way comparison
	DryRun bool              // Report the decision without applying it
}

// SyncDocumentOutput contains the result of the sync.
type SyncDocumentOutput struct {
	Action domain.SyncAction // What was (or would be) done
	Text   string            // Document text after the sync
	Stats  domain.TextStats
}

// SyncDocument reconciles the local document cache against the remote once,
// outside the live engine. Used by the doc push/pull/sync/status commands.
type SyncDocument struct {
	local  domain.DocumentStore
	remote domain.DocumentStore // nil when no remote is configured
	marks  domain.WatermarkStore
	logger domain.Logger
}

// NewSyncDocument creates a new SyncDocument use case.
func NewSyncDocument(local, remote domain.DocumentStore, marks domain.WatermarkStore, logger domain.Logger) *SyncDocument {
	return &SyncDocument{
		local:  local,
		remote: remote,
		marks:  marks,
		logger: logger,
	}
}

// Execute performs the sync.
func (uc *SyncDocument) Execute(_ context.Context, in SyncDocumentInput) (*SyncDocumentOutput, error) {
	if uc.remote == nil {
		return nil, domain.ErrNoRemote
	}

	localText := ""
	if doc, err := uc.local.GetDocument(); err != nil {
		return nil, fmt.Errorf("get local document: %w", err)
	} else if doc != nil {
		localText = doc.Text
	}

	remoteDoc, err := uc.remote.GetDocument()
	if err != nil {
		return nil, fmt.Errorf("get remote document: %w", err)
	}
	remoteText := ""
	if remoteDoc != nil {
		remoteText = remoteDoc.Text
	}

	mark, err := uc.marks.LoadWatermark()
	if err != nil {
		return nil, fmt.Errorf("load watermark: %w", err)
	}

	action := in.Force
	if action == domain.SyncNone {
		action = sync.Decide(localText, remoteDoc != nil, remoteText, mark)
	}

	text := localText
	if action == domain.SyncPull {
		text = remoteText
	}
	out := &SyncDocumentOutput{
		Action: action,
		Text:   text,
		Stats:  domain.CountText(text),
	}
	if in.DryRun {
		return out, nil
	}

	switch action {
	case domain.SyncPush:
		if err := uc.remote.SaveDocument(localText); err != nil {
			return nil, fmt.Errorf("push document: %w", err)
		}
		if err := uc.marks.StoreWatermark(localText); err != nil {
			return nil, fmt.Errorf("store watermark: %w", err)
		}
	case domain.SyncPull:
		if err := uc.local.SaveDocument(remoteText); err != nil {
			return nil, fmt.Errorf("save document: %w", err)
		}
		if err := uc.marks.StoreWatermark(remoteText); err != nil {
			return nil, fmt.Errorf("store watermark: %w", err)
		}
	case domain.SyncNone:
		// Already in agreement.
	}

	if uc.logger != nil {
		uc.logger.Info("", "sync", fmt.Sprintf("document sync: %s", action))
	}
	return out, nil
}
