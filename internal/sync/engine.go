// Package sync reconciles the local document buffer with the remote store.
package sync

import (
	"fmt"
	gosync "sync"
	"time"

	"github.com/chrct/chrct/internal/domain"
)

// Snapshot is the engine state handed to observers after every change.
type Snapshot struct {
	Local string
	State domain.SyncState
}

// Engine keeps one local text buffer consistent with one remote document.
// All remote failures are absorbed into the offline state; they never
// propagate to the caller.
type Engine struct {
	docs     domain.DocumentStore
	marks    domain.WatermarkStore
	logger   domain.Logger
	onChange func(Snapshot)
	debounce time.Duration

	mu           gosync.Mutex
	local        string
	remote       string
	remoteKnown  bool // remote value observed at least once
	remoteExists bool
	mark         domain.Optional[string]
	markLoaded   bool
	state        domain.SyncState
	initialized  bool
	pending      bool
	inFlight     bool // a push is writing with the lock released
	timer        *time.Timer
}

// New creates an Engine. The debounce window controls steady-state save
// coalescing; zero means save immediately on flush.
func New(docs domain.DocumentStore, marks domain.WatermarkStore, logger domain.Logger, debounce time.Duration) *Engine {
	return &Engine{
		docs:     docs,
		marks:    marks,
		logger:   logger,
		debounce: debounce,
		state:    domain.SyncStateLoading,
	}
}

// SetOnChange registers a callback invoked after every state change.
// The callback runs without the engine lock held.
func (e *Engine) SetOnChange(fn func(Snapshot)) {
	e.mu.Lock()
	e.onChange = fn
	e.mu.Unlock()
}

// SeedLocal sets the editor buffer before reconciliation, without
// scheduling a save.
func (e *Engine) SeedLocal(text string) {
	e.mu.Lock()
	e.local = text
	e.mu.Unlock()
	e.emit()
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{Local: e.local, State: e.state}
}

// HandleRemote receives the latest remote document from the reactive
// subscription; nil means no document exists. The first delivery triggers the
// one-time initial reconciliation. Later deliveries adopt remote edits only
// when the local buffer has nothing unsaved (last writer wins).
func (e *Engine) HandleRemote(doc *domain.Document) {
	e.mu.Lock()
	e.remoteKnown = true
	e.remoteExists = doc != nil
	if doc != nil {
		e.remote = doc.Text
	} else {
		e.remote = ""
	}

	if !e.initialized {
		e.reconcileLocked()
		e.mu.Unlock()
		e.emit()
		return
	}

	// Steady state: adopt a remote edit only if the buffer matches the
	// watermark; unsaved local edits win on the next save.
	switch {
	case e.remoteExists && !e.pending && e.mark.Present && e.local == e.mark.Value && e.remote != e.local:
		e.local = e.remote
		e.setWatermarkLocked(e.remote)
		e.state = domain.SyncStateSynced
	case e.state == domain.SyncStateOffline && !e.pending:
		// The subscription is delivering again after a failed save; re-push
		// the edits made while offline.
		e.pushLocked()
	}
	e.mu.Unlock()
	e.emit()
}

// Decide classifies the initial three-way comparison into an action.
// mark is the last text value both sides are known to have agreed on.
func Decide(local string, remoteExists bool, remote string, mark domain.Optional[string]) domain.SyncAction {
	if !remoteExists {
		if local != "" {
			return domain.SyncPush
		}
		return domain.SyncNone
	}

	last, ok := mark.Get()
	if !ok {
		// Fresh device: adopt remote into an empty buffer, otherwise local
		// work from this session takes priority.
		if local == "" {
			return domain.SyncPull
		}
		if local != remote {
			return domain.SyncPush
		}
		return domain.SyncNone
	}

	hasLocal := local != last
	hasRemote := remote != last
	switch {
	case hasLocal && !hasRemote:
		return domain.SyncPush
	case !hasLocal && hasRemote:
		return domain.SyncPull
	case hasLocal && hasRemote:
		// Conflict: the most recently edited local copy wins.
		return domain.SyncPush
	case local != remote:
		// No classified change yet the values diverge; self-heal toward local.
		return domain.SyncPush
	default:
		return domain.SyncNone
	}
}

// reconcileLocked runs the one-time initial reconciliation. Requires the
// remote value to be loaded and the lock to be held.
func (e *Engine) reconcileLocked() {
	e.loadWatermarkLocked()

	action := Decide(e.local, e.remoteExists, e.remote, e.mark)
	e.logf("sync", "initial reconcile: %s", action)
	e.initialized = true

	switch action {
	case domain.SyncPull:
		e.local = e.remote
		e.setWatermarkLocked(e.remote)
		e.state = domain.SyncStateSynced
	case domain.SyncPush:
		e.pushLocked()
	default:
		e.setWatermarkLocked(e.local)
		e.state = domain.SyncStateSynced
	}
}

// SetLocal updates the buffer from an editor change and schedules a
// debounced save. Edits within the window collapse into a single write of
// the latest buffer.
func (e *Engine) SetLocal(text string) {
	e.mu.Lock()
	e.local = text

	if !e.initialized {
		e.mu.Unlock()
		e.emit()
		return
	}

	if e.mark.Present && text == e.mark.Value {
		e.pending = false
		e.stopTimerLocked()
		e.state = domain.SyncStateSynced
		e.mu.Unlock()
		e.emit()
		return
	}

	e.pending = true
	e.state = domain.SyncStateSaving
	e.stopTimerLocked()
	if e.debounce <= 0 {
		e.mu.Unlock()
		e.emit()
		return
	}
	e.timer = time.AfterFunc(e.debounce, e.flushPending)
	e.mu.Unlock()
	e.emit()
}

// Flush writes any pending edit immediately. Used on shutdown and when the
// debounce window is zero.
func (e *Engine) Flush() {
	e.flushPending()
}

// Close cancels any scheduled save without writing it.
func (e *Engine) Close() {
	e.mu.Lock()
	e.stopTimerLocked()
	e.mu.Unlock()
}

func (e *Engine) flushPending() {
	e.mu.Lock()
	e.stopTimerLocked()
	if !e.pending || !e.initialized {
		e.mu.Unlock()
		return
	}
	e.pending = false
	e.pushLocked()
	e.mu.Unlock()
	e.emit()
}

// pushLocked writes the current buffer to the remote store. The lock is
// released for the duration of the write so edits are never blocked behind a
// stalled remote, then re-acquired to apply the result. On failure the
// engine goes offline; the next edit or reconciliation retries.
func (e *Engine) pushLocked() {
	if e.inFlight {
		return
	}
	e.inFlight = true
	e.state = domain.SyncStateSaving
	text := e.local

	e.mu.Unlock()
	err := e.docs.SaveDocument(text)
	e.mu.Lock()
	e.inFlight = false

	if err != nil {
		e.logf("sync", "push failed: %v", err)
		e.state = domain.SyncStateOffline
		return
	}
	e.setWatermarkLocked(text)
	if e.local == text && !e.pending {
		e.state = domain.SyncStateSynced
	}
}

func (e *Engine) loadWatermarkLocked() {
	if e.markLoaded {
		return
	}
	mark, err := e.marks.LoadWatermark()
	if err != nil {
		e.logf("sync", "load watermark: %v", err)
		mark = domain.None[string]()
	}
	e.mark = mark
	e.markLoaded = true
}

func (e *Engine) setWatermarkLocked(text string) {
	e.mark = domain.Some(text)
	e.markLoaded = true
	if err := e.marks.StoreWatermark(text); err != nil {
		e.logf("sync", "store watermark: %v", err)
	}
}

func (e *Engine) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) emit() {
	e.mu.Lock()
	fn := e.onChange
	snap := Snapshot{Local: e.local, State: e.state}
	e.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

func (e *Engine) logf(category, format string, args ...any) {
	if e.logger == nil {
		return
	}
	e.logger.Info("", category, fmt.Sprintf(format, args...))
}
