// Package sync owns the reconciliation between the in-memory planner stores
// and the remote document store: one subscription per attached identity,
// debounced pushes of local-origin changes, first-run migration from the
// legacy local snapshot, and the loop-avoidance rule that a remote-origin
// update never triggers an outbound write.
package sync

import (
	"context"
	gosync "sync"
	"time"

	"scholarsync/internal/domain"
	"scholarsync/internal/errors"
	"scholarsync/internal/legacy"
	"scholarsync/internal/logging"
	"scholarsync/internal/remote"
)

const (
	// DefaultDebounceWindow is the quiet period after the last local
	// mutation before the planner snapshot is pushed.
	DefaultDebounceWindow = time.Second

	// DefaultWriteTimeout bounds a single outbound document write.
	DefaultWriteTimeout = 5 * time.Second
)

// StateSource is the reconciler's view of the planner state it mirrors. The
// session owning the stores implements it. ApplyRemote carries the remote
// origin by construction: implementations replace store contents without
// reporting a local change back to the reconciler.
type StateSource interface {
	// Snapshot returns the current planner state.
	Snapshot() domain.Snapshot

	// ApplyRemote replaces the planner state with a remote-origin snapshot.
	ApplyRemote(snap domain.Snapshot)
}

// StatusListener observes reconciler state transitions.
type StatusListener func(state State)

// ErrorListener observes surfaced failures: remote read and write errors and
// migration fallbacks. Failures never clear in-memory state.
type ErrorListener func(err error)

// Config holds reconciler tuning; zero values fall back to defaults.
type Config struct {
	DebounceWindow time.Duration
	WriteTimeout   time.Duration
	Scheduler      Scheduler
}

// Reconciler mediates between the planner stores and the remote document
// store for one identity at a time.
type Reconciler struct {
	store     remote.Store
	legacy    legacy.Store
	source    StateSource
	scheduler Scheduler
	debounce  time.Duration
	writeTO   time.Duration

	mu            gosync.Mutex
	state         State
	lastErr       error
	userID        string
	generation    uint64
	unsubscribe   func()
	cancelPending func()
	lastVersion   int64
	loaded        bool
	loadedCh      chan struct{}
	migrated      bool
	writing       bool
	pendingAgain  bool
	onStatus      StatusListener
	onError       ErrorListener
}

// New creates a detached reconciler
func New(store remote.Store, legacySnapshots legacy.Store, source StateSource, cfg Config) *Reconciler {
	if cfg.DebounceWindow <= 0 {
		cfg.DebounceWindow = DefaultDebounceWindow
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = NewTimerScheduler()
	}
	return &Reconciler{
		store:     store,
		legacy:    legacySnapshots,
		source:    source,
		scheduler: cfg.Scheduler,
		debounce:  cfg.DebounceWindow,
		writeTO:   cfg.WriteTimeout,
		state:     StateDetached,
	}
}

// OnStatusChange registers the listener notified on every state transition
func (r *Reconciler) OnStatusChange(l StatusListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onStatus = l
}

// OnError registers the listener notified on surfaced failures
func (r *Reconciler) OnError(l ErrorListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = l
}

// State returns the current lifecycle state
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// LastError returns the most recently surfaced failure, if any
func (r *Reconciler) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Attach binds the reconciler to an identity and subscribes to its remote
// document. Any previous attachment is fully torn down first, so a stale
// snapshot callback can never resurrect discarded data.
func (r *Reconciler) Attach(userID string) {
	r.detach()

	r.mu.Lock()
	r.userID = userID
	r.loadedCh = make(chan struct{})
	gen := r.generation
	notify := r.transitionLocked(StateAttaching, nil)
	r.mu.Unlock()
	run(notify)

	unsubscribe, err := r.store.Subscribe(userID,
		func(snap remote.Snapshot) { r.handleSnapshot(gen, snap) },
		func(err error) { r.handleReadError(gen, err) },
	)

	r.mu.Lock()
	if gen != r.generation {
		// Detached while subscribing; tear the new subscription down again.
		r.mu.Unlock()
		if unsubscribe != nil {
			unsubscribe()
		}
		return
	}
	if err != nil {
		notify = r.transitionLocked(StateError, classifyRemote("subscribe", err))
		r.mu.Unlock()
		run(notify)
		return
	}
	r.unsubscribe = unsubscribe
	r.mu.Unlock()
}

// Detach unsubscribes from the remote document, cancels any pending push and
// returns to the detached state. In-memory planner state is the session's to
// discard.
func (r *Reconciler) Detach() {
	r.detach()
	r.mu.Lock()
	notify := r.transitionLocked(StateDetached, nil)
	r.mu.Unlock()
	run(notify)
}

// detach tears down the current attachment without announcing a state
func (r *Reconciler) detach() {
	r.mu.Lock()
	r.generation++
	unsubscribe := r.unsubscribe
	cancelPending := r.cancelPending
	r.unsubscribe = nil
	r.cancelPending = nil
	r.userID = ""
	r.lastVersion = 0
	if !r.loaded && r.loadedCh != nil {
		// Release waiters; they observe the detached state.
		close(r.loadedCh)
	}
	r.loaded = false
	r.loadedCh = nil
	r.migrated = false
	r.pendingAgain = false
	r.lastErr = nil
	r.mu.Unlock()

	if cancelPending != nil {
		cancelPending()
	}
	if unsubscribe != nil {
		unsubscribe()
	}
}

// NoteLocalChange records a local-origin mutation: the push is (re)scheduled
// one debounce window out, collapsing bursts into a single write. Remote-
// origin applications never call this; that is the loop-avoidance rule.
func (r *Reconciler) NoteLocalChange() {
	r.mu.Lock()
	if !r.loaded || r.state == StateDetached {
		r.mu.Unlock()
		return
	}
	if r.cancelPending != nil {
		r.cancelPending()
	}
	gen := r.generation
	r.cancelPending = r.scheduler.Schedule(r.debounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.writeTO)
		defer cancel()
		_ = r.push(ctx, gen)
	})
	notify := r.transitionLocked(StateSyncing, nil)
	r.mu.Unlock()
	run(notify)
}

// Flush pushes any pending local changes immediately instead of waiting out
// the debounce window. A no-op when nothing is pending.
func (r *Reconciler) Flush(ctx context.Context) error {
	r.mu.Lock()
	pending := r.cancelPending != nil || r.state == StateSyncing
	gen := r.generation
	r.mu.Unlock()
	if !pending {
		return nil
	}
	return r.push(ctx, gen)
}

// push writes the full planner snapshot to the remote document as a merge
// write. The generation guard discards pushes that outlived their session.
func (r *Reconciler) push(ctx context.Context, gen uint64) error {
	r.mu.Lock()
	if gen != r.generation || !r.loaded {
		r.mu.Unlock()
		return nil
	}
	if r.cancelPending != nil {
		r.cancelPending()
		r.cancelPending = nil
	}
	if r.writing {
		// A write is in flight; it is never cancelled. A follow-up push is
		// scheduled once the current cycle completes.
		r.pendingAgain = true
		r.mu.Unlock()
		return nil
	}

	userID := r.userID
	doc, err := EncodeSnapshot(r.source.Snapshot())
	if err != nil {
		wrapped := errors.NewRemoteError("encode planner document", err)
		notify := r.transitionLocked(StateError, wrapped)
		r.mu.Unlock()
		run(notify)
		return wrapped
	}
	payload := Sanitize(doc)
	r.writing = true
	r.mu.Unlock()

	werr := r.store.Write(ctx, userID, payload, true)

	r.mu.Lock()
	r.writing = false
	if gen != r.generation {
		// The owning session was torn down mid-write; discard the result.
		r.mu.Unlock()
		return nil
	}
	followUp := r.pendingAgain
	if followUp {
		r.pendingAgain = false
		r.cancelPending = r.scheduler.Schedule(r.debounce, func() {
			pushCtx, cancel := context.WithTimeout(context.Background(), r.writeTO)
			defer cancel()
			_ = r.push(pushCtx, gen)
		})
	}
	var notify []func()
	if werr != nil {
		classified := classifyRemote("write planner document", werr)
		notify = r.transitionLocked(StateError, classified)
		r.mu.Unlock()
		run(notify)
		return classified
	}
	next := StateSynced
	if followUp {
		next = StateSyncing
	}
	notify = r.transitionLocked(next, nil)
	r.mu.Unlock()
	run(notify)
	return nil
}

// handleSnapshot applies one remote snapshot delivery
func (r *Reconciler) handleSnapshot(gen uint64, snap remote.Snapshot) {
	r.mu.Lock()
	if gen != r.generation {
		r.mu.Unlock()
		return
	}

	if snap.Exists {
		if snap.Version <= r.lastVersion {
			// Out-of-order or duplicate delivery; snapshots are sequenced
			// by the document version.
			r.mu.Unlock()
			return
		}
		r.lastVersion = snap.Version
		r.source.ApplyRemote(DecodeSnapshot(snap.Data))
		r.markLoadedLocked()
		logging.Debugf("sync: applied remote snapshot version %d\n", snap.Version)
		next := StateSynced
		if r.cancelPending != nil || r.writing {
			// A local-origin push is still pending or in flight.
			next = StateSyncing
		}
		notify := r.transitionLocked(next, nil)
		r.mu.Unlock()
		run(notify)
		return
	}

	// Document absent. On the first absence for this identity, consult the
	// legacy local snapshot; afterwards absence just means empty defaults.
	if r.migrated {
		r.source.ApplyRemote(domain.DefaultSnapshot())
		r.markLoadedLocked()
		notify := r.transitionLocked(StateSynced, nil)
		r.mu.Unlock()
		run(notify)
		return
	}
	r.migrated = true
	userID := r.userID

	data, found, err := r.legacy.Load(userID)
	if err != nil {
		// Migration failure: report, fall back to defaults, no retry.
		notify := r.reportErrorLocked(err)
		r.source.ApplyRemote(domain.DefaultSnapshot())
		r.markLoadedLocked()
		notify = append(notify, r.transitionLocked(StateSynced, nil)...)
		r.mu.Unlock()
		run(notify)
		return
	}
	if !found {
		r.source.ApplyRemote(domain.DefaultSnapshot())
		r.markLoadedLocked()
		notify := r.transitionLocked(StateSynced, nil)
		r.mu.Unlock()
		run(notify)
		return
	}
	r.mu.Unlock()

	// Migrate: write the legacy snapshot verbatim as a full document, then
	// await the resulting snapshot delivery.
	logging.Debugf("sync: migrating legacy snapshot for %s\n", userID)
	ctx, cancel := context.WithTimeout(context.Background(), r.writeTO)
	defer cancel()
	if werr := r.store.Write(ctx, userID, Sanitize(data), false); werr != nil {
		r.mu.Lock()
		if gen != r.generation {
			r.mu.Unlock()
			return
		}
		notify := r.transitionLocked(StateError, classifyRemote("migrate legacy snapshot", werr))
		r.mu.Unlock()
		run(notify)
	}
}

// markLoadedLocked records that the first snapshot has been applied and
// releases any waiters; callers hold mu
func (r *Reconciler) markLoadedLocked() {
	if !r.loaded {
		r.loaded = true
		if r.loadedCh != nil {
			close(r.loadedCh)
		}
	}
}

// WaitLoaded blocks until the first remote snapshot for the current
// attachment has been applied, the attachment is torn down, or the context
// expires.
func (r *Reconciler) WaitLoaded(ctx context.Context) error {
	r.mu.Lock()
	if r.loaded {
		r.mu.Unlock()
		return nil
	}
	ch := r.loadedCh
	r.mu.Unlock()
	if ch == nil {
		return errors.NewDetachedError("wait for initial snapshot")
	}

	select {
	case <-ch:
	case <-ctx.Done():
		return errors.WrapError(ctx.Err(), errors.ErrorTypeRemote, "timed out waiting for initial snapshot")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return errors.NewDetachedError("wait for initial snapshot")
	}
	return nil
}

// handleReadError surfaces a subscription failure. In-memory state is left
// exactly as it was.
func (r *Reconciler) handleReadError(gen uint64, err error) {
	r.mu.Lock()
	if gen != r.generation {
		r.mu.Unlock()
		return
	}
	notify := r.transitionLocked(StateError, classifyRemote("read snapshot", err))
	r.mu.Unlock()
	run(notify)
}

// transitionLocked moves to the given state and collects the listener
// invocations the caller runs after releasing the lock. Callers must hold mu.
func (r *Reconciler) transitionLocked(state State, err error) []func() {
	var notify []func()
	if err != nil {
		r.lastErr = err
		notify = append(notify, r.reportErrorLocked(err)...)
	}
	if r.state != state {
		r.state = state
		if r.onStatus != nil {
			onStatus := r.onStatus
			notify = append(notify, func() { onStatus(state) })
		}
	}
	return notify
}

// reportErrorLocked collects the error listener invocation; callers hold mu
func (r *Reconciler) reportErrorLocked(err error) []func() {
	if r.onError == nil {
		return nil
	}
	onError := r.onError
	return []func(){func() { onError(err) }}
}

// classifyRemote wraps raw store errors, preserving structured ones so
// permission denials stay distinguishable from generic failures
func classifyRemote(operation string, err error) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}
	return errors.NewRemoteError(operation, err)
}

// run invokes collected listener notifications in order
func run(notify []func()) {
	for _, fn := range notify {
		fn()
	}
}
