package sync

// State is the reconciler's position in its attach/sync lifecycle.
type State int

const (
	// StateDetached means no identity is bound; no subscription is active.
	StateDetached State = iota
	// StateAttaching means an identity is bound and the first remote
	// snapshot has not arrived yet.
	StateAttaching
	// StateSynced means local state mirrors the remote document.
	StateSynced
	// StateSyncing means a local-origin change is pending an outbound write.
	StateSyncing
	// StateError means the last read or write failed. Not terminal: any
	// subsequent successful read or write returns to synced.
	StateError
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateDetached:
		return "detached"
	case StateAttaching:
		return "attaching"
	case StateSynced:
		return "synced"
	case StateSyncing:
		return "syncing"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Indicator collapses the lifecycle into the three-valued status the UI
// shows: synced, syncing, or error. Detached collapses to "synced"; callers
// that can observe a signed-out session should report that state themselves
// rather than show the indicator.
func (s State) Indicator() string {
	switch s {
	case StateAttaching, StateSyncing:
		return "syncing"
	case StateError:
		return "error"
	default:
		return "synced"
	}
}

// Origin tags a state mutation with where it came from. Remote-origin
// applications must never schedule an outbound push; that is the
// loop-avoidance invariant between write-triggered-by-read and
// read-triggered-by-write.
type Origin int

const (
	// OriginLocal marks a mutation initiated by a user action in this
	// session, destined to be pushed outward.
	OriginLocal Origin = iota
	// OriginRemote marks a mutation initiated by a snapshot delivered from
	// the remote document store, not to be pushed back.
	OriginRemote
)

// String returns the string representation of the origin
func (o Origin) String() string {
	if o == OriginRemote {
		return "remote"
	}
	return "local"
}
