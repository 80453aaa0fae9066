// Package remote defines the contract for the remote document store the
// planner mirrors its state into: one document per user, read through a
// snapshot subscription and written with optional merge semantics.
package remote

import "context"

// Snapshot is one delivery from a document subscription. Exists is false when
// the document has never been written (first-ever login). Version increases
// monotonically with every write to the document, so subscribers can sequence
// deliveries.
type Snapshot struct {
	Key     string
	Exists  bool
	Data    map[string]interface{}
	Version int64
}

// SnapshotHandler receives document snapshots in delivery order.
type SnapshotHandler func(Snapshot)

// ErrorHandler receives subscription read failures.
type ErrorHandler func(error)

// Store is the remote document service. Implementations must deliver an
// initial snapshot on subscribe (existing or not) and a snapshot after every
// successful write, in version order, and must stop delivering once the
// returned cancel function has been called.
type Store interface {
	// Subscribe attaches a listener to the document under key. The returned
	// function cancels the subscription.
	Subscribe(key string, onSnapshot SnapshotHandler, onError ErrorHandler) (func(), error)

	// Write stores the given fields under key. With merge set, fields absent
	// from the payload are left untouched on the stored document; without it
	// the document is replaced wholesale.
	Write(ctx context.Context, key string, fields map[string]interface{}, merge bool) error

	// Close releases the store and cancels all subscriptions.
	Close() error
}
