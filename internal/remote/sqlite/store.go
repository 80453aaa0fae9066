// Package sqlite implements the remote document store contract on top of a
// local SQLite database: one row per document key, JSON payloads, and a
// version column incremented on every write so subscribers can sequence
// snapshot deliveries.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"

	"scholarsync/internal/errors"
	"scholarsync/internal/logging"
	"scholarsync/internal/remote"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	key     TEXT PRIMARY KEY,
	data    TEXT NOT NULL,
	version INTEGER NOT NULL DEFAULT 1
);`

// DocumentStore implements the remote.Store interface backed by SQLite
type DocumentStore struct {
	db *sql.DB

	mu          sync.Mutex
	subscribers map[int64]*subscriber
	nextSubID   int64
	closed      bool
}

// subscriber holds one subscription with its own ordered delivery queue.
// Deliveries run on a dedicated goroutine so a write never invokes a
// snapshot handler on the writer's call stack.
type subscriber struct {
	key        string
	onSnapshot remote.SnapshotHandler
	onError    remote.ErrorHandler

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []remote.Snapshot
	closed bool
}

func newSubscriber(key string, onSnapshot remote.SnapshotHandler, onError remote.ErrorHandler) *subscriber {
	s := &subscriber{
		key:        key,
		onSnapshot: onSnapshot,
		onError:    onError,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// enqueue appends a snapshot to the delivery queue
func (s *subscriber) enqueue(snap remote.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue = append(s.queue, snap)
	s.cond.Signal()
}

// close stops the delivery loop; queued snapshots are discarded
func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cond.Signal()
}

// deliver runs the delivery loop, invoking the handler in queue order
func (s *subscriber) deliver() {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			return
		}
		snap := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.onSnapshot(snap)
	}
}

// New creates a new SQLite-backed document store
func New(dbPath string) (*DocumentStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewRemoteError("open document store", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.NewRemoteError("create documents table", err)
	}

	return &DocumentStore{
		db:          db,
		subscribers: make(map[int64]*subscriber),
	}, nil
}

// Subscribe attaches a listener to the document under key and delivers the
// current snapshot immediately, whether or not the document exists yet.
func (s *DocumentStore) Subscribe(key string, onSnapshot remote.SnapshotHandler, onError remote.ErrorHandler) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errors.NewRemoteError("subscribe", sql.ErrConnDone)
	}

	sub := newSubscriber(key, onSnapshot, onError)
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = sub
	go sub.deliver()

	// Initial delivery: the document as it stands right now.
	snap, err := s.readSnapshot(key)
	if err != nil {
		if onError != nil {
			onError(err)
		}
	} else {
		sub.enqueue(snap)
	}

	cancel := func() {
		s.mu.Lock()
		if existing, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			existing.close()
		}
		s.mu.Unlock()
	}
	return cancel, nil
}

// Write stores fields under key, merging with the existing document when
// requested, and fans the resulting snapshot out to subscribers of the key.
func (s *DocumentStore) Write(ctx context.Context, key string, fields map[string]interface{}, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.NewRemoteError("write document", sql.ErrConnDone)
	}

	payload := fields
	if merge {
		existing, err := s.readDocument(key)
		if err != nil {
			return err
		}
		if existing != nil {
			for k, v := range fields {
				existing[k] = v
			}
			payload = existing
		}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return errors.NewRemoteError("encode document", err)
	}

	query := `
	INSERT INTO documents (key, data, version) VALUES (?, ?, 1)
	ON CONFLICT(key) DO UPDATE SET data = excluded.data, version = documents.version + 1`
	if _, err := s.db.ExecContext(ctx, query, key, string(encoded)); err != nil {
		return errors.NewRemoteError("write document", err)
	}

	snap, err := s.readSnapshot(key)
	if err != nil {
		return err
	}
	logging.Debugf("remote: wrote %s version %d\n", key, snap.Version)

	for _, sub := range s.subscribers {
		if sub.key == key {
			sub.enqueue(snap)
		}
	}
	return nil
}

// Close releases the store and cancels all subscriptions
func (s *DocumentStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for id, sub := range s.subscribers {
		delete(s.subscribers, id)
		sub.close()
	}
	return s.db.Close()
}

// readDocument returns the decoded document for key, or nil if absent
func (s *DocumentStore) readDocument(key string) (map[string]interface{}, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM documents WHERE key = ?`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewRemoteError("read document", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, errors.NewRemoteError("decode document", err)
	}
	return doc, nil
}

// readSnapshot returns the current snapshot for key, existing or not
func (s *DocumentStore) readSnapshot(key string) (remote.Snapshot, error) {
	var data string
	var version int64
	err := s.db.QueryRow(`SELECT data, version FROM documents WHERE key = ?`, key).Scan(&data, &version)
	if err == sql.ErrNoRows {
		return remote.Snapshot{Key: key, Exists: false}, nil
	}
	if err != nil {
		return remote.Snapshot{}, errors.NewRemoteError("read snapshot", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return remote.Snapshot{}, errors.NewRemoteError("decode snapshot", err)
	}
	return remote.Snapshot{Key: key, Exists: true, Data: doc, Version: version}, nil
}

var _ remote.Store = (*DocumentStore)(nil)
