// Package legacy reads the per-identity local snapshot kept by older builds
// of the planner. It is consulted exactly once per identity, on the first
// attach that finds no remote document, as the migration source.
package legacy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"scholarsync/internal/errors"
)

// Store provides access to legacy local planner snapshots
type Store interface {
	// Load returns the raw snapshot for the given user, and whether one
	// exists. A snapshot that exists but cannot be parsed is an error.
	Load(userID string) (map[string]interface{}, bool, error)
}

// FileStore implements Store over one JSON file per identity
type FileStore struct {
	dir string
}

// NewFileStore creates a legacy snapshot store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// snapshotPath returns the file path holding the given user's snapshot
func (s *FileStore) snapshotPath(userID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("scholarsync_data_%s.json", userID))
}

// Load reads and parses the legacy snapshot for userID
func (s *FileStore) Load(userID string) (map[string]interface{}, bool, error) {
	raw, err := os.ReadFile(s.snapshotPath(userID))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.NewMigrationError(userID, err)
	}

	var snapshot map[string]interface{}
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, true, errors.NewMigrationError(userID, err)
	}
	return snapshot, true, nil
}

// Save writes a legacy snapshot for userID. Only used to seed migration
// fixtures; the planner itself never writes legacy data.
func (s *FileStore) Save(userID string, snapshot map[string]interface{}) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.NewMigrationError(userID, err)
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return errors.NewMigrationError(userID, err)
	}
	if err := os.WriteFile(s.snapshotPath(userID), raw, 0644); err != nil {
		return errors.NewMigrationError(userID, err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
