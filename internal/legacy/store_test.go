package legacy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarsync/internal/errors"
)

func TestFileStore_Load(t *testing.T) {
	t.Run("should round-trip a saved snapshot", func(t *testing.T) {
		store := NewFileStore(t.TempDir())
		snapshot := map[string]interface{}{
			"tasks":     []interface{}{map[string]interface{}{"id": "t1", "title": "Imported"}},
			"dailyGoal": map[string]interface{}{"current": float64(1), "target": float64(4)},
		}
		require.NoError(t, store.Save("user-1", snapshot))

		loaded, found, err := store.Load("user-1")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, snapshot, loaded)
	})

	t.Run("should report absence without an error", func(t *testing.T) {
		store := NewFileStore(t.TempDir())

		loaded, found, err := store.Load("nobody")

		assert.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, loaded)
	})

	t.Run("should keep snapshots separated per user", func(t *testing.T) {
		store := NewFileStore(t.TempDir())
		require.NoError(t, store.Save("user-1", map[string]interface{}{"dailyGoal": map[string]interface{}{"target": float64(4)}}))

		_, found, err := store.Load("user-2")

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("should report a corrupt snapshot as found with a migration error", func(t *testing.T) {
		dir := t.TempDir()
		store := NewFileStore(dir)
		path := filepath.Join(dir, "scholarsync_data_user-1.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		_, found, err := store.Load("user-1")

		assert.True(t, found)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeMigration))
	})
}
