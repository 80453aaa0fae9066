package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarsync/internal/remote"
)

func setupStore(t *testing.T) *DocumentStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// subscribe attaches a channel-backed handler so tests can await deliveries
func subscribe(t *testing.T, store *DocumentStore, key string) (<-chan remote.Snapshot, func()) {
	t.Helper()
	snapshots := make(chan remote.Snapshot, 16)
	cancel, err := store.Subscribe(key, func(snap remote.Snapshot) {
		snapshots <- snap
	}, func(err error) {
		t.Errorf("unexpected subscription error: %v", err)
	})
	require.NoError(t, err)
	return snapshots, cancel
}

func awaitSnapshot(t *testing.T, snapshots <-chan remote.Snapshot) remote.Snapshot {
	t.Helper()
	select {
	case snap := <-snapshots:
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a snapshot delivery")
		return remote.Snapshot{}
	}
}

func assertNoSnapshot(t *testing.T, snapshots <-chan remote.Snapshot) {
	t.Helper()
	select {
	case snap := <-snapshots:
		t.Fatalf("unexpected snapshot delivery: %+v", snap)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDocumentStore_Subscribe(t *testing.T) {
	t.Run("should deliver an initial absent snapshot for a new key", func(t *testing.T) {
		store := setupStore(t)
		snapshots, cancel := subscribe(t, store, "user-1")
		defer cancel()

		snap := awaitSnapshot(t, snapshots)

		assert.Equal(t, "user-1", snap.Key)
		assert.False(t, snap.Exists)
	})

	t.Run("should deliver the current document to a late subscriber", func(t *testing.T) {
		store := setupStore(t)
		require.NoError(t, store.Write(context.Background(), "user-1", map[string]interface{}{"dailyGoal": map[string]interface{}{"target": float64(4)}}, false))

		snapshots, cancel := subscribe(t, store, "user-1")
		defer cancel()

		snap := awaitSnapshot(t, snapshots)
		assert.True(t, snap.Exists)
		assert.Equal(t, int64(1), snap.Version)
		assert.Contains(t, snap.Data, "dailyGoal")
	})

	t.Run("should stop delivering after cancel", func(t *testing.T) {
		store := setupStore(t)
		snapshots, cancel := subscribe(t, store, "user-1")
		awaitSnapshot(t, snapshots)

		cancel()
		require.NoError(t, store.Write(context.Background(), "user-1", map[string]interface{}{"a": float64(1)}, false))

		assertNoSnapshot(t, snapshots)
	})

	t.Run("should isolate subscribers by key", func(t *testing.T) {
		store := setupStore(t)
		ours, cancelOurs := subscribe(t, store, "user-1")
		theirs, cancelTheirs := subscribe(t, store, "user-2")
		defer cancelOurs()
		defer cancelTheirs()
		awaitSnapshot(t, ours)
		awaitSnapshot(t, theirs)

		require.NoError(t, store.Write(context.Background(), "user-2", map[string]interface{}{"a": float64(1)}, false))

		snap := awaitSnapshot(t, theirs)
		assert.Equal(t, "user-2", snap.Key)
		assertNoSnapshot(t, ours)
	})

	t.Run("should fail once the store is closed", func(t *testing.T) {
		store := setupStore(t)
		store.Close()

		_, err := store.Subscribe("user-1", func(remote.Snapshot) {}, nil)
		assert.Error(t, err)
	})
}

func TestDocumentStore_Write(t *testing.T) {
	t.Run("should increment the version on every write", func(t *testing.T) {
		store := setupStore(t)
		snapshots, cancel := subscribe(t, store, "user-1")
		defer cancel()
		awaitSnapshot(t, snapshots)

		require.NoError(t, store.Write(context.Background(), "user-1", map[string]interface{}{"a": float64(1)}, false))
		require.NoError(t, store.Write(context.Background(), "user-1", map[string]interface{}{"a": float64(2)}, false))

		first := awaitSnapshot(t, snapshots)
		second := awaitSnapshot(t, snapshots)
		assert.Equal(t, int64(1), first.Version)
		assert.Equal(t, int64(2), second.Version)
	})

	t.Run("should merge into the existing document when requested", func(t *testing.T) {
		store := setupStore(t)
		ctx := context.Background()
		require.NoError(t, store.Write(ctx, "user-1", map[string]interface{}{"tasks": []interface{}{}, "categories": []interface{}{"General"}}, false))

		require.NoError(t, store.Write(ctx, "user-1", map[string]interface{}{"dailyGoal": map[string]interface{}{"target": float64(5)}}, true))

		snapshots, cancel := subscribe(t, store, "user-1")
		defer cancel()
		snap := awaitSnapshot(t, snapshots)
		assert.Contains(t, snap.Data, "tasks")
		assert.Contains(t, snap.Data, "categories")
		assert.Contains(t, snap.Data, "dailyGoal")
	})

	t.Run("should replace the document wholesale without merge", func(t *testing.T) {
		store := setupStore(t)
		ctx := context.Background()
		require.NoError(t, store.Write(ctx, "user-1", map[string]interface{}{"tasks": []interface{}{}, "categories": []interface{}{"General"}}, false))

		require.NoError(t, store.Write(ctx, "user-1", map[string]interface{}{"dailyGoal": map[string]interface{}{"target": float64(5)}}, false))

		snapshots, cancel := subscribe(t, store, "user-1")
		defer cancel()
		snap := awaitSnapshot(t, snapshots)
		assert.NotContains(t, snap.Data, "tasks")
		assert.NotContains(t, snap.Data, "categories")
		assert.Contains(t, snap.Data, "dailyGoal")
	})

	t.Run("should behave like a create when merging into an absent document", func(t *testing.T) {
		store := setupStore(t)

		require.NoError(t, store.Write(context.Background(), "user-1", map[string]interface{}{"a": float64(1)}, true))

		snapshots, cancel := subscribe(t, store, "user-1")
		defer cancel()
		snap := awaitSnapshot(t, snapshots)
		assert.True(t, snap.Exists)
		assert.Equal(t, int64(1), snap.Version)
	})

	t.Run("should fan a write out to the key's subscribers", func(t *testing.T) {
		store := setupStore(t)
		first, cancelFirst := subscribe(t, store, "user-1")
		second, cancelSecond := subscribe(t, store, "user-1")
		defer cancelFirst()
		defer cancelSecond()
		awaitSnapshot(t, first)
		awaitSnapshot(t, second)

		require.NoError(t, store.Write(context.Background(), "user-1", map[string]interface{}{"a": float64(1)}, false))

		assert.True(t, awaitSnapshot(t, first).Exists)
		assert.True(t, awaitSnapshot(t, second).Exists)
	})

	t.Run("should fail once the store is closed", func(t *testing.T) {
		store := setupStore(t)
		store.Close()

		err := store.Write(context.Background(), "user-1", map[string]interface{}{}, false)
		assert.Error(t, err)
	})
}

func TestDocumentStore_Persistence(t *testing.T) {
	t.Run("should keep documents across store instances", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "planner.db")

		store, err := New(path)
		require.NoError(t, err)
		require.NoError(t, store.Write(context.Background(), "user-1", map[string]interface{}{"a": float64(1)}, false))
		require.NoError(t, store.Close())

		reopened, err := New(path)
		require.NoError(t, err)
		defer reopened.Close()

		snapshots, cancel := subscribe(t, reopened, "user-1")
		defer cancel()
		snap := awaitSnapshot(t, snapshots)
		assert.True(t, snap.Exists)
		assert.Equal(t, int64(1), snap.Version)
	})
}
