package planner

import (
	"context"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarsync/internal/analytics"
	"scholarsync/internal/domain"
	"scholarsync/internal/identity"
	"scholarsync/internal/remote"
	"scholarsync/internal/sync"
)

// stubStore is a hand-driven remote.Store for session tests
type stubStore struct {
	mu         gosync.Mutex
	onSnapshot remote.SnapshotHandler
	writes     []map[string]interface{}
	merges     []bool
	version    int64
}

func (s *stubStore) Subscribe(key string, onSnapshot remote.SnapshotHandler, onError remote.ErrorHandler) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSnapshot = onSnapshot
	return func() {}, nil
}

func (s *stubStore) Write(ctx context.Context, key string, fields map[string]interface{}, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, fields)
	s.merges = append(s.merges, merge)
	return nil
}

func (s *stubStore) Close() error { return nil }

// deliver hands the subscriber a snapshot of the given planner state
func (s *stubStore) deliver(t *testing.T, snap domain.Snapshot) {
	t.Helper()
	doc, err := sync.EncodeSnapshot(snap)
	require.NoError(t, err)
	s.mu.Lock()
	s.version++
	handler := s.onSnapshot
	version := s.version
	s.mu.Unlock()
	handler(remote.Snapshot{Exists: true, Data: doc, Version: version})
}

// deliverAbsent hands the subscriber a does-not-exist snapshot
func (s *stubStore) deliverAbsent() {
	s.mu.Lock()
	handler := s.onSnapshot
	s.mu.Unlock()
	handler(remote.Snapshot{Exists: false})
}

func (s *stubStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.writes)
}

// stubLegacy is an empty legacy.Store
type stubLegacy struct{}

func (stubLegacy) Load(userID string) (map[string]interface{}, bool, error) {
	return nil, false, nil
}

// stubScheduler collects debounce tasks and runs them on demand
type stubScheduler struct {
	mu    gosync.Mutex
	tasks []*stubTask
}

type stubTask struct {
	fn        func()
	cancelled bool
	fired     bool
}

func (s *stubScheduler) Schedule(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &stubTask{fn: fn}
	s.tasks = append(s.tasks, task)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		task.cancelled = true
	}
}

func (s *stubScheduler) fire() int {
	s.mu.Lock()
	var runnable []*stubTask
	for _, task := range s.tasks {
		if !task.cancelled && !task.fired {
			task.fired = true
			runnable = append(runnable, task)
		}
	}
	s.mu.Unlock()

	for _, task := range runnable {
		task.fn()
	}
	return len(runnable)
}

func (s *stubScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, task := range s.tasks {
		if !task.cancelled && !task.fired {
			n++
		}
	}
	return n
}

// stubProvider is an in-memory identity.Provider
type stubProvider struct {
	user     identity.User
	loggedIn bool
	listener identity.Listener
}

func (p *stubProvider) Current() (identity.User, bool) { return p.user, p.loggedIn }

func (p *stubProvider) Login(user identity.User) error {
	p.user = user
	p.loggedIn = true
	if p.listener != nil {
		p.listener(user, true)
	}
	return nil
}

func (p *stubProvider) Logout() error {
	p.user = identity.User{}
	p.loggedIn = false
	if p.listener != nil {
		p.listener(identity.User{}, false)
	}
	return nil
}

func (p *stubProvider) OnChange(l identity.Listener) func() {
	p.listener = l
	return func() { p.listener = nil }
}

// setupSession creates a session over stubs, attached to user-1 with an
// empty remote document already delivered
func setupSession(t *testing.T) (*Session, *stubStore, *stubScheduler) {
	t.Helper()
	store := &stubStore{}
	scheduler := &stubScheduler{}
	session := NewSession(store, stubLegacy{}, sync.Config{
		DebounceWindow: time.Second,
		WriteTimeout:   time.Second,
		Scheduler:      scheduler,
	})

	session.Attach(identity.User{ID: "user-1", Name: "Alice"})
	store.deliverAbsent()
	require.NoError(t, session.WaitSynced(context.Background()))
	return session, store, scheduler
}

func TestSession_Bind(t *testing.T) {
	t.Run("should attach an already signed-in user immediately", func(t *testing.T) {
		store := &stubStore{}
		scheduler := &stubScheduler{}
		session := NewSession(store, stubLegacy{}, sync.Config{Scheduler: scheduler})
		provider := &stubProvider{user: identity.User{ID: "user-1"}, loggedIn: true}

		unbind := session.Bind(provider)
		defer unbind()

		store.deliverAbsent()
		require.NoError(t, session.WaitSynced(context.Background()))

		user, attached := session.User()
		assert.True(t, attached)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, domain.DefaultCategories(), session.Categories())
		assert.Equal(t, domain.DefaultDailyGoal(), session.DailyGoal())
	})

	t.Run("should attach on login and detach on logout", func(t *testing.T) {
		store := &stubStore{}
		scheduler := &stubScheduler{}
		session := NewSession(store, stubLegacy{}, sync.Config{Scheduler: scheduler})
		provider := &stubProvider{}

		unbind := session.Bind(provider)
		defer unbind()

		_, attached := session.User()
		assert.False(t, attached)

		require.NoError(t, provider.Login(identity.User{ID: "user-1"}))
		store.deliverAbsent()
		require.NoError(t, session.WaitSynced(context.Background()))
		session.AddTask(domain.Task{Title: "Read chapter 4", Course: "General", Status: domain.StatusToDo, Priority: domain.PriorityLow})

		require.NoError(t, provider.Logout())

		_, attached = session.User()
		assert.False(t, attached)
		assert.Empty(t, session.Tasks())
		assert.Equal(t, domain.DefaultCategories(), session.Categories())
	})
}

func TestSession_LocalMutations(t *testing.T) {
	t.Run("should reflect an added task immediately and push it once debounced", func(t *testing.T) {
		session, store, scheduler := setupSession(t)

		created := session.AddTask(domain.Task{Title: "Problem set 3", Course: "Mathematics", Status: domain.StatusToDo, Priority: domain.PriorityHigh, Duration: 90})

		assert.NotEmpty(t, created.ID)
		assert.Len(t, session.Tasks(), 1)
		assert.Equal(t, "syncing", session.SyncStatus())

		require.Equal(t, 1, scheduler.fire())
		require.Equal(t, 1, store.writeCount())
		assert.True(t, store.merges[0])
		assert.Equal(t, "synced", session.SyncStatus())
	})

	t.Run("should not push for an unknown-id update or delete", func(t *testing.T) {
		session, _, scheduler := setupSession(t)

		session.UpdateTask(domain.Task{ID: "missing", Title: "Ghost", Status: domain.StatusToDo, Priority: domain.PriorityLow})
		session.DeleteTask("missing")

		assert.Equal(t, 0, scheduler.pending())
		assert.Equal(t, "synced", session.SyncStatus())
	})

	t.Run("should not push for a duplicate category", func(t *testing.T) {
		session, _, scheduler := setupSession(t)

		session.AddCategory("Mathematics")

		assert.Equal(t, 0, scheduler.pending())
	})

	t.Run("should keep task course labels when their category is removed", func(t *testing.T) {
		session, _, scheduler := setupSession(t)
		created := session.AddTask(domain.Task{Title: "Problem set 3", Course: "Mathematics", Status: domain.StatusToDo, Priority: domain.PriorityHigh})
		scheduler.fire()

		session.RemoveCategory("Mathematics")

		assert.NotContains(t, session.Categories(), "Mathematics")
		kept, ok := session.GetTask(created.ID)
		require.True(t, ok)
		assert.Equal(t, "Mathematics", kept.Course)
	})

	t.Run("should reset to exact defaults on clear", func(t *testing.T) {
		session, _, scheduler := setupSession(t)
		session.AddTask(domain.Task{Title: "Anything", Course: "General", Status: domain.StatusToDo, Priority: domain.PriorityLow})
		session.AddCategory("Physics")
		session.UpdateDailyGoalTarget(9)
		scheduler.fire()

		session.ClearAllData()

		assert.Empty(t, session.Tasks())
		assert.Equal(t, domain.DefaultCategories(), session.Categories())
		assert.Equal(t, domain.DefaultDailyGoal(), session.DailyGoal())
		// The cleared state still has to reach the remote document.
		assert.Equal(t, 1, scheduler.pending())
	})
}

func TestSession_RemoteOrigin(t *testing.T) {
	t.Run("should replace state from a remote snapshot without pushing back", func(t *testing.T) {
		session, store, scheduler := setupSession(t)

		remoteState := domain.Snapshot{
			Tasks:      []domain.Task{{ID: "r1", Title: "From another device", Course: "General", Status: domain.StatusToDo, Priority: domain.PriorityLow, Duration: 30}},
			Categories: []string{"General"},
			DailyGoal:  domain.DailyGoal{Current: 1, Target: 2},
		}
		store.deliver(t, remoteState)

		tasks := session.Tasks()
		require.Len(t, tasks, 1)
		assert.Equal(t, "From another device", tasks[0].Title)
		assert.Equal(t, []string{"General"}, session.Categories())

		assert.Equal(t, 0, scheduler.pending())
		assert.Equal(t, 0, scheduler.fire())
		assert.Equal(t, 0, store.writeCount())
		assert.Equal(t, "synced", session.SyncStatus())
	})
}

func TestSession_GetStudyData(t *testing.T) {
	t.Run("should compute the series from the current tasks", func(t *testing.T) {
		session, _, _ := setupSession(t)
		now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
		session.now = func() time.Time { return now }
		session.tasks.now = func() time.Time { return now }

		done := session.AddTask(domain.Task{Title: "Problem set 3", Course: "Mathematics", Status: domain.StatusToDo, Priority: domain.PriorityHigh, Duration: 90})
		done.Status = domain.StatusDone
		session.UpdateTask(done)

		points := session.GetStudyData(analytics.TimeframeDaily)

		require.Len(t, points, 7)
		assert.InDelta(t, 1.5, points[6].Hours, 0.001)
	})
}

func TestSession_Flush(t *testing.T) {
	t.Run("should push pending changes without waiting for the debounce", func(t *testing.T) {
		session, store, _ := setupSession(t)
		session.AddTask(domain.Task{Title: "Quick note", Course: "General", Status: domain.StatusToDo, Priority: domain.PriorityLow})

		require.NoError(t, session.Flush(context.Background()))

		assert.Equal(t, 1, store.writeCount())
		assert.Equal(t, "synced", session.SyncStatus())
	})
}
