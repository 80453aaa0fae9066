// Package planner holds the session-scoped planner state: the task,
// category and goal stores, and the Session facade the UI talks to. A
// Session owns its stores and its reconciler explicitly; there is no
// app-global state.
package planner

import (
	"context"
	gosync "sync"
	"time"

	"scholarsync/internal/analytics"
	"scholarsync/internal/domain"
	"scholarsync/internal/identity"
	"scholarsync/internal/legacy"
	"scholarsync/internal/remote"
	"scholarsync/internal/sync"
)

// Session is the UI-facing planner core for one signed-in user. All
// mutating methods are local-origin: they update the in-memory stores first
// (the UI always reflects the user's intent) and let the reconciler mirror
// the change outward on its debounce cycle.
type Session struct {
	mu         gosync.Mutex
	tasks      *TaskStore
	categories *CategoryStore
	goal       *GoalStore
	now        func() time.Time

	reconciler *sync.Reconciler
	user       identity.User
	attached   bool
}

// NewSession creates a detached session over the given collaborators
func NewSession(store remote.Store, legacySnapshots legacy.Store, cfg sync.Config) *Session {
	s := &Session{
		tasks:      NewTaskStore(),
		categories: NewCategoryStore(),
		goal:       NewGoalStore(),
		now:        time.Now,
	}
	s.reconciler = sync.New(store, legacySnapshots, s, cfg)
	return s
}

// Bind wires the session to an identity provider: login attaches, logout
// detaches, and an already signed-in user is attached immediately. The
// returned function unbinds the listener.
func (s *Session) Bind(provider identity.Provider) func() {
	remove := provider.OnChange(func(user identity.User, loggedIn bool) {
		if loggedIn {
			s.Attach(user)
		} else {
			s.Detach()
		}
	})
	if user, ok := provider.Current(); ok {
		s.Attach(user)
	}
	return remove
}

// Attach binds the session to a user and starts mirroring their remote
// document. A previous attachment is torn down first.
func (s *Session) Attach(user identity.User) {
	s.mu.Lock()
	s.user = user
	s.attached = true
	s.resetLocked()
	s.mu.Unlock()

	s.reconciler.Attach(user.ID)
}

// Detach tears down the subscription and discards the in-memory state.
// Entities are session-scoped; they are re-populated from the remote mirror
// on next login.
func (s *Session) Detach() {
	s.reconciler.Detach()

	s.mu.Lock()
	s.user = identity.User{}
	s.attached = false
	s.resetLocked()
	s.mu.Unlock()
}

// resetLocked restores session defaults; callers hold s.mu
func (s *Session) resetLocked() {
	s.tasks.Clear()
	s.categories.Reset()
	s.goal.Reset()
}

// User returns the attached user, if any
func (s *Session) User() (identity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.attached
}

// ========== Task operations ==========

// AddTask creates a task from the draft and returns it with its fresh id
func (s *Session) AddTask(draft domain.Task) domain.Task {
	s.mu.Lock()
	task := s.tasks.Create(draft)
	s.mu.Unlock()

	s.reconciler.NoteLocalChange()
	return task
}

// UpdateTask replaces the stored task with a matching id; unknown ids are a
// silent no-op
func (s *Session) UpdateTask(task domain.Task) {
	s.mu.Lock()
	changed := s.tasks.Update(task)
	s.mu.Unlock()

	if changed {
		s.reconciler.NoteLocalChange()
	}
}

// DeleteTask removes the task with the given id; unknown ids are a no-op
func (s *Session) DeleteTask(id string) {
	s.mu.Lock()
	changed := s.tasks.Delete(id)
	s.mu.Unlock()

	if changed {
		s.reconciler.NoteLocalChange()
	}
}

// GetTask returns the task with the given id
func (s *Session) GetTask(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Get(id)
}

// Tasks returns the current task collection in insertion order
func (s *Session) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.List()
}

// SearchTasks returns the tasks matching the filter
func (s *Session) SearchTasks(filter domain.TaskFilter) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Search(filter)
}

// ========== Category operations ==========

// AddCategory adds a category label with set semantics
func (s *Session) AddCategory(name string) {
	s.mu.Lock()
	changed := s.categories.Add(name)
	s.mu.Unlock()

	if changed {
		s.reconciler.NoteLocalChange()
	}
}

// RemoveCategory removes a category label. Tasks referencing it keep their
// course field as-is.
func (s *Session) RemoveCategory(name string) {
	s.mu.Lock()
	changed := s.categories.Remove(name)
	s.mu.Unlock()

	if changed {
		s.reconciler.NoteLocalChange()
	}
}

// Categories returns the current category labels
func (s *Session) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.List()
}

// ========== Goal operations ==========

// DailyGoal returns the current daily goal
func (s *Session) DailyGoal() domain.DailyGoal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goal.Get()
}

// UpdateDailyGoalTarget sets the goal target
func (s *Session) UpdateDailyGoalTarget(target int) {
	s.mu.Lock()
	s.goal.SetTarget(target)
	s.mu.Unlock()

	s.reconciler.NoteLocalChange()
}

// UpdateDailyGoalCurrent sets goal progress, clamped to zero or above
func (s *Session) UpdateDailyGoalCurrent(current int) {
	s.mu.Lock()
	s.goal.SetCurrent(current)
	s.mu.Unlock()

	s.reconciler.NoteLocalChange()
}

// ========== Bulk operations ==========

// ClearAllData resets tasks, categories and the daily goal to their session
// defaults. Confirmation is the caller's responsibility.
func (s *Session) ClearAllData() {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()

	s.reconciler.NoteLocalChange()
}

// ========== Analytics ==========

// GetStudyData computes the study-hours series for the timeframe from the
// current task snapshot. Pure: identical output until the tasks change.
func (s *Session) GetStudyData(timeframe analytics.Timeframe) []analytics.StudyPoint {
	s.mu.Lock()
	tasks := s.tasks.List()
	now := s.now()
	s.mu.Unlock()

	return analytics.StudyData(tasks, timeframe, now)
}

// ========== Sync surface ==========

// SyncStatus returns the three-valued indicator the UI shows
func (s *Session) SyncStatus() string {
	return s.reconciler.State().Indicator()
}

// SyncState returns the reconciler's full lifecycle state
func (s *Session) SyncState() sync.State {
	return s.reconciler.State()
}

// OnSyncStatusChange registers a listener for reconciler state transitions
func (s *Session) OnSyncStatusChange(l sync.StatusListener) {
	s.reconciler.OnStatusChange(l)
}

// OnSyncError registers a listener for surfaced sync failures
func (s *Session) OnSyncError(l sync.ErrorListener) {
	s.reconciler.OnError(l)
}

// Flush pushes any pending local changes immediately. Needed by short-lived
// processes that cannot wait out the debounce window.
func (s *Session) Flush(ctx context.Context) error {
	return s.reconciler.Flush(ctx)
}

// WaitSynced blocks until the first remote snapshot for the current
// attachment has populated the stores
func (s *Session) WaitSynced(ctx context.Context) error {
	return s.reconciler.WaitLoaded(ctx)
}

// ========== sync.StateSource ==========

// Snapshot returns the current planner state as the unit of persistence
func (s *Session) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Snapshot{
		Tasks:      s.tasks.List(),
		Categories: s.categories.List(),
		DailyGoal:  s.goal.Get(),
	}
}

// ApplyRemote replaces the planner state with a remote-origin snapshot.
// By construction this never reports a local change to the reconciler.
func (s *Session) ApplyRemote(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Replace(snap.Tasks)
	s.categories.Replace(snap.Categories)
	s.goal.Replace(snap.DailyGoal)
}

var _ sync.StateSource = (*Session)(nil)
