package planner

import (
	"time"

	"github.com/google/uuid"

	"scholarsync/internal/domain"
)

// TaskStore is the in-memory ordered collection of tasks for one session.
// It owns the completedAt invariant: a task carries a completion timestamp
// exactly when its status is Done, stamped and cleared by Create/Update, not
// by callers. The store itself is not safe for concurrent use; the owning
// Session serializes access.
type TaskStore struct {
	tasks []domain.Task
	now   func() time.Time
}

// NewTaskStore creates an empty task store
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: []domain.Task{},
		now:   time.Now,
	}
}

// Create assigns a fresh id to the draft, applies the completedAt invariant
// and the duration fallback, and appends the task in insertion order. The
// draft's ID and CompletedAt fields are ignored.
func (s *TaskStore) Create(draft domain.Task) domain.Task {
	task := draft
	task.ID = uuid.NewString()
	task.Duration = domain.NormalizeDuration(draft.Duration)
	task.CompletedAt = nil
	if task.Status == domain.StatusDone {
		now := s.now()
		task.CompletedAt = &now
	}

	s.tasks = append(s.tasks, task)
	return task
}

// Update replaces the stored task with a matching id. The completion
// timestamp follows the status transition: into Done stamps now, out of Done
// clears, no transition preserves the stored value. An unknown id is a no-op
// and returns false.
func (s *TaskStore) Update(incoming domain.Task) bool {
	for i, prev := range s.tasks {
		if prev.ID != incoming.ID {
			continue
		}

		updated := incoming
		updated.CompletedAt = prev.CompletedAt
		if incoming.Status == domain.StatusDone && (prev.Status != domain.StatusDone || prev.CompletedAt == nil) {
			now := s.now()
			updated.CompletedAt = &now
		} else if incoming.Status != domain.StatusDone && prev.Status == domain.StatusDone {
			updated.CompletedAt = nil
		}

		// Duration fallback: incoming, then previous, then default.
		if incoming.Duration <= 0 {
			updated.Duration = prev.Duration
		}
		updated.Duration = domain.NormalizeDuration(updated.Duration)

		s.tasks[i] = updated
		return true
	}
	return false
}

// Delete removes the task with the given id; unknown ids are a no-op
func (s *TaskStore) Delete(id string) bool {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the task with the given id
func (s *TaskStore) Get(id string) (domain.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// List returns a copy of the collection in insertion order
func (s *TaskStore) List() []domain.Task {
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Search returns the tasks matching the filter, in insertion order
func (s *TaskStore) Search(filter domain.TaskFilter) []domain.Task {
	out := []domain.Task{}
	for _, t := range s.tasks {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of stored tasks
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// Replace swaps the whole collection, used when a remote snapshot arrives
func (s *TaskStore) Replace(tasks []domain.Task) {
	s.tasks = make([]domain.Task, len(tasks))
	copy(s.tasks, tasks)
}

// Clear empties the collection
func (s *TaskStore) Clear() {
	s.tasks = []domain.Task{}
}
