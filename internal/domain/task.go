package domain

import (
	"strings"
	"time"
)

// Status represents the workflow state of a task.
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// IsValid checks if the status is one of the known workflow states.
func (s Status) IsValid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority represents the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// IsValid checks if the priority is one of the known levels.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

const (
	// DefaultDurationMinutes is assumed when a task carries no estimate.
	DefaultDurationMinutes = 60

	// MinDurationMinutes is the smallest estimate a task may carry.
	MinDurationMinutes = 5

	// DueDateLayout is the calendar-date format used for task due dates.
	DueDateLayout = "2006-01-02"
)

// Task represents a single planner entry.
// The Course field references a category label by name; the reference is not
// cascade-deleted when the category is removed, so it may dangle.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Course      string     `json:"course"`
	DueDate     string     `json:"dueDate"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	Duration    int        `json:"duration"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Progress    int        `json:"progress,omitempty"`
	Description string     `json:"description,omitempty"`
}

// IsValid checks if the task has well-formed data.
func (t Task) IsValid() bool {
	if strings.TrimSpace(t.Title) == "" {
		return false
	}
	if !t.Status.IsValid() || !t.Priority.IsValid() {
		return false
	}
	return true
}

// IsDone returns true if the task has been completed.
func (t Task) IsDone() bool {
	return t.Status == StatusDone
}

// DueDateTime parses the task's due date as a local calendar date.
// The second return value is false when the due date is absent or malformed.
func (t Task) DueDateTime() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DueDateLayout, t.DueDate, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// EffectiveDate returns the date a task's work is attributed to: the
// completion timestamp when present, otherwise the due date.
func (t Task) EffectiveDate() (time.Time, bool) {
	if t.CompletedAt != nil {
		return *t.CompletedAt, true
	}
	return t.DueDateTime()
}

// EffectiveDuration returns the task's estimate in minutes, falling back to
// the default when no estimate was recorded.
func (t Task) EffectiveDuration() int {
	if t.Duration <= 0 {
		return DefaultDurationMinutes
	}
	return t.Duration
}

// NormalizeDuration applies the duration fallback rules: a missing or
// non-positive estimate becomes the default, and anything below the minimum
// is raised to it.
func NormalizeDuration(minutes int) int {
	if minutes <= 0 {
		return DefaultDurationMinutes
	}
	if minutes < MinDurationMinutes {
		return MinDurationMinutes
	}
	return minutes
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
