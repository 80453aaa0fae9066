package domain

import "strings"

// TaskFilter represents search criteria for tasks. Nil fields match
// everything; set fields must all match.
type TaskFilter struct {
	Status *Status
	Course *string
	DueOn  *string // calendar date, DueDateLayout
	Query  *string // case-insensitive substring over title and course
}

// Matches reports whether the task satisfies every set criterion.
func (f TaskFilter) Matches(t Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Course != nil && t.Course != *f.Course {
		return false
	}
	if f.DueOn != nil && t.DueDate != *f.DueOn {
		return false
	}
	if f.Query != nil {
		q := strings.ToLower(*f.Query)
		title := strings.ToLower(t.Title)
		course := strings.ToLower(t.Course)
		if !strings.Contains(title, q) && !strings.Contains(course, q) {
			return false
		}
	}
	return true
}
