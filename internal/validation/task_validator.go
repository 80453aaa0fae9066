// Package validation checks user input at the UI/CLI edge before it reaches
// the planner stores. The stores themselves accept well-formed input and do
// not re-validate.
package validation

import (
	"strings"
	"time"

	"scholarsync/internal/domain"
)

// TaskValidator provides validation for task drafts
type TaskValidator struct {
	knownCategories func() []string
}

// NewTaskValidator creates a task validator. knownCategories supplies the
// current category set; a task's course must reference one at creation time.
func NewTaskValidator(knownCategories func() []string) *TaskValidator {
	return &TaskValidator{knownCategories: knownCategories}
}

// ValidateDraft validates a task draft for creation
func (tv *TaskValidator) ValidateDraft(draft domain.Task) error {
	validationError := NewValidationError()

	if strings.TrimSpace(draft.Title) == "" {
		validationError.AddRequiredError("title")
	}

	course := strings.TrimSpace(draft.Course)
	if course == "" {
		validationError.AddRequiredError("course")
	} else if tv.knownCategories != nil && !contains(tv.knownCategories(), course) {
		validationError.AddInvalidValueError("course", course, "not a known category")
	}

	if draft.Status != "" && !draft.Status.IsValid() {
		validationError.AddInvalidValueError("status", string(draft.Status), "must be To Do, In Progress or Done")
	}
	if draft.Priority != "" && !draft.Priority.IsValid() {
		validationError.AddInvalidValueError("priority", string(draft.Priority), "must be Low, Medium or High")
	}

	if draft.DueDate != "" {
		if _, err := time.Parse(domain.DueDateLayout, draft.DueDate); err != nil {
			validationError.AddInvalidFormatError("due_date", draft.DueDate, domain.DueDateLayout)
		}
	}

	if draft.Duration < 0 {
		validationError.AddInvalidRangeError("duration", draft.Duration, "must not be negative")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateUpdate validates a full task for update. The course check is
// skipped: a task may keep referencing a removed category.
func (tv *TaskValidator) ValidateUpdate(task domain.Task) error {
	validationError := NewValidationError()

	if task.ID == "" {
		validationError.AddRequiredError("id")
	}
	if strings.TrimSpace(task.Title) == "" {
		validationError.AddRequiredError("title")
	}
	if task.Status != "" && !task.Status.IsValid() {
		validationError.AddInvalidValueError("status", string(task.Status), "must be To Do, In Progress or Done")
	}
	if task.Priority != "" && !task.Priority.IsValid() {
		validationError.AddInvalidValueError("priority", string(task.Priority), "must be Low, Medium or High")
	}
	if task.DueDate != "" {
		if _, err := time.Parse(domain.DueDateLayout, task.DueDate); err != nil {
			validationError.AddInvalidFormatError("due_date", task.DueDate, domain.DueDateLayout)
		}
	}
	if task.Duration < 0 {
		validationError.AddInvalidRangeError("duration", task.Duration, "must not be negative")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// contains reports whether the slice holds the value
func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
