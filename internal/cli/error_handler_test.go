package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scholarsync/internal/errors"
	"scholarsync/internal/validation"
)

func TestFormatError(t *testing.T) {
	t.Run("should render validation errors verbatim", func(t *testing.T) {
		validationErr := validation.NewValidationError()
		validationErr.AddRequiredError("title")

		msg := FormatError(validationErr)

		assert.Contains(t, msg, "title")
		assert.Contains(t, msg, "required")
	})

	t.Run("should render remote failures as a friendly message", func(t *testing.T) {
		err := errors.NewRemoteError("write document", assert.AnError)

		msg := FormatError(err)

		assert.Contains(t, msg, "Could not reach the planner service")
		assert.NotContains(t, msg, "write document")
	})

	t.Run("should keep permission denials distinct", func(t *testing.T) {
		err := errors.NewPermissionError("read", "user-1")

		msg := FormatError(err)

		assert.Contains(t, msg, "permission")
		assert.NotContains(t, msg, "Could not reach")
	})

	t.Run("should pass plain errors through", func(t *testing.T) {
		assert.Equal(t, assert.AnError.Error(), FormatError(assert.AnError))
	})
}

func TestHandleCommandError(t *testing.T) {
	err := HandleCommandError("add task", errors.NewRemoteError("write document", assert.AnError))
	assert.Contains(t, err.Error(), "failed to add task")
}

func TestParseTimeframe(t *testing.T) {
	assert.Equal(t, "Daily", string(parseTimeframe("daily")))
	assert.Equal(t, "Weekly", string(parseTimeframe("WEEKLY")))
	assert.Equal(t, "Monthly", string(parseTimeframe("Monthly")))
	assert.False(t, parseTimeframe("hourly").IsValid())
}
