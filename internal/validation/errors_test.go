package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	t.Run("should render a single error directly", func(t *testing.T) {
		ve := NewValidationError()
		ve.AddRequiredError("title")

		assert.Contains(t, ve.Error(), "title is required")
	})

	t.Run("should join multiple errors", func(t *testing.T) {
		ve := NewValidationError()
		ve.AddRequiredError("title")
		ve.AddInvalidRangeError("duration", -1, "must not be negative")

		msg := ve.Error()
		assert.Contains(t, msg, "multiple validation errors")
		assert.Contains(t, msg, "title")
		assert.Contains(t, msg, "duration")
	})

	t.Run("should have a fallback message with no errors", func(t *testing.T) {
		assert.Equal(t, "validation error", NewValidationError().Error())
	})
}

func TestValidationError_HasErrors(t *testing.T) {
	ve := NewValidationError()
	assert.False(t, ve.HasErrors())

	ve.AddInvalidValueError("status", "Paused", "unknown status")
	assert.True(t, ve.HasErrors())
}

func TestValidationError_GetFieldErrors(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("title")
	ve.AddInvalidFormatError("due_date", "someday", "2006-01-02")
	ve.AddInvalidFormatError("due_date", "someday", "2006-01-02")

	require.Len(t, ve.GetFieldErrors("due_date"), 2)
	require.Len(t, ve.GetFieldErrors("title"), 1)
	assert.Empty(t, ve.GetFieldErrors("course"))
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(NewValidationError()))
	assert.False(t, IsValidationError(assert.AnError))
}

func TestFieldError_Types(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("title")
	ve.AddInvalidFormatError("due_date", "x", "2006-01-02")
	ve.AddInvalidValueError("status", "Paused", "unknown")
	ve.AddInvalidRangeError("duration", -1, "negative")

	types := []ValidationErrorType{
		ErrorTypeRequired,
		ErrorTypeInvalidFormat,
		ErrorTypeInvalidValue,
		ErrorTypeInvalidRange,
	}
	require.Len(t, ve.Errors, len(types))
	for i, expected := range types {
		assert.Equal(t, expected, ve.Errors[i].Type)
	}
}
