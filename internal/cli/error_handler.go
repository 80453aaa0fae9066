package cli

import (
	"fmt"

	"scholarsync/internal/errors"
	"scholarsync/internal/validation"
)

// FormatError turns internal errors into user-friendly messages
func FormatError(err error) string {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return validationErr.Error()
	}
	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err)
	}
	return err.Error()
}

// HandleCommandError wraps an error with the failed operation for display
func HandleCommandError(operation string, err error) error {
	return fmt.Errorf("failed to %s: %s", operation, FormatError(err))
}
