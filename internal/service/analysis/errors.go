package analysis

import (
	"errors"
	"fmt"
)

// ValidationError reports missing or malformed input. It fails fast, before
// any external call, and is never audit-logged as an incident.
type ValidationError struct {
	msg string
}

func validationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string {
	return e.msg
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// FailedError wraps any unexpected failure during enrichment, carrying the
// root cause message to the caller.
type FailedError struct {
	Cause error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("sentiment analysis failed: %s", e.Cause)
}

func (e *FailedError) Unwrap() error {
	return e.Cause
}
