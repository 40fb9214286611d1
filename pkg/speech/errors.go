package speech

import (
	"errors"
	"fmt"
)

// Sentinel errors for the speech package.
var (
	// ErrEmptyText indicates Speak was called with nothing to say.
	ErrEmptyText = errors.New("speech: empty text")

	// ErrMissingBaseURL indicates the backend URL was not configured.
	ErrMissingBaseURL = errors.New("speech: base URL is required")
)

// OutputError represents a failure of the speech output capability.
// Callers at the guidance boundary log and swallow it.
type OutputError struct {
	// StatusCode is the HTTP status code (if applicable).
	StatusCode int

	// Message is the human-readable error message.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *OutputError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("speech: output failed (HTTP %d): %s", e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("speech: output failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("speech: output failed: %s", e.Message)
}

// Unwrap returns the underlying cause.
func (e *OutputError) Unwrap() error {
	return e.Cause
}
