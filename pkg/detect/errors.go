package detect

import (
	"errors"
	"fmt"
)

// Sentinel errors for the detect package.
var (
	// ErrEmptyImage indicates no image data was provided.
	ErrEmptyImage = errors.New("detect: empty image")

	// ErrMissingBaseURL indicates the backend URL was not configured.
	ErrMissingBaseURL = errors.New("detect: base URL is required")

	// ErrModelNotFound indicates the local model file does not exist.
	ErrModelNotFound = errors.New("detect: model file not found")
)

// DetectionError represents a failure of the detection backend.
type DetectionError struct {
	// StatusCode is the HTTP status code (if applicable).
	StatusCode int

	// Message is the human-readable error message.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *DetectionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("detect: detection failed (HTTP %d): %s", e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("detect: detection failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("detect: detection failed: %s", e.Message)
}

// Unwrap returns the underlying cause.
func (e *DetectionError) Unwrap() error {
	return e.Cause
}
