package planner

import (
	"errors"
	"fmt"
)

// Sentinel errors for the planner package.
var (
	// ErrMissingCheckpoint indicates Plan was called without a checkpoint.
	// This is a programming error in the caller, not a service failure.
	ErrMissingCheckpoint = errors.New("planner: checkpoint is required")

	// ErrMissingBaseURL indicates the backend URL was not configured.
	ErrMissingBaseURL = errors.New("planner: base URL is required")
)

// PlanningError represents a failure of the planning service.
type PlanningError struct {
	// StatusCode is the HTTP status code (if applicable).
	StatusCode int

	// Message is the human-readable error message.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *PlanningError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("planner: planning failed (HTTP %d): %s", e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("planner: planning failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("planner: planning failed: %s", e.Message)
}

// Unwrap returns the underlying cause.
func (e *PlanningError) Unwrap() error {
	return e.Cause
}

// IsPlanningError returns true if err is a PlanningError.
func IsPlanningError(err error) bool {
	var pe *PlanningError
	return errors.As(err, &pe)
}
