package stt

import (
	"errors"
	"fmt"
)

// Sentinel errors for the stt package.
var (
	// ErrEmptyAudio indicates no audio data was provided.
	ErrEmptyAudio = errors.New("stt: empty audio")

	// ErrMissingBaseURL indicates the backend URL was not configured.
	ErrMissingBaseURL = errors.New("stt: base URL is required")
)

// TranscriptionError represents a failure of the transcription service.
type TranscriptionError struct {
	// StatusCode is the HTTP status code (if applicable).
	StatusCode int

	// Message is the human-readable error message.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *TranscriptionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("stt: transcription failed (HTTP %d): %s", e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("stt: transcription failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("stt: transcription failed: %s", e.Message)
}

// Unwrap returns the underlying cause.
func (e *TranscriptionError) Unwrap() error {
	return e.Cause
}

// IsTranscriptionError returns true if err is a TranscriptionError.
func IsTranscriptionError(err error) bool {
	var te *TranscriptionError
	return errors.As(err, &te)
}
