package guidance

import "errors"

var (
	// ErrBusy is returned when an input arrives while a cycle is in
	// flight. The input is dropped, never queued.
	ErrBusy = errors.New("guidance: cycle already in flight")

	// ErrNoCheckpoint is returned when a guidance cycle is requested
	// with no destination set.
	ErrNoCheckpoint = errors.New("guidance: no checkpoint set")

	// ErrNotNavigating is returned when a cycle is requested outside
	// the navigating state.
	ErrNotNavigating = errors.New("guidance: not navigating")

	// ErrLanguageNotSet is returned for voice input before a language
	// was chosen.
	ErrLanguageNotSet = errors.New("guidance: language not selected")

	// ErrEnded is returned for any input after the session ended.
	ErrEnded = errors.New("guidance: session ended")

	// ErrInvalidTransition is returned when a requested state change
	// is not allowed from the current state.
	ErrInvalidTransition = errors.New("guidance: invalid state transition")
)
