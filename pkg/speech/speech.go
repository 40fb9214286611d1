// Package speech provides speech output and haptic feedback for the
// guide client.
//
// Speaker renders text audibly in the active language. The bundled Seer
// implementation synthesizes through the backend's /tts endpoint, fetches
// the resulting MP3 and plays it through an audioio.Sink; synthesized
// audio is cached so repeated instructions skip the network. Speaker
// failures are always best-effort for callers: the guidance controller
// swallows them.
package speech

import "context"

// Speaker renders text as audible speech.
type Speaker interface {
	// Speak renders text in the given language. It returns once playback
	// has been handed to the audio device (not when it finishes).
	Speak(ctx context.Context, text, language string) error

	// Cancel stops the current playback immediately.
	Cancel() error

	// Close releases resources held by the speaker.
	Close() error
}

// Level is the haptic feedback intensity.
type Level int

const (
	// LevelLight is a soft tick for routine instructions.
	LevelLight Level = iota
	// LevelMedium is a noticeable pulse for caution.
	LevelMedium
	// LevelStrong is an alert pulse for danger and arrival.
	LevelStrong
)

// String returns a human-readable level name.
func (l Level) String() string {
	switch l {
	case LevelLight:
		return "light"
	case LevelMedium:
		return "medium"
	case LevelStrong:
		return "strong"
	default:
		return "unknown"
	}
}

// Haptics delivers tactile feedback pulses.
type Haptics interface {
	// Pulse fires one haptic pulse at the given intensity.
	// Implementations must never block the caller.
	Pulse(level Level)
}

// NoopHaptics ignores all pulses. Used when no haptic hardware exists.
type NoopHaptics struct{}

// Pulse implements Haptics.
func (NoopHaptics) Pulse(Level) {}
