package audioio

import (
	"errors"
	"fmt"
	"time"
)

// Backend represents the audio backend type.
type Backend string

const (
	// BackendAuto selects the best available backend.
	BackendAuto Backend = "auto"
	// BackendPortAudio uses PortAudio for audio I/O.
	BackendPortAudio Backend = "portaudio"
	// BackendMock uses a mock implementation for testing.
	BackendMock Backend = "mock"
)

// ErrSourceClosed is returned by Read after a source is stopped or closed.
var ErrSourceClosed = errors.New("audioio: source closed")

// Config holds audio configuration.
type Config struct {
	// Backend specifies which audio backend to use.
	Backend Backend `json:"backend"`

	// SampleRate is the audio sample rate in Hz.
	// Default: 16000 (what the transcription service expects).
	SampleRate int `json:"sample_rate"`

	// BufferDuration is the size of capture buffers.
	BufferDuration time.Duration `json:"buffer_duration"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:        BackendAuto,
		SampleRate:     16000,
		BufferDuration: 64 * time.Millisecond,
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("audioio: sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.BufferDuration <= 0 {
		return fmt.Errorf("audioio: buffer_duration must be positive, got %v", c.BufferDuration)
	}
	return nil
}

// BufferSize returns the number of samples per buffer.
func (c *Config) BufferSize() int {
	return int(float64(c.SampleRate) * c.BufferDuration.Seconds())
}

// NewSource creates an audio source for the configured backend.
func NewSource(cfg Config) (Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case BackendMock:
		return NewMockSource(cfg), nil
	case BackendAuto, BackendPortAudio:
		return NewPortAudioSource(cfg)
	default:
		return nil, fmt.Errorf("audioio: unsupported backend: %s", cfg.Backend)
	}
}

// NewSink creates an audio sink for the configured backend.
func NewSink(cfg Config) (Sink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case BackendMock:
		return NewMockSink(cfg), nil
	case BackendAuto, BackendPortAudio:
		return NewPortAudioSink(cfg)
	default:
		return nil, fmt.Errorf("audioio: unsupported backend: %s", cfg.Backend)
	}
}
