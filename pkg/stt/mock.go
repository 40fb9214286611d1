package stt

import (
	"context"
	"sync"
)

// Mock is a mock implementation of Transcriber for testing.
type Mock struct {
	mu sync.Mutex

	// Configurable behavior
	TranscribeFunc func(ctx context.Context, audio []byte, language string) (string, error)

	// Result is returned when TranscribeFunc is nil.
	Result string

	// Err is returned when TranscribeFunc is nil.
	Err error

	// Captured calls for assertions
	Calls     int
	AudioSent [][]byte
	Languages []string
}

// NewMock creates a new Mock transcriber.
func NewMock() *Mock {
	return &Mock{}
}

// Transcribe implements Transcriber.
func (m *Mock) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	m.mu.Lock()
	m.Calls++
	m.AudioSent = append(m.AudioSent, audio)
	m.Languages = append(m.Languages, language)
	fn := m.TranscribeFunc
	result, err := m.Result, m.Err
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, audio, language)
	}
	return result, err
}

// Close implements Transcriber.
func (m *Mock) Close() error {
	return nil
}

// Ensure Mock implements Transcriber
var _ Transcriber = (*Mock)(nil)
