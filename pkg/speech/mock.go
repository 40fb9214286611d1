package speech

import (
	"context"
	"sync"
)

// MockSpeaker is a mock implementation of Speaker for testing.
type MockSpeaker struct {
	mu sync.Mutex

	// Configurable behavior
	SpeakFunc func(ctx context.Context, text, language string) error

	// Err is returned when SpeakFunc is nil.
	Err error

	// Captured calls for assertions
	Spoken      []string
	Languages   []string
	CancelCalls int
}

// NewMockSpeaker creates a new MockSpeaker.
func NewMockSpeaker() *MockSpeaker {
	return &MockSpeaker{}
}

// Speak implements Speaker.
func (m *MockSpeaker) Speak(ctx context.Context, text, language string) error {
	m.mu.Lock()
	m.Spoken = append(m.Spoken, text)
	m.Languages = append(m.Languages, language)
	fn := m.SpeakFunc
	err := m.Err
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, text, language)
	}
	return err
}

// Cancel implements Speaker.
func (m *MockSpeaker) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancelCalls++
	return nil
}

// Close implements Speaker.
func (m *MockSpeaker) Close() error {
	return nil
}

// SpokenTexts returns a copy of everything spoken so far.
func (m *MockSpeaker) SpokenTexts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Spoken))
	copy(out, m.Spoken)
	return out
}

// MockHaptics records pulses for assertions.
type MockHaptics struct {
	mu     sync.Mutex
	Pulses []Level
}

// Pulse implements Haptics.
func (m *MockHaptics) Pulse(level Level) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pulses = append(m.Pulses, level)
}

// PulseCount returns how many pulses fired.
func (m *MockHaptics) PulseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Pulses)
}

// Ensure interfaces are implemented
var (
	_ Speaker = (*MockSpeaker)(nil)
	_ Haptics = (*MockHaptics)(nil)
)
