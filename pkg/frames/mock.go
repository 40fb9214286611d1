package frames

import (
	"context"
	"sync"
)

// Mock is a mock implementation of Source for testing.
type Mock struct {
	mu sync.Mutex

	// Configurable behavior
	CaptureFunc func(ctx context.Context) ([]byte, error)

	// Frame is returned when CaptureFunc is nil.
	Frame []byte

	// Err is returned when CaptureFunc is nil.
	Err error

	// Captured calls for assertions
	Calls int
}

// NewMock creates a mock frame source returning the given frame.
func NewMock(frame []byte) *Mock {
	return &Mock{Frame: frame}
}

// Capture implements Source.
func (m *Mock) Capture(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	m.Calls++
	fn := m.CaptureFunc
	frame, err := m.Frame, m.Err
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return frame, err
}

// CallCount returns how many captures were requested.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// Close implements Source.
func (m *Mock) Close() error {
	return nil
}

// Ensure Mock implements Source
var _ Source = (*Mock)(nil)
