package detect

import (
	"context"
	"sync"
)

// Mock is a mock implementation of Detector for testing.
type Mock struct {
	mu sync.Mutex

	// Configurable behavior
	DetectFunc func(ctx context.Context, jpeg []byte) (*Result, error)

	// Result is returned when DetectFunc is nil.
	Result *Result

	// Err is returned when DetectFunc is nil.
	Err error

	// Captured calls for assertions
	Calls      int
	FramesSeen [][]byte
}

// NewMock creates a new Mock detector.
func NewMock() *Mock {
	return &Mock{}
}

// Detect implements Detector.
func (m *Mock) Detect(ctx context.Context, jpeg []byte) (*Result, error) {
	m.mu.Lock()
	m.Calls++
	m.FramesSeen = append(m.FramesSeen, jpeg)
	fn := m.DetectFunc
	result, err := m.Result, m.Err
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, jpeg)
	}
	if result == nil && err == nil {
		return &Result{ImageWidth: 640, ImageHeight: 480}, nil
	}
	return result, err
}

// Close implements Detector.
func (m *Mock) Close() error {
	return nil
}

// Ensure Mock implements Detector
var _ Detector = (*Mock)(nil)
