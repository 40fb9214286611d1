package audioio

import (
	"context"
	"sync"
)

// MockSource is a mock audio source for testing.
// Queue chunks with Push; Read returns them in order.
type MockSource struct {
	cfg Config

	mu      sync.Mutex
	chunks  chan Chunk
	started bool
	closed  bool
}

// NewMockSource creates a new mock audio source.
func NewMockSource(cfg Config) *MockSource {
	return &MockSource{
		cfg:    cfg,
		chunks: make(chan Chunk, 64),
	}
}

// Push queues a chunk for a later Read.
func (m *MockSource) Push(chunk Chunk) {
	m.chunks <- chunk
}

// PushSilence queues n silent samples at the configured rate.
func (m *MockSource) PushSilence(n int) {
	m.Push(Chunk{Samples: make([]int16, n), SampleRate: m.cfg.SampleRate})
}

// Start implements Source.
func (m *MockSource) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrSourceClosed
	}
	m.started = true
	return nil
}

// Read implements Source.
func (m *MockSource) Read(ctx context.Context) (Chunk, error) {
	select {
	case <-ctx.Done():
		return Chunk{}, ctx.Err()
	case chunk, ok := <-m.chunks:
		if !ok {
			return Chunk{}, ErrSourceClosed
		}
		return chunk, nil
	}
}

// Stop implements Source.
func (m *MockSource) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = false
	return nil
}

// Close implements Source.
func (m *MockSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.chunks)
	}
	return nil
}

// MockSink is a mock audio sink that records everything written to it.
type MockSink struct {
	cfg Config

	mu      sync.Mutex
	started bool

	// Captured calls for assertions
	Written      []Chunk
	ClearCalls   int
	TotalSamples int
}

// NewMockSink creates a new mock audio sink.
func NewMockSink(cfg Config) *MockSink {
	return &MockSink{cfg: cfg}
}

// Start implements Sink.
func (m *MockSink) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
	return nil
}

// Write implements Sink.
func (m *MockSink) Write(ctx context.Context, chunk Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Written = append(m.Written, chunk)
	m.TotalSamples += len(chunk.Samples)
	return nil
}

// Clear implements Sink.
func (m *MockSink) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	return nil
}

// Stop implements Sink.
func (m *MockSink) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = false
	return nil
}

// Close implements Sink.
func (m *MockSink) Close() error {
	return m.Stop()
}

// Ensure interfaces are implemented
var (
	_ Source = (*MockSource)(nil)
	_ Sink   = (*MockSink)(nil)
)
