// Package frames provides scene snapshot capture for guidance cycles.
//
// A Source yields the most recent JPEG camera frame. Bundled sources:
//   - Push - in-memory latest frame, fed by the companion app over HTTP
//   - WS - websocket receiver for binary JPEG frames
//   - Camera - local capture through gocv
//   - Mock - testing
package frames

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Sentinel errors for the frames package.
var (
	// ErrNoFrame indicates no frame has been received yet.
	ErrNoFrame = errors.New("frames: no frame available")

	// ErrClosed indicates the source was closed.
	ErrClosed = errors.New("frames: source closed")

	// ErrStaleFrame indicates the newest frame is older than the
	// configured staleness bound.
	ErrStaleFrame = errors.New("frames: frame too old")
)

// Source yields scene snapshots for guidance cycles.
type Source interface {
	// Capture returns the most recent JPEG frame.
	Capture(ctx context.Context) ([]byte, error)

	// Close releases resources held by the source.
	Close() error
}

// Push is a Source fed externally: the companion app posts frames and
// guidance cycles capture the newest one. A staleness bound keeps the
// controller from planning against a frozen scene.
type Push struct {
	// MaxAge rejects frames older than this. Zero disables the check.
	MaxAge time.Duration

	mu       sync.RWMutex
	frame    []byte
	received time.Time
	closed   bool
}

// NewPush creates a push frame source.
func NewPush(maxAge time.Duration) *Push {
	return &Push{MaxAge: maxAge}
}

// Offer stores a new frame as the latest.
func (p *Push) Offer(jpeg []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || len(jpeg) == 0 {
		return
	}
	p.frame = jpeg
	p.received = time.Now()
}

// Capture implements Source.
func (p *Push) Capture(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, ErrClosed
	}
	if p.frame == nil {
		return nil, ErrNoFrame
	}
	if p.MaxAge > 0 && time.Since(p.received) > p.MaxAge {
		return nil, ErrStaleFrame
	}
	return p.frame, nil
}

// Close implements Source.
func (p *Push) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.frame = nil
	return nil
}

// Ensure Push implements Source
var _ Source = (*Push)(nil)
