package frames

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WS receives binary JPEG frames over a websocket and keeps the latest.
// The companion app streams its camera preview to this endpoint.
type WS struct {
	url    string
	logger *slog.Logger

	mu        sync.RWMutex
	conn      *websocket.Conn
	frame     []byte
	received  time.Time
	maxAge    time.Duration
	closed    bool
	connected bool
}

// NewWS creates a websocket frame source for the given URL.
// Call Connect before the first Capture.
func NewWS(url string, maxAge time.Duration, logger *slog.Logger) *WS {
	if logger == nil {
		logger = slog.Default()
	}
	return &WS{url: url, maxAge: maxAge, logger: logger}
}

// Connect dials the frame stream and starts receiving.
func (w *WS) Connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, w.url, nil)
	if err != nil {
		return fmt.Errorf("frames: dial %s: %w", w.url, err)
	}

	w.mu.Lock()
	w.conn = conn
	w.connected = true
	w.mu.Unlock()

	go w.readLoop(conn)
	return nil
}

func (w *WS) readLoop(conn *websocket.Conn) {
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			w.mu.Lock()
			w.connected = false
			closed := w.closed
			w.mu.Unlock()
			if !closed {
				w.logger.Warn("frame stream disconnected", "error", err)
			}
			return
		}
		if msgType != websocket.BinaryMessage || len(data) == 0 {
			continue
		}
		w.mu.Lock()
		w.frame = data
		w.received = time.Now()
		w.mu.Unlock()
	}
}

// Connected reports whether the stream is live.
func (w *WS) Connected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected
}

// Capture implements Source.
func (w *WS) Capture(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return nil, ErrClosed
	}
	if w.frame == nil {
		return nil, ErrNoFrame
	}
	if w.maxAge > 0 && time.Since(w.received) > w.maxAge {
		return nil, ErrStaleFrame
	}
	return w.frame, nil
}

// Close implements Source.
func (w *WS) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
	return nil
}

// Ensure WS implements Source
var _ Source = (*WS)(nil)
