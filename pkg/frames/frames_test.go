package frames

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPushCaptureLatestFrame(t *testing.T) {
	p := NewPush(0)
	defer p.Close()
	ctx := context.Background()

	if _, err := p.Capture(ctx); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("err = %v, want ErrNoFrame before first offer", err)
	}

	p.Offer([]byte("first"))
	p.Offer([]byte("second"))

	frame, err := p.Capture(ctx)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if string(frame) != "second" {
		t.Errorf("frame = %q, want newest", frame)
	}
}

func TestPushStaleness(t *testing.T) {
	p := NewPush(10 * time.Millisecond)
	defer p.Close()

	p.Offer([]byte("frame"))
	time.Sleep(30 * time.Millisecond)

	if _, err := p.Capture(context.Background()); !errors.Is(err, ErrStaleFrame) {
		t.Errorf("err = %v, want ErrStaleFrame", err)
	}
}

func TestPushIgnoresEmptyOffer(t *testing.T) {
	p := NewPush(0)
	defer p.Close()

	p.Offer([]byte("frame"))
	p.Offer(nil)

	frame, err := p.Capture(context.Background())
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if string(frame) != "frame" {
		t.Errorf("frame = %q", frame)
	}
}

func TestPushClosed(t *testing.T) {
	p := NewPush(0)
	p.Offer([]byte("frame"))
	p.Close()

	if _, err := p.Capture(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}

	// Offers after close are dropped.
	p.Offer([]byte("late"))
	if _, err := p.Capture(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed after late offer", err)
	}
}

func TestPushCaptureHonorsContext(t *testing.T) {
	p := NewPush(0)
	defer p.Close()
	p.Offer([]byte("frame"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Capture(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestMockSource(t *testing.T) {
	m := NewMock([]byte("jpeg"))

	frame, err := m.Capture(context.Background())
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if string(frame) != "jpeg" || m.CallCount() != 1 {
		t.Errorf("frame = %q, calls = %d", frame, m.CallCount())
	}
}
