package frames

import (
	"context"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Camera captures JPEG frames from a local camera through gocv.
// Used for bench testing and wearable deployments with a wired camera.
type Camera struct {
	mu      sync.Mutex
	capture *gocv.VideoCapture
	mat     gocv.Mat
	quality int
	closed  bool
}

// NewCamera opens the camera with the given device ID.
func NewCamera(deviceID int, jpegQuality int) (*Camera, error) {
	capture, err := gocv.VideoCaptureDevice(deviceID)
	if err != nil {
		return nil, fmt.Errorf("frames: open camera %d: %w", deviceID, err)
	}
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = 80
	}
	return &Camera{
		capture: capture,
		mat:     gocv.NewMat(),
		quality: jpegQuality,
	}, nil
}

// Capture implements Source.
func (c *Camera) Capture(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}

	if ok := c.capture.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, ErrNoFrame
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, c.mat, []int{gocv.IMWriteJpegQuality, c.quality})
	if err != nil {
		return nil, fmt.Errorf("frames: encode jpeg: %w", err)
	}
	defer buf.Close()

	jpeg := make([]byte, buf.Len())
	copy(jpeg, buf.GetBytes())
	return jpeg, nil
}

// Close implements Source.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.mat.Close()
	return c.capture.Close()
}

// Ensure Camera implements Source
var _ Source = (*Camera)(nil)
