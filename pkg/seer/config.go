// Package seer assembles the guide client: service clients, frame
// source, audio, the guidance controller, and the web surface.
package seer

import (
	"fmt"
	"time"

	"github.com/seerlabs/go-seer/internal/config"
	"github.com/seerlabs/go-seer/pkg/guidance"
)

// Frame source selectors.
const (
	FramesPush   = "push"
	FramesWS     = "ws"
	FramesCamera = "camera"
)

// Config holds all configuration for the guide application.
// Flag parsing is done in cmd/seer/main.go; this struct is data only.
type Config struct {
	// ServerURL is the base URL of the Seer backend.
	ServerURL string

	// Language pre-selects the session language. Empty starts the
	// session in language selection.
	Language string

	// WebAddr is the listen address for the companion API and
	// dashboard. Empty disables the web server.
	WebAddr string

	// FrameSource selects push, ws, or camera capture.
	FrameSource string

	// FrameWSURL is the stream URL for the ws frame source.
	FrameWSURL string

	// CameraDevice is the device ID for the camera frame source.
	CameraDevice int

	// FrameMaxAge rejects frames older than this.
	FrameMaxAge time.Duration

	// YOLOModel, when set, runs detection locally on this ONNX model
	// instead of calling the server.
	YOLOModel string

	// CycleInterval is the guidance cadence.
	CycleInterval time.Duration

	// Trigger is interval or push cycling.
	Trigger guidance.Trigger

	// ConfirmReached re-announces arrival on a reached result.
	ConfirmReached bool

	// ConsoleSpeech logs speech instead of playing audio. Used on dev
	// machines without an audio device.
	ConsoleSpeech bool

	// Debug enables verbose logging.
	Debug bool
}

// DefaultConfig returns sensible defaults for the guide.
func DefaultConfig() Config {
	return Config{
		ServerURL:     "http://localhost:8000",
		Language:      "en",
		WebAddr:       ":3000",
		FrameSource:   FramesPush,
		FrameMaxAge:   10 * time.Second,
		CycleInterval: 2500 * time.Millisecond,
		Trigger:       guidance.TriggerInterval,
	}
}

// FromEnv folds SEER_* environment configuration into cfg.
func (c Config) FromEnv(env *config.Env) Config {
	c.ServerURL = env.ServerURL
	c.Language = env.Language
	c.WebAddr = env.WebAddr
	c.FrameSource = env.FrameSource
	c.FrameWSURL = env.FrameWSURL
	c.CameraDevice = env.CameraDevice
	c.YOLOModel = env.YOLOModel
	c.Trigger = guidance.Trigger(env.Trigger)
	c.ConfirmReached = env.ConfirmReached
	if env.CycleSeconds > 0 {
		c.CycleInterval = time.Duration(env.CycleSeconds * float64(time.Second))
	}
	return c
}

// Validate checks the configuration for usability.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("seer: server URL is required")
	}
	switch c.FrameSource {
	case FramesPush, FramesCamera:
	case FramesWS:
		if c.FrameWSURL == "" {
			return fmt.Errorf("seer: ws frame source needs a stream URL")
		}
	default:
		return fmt.Errorf("seer: unknown frame source %q", c.FrameSource)
	}
	switch c.Trigger {
	case guidance.TriggerInterval, guidance.TriggerPush:
	default:
		return fmt.Errorf("seer: unknown trigger %q", c.Trigger)
	}
	return nil
}
