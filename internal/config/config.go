// Package config loads go-seer configuration from the environment.
// Values come from SEER_* environment variables, optionally seeded
// from a .env file in the working directory.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Env holds environment-driven configuration for the guide client.
type Env struct {
	// ServerURL is the base URL of the Seer backend (STT/TTS/detect/plan).
	ServerURL string `envconfig:"SERVER_URL" default:"http://localhost:8000"`

	// Language selects the transcription language and speech voice.
	Language string `envconfig:"LANGUAGE" default:"en"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogFile, when set, enables rotating file logs alongside stdout.
	LogFile string `envconfig:"LOG_FILE"`

	// WebAddr is the listen address of the companion/monitor server.
	WebAddr string `envconfig:"WEB_ADDR" default:":3000"`

	// FrameSource selects the scene capture backend: push, ws, camera.
	FrameSource string `envconfig:"FRAME_SOURCE" default:"push"`

	// FrameWSURL is the websocket URL for the ws frame source.
	FrameWSURL string `envconfig:"FRAME_WS_URL"`

	// CameraDevice is the device ID for the camera frame source.
	CameraDevice int `envconfig:"CAMERA_DEVICE" default:"0"`

	// YOLOModel is the path to a local YOLOv8 ONNX model.
	// When set, detection runs locally instead of on the server.
	YOLOModel string `envconfig:"YOLO_MODEL"`

	// CycleSeconds is the guidance cadence in seconds.
	CycleSeconds float64 `envconfig:"CYCLE_SECONDS" default:"2.5"`

	// Trigger is the guidance trigger policy: interval or push.
	Trigger string `envconfig:"TRIGGER" default:"interval"`

	// ConfirmReached re-announces arrival on a reached result.
	ConfirmReached bool `envconfig:"CONFIRM_REACHED" default:"false"`
}

// Load reads configuration from the environment.
// A missing .env file is not an error.
func Load() (*Env, error) {
	_ = godotenv.Load()

	var e Env
	if err := envconfig.Process("seer", &e); err != nil {
		return nil, fmt.Errorf("config: process environment: %w", err)
	}
	return &e, nil
}
