package seer

import (
	"testing"
	"time"

	"github.com/seerlabs/go-seer/internal/config"
	"github.com/seerlabs/go-seer/pkg/guidance"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"missing server", func(c *Config) { c.ServerURL = "" }, true},
		{"ws without url", func(c *Config) { c.FrameSource = FramesWS }, true},
		{"ws with url", func(c *Config) { c.FrameSource = FramesWS; c.FrameWSURL = "ws://x/frames" }, false},
		{"unknown frames", func(c *Config) { c.FrameSource = "satellite" }, true},
		{"unknown trigger", func(c *Config) { c.Trigger = "hourly" }, true},
		{"push trigger", func(c *Config) { c.Trigger = guidance.TriggerPush }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	env := &config.Env{
		ServerURL:      "https://seer.example.com",
		Language:       "sv",
		WebAddr:        ":8080",
		FrameSource:    "camera",
		CameraDevice:   2,
		CycleSeconds:   1.5,
		Trigger:        "push",
		ConfirmReached: true,
	}

	cfg := DefaultConfig().FromEnv(env)
	if cfg.ServerURL != "https://seer.example.com" || cfg.Language != "sv" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.FrameSource != FramesCamera || cfg.CameraDevice != 2 {
		t.Errorf("frames = %s device %d", cfg.FrameSource, cfg.CameraDevice)
	}
	if cfg.CycleInterval != 1500*time.Millisecond {
		t.Errorf("cycle = %v", cfg.CycleInterval)
	}
	if cfg.Trigger != guidance.TriggerPush || !cfg.ConfirmReached {
		t.Errorf("trigger = %s confirm = %v", cfg.Trigger, cfg.ConfirmReached)
	}
}
