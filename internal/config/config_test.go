package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	env, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if env.ServerURL != "http://localhost:8000" {
		t.Errorf("server URL = %q", env.ServerURL)
	}
	if env.Language != "en" {
		t.Errorf("language = %q", env.Language)
	}
	if env.FrameSource != "push" {
		t.Errorf("frame source = %q", env.FrameSource)
	}
	if env.CycleSeconds != 2.5 {
		t.Errorf("cycle seconds = %v", env.CycleSeconds)
	}
	if env.Trigger != "interval" {
		t.Errorf("trigger = %q", env.Trigger)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SEER_SERVER_URL", "https://seer.example.com")
	t.Setenv("SEER_LANGUAGE", "sv")
	t.Setenv("SEER_CYCLE_SECONDS", "1.5")
	t.Setenv("SEER_CONFIRM_REACHED", "true")

	env, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if env.ServerURL != "https://seer.example.com" {
		t.Errorf("server URL = %q", env.ServerURL)
	}
	if env.Language != "sv" {
		t.Errorf("language = %q", env.Language)
	}
	if env.CycleSeconds != 1.5 {
		t.Errorf("cycle seconds = %v", env.CycleSeconds)
	}
	if !env.ConfirmReached {
		t.Error("confirm reached not set")
	}
}
