package hub

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubLifecycle(t *testing.T) {
	h := New("test", nil)
	go h.Run()

	deadline := time.After(time.Second)
	for !h.IsRunning() {
		select {
		case <-deadline:
			t.Fatal("hub did not start")
		case <-time.After(time.Millisecond):
		}
	}

	if h.ClientCount() != 0 {
		t.Errorf("client count = %d", h.ClientCount())
	}

	// Broadcasting with no clients must not block or error.
	if err := h.BroadcastEvent(StateEvent("ask_goal", "navigating")); err != nil {
		t.Fatalf("BroadcastEvent: %v", err)
	}
	h.BroadcastBinary([]byte("frame"))

	h.Stop()
	h.Stop() // idempotent
}

func TestEventShapes(t *testing.T) {
	t.Run("state", func(t *testing.T) {
		data, err := json.Marshal(StateEvent("navigating", "reached"))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var ev map[string]any
		json.Unmarshal(data, &ev)
		if ev["type"] != "state" || ev["from"] != "navigating" || ev["to"] != "reached" {
			t.Errorf("event = %v", ev)
		}
	})

	t.Run("spoken", func(t *testing.T) {
		data, err := json.Marshal(SpokenEvent("Turn left.", "warning", "caution", time.Now()))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var ev map[string]any
		json.Unmarshal(data, &ev)
		if ev["type"] != "spoken" || ev["text"] != "Turn left." || ev["danger"] != "caution" {
			t.Errorf("event = %v", ev)
		}
	})

	t.Run("omits unset fields", func(t *testing.T) {
		data, _ := json.Marshal(StateEvent("a", "b"))
		var raw map[string]json.RawMessage
		json.Unmarshal(data, &raw)
		if _, ok := raw["text"]; ok {
			t.Error("state event should omit text")
		}
	})
}
