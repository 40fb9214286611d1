package speech

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seerlabs/go-seer/pkg/audioio"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelLight, "light"},
		{LevelMedium, "medium"},
		{LevelStrong, "strong"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestConsoleSpeaker(t *testing.T) {
	c := NewConsole(nil)
	defer c.Close()

	if err := c.Speak(context.Background(), "Turn left.", "en"); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	if err := c.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
}

func TestSeerSpeakValidation(t *testing.T) {
	sink := audioio.NewMockSink(audioio.DefaultConfig())

	t.Run("missing base URL", func(t *testing.T) {
		s, err := NewSeer(sink)
		if err != nil {
			t.Fatalf("NewSeer: %v", err)
		}
		if err := s.Speak(context.Background(), "hello", "en"); !errors.Is(err, ErrMissingBaseURL) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		s, err := NewSeer(sink, WithBaseURL("http://localhost:1"))
		if err != nil {
			t.Fatalf("NewSeer: %v", err)
		}
		if err := s.Speak(context.Background(), "   ", "en"); !errors.Is(err, ErrEmptyText) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestSeerSpeakSynthesisError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tts" {
			t.Errorf("path = %s, want /tts", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["text"] != "Turn left." {
			t.Errorf("text = %q", req["text"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "tts backend down"})
	}))
	defer server.Close()

	sink := audioio.NewMockSink(audioio.DefaultConfig())
	s, err := NewSeer(sink, WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewSeer: %v", err)
	}

	err = s.Speak(context.Background(), "Turn left.", "en")
	var oerr *OutputError
	if !errors.As(err, &oerr) {
		t.Fatalf("error type = %T (%v)", err, err)
	}
	if oerr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d", oerr.StatusCode)
	}
}

func TestMockSpeakerRecords(t *testing.T) {
	m := NewMockSpeaker()

	if err := m.Speak(context.Background(), "hello", "en"); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	m.Cancel()

	if got := m.SpokenTexts(); len(got) != 1 || got[0] != "hello" {
		t.Errorf("spoken = %v", got)
	}
	if m.CancelCalls != 1 {
		t.Errorf("cancel calls = %d", m.CancelCalls)
	}
}

func TestNoopHaptics(t *testing.T) {
	var h Haptics = NoopHaptics{}
	h.Pulse(LevelStrong) // must not panic or block
}
