package planner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSeerPlan(t *testing.T) {
	var captured planRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/plan" {
			t.Errorf("path = %s, want /plan", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(planResponse{
			Instruction: "Veer slightly left around the chair.",
			Urgency:     "warning",
			DangerLevel: "caution",
			Reached:     false,
			Reason:      "chair in path",
		})
	}))
	defer server.Close()

	p := NewSeer(WithBaseURL(server.URL))
	defer p.Close()

	inst, err := p.Plan(context.Background(), Request{
		Checkpoint: "elevator",
		Detections: []Detection{{Class: "chair", Confidence: 0.91, XYWH: [4]float64{320, 240, 80, 120}}},
		RecentInstructions: []string{
			"one", "two", "three", "four", "five", "six", "seven",
		},
		HistorySnippets: []string{"user: elevator"},
		Language:        "en",
	})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	if inst.Text != "Veer slightly left around the chair." {
		t.Errorf("text = %q", inst.Text)
	}
	if inst.Urgency != UrgencyWarning || inst.Danger != DangerCaution {
		t.Errorf("urgency = %s, danger = %s", inst.Urgency, inst.Danger)
	}

	if captured.Checkpoint != "elevator" {
		t.Errorf("checkpoint = %q", captured.Checkpoint)
	}
	if len(captured.RecentInstructions) != MaxRecentInstructions {
		t.Fatalf("recent = %v, want capped at %d", captured.RecentInstructions, MaxRecentInstructions)
	}
	if captured.RecentInstructions[0] != "three" {
		t.Errorf("recent[0] = %q, want the oldest surviving entry", captured.RecentInstructions[0])
	}
	if len(captured.Detections) != 1 || captured.Detections[0].Class != "chair" {
		t.Errorf("detections = %+v", captured.Detections)
	}
}

func TestSeerPlanDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(planResponse{Reached: true})
	}))
	defer server.Close()

	p := NewSeer(WithBaseURL(server.URL))
	defer p.Close()

	inst, err := p.Plan(context.Background(), Request{Checkpoint: "door"})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if inst.Text != "Continue forward." {
		t.Errorf("text = %q, want default", inst.Text)
	}
	if inst.Urgency != UrgencyNormal || inst.Danger != DangerSafe {
		t.Errorf("urgency = %s, danger = %s", inst.Urgency, inst.Danger)
	}
	if !inst.Reached {
		t.Error("reached flag lost")
	}
}

func TestSeerPlanEmptyCollectionsOnWire(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("decode: %v", err)
		}
		for _, key := range []string{"detections", "recent_instructions", "history_snippets"} {
			if string(raw[key]) == "null" {
				t.Errorf("%s marshaled as null, want []", key)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(planResponse{Instruction: "ok"})
	}))
	defer server.Close()

	p := NewSeer(WithBaseURL(server.URL))
	defer p.Close()

	if _, err := p.Plan(context.Background(), Request{Checkpoint: "door"}); err != nil {
		t.Fatalf("Plan: %v", err)
	}
}

func TestSeerPlanValidation(t *testing.T) {
	t.Run("missing base URL", func(t *testing.T) {
		p := NewSeer()
		if _, err := p.Plan(context.Background(), Request{Checkpoint: "x"}); !errors.Is(err, ErrMissingBaseURL) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("missing checkpoint", func(t *testing.T) {
		p := NewSeer(WithBaseURL("http://localhost:1"))
		if _, err := p.Plan(context.Background(), Request{}); !errors.Is(err, ErrMissingCheckpoint) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestSeerPlanServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "llm timeout"})
	}))
	defer server.Close()

	p := NewSeer(WithBaseURL(server.URL))
	defer p.Close()

	_, err := p.Plan(context.Background(), Request{Checkpoint: "door"})
	var perr *PlanningError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T (%v)", err, err)
	}
	if perr.StatusCode != http.StatusBadGateway || perr.Message != "llm timeout" {
		t.Errorf("err = %+v", perr)
	}
}
