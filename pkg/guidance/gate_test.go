package guidance

import (
	"context"
	"testing"

	"github.com/seerlabs/go-seer/pkg/planner"
	"github.com/seerlabs/go-seer/pkg/speech"
)

func newTestGate() (*Gate, *speech.MockSpeaker, *speech.MockHaptics, *History) {
	speaker := speech.NewMockSpeaker()
	haptics := &speech.MockHaptics{}
	history := NewHistory(0)
	return NewGate(speaker, haptics, history, nil), speaker, haptics, history
}

func TestGateSay(t *testing.T) {
	gate, speaker, haptics, history := newTestGate()

	gate.Say(context.Background(), "Turn left.", "en", planner.UrgencyNormal, planner.DangerSafe)

	if got := speaker.SpokenTexts(); len(got) != 1 || got[0] != "Turn left." {
		t.Fatalf("spoken = %v", got)
	}
	if speaker.CancelCalls != 1 {
		t.Errorf("cancel calls = %d, want 1", speaker.CancelCalls)
	}
	if got := history.Instructions(); len(got) != 1 || got[0] != "Turn left." {
		t.Errorf("history = %v", got)
	}
	if got := history.Snippets(); len(got) != 1 || got[0] != "seer: Turn left." {
		t.Errorf("snippets = %v", got)
	}
	if last := gate.Last(); last == nil || last.Text != "Turn left." {
		t.Errorf("last = %+v", last)
	}
	if haptics.PulseCount() != 1 || haptics.Pulses[0] != speech.LevelLight {
		t.Errorf("pulses = %v", haptics.Pulses)
	}
}

func TestGateHapticMapping(t *testing.T) {
	tests := []struct {
		danger planner.DangerLevel
		want   speech.Level
	}{
		{planner.DangerDanger, speech.LevelStrong},
		{planner.DangerCaution, speech.LevelMedium},
		{planner.DangerSafe, speech.LevelLight},
		{planner.DangerLevel("unknown"), speech.LevelLight},
	}

	for _, tt := range tests {
		t.Run(string(tt.danger), func(t *testing.T) {
			if got := hapticFor(tt.danger); got != tt.want {
				t.Errorf("hapticFor(%s) = %s, want %s", tt.danger, got, tt.want)
			}
		})
	}
}

func TestGateRepeatWithoutPrior(t *testing.T) {
	gate, speaker, _, _ := newTestGate()

	if gate.Repeat(context.Background(), "en") {
		t.Error("repeat with no prior utterance should report false")
	}
	if len(speaker.SpokenTexts()) != 0 {
		t.Errorf("nothing should have been spoken, got %v", speaker.SpokenTexts())
	}
}

func TestGateRepeatDoesNotGrowHistory(t *testing.T) {
	gate, speaker, _, history := newTestGate()
	ctx := context.Background()

	gate.Say(ctx, "Walk forward.", "en", planner.UrgencyNormal, planner.DangerSafe)
	if !gate.Repeat(ctx, "en") {
		t.Fatal("repeat should succeed")
	}

	if got := speaker.SpokenTexts(); len(got) != 2 {
		t.Fatalf("spoken = %v, want two utterances", got)
	}
	if got := history.Instructions(); len(got) != 1 {
		t.Errorf("history = %v, repeat must not be re-recorded", got)
	}
}

func TestGateSwallowsSpeakerErrors(t *testing.T) {
	gate, speaker, _, history := newTestGate()
	speaker.Err = context.DeadlineExceeded

	gate.Say(context.Background(), "Turn right.", "en", planner.UrgencyNormal, planner.DangerSafe)

	if last := gate.Last(); last == nil || last.Text != "Turn right." {
		t.Errorf("last = %+v, failed speech must still be recorded", last)
	}
	if got := history.Instructions(); len(got) != 1 {
		t.Errorf("history = %v", got)
	}
}

func TestGateOnSpeakHook(t *testing.T) {
	gate, _, _, _ := newTestGate()

	var events []Spoken
	gate.OnSpeak(func(s Spoken) { events = append(events, s) })

	gate.Say(context.Background(), "Careful, stairs ahead.", "en",
		planner.UrgencyWarning, planner.DangerDanger)

	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Text != "Careful, stairs ahead." || events[0].Danger != planner.DangerDanger {
		t.Errorf("event = %+v", events[0])
	}
}
