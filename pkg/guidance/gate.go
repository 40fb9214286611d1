package guidance

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/seerlabs/go-seer/pkg/planner"
	"github.com/seerlabs/go-seer/pkg/speech"
)

// Spoken describes one utterance emitted through the gate.
type Spoken struct {
	Text    string
	Urgency planner.Urgency
	Danger  planner.DangerLevel
	At      time.Time
}

// Gate is the single exit for everything the guide says. It cancels any
// in-progress speech before speaking, remembers the last instruction for
// "repeat", appends to the history, and fires a haptic pulse matched to
// the danger level. Speech failures are logged and swallowed; losing
// one sentence must never wedge the controller.
type Gate struct {
	speaker speech.Speaker
	haptics speech.Haptics
	history *History
	logger  *slog.Logger

	mu      sync.Mutex
	last    *Spoken
	onSpeak func(Spoken)
}

// NewGate creates a gate. Haptics may be nil; speaker and history must
// not be.
func NewGate(speaker speech.Speaker, haptics speech.Haptics, history *History, logger *slog.Logger) *Gate {
	if haptics == nil {
		haptics = speech.NoopHaptics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		speaker: speaker,
		haptics: haptics,
		history: history,
		logger:  logger,
	}
}

// OnSpeak registers a hook invoked after each utterance, for dashboards
// and event streams. The hook must not block.
func (g *Gate) OnSpeak(fn func(Spoken)) {
	g.mu.Lock()
	g.onSpeak = fn
	g.mu.Unlock()
}

// Say cancels current speech, speaks text, records it, and pulses.
func (g *Gate) Say(ctx context.Context, text, language string, urgency planner.Urgency, danger planner.DangerLevel) {
	if text == "" {
		return
	}

	g.speaker.Cancel()
	if err := g.speaker.Speak(ctx, text, language); err != nil {
		g.logger.Warn("speech output failed", "error", err, "text", text)
	}

	spoken := Spoken{Text: text, Urgency: urgency, Danger: danger, At: time.Now()}
	g.mu.Lock()
	g.last = &spoken
	hook := g.onSpeak
	g.mu.Unlock()

	g.history.AddInstruction(text)
	g.history.AddSeerSnippet(text)

	g.haptics.Pulse(hapticFor(danger))
	if hook != nil {
		hook(spoken)
	}
}

// Repeat re-speaks the last utterance. It reports whether there was one.
// The repeat is not re-recorded in history; the planner should see each
// instruction once.
func (g *Gate) Repeat(ctx context.Context, language string) bool {
	g.mu.Lock()
	last := g.last
	g.mu.Unlock()
	if last == nil {
		return false
	}

	g.speaker.Cancel()
	if err := g.speaker.Speak(ctx, last.Text, language); err != nil {
		g.logger.Warn("speech output failed", "error", err, "text", last.Text)
	}
	g.haptics.Pulse(hapticFor(last.Danger))
	return true
}

// Last returns the most recent utterance, or nil.
func (g *Gate) Last() *Spoken {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.last == nil {
		return nil
	}
	s := *g.last
	return &s
}

// Cancel stops any in-progress speech without clearing the last entry.
func (g *Gate) Cancel() {
	g.speaker.Cancel()
}

func hapticFor(danger planner.DangerLevel) speech.Level {
	switch danger {
	case planner.DangerDanger:
		return speech.LevelStrong
	case planner.DangerCaution:
		return speech.LevelMedium
	default:
		return speech.LevelLight
	}
}
