package speech

import (
	"context"
	"log/slog"
	"strings"
)

// Console is a Speaker that logs instead of playing audio.
// Used by the simulator and as a degraded fallback when no audio
// device is available.
type Console struct {
	Logger *slog.Logger
}

// NewConsole creates a console speaker.
func NewConsole(logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{Logger: logger}
}

// Speak implements Speaker.
func (c *Console) Speak(ctx context.Context, text, language string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	c.Logger.Info("speak", "text", text, "language", language)
	return nil
}

// Cancel implements Speaker.
func (c *Console) Cancel() error { return nil }

// Close implements Speaker.
func (c *Console) Close() error { return nil }

// LogHaptics logs pulses instead of vibrating.
type LogHaptics struct {
	Logger *slog.Logger
}

// Pulse implements Haptics.
func (h LogHaptics) Pulse(level Level) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("haptic pulse", "level", level.String())
}

// Ensure interfaces are implemented
var (
	_ Speaker = (*Console)(nil)
	_ Haptics = LogHaptics{}
	_ Haptics = NoopHaptics{}
)
