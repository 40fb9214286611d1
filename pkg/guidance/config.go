package guidance

import (
	"fmt"
	"log/slog"
	"time"
)

// Trigger selects how guidance cycles are initiated while navigating.
type Trigger string

const (
	// TriggerInterval runs cycles on a fixed cadence.
	TriggerInterval Trigger = "interval"
	// TriggerPush runs a cycle only when RequestCycle is called, for
	// push-to-ask deployments where battery matters more than cadence.
	TriggerPush Trigger = "push"
)

// Config holds controller tuning. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// Language pre-selects the session language. When set the
	// controller starts in the ask-goal state instead of waiting for
	// a language choice.
	Language string

	// CycleInterval is the cadence between guidance cycles when the
	// trigger is TriggerInterval.
	CycleInterval time.Duration

	// CallTimeout bounds each remote call made during a cycle.
	CallTimeout time.Duration

	// Trigger selects interval or push-to-ask cycling.
	Trigger Trigger

	// ConfirmReached speaks an explicit arrival confirmation instead
	// of the planner's final instruction when the planner reports
	// arrival.
	ConfirmReached bool

	// SnippetCap bounds the labeled conversation log.
	SnippetCap int

	// Logger receives controller events. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		CycleInterval: 2500 * time.Millisecond,
		CallTimeout:   30 * time.Second,
		Trigger:       TriggerInterval,
		SnippetCap:    DefaultSnippetCap,
	}
}

// Validate checks the configuration for usability.
func (c *Config) Validate() error {
	if c.CycleInterval < 200*time.Millisecond {
		return fmt.Errorf("guidance: cycle interval %v too short", c.CycleInterval)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("guidance: call timeout must be positive")
	}
	switch c.Trigger {
	case TriggerInterval, TriggerPush:
	default:
		return fmt.Errorf("guidance: unknown trigger %q", c.Trigger)
	}
	return nil
}

// WithLanguage returns a copy with the session language pre-selected.
func (c Config) WithLanguage(lang string) Config {
	c.Language = lang
	return c
}

// WithCycleInterval returns a copy with the given cycle cadence.
func (c Config) WithCycleInterval(d time.Duration) Config {
	c.CycleInterval = d
	return c
}

// WithTrigger returns a copy with the given trigger policy.
func (c Config) WithTrigger(t Trigger) Config {
	c.Trigger = t
	return c
}

// WithConfirmReached returns a copy with arrival confirmation enabled.
func (c Config) WithConfirmReached(on bool) Config {
	c.ConfirmReached = on
	return c
}

// WithLogger returns a copy with the given logger.
func (c Config) WithLogger(l *slog.Logger) Config {
	c.Logger = l
	return c
}
