package guidance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/seerlabs/go-seer/pkg/detect"
	"github.com/seerlabs/go-seer/pkg/frames"
	"github.com/seerlabs/go-seer/pkg/planner"
	"github.com/seerlabs/go-seer/pkg/speech"
	"github.com/seerlabs/go-seer/pkg/stt"
)

// degradedMessage is spoken once when a guidance cycle fails on a
// remote call. State is left unchanged so the next cycle retries.
const degradedMessage = "Network error. Hold on."

// Deps are the collaborators the machine drives. Planner, Frames and
// Speaker are required. Transcriber is only needed when raw audio is
// handed in through HandleAudio; Detector and Haptics are optional.
type Deps struct {
	Transcriber stt.Transcriber
	Detector    detect.Detector
	Planner     planner.Planner
	Frames      frames.Source
	Speaker     speech.Speaker
	Haptics     speech.Haptics
}

// Machine is the guidance controller. All exported methods are safe for
// concurrent use; at most one guidance or command cycle runs at a time
// and inputs that arrive during one are dropped, never queued.
type Machine struct {
	cfg     Config
	deps    Deps
	gate    *Gate
	history *History
	sched   *scheduler
	metrics *metricsCollector
	logger  *slog.Logger

	// lifeCtx covers the machine's lifetime. Scheduler ticks run on it
	// so Close can cancel an in-flight remote call instead of letting
	// it run out its timeout.
	lifeCtx    context.Context
	lifeCancel context.CancelFunc

	// processing is the single in-flight latch. Acquired with
	// CompareAndSwap, released with Store in a defer so a panicking
	// cycle cannot wedge the controller.
	processing atomic.Bool

	mu         sync.Mutex
	state      State
	checkpoint string
	language   string
	// epoch increments whenever the checkpoint is set, changed, or
	// cleared. A cycle captures the epoch at start; results carrying a
	// stale epoch are discarded unspoken.
	epoch uint64

	onTransition func(from, to State)
}

// New creates a machine in the select-language state (or ask-goal when
// cfg.Language is set).
func New(cfg Config, deps Deps) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Planner == nil {
		return nil, fmt.Errorf("guidance: planner is required")
	}
	if deps.Frames == nil {
		return nil, fmt.Errorf("guidance: frame source is required")
	}
	if deps.Speaker == nil {
		return nil, fmt.Errorf("guidance: speaker is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	history := NewHistory(cfg.SnippetCap)
	m := &Machine{
		cfg:     cfg,
		deps:    deps,
		history: history,
		gate:    NewGate(deps.Speaker, deps.Haptics, history, logger),
		metrics: &metricsCollector{},
		logger:  logger,
		state:   StateSelectLanguage,
	}
	m.lifeCtx, m.lifeCancel = context.WithCancel(context.Background())
	m.sched = newScheduler(cfg.CycleInterval, func() {
		if err := m.Tick(m.lifeCtx); err != nil &&
			!errors.Is(err, ErrBusy) && !errors.Is(err, ErrNotNavigating) {
			logger.Warn("guidance tick failed", "error", err)
		}
	})

	if cfg.Language != "" {
		m.language = cfg.Language
		m.state = StateAskGoal
	}
	return m, nil
}

// OnTransition registers a hook invoked after each committed state
// change. The hook must not block and must not call back into the
// machine.
func (m *Machine) OnTransition(fn func(from, to State)) {
	m.mu.Lock()
	m.onTransition = fn
	m.mu.Unlock()
}

// OnSpeak registers a hook invoked after each spoken output.
func (m *Machine) OnSpeak(fn func(Spoken)) {
	m.gate.OnSpeak(fn)
}

// transitionLocked commits a state change. Caller holds m.mu.
func (m *Machine) transitionLocked(to State) {
	from := m.state
	if from == to {
		return
	}
	m.state = to
	m.logger.Info("state transition", "from", from.String(), "to", to.String())

	// The scheduler runs only while navigating with an interval trigger.
	if m.cfg.Trigger == TriggerInterval {
		switch {
		case to == StateNavigating:
			m.sched.Start()
		case from == StateNavigating:
			m.sched.Stop()
		}
	}

	if m.onTransition != nil {
		m.onTransition(from, to)
	}
}

// setCheckpointLocked installs a new destination and bumps the epoch so
// any in-flight result for the old destination is discarded.
func (m *Machine) setCheckpointLocked(dest string) {
	m.checkpoint = dest
	m.epoch++
}

// SetLanguage chooses the session language and moves to ask-goal.
// Only valid from the select-language state.
func (m *Machine) SetLanguage(lang string) error {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return fmt.Errorf("guidance: empty language")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateSelectLanguage {
		return fmt.Errorf("%w: set language from %s", ErrInvalidTransition, m.state)
	}
	m.language = lang
	m.transitionLocked(StateAskGoal)
	return nil
}

// HandleAudio transcribes a voice recording and handles the resulting
// utterance as one command cycle. Recordings that arrive while a cycle
// is in flight are dropped with ErrBusy.
func (m *Machine) HandleAudio(ctx context.Context, audio []byte) error {
	if m.deps.Transcriber == nil {
		return fmt.Errorf("guidance: no transcriber configured")
	}
	if !m.processing.CompareAndSwap(false, true) {
		m.metrics.inputDropped()
		return ErrBusy
	}
	defer m.processing.Store(false)

	m.mu.Lock()
	language := m.language
	m.mu.Unlock()

	tctx, cancel := context.WithTimeout(ctx, m.cfg.CallTimeout)
	defer cancel()
	transcript, err := m.deps.Transcriber.Transcribe(tctx, audio, language)
	if err != nil {
		m.logger.Warn("transcription failed", "error", err)
		m.gate.Say(ctx, degradedMessage, language, planner.UrgencyWarning, planner.DangerCaution)
		return err
	}
	return m.handleUtterance(ctx, transcript)
}

// HandleUtterance interprets a transcript and applies at most one state
// transition. Utterances that arrive while a cycle is in flight are
// dropped with ErrBusy.
func (m *Machine) HandleUtterance(ctx context.Context, transcript string) error {
	if strings.TrimSpace(transcript) == "" {
		return nil
	}
	if !m.processing.CompareAndSwap(false, true) {
		m.metrics.inputDropped()
		return ErrBusy
	}
	defer m.processing.Store(false)

	return m.handleUtterance(ctx, transcript)
}

// handleUtterance runs with the processing latch already held.
func (m *Machine) handleUtterance(ctx context.Context, transcript string) error {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil
	}

	m.mu.Lock()
	state := m.state
	language := m.language
	m.mu.Unlock()

	switch state {
	case StateEnd:
		return ErrEnded
	case StateSelectLanguage:
		return ErrLanguageNotSet
	}

	m.history.AddUserSnippet(transcript)
	cmd := Interpret(transcript, state)
	m.logger.Debug("utterance interpreted",
		"state", state.String(), "command", cmd.Kind.String())

	switch cmd.Kind {
	case CommandStop:
		return m.applyStop(ctx, language)
	case CommandRepeat:
		m.gate.Repeat(ctx, language)
		return nil
	case CommandChangeCheckpoint:
		return m.applyChangeCheckpoint(ctx, language, cmd.Arg)
	case CommandMarkReached:
		return m.applyMarkReached(ctx, language)
	case CommandSetGoal:
		return m.applySetGoal(ctx, language, cmd.Arg)
	default:
		// Plain speech while navigating carries no intent. Ignored.
		return nil
	}
}

func (m *Machine) applyStop(ctx context.Context, language string) error {
	m.mu.Lock()
	if m.state != StateNavigating && m.state != StateReached {
		m.mu.Unlock()
		return nil
	}
	m.setCheckpointLocked("")
	m.transitionLocked(StateAskGoal)
	m.mu.Unlock()

	m.gate.Say(ctx, "Navigation stopped.", language, planner.UrgencyNormal, planner.DangerSafe)
	return nil
}

func (m *Machine) applyChangeCheckpoint(ctx context.Context, language, dest string) error {
	if dest == "" {
		// "new checkpoint" with no destination: ignore rather than
		// wiping the current goal.
		return nil
	}
	m.mu.Lock()
	if m.state != StateNavigating {
		m.mu.Unlock()
		return nil
	}
	m.setCheckpointLocked(dest)
	m.mu.Unlock()

	m.gate.Say(ctx, fmt.Sprintf("New checkpoint: %s.", dest), language,
		planner.UrgencyNormal, planner.DangerSafe)
	return nil
}

func (m *Machine) applyMarkReached(ctx context.Context, language string) error {
	m.mu.Lock()
	if m.state != StateNavigating {
		m.mu.Unlock()
		return nil
	}
	checkpoint := m.checkpoint
	m.transitionLocked(StateReached)
	m.mu.Unlock()

	m.gate.Say(ctx, fmt.Sprintf("You've reached %s.", checkpoint), language,
		planner.UrgencyNormal, planner.DangerSafe)
	if m.deps.Haptics != nil {
		m.deps.Haptics.Pulse(speech.LevelStrong)
	}
	m.logger.Info("checkpoint reached", "checkpoint", checkpoint, "source", "voice")
	return nil
}

func (m *Machine) applySetGoal(ctx context.Context, language, dest string) error {
	m.mu.Lock()
	if !m.state.AcceptsGoal() {
		m.mu.Unlock()
		return nil
	}
	fromReached := m.state == StateReached
	m.setCheckpointLocked(dest)
	m.transitionLocked(StateNavigating)
	m.mu.Unlock()

	if fromReached {
		m.gate.Say(ctx, fmt.Sprintf("New checkpoint: %s.", dest), language,
			planner.UrgencyNormal, planner.DangerSafe)
	}
	return nil
}

// Tick runs one guidance cycle. It is the scheduler's entry point and
// may be called directly in tests. A tick landing while another cycle
// is in flight is skipped with ErrBusy.
func (m *Machine) Tick(ctx context.Context) error {
	if !m.processing.CompareAndSwap(false, true) {
		m.metrics.tickSkipped()
		return ErrBusy
	}
	defer m.processing.Store(false)

	m.mu.Lock()
	if m.state != StateNavigating {
		m.mu.Unlock()
		return ErrNotNavigating
	}
	if m.checkpoint == "" {
		m.mu.Unlock()
		return ErrNoCheckpoint
	}
	epoch := m.epoch
	checkpoint := m.checkpoint
	language := m.language
	m.mu.Unlock()

	return m.runCycle(ctx, epoch, checkpoint, language)
}

// RequestCycle runs one guidance cycle on demand. It is the entry point
// for the push trigger policy.
func (m *Machine) RequestCycle(ctx context.Context) error {
	return m.Tick(ctx)
}

// runCycle executes capture, detect, plan, speak. The processing latch
// is already held by the caller.
func (m *Machine) runCycle(ctx context.Context, epoch uint64, checkpoint, language string) error {
	start := time.Now()
	m.metrics.cycleStarted()

	frame, err := m.captureFrame(ctx)
	if err != nil {
		if errors.Is(err, frames.ErrNoFrame) || errors.Is(err, frames.ErrStaleFrame) {
			// No usable frame yet. Wait for the next tick quietly.
			m.logger.Debug("cycle skipped, no frame", "error", err)
			m.metrics.cycleFailed()
			return nil
		}
		return m.failCycle(ctx, language, fmt.Errorf("capture frame: %w", err))
	}

	detections, err := m.detectObjects(ctx, frame)
	if err != nil {
		return m.failCycle(ctx, language, fmt.Errorf("detect objects: %w", err))
	}

	pctx, cancel := context.WithTimeout(ctx, m.cfg.CallTimeout)
	defer cancel()
	inst, err := m.deps.Planner.Plan(pctx, planner.Request{
		Checkpoint:         checkpoint,
		Detections:         detections,
		RecentInstructions: m.history.Instructions(),
		HistorySnippets:    m.history.Snippets(),
		Language:           language,
	})
	if err != nil {
		return m.failCycle(ctx, language, fmt.Errorf("plan: %w", err))
	}

	// Commit point. The result only counts if the destination and the
	// state are still the ones the cycle started with.
	m.mu.Lock()
	if m.epoch != epoch || m.state != StateNavigating {
		m.mu.Unlock()
		m.metrics.staleDiscarded()
		m.logger.Debug("stale cycle result discarded", "checkpoint", checkpoint)
		return nil
	}
	reached := inst.Reached
	if reached {
		m.transitionLocked(StateReached)
	}
	m.mu.Unlock()

	if reached && m.cfg.ConfirmReached {
		// The confirmation is a success message, not the instruction;
		// it must not inherit a warning or danger classification.
		m.gate.Say(ctx, fmt.Sprintf("You have reached %s.", checkpoint), language,
			planner.UrgencyNormal, planner.DangerSafe)
	} else {
		m.gate.Say(ctx, inst.Text, language, inst.Urgency, inst.Danger)
	}
	if reached {
		if m.deps.Haptics != nil {
			m.deps.Haptics.Pulse(speech.LevelStrong)
		}
		m.logger.Info("checkpoint reached", "checkpoint", checkpoint)
	}

	m.metrics.cycleCompleted(time.Since(start))
	return nil
}

func (m *Machine) captureFrame(ctx context.Context) ([]byte, error) {
	cctx, cancel := context.WithTimeout(ctx, m.cfg.CallTimeout)
	defer cancel()
	return m.deps.Frames.Capture(cctx)
}

func (m *Machine) detectObjects(ctx context.Context, frame []byte) ([]planner.Detection, error) {
	if m.deps.Detector == nil {
		return nil, nil
	}
	dctx, cancel := context.WithTimeout(ctx, m.cfg.CallTimeout)
	defer cancel()
	res, err := m.deps.Detector.Detect(dctx, frame)
	if err != nil {
		return nil, err
	}
	out := make([]planner.Detection, 0, len(res.Detections))
	for _, d := range res.Detections {
		out = append(out, planner.Detection{
			Class:      d.Class,
			Confidence: d.Confidence,
			XYWH:       d.XYWH,
		})
	}
	return out, nil
}

// failCycle speaks a single degradation message and leaves state
// unchanged so the next cycle retries.
func (m *Machine) failCycle(ctx context.Context, language string, err error) error {
	m.metrics.cycleFailed()
	m.logger.Warn("guidance cycle failed", "error", err)
	m.gate.Say(ctx, degradedMessage, language, planner.UrgencyWarning, planner.DangerCaution)
	return err
}

// AdvanceToNext moves from reached to ask-next, clearing the completed
// checkpoint. Used by the app shell when prompting for a new goal.
func (m *Machine) AdvanceToNext() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateReached {
		return fmt.Errorf("%w: advance from %s", ErrInvalidTransition, m.state)
	}
	m.setCheckpointLocked("")
	m.transitionLocked(StateAskNext)
	return nil
}

// End terminates the session. Terminal; all further input is rejected.
func (m *Machine) End() {
	m.mu.Lock()
	m.setCheckpointLocked("")
	m.transitionLocked(StateEnd)
	m.mu.Unlock()
	m.gate.Cancel()
}

// Status is a point-in-time snapshot of the controller.
type Status struct {
	State      State
	Checkpoint string
	Language   string
	Busy       bool
	LastSpoken *Spoken
	Metrics    Metrics
}

// Status returns a snapshot for dashboards and diagnostics.
func (m *Machine) Status() Status {
	m.mu.Lock()
	st := Status{
		State:      m.state,
		Checkpoint: m.checkpoint,
		Language:   m.language,
	}
	m.mu.Unlock()
	st.Busy = m.processing.Load()
	st.LastSpoken = m.gate.Last()
	st.Metrics = m.metrics.snapshot()
	return st
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Checkpoint returns the current destination, empty when none is set.
func (m *Machine) Checkpoint() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkpoint
}

// History exposes the rolling navigation context.
func (m *Machine) History() *History {
	return m.history
}

// Close stops the scheduler, cancels any in-flight scheduled cycle and
// releases collaborator resources.
func (m *Machine) Close() error {
	m.End()
	m.lifeCancel()
	m.sched.Stop()

	var errs []error
	if m.deps.Transcriber != nil {
		errs = append(errs, m.deps.Transcriber.Close())
	}
	if m.deps.Detector != nil {
		errs = append(errs, m.deps.Detector.Close())
	}
	errs = append(errs,
		m.deps.Planner.Close(),
		m.deps.Speaker.Close(),
		m.deps.Frames.Close(),
	)
	return errors.Join(errs...)
}
