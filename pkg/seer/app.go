package seer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seerlabs/go-seer/internal/log"
	"github.com/seerlabs/go-seer/pkg/audioio"
	"github.com/seerlabs/go-seer/pkg/detect"
	"github.com/seerlabs/go-seer/pkg/frames"
	"github.com/seerlabs/go-seer/pkg/guidance"
	"github.com/seerlabs/go-seer/pkg/planner"
	"github.com/seerlabs/go-seer/pkg/speech"
	"github.com/seerlabs/go-seer/pkg/stt"
	"github.com/seerlabs/go-seer/pkg/web"
)

// App is the assembled guide client.
type App struct {
	cfg    Config
	logger *slog.Logger

	machine *guidance.Machine
	server  *web.Server

	push *frames.Push
	sink audioio.Sink
}

// New validates configuration and creates an unstarted app.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &App{cfg: cfg, logger: log.L()}, nil
}

// Init builds and wires all components.
func (a *App) Init() error {
	source, err := a.buildFrameSource()
	if err != nil {
		return err
	}
	detector, err := a.buildDetector()
	if err != nil {
		return err
	}
	speaker, haptics, err := a.buildSpeech()
	if err != nil {
		return err
	}

	gcfg := guidance.DefaultConfig().
		WithLanguage(a.cfg.Language).
		WithCycleInterval(a.cfg.CycleInterval).
		WithTrigger(a.cfg.Trigger).
		WithConfirmReached(a.cfg.ConfirmReached).
		WithLogger(a.logger)

	machine, err := guidance.New(gcfg, guidance.Deps{
		Transcriber: stt.NewSeer(stt.WithBaseURL(a.cfg.ServerURL), stt.WithLogger(a.logger)),
		Detector:    detector,
		Planner:     planner.NewSeer(planner.WithBaseURL(a.cfg.ServerURL), planner.WithLogger(a.logger)),
		Frames:      source,
		Speaker:     speaker,
		Haptics:     haptics,
	})
	if err != nil {
		return fmt.Errorf("seer: build guidance controller: %w", err)
	}
	a.machine = machine

	if a.cfg.WebAddr != "" {
		a.server = web.NewServer(a.cfg.WebAddr, machine, a.push, a.logger)
	}
	return nil
}

func (a *App) buildFrameSource() (frames.Source, error) {
	switch a.cfg.FrameSource {
	case FramesPush:
		a.push = frames.NewPush(a.cfg.FrameMaxAge)
		return a.push, nil
	case FramesWS:
		ws := frames.NewWS(a.cfg.FrameWSURL, a.cfg.FrameMaxAge, a.logger)
		if err := ws.Connect(context.Background()); err != nil {
			return nil, err
		}
		return ws, nil
	case FramesCamera:
		return frames.NewCamera(a.cfg.CameraDevice, 0)
	default:
		return nil, fmt.Errorf("seer: unknown frame source %q", a.cfg.FrameSource)
	}
}

func (a *App) buildDetector() (detect.Detector, error) {
	if a.cfg.YOLOModel == "" {
		return detect.NewSeer(detect.WithBaseURL(a.cfg.ServerURL), detect.WithLogger(a.logger)), nil
	}
	ycfg := detect.DefaultYOLOConfig()
	ycfg.ModelPath = a.cfg.YOLOModel
	ycfg.Logger = a.logger
	return detect.NewYOLO(ycfg)
}

func (a *App) buildSpeech() (speech.Speaker, speech.Haptics, error) {
	if a.cfg.ConsoleSpeech {
		return speech.NewConsole(a.logger), speech.LogHaptics{Logger: a.logger}, nil
	}

	sink, err := audioio.NewSink(audioio.DefaultConfig())
	if err != nil {
		// Dev machines often have no audio device. Fall back to
		// console output instead of refusing to start.
		a.logger.Warn("audio sink unavailable, using console speech", "error", err)
		return speech.NewConsole(a.logger), speech.LogHaptics{Logger: a.logger}, nil
	}
	a.sink = sink

	speaker, err := speech.NewSeer(sink,
		speech.WithBaseURL(a.cfg.ServerURL),
		speech.WithLogger(a.logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("seer: build speaker: %w", err)
	}
	return speaker, speech.LogHaptics{Logger: a.logger}, nil
}

// Run serves until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("seer guide started",
		"server", a.cfg.ServerURL,
		"frames", a.cfg.FrameSource,
		"trigger", string(a.cfg.Trigger),
		"language", a.cfg.Language)

	if a.server == nil {
		<-ctx.Done()
		return nil
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("seer: web server: %w", err)
		}
		return nil
	}
}

// Machine exposes the guidance controller, for embedding callers.
func (a *App) Machine() *guidance.Machine {
	return a.machine
}

// Shutdown stops the web surface and releases all components.
func (a *App) Shutdown() {
	if a.server != nil {
		if err := a.server.Shutdown(); err != nil {
			a.logger.Warn("web server shutdown failed", "error", err)
		}
	}
	if a.machine != nil {
		if err := a.machine.Close(); err != nil {
			a.logger.Warn("controller shutdown failed", "error", err)
		}
	}
	if a.sink != nil {
		if err := a.sink.Close(); err != nil {
			a.logger.Warn("audio sink close failed", "error", err)
		}
	}
	a.logger.Info("seer guide stopped")
}
