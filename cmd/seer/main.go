// Seer guide client: walks a visually-impaired user to a spoken
// checkpoint by capturing camera frames, asking the planning backend
// for the next instruction, and speaking it.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seerlabs/go-seer/internal/config"
	"github.com/seerlabs/go-seer/internal/log"
	"github.com/seerlabs/go-seer/pkg/guidance"
	"github.com/seerlabs/go-seer/pkg/seer"
)

func main() {
	cfg, logLevel, logFile := parseFlags()

	log.InitWithOptions(log.Options{Level: logLevel, File: logFile})

	app, err := seer.New(cfg)
	if err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}
	if err := app.Init(); err != nil {
		log.Error("initialization failed", "error", err)
		os.Exit(1)
	}
	defer app.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		log.Error("runtime error", "error", err)
		os.Exit(1)
	}
}

// parseFlags builds the app configuration from environment variables
// overridden by command line flags.
func parseFlags() (seer.Config, string, string) {
	cfg := seer.DefaultConfig()
	logLevel := "info"
	logFile := ""

	env, err := config.Load()
	if err == nil {
		cfg = cfg.FromEnv(env)
		logLevel = env.LogLevel
		logFile = env.LogFile
	}

	serverURL := flag.String("server", "", "Seer backend base URL (overrides SEER_SERVER_URL)")
	language := flag.String("language", "", "session language, empty asks the user")
	webAddr := flag.String("web", cfg.WebAddr, "companion API listen address, empty disables")
	frameSource := flag.String("frames", cfg.FrameSource, "frame source: push, ws, camera")
	frameWSURL := flag.String("frames-ws-url", cfg.FrameWSURL, "stream URL for the ws frame source")
	cameraDevice := flag.Int("camera", cfg.CameraDevice, "device ID for the camera frame source")
	yoloModel := flag.String("yolo", cfg.YOLOModel, "local YOLOv8 ONNX model, empty uses server detection")
	cycle := flag.Duration("cycle", cfg.CycleInterval, "guidance cadence")
	trigger := flag.String("trigger", string(cfg.Trigger), "cycle trigger: interval or push")
	confirmReached := flag.Bool("confirm-reached", cfg.ConfirmReached, "announce arrival explicitly")
	consoleSpeech := flag.Bool("console-speech", false, "log speech instead of playing audio")
	debug := flag.Bool("debug", false, "enable verbose debug logging")
	flag.Parse()

	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if *language != "" {
		cfg.Language = *language
	}
	cfg.WebAddr = *webAddr
	cfg.FrameSource = *frameSource
	cfg.FrameWSURL = *frameWSURL
	cfg.CameraDevice = *cameraDevice
	cfg.YOLOModel = *yoloModel
	if *cycle > 0 {
		cfg.CycleInterval = *cycle
	}
	cfg.Trigger = guidance.Trigger(*trigger)
	cfg.ConfirmReached = *confirmReached
	cfg.ConsoleSpeech = *consoleSpeech
	cfg.Debug = *debug
	if cfg.Debug {
		logLevel = "debug"
	}
	if cfg.FrameMaxAge <= 0 {
		cfg.FrameMaxAge = 10 * time.Second
	}
	return cfg, logLevel, logFile
}
