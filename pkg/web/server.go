// Package web exposes the HTTP and websocket surface of the guide: a
// small JSON API for the companion app plus live event and frame
// streams for the dashboard.
package web

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/seerlabs/go-seer/pkg/frames"
	"github.com/seerlabs/go-seer/pkg/guidance"
	"github.com/seerlabs/go-seer/pkg/hub"
)

// Server serves the companion-app API and the dashboard streams.
type Server struct {
	app     *fiber.App
	addr    string
	logger  *slog.Logger
	machine *guidance.Machine

	// push receives frames posted by the companion app. Nil when the
	// deployment uses a camera or websocket frame source instead.
	push *frames.Push

	eventHub *hub.Hub
	frameHub *hub.Hub
}

// NewServer wires the API around a guidance machine. push may be nil.
func NewServer(addr string, machine *guidance.Machine, push *frames.Push, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		addr:     addr,
		logger:   logger,
		machine:  machine,
		push:     push,
		eventHub: hub.New("events", logger),
		frameHub: hub.New("frames", logger),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Seer",
		DisableStartupMessage: true,
		BodyLimit:             8 * 1024 * 1024,
	})
	app.Use(cors.New())

	app.Get("/", s.handleHealth)

	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/status", s.handleStatus)
	api.Get("/history", s.handleHistory)
	api.Post("/language", s.handleLanguage)
	api.Post("/utterance", s.handleUtterance)
	api.Post("/audio", s.handleAudio)
	api.Post("/frame", s.handleFrame)
	api.Post("/cycle", s.handleCycle)
	api.Post("/next", s.handleNext)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/events", websocket.New(s.handleEventsWS))
	app.Get("/ws/frames", websocket.New(s.handleFramesWS))

	s.app = app
	s.wireEvents()
	return s
}

// wireEvents forwards machine hooks onto the event stream.
func (s *Server) wireEvents() {
	s.machine.OnTransition(func(from, to guidance.State) {
		s.eventHub.BroadcastEvent(hub.StateEvent(from.String(), to.String()))
	})
	s.machine.OnSpeak(func(sp guidance.Spoken) {
		s.eventHub.BroadcastEvent(hub.SpokenEvent(sp.Text, string(sp.Urgency), string(sp.Danger), sp.At))
	})
}

// Start runs the hubs and blocks serving HTTP.
func (s *Server) Start() error {
	go s.eventHub.Run()
	go s.frameHub.Run()
	s.logger.Info("web server listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// Shutdown stops the server and disconnects all stream clients.
func (s *Server) Shutdown() error {
	err := s.app.Shutdown()
	s.eventHub.Stop()
	s.frameHub.Stop()
	return err
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// EventHub returns the guidance event stream.
func (s *Server) EventHub() *hub.Hub {
	return s.eventHub
}
