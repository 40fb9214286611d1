package web

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/seerlabs/go-seer/pkg/guidance"
	"github.com/seerlabs/go-seer/pkg/hub"
)

// statusResponse is the JSON shape of a controller snapshot.
type statusResponse struct {
	State      string     `json:"state"`
	Checkpoint string     `json:"checkpoint,omitempty"`
	Language   string     `json:"language,omitempty"`
	Busy       bool       `json:"busy"`
	LastSpoken *spokenRef `json:"last_spoken,omitempty"`

	CyclesCompleted uint64 `json:"cycles_completed"`
	CyclesFailed    uint64 `json:"cycles_failed"`
	TicksSkipped    uint64 `json:"ticks_skipped"`
	InputsDropped   uint64 `json:"inputs_dropped"`
}

type spokenRef struct {
	Text    string    `json:"text"`
	Urgency string    `json:"urgency"`
	Danger  string    `json:"danger"`
	At      time.Time `json:"at"`
}

func toStatusResponse(st guidance.Status) statusResponse {
	resp := statusResponse{
		State:           st.State.String(),
		Checkpoint:      st.Checkpoint,
		Language:        st.Language,
		Busy:            st.Busy,
		CyclesCompleted: st.Metrics.CyclesCompleted,
		CyclesFailed:    st.Metrics.CyclesFailed,
		TicksSkipped:    st.Metrics.TicksSkipped,
		InputsDropped:   st.Metrics.InputsDropped,
	}
	if st.LastSpoken != nil {
		resp.LastSpoken = &spokenRef{
			Text:    st.LastSpoken.Text,
			Urgency: string(st.LastSpoken.Urgency),
			Danger:  string(st.LastSpoken.Danger),
			At:      st.LastSpoken.At,
		}
	}
	return resp
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(toStatusResponse(s.machine.Status()))
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	h := s.machine.History()
	return c.JSON(fiber.Map{
		"instructions": h.Instructions(),
		"snippets":     h.Snippets(),
	})
}

type languageRequest struct {
	Language string `json:"language"`
}

func (s *Server) handleLanguage(c *fiber.Ctx) error {
	var req languageRequest
	if err := c.BodyParser(&req); err != nil || req.Language == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "language required"})
	}
	if err := s.machine.SetLanguage(req.Language); err != nil {
		return guidanceError(c, err)
	}
	return c.JSON(toStatusResponse(s.machine.Status()))
}

type utteranceRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleUtterance(c *fiber.Ctx) error {
	var req utteranceRequest
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text required"})
	}
	if err := s.machine.HandleUtterance(c.Context(), req.Text); err != nil {
		return guidanceError(c, err)
	}
	return c.JSON(toStatusResponse(s.machine.Status()))
}

// handleAudio accepts a raw voice recording in the request body and
// runs it through transcription and command handling.
func (s *Server) handleAudio(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "audio required"})
	}
	if err := s.machine.HandleAudio(c.Context(), body); err != nil {
		return guidanceError(c, err)
	}
	return c.JSON(toStatusResponse(s.machine.Status()))
}

// handleFrame accepts a JPEG posted by the companion app, feeds the
// push frame source, and relays it to dashboard viewers.
func (s *Server) handleFrame(c *fiber.Ctx) error {
	if s.push == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "frame push not enabled"})
	}
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "frame required"})
	}
	frame := make([]byte, len(body))
	copy(frame, body)
	s.push.Offer(frame)
	s.frameHub.BroadcastBinary(frame)
	return c.SendStatus(fiber.StatusAccepted)
}

// handleCycle triggers one guidance cycle, for push-to-ask clients.
func (s *Server) handleCycle(c *fiber.Ctx) error {
	if err := s.machine.RequestCycle(c.Context()); err != nil {
		return guidanceError(c, err)
	}
	return c.JSON(toStatusResponse(s.machine.Status()))
}

func (s *Server) handleNext(c *fiber.Ctx) error {
	if err := s.machine.AdvanceToNext(); err != nil {
		return guidanceError(c, err)
	}
	return c.JSON(toStatusResponse(s.machine.Status()))
}

// guidanceError maps controller errors onto HTTP statuses. Dropped
// inputs are a conflict, not a failure; the client simply retries.
func guidanceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, guidance.ErrBusy):
		status = fiber.StatusConflict
	case errors.Is(err, guidance.ErrNotNavigating),
		errors.Is(err, guidance.ErrLanguageNotSet),
		errors.Is(err, guidance.ErrInvalidTransition),
		errors.Is(err, guidance.ErrNoCheckpoint):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, guidance.ErrEnded):
		status = fiber.StatusGone
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// handleEventsWS streams guidance events. The current status is sent
// first so late subscribers have a baseline.
func (s *Server) handleEventsWS(conn *websocket.Conn) {
	conn.WriteJSON(hub.StatusEvent(toStatusResponse(s.machine.Status())))
	client := hub.NewClient(s.eventHub, conn)
	client.Run()
}

// handleFramesWS relays JPEG frames. Binary payloads sent by the
// companion app feed the push source; all subscribers receive them.
func (s *Server) handleFramesWS(conn *websocket.Conn) {
	client := hub.NewIngestClient(s.frameHub, conn, func(data []byte) {
		if s.push != nil {
			s.push.Offer(data)
		}
		s.frameHub.BroadcastBinary(data)
	})
	client.Run()
}
