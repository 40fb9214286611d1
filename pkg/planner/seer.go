package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/seerlabs/go-seer/internal/httpc"
)

// Config holds Seer planner configuration.
type Config struct {
	// BaseURL is the Seer backend base URL.
	BaseURL string

	// Timeout bounds each planning request.
	Timeout time.Duration

	// HTTPClient overrides the shared client (mainly for tests).
	HTTPClient *http.Client

	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// Option is a functional option for configuring the Seer planner.
type Option func(*Config)

// WithBaseURL sets the backend base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = strings.TrimRight(url, "/") }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) { c.Timeout = timeout }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) { c.HTTPClient = client }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
		Logger:  slog.Default(),
	}
}

// Seer plans guidance via the Seer backend's /plan endpoint.
type Seer struct {
	cfg    *Config
	client *http.Client
}

// NewSeer creates a planner backed by the Seer /plan endpoint.
func NewSeer(opts ...Option) *Seer {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = httpc.NewClient(cfg.Timeout)
	}
	return &Seer{cfg: cfg, client: client}
}

// planRequest is the /plan wire request.
type planRequest struct {
	Checkpoint         string      `json:"checkpoint"`
	Detections         []Detection `json:"detections"`
	RecentInstructions []string    `json:"recent_instructions"`
	HistorySnippets    []string    `json:"history_snippets"`
	Language           string      `json:"language,omitempty"`
}

// planResponse is the /plan wire response.
type planResponse struct {
	Instruction string `json:"instruction"`
	Urgency     string `json:"urgency"`
	DangerLevel string `json:"danger_level"`
	Reached     bool   `json:"reached"`
	Reason      string `json:"reason"`
	Error       string `json:"error,omitempty"`
}

// Plan implements Planner.
func (s *Seer) Plan(ctx context.Context, req Request) (*Instruction, error) {
	if s.cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if strings.TrimSpace(req.Checkpoint) == "" {
		return nil, ErrMissingCheckpoint
	}

	recent := req.RecentInstructions
	if len(recent) > MaxRecentInstructions {
		recent = recent[len(recent)-MaxRecentInstructions:]
	}

	wire := planRequest{
		Checkpoint:         req.Checkpoint,
		Detections:         req.Detections,
		RecentInstructions: recent,
		HistorySnippets:    req.HistorySnippets,
		Language:           req.Language,
	}
	if wire.Detections == nil {
		wire.Detections = []Detection{}
	}
	if wire.RecentInstructions == nil {
		wire.RecentInstructions = []string{}
	}
	if wire.HistorySnippets == nil {
		wire.HistorySnippets = []string{}
	}

	payload, err := json.Marshal(wire)
	if err != nil {
		return nil, &PlanningError{Message: "encode request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/plan", bytes.NewReader(payload))
	if err != nil {
		return nil, &PlanningError{Message: "build request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, &PlanningError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &PlanningError{Message: "read response", Cause: err}
	}

	var parsed planResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &PlanningError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, &PlanningError{Message: fmt.Sprintf("malformed response: %.80s", data), Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &PlanningError{StatusCode: resp.StatusCode, Message: parsed.Error}
	}

	inst := &Instruction{
		Text:    parsed.Instruction,
		Urgency: Urgency(parsed.Urgency),
		Danger:  DangerLevel(parsed.DangerLevel),
		Reached: parsed.Reached,
		Reason:  parsed.Reason,
	}
	// The backend omits fields on older revisions; default them.
	if inst.Text == "" {
		inst.Text = "Continue forward."
	}
	if inst.Urgency != UrgencyWarning {
		inst.Urgency = UrgencyNormal
	}
	switch inst.Danger {
	case DangerCaution, DangerDanger:
	default:
		inst.Danger = DangerSafe
	}

	s.cfg.Logger.Debug("plan complete",
		"checkpoint", req.Checkpoint,
		"reached", inst.Reached,
		"urgency", inst.Urgency,
		"elapsed", time.Since(start),
	)
	return inst, nil
}

// Close implements Planner.
func (s *Seer) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// Ensure Seer implements Planner
var _ Planner = (*Seer)(nil)
