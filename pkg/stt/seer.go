package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/seerlabs/go-seer/internal/httpc"
)

// Config holds Seer transcriber configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// BaseURL is the Seer backend base URL.
	BaseURL string

	// Timeout bounds each transcription request.
	Timeout time.Duration

	// HTTPClient overrides the shared client (mainly for tests).
	HTTPClient *http.Client

	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// Option is a functional option for configuring the Seer transcriber.
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

// Seer transcribes audio via the Seer backend's /stt endpoint.
type Seer struct {
	cfg    *Config
	client *http.Client
}

// NewSeer creates a transcriber backed by the Seer /stt endpoint.
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

// sttResponse is the /stt wire response.
type sttResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Transcribe implements Transcriber.
func (s *Seer) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if s.cfg.BaseURL == "" {
		return "", ErrMissingBaseURL
	}
	if len(audio) == 0 {
		return "", ErrEmptyAudio
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("audio", "audio.m4a")
	if err != nil {
		return "", &TranscriptionError{Message: "build request", Cause: err}
	}
	if _, err := part.Write(audio); err != nil {
		return "", &TranscriptionError{Message: "build request", Cause: err}
	}
	if language != "" {
		if err := mw.WriteField("language", language); err != nil {
			return "", &TranscriptionError{Message: "build request", Cause: err}
		}
	}
	if err := mw.Close(); err != nil {
		return "", &TranscriptionError{Message: "build request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/stt", &body)
	if err != nil {
		return "", &TranscriptionError{Message: "build request", Cause: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return "", &TranscriptionError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &TranscriptionError{Message: "read response", Cause: err}
	}

	var parsed sttResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", &TranscriptionError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return "", &TranscriptionError{Message: fmt.Sprintf("malformed response: %.80s", data), Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &TranscriptionError{StatusCode: resp.StatusCode, Message: parsed.Error}
	}

	s.cfg.Logger.Debug("transcribed audio",
		"bytes", len(audio),
		"chars", len(parsed.Text),
		"elapsed", time.Since(start),
	)
	return strings.TrimSpace(parsed.Text), nil
}

// Close implements Transcriber.
func (s *Seer) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// Ensure Seer implements Transcriber
var _ Transcriber = (*Seer)(nil)
