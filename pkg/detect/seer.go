package detect

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

// Config holds Seer detector configuration.
type Config struct {
	// BaseURL is the Seer backend base URL.
	BaseURL string

	// Timeout bounds each detection request.
	Timeout time.Duration

	// HTTPClient overrides the shared client (mainly for tests).
	HTTPClient *http.Client

	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// Option is a functional option for configuring the Seer detector.
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

// Seer detects objects via the Seer backend's /detect endpoint.
type Seer struct {
	cfg    *Config
	client *http.Client
}

// NewSeer creates a detector backed by the Seer /detect endpoint.
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

// detectResponse is the /detect wire response.
type detectResponse struct {
	Result
	Error string `json:"error,omitempty"`
}

// Detect implements Detector.
func (s *Seer) Detect(ctx context.Context, jpeg []byte) (*Result, error) {
	if s.cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if len(jpeg) == 0 {
		return nil, ErrEmptyImage
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "frame.jpg")
	if err != nil {
		return nil, &DetectionError{Message: "build request", Cause: err}
	}
	if _, err := part.Write(jpeg); err != nil {
		return nil, &DetectionError{Message: "build request", Cause: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &DetectionError{Message: "build request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/detect", &body)
	if err != nil {
		return nil, &DetectionError{Message: "build request", Cause: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &DetectionError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &DetectionError{Message: "read response", Cause: err}
	}

	var parsed detectResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &DetectionError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, &DetectionError{Message: fmt.Sprintf("malformed response: %.80s", data), Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &DetectionError{StatusCode: resp.StatusCode, Message: parsed.Error}
	}

	s.cfg.Logger.Debug("remote detection complete",
		"objects", len(parsed.Detections),
		"elapsed", time.Since(start),
	)
	result := parsed.Result
	return &result, nil
}

// Close implements Detector.
func (s *Seer) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// Ensure Seer implements Detector
var _ Detector = (*Seer)(nil)
