package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tosone/minimp3"

	"github.com/seerlabs/go-seer/internal/httpc"
	"github.com/seerlabs/go-seer/pkg/audioio"
)

// Config holds Seer speaker configuration.
type Config struct {
	// BaseURL is the Seer backend base URL.
	BaseURL string

	// Timeout bounds each synthesis request.
	Timeout time.Duration

	// CacheSize is how many synthesized utterances to keep.
	// Repeat commands re-speak from cache without a network round trip.
	CacheSize int

	// HTTPClient overrides the shared client (mainly for tests).
	HTTPClient *http.Client

	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// Option is a functional option for configuring the Seer speaker.
type Option func(*Config)

// WithBaseURL sets the backend base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = strings.TrimRight(url, "/") }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) { c.Timeout = timeout }
}

// WithCacheSize sets the synthesized audio cache size.
func WithCacheSize(n int) Option {
	return func(c *Config) { c.CacheSize = n }
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
		Timeout:   30 * time.Second,
		CacheSize: 32,
		Logger:    slog.Default(),
	}
}

// pcm is decoded audio ready for the sink.
type pcm struct {
	samples []int16
	rate    int
}

// Seer speaks through the Seer backend's /tts endpoint.
// Synthesis returns an MP3 URL; the speaker fetches, decodes and plays it.
type Seer struct {
	cfg    *Config
	client *http.Client
	sink   audioio.Sink
	cache  *lru.Cache[string, pcm]

	mu      sync.Mutex
	playGen uint64 // bumped by Cancel to abandon queued playback
}

// NewSeer creates a speaker backed by the Seer /tts endpoint, playing
// through the given sink.
func NewSeer(sink audioio.Sink, opts ...Option) (*Seer, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = httpc.NewClient(cfg.Timeout)
	}
	cache, err := lru.New[string, pcm](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("speech: create cache: %w", err)
	}
	return &Seer{cfg: cfg, client: client, sink: sink, cache: cache}, nil
}

// ttsResponse is the /tts wire response.
type ttsResponse struct {
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

// Speak implements Speaker.
func (s *Seer) Speak(ctx context.Context, text, language string) error {
	if s.cfg.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	key := language + "\x00" + text
	audio, ok := s.cache.Get(key)
	if !ok {
		var err error
		audio, err = s.synthesize(ctx, text, language)
		if err != nil {
			return err
		}
		s.cache.Add(key, audio)
	}

	// Interrupt whatever is playing, then queue the new utterance.
	s.mu.Lock()
	s.playGen++
	gen := s.playGen
	s.mu.Unlock()
	s.sink.Clear()

	go s.play(gen, audio)
	return nil
}

// play writes decoded audio to the sink unless Cancel superseded it.
func (s *Seer) play(gen uint64, audio pcm) {
	s.mu.Lock()
	stale := gen != s.playGen
	s.mu.Unlock()
	if stale {
		return
	}
	if err := s.sink.Write(context.Background(), audioio.Chunk{Samples: audio.samples, SampleRate: audio.rate}); err != nil {
		s.cfg.Logger.Warn("speech playback failed", "error", err)
	}
}

// synthesize calls /tts and fetches + decodes the resulting MP3.
func (s *Seer) synthesize(ctx context.Context, text, language string) (pcm, error) {
	payload, err := json.Marshal(map[string]string{"text": text, "language": language})
	if err != nil {
		return pcm{}, &OutputError{Message: "encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/tts", bytes.NewReader(payload))
	if err != nil {
		return pcm{}, &OutputError{Message: "build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return pcm{}, &OutputError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return pcm{}, &OutputError{Message: "read response", Cause: err}
	}

	var parsed ttsResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return pcm{}, &OutputError{Message: fmt.Sprintf("malformed response: %.80s", data), Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return pcm{}, &OutputError{StatusCode: resp.StatusCode, Message: parsed.Error}
	}

	mp3, err := s.fetchAudio(ctx, parsed.URL)
	if err != nil {
		return pcm{}, err
	}

	dec, pcmBytes, err := minimp3.DecodeFull(mp3)
	if err != nil {
		return pcm{}, &OutputError{Message: "decode mp3", Cause: err}
	}
	samples := audioio.BytesToSamples(pcmBytes)
	if dec.Channels == 2 {
		samples = audioio.StereoToMono(samples)
	}
	return pcm{samples: samples, rate: dec.SampleRate}, nil
}

// fetchAudio downloads the synthesized MP3, resolving relative URLs
// against the backend ("/static/<uuid>.mp3").
func (s *Seer) fetchAudio(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, &OutputError{Message: "no audio URL in response"}
	}
	if strings.HasPrefix(url, "/") {
		url = s.cfg.BaseURL + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &OutputError{Message: "build audio request", Cause: err}
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &OutputError{Message: "fetch audio", Cause: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &OutputError{StatusCode: resp.StatusCode, Message: "fetch audio"}
	}
	return io.ReadAll(io.LimitReader(resp.Body, 8<<20))
}

// Cancel implements Speaker.
func (s *Seer) Cancel() error {
	s.mu.Lock()
	s.playGen++
	s.mu.Unlock()
	return s.sink.Clear()
}

// Close implements Speaker.
func (s *Seer) Close() error {
	s.client.CloseIdleConnections()
	return s.sink.Close()
}

// Ensure Seer implements Speaker
var _ Speaker = (*Seer)(nil)
