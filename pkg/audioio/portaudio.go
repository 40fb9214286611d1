package audioio

import (
	"context"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// initOnce guards global PortAudio initialization.
// PortAudio must be initialized exactly once per process.
var (
	initOnce sync.Once
	initErr  error
)

func ensureInit() error {
	initOnce.Do(func() {
		initErr = portaudio.Initialize()
	})
	return initErr
}

// PortAudioSource captures microphone audio through PortAudio.
type PortAudioSource struct {
	cfg Config

	mu      sync.Mutex
	stream  *portaudio.Stream
	buffer  []int16
	chunks  chan Chunk
	running bool
	closed  bool
}

// NewPortAudioSource creates a microphone capture source.
func NewPortAudioSource(cfg Config) (*PortAudioSource, error) {
	if err := ensureInit(); err != nil {
		return nil, fmt.Errorf("audioio: portaudio init: %w", err)
	}
	return &PortAudioSource{
		cfg:    cfg,
		buffer: make([]int16, cfg.BufferSize()),
		chunks: make(chan Chunk, 16),
	}, nil
}

// Start implements Source.
func (s *PortAudioSource) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSourceClosed
	}
	if s.running {
		return nil
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(s.cfg.SampleRate), len(s.buffer), s.buffer)
	if err != nil {
		return fmt.Errorf("audioio: open capture stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("audioio: start capture stream: %w", err)
	}
	s.stream = stream
	s.running = true

	go s.captureLoop()
	return nil
}

func (s *PortAudioSource) captureLoop() {
	for {
		s.mu.Lock()
		running := s.running
		stream := s.stream
		s.mu.Unlock()
		if !running || stream == nil {
			return
		}

		if err := stream.Read(); err != nil {
			// Overflows are routine on slow consumers; keep capturing.
			continue
		}

		samples := make([]int16, len(s.buffer))
		copy(samples, s.buffer)
		select {
		case s.chunks <- Chunk{Samples: samples, SampleRate: s.cfg.SampleRate}:
		default:
			// Consumer is behind; drop the oldest by draining one.
			select {
			case <-s.chunks:
			default:
			}
		}
	}
}

// Read implements Source.
func (s *PortAudioSource) Read(ctx context.Context) (Chunk, error) {
	select {
	case <-ctx.Done():
		return Chunk{}, ctx.Err()
	case chunk, ok := <-s.chunks:
		if !ok {
			return Chunk{}, ErrSourceClosed
		}
		return chunk, nil
	}
}

// Stop implements Source.
func (s *PortAudioSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	if s.stream != nil {
		s.stream.Stop()
		s.stream.Close()
		s.stream = nil
	}
	return nil
}

// Close implements Source.
func (s *PortAudioSource) Close() error {
	if err := s.Stop(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.chunks)
	}
	return nil
}

// PortAudioSink plays audio through PortAudio.
type PortAudioSink struct {
	cfg Config

	mu      sync.Mutex
	stream  *portaudio.Stream
	buffer  []int16
	pending []int16
	running bool
}

// NewPortAudioSink creates a speaker playback sink.
func NewPortAudioSink(cfg Config) (*PortAudioSink, error) {
	if err := ensureInit(); err != nil {
		return nil, fmt.Errorf("audioio: portaudio init: %w", err)
	}
	return &PortAudioSink{
		cfg:    cfg,
		buffer: make([]int16, cfg.BufferSize()),
	}, nil
}

// Start implements Sink.
func (p *PortAudioSink) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return nil
	}

	stream, err := portaudio.OpenDefaultStream(0, 1, float64(p.cfg.SampleRate), len(p.buffer), p.buffer)
	if err != nil {
		return fmt.Errorf("audioio: open playback stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("audioio: start playback stream: %w", err)
	}
	p.stream = stream
	p.running = true
	return nil
}

// Write implements Sink. Chunks at other sample rates are resampled.
func (p *PortAudioSink) Write(ctx context.Context, chunk Chunk) error {
	samples := chunk.Samples
	if chunk.SampleRate != 0 && chunk.SampleRate != p.cfg.SampleRate {
		samples = Resample(samples, chunk.SampleRate, p.cfg.SampleRate)
	}

	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return fmt.Errorf("audioio: sink not started")
	}
	p.pending = append(p.pending, samples...)

	for len(p.pending) >= len(p.buffer) {
		if err := ctx.Err(); err != nil {
			p.mu.Unlock()
			return err
		}
		copy(p.buffer, p.pending[:len(p.buffer)])
		p.pending = p.pending[len(p.buffer):]
		stream := p.stream
		// Write blocks until the device consumes the buffer; releasing the
		// lock here would let Clear race the buffer, so hold it.
		if err := stream.Write(); err != nil {
			p.mu.Unlock()
			return fmt.Errorf("audioio: playback write: %w", err)
		}
	}
	p.mu.Unlock()
	return nil
}

// Clear implements Sink.
func (p *PortAudioSink) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = nil
	return nil
}

// Stop implements Sink.
func (p *PortAudioSink) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return nil
	}
	p.running = false
	p.pending = nil
	if p.stream != nil {
		p.stream.Stop()
		p.stream.Close()
		p.stream = nil
	}
	return nil
}

// Close implements Sink.
func (p *PortAudioSink) Close() error {
	return p.Stop()
}

// Ensure interfaces are implemented
var (
	_ Source = (*PortAudioSource)(nil)
	_ Sink   = (*PortAudioSink)(nil)
)
