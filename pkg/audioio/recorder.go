package audioio

import (
	"context"
	"errors"
	"sync"
)

// MinRecordingSamples is the minimum utterance length accepted (200ms at
// 16kHz). Shorter recordings are padded with silence; the transcription
// service rejects clips under 100ms.
const MinRecordingSamples = 3200

// ErrNotRecording is returned by Finish when no recording is active.
var ErrNotRecording = errors.New("audioio: not recording")

// Recorder implements press-to-talk capture: Begin starts pulling chunks
// from a Source, Finish stops and returns the utterance as a WAV file
// ready for the transcription service.
type Recorder struct {
	source Source

	mu        sync.Mutex
	recording bool
	cancel    context.CancelFunc
	done      chan struct{}
	samples   []int16
	rate      int
}

// NewRecorder creates a recorder reading from the given source.
func NewRecorder(source Source) *Recorder {
	return &Recorder{source: source}
}

// Begin starts recording. A second Begin while recording is a no-op.
func (r *Recorder) Begin(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return nil
	}
	if err := r.source.Start(ctx); err != nil {
		return err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.samples = r.samples[:0]
	r.recording = true

	go r.pullLoop(loopCtx)
	return nil
}

func (r *Recorder) pullLoop(ctx context.Context) {
	defer close(r.done)
	for {
		chunk, err := r.source.Read(ctx)
		if err != nil {
			return
		}
		r.mu.Lock()
		if r.recording {
			r.samples = append(r.samples, chunk.Samples...)
			r.rate = chunk.SampleRate
		}
		r.mu.Unlock()
	}
}

// Finish stops recording and returns the captured utterance as WAV bytes.
func (r *Recorder) Finish() ([]byte, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return nil, ErrNotRecording
	}
	r.recording = false
	cancel := r.cancel
	done := r.done
	r.mu.Unlock()

	cancel()
	<-done
	r.source.Stop()

	r.mu.Lock()
	defer r.mu.Unlock()
	samples := r.samples
	rate := r.rate
	if rate == 0 {
		rate = 16000
	}
	if len(samples) < MinRecordingSamples {
		padded := make([]int16, MinRecordingSamples)
		copy(padded, samples)
		samples = padded
	}
	return EncodeWAV(samples, rate), nil
}

// Recording reports whether a recording is in progress.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}
