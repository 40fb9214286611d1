// Package audioio provides microphone capture and speaker playback for
// the guide client.
//
// Capture feeds the push-to-talk recorder (utterances sent to the
// transcription service); playback renders synthesized speech. Backends:
//   - PortAudio - cross-platform capture and playback
//   - Mock - CI/testing without hardware
package audioio

import "context"

// Chunk is a block of PCM16 mono audio samples.
type Chunk struct {
	// Samples contains PCM16 audio samples (little-endian).
	Samples []int16

	// SampleRate is the sample rate of this chunk.
	SampleRate int
}

// Bytes returns the raw little-endian bytes of the chunk.
func (c *Chunk) Bytes() []byte {
	return SamplesToBytes(c.Samples)
}

// Duration returns the chunk duration in seconds.
func (c *Chunk) Duration() float64 {
	if c.SampleRate == 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// Source captures audio from a microphone.
type Source interface {
	// Start begins audio capture.
	Start(ctx context.Context) error

	// Read returns the next captured chunk.
	// It blocks until audio is available, the source stops, or ctx ends.
	Read(ctx context.Context) (Chunk, error)

	// Stop halts capture. Safe to call multiple times.
	Stop() error

	// Close releases all resources. The source cannot be restarted.
	Close() error
}

// Sink plays audio to a speaker.
type Sink interface {
	// Start begins audio playback.
	Start(ctx context.Context) error

	// Write queues an audio chunk for playback.
	// It may block if the output buffer is full.
	Write(ctx context.Context, chunk Chunk) error

	// Clear discards all buffered audio immediately.
	// Use this to interrupt playback.
	Clear() error

	// Stop halts playback. Safe to call multiple times.
	Stop() error

	// Close releases all resources. The sink cannot be restarted.
	Close() error
}
