// Package stt provides speech-to-text transcription for the guide client.
//
// The package abstracts the transcription backend behind the Transcriber
// interface. The bundled Seer implementation posts recorded audio to the
// Seer backend's /stt endpoint (Whisper on the server side); Mock supports
// testing without a network.
//
// Example usage:
//
//	tr := stt.NewSeer(stt.WithBaseURL("http://localhost:8000"))
//	defer tr.Close()
//
//	text, err := tr.Transcribe(ctx, audioBytes, "en")
package stt

import "context"

// Transcriber converts recorded audio into text.
// Implementations must be safe for use from a single goroutine at a time;
// the guidance controller never issues overlapping calls.
type Transcriber interface {
	// Transcribe converts the audio recording to text.
	// Audio is an encoded recording (m4a, wav, ...) as captured by the
	// client; language is a hint for the recognizer (e.g. "en").
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)

	// Close releases any resources held by the transcriber.
	Close() error
}
