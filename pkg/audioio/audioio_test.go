package audioio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"testing"
)

func TestResample(t *testing.T) {
	t.Run("same rate returns input", func(t *testing.T) {
		in := []int16{1, 2, 3}
		out := Resample(in, 16000, 16000)
		if len(out) != 3 {
			t.Fatalf("len = %d", len(out))
		}
	})

	t.Run("downsample halves length", func(t *testing.T) {
		in := make([]int16, 320)
		out := Resample(in, 32000, 16000)
		if len(out) != 160 {
			t.Errorf("len = %d, want 160", len(out))
		}
	})

	t.Run("upsample doubles length", func(t *testing.T) {
		in := make([]int16, 160)
		out := Resample(in, 8000, 16000)
		if len(out) != 320 {
			t.Errorf("len = %d, want 320", len(out))
		}
	})
}

func TestSamplesBytesRoundTrip(t *testing.T) {
	in := []int16{-32768, -1, 0, 1, 32767}
	out := BytesToSamples(SamplesToBytes(in))
	if len(out) != len(in) {
		t.Fatalf("len = %d", len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("sample %d = %d, want %d", i, out[i], in[i])
		}
	}
}

func TestStereoToMono(t *testing.T) {
	// Interleaved L/R pairs average per frame.
	in := []int16{100, 200, -100, 100}
	out := StereoToMono(in)
	if len(out) != 2 {
		t.Fatalf("len = %d", len(out))
	}
	if out[0] != 150 || out[1] != 0 {
		t.Errorf("out = %v", out)
	}
}

func TestEncodeWAVHeader(t *testing.T) {
	samples := make([]int16, 1600)
	data := EncodeWAV(samples, 16000)

	if !bytes.HasPrefix(data, []byte("RIFF")) {
		t.Fatal("missing RIFF magic")
	}
	if string(data[8:12]) != "WAVE" {
		t.Fatal("missing WAVE magic")
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != 16000 {
		t.Errorf("sample rate = %d", got)
	}
	// PCM16 mono: data payload is 2 bytes per sample, after 44-byte header.
	if got := len(data) - 44; got != len(samples)*2 {
		t.Errorf("payload = %d bytes, want %d", got, len(samples)*2)
	}
}

func TestChunkDuration(t *testing.T) {
	c := Chunk{Samples: make([]int16, 16000), SampleRate: 16000}
	if got := c.Duration(); got != 1.0 {
		t.Errorf("duration = %v, want 1.0", got)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	bad := Config{Backend: Backend("tape"), SampleRate: 16000}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestRecorderLifecycle(t *testing.T) {
	source := NewMockSource(DefaultConfig())
	rec := NewRecorder(source)
	ctx := context.Background()

	if _, err := rec.Finish(); !errors.Is(err, ErrNotRecording) {
		t.Fatalf("err = %v, want ErrNotRecording", err)
	}

	if err := rec.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if !rec.Recording() {
		t.Fatal("recorder should report recording")
	}

	source.Push(Chunk{Samples: make([]int16, 8000), SampleRate: 16000})

	wav, err := rec.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if rec.Recording() {
		t.Error("recorder should be stopped")
	}
	if !bytes.HasPrefix(wav, []byte("RIFF")) {
		t.Error("output is not a WAV file")
	}
}

func TestRecorderPadsShortRecordings(t *testing.T) {
	source := NewMockSource(DefaultConfig())
	rec := NewRecorder(source)

	if err := rec.Begin(context.Background()); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	source.PushSilence(100)

	wav, err := rec.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if got := len(wav) - 44; got < MinRecordingSamples*2 {
		t.Errorf("payload = %d bytes, want at least %d", got, MinRecordingSamples*2)
	}
}

func TestMockSinkRecordsWrites(t *testing.T) {
	sink := NewMockSink(DefaultConfig())
	ctx := context.Background()

	if err := sink.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := sink.Write(ctx, Chunk{Samples: make([]int16, 320), SampleRate: 16000}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	sink.Clear()

	if sink.TotalSamples != 320 || sink.ClearCalls != 1 {
		t.Errorf("samples = %d, clears = %d", sink.TotalSamples, sink.ClearCalls)
	}
}
