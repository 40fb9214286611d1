package detect

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSeerDetect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detect" {
			t.Errorf("path = %s, want /detect", r.URL.Path)
		}
		if err := r.ParseMultipartForm(4 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("image field missing: %v", err)
		}
		file.Close()
		if header.Filename == "" {
			t.Error("image filename missing")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Result{
			ImageWidth:  640,
			ImageHeight: 480,
			Detections: []Detection{
				{Class: "person", Confidence: 0.88, XYWH: [4]float64{300, 200, 60, 160}},
			},
		})
	}))
	defer server.Close()

	d := NewSeer(WithBaseURL(server.URL))
	defer d.Close()

	res, err := d.Detect(context.Background(), []byte("jpeg"))
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if res.ImageWidth != 640 || res.ImageHeight != 480 {
		t.Errorf("dims = %dx%d", res.ImageWidth, res.ImageHeight)
	}
	if len(res.Detections) != 1 || res.Detections[0].Class != "person" {
		t.Errorf("detections = %+v", res.Detections)
	}
}

func TestSeerDetectValidation(t *testing.T) {
	t.Run("missing base URL", func(t *testing.T) {
		d := NewSeer()
		if _, err := d.Detect(context.Background(), []byte("x")); !errors.Is(err, ErrMissingBaseURL) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("empty image", func(t *testing.T) {
		d := NewSeer(WithBaseURL("http://localhost:1"))
		if _, err := d.Detect(context.Background(), nil); !errors.Is(err, ErrEmptyImage) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestSeerDetectServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "model loading"})
	}))
	defer server.Close()

	d := NewSeer(WithBaseURL(server.URL))
	defer d.Close()

	_, err := d.Detect(context.Background(), []byte("jpeg"))
	var derr *DetectionError
	if !errors.As(err, &derr) {
		t.Fatalf("error type = %T (%v)", err, err)
	}
	if derr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d", derr.StatusCode)
	}
}

func TestDetectionIsCentered(t *testing.T) {
	tests := []struct {
		name string
		cx   float64
		want bool
	}{
		{"left edge", 50, false},
		{"center", 320, true},
		{"right edge", 600, false},
		{"left third boundary", 213, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Detection{XYWH: [4]float64{tt.cx, 240, 40, 40}}
			if got := d.IsCentered(640); got != tt.want {
				t.Errorf("IsCentered = %v, want %v", got, tt.want)
			}
		})
	}
}
