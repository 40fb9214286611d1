package detect

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// YOLOConfig holds local YOLO detector configuration.
type YOLOConfig struct {
	ModelPath        string
	ConfidenceThresh float32
	NMSThresh        float32
	InputWidth       int
	InputHeight      int
	Logger           *slog.Logger
}

// DefaultYOLOConfig returns production defaults for YOLOv8n.
func DefaultYOLOConfig() YOLOConfig {
	return YOLOConfig{
		ModelPath:        "models/yolov8n.onnx",
		ConfidenceThresh: 0.5,
		NMSThresh:        0.45,
		InputWidth:       640,
		InputHeight:      640,
		Logger:           slog.Default(),
	}
}

// YOLO runs YOLOv8 object detection locally through gocv.
// Use this when the backend's /detect endpoint is unreachable or when
// round-trip latency matters more than battery.
type YOLO struct {
	net       gocv.Net
	cfg       YOLOConfig
	mu        sync.Mutex
	inputSize image.Point
}

// NewYOLO creates a local YOLO detector from an ONNX model.
func NewYOLO(cfg YOLOConfig) (*YOLO, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, cfg.ModelPath)
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("detect: failed to load YOLO model from %s", cfg.ModelPath)
	}

	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &YOLO{
		net:       net,
		cfg:       cfg,
		inputSize: image.Pt(cfg.InputWidth, cfg.InputHeight),
	}, nil
}

// Detect implements Detector.
func (d *YOLO) Detect(ctx context.Context, jpeg []byte) (*Result, error) {
	if len(jpeg) == 0 {
		return nil, ErrEmptyImage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, &DetectionError{Message: "decode image", Cause: err}
	}
	defer img.Close()

	if img.Empty() {
		return nil, ErrEmptyImage
	}

	imgW := img.Cols()
	imgH := img.Rows()

	blob := gocv.BlobFromImage(img, 1.0/255.0, d.inputSize, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	dets := d.parseOutput(output, float32(imgW), float32(imgH))
	if len(dets) > 0 {
		d.cfg.Logger.Debug("local detection complete", "objects", len(dets))
	}

	return &Result{
		ImageWidth:  imgW,
		ImageHeight: imgH,
		Detections:  dets,
	}, nil
}

// parseOutput parses the YOLOv8 output tensor.
// Output shape: [1, 84, 8400] - 84 = 4 bbox + 80 classes, 8400 candidates.
func (d *YOLO) parseOutput(output gocv.Mat, imgW, imgH float32) []Detection {
	var boxes []image.Rectangle
	var confidences []float32
	var classIDs []int

	rows := output.Cols() // 8400 candidates
	cols := output.Rows() // 84 (4 bbox + 80 classes)

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil
	}

	for i := 0; i < rows; i++ {
		maxScore := float32(0)
		maxClassID := 0
		for c := 4; c < cols; c++ {
			score := data[c*rows+i]
			if score > maxScore {
				maxScore = score
				maxClassID = c - 4
			}
		}
		if maxScore < d.cfg.ConfidenceThresh {
			continue
		}

		// Model-space center box, scaled to image pixels
		cx := data[0*rows+i] * imgW / float32(d.cfg.InputWidth)
		cy := data[1*rows+i] * imgH / float32(d.cfg.InputHeight)
		w := data[2*rows+i] * imgW / float32(d.cfg.InputWidth)
		h := data[3*rows+i] * imgH / float32(d.cfg.InputHeight)

		boxes = append(boxes, image.Rect(int(cx-w/2), int(cy-h/2), int(cx+w/2), int(cy+h/2)))
		confidences = append(confidences, maxScore)
		classIDs = append(classIDs, maxClassID)
	}

	if len(boxes) == 0 {
		return nil
	}

	var dets []Detection
	indices := gocv.NMSBoxes(boxes, confidences, d.cfg.ConfidenceThresh, d.cfg.NMSThresh)
	for _, idx := range indices {
		box := boxes[idx]
		dets = append(dets, Detection{
			Class:      COCOClasses[classIDs[idx]],
			Confidence: float64(confidences[idx]),
			XYWH: [4]float64{
				float64(box.Min.X) + float64(box.Dx())/2,
				float64(box.Min.Y) + float64(box.Dy())/2,
				float64(box.Dx()),
				float64(box.Dy()),
			},
		})
	}
	return dets
}

// Close implements Detector.
func (d *YOLO) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.net.Close()
	return nil
}

// Ensure YOLO implements Detector
var _ Detector = (*YOLO)(nil)

// COCOClasses contains the 80 COCO class names.
var COCOClasses = []string{
	"person", "bicycle", "car", "motorcycle", "airplane", "bus", "train", "truck", "boat",
	"traffic light", "fire hydrant", "stop sign", "parking meter", "bench", "bird", "cat",
	"dog", "horse", "sheep", "cow", "elephant", "bear", "zebra", "giraffe", "backpack",
	"umbrella", "handbag", "tie", "suitcase", "frisbee", "skis", "snowboard", "sports ball",
	"kite", "baseball bat", "baseball glove", "skateboard", "surfboard", "tennis racket",
	"bottle", "wine glass", "cup", "fork", "knife", "spoon", "bowl", "banana", "apple",
	"sandwich", "orange", "broccoli", "carrot", "hot dog", "pizza", "donut", "cake", "chair",
	"couch", "potted plant", "bed", "dining table", "toilet", "tv", "laptop", "mouse",
	"remote", "keyboard", "cell phone", "microwave", "oven", "toaster", "sink", "refrigerator",
	"book", "clock", "vase", "scissors", "teddy bear", "hair drier", "toothbrush",
}
