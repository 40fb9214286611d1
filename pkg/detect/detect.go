// Package detect provides object detection for guidance planning.
//
// Detections describe what the camera currently sees and are forwarded
// verbatim to the planner. Two backends are bundled: Seer posts frames to
// the backend's /detect endpoint, and YOLO runs a YOLOv8 ONNX model
// locally through gocv. Mock supports testing without either.
package detect

import "context"

// Detection is a single detected object.
// XYWH is center-x, center-y, width, height in image pixels.
type Detection struct {
	Class      string     `json:"cls"`
	Confidence float64    `json:"conf"`
	XYWH       [4]float64 `json:"xywh"`
}

// IsCentered reports whether the detection sits in the middle third of
// the frame horizontally. Used for quick obstacle heuristics.
func (d Detection) IsCentered(imgW float64) bool {
	if imgW <= 0 {
		return false
	}
	cx := d.XYWH[0] / imgW
	return cx > 1.0/3 && cx < 2.0/3
}

// Result is the outcome of detecting objects in one frame.
type Result struct {
	ImageWidth  int         `json:"img_w"`
	ImageHeight int         `json:"img_h"`
	Detections  []Detection `json:"detections"`
}

// Detector finds objects in a JPEG frame.
type Detector interface {
	// Detect runs object detection on the JPEG image.
	Detect(ctx context.Context, jpeg []byte) (*Result, error)

	// Close releases resources held by the detector.
	Close() error
}
