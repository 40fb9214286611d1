// Package planner provides guidance planning for the guide client.
//
// The planner receives the target checkpoint, the current frame's object
// detections, and recent conversation context, and returns one short
// spoken instruction together with an urgency and danger classification
// and a reached flag. The reasoning itself is delegated to the Seer
// backend's /plan endpoint; this package implements only the client side.
package planner

import "context"

// Urgency classifies how an instruction should be delivered.
type Urgency string

const (
	UrgencyNormal  Urgency = "normal"
	UrgencyWarning Urgency = "warning"
)

// DangerLevel classifies the safety of the current scene.
// It drives haptic feedback intensity.
type DangerLevel string

const (
	DangerSafe    DangerLevel = "safe"
	DangerCaution DangerLevel = "caution"
	DangerDanger  DangerLevel = "danger"
)

// Instruction is the result of one guidance planning round.
type Instruction struct {
	// Text is the short, speakable instruction.
	Text string `json:"instruction"`

	// Urgency is "normal" or "warning".
	Urgency Urgency `json:"urgency"`

	// Danger classifies the scene: "safe", "caution", "danger".
	Danger DangerLevel `json:"danger_level"`

	// Reached is true when the checkpoint has been arrived at.
	Reached bool `json:"reached"`

	// Reason is the planner's brief explanation (context only, never spoken).
	Reason string `json:"reason,omitempty"`
}

// Request carries everything the planner needs for one round.
type Request struct {
	// Checkpoint is the target destination name. Required.
	Checkpoint string

	// Detections are the current frame's objects (may be empty).
	Detections []Detection

	// RecentInstructions are the last spoken instructions, newest last.
	// Callers may pass any number; implementations cap at MaxRecentInstructions.
	RecentInstructions []string

	// HistorySnippets are labeled conversation snippets ("user: ...", "seer: ...").
	HistorySnippets []string

	// Language is the language the instruction should be phrased in.
	Language string
}

// Detection mirrors detect.Detection on the /plan wire.
// Kept as a local alias-shaped struct so the planner package does not
// depend on the detection backend.
type Detection struct {
	Class      string     `json:"cls"`
	Confidence float64    `json:"conf"`
	XYWH       [4]float64 `json:"xywh"`
}

// MaxRecentInstructions is the hard cap on recent instructions sent to
// the planner. The backend prompt is tuned for at most five.
const MaxRecentInstructions = 5

// Planner produces the next guidance instruction.
type Planner interface {
	// Plan generates the next instruction for the given request.
	Plan(ctx context.Context, req Request) (*Instruction, error)

	// Close releases resources held by the planner.
	Close() error
}
