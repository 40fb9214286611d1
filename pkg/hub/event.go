// Package hub provides a thread-safe websocket broadcast hub using the
// channel-based fan-out pattern. The web dashboard subscribes to it for
// live guidance events; the companion app subscribes for frame relays.
package hub

import "time"

// MessageType indicates the websocket message format.
type MessageType int

const (
	// JSONMessage is a JSON-encoded message.
	JSONMessage MessageType = iota
	// BinaryMessage is raw binary data (e.g. JPEG frames).
	BinaryMessage
)

// Message is one payload to be broadcast to clients.
type Message struct {
	Type MessageType
	Data []byte
}

// NewJSONMessage wraps pre-encoded JSON bytes.
func NewJSONMessage(data []byte) Message {
	return Message{Type: JSONMessage, Data: data}
}

// NewBinaryMessage wraps binary data.
func NewBinaryMessage(data []byte) Message {
	return Message{Type: BinaryMessage, Data: data}
}

// Event kinds published on the guidance event stream.
const (
	EventState  = "state"
	EventSpoken = "spoken"
	EventStatus = "status"
)

// Event is the JSON envelope pushed to dashboard subscribers.
type Event struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`

	// State transition fields, set when Type is "state".
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	// Spoken output fields, set when Type is "spoken".
	Text    string `json:"text,omitempty"`
	Urgency string `json:"urgency,omitempty"`
	Danger  string `json:"danger,omitempty"`

	// Status payload, set when Type is "status".
	Status any `json:"status,omitempty"`
}

// StateEvent builds a state-transition event.
func StateEvent(from, to string) Event {
	return Event{Type: EventState, At: time.Now(), From: from, To: to}
}

// SpokenEvent builds a spoken-output event.
func SpokenEvent(text, urgency, danger string, at time.Time) Event {
	return Event{Type: EventSpoken, At: at, Text: text, Urgency: urgency, Danger: danger}
}

// StatusEvent wraps a full status snapshot.
func StatusEvent(status any) Event {
	return Event{Type: EventStatus, At: time.Now(), Status: status}
}
