package guidance

// State is the controller's current mode.
// Exactly one state is active at any time; it is owned by the Machine
// and mutated only through its transition function.
type State int

const (
	// StateSelectLanguage waits for the user to choose a language.
	StateSelectLanguage State = iota
	// StateAskGoal waits for the first destination.
	StateAskGoal
	// StateNavigating runs guidance cycles toward the checkpoint.
	StateNavigating
	// StateReached is active after arrival at the checkpoint.
	StateReached
	// StateAskNext waits for the next destination after an arrival.
	StateAskNext
	// StateEnd is terminal; the controller accepts no further input.
	StateEnd
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateSelectLanguage:
		return "select_language"
	case StateAskGoal:
		return "ask_goal"
	case StateNavigating:
		return "navigating"
	case StateReached:
		return "reached"
	case StateAskNext:
		return "ask_next"
	case StateEnd:
		return "end"
	default:
		return "unknown"
	}
}

// AcceptsGoal reports whether a plain utterance in this state names a
// new checkpoint.
func (s State) AcceptsGoal() bool {
	return s == StateAskGoal || s == StateAskNext || s == StateReached
}
