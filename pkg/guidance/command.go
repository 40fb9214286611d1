package guidance

import "strings"

// CommandKind classifies an interpreted voice utterance.
type CommandKind int

const (
	// CommandPlain is an utterance that matched no control phrase.
	// In a goal-accepting state it names the next checkpoint; while
	// navigating it is ignored.
	CommandPlain CommandKind = iota
	// CommandStop cancels the current navigation.
	CommandStop
	// CommandRepeat re-speaks the last instruction.
	CommandRepeat
	// CommandChangeCheckpoint swaps the destination mid-route.
	CommandChangeCheckpoint
	// CommandMarkReached declares arrival at the checkpoint.
	CommandMarkReached
	// CommandSetGoal names a new checkpoint from a goal-accepting state.
	CommandSetGoal
)

// String returns a short name for the command kind.
func (k CommandKind) String() string {
	switch k {
	case CommandPlain:
		return "plain"
	case CommandStop:
		return "stop"
	case CommandRepeat:
		return "repeat"
	case CommandChangeCheckpoint:
		return "change_checkpoint"
	case CommandMarkReached:
		return "mark_reached"
	case CommandSetGoal:
		return "set_goal"
	default:
		return "unknown"
	}
}

// Command is an interpreted voice utterance.
type Command struct {
	Kind CommandKind
	// Arg carries the checkpoint text for CommandChangeCheckpoint and
	// CommandSetGoal; empty otherwise.
	Arg string
}

const changePrefix = "new checkpoint"

// Interpret maps a raw transcript to a command given the current state.
//
// Matching is case-insensitive substring matching, checked in priority
// order: stop/cancel, repeat, "new checkpoint <dest>", "i'm here".
// A transcript that matches nothing is a goal in goal-accepting states
// and plain (ignored) otherwise. The priority order means a destination
// literally named "stop" cannot be set by voice; that trade-off keeps
// the safety command unconditional.
func Interpret(transcript string, state State) Command {
	lower := strings.ToLower(strings.TrimSpace(transcript))
	if lower == "" {
		return Command{Kind: CommandPlain}
	}

	switch {
	case strings.Contains(lower, "stop"), strings.Contains(lower, "cancel"):
		return Command{Kind: CommandStop}
	case strings.Contains(lower, "repeat"):
		return Command{Kind: CommandRepeat}
	case strings.Contains(lower, changePrefix):
		idx := strings.Index(lower, changePrefix)
		rest := strings.TrimSpace(transcript[idx+len(changePrefix):])
		// "new checkpoint" with nothing after it is a no-op, not a
		// command with an empty destination.
		return Command{Kind: CommandChangeCheckpoint, Arg: rest}
	case strings.Contains(lower, "i'm here"), strings.Contains(lower, "im here"):
		return Command{Kind: CommandMarkReached}
	}

	if state.AcceptsGoal() {
		return Command{Kind: CommandSetGoal, Arg: strings.TrimSpace(transcript)}
	}
	return Command{Kind: CommandPlain}
}
