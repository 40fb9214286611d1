package guidance

import "testing"

func TestInterpret(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		state      State
		wantKind   CommandKind
		wantArg    string
	}{
		{
			name:       "stop while navigating",
			transcript: "please stop now",
			state:      StateNavigating,
			wantKind:   CommandStop,
		},
		{
			name:       "cancel while navigating",
			transcript: "Cancel that",
			state:      StateNavigating,
			wantKind:   CommandStop,
		},
		{
			name:       "repeat",
			transcript: "can you repeat",
			state:      StateNavigating,
			wantKind:   CommandRepeat,
		},
		{
			name:       "change checkpoint with destination",
			transcript: "new checkpoint the main exit",
			state:      StateNavigating,
			wantKind:   CommandChangeCheckpoint,
			wantArg:    "the main exit",
		},
		{
			name:       "change checkpoint without destination",
			transcript: "new checkpoint",
			state:      StateNavigating,
			wantKind:   CommandChangeCheckpoint,
			wantArg:    "",
		},
		{
			name:       "mark reached with apostrophe",
			transcript: "I'm here",
			state:      StateNavigating,
			wantKind:   CommandMarkReached,
		},
		{
			name:       "mark reached without apostrophe",
			transcript: "im here",
			state:      StateNavigating,
			wantKind:   CommandMarkReached,
		},
		{
			name:       "goal in ask-goal state",
			transcript: "the elevator",
			state:      StateAskGoal,
			wantKind:   CommandSetGoal,
			wantArg:    "the elevator",
		},
		{
			name:       "goal in ask-next state",
			transcript: "cafeteria",
			state:      StateAskNext,
			wantKind:   CommandSetGoal,
			wantArg:    "cafeteria",
		},
		{
			name:       "goal after arrival",
			transcript: "room 214",
			state:      StateReached,
			wantKind:   CommandSetGoal,
			wantArg:    "room 214",
		},
		{
			name:       "plain speech while navigating",
			transcript: "nice weather today",
			state:      StateNavigating,
			wantKind:   CommandPlain,
		},
		{
			name:       "stop wins over goal naming",
			transcript: "the bus stop",
			state:      StateAskGoal,
			wantKind:   CommandStop,
		},
		{
			name:       "stop wins over change checkpoint",
			transcript: "new checkpoint bus stop",
			state:      StateNavigating,
			wantKind:   CommandStop,
		},
		{
			name:       "empty transcript",
			transcript: "   ",
			state:      StateAskGoal,
			wantKind:   CommandPlain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(tt.transcript, tt.state)
			if got.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", got.Kind, tt.wantKind)
			}
			if got.Arg != tt.wantArg {
				t.Errorf("arg = %q, want %q", got.Arg, tt.wantArg)
			}
		})
	}
}
