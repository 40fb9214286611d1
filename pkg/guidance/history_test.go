package guidance

import (
	"fmt"
	"testing"
)

func TestHistoryInstructionEviction(t *testing.T) {
	h := NewHistory(0)

	for i := 1; i <= 7; i++ {
		h.AddInstruction(fmt.Sprintf("instruction %d", i))
	}

	got := h.Instructions()
	if len(got) != InstructionHistorySize {
		t.Fatalf("len = %d, want %d", len(got), InstructionHistorySize)
	}
	if got[0] != "instruction 3" {
		t.Errorf("oldest = %q, want %q", got[0], "instruction 3")
	}
	if got[len(got)-1] != "instruction 7" {
		t.Errorf("newest = %q, want %q", got[len(got)-1], "instruction 7")
	}
}

func TestHistorySnippetLabels(t *testing.T) {
	h := NewHistory(0)

	h.AddUserSnippet("take me to the exit")
	h.AddSeerSnippet("Walk straight ahead.")

	got := h.Snippets()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != "user: take me to the exit" {
		t.Errorf("snippet[0] = %q", got[0])
	}
	if got[1] != "seer: Walk straight ahead." {
		t.Errorf("snippet[1] = %q", got[1])
	}
}

func TestHistorySnippetCap(t *testing.T) {
	h := NewHistory(3)

	for i := 1; i <= 5; i++ {
		h.AddUserSnippet(fmt.Sprintf("u%d", i))
	}

	got := h.Snippets()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0] != "user: u3" {
		t.Errorf("oldest = %q, want %q", got[0], "user: u3")
	}
}

func TestHistoryIgnoresEmpty(t *testing.T) {
	h := NewHistory(0)
	h.AddInstruction("")
	h.AddUserSnippet("")

	if len(h.Instructions()) != 0 || len(h.Snippets()) != 0 {
		t.Error("empty entries should not be recorded")
	}
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory(0)
	h.AddInstruction("go left")
	h.AddUserSnippet("hello")
	h.Reset()

	if len(h.Instructions()) != 0 || len(h.Snippets()) != 0 {
		t.Error("reset should clear both buffers")
	}
}
