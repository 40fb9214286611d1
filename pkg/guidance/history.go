package guidance

import (
	"fmt"
	"sync"
)

const (
	// InstructionHistorySize is how many recent instructions are kept
	// and forwarded to the planner for continuity.
	InstructionHistorySize = 5

	// DefaultSnippetCap bounds the labeled conversation log.
	DefaultSnippetCap = 200
)

// History keeps the rolling navigation context: the last few spoken
// instructions plus a labeled log of the conversation so far. Both are
// bounded; the oldest entries are evicted first.
type History struct {
	mu           sync.Mutex
	instructions []string
	snippets     []string
	snippetCap   int
}

// NewHistory creates an empty history with the given snippet cap.
// A cap of zero or less uses DefaultSnippetCap.
func NewHistory(snippetCap int) *History {
	if snippetCap <= 0 {
		snippetCap = DefaultSnippetCap
	}
	return &History{snippetCap: snippetCap}
}

// AddInstruction records a spoken instruction, evicting the oldest once
// InstructionHistorySize is exceeded.
func (h *History) AddInstruction(text string) {
	if text == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.instructions = append(h.instructions, text)
	if len(h.instructions) > InstructionHistorySize {
		h.instructions = h.instructions[len(h.instructions)-InstructionHistorySize:]
	}
}

// AddUserSnippet records something the user said.
func (h *History) AddUserSnippet(text string) {
	h.addSnippet("user", text)
}

// AddSeerSnippet records something the guide said.
func (h *History) AddSeerSnippet(text string) {
	h.addSnippet("seer", text)
}

func (h *History) addSnippet(label, text string) {
	if text == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snippets = append(h.snippets, fmt.Sprintf("%s: %s", label, text))
	if len(h.snippets) > h.snippetCap {
		h.snippets = h.snippets[len(h.snippets)-h.snippetCap:]
	}
}

// Instructions returns a copy of the recent instructions, oldest first.
func (h *History) Instructions() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.instructions))
	copy(out, h.instructions)
	return out
}

// Snippets returns a copy of the labeled conversation log, oldest first.
func (h *History) Snippets() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.snippets))
	copy(out, h.snippets)
	return out
}

// Reset clears both buffers.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.instructions = nil
	h.snippets = nil
}
