// Package guidance implements the client-side navigation controller for
// the Seer guide.
//
// The controller walks a visually-impaired user to a spoken destination
// ("checkpoint") by repeatedly capturing a camera frame, asking the
// planning service what to do next, and speaking the answer. Its job is
// sequencing, concurrency control, and command interpretation; all scene
// understanding is delegated to the planner.
//
// Architecture:
//
//	utterance / tick ──> Machine ──> frames ──> detect ──> planner
//	                        │
//	                        └──> Gate ──> speaker + haptics + History
//
// The Machine owns the state (select-language, ask-goal, navigating,
// reached, ask-next, end), the current checkpoint and language, and the
// single in-flight latch: at most one guidance or command cycle runs at
// a time. Inputs arriving while a cycle is in flight are dropped (voice)
// or skipped (scheduler ticks), never queued. A late planning result is
// discarded if the checkpoint changed while it was in flight.
//
// Example usage:
//
//	m, err := guidance.New(guidance.DefaultConfig(), guidance.Deps{
//	    Planner: planner.NewSeer(planner.WithBaseURL(url)),
//	    Frames:  frameSource,
//	    Speaker: speaker,
//	})
//	m.SetLanguage("en")
//	m.HandleUtterance(ctx, "elevator") // starts navigating
package guidance
