// Package engine provides the core logic for the memory-matching card
// game.
//
// The engine package implements:
//   - Paired-deck generation with an unbiased Fisher-Yates shuffle
//   - The flip/match/mismatch state machine with a two-card pending
//     window and flip lock
//   - Pause/resume with paused time excluded from the elapsed clock
//   - Hints that transiently reveal a hidden pair
//   - Deterministic final scoring from elapsed time, move count, and
//     difficulty level
//
// Core Types:
//
// The Engine interface defines the contract for session operations,
// implemented by GameEngine. Snapshot is the read-only state copy
// handed to callers; Result is the completion record passed to the
// score store.
//
// Usage:
//
//	eng, err := engine.NewEngine(level, "animals", symbols)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.Start("player one")
//	out, err := eng.Flip(3)
//	snap := eng.Snapshot()
//
// Game Rules:
//
// Players turn cards face-up two at a time. A matching pair stays up
// and scores; a mismatch locks input briefly and turns both cards back
// over. The session completes when every pair is matched, at which
// point the final score is recomputed from time, moves, and level.
//
// Concurrency:
//
// All operations lock the engine. The settle and cool-down windows are
// scheduled through an injectable Scheduler, and every deferred
// callback carries the session epoch captured at scheduling time, so a
// reset or new game silently invalidates callbacks from the previous
// board.
package engine
