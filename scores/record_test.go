package scores

import (
	"testing"
	"time"

	"memorymatch/game/engine"
)

func TestNewRecord(t *testing.T) {
	completed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	result := &engine.Result{
		PlayerName:  "alice",
		Level:       2,
		Score:       1150,
		Moves:       12,
		TimeTaken:   75,
		CompletedAt: completed,
	}

	record := NewRecord(result)
	if record.PlayerName != "alice" {
		t.Errorf("Expected player alice, got %q", record.PlayerName)
	}
	if record.Score != 1150 {
		t.Errorf("Expected score 1150, got %d", record.Score)
	}
	if record.Level != 2 {
		t.Errorf("Expected level 2, got %d", record.Level)
	}
	// cards_flipped carries the move count, not the number of card
	// reveals, so records line up with what the shared table already
	// holds.
	if record.CardsFlipped != 12 {
		t.Errorf("Expected cards_flipped to equal the move count 12, got %d", record.CardsFlipped)
	}
	if record.TimeTaken != 75 {
		t.Errorf("Expected time taken 75, got %d", record.TimeTaken)
	}
	if !record.CompletedAt.Equal(completed) {
		t.Errorf("Expected completion time %v, got %v", completed, record.CompletedAt)
	}
	if record.ClientID == "" {
		t.Error("Expected a generated client id")
	}
}

func TestNewRecord_UniqueClientIDs(t *testing.T) {
	result := &engine.Result{PlayerName: "alice", Level: 1, Moves: 8}
	if NewRecord(result).ClientID == NewRecord(result).ClientID {
		t.Error("Expected each record to get its own client id")
	}
}
