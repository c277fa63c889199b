package service

import (
	"time"

	"memorymatch/game/engine"
	"memorymatch/scores"
)

// CreateSessionRequest carries the parameters for a new game session
type CreateSessionRequest struct {
	LevelID    int    `json:"level"`
	PlayerName string `json:"player_name"`
	Theme      string `json:"theme"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string              `json:"id"`
	PlayerName     string              `json:"player_name"`
	Theme          string              `json:"theme"`
	Level          *engine.LevelConfig `json:"level"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	Snapshot       *engine.Snapshot    `json:"snapshot"`
}

// FlipResult contains the result of a flip operation
type FlipResult struct {
	Accepted    bool             `json:"accepted"`
	PairPending bool             `json:"pair_pending"`
	Snapshot    *engine.Snapshot `json:"snapshot"`
}

// HintResult contains a revealed pair and the remaining budget
type HintResult struct {
	Hint      *engine.Hint `json:"hint"`
	HintsLeft int          `json:"hints_left"`
}

// LevelInfo describes a selectable difficulty level
type LevelInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Pairs       int    `json:"pairs"`
	TimeLimit   int    `json:"time_limit"`
	TargetFlips int    `json:"target_flips"`
	BaseScore   int    `json:"base_score"`
}

// LeaderboardResponse carries the top records and which store served
// them
type LeaderboardResponse struct {
	Records []*scores.Record `json:"records"`
	Source  string           `json:"source"`
	Level   int              `json:"level,omitempty"`
}

// ConnectivityInfo reports remote store reachability. Status is
// "online", "offline" (no remote configured), or "error" (probe
// failed); Online is the boolean view of it.
type ConnectivityInfo struct {
	Status    scores.Connectivity `json:"status"`
	Online    bool                `json:"online"`
	CheckedAt time.Time           `json:"checked_at"`
}

// GameEvent represents an event pushed to session watchers
type GameEvent struct {
	Type      string           `json:"type"` // "state_update", "session_complete", "session_deleted"
	SessionID string           `json:"session_id"`
	Timestamp time.Time        `json:"timestamp"`
	Snapshot  *engine.Snapshot `json:"snapshot,omitempty"`
	Result    *engine.Result   `json:"result,omitempty"`
	Origin    scores.Origin    `json:"score_origin,omitempty"`
}

// Notifier receives game events for broadcast
type Notifier func(event *GameEvent)
