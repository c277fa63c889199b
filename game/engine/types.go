package engine

import "time"

// Status represents the lifecycle phase of a game session
type Status string

const (
	StatusIdle     Status = "idle"
	StatusPlaying  Status = "playing"
	StatusPaused   Status = "paused"
	StatusComplete Status = "complete"

	// Gameplay constants
	DefaultHints = 3
	MatchPoints  = 100

	// UI-legibility delays. Resolution of a flipped pair is deferred by
	// SettleDelay; a mismatched pair stays face-up for MismatchDelay
	// before it is turned back over. Neither is a correctness
	// requirement; tests replace the scheduler and resolve immediately.
	SettleDelay   = 600 * time.Millisecond
	MismatchDelay = 1 * time.Second

	// Validation constants
	MinLevelID   = 1
	MinGridEdge  = 2
	MaxGridEdge  = 8
	MinTimeLimit = 10
)

// LevelConfig describes one difficulty level. Levels are loaded at
// process start and never mutated afterwards.
type LevelConfig struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	TimeLimit   int    `json:"time_limit"`   // seconds
	TargetFlips int    `json:"target_flips"` // move count the efficiency bonus is scaled against
	BaseScore   int    `json:"base_score"`
}

// PairCount returns the number of card pairs a level's grid holds.
func (lc *LevelConfig) PairCount() int {
	return lc.Rows * lc.Cols / 2
}

// Card is a single card on the board. Exactly two cards per session
// share each Value.
type Card struct {
	ID      int    `json:"id"`
	Value   string `json:"value"`
	Flipped bool   `json:"is_flipped"`
	Matched bool   `json:"is_matched"`
}

// Snapshot is a read-only copy of the session state handed to callers.
// Mutating it has no effect on the engine.
type Snapshot struct {
	Status       Status `json:"status"`
	Level        int    `json:"level"`
	PlayerName   string `json:"player_name"`
	Cards        []Card `json:"cards"`
	PendingIDs   []int  `json:"pending_ids"`
	MatchedCount int    `json:"matched_count"`
	Moves        int    `json:"moves"`
	Score        int    `json:"score"`
	TimeSpent    int    `json:"time_spent"` // seconds, excludes paused spans
	HintsLeft    int    `json:"hints_left"`
	FlipLocked   bool   `json:"flip_locked"`
}

// Hint identifies one still-hidden matching pair. Revealing a hint is
// transient: it does not flip the cards and does not count as a move.
type Hint struct {
	CardIDs [2]int `json:"card_ids"`
	Value   string `json:"value"`
}

// Result is the final record of a completed session, handed to the
// completion handler exactly once per session epoch.
type Result struct {
	PlayerName  string    `json:"player_name"`
	Level       int       `json:"level"`
	Score       int       `json:"score"`
	Moves       int       `json:"moves"`
	TimeTaken   int       `json:"time_taken"` // seconds
	CompletedAt time.Time `json:"completed_at"`
}

// FlipOutcome reports what a flip call did.
type FlipOutcome struct {
	Accepted    bool `json:"accepted"`
	PairPending bool `json:"pair_pending"` // true when this flip completed a pair awaiting resolution
}
