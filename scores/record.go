package scores

import (
	"time"

	"github.com/google/uuid"

	"memorymatch/game/engine"
)

// Origin tags where a record currently lives relative to the remote
// leaderboard.
type Origin string

const (
	// OriginRemote marks a record fetched from the remote leaderboard.
	OriginRemote Origin = "remote"
	// OriginLocalPending marks a record saved locally while the remote
	// was unreachable, awaiting reconciliation.
	OriginLocalPending Origin = "local_pending"
	// OriginLocalSynced marks a local record known to exist remotely.
	OriginLocalSynced Origin = "local_synced"
)

// Record is a single finished game. ClientID is generated on the device
// that produced the score and doubles as the idempotency key when the
// record is pushed to the remote store.
type Record struct {
	ClientID     string    `json:"client_id"`
	PlayerName   string    `json:"player_name"`
	Score        int       `json:"score"`
	Level        int       `json:"level"`
	CardsFlipped int       `json:"cards_flipped"`
	TimeTaken    int       `json:"time_taken"`
	CompletedAt  time.Time `json:"completed_at"`
	Origin       Origin    `json:"origin,omitempty"`
}

// NewRecord builds a Record from a finished game result.
func NewRecord(result *engine.Result) *Record {
	return &Record{
		ClientID:     uuid.NewString(),
		PlayerName:   result.PlayerName,
		Score:        result.Score,
		Level:        result.Level,
		CardsFlipped: result.Moves,
		TimeTaken:    result.TimeTaken,
		CompletedAt:  result.CompletedAt,
	}
}
