package scores

import (
	"context"
	"errors"
)

var (
	// ErrDuplicate is returned by Insert when the remote store already
	// holds a record with the same client id.
	ErrDuplicate = errors.New("record already exists")
	// ErrRemoteUnavailable wraps transport-level failures talking to
	// the remote store.
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)

// RemoteStore is the shared leaderboard backend.
type RemoteStore interface {
	// Insert pushes one record. Inserting the same client id twice
	// returns ErrDuplicate.
	Insert(ctx context.Context, record *Record) error

	// List returns records ordered by score descending. A level of 0
	// means all levels. A limit of 0 means the server default.
	List(ctx context.Context, level, limit int) ([]*Record, error)

	// ListByPlayer returns one player's records ordered by score
	// descending, unaffected by the server's default row cap.
	ListByPlayer(ctx context.Context, playerName string) ([]*Record, error)

	// Ping reports whether the remote store is reachable.
	Ping(ctx context.Context) error
}
