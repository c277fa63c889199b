package service

import (
	"context"
	"time"

	"memorymatch/game/engine"
	"memorymatch/scores"
)

// GameService defines all game-related operations
type GameService interface {
	// SetNotifier registers the event sink used for broadcast. Call it
	// once during wiring, before any session exists.
	SetNotifier(fn Notifier)

	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Flip(ctx context.Context, sessionID string, cardID int) (*FlipResult, error)
	TogglePause(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	RequestHint(ctx context.Context, sessionID string) (*HintResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.Snapshot, error)

	// Game State
	GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error)

	// Configuration
	ListLevels(ctx context.Context) ([]*LevelInfo, error)
	ListThemes(ctx context.Context) ([]string, error)

	// Scores
	Leaderboard(ctx context.Context, level, limit int) (*LeaderboardResponse, error)
	PlayerBest(ctx context.Context, playerName string) (map[int]*scores.Record, error)
	Stats(ctx context.Context) (*scores.Stats, error)
	SyncScores(ctx context.Context) (*scores.ReconcileReport, error)
	Connectivity(ctx context.Context) (*ConnectivityInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, level *engine.LevelConfig, playerName, theme string, symbols []string) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager serves level and theme configuration
type ConfigManager interface {
	Level(id int) (*engine.LevelConfig, error)
	Levels() []*engine.LevelConfig
	Theme(name string) ([]string, error)
	Themes() []string
	DefaultLevel() *engine.LevelConfig
}

// ScoreStore is the offline-first score layer
type ScoreStore interface {
	Save(ctx context.Context, record *scores.Record) (scores.Origin, error)
	Leaderboard(ctx context.Context, level, limit int) ([]*scores.Record, string, error)
	PlayerBest(ctx context.Context, playerName string) (map[int]*scores.Record, error)
	Stats(ctx context.Context) (*scores.Stats, error)
	CheckConnectivity(ctx context.Context) scores.Connectivity
	Online() bool
	Reconcile(ctx context.Context) (*scores.ReconcileReport, error)
	RememberPlayer(name string, level int) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Level          *engine.LevelConfig
	PlayerName     string
	Theme          string
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
