package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"memorymatch/game/engine"
	"memorymatch/scores"
)

// ErrPlayerNameRequired is returned when a session is created without
// a player name.
var ErrPlayerNameRequired = errors.New("player name is required")

// DefaultTheme is used when a session request does not name one.
const DefaultTheme = "animals"

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	store    ScoreStore
	notifier Notifier
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, store ScoreStore) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		store:    store,
	}
}

// SetNotifier registers the event sink used for broadcast. Must be
// called before sessions are created.
func (s *gameServiceImpl) SetNotifier(fn Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = fn
}

// CreateSession creates a new game session and starts the game
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	if req.PlayerName == "" {
		return nil, ErrPlayerNameRequired
	}

	level := s.configs.DefaultLevel()
	if req.LevelID != 0 {
		var err error
		level, err = s.configs.Level(req.LevelID)
		if err != nil {
			return nil, fmt.Errorf("level %d not found, available levels: %v", req.LevelID, s.levelIDs())
		}
	}
	if level == nil {
		return nil, fmt.Errorf("no levels configured")
	}

	theme := req.Theme
	if theme == "" {
		theme = DefaultTheme
	}
	symbols, err := s.configs.Theme(theme)
	if err != nil {
		return nil, fmt.Errorf("theme %q not found, available themes: %v", theme, s.configs.Themes())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Session manager generates the ID
	sess, err := s.sessions.Create("", level, req.PlayerName, theme, symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.wireEngine(sess)
	sess.Engine.Start(req.PlayerName)

	if err := s.store.RememberPlayer(req.PlayerName, level.ID); err != nil {
		log.Printf("[SESSION] failed to persist player preferences: %v", err)
	}

	if err := s.sessions.Save(sess.ID); err != nil {
		log.Printf("[SESSION] failed to persist session %s: %v", sess.ID, err)
	}

	return s.sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.notify(&GameEvent{
		Type:      "session_deleted",
		SessionID: sessionID,
		Timestamp: time.Now(),
	})
	return nil
}

// Flip turns a card face-up
func (s *gameServiceImpl) Flip(ctx context.Context, sessionID string, cardID int) (*FlipResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	outcome, err := sess.Engine.Flip(cardID)
	if err != nil {
		return nil, err
	}

	return &FlipResult{
		Accepted:    outcome.Accepted,
		PairPending: outcome.PairPending,
		Snapshot:    sess.Engine.Snapshot(),
	}, nil
}

// TogglePause flips between playing and paused
func (s *gameServiceImpl) TogglePause(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.TogglePause()
	return sess.Engine.Snapshot(), nil
}

// RequestHint reveals one matching pair without flipping it
func (s *gameServiceImpl) RequestHint(ctx context.Context, sessionID string) (*HintResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	hint, ok := sess.Engine.RequestHint()
	if !ok {
		return nil, fmt.Errorf("no hint available for session %s", sessionID)
	}
	return &HintResult{
		Hint:      hint,
		HintsLeft: sess.Engine.Snapshot().HintsLeft,
	}, nil
}

// Reset re-deals the board and restarts the session
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.Reset()
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("[SESSION] failed to persist session %s after reset: %v", sessionID, err)
	}
	return sess.Engine.Snapshot(), nil
}

// GetSnapshot retrieves the current game state
func (s *gameServiceImpl) GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Snapshot(), nil
}

// ListLevels returns the selectable difficulty levels
func (s *gameServiceImpl) ListLevels(ctx context.Context) ([]*LevelInfo, error) {
	levels := s.configs.Levels()
	result := make([]*LevelInfo, 0, len(levels))
	for _, level := range levels {
		result = append(result, &LevelInfo{
			ID:          level.ID,
			Name:        level.Name,
			Rows:        level.Rows,
			Cols:        level.Cols,
			Pairs:       level.PairCount(),
			TimeLimit:   level.TimeLimit,
			TargetFlips: level.TargetFlips,
			BaseScore:   level.BaseScore,
		})
	}
	return result, nil
}

// ListThemes returns the available card themes
func (s *gameServiceImpl) ListThemes(ctx context.Context) ([]string, error) {
	return s.configs.Themes(), nil
}

// Leaderboard returns the top scores, remote when reachable
func (s *gameServiceImpl) Leaderboard(ctx context.Context, level, limit int) (*LeaderboardResponse, error) {
	records, source, err := s.store.Leaderboard(ctx, level, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	if records == nil {
		records = []*scores.Record{}
	}
	return &LeaderboardResponse{Records: records, Source: source, Level: level}, nil
}

// PlayerBest returns a player's best score per level
func (s *gameServiceImpl) PlayerBest(ctx context.Context, playerName string) (map[int]*scores.Record, error) {
	return s.store.PlayerBest(ctx, playerName)
}

// Stats aggregates the visible score history
func (s *gameServiceImpl) Stats(ctx context.Context) (*scores.Stats, error) {
	return s.store.Stats(ctx)
}

// SyncScores pushes pending local records to the remote store
func (s *gameServiceImpl) SyncScores(ctx context.Context) (*scores.ReconcileReport, error) {
	return s.store.Reconcile(ctx)
}

// Connectivity probes the remote score store
func (s *gameServiceImpl) Connectivity(ctx context.Context) (*ConnectivityInfo, error) {
	status := s.store.CheckConnectivity(ctx)
	return &ConnectivityInfo{
		Status:    status,
		Online:    status == scores.ConnectivityOnline,
		CheckedAt: time.Now(),
	}, nil
}

// getSession fetches a session and re-wires engine callbacks. Sessions
// loaded back from disk come without handlers, and re-setting them on
// a live engine is harmless.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	s.wireEngine(sess)
	return sess, nil
}

// wireEngine attaches the broadcast and score-saving callbacks. The
// engine invokes them outside its lock, including from timer
// goroutines resolving deferred pairs.
func (s *gameServiceImpl) wireEngine(sess *Session) {
	sessionID := sess.ID

	sess.Engine.SetChangeHandler(func(snap *engine.Snapshot) {
		if err := s.sessions.Save(sessionID); err != nil {
			log.Printf("[SESSION] failed to persist session %s: %v", sessionID, err)
		}
		s.notify(&GameEvent{
			Type:      "state_update",
			SessionID: sessionID,
			Timestamp: time.Now(),
			Snapshot:  snap,
		})
	})

	sess.Engine.SetCompleteHandler(func(result *engine.Result) {
		record := scores.NewRecord(result)
		origin, err := s.store.Save(context.Background(), record)
		if err != nil {
			log.Printf("[SCORE] failed to save score for session %s: %v", sessionID, err)
		} else {
			log.Printf("[SCORE] session %s: %s scored %d on level %d (%s)",
				sessionID, result.PlayerName, result.Score, result.Level, origin)
		}
		s.notify(&GameEvent{
			Type:      "session_complete",
			SessionID: sessionID,
			Timestamp: time.Now(),
			Snapshot:  sess.Engine.Snapshot(),
			Result:    result,
			Origin:    origin,
		})
	})
}

func (s *gameServiceImpl) notify(event *GameEvent) {
	if s.notifier != nil {
		s.notifier(event)
	}
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		PlayerName:     sess.PlayerName,
		Theme:          sess.Theme,
		Level:          sess.Level,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Snapshot:       sess.Engine.Snapshot(),
	}
}

func (s *gameServiceImpl) levelIDs() []int {
	levels := s.configs.Levels()
	ids := make([]int, 0, len(levels))
	for _, level := range levels {
		ids = append(ids, level.ID)
	}
	return ids
}
