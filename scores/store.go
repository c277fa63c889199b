package scores

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNoRecords is returned by lookups that found nothing.
var ErrNoRecords = errors.New("no records found")

// Connectivity is the outcome of a remote probe.
type Connectivity string

const (
	// ConnectivityOnline means the remote store answered the probe.
	ConnectivityOnline Connectivity = "online"
	// ConnectivityOffline means no remote store is configured.
	ConnectivityOffline Connectivity = "offline"
	// ConnectivityError means a remote store is configured but the
	// probe failed.
	ConnectivityError Connectivity = "error"
)

// Stats summarizes the visible score history.
type Stats struct {
	TotalGames   int                 `json:"total_games"`
	BestScore    int                 `json:"best_score"`
	AverageScore int                 `json:"average_score"`
	Levels       map[int]*LevelStats `json:"levels"`
	Source       string              `json:"source"`
}

// LevelStats is the per-level slice of Stats.
type LevelStats struct {
	Games        int `json:"games"`
	BestScore    int `json:"best_score"`
	AverageScore int `json:"average_score"`
}

// ReconcileReport describes one reconciliation pass.
type ReconcileReport struct {
	Attempted int `json:"attempted"`
	Pushed    int `json:"pushed"`
	Duplicate int `json:"duplicate"`
	Failed    int `json:"failed"`
}

// Store is the offline-first score layer: every save lands in the
// local file, and the remote leaderboard is used whenever it answers.
// Records written while offline are tagged pending and pushed by
// Reconcile once connectivity returns.
type Store struct {
	remote RemoteStore
	local  *LocalStore

	mu     sync.Mutex
	online bool
}

// NewStore combines a remote leaderboard with the local fallback.
// remote may be nil, leaving the store permanently offline.
func NewStore(remote RemoteStore, local *LocalStore) *Store {
	return &Store{remote: remote, local: local}
}

// Online reports the connectivity state observed by the last remote
// call.
func (s *Store) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

func (s *Store) setOnline(online bool) {
	s.mu.Lock()
	s.online = online
	s.mu.Unlock()
}

// Save persists a finished game. The record always lands in the local
// file; its origin tag reports whether the remote insert succeeded.
func (s *Store) Save(ctx context.Context, record *Record) (Origin, error) {
	record.Origin = OriginLocalPending
	if s.remote != nil {
		err := s.remote.Insert(ctx, record)
		switch {
		case err == nil, errors.Is(err, ErrDuplicate):
			s.setOnline(true)
			record.Origin = OriginLocalSynced
		default:
			s.setOnline(false)
		}
	}

	if err := s.local.Add(record); err != nil {
		if record.Origin == OriginLocalSynced {
			// The score made it to the leaderboard; a local write
			// failure only hurts the offline view.
			return record.Origin, nil
		}
		return record.Origin, fmt.Errorf("failed to save score: %w", err)
	}
	return record.Origin, nil
}

// Leaderboard returns the top records, remote when reachable, local
// otherwise. The second return names the source actually used.
func (s *Store) Leaderboard(ctx context.Context, level, limit int) ([]*Record, string, error) {
	if s.remote != nil {
		records, err := s.remote.List(ctx, level, limit)
		if err == nil {
			s.setOnline(true)
			return records, "remote", nil
		}
		s.setOnline(false)
	}

	records := s.local.All()
	if level > 0 {
		filtered := records[:0]
		for _, record := range records {
			if record.Level == level {
				filtered = append(filtered, record)
			}
		}
		records = filtered
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, "local", nil
}

// PlayerBest returns a player's best record per level. The remote
// query filters by player name server-side so the answer does not
// depend on the leaderboard's row cap; offline it falls back to the
// local file.
func (s *Store) PlayerBest(ctx context.Context, playerName string) (map[int]*Record, error) {
	var records []*Record
	fetched := false
	if s.remote != nil {
		remote, err := s.remote.ListByPlayer(ctx, playerName)
		if err == nil {
			s.setOnline(true)
			records = remote
			fetched = true
		} else {
			s.setOnline(false)
		}
	}
	if !fetched {
		records = s.local.All()
	}

	best := make(map[int]*Record)
	for _, record := range records {
		if record.PlayerName != playerName {
			continue
		}
		current, exists := best[record.Level]
		if !exists || record.Score > current.Score {
			best[record.Level] = record
		}
	}
	if len(best) == 0 {
		return nil, fmt.Errorf("%w for player %q", ErrNoRecords, playerName)
	}
	return best, nil
}

// Stats aggregates the visible records.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	records, source, err := s.Leaderboard(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Levels: make(map[int]*LevelStats), Source: source}
	totals := make(map[int]int)
	sum := 0
	for _, record := range records {
		stats.TotalGames++
		sum += record.Score
		if record.Score > stats.BestScore {
			stats.BestScore = record.Score
		}

		ls, exists := stats.Levels[record.Level]
		if !exists {
			ls = &LevelStats{}
			stats.Levels[record.Level] = ls
		}
		ls.Games++
		totals[record.Level] += record.Score
		if record.Score > ls.BestScore {
			ls.BestScore = record.Score
		}
	}
	if stats.TotalGames > 0 {
		stats.AverageScore = sum / stats.TotalGames
	}
	for level, ls := range stats.Levels {
		ls.AverageScore = totals[level] / ls.Games
	}
	return stats, nil
}

// CheckConnectivity probes the remote store and records the result.
// A store without a remote is offline; a configured remote that fails
// the probe is an error.
func (s *Store) CheckConnectivity(ctx context.Context) Connectivity {
	if s.remote == nil {
		return ConnectivityOffline
	}
	online := s.remote.Ping(ctx) == nil
	s.setOnline(online)
	if !online {
		return ConnectivityError
	}
	return ConnectivityOnline
}

// Reconcile pushes every pending local record to the remote store.
// A duplicate answer counts as success: the record was already pushed
// by an earlier pass that failed before marking it. Running Reconcile
// repeatedly is safe.
func (s *Store) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	if s.remote == nil {
		return nil, ErrRemoteUnavailable
	}

	report := &ReconcileReport{}
	for _, record := range s.local.Pending() {
		report.Attempted++
		err := s.remote.Insert(ctx, record)
		switch {
		case err == nil:
			report.Pushed++
		case errors.Is(err, ErrDuplicate):
			report.Duplicate++
		default:
			report.Failed++
			s.setOnline(false)
			continue
		}
		if err := s.local.MarkSynced(record.ClientID); err != nil {
			return report, fmt.Errorf("failed to mark record synced: %w", err)
		}
	}
	if report.Failed == 0 && report.Attempted > 0 {
		s.setOnline(true)
	}
	return report, nil
}

// RememberPlayer persists the last player name and level played so
// the next startup can restore them.
func (s *Store) RememberPlayer(name string, level int) error {
	if err := s.local.SetPlayerName(name); err != nil {
		return err
	}
	return s.local.SetLastLevel(level)
}

// Local exposes the underlying local store for preference access.
func (s *Store) Local() *LocalStore {
	return s.local
}
