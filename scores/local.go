package scores

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// MaxLocalRecords caps how many scores the local file keeps. Lowest
// scores are evicted first.
const MaxLocalRecords = 20

// localData is the on-disk layout. Besides the score list it carries
// the player preferences the game restores on startup.
type localData struct {
	PlayerName string    `json:"player_name,omitempty"`
	LastLevel  int       `json:"last_level,omitempty"`
	Records    []*Record `json:"records"`
}

// LocalStore keeps scores and player preferences in a single JSON
// file. It is the fallback when the remote store is unreachable and
// the source of records awaiting reconciliation.
type LocalStore struct {
	path string
	mu   sync.Mutex
	data localData
}

// NewLocalStore opens (or creates) the local score file.
func NewLocalStore(path string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	ls := &LocalStore{path: path}
	if err := ls.load(); err != nil {
		return nil, err
	}
	return ls, nil
}

// Add stores a record, keeping at most MaxLocalRecords ordered by
// score descending.
func (ls *LocalStore) Add(record *Record) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.data.Records = append(ls.data.Records, record)
	sortRecords(ls.data.Records)
	if len(ls.data.Records) > MaxLocalRecords {
		ls.data.Records = ls.data.Records[:MaxLocalRecords]
	}
	return ls.save()
}

// All returns a copy of every stored record, best score first.
func (ls *LocalStore) All() []*Record {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	records := make([]*Record, len(ls.data.Records))
	copy(records, ls.data.Records)
	return records
}

// Pending returns the records still awaiting a push to the remote
// store.
func (ls *LocalStore) Pending() []*Record {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var pending []*Record
	for _, record := range ls.data.Records {
		if record.Origin == OriginLocalPending {
			pending = append(pending, record)
		}
	}
	return pending
}

// MarkSynced flags a record as present on the remote store. Unknown
// client ids are ignored: the record may have been evicted by the cap
// since it was read.
func (ls *LocalStore) MarkSynced(clientID string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	for _, record := range ls.data.Records {
		if record.ClientID == clientID {
			record.Origin = OriginLocalSynced
			return ls.save()
		}
	}
	return nil
}

// SetPlayerName persists the last player name entered.
func (ls *LocalStore) SetPlayerName(name string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.data.PlayerName == name {
		return nil
	}
	ls.data.PlayerName = name
	return ls.save()
}

// PlayerName returns the persisted player name, if any.
func (ls *LocalStore) PlayerName() string {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.data.PlayerName
}

// SetLastLevel persists the last level played.
func (ls *LocalStore) SetLastLevel(level int) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.data.LastLevel == level {
		return nil
	}
	ls.data.LastLevel = level
	return ls.save()
}

// LastLevel returns the persisted last level, or 0 when unset.
func (ls *LocalStore) LastLevel() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.data.LastLevel
}

func (ls *LocalStore) load() error {
	raw, err := os.ReadFile(ls.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read score file: %w", err)
	}

	if err := json.Unmarshal(raw, &ls.data); err != nil {
		return fmt.Errorf("failed to parse score file: %w", err)
	}
	sortRecords(ls.data.Records)
	return nil
}

// save is called with the mutex held.
func (ls *LocalStore) save() error {
	raw, err := json.MarshalIndent(&ls.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal score file: %w", err)
	}
	if err := os.WriteFile(ls.path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write score file: %w", err)
	}
	return nil
}

// sortRecords orders by score descending, earlier completion winning
// ties.
func sortRecords(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		return records[i].CompletedAt.Before(records[j].CompletedAt)
	})
}
