package scores

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func createTestLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	dir, err := os.MkdirTemp("", "scores-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	ls, err := NewLocalStore(filepath.Join(dir, "scores.json"))
	if err != nil {
		t.Fatalf("Failed to create local store: %v", err)
	}
	return ls
}

func createTestRecord(player string, score int) *Record {
	return &Record{
		ClientID:     uuid.NewString(),
		PlayerName:   player,
		Score:        score,
		Level:        1,
		CardsFlipped: 12,
		TimeTaken:    60,
		CompletedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Origin:       OriginLocalPending,
	}
}

func TestLocalStore_AddAndOrdering(t *testing.T) {
	ls := createTestLocalStore(t)

	for _, score := range []int{300, 900, 600} {
		if err := ls.Add(createTestRecord("alice", score)); err != nil {
			t.Fatalf("Failed to add record: %v", err)
		}
	}

	records := ls.All()
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	for i, want := range []int{900, 600, 300} {
		if records[i].Score != want {
			t.Errorf("Expected score %d at position %d, got %d", want, i, records[i].Score)
		}
	}
}

func TestLocalStore_CapEvictsLowestScores(t *testing.T) {
	ls := createTestLocalStore(t)

	for i := 0; i < MaxLocalRecords+5; i++ {
		if err := ls.Add(createTestRecord("alice", 100+i)); err != nil {
			t.Fatalf("Failed to add record %d: %v", i, err)
		}
	}

	records := ls.All()
	if len(records) != MaxLocalRecords {
		t.Fatalf("Expected %d records after cap, got %d", MaxLocalRecords, len(records))
	}
	// The five lowest scores (100..104) must be gone.
	for _, record := range records {
		if record.Score < 105 {
			t.Errorf("Expected score %d to be evicted", record.Score)
		}
	}
}

func TestLocalStore_PendingAndMarkSynced(t *testing.T) {
	ls := createTestLocalStore(t)

	pending := createTestRecord("alice", 500)
	synced := createTestRecord("bob", 700)
	synced.Origin = OriginLocalSynced
	ls.Add(pending)
	ls.Add(synced)

	got := ls.Pending()
	if len(got) != 1 || got[0].ClientID != pending.ClientID {
		t.Fatalf("Expected only the pending record, got %v", got)
	}

	if err := ls.MarkSynced(pending.ClientID); err != nil {
		t.Fatalf("Failed to mark synced: %v", err)
	}
	if len(ls.Pending()) != 0 {
		t.Error("Expected no pending records after MarkSynced")
	}

	// Unknown ids are a no-op, not an error.
	if err := ls.MarkSynced("no-such-id"); err != nil {
		t.Errorf("Expected unknown id to be ignored, got %v", err)
	}
}

func TestLocalStore_SurvivesReopen(t *testing.T) {
	dir, err := os.MkdirTemp("", "scores-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "scores.json")

	ls, err := NewLocalStore(path)
	if err != nil {
		t.Fatalf("Failed to create local store: %v", err)
	}
	ls.Add(createTestRecord("alice", 800))
	ls.SetPlayerName("alice")
	ls.SetLastLevel(2)

	reopened, err := NewLocalStore(path)
	if err != nil {
		t.Fatalf("Failed to reopen local store: %v", err)
	}
	if len(reopened.All()) != 1 {
		t.Errorf("Expected 1 record after reopen, got %d", len(reopened.All()))
	}
	if reopened.PlayerName() != "alice" {
		t.Errorf("Expected player name to survive reopen, got %q", reopened.PlayerName())
	}
	if reopened.LastLevel() != 2 {
		t.Errorf("Expected last level 2 after reopen, got %d", reopened.LastLevel())
	}
}

func TestLocalStore_RejectsCorruptFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "scores-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "scores.json")
	os.WriteFile(path, []byte("not json"), 0644)

	if _, err := NewLocalStore(path); err == nil {
		t.Error("Expected error for corrupt score file")
	}
}

func TestLocalStore_TieBrokenByCompletionTime(t *testing.T) {
	ls := createTestLocalStore(t)

	later := createTestRecord("bob", 500)
	later.CompletedAt = later.CompletedAt.Add(time.Hour)
	earlier := createTestRecord("alice", 500)

	ls.Add(later)
	ls.Add(earlier)

	records := ls.All()
	if records[0].PlayerName != "alice" {
		t.Errorf("Expected earlier completion to rank first on a tie, got %q", records[0].PlayerName)
	}
}
