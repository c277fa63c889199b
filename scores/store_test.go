package scores

import (
	"context"
	"sort"
	"sync"
	"testing"
)

// fakeRemote is an in-memory RemoteStore whose availability tests can
// toggle. listCap imitates a server-side default row cap applied when
// List is called without a limit.
type fakeRemote struct {
	mu      sync.Mutex
	down    bool
	records map[string]*Record
	inserts int
	listCap int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{records: make(map[string]*Record)}
}

func (f *fakeRemote) setDown(down bool) {
	f.mu.Lock()
	f.down = down
	f.mu.Unlock()
}

func (f *fakeRemote) Insert(_ context.Context, record *Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return ErrRemoteUnavailable
	}
	f.inserts++
	if _, exists := f.records[record.ClientID]; exists {
		return ErrDuplicate
	}
	stored := *record
	stored.Origin = OriginRemote
	f.records[record.ClientID] = &stored
	return nil
}

func (f *fakeRemote) List(_ context.Context, level, limit int) ([]*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, ErrRemoteUnavailable
	}
	var records []*Record
	for _, record := range f.records {
		if level > 0 && record.Level != level {
			continue
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Score > records[j].Score })
	if limit == 0 {
		limit = f.listCap
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (f *fakeRemote) ListByPlayer(_ context.Context, playerName string) ([]*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, ErrRemoteUnavailable
	}
	records := []*Record{}
	for _, record := range f.records {
		if record.PlayerName == playerName {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Score > records[j].Score })
	return records, nil
}

func (f *fakeRemote) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return ErrRemoteUnavailable
	}
	return nil
}

func (f *fakeRemote) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func createTestStore(t *testing.T) (*Store, *fakeRemote) {
	t.Helper()
	remote := newFakeRemote()
	return NewStore(remote, createTestLocalStore(t)), remote
}

func TestStore_SaveOnline(t *testing.T) {
	store, remote := createTestStore(t)

	origin, err := store.Save(context.Background(), createTestRecord("alice", 1200))
	if err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if origin != OriginLocalSynced {
		t.Errorf("Expected origin %q, got %q", OriginLocalSynced, origin)
	}
	if remote.count() != 1 {
		t.Errorf("Expected 1 remote record, got %d", remote.count())
	}
	if !store.Online() {
		t.Error("Expected store to report online after a successful save")
	}
	if len(store.Local().Pending()) != 0 {
		t.Error("Expected no pending records after an online save")
	}
}

func TestStore_SaveOffline(t *testing.T) {
	store, remote := createTestStore(t)
	remote.setDown(true)

	origin, err := store.Save(context.Background(), createTestRecord("alice", 1200))
	if err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if origin != OriginLocalPending {
		t.Errorf("Expected origin %q, got %q", OriginLocalPending, origin)
	}
	if store.Online() {
		t.Error("Expected store to report offline after a failed remote insert")
	}
	if len(store.Local().Pending()) != 1 {
		t.Errorf("Expected 1 pending record, got %d", len(store.Local().Pending()))
	}
}

func TestStore_SaveWithoutRemote(t *testing.T) {
	store := NewStore(nil, createTestLocalStore(t))

	origin, err := store.Save(context.Background(), createTestRecord("alice", 800))
	if err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if origin != OriginLocalPending {
		t.Errorf("Expected origin %q, got %q", OriginLocalPending, origin)
	}
}

func TestStore_LeaderboardFallsBackToLocal(t *testing.T) {
	store, remote := createTestStore(t)

	store.Save(context.Background(), createTestRecord("alice", 1200))
	store.Save(context.Background(), createTestRecord("bob", 900))

	records, source, err := store.Leaderboard(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Failed to fetch leaderboard: %v", err)
	}
	if source != "remote" {
		t.Errorf("Expected remote source, got %q", source)
	}
	if len(records) != 2 || records[0].Score != 1200 {
		t.Errorf("Unexpected remote leaderboard: %v", records)
	}

	remote.setDown(true)

	records, source, err = store.Leaderboard(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Failed to fetch fallback leaderboard: %v", err)
	}
	if source != "local" {
		t.Errorf("Expected local source, got %q", source)
	}
	if len(records) != 2 || records[0].Score != 1200 {
		t.Errorf("Unexpected local leaderboard: %v", records)
	}
	if store.Online() {
		t.Error("Expected store to report offline after the fallback")
	}
}

func TestStore_LeaderboardLevelFilterAndLimit(t *testing.T) {
	store, remote := createTestStore(t)
	remote.setDown(true)

	level2 := createTestRecord("alice", 2000)
	level2.Level = 2
	store.Save(context.Background(), level2)
	store.Save(context.Background(), createTestRecord("alice", 900))
	store.Save(context.Background(), createTestRecord("bob", 800))

	records, _, err := store.Leaderboard(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("Failed to fetch leaderboard: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Score != 900 || records[0].Level != 1 {
		t.Errorf("Expected the best level-1 record, got %+v", records[0])
	}
}

func TestStore_PlayerBest(t *testing.T) {
	store, _ := createTestStore(t)

	store.Save(context.Background(), createTestRecord("alice", 700))
	store.Save(context.Background(), createTestRecord("alice", 1100))
	hard := createTestRecord("alice", 1600)
	hard.Level = 3
	store.Save(context.Background(), hard)
	store.Save(context.Background(), createTestRecord("bob", 2000))

	best, err := store.PlayerBest(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Failed to fetch player best: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("Expected bests for 2 levels, got %d", len(best))
	}
	if best[1].Score != 1100 {
		t.Errorf("Expected level 1 best 1100, got %d", best[1].Score)
	}
	if best[3].Score != 1600 {
		t.Errorf("Expected level 3 best 1600, got %d", best[3].Score)
	}

	if _, err := store.PlayerBest(context.Background(), "nobody"); err == nil {
		t.Error("Expected error for a player with no records")
	}
}

func TestStore_PlayerBestIgnoresLeaderboardCap(t *testing.T) {
	store, remote := createTestStore(t)

	// A server default of one row would hide alice behind bob on the
	// unfiltered leaderboard.
	remote.listCap = 1
	store.Save(context.Background(), createTestRecord("bob", 2000))
	store.Save(context.Background(), createTestRecord("alice", 700))

	best, err := store.PlayerBest(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Failed to fetch player best: %v", err)
	}
	if best[1] == nil || best[1].Score != 700 {
		t.Errorf("Expected alice's level 1 best 700, got %+v", best[1])
	}
}

func TestStore_PlayerBestFallsBackToLocal(t *testing.T) {
	store, remote := createTestStore(t)

	store.Save(context.Background(), createTestRecord("alice", 1100))
	remote.setDown(true)

	best, err := store.PlayerBest(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Failed to fetch player best offline: %v", err)
	}
	if best[1] == nil || best[1].Score != 1100 {
		t.Errorf("Expected the local record, got %+v", best[1])
	}
	if store.Online() {
		t.Error("Expected store to report offline after the fallback")
	}
}

func TestStore_Stats(t *testing.T) {
	store, _ := createTestStore(t)

	store.Save(context.Background(), createTestRecord("alice", 1000))
	store.Save(context.Background(), createTestRecord("bob", 600))
	hard := createTestRecord("alice", 2000)
	hard.Level = 3
	store.Save(context.Background(), hard)

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Failed to fetch stats: %v", err)
	}
	if stats.TotalGames != 3 {
		t.Errorf("Expected 3 games, got %d", stats.TotalGames)
	}
	if stats.BestScore != 2000 {
		t.Errorf("Expected best score 2000, got %d", stats.BestScore)
	}
	if stats.AverageScore != 1200 {
		t.Errorf("Expected average 1200, got %d", stats.AverageScore)
	}
	if stats.Levels[1].Games != 2 || stats.Levels[1].BestScore != 1000 {
		t.Errorf("Unexpected level 1 stats: %+v", stats.Levels[1])
	}
	if stats.Levels[1].AverageScore != 800 {
		t.Errorf("Expected level 1 average 800, got %d", stats.Levels[1].AverageScore)
	}
}

func TestStore_CheckConnectivity(t *testing.T) {
	store, remote := createTestStore(t)

	if status := store.CheckConnectivity(context.Background()); status != ConnectivityOnline {
		t.Errorf("Expected %q while the remote is up, got %q", ConnectivityOnline, status)
	}
	remote.setDown(true)
	if status := store.CheckConnectivity(context.Background()); status != ConnectivityError {
		t.Errorf("Expected %q while the remote is down, got %q", ConnectivityError, status)
	}
	if store.Online() {
		t.Error("Expected the probe result to be recorded")
	}
}

func TestStore_CheckConnectivityWithoutRemote(t *testing.T) {
	store := NewStore(nil, createTestLocalStore(t))

	if status := store.CheckConnectivity(context.Background()); status != ConnectivityOffline {
		t.Errorf("Expected %q without a remote, got %q", ConnectivityOffline, status)
	}
}

func TestStore_ReconcilePushesPending(t *testing.T) {
	store, remote := createTestStore(t)
	remote.setDown(true)

	store.Save(context.Background(), createTestRecord("alice", 900))
	store.Save(context.Background(), createTestRecord("bob", 700))

	remote.setDown(false)

	report, err := store.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Failed to reconcile: %v", err)
	}
	if report.Attempted != 2 || report.Pushed != 2 {
		t.Errorf("Expected 2 records pushed, got %+v", report)
	}
	if remote.count() != 2 {
		t.Errorf("Expected 2 remote records, got %d", remote.count())
	}
	if len(store.Local().Pending()) != 0 {
		t.Error("Expected no pending records after reconcile")
	}
	if !store.Online() {
		t.Error("Expected store to report online after a clean reconcile")
	}
}

func TestStore_ReconcileIsIdempotent(t *testing.T) {
	store, remote := createTestStore(t)
	remote.setDown(true)

	store.Save(context.Background(), createTestRecord("alice", 900))
	remote.setDown(false)

	if _, err := store.Reconcile(context.Background()); err != nil {
		t.Fatalf("Failed first reconcile: %v", err)
	}
	inserts := remote.inserts

	// A second pass finds nothing pending and touches the remote not
	// at all.
	report, err := store.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Failed second reconcile: %v", err)
	}
	if report.Attempted != 0 {
		t.Errorf("Expected nothing to reconcile, got %+v", report)
	}
	if remote.inserts != inserts {
		t.Errorf("Expected no further inserts, got %d", remote.inserts-inserts)
	}
	if remote.count() != 1 {
		t.Errorf("Expected exactly 1 remote record, got %d", remote.count())
	}
}

func TestStore_ReconcileTreatsDuplicateAsSynced(t *testing.T) {
	store, remote := createTestStore(t)

	record := createTestRecord("alice", 900)

	// The insert reached the remote but the local mark was lost, the
	// record is still tagged pending.
	remote.Insert(context.Background(), record)
	record.Origin = OriginLocalPending
	store.Local().Add(record)

	report, err := store.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Failed to reconcile: %v", err)
	}
	if report.Duplicate != 1 || report.Pushed != 0 {
		t.Errorf("Expected 1 duplicate, got %+v", report)
	}
	if len(store.Local().Pending()) != 0 {
		t.Error("Expected the duplicate to be marked synced")
	}
	if remote.count() != 1 {
		t.Errorf("Expected exactly 1 remote record, got %d", remote.count())
	}
}

func TestStore_ReconcilePartialFailureRetries(t *testing.T) {
	store, remote := createTestStore(t)
	remote.setDown(true)

	store.Save(context.Background(), createTestRecord("alice", 900))

	// Remote still down: the pass fails without losing the record.
	report, err := store.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if report.Failed != 1 {
		t.Errorf("Expected 1 failure, got %+v", report)
	}
	if len(store.Local().Pending()) != 1 {
		t.Error("Expected the record to stay pending after a failed push")
	}

	remote.setDown(false)
	report, _ = store.Reconcile(context.Background())
	if report.Pushed != 1 {
		t.Errorf("Expected the retry to push the record, got %+v", report)
	}
}
