package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"memorymatch/scores"
)

func writeScoreFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scores.json")
	local, err := scores.NewLocalStore(path)
	if err != nil {
		t.Fatalf("Failed to create local store: %v", err)
	}

	records := []*scores.Record{
		{ClientID: "c1", PlayerName: "alice", Score: 900, Level: 1, CardsFlipped: 20, TimeTaken: 45, CompletedAt: time.Now(), Origin: scores.OriginLocalSynced},
		{ClientID: "c2", PlayerName: "bob", Score: 700, Level: 2, CardsFlipped: 30, TimeTaken: 90, CompletedAt: time.Now(), Origin: scores.OriginLocalPending},
	}
	for _, rec := range records {
		if err := local.Add(rec); err != nil {
			t.Fatalf("Failed to add record: %v", err)
		}
	}

	return path
}

func TestCommandStructure(t *testing.T) {
	cmd := newCommand()

	if cmd.Name != "scores" {
		t.Errorf("Expected command name 'scores', got %s", cmd.Name)
	}

	expected := map[string]bool{"list": false, "stats": false, "sync": false}
	for _, sub := range cmd.Commands {
		if _, ok := expected[sub.Name]; ok {
			expected[sub.Name] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("Expected subcommand %q to be registered", name)
		}
	}
}

func TestListCommand(t *testing.T) {
	path := writeScoreFile(t)

	cmd := newCommand()
	err := cmd.Run(context.Background(), []string{"scores", "--file", path, "list"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
}

func TestListCommand_LevelFilter(t *testing.T) {
	path := writeScoreFile(t)

	cmd := newCommand()
	err := cmd.Run(context.Background(), []string{"scores", "--file", path, "list", "--level", "2"})
	if err != nil {
		t.Fatalf("list --level failed: %v", err)
	}
}

func TestListCommand_Pending(t *testing.T) {
	path := writeScoreFile(t)

	cmd := newCommand()
	err := cmd.Run(context.Background(), []string{"scores", "--file", path, "list", "--pending"})
	if err != nil {
		t.Fatalf("list --pending failed: %v", err)
	}
}

func TestStatsCommand(t *testing.T) {
	path := writeScoreFile(t)

	cmd := newCommand()
	err := cmd.Run(context.Background(), []string{"scores", "--file", path, "stats"})
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
}

func TestSyncCommand_MissingEnv(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	path := writeScoreFile(t)

	cmd := newCommand()
	err := cmd.Run(context.Background(), []string{"scores", "--file", path, "sync"})
	if err == nil {
		t.Fatal("Expected error when Supabase env vars are missing")
	}
}
