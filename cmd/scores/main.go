// Command scores inspects and maintains the locally stored leaderboard
// without starting the game server. It can list recorded scores, show
// aggregate stats, and push pending records to the remote leaderboard.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"memorymatch/scores"
)

func main() {
	// Best-effort .env load, same as the server
	godotenv.Load()

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "scores",
		Usage: "inspect and sync locally stored memory match scores",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Value: "data/scores.json",
				Usage: "path to the local score file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list locally stored scores, best first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "level",
						Usage: "restrict to one difficulty level",
					},
					&cli.BoolFlag{
						Name:  "pending",
						Usage: "show only records not yet pushed to the remote leaderboard",
					},
				},
				Action: runList,
			},
			{
				Name:   "stats",
				Usage:  "show aggregate statistics over the local records",
				Action: runStats,
			},
			{
				Name:  "sync",
				Usage: "push pending records to the remote leaderboard (needs SUPABASE_URL and SUPABASE_ANON_KEY)",
				Action: runSync,
			},
		},
	}
}

func openLocal(cmd *cli.Command) (*scores.LocalStore, error) {
	return scores.NewLocalStore(cmd.String("file"))
}

func runList(ctx context.Context, cmd *cli.Command) error {
	local, err := openLocal(cmd)
	if err != nil {
		return err
	}

	records := local.All()
	if cmd.Bool("pending") {
		records = local.Pending()
	}

	level := int(cmd.Int("level"))
	shown := 0
	for i, rec := range records {
		if level > 0 && rec.Level != level {
			continue
		}
		marker := ""
		if rec.Origin == scores.OriginLocalPending {
			marker = " [pending]"
		}
		fmt.Printf("%2d. %-16s %5d pts  level=%d flips=%d time=%ds  %s%s\n",
			i+1, rec.PlayerName, rec.Score, rec.Level, rec.CardsFlipped,
			rec.TimeTaken, rec.CompletedAt.Format("2006-01-02 15:04"), marker)
		shown++
	}

	if shown == 0 {
		fmt.Println("no records")
	}
	return nil
}

func runStats(ctx context.Context, cmd *cli.Command) error {
	local, err := openLocal(cmd)
	if err != nil {
		return err
	}

	// Stats over the local store only; no remote round trip from the CLI
	store := scores.NewStore(nil, local)
	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Games played:  %d\n", stats.TotalGames)
	fmt.Printf("Best score:    %d\n", stats.BestScore)
	fmt.Printf("Average score: %d\n", stats.AverageScore)
	for level, ls := range stats.Levels {
		fmt.Printf("  level %d: %d games, best %d, avg %d\n",
			level, ls.Games, ls.BestScore, ls.AverageScore)
	}
	fmt.Printf("Pending sync:  %d\n", len(local.Pending()))
	return nil
}

func runSync(ctx context.Context, cmd *cli.Command) error {
	baseURL := os.Getenv("SUPABASE_URL")
	apiKey := os.Getenv("SUPABASE_ANON_KEY")
	if baseURL == "" || apiKey == "" {
		return fmt.Errorf("SUPABASE_URL and SUPABASE_ANON_KEY must be set")
	}

	local, err := openLocal(cmd)
	if err != nil {
		return err
	}

	store := scores.NewStore(scores.NewSupabaseStore(baseURL, apiKey), local)
	report, err := store.Reconcile(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("attempted=%d pushed=%d duplicate=%d failed=%d\n",
		report.Attempted, report.Pushed, report.Duplicate, report.Failed)
	if report.Failed > 0 {
		return fmt.Errorf("%d records failed to sync and were kept for retry", report.Failed)
	}
	return nil
}
