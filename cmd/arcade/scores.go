package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-hub/internal/registry"
	"github.com/vovakirdan/arcade-hub/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top scores recorded for a game, best first.

Examples:
  arcade scores flappy
  arcade scores snake --limit 20
  arcade scores dodge --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score for the game")
}

func runScores(cmd *cobra.Command, args []string) {
	key, err := registry.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
	title := string(key)
	if info, ok := registry.Info(key); ok {
		title = info.Title
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if flagClear {
		if err := store.ClearScores(ctx, string(key)); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared all scores for %s.\n", title)
		return
	}

	scores, err := store.TopScores(ctx, string(key), flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores yet!")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", key)
		return
	}

	nameLen := 6 // "Player"
	for _, e := range scores {
		nameLen = max(nameLen, len(e.Player))
	}

	fmt.Printf("  %-4s  %-*s  %-10s  %s\n", "Rank", nameLen, "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-*s  %-10s  %s\n", "----", nameLen, "------", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-*s  %-10d  %s\n", i+1, nameLen, e.Player, e.Score, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GameStats(ctx, string(key)); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d   Games: %d   Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}
