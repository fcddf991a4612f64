package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-hub/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Sign in, then pick a title. The menu shows the top scores of the
highlighted game; after a run the leaderboard offers a replay or a way
back to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Full scoreboard
  O            - Sign out
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --name ann --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	s, err := newSession(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	width, height := terminalSize()
	runErr := tui.Run(ctx, tui.Options{
		Scores: s.scores,
		Gate:   s.gate(),
		Source: s.source,
		Hub:    s.hub,
		Logger: s.logger,
		Width:  width,
		Height: height,
		Seed:   flagSeed,
	})
	stop()
	s.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
