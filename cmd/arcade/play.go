package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	arcterm "github.com/vovakirdan/arcade-hub/internal/platform/term"
	"github.com/vovakirdan/arcade-hub/internal/platform/tui"
	"github.com/vovakirdan/arcade-hub/internal/registry"
)

var flagBackend string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game right away.

Without --name you are asked to sign in first. When the run ends the
leaderboard is shown; press r to play again.

Backends:
  tui    - Bubble Tea program with menu and scoreboard (default)
  tcell  - Direct tcell screen, single title

Difficulty options:
  easy   - Half the score ramp
  normal - Ramps as configured
  hard   - One and a half times the ramp
  fixed  - No progression, stays at the base values

Examples:
  arcade play dodge
  arcade play flappy --name ann
  arcade play brick --difficulty hard
  arcade play snake --backend tcell
  arcade play jump --config-dir ./configs`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", "tui", "Terminal backend: tui or tcell")
}

func runPlay(cmd *cobra.Command, args []string) {
	key, err := registry.Parse(args[0])
	if err != nil || !registry.Exists(key) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	s, err := newSession(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runErr := playWith(ctx, s, key)
	stop()
	s.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

func playWith(ctx context.Context, s *session, key registry.Key) error {
	switch flagBackend {
	case "tcell":
		t, err := arcterm.New(ctx, arcterm.Options{
			Game:   key,
			Scores: s.scores,
			Gate:   s.gate(),
			Source: s.source,
			Hub:    s.hub,
			Logger: s.logger,
			Seed:   flagSeed,
		})
		if err != nil {
			return err
		}
		return t.Run(ctx)

	case "tui", "":
		width, height := terminalSize()
		return tui.Run(ctx, tui.Options{
			Scores:    s.scores,
			Gate:      s.gate(),
			Source:    s.source,
			Hub:       s.hub,
			Logger:    s.logger,
			Width:     width,
			Height:    height,
			Seed:      flagSeed,
			Autostart: key,
		})

	default:
		return fmt.Errorf("unknown backend %q (want tui or tcell)", flagBackend)
	}
}

// terminalSize reads the size of stdout, falling back to 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
