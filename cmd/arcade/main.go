// arcade is a terminal arcade hub: five small titles behind a sign-in, a
// menu with a leaderboard preview, and a leaderboard after every run.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Sign in and pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: from hub.yaml, 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config-dir <dir>    - Directory searched first for <game>.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log <path>          - Write logs to a file
//	--name <player>       - Sign in as this player
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/hub"
	"github.com/vovakirdan/arcade-hub/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/arcade-hub/internal/games/brick"
	_ "github.com/vovakirdan/arcade-hub/internal/games/dodge"
	_ "github.com/vovakirdan/arcade-hub/internal/games/flappy"
	_ "github.com/vovakirdan/arcade-hub/internal/games/jump"
	_ "github.com/vovakirdan/arcade-hub/internal/games/snake"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfigDir  string
	flagDifficulty string
	flagLogPath    string
	flagName       string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade Hub - five retro games in your terminal",
	Long: `Arcade Hub is a terminal game hub: sign in, pick a title from the
menu, and your score lands on a shared leaderboard when the run ends.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Sign in and pick games interactively
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  arcade list
  arcade play flappy --name ann
  arcade play snake --backend tcell
  arcade menu --difficulty hard
  arcade serve --ssh :2222
  arcade scores dodge`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate in frames per second (0 = hub.yaml)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Directory searched first for game and hub YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file (default: discarded)")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "", "Player name (skips the sign-in screen)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// session is what every interactive command needs before it can start a host.
type session struct {
	source config.Source
	hub    config.HubConfig
	logger *log.Logger
	scores hub.ScoreService

	store   *storage.Store
	logFile *os.File
}

// newSession resolves flags into configs, opens the log file and the score
// store. A store that cannot be opened is reported and play continues
// without scores.
func newSession(logTo io.Writer) (*session, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, err
	}
	s := &session{source: config.Source{Dir: flagConfigDir, Preset: preset}}

	switch {
	case flagLogPath != "":
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		s.logFile = f
		logTo = f
	case logTo == nil:
		logTo = io.Discard
	}
	s.logger = log.NewWithOptions(logTo, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	})

	s.hub, err = config.LoadHub(s.source)
	if err != nil {
		s.logger.Warn("hub config", "error", err)
	}
	if flagFPS > 0 {
		s.hub.TickRate = flagFPS
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		s.logger.Warn("could not open scores database", "error", err)
	} else {
		s.store = store
		s.scores = hub.NewStoreService(store, s.logger)
	}
	return s, nil
}

func (s *session) gate() hub.SessionGate {
	return hub.NewLocalGate(flagName)
}

func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}
