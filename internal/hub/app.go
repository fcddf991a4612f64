// Package hub holds the arcade's application state: which screen is up,
// who is playing, which title is selected, and the game-over chain that
// persists a score and loads the leaderboard.
//
// Transition methods are called from the host's single UI thread. The
// save/load chain runs in the background and reports back through
// ShowLeaderboard, so a slow ScoreService never stalls a frame.
package hub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/engine"
	"github.com/vovakirdan/arcade-hub/internal/registry"
)

var (
	// ErrNoGameSelected is returned by Restart before any title was picked.
	ErrNoGameSelected = errors.New("hub: no game selected")
	// ErrNotSignedIn is returned by Select on the auth screen.
	ErrNotSignedIn = errors.New("hub: not signed in")
)

// Screen is the visible top-level view.
type Screen int

const (
	ScreenAuth Screen = iota
	ScreenMenu
	ScreenGame
	ScreenLeaderboard
)

func (s Screen) String() string {
	switch s {
	case ScreenAuth:
		return "auth"
	case ScreenMenu:
		return "menu"
	case ScreenGame:
		return "game"
	case ScreenLeaderboard:
		return "leaderboard"
	}
	return fmt.Sprintf("Screen(%d)", int(s))
}

// Runner starts and stops game units. *engine.Runtime implements it.
type Runner interface {
	Start(key string, factory engine.Factory, onGameOver func(score int)) error
	Stop()
	Active() bool
}

// FactoryFunc resolves a title to a unit factory.
type FactoryFunc func(key registry.Key, src config.Source) (engine.Factory, error)

// Options configures an App.
type Options struct {
	Runner  Runner
	Scores  ScoreService
	Gate    SessionGate
	Source  config.Source
	Hub     config.HubConfig
	Logger  *log.Logger
	Factory FactoryFunc // defaults to registry.Factory

	// OnChange is called after a background step changed the state, from
	// the goroutine that did it. Hosts use it to schedule a redraw.
	OnChange func()
	// Timeout bounds each save/load step. Zero means 5s.
	Timeout time.Duration
}

// App is the hub state machine.
type App struct {
	opts   Options
	logger *log.Logger
	ctx    context.Context
	wg     sync.WaitGroup

	mu        sync.Mutex
	screen    Screen
	user      Identity
	selected  registry.Key
	liveScore int
	board     Leaderboard
	boardGen  int // bumped per leaderboard request; stale results are dropped
	preview   Leaderboard
	prevGen   int
}

// New creates an App on the auth screen. Call Boot to resolve the session.
func New(ctx context.Context, opts Options) *App {
	if opts.Factory == nil {
		opts.Factory = registry.Factory
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Hub.LeaderboardSize <= 0 {
		opts.Hub.LeaderboardSize = config.DefaultHubConfig().LeaderboardSize
	}
	if opts.Hub.PreviewSize <= 0 {
		opts.Hub.PreviewSize = config.DefaultHubConfig().PreviewSize
	}
	return &App{
		opts:   opts,
		logger: orDiscard(opts.Logger).WithPrefix("hub"),
		ctx:    ctx,
	}
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}

// Screen returns the visible screen.
func (a *App) Screen() Screen {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.screen
}

// User returns the signed-in identity.
func (a *App) User() Identity {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

// Selected returns the last started title.
func (a *App) Selected() registry.Key {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selected
}

// LiveScore returns the running unit's latest score readout.
func (a *App) LiveScore() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.liveScore
}

// Leaderboard returns the board shown after a game over.
func (a *App) Leaderboard() Leaderboard {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.board
}

// Preview returns the menu's leaderboard preview.
func (a *App) Preview() Leaderboard {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.preview
}

// Boot picks the first screen from the gate's current session.
func (a *App) Boot() {
	id, ok := a.opts.Gate.Current(a.ctx)
	a.mu.Lock()
	defer a.mu.Unlock()
	if ok {
		a.user, a.screen = id, ScreenMenu
	} else {
		a.user, a.screen = Identity{}, ScreenAuth
	}
	a.logger.Debug("boot", "screen", a.screen, "player", a.user.Name)
}

// SignIn signs the player in and shows the menu.
func (a *App) SignIn(name string) error {
	id, err := a.opts.Gate.SignIn(a.ctx, name)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.user, a.screen = id, ScreenMenu
	a.mu.Unlock()
	a.logger.Info("signed in", "player", id.Name)
	return nil
}

// SignOut stops any game and returns to the auth screen.
func (a *App) SignOut() error {
	a.opts.Runner.Stop()
	if err := a.opts.Gate.SignOut(a.ctx); err != nil {
		return fmt.Errorf("hub: sign out: %w", err)
	}
	a.mu.Lock()
	a.user, a.screen = Identity{}, ScreenAuth
	a.mu.Unlock()
	return nil
}

// Select starts key and switches to the game screen. A running title is
// stopped first by the runner.
func (a *App) Select(key registry.Key) error {
	a.mu.Lock()
	signedIn := a.screen != ScreenAuth
	a.mu.Unlock()
	if !signedIn {
		return ErrNotSignedIn
	}

	factory, err := a.opts.Factory(key, a.opts.Source)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.selected = key
	a.screen = ScreenGame
	a.liveScore = 0
	a.mu.Unlock()

	// The unit may end inside Init; GameOverPending then runs before
	// Start returns and has already moved on to the leaderboard.
	if err := a.opts.Runner.Start(string(key), factory, a.GameOverPending); err != nil {
		a.mu.Lock()
		a.screen = ScreenMenu
		a.mu.Unlock()
		return fmt.Errorf("hub: start %s: %w", key, err)
	}
	return nil
}

// Restart starts the selected title again.
func (a *App) Restart() error {
	key := a.Selected()
	if key == "" {
		return ErrNoGameSelected
	}
	return a.Select(key)
}

// BackToMenu stops any game and shows the menu.
func (a *App) BackToMenu() {
	a.opts.Runner.Stop()
	a.mu.Lock()
	if a.screen != ScreenAuth {
		a.screen = ScreenMenu
	}
	a.mu.Unlock()
}

// ReportScore records the running unit's score readout.
func (a *App) ReportScore(_ string, score int) {
	a.mu.Lock()
	a.liveScore = score
	a.mu.Unlock()
}

// GameOverPending is the runtime's game-over callback. It shows the
// leaderboard screen in its loading state and starts the save → topN chain.
func (a *App) GameOverPending(score int) {
	a.mu.Lock()
	a.boardGen++
	gen := a.boardGen
	game, name := a.selected, a.user.Name
	if name == "" {
		name = a.opts.Hub.GuestName
	}
	a.liveScore = score
	a.screen = ScreenLeaderboard
	a.board = Leaderboard{Game: game, FinalScore: score, Loading: true}
	a.mu.Unlock()

	a.logger.Info("game over", "game", game, "player", name, "score", score)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.save(game, name, score); err != nil {
			// Persistence is best effort; still show what we have.
			a.logger.Warn("score not saved", "game", game, "err", err)
		}
		entries, err := a.top(game, a.opts.Hub.LeaderboardSize)
		if err != nil {
			a.logger.Warn("leaderboard not loaded", "game", game, "err", err)
		}
		a.ShowLeaderboard(gen, Leaderboard{Game: game, FinalScore: score, Entries: entries, Err: err})
	}()
}

// ShowLeaderboard installs a loaded board if it answers the latest request.
func (a *App) ShowLeaderboard(gen int, b Leaderboard) {
	a.mu.Lock()
	if gen != a.boardGen {
		a.mu.Unlock()
		return
	}
	b.Loading = false
	a.board = b
	a.mu.Unlock()
	a.changed()
}

// LoadPreview fetches the top entries for the highlighted menu title.
func (a *App) LoadPreview(key registry.Key) {
	a.mu.Lock()
	a.prevGen++
	gen := a.prevGen
	a.preview = Leaderboard{Game: key, FinalScore: -1, Loading: true}
	a.mu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		entries, err := a.top(key, a.opts.Hub.PreviewSize)
		if err != nil {
			a.logger.Warn("preview not loaded", "game", key, "err", err)
		}
		a.mu.Lock()
		if gen != a.prevGen {
			a.mu.Unlock()
			return
		}
		a.preview = Leaderboard{Game: key, FinalScore: -1, Entries: entries, Err: err}
		a.mu.Unlock()
		a.changed()
	}()
}

func (a *App) save(game registry.Key, name string, score int) error {
	if a.opts.Scores == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(a.ctx, a.opts.Timeout)
	defer cancel()
	return a.opts.Scores.Save(ctx, game, name, score)
}

func (a *App) top(game registry.Key, n int) ([]ScoreEntry, error) {
	if a.opts.Scores == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(a.ctx, a.opts.Timeout)
	defer cancel()
	return a.opts.Scores.Top(ctx, game, n)
}

func (a *App) changed() {
	if a.opts.OnChange != nil {
		a.opts.OnChange()
	}
}

// Wait blocks until background chains have finished.
func (a *App) Wait() {
	a.wg.Wait()
}
