// Package term is a tcell host for a single title: sign-in when needed,
// the game, and the leaderboard that follows it. Event polling runs on its
// own goroutine; everything else runs on the select loop in Run.
package term

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/engine"
	"github.com/vovakirdan/arcade-hub/internal/hub"
	"github.com/vovakirdan/arcade-hub/internal/platform/host"
	"github.com/vovakirdan/arcade-hub/internal/registry"
)

// Options configures a Terminal.
type Options struct {
	// Screen defaults to the real terminal.
	Screen tcell.Screen

	Game    registry.Key
	Scores  hub.ScoreService
	Gate    hub.SessionGate
	Source  config.Source
	Hub     config.HubConfig
	Logger  *log.Logger
	Seed    int64
	Factory hub.FactoryFunc
}

// Terminal runs one title on a tcell screen.
type Terminal struct {
	screen  tcell.Screen
	host    *host.Host
	runtime *engine.Runtime
	app     *hub.App
	logger  *log.Logger
	opts    Options

	// overlay holds the text screens (sign-in, leaderboard).
	overlay  *core.Screen
	name     []rune
	status   string
	pressed  bool
	quitting bool
	closed   bool
}

// New initializes the screen and the session.
func New(ctx context.Context, opts Options) (*Terminal, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Hub.TickRate <= 0 {
		opts.Hub = config.DefaultHubConfig()
	}

	screen := opts.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("term: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("term: init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	w, h := screen.Size()
	t := &Terminal{
		screen:  screen,
		logger:  opts.Logger.WithPrefix("term"),
		opts:    opts,
		overlay: core.NewScreen(w, h),
	}
	t.host = host.New(w, max(1, h-1), opts.Hub.KeyHold(), nil)

	rt, err := engine.New(t.host.Options(engine.Options{
		MaxFrameDelta: opts.Hub.MaxFrameDelta(),
		Seed:          opts.Seed,
		Logger:        opts.Logger,
		OnScore: func(key string, score int) {
			t.app.ReportScore(key, score)
		},
		OnFault: func(f *engine.UnitFault) {
			t.status = "Game crashed: " + f.Error()
		},
	}))
	if err != nil {
		screen.Fini()
		return nil, err
	}
	t.runtime = rt

	t.app = hub.New(ctx, hub.Options{
		Runner:  rt,
		Scores:  opts.Scores,
		Gate:    opts.Gate,
		Source:  opts.Source,
		Hub:     opts.Hub,
		Logger:  opts.Logger,
		Factory: opts.Factory,
	})
	t.app.Boot()
	return t, nil
}

// Run plays until the player quits or ctx is done. The screen is
// finalized on return.
func (t *Terminal) Run(ctx context.Context) error {
	defer t.close()

	if t.app.Screen() == hub.ScreenMenu {
		if err := t.start(); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(t.opts.Hub.FrameInterval())
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				// Fini was called.
				close(events)
				return
			}
			events <- ev
		}
	}()

	t.draw()
	for !t.quitting {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			t.handle(ev, time.Now())
		case now := <-ticker.C:
			t.frame(now)
			t.draw()
		}
	}
	return nil
}

func (t *Terminal) close() {
	if t.closed {
		return
	}
	t.closed = true
	t.host.ReleaseKeys()
	t.runtime.Stop()
	t.screen.Fini()
	t.app.Wait()
}

func (t *Terminal) start() error {
	t.host.ReleaseKeys()
	if err := t.app.Select(t.opts.Game); err != nil {
		return fmt.Errorf("term: %w", err)
	}
	t.status = ""
	return nil
}

func (t *Terminal) restart() {
	t.host.ReleaseKeys()
	if err := t.app.Restart(); err != nil {
		t.status = err.Error()
	}
}

// frame runs one host frame while the game is up.
func (t *Terminal) frame(now time.Time) {
	if t.app.Screen() == hub.ScreenGame {
		t.host.Frame(now)
	}
}

// handle applies one terminal event.
func (t *Terminal) handle(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		t.overlay.Resize(w, h)
		t.host.Resize(w, max(1, h-1))
		t.screen.Sync()

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			t.quitting = true
			return
		}
		switch t.app.Screen() {
		case hub.ScreenAuth:
			t.authKey(ev)
		case hub.ScreenGame:
			t.gameKey(ev, now)
		case hub.ScreenLeaderboard:
			t.leaderboardKey(ev)
		default:
			t.quitting = true
		}

	case *tcell.EventMouse:
		if t.app.Screen() == hub.ScreenGame {
			t.mouse(ev)
		}
	}
}

func (t *Terminal) authKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		t.quitting = true
	case tcell.KeyEnter:
		if err := t.app.SignIn(string(t.name)); err != nil {
			t.status = "Please enter a name"
			return
		}
		if err := t.start(); err != nil {
			t.status = err.Error()
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(t.name) > 0 {
			t.name = t.name[:len(t.name)-1]
		}
	case tcell.KeyRune:
		if len(t.name) < 24 {
			t.name = append(t.name, ev.Rune())
		}
	}
}

func (t *Terminal) gameKey(ev *tcell.EventKey, now time.Time) {
	switch {
	case ev.Key() == tcell.KeyEscape:
		t.quitting = true
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
		t.restart()
	default:
		if name := KeyName(ev); name != "" {
			t.host.Key(name, now)
		}
	}
}

func (t *Terminal) leaderboardKey(ev *tcell.EventKey) {
	switch {
	case ev.Key() == tcell.KeyEnter, ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
		t.restart()
	case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
		t.quitting = true
	}
}

// KeyName maps a tcell key to the host's key names.
func KeyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyRune:
		return string(ev.Rune())
	}
	return ""
}

// mouse turns button 1 into touches. Motion with the button down moves the
// touch; a button-less event ends it.
func (t *Terminal) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !t.pressed:
		if y >= t.host.Screen().Height() {
			return
		}
		t.pressed = true
		t.host.MousePress(x, y)
	case down:
		t.host.MouseMotion(x, y)
	case t.pressed:
		t.pressed = false
		t.host.MouseRelease(x, y)
	}
}
