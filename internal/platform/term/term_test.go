package term

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/engine"
	"github.com/vovakirdan/arcade-hub/internal/hub"
	"github.com/vovakirdan/arcade-hub/internal/registry"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type memScores struct {
	mu   sync.Mutex
	rows []hub.ScoreEntry
}

func (s *memScores) Save(_ context.Context, _ registry.Key, name string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, hub.ScoreEntry{Name: name, Score: score})
	return nil
}

func (s *memScores) Top(context.Context, registry.Key, int) ([]hub.ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]hub.ScoreEntry(nil), s.rows...), nil
}

type probe struct {
	env     engine.Env
	updates int
	endWith int
}

func (p *probe) Init() error            { return nil }
func (p *probe) HandleInput(core.Event) {}
func (p *probe) Draw()                  { p.env.Surface.FillText(10, 0, "probe", core.ColorGreen) }

func (p *probe) Update(float64) {
	p.updates++
	if p.endWith > 0 && p.updates == 2 {
		p.env.GameOver(p.endWith)
	}
}

func newTerminal(t *testing.T, preset string, tmpl probe) (*Terminal, tcell.SimulationScreen, **probe) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	var last *probe
	term, err := New(context.Background(), Options{
		Screen: sim,
		Game:   registry.Snake,
		Scores: &memScores{},
		Gate:   hub.NewLocalGate(preset),
		Hub:    config.DefaultHubConfig(),
		Seed:   1,
		Factory: func(registry.Key, config.Source) (engine.Factory, error) {
			return func(env engine.Env) engine.Unit {
				p := tmpl
				p.env = env
				last = &p
				return &p
			}, nil
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(term.close)
	return term, sim, &last
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func screenText(s tcell.Screen) string {
	_, h := s.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = rowText(s, y)
	}
	return strings.Join(rows, "\n")
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "left"},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), "down"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), " "},
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), "a"},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), ""},
	}
	for _, tt := range tests {
		if got := KeyName(tt.ev); got != tt.want {
			t.Errorf("KeyName(%v) = %q, want %q", tt.ev.Name(), got, tt.want)
		}
	}
}

func TestPlayThenLeaderboard(t *testing.T) {
	term, sim, last := newTerminal(t, "ann", probe{endWith: 7})
	if err := term.start(); err != nil {
		t.Fatal(err)
	}

	term.frame(epoch.Add(16 * time.Millisecond))
	term.draw()
	if got := rowText(sim, 0); got != "probe" {
		t.Errorf("row 0 = %q, want the unit's drawing", got)
	}
	if _, h := sim.Size(); !strings.Contains(rowText(sim, h-1), "Score: 0") {
		t.Errorf("status row = %q", rowText(sim, h-1))
	}

	term.handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), epoch)
	if !(*last).env.Input.Pressed(core.KeyLeft) {
		t.Error("left arrow did not reach the unit")
	}

	term.frame(epoch.Add(32 * time.Millisecond))
	if term.app.Screen() != hub.ScreenLeaderboard {
		t.Fatalf("screen = %v, want leaderboard", term.app.Screen())
	}
	term.app.Wait()
	term.draw()
	text := screenText(sim)
	for _, want := range []string{"GAME OVER", "Final score: 7", "1. ann 7"} {
		if !strings.Contains(text, want) {
			t.Errorf("screen lacks %q:\n%s", want, text)
		}
	}

	term.handle(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), epoch)
	if term.app.Screen() != hub.ScreenGame {
		t.Errorf("play again: screen = %v", term.app.Screen())
	}
}

func TestSignInStartsGame(t *testing.T) {
	term, _, _ := newTerminal(t, "", probe{})
	if term.app.Screen() != hub.ScreenAuth {
		t.Fatalf("screen = %v, want auth", term.app.Screen())
	}

	term.handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), epoch)
	if term.status == "" || term.app.Screen() != hub.ScreenAuth {
		t.Errorf("blank name accepted: status=%q", term.status)
	}

	for _, r := range "bobx" {
		term.handle(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone), epoch)
	}
	term.handle(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), epoch)
	term.handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), epoch)

	if term.app.Screen() != hub.ScreenGame || term.app.User().Name != "bob" {
		t.Errorf("screen=%v user=%+v", term.app.Screen(), term.app.User())
	}
}

func TestMouseTouches(t *testing.T) {
	term, _, last := newTerminal(t, "ann", probe{})
	if err := term.start(); err != nil {
		t.Fatal(err)
	}

	term.handle(tcell.NewEventMouse(4, 2, tcell.Button1, tcell.ModNone), epoch)
	if x, ok := (*last).env.Input.Pointer(); !ok || x != 4.5 {
		t.Fatalf("pointer = %v, %v; want 4.5", x, ok)
	}
	term.handle(tcell.NewEventMouse(9, 2, tcell.Button1, tcell.ModNone), epoch)
	if x, _ := (*last).env.Input.Pointer(); x != 9.5 {
		t.Errorf("pointer after drag = %v", x)
	}
	term.handle(tcell.NewEventMouse(9, 2, tcell.ButtonNone, tcell.ModNone), epoch)
	if _, ok := (*last).env.Input.Pointer(); ok {
		t.Error("pointer still down after release")
	}
}

func TestResize(t *testing.T) {
	term, _, _ := newTerminal(t, "ann", probe{})
	term.handle(tcell.NewEventResize(60, 30), epoch)
	if s := term.host.Screen(); s.Width() != 60 || s.Height() != 29 {
		t.Errorf("game area = %dx%d, want 60x29", s.Width(), s.Height())
	}
	if term.overlay.Width() != 60 || term.overlay.Height() != 30 {
		t.Errorf("overlay = %dx%d", term.overlay.Width(), term.overlay.Height())
	}
}

func TestRunReturnsOnCancel(t *testing.T) {
	term, _, _ := newTerminal(t, "ann", probe{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := term.Run(ctx); err != nil {
		t.Errorf("Run = %v", err)
	}
	if term.runtime.Active() {
		t.Error("runtime still active after Run")
	}
}
