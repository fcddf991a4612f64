package jump

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/engine"
	"github.com/vovakirdan/arcade-hub/internal/render"
)

func newGame(t *testing.T) (*Game, *core.InputState, *[]int) {
	t.Helper()
	input := core.NewInputState()
	overs := &[]int{}
	env := engine.Env{
		Surface:    render.NewCanvas(core.NewScreen(48, 40)),
		Input:      input,
		Resize:     engine.NewScopedResize(engine.NewResizeSignal(48, 80), engine.NewScope()),
		Rand:       rand.New(rand.NewSource(3)),
		OnGameOver: func(score int) { *overs = append(*overs, score) },
	}
	g := New(env, config.DefaultJumpConfig())
	if err := g.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return g, input, overs
}

func TestInitLayout(t *testing.T) {
	g, _, _ := newGame(t)
	if g.player.X != 225 || g.player.Y != 700 {
		t.Errorf("player at (%v,%v), want (225,700)", g.player.X, g.player.Y)
	}
	start := g.platforms[0]
	if start != core.NewBox(190, 750, 100, 20) {
		t.Errorf("start platform = %+v", start)
	}
	if len(g.platforms) < 10 {
		t.Fatalf("only %d platforms laid", len(g.platforms))
	}
	for i, pl := range g.platforms[1:] {
		if pl.Y > 650 || pl.Y <= -1000 {
			t.Errorf("platform %d y = %v outside (-1000, 650]", i+1, pl.Y)
		}
		if pl.X < 0 || pl.Right() > 480 || pl.W < 80 || pl.W >= 120 {
			t.Errorf("platform %d = %+v", i+1, pl)
		}
	}
}

func TestBouncesOffStartPlatform(t *testing.T) {
	g, _, _ := newGame(t)
	bounced := false
	for i := 0; i < 10 && !bounced; i++ {
		g.Update(16)
		bounced = g.vy == g.cfg.Player.JumpForce
	}
	if !bounced {
		t.Fatal("never bounced off the start platform")
	}
	if g.player.Y != 720 {
		t.Errorf("y = %v after landing, want 720", g.player.Y)
	}
}

func TestHorizontalClamp(t *testing.T) {
	tests := []struct {
		name  string
		key   core.Key
		wantX float64
	}{
		{"left", core.KeyLeft, 0},
		{"right", core.KeyRight, 450},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, input, _ := newGame(t)
			g.platforms = nil
			input.Apply(core.Event{Kind: core.EventPress, Key: tt.key})
			for i := 0; i < 100; i++ {
				g.player.Y, g.vy = 500, 0
				g.Update(16)
				if g.player.X < 0 || g.player.Right() > 480 {
					t.Fatalf("x = %v escaped the viewport", g.player.X)
				}
			}
			if g.player.X != tt.wantX {
				t.Errorf("x = %v, want %v", g.player.X, tt.wantX)
			}
		})
	}
}

func TestPointerSteers(t *testing.T) {
	g, input, _ := newGame(t)
	g.platforms = nil
	g.player.Y = 500

	input.Apply(core.Event{Kind: core.EventPointerStart, X: 0})
	g.Update(16)
	if g.vx != -5 || g.player.X != 220 {
		t.Errorf("vx=%v x=%v, want -5 and 220", g.vx, g.player.X)
	}

	// Within the dead zone around the jumper's center.
	input.Apply(core.Event{Kind: core.EventPointerMove, X: 23.5})
	g.Update(16)
	if g.vx != 0 {
		t.Errorf("vx = %v inside the dead zone, want 0", g.vx)
	}
}

func TestRisingPassesThroughPlatforms(t *testing.T) {
	g, _, _ := newGame(t)
	g.platforms = []core.Box{core.NewBox(200, 430, 100, 20)}
	g.player = core.NewBox(220, 440, 30, 30)
	g.vy = -10
	g.Update(16)
	if g.vy == g.cfg.Player.JumpForce || g.vy >= 0 {
		t.Errorf("vy = %v, rising jumper must not land", g.vy)
	}
}

// A landing and a recycle can happen in the same frame: the platform the
// jumper bounced off scrolls with it, only the one falling off is moved.
func TestLandAndRecycleSameFrame(t *testing.T) {
	g, _, overs := newGame(t)
	g.platforms = []core.Box{
		core.NewBox(200, 330, 100, 20),
		core.NewBox(0, 790, 80, 20),
	}
	g.player = core.NewBox(220, 300, 30, 30)
	g.vy = 5
	g.Update(16)

	if g.vy != -15 {
		t.Errorf("vy = %v, want the jump force", g.vy)
	}
	if g.player.Y != 400 || g.player.Bottom() != g.platforms[0].Y {
		t.Errorf("jumper y=%v, landed platform y=%v; want feet on the platform at 430", g.player.Y, g.platforms[0].Y)
	}
	recycled := g.platforms[1]
	if recycled.Y > -50 || recycled.Y < -100 || recycled.X < 0 || recycled.Right() > 480 {
		t.Errorf("recycled platform = %+v", recycled)
	}
	if g.score != 10 {
		t.Errorf("score = %d, want 10", g.score)
	}
	if len(*overs) != 0 {
		t.Error("landing frame ended the game")
	}
}

func TestFallingOutEndsGameOnce(t *testing.T) {
	g, _, overs := newGame(t)
	g.platforms = nil
	g.score = 30
	g.player.Y, g.vy = 790, 10
	g.Update(16)
	g.Update(16)
	if len(*overs) != 1 || (*overs)[0] != 30 {
		t.Errorf("game over calls = %v, want [30]", *overs)
	}
}

func TestScoreMonotonic(t *testing.T) {
	g, input, overs := newGame(t)
	input.Apply(core.Event{Kind: core.EventPress, Key: core.KeyLeft})
	prev := 0
	for i := 0; i < 3000 && len(*overs) == 0; i++ {
		if i%90 == 0 {
			input.Reset()
			k := core.KeyLeft
			if i%180 == 0 {
				k = core.KeyRight
			}
			input.Apply(core.Event{Kind: core.EventPress, Key: k})
		}
		g.Update(16)
		if g.score < prev {
			t.Fatalf("score dropped from %d to %d", prev, g.score)
		}
		prev = g.score
	}
	g.Draw()
}
