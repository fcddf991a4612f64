package dodge

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/engine"
	"github.com/vovakirdan/arcade-hub/internal/render"
)

type testRig struct {
	game   *Game
	input  *core.InputState
	canvas *render.Canvas
	overs  []int
}

func newRig(t *testing.T) *testRig {
	t.Helper()
	r := &testRig{
		input:  core.NewInputState(),
		canvas: render.NewCanvas(core.NewScreen(48, 40)),
	}
	env := engine.Env{
		Surface:    r.canvas,
		Input:      r.input,
		Resize:     engine.NewScopedResize(engine.NewResizeSignal(48, 80), engine.NewScope()),
		Rand:       rand.New(rand.NewSource(7)),
		OnGameOver: func(score int) { r.overs = append(r.overs, score) },
	}
	r.game = New(env, config.DefaultDodgeConfig())
	if err := r.game.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return r
}

func TestInitialState(t *testing.T) {
	r := newRig(t)
	g := r.game
	if g.player.X != 225 || g.player.Y != 745 {
		t.Errorf("player at (%v,%v), want (225,745)", g.player.X, g.player.Y)
	}
	if w, h := r.canvas.Resolution(); w != 480 || h != 800 {
		t.Errorf("resolution = %dx%d, want 480x800", w, h)
	}
}

func TestBoundsClamp(t *testing.T) {
	tests := []struct {
		name  string
		key   core.Key
		wantX float64
	}{
		{"left wall", core.KeyLeft, 0},
		{"right wall", core.KeyRight, 450},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t)
			r.input.Apply(core.Event{Kind: core.EventPress, Key: tt.key})
			for i := 0; i < 500; i++ {
				r.game.obstacles = r.game.obstacles[:0] // keep the run alive
				r.game.Update(16)
				x := r.game.player.X
				if x < 0 || x > 450 {
					t.Fatalf("frame %d: x = %v escaped [0, 450]", i, x)
				}
			}
			if r.game.player.X != tt.wantX {
				t.Errorf("x = %v, want %v", r.game.player.X, tt.wantX)
			}
		})
	}
}

func TestBoundsClampFromHighVelocity(t *testing.T) {
	for _, vx := range []float64{-1000, -5, 5, 1000} {
		r := newRig(t)
		r.game.vx = vx
		r.game.cfg.Player.MaxSpeed = 2000
		for i := 0; i < 3; i++ {
			r.game.Update(0)
		}
		if x := r.game.player.X; x < 0 || x > 450 {
			t.Errorf("vx=%v: x = %v escaped [0, 450]", vx, x)
		}
	}
}

func TestPointerPull(t *testing.T) {
	r := newRig(t)
	// Canvas display is the full 48-column screen: client 0 is logical 0.
	r.input.Apply(core.Event{Kind: core.EventPointerStart, X: 0})
	for i := 0; i < 200; i++ {
		r.game.obstacles = r.game.obstacles[:0]
		r.game.Update(16)
	}
	if r.game.player.X != 0 {
		t.Errorf("pointer at the left edge should pull the runner to 0, got %v", r.game.player.X)
	}
}

func TestSpawnRules(t *testing.T) {
	r := newRig(t)
	g := r.game

	g.Update(500) // not strictly greater than the 500ms interval
	if len(g.obstacles) != 0 {
		t.Fatalf("spawned at exactly the interval")
	}
	g.Update(1)
	if len(g.obstacles) != 1 || g.score != 10 {
		t.Fatalf("obstacles=%d score=%d, want 1 and 10", len(g.obstacles), g.score)
	}

	o := g.obstacles[0]
	if o.Box.W < 20 || o.Box.W >= 40 || o.Box.W != o.Box.H {
		t.Errorf("size %vx%v outside [20,40)", o.Box.W, o.Box.H)
	}
	if o.Box.X < 0 || o.Box.Right() > 480 {
		t.Errorf("x = %v places obstacle outside the viewport", o.Box.X)
	}
	// Already moved one frame from -size.
	if o.Box.Y != -o.Box.W+o.Speed {
		t.Errorf("y = %v, want %v", o.Box.Y, -o.Box.W+o.Speed)
	}
	if o.Speed < 3 || o.Speed >= 6.5 {
		t.Errorf("speed = %v outside [3, 6.5)", o.Speed)
	}
}

func TestHitboxInset(t *testing.T) {
	r := newRig(t)
	g := r.game
	p := g.player

	// Overlaps the outer box by 4px only: inside the 5px inset.
	g.obstacles = []Obstacle{{Box: core.NewBox(p.Right()-4, p.Y, 30, 30)}}
	g.Update(0)
	if len(r.overs) != 0 {
		t.Fatal("grazing the inset margin ended the game")
	}

	g.obstacles = []Obstacle{{Box: core.NewBox(p.X, p.Y, 30, 30)}}
	g.Update(0)
	g.Update(0)
	if len(r.overs) != 1 {
		t.Fatalf("game over signalled %d times, want 1", len(r.overs))
	}
}

func TestOffscreenObstaclesRemoved(t *testing.T) {
	r := newRig(t)
	g := r.game
	g.obstacles = []Obstacle{{Box: core.NewBox(0, 799, 20, 20), Speed: 5}}
	g.Update(0)
	if len(g.obstacles) != 0 {
		t.Errorf("obstacle below the viewport was kept")
	}
}

func TestScoreMonotonic(t *testing.T) {
	r := newRig(t)
	r.input.Apply(core.Event{Kind: core.EventPress, Key: core.KeyRight})
	prev := 0
	for i := 0; i < 2000 && len(r.overs) == 0; i++ {
		r.game.Update(16)
		if r.game.score < prev {
			t.Fatalf("score dropped from %d to %d", prev, r.game.score)
		}
		prev = r.game.score
		if i%100 == 0 {
			r.game.Draw()
		}
	}
}

func TestDrawShowsScore(t *testing.T) {
	r := newRig(t)
	shown := -1
	r.game.env.OnScore = func(s int) { shown = s }
	r.game.score = 70
	r.game.Draw()
	if shown != 70 {
		t.Errorf("score readout = %d, want 70", shown)
	}
}
