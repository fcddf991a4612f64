// Package jump implements an endless vertical platform jumper.
// The jumper bounces automatically on every platform it lands on; the
// camera follows it upward and platforms falling off the bottom are
// recycled above the top edge for points.
package jump

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/engine"
	"github.com/vovakirdan/arcade-hub/internal/registry"
)

func init() {
	registry.Register(registry.GameInfo{
		Key:   registry.Jump,
		Title: "Jump",
		Help:  "←/→ or hold left/right half to steer",
	}, func(src config.Source) (engine.Factory, error) {
		cfg, err := config.LoadJump(src)
		if err != nil {
			return nil, err
		}
		return Factory(cfg), nil
	})
}

// Game implements the Jump game logic.
type Game struct {
	env engine.Env
	cfg config.JumpConfig
	rng *rand.Rand

	player    core.Box
	vx, vy    float64
	platforms []core.Box
	score     int
	over      bool
}

// Factory returns an engine factory for the given configuration.
func Factory(cfg config.JumpConfig) engine.Factory {
	return func(env engine.Env) engine.Unit {
		return New(env, cfg)
	}
}

// New creates a Jump unit bound to env.
func New(env engine.Env, cfg config.JumpConfig) *Game {
	rng := env.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Game{env: env, cfg: cfg, rng: rng}
}

// Init resets the session and fits the surface.
func (g *Game) Init() error {
	vp := g.cfg.Viewport
	engine.FitSurface(g.env, engine.Viewport{W: vp.Width, H: vp.Height})

	p := g.cfg.Player
	g.player = core.NewBox(vp.Width/2-p.Width/2, vp.Height-p.StartOffset, p.Width, p.Height)
	g.vx, g.vy = 0, 0
	g.score = 0
	g.over = false
	g.layPlatforms()
	return nil
}

// layPlatforms places the wide starting ledge and fills the column above it.
func (g *Game) layPlatforms() {
	vp, pc := g.cfg.Viewport, g.cfg.Platforms
	g.platforms = g.platforms[:0]
	g.platforms = append(g.platforms, core.NewBox(
		vp.Width/2-pc.StartWidth/2, vp.Height-pc.StartOffset, pc.StartWidth, pc.Height,
	))
	for y := vp.Height - pc.FirstOffset; y > pc.FillTo; y -= pc.MinGap + g.rng.Float64()*pc.GapSpread {
		w := pc.MinWidth + g.rng.Float64()*pc.WidthSpread
		g.platforms = append(g.platforms, core.NewBox(g.rng.Float64()*(vp.Width-w), y, w, pc.Height))
	}
}

// HandleInput is a no-op: steering reads the shared input state.
func (g *Game) HandleInput(core.Event) {}

// Update advances the simulation.
func (g *Game) Update(float64) {
	if g.over {
		return
	}
	vp, p := g.cfg.Viewport, g.cfg.Player

	g.steer()
	g.player.X = core.ClampF(g.player.X+g.vx, 0, vp.Width-g.player.W)

	g.vy += p.Gravity
	g.player.Y += g.vy
	g.land()
	g.scroll()

	if g.player.Y > vp.Height {
		g.over = true
		g.env.GameOver(g.score)
	}
}

func (g *Game) steer() {
	speed := g.cfg.Player.Speed
	g.vx = 0
	in := g.env.Input
	if in == nil {
		return
	}
	if in.Pressed(core.KeyLeft) {
		g.vx = -speed
	}
	if in.Pressed(core.KeyRight) {
		g.vx = speed
	}
	if px, ok := in.Pointer(); ok {
		x := px
		if g.env.Surface != nil {
			x = engine.ClientToLogicalX(g.env.Surface, px)
		}
		diff := x - (g.player.X + g.player.W/2)
		switch dz := g.cfg.Player.TouchDeadZone; {
		case diff > dz:
			g.vx = speed
		case diff < -dz:
			g.vx = -speed
		}
	}
}

// land bounces the jumper off a platform its feet crossed this frame.
// Only a falling jumper lands, so platforms can be passed from below.
func (g *Game) land() {
	if g.vy <= 0 {
		return
	}
	feet := g.player.Bottom()
	for _, pl := range g.platforms {
		if feet > pl.Y && feet < pl.Bottom()+g.vy &&
			g.player.Right() > pl.X && g.player.X < pl.Right() {
			g.vy = g.cfg.Player.JumpForce
			g.player.Y = pl.Y - g.player.H
			return
		}
	}
}

// scroll keeps the jumper in the lower half of the view, recycling
// platforms that drop below the bottom edge.
func (g *Game) scroll() {
	vp, pc := g.cfg.Viewport, g.cfg.Platforms
	mid := vp.Height / 2
	if g.player.Y >= mid {
		return
	}
	diff := mid - g.player.Y
	g.player.Y = mid
	for i := range g.platforms {
		pl := &g.platforms[i]
		pl.Y += diff
		if pl.Y > vp.Height {
			pl.Y = -pc.RespawnMin - g.rng.Float64()*pc.RespawnSpread
			pl.X = g.rng.Float64() * (vp.Width - pl.W)
			g.score += pc.Reward
		}
	}
}

// Draw renders platforms, the jumper and the score.
func (g *Game) Draw() {
	s := g.env.Surface
	if s != nil {
		s.Clear(core.ColorDefault)
		for _, pl := range g.platforms {
			s.FillRect(pl.X, pl.Y, pl.W, pl.H, core.ColorGreen)
		}
		s.FillRect(g.player.X, g.player.Y, g.player.W, g.player.H, core.ColorMagenta)
		s.FillText(g.cfg.Viewport.Width/2, 30, fmt.Sprintf("Score: %d", g.score), core.ColorWhite)
	}
	g.env.ShowScore(g.score)
}
