// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical pipes.
package flappy

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/engine"
	"github.com/vovakirdan/arcade-hub/internal/registry"
)

func init() {
	registry.Register(registry.GameInfo{
		Key:   registry.Flappy,
		Title: "Flappy Bird",
		Help:  "Space or tap to flap",
	}, func(src config.Source) (engine.Factory, error) {
		cfg, err := config.LoadFlappy(src)
		if err != nil {
			return nil, err
		}
		return Factory(cfg), nil
	})
}

// Game implements the Flappy Bird game logic.
type Game struct {
	env engine.Env
	cfg config.FlappyConfig

	bird    core.Box
	vy      float64
	pipes   *PipeManager
	playing bool    // false while hovering before the first flap
	hover   float64 // ms spent in the ready state
	score   int
	over    bool
}

// Factory returns an engine factory for the given configuration.
func Factory(cfg config.FlappyConfig) engine.Factory {
	return func(env engine.Env) engine.Unit {
		return New(env, cfg)
	}
}

// New creates a Flappy unit bound to env.
func New(env engine.Env, cfg config.FlappyConfig) *Game {
	rng := env.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Game{
		env:   env,
		cfg:   cfg,
		pipes: NewPipeManager(rng, cfg.Pipes, cfg.Viewport.Width, cfg.Viewport.Height),
	}
}

func (g *Game) restY() float64 {
	return g.cfg.Viewport.Height/2 - g.cfg.Bird.Height/2
}

// Init resets the session and fits the surface.
func (g *Game) Init() error {
	engine.FitSurface(g.env, engine.Viewport{W: g.cfg.Viewport.Width, H: g.cfg.Viewport.Height})

	b := g.cfg.Bird
	g.bird = core.NewBox(b.X, g.restY(), b.Width, b.Height)
	g.vy = 0
	g.pipes.Reset()
	g.playing = false
	g.hover = 0
	g.score = 0
	g.over = false
	return nil
}

// HandleInput flaps on Space or a new touch. The first flap starts play.
func (g *Game) HandleInput(ev core.Event) {
	if g.over {
		return
	}
	flap := (ev.Kind == core.EventPress && ev.Key == core.KeySpace) ||
		ev.Kind == core.EventPointerStart
	if !flap {
		return
	}
	g.playing = true
	g.vy = g.cfg.Bird.Jump
}

// Update advances the simulation.
func (g *Game) Update(dt float64) {
	if g.over {
		return
	}
	if !g.playing {
		g.hover += dt
		if p := g.cfg.Ready.PeriodMS; p > 0 {
			g.bird.Y = g.restY() + math.Sin(g.hover/p)*g.cfg.Ready.Amplitude
		}
		return
	}

	g.vy += g.cfg.Bird.Gravity
	g.bird.Y += g.vy

	if g.bird.Y < 0 || g.bird.Bottom() > g.cfg.Viewport.Height {
		g.end()
		return
	}

	g.score += g.pipes.Update(dt, g.bird.X) * g.cfg.Pipes.Reward
	if g.pipes.CheckCollision(g.bird) {
		g.end()
	}
}

func (g *Game) end() {
	g.over = true
	g.env.GameOver(g.score)
}

// Draw renders pipes, the bird and the score.
func (g *Game) Draw() {
	s := g.env.Surface
	if s != nil {
		s.Clear(core.ColorDefault)
		for _, p := range g.pipes.Pipes() {
			top := p.TopRect(g.cfg.Pipes)
			bottom := p.BottomRect(g.cfg.Pipes, g.cfg.Viewport.Height)
			s.FillRect(top.X, top.Y, top.W, top.H, core.ColorGreen)
			s.FillRect(bottom.X, bottom.Y, bottom.W, bottom.H, core.ColorGreen)
		}
		s.FillRect(g.bird.X, g.bird.Y, g.bird.W, g.bird.H, core.ColorYellow)

		cx := g.cfg.Viewport.Width / 2
		s.FillText(cx, 40, fmt.Sprintf("Score: %d", g.score), core.ColorWhite)
		if !g.playing {
			s.FillText(cx, g.cfg.Viewport.Height/2-80, "Press Space or tap to start", core.ColorBrightWhite)
		}
	}
	g.env.ShowScore(g.score)
}
