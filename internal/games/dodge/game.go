// Package dodge implements a falling-obstacle game.
// The runner slides along the bottom edge and must avoid everything that
// drops from the top; spawns get faster and heavier as the score grows.
package dodge

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
		Key:   registry.Dodge,
		Title: "Dodge",
		Help:  "←/→ or drag to move",
	}, func(src config.Source) (engine.Factory, error) {
		cfg, err := config.LoadDodge(src)
		if err != nil {
			return nil, err
		}
		return Factory(cfg), nil
	})
}

// Runner figure proportions, in logical pixels.
const (
	headRadius = 8
	bodyLength = 15
	limbLength = 12
	swingRange = 0.8
)

// Obstacle is one falling object.
type Obstacle struct {
	Box      core.Box
	Speed    float64 // px per frame
	Rotation float64 // visual only
	Spin     float64
}

// Hitbox returns the inset collision box.
func (o Obstacle) Hitbox(inset float64) core.Box {
	return o.Box.Inset(inset)
}

// Game implements the Dodge game logic.
type Game struct {
	env engine.Env
	cfg config.DodgeConfig
	rng *rand.Rand

	player     core.Box
	vx         float64
	animTick   float64
	obstacles  []Obstacle
	spawnTimer float64
	score      int
	over       bool
}

// Factory returns an engine factory for the given configuration.
func Factory(cfg config.DodgeConfig) engine.Factory {
	return func(env engine.Env) engine.Unit {
		return New(env, cfg)
	}
}

// New creates a Dodge unit bound to env.
func New(env engine.Env, cfg config.DodgeConfig) *Game {
	rng := env.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Game{env: env, cfg: cfg, rng: rng}
}

func (g *Game) viewport() engine.Viewport {
	return engine.Viewport{W: g.cfg.Viewport.Width, H: g.cfg.Viewport.Height}
}

// Init resets the session and fits the surface.
func (g *Game) Init() error {
	engine.FitSurface(g.env, g.viewport())

	p := g.cfg.Player
	g.player = core.NewBox(
		g.cfg.Viewport.Width/2-p.Width/2,
		g.cfg.Viewport.Height-p.Height-p.BottomMargin,
		p.Width, p.Height,
	)
	g.vx = 0
	g.animTick = 0
	g.obstacles = g.obstacles[:0]
	g.spawnTimer = 0
	g.score = 0
	g.over = false
	return nil
}

// HandleInput is a no-op: the runner steers from the shared input state.
func (g *Game) HandleInput(core.Event) {}

// Update advances the simulation.
func (g *Game) Update(dt float64) {
	if g.over {
		return
	}
	g.steer()
	g.spawn(dt)

	inset := g.cfg.Obstacles.HitboxInset
	for i := len(g.obstacles) - 1; i >= 0; i-- {
		o := &g.obstacles[i]
		o.Box.Y += o.Speed
		o.Rotation += o.Spin

		if g.player.Overlaps(o.Hitbox(inset)) {
			g.over = true
			g.env.GameOver(g.score)
			return
		}
		if o.Box.Y > g.cfg.Viewport.Height {
			g.obstacles = append(g.obstacles[:i], g.obstacles[i+1:]...)
		}
	}
}

// steer applies keys, friction, pointer pull and the side walls.
func (g *Game) steer() {
	p := g.cfg.Player
	in := g.env.Input

	if in != nil && in.Pressed(core.KeyLeft) {
		g.vx -= p.Accel
	}
	if in != nil && in.Pressed(core.KeyRight) {
		g.vx += p.Accel
	}
	g.vx *= p.Friction
	g.vx = core.ClampF(g.vx, -p.MaxSpeed, p.MaxSpeed)
	g.player.X += g.vx

	if math.Abs(g.vx) > 0.1 {
		g.animTick += 0.2 * math.Abs(g.vx)
	} else {
		g.animTick = 0
	}

	// The pointer pull lands on the next frame's movement.
	if in != nil {
		if px, ok := in.Pointer(); ok {
			diff := g.logicalX(px) - (g.player.X + g.player.W/2)
			if diff > p.TouchDeadZone {
				g.vx += p.TouchAccel
			} else if diff < -p.TouchDeadZone {
				g.vx -= p.TouchAccel
			}
		}
	}

	if g.player.X < 0 {
		g.player.X = 0
		g.vx = 0
	}
	if g.player.Right() > g.cfg.Viewport.Width {
		g.player.X = g.cfg.Viewport.Width - g.player.W
		g.vx = 0
	}
}

func (g *Game) logicalX(clientX float64) float64 {
	if g.env.Surface == nil {
		return clientX
	}
	return engine.ClientToLogicalX(g.env.Surface, clientX)
}

// spawn drops a new obstacle once the score-driven interval has elapsed.
func (g *Game) spawn(dt float64) {
	g.spawnTimer += dt
	if g.spawnTimer <= g.cfg.SpawnInterval.At(g.score) {
		return
	}
	g.spawnTimer = 0

	ob := g.cfg.Obstacles
	size := g.rng.Float64()*ob.SizeSpread + ob.MinSize
	g.obstacles = append(g.obstacles, Obstacle{
		Box:   core.NewBox(g.rng.Float64()*(g.cfg.Viewport.Width-size), -size, size, size),
		Speed: g.rng.Float64()*ob.SpeedSpread + g.cfg.FallSpeed.At(g.score),
		Spin:  (g.rng.Float64()*2 - 1) * ob.MaxSpin,
	})
	g.score += g.cfg.SpawnReward
}

// Draw renders the runner, the obstacles and the score.
func (g *Game) Draw() {
	s := g.env.Surface
	if s != nil {
		s.Clear(core.ColorDefault)
		g.drawRunner(s)
		for _, o := range g.obstacles {
			s.Save()
			s.Translate(o.Box.X+o.Box.W/2, o.Box.Y+o.Box.H/2)
			s.Rotate(o.Rotation)
			s.FillRect(-o.Box.W/2, -o.Box.H/2, o.Box.W, o.Box.H, core.ColorBrown)
			s.Restore()
		}
		s.FillText(g.cfg.Viewport.Width/2, 20, fmt.Sprintf("Score: %d", g.score), core.ColorWhite)
	}
	g.env.ShowScore(g.score)
}

// drawRunner draws a stick figure whose limbs swing with animTick.
func (g *Game) drawRunner(s engine.Surface) {
	cx := g.player.X + g.player.W/2
	ground := g.player.Bottom()
	bounce := math.Abs(math.Sin(g.animTick*2)) * 2
	hipY := ground - limbLength - bounce
	neckY := hipY - bodyLength
	headY := neckY - headRadius

	s.FillCircle(cx, headY, headRadius, core.ColorWhite)
	s.Line(cx, neckY, cx, hipY, core.ColorBlue)

	swing := math.Sin(g.animTick) * swingRange
	limb := func(fromY, angle float64) {
		s.Line(cx, fromY, cx+math.Sin(angle)*limbLength, fromY+math.Cos(angle)*limbLength, core.ColorBlue)
	}
	limb(hipY, swing)
	limb(hipY, -swing)
	limb(neckY+4, -swing)
	limb(neckY+4, swing)
}
