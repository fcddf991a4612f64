// Package brick implements a brick breaker.
// A paddle keeps the ball in play while it clears a wall of bricks; a
// cleared wall is rebuilt and the ball re-centered.
package brick

import (
	"fmt"
	"math"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/engine"
	"github.com/vovakirdan/arcade-hub/internal/registry"
)

func init() {
	registry.Register(registry.GameInfo{
		Key:   registry.Brick,
		Title: "Brick",
		Help:  "←/→ or drag the paddle",
	}, func(src config.Source) (engine.Factory, error) {
		cfg, err := config.LoadBrick(src)
		if err != nil {
			return nil, err
		}
		return Factory(cfg), nil
	})
}

// Row colors, cycling from the top.
var rowColors = []core.Color{
	core.ColorRed,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorBlue,
	core.ColorMagenta,
}

// Ball is the bouncing ball.
type Ball struct {
	X, Y   float64
	R      float64
	DX, DY float64
}

// Brick is one wall cell.
type Brick struct {
	Box   core.Box
	Color core.Color
	Alive bool
}

// Game implements the Brick game logic.
type Game struct {
	env engine.Env
	cfg config.BrickConfig

	paddle core.Box
	ball   Ball
	bricks []Brick
	walls  int // walls cleared
	score  int
	over   bool
}

// Factory returns an engine factory for the given configuration.
func Factory(cfg config.BrickConfig) engine.Factory {
	return func(env engine.Env) engine.Unit {
		return New(env, cfg)
	}
}

// New creates a Brick unit bound to env.
func New(env engine.Env, cfg config.BrickConfig) *Game {
	return &Game{env: env, cfg: cfg}
}

// Init resets the session and fits the surface.
func (g *Game) Init() error {
	vp := g.cfg.Viewport
	engine.FitSurface(g.env, engine.Viewport{W: vp.Width, H: vp.Height})

	p := g.cfg.Paddle
	g.paddle = core.NewBox(vp.Width/2-p.Width/2, vp.Height-p.BottomOffset, p.Width, p.Height)

	b := g.cfg.Ball
	g.ball = Ball{X: vp.Width / 2, Y: vp.Height - b.StartOffset, R: b.Radius, DX: b.DX, DY: b.DY}

	g.buildWall()
	g.walls = 0
	g.score = 0
	g.over = false
	return nil
}

// buildWall lays out a fresh grid of bricks.
func (g *Game) buildWall() {
	w := g.cfg.Bricks
	width := (g.cfg.Viewport.Width - float64(w.Cols+1)*w.Padding) / float64(w.Cols)

	g.bricks = g.bricks[:0]
	for r := 0; r < w.Rows; r++ {
		for c := 0; c < w.Cols; c++ {
			g.bricks = append(g.bricks, Brick{
				Box: core.NewBox(
					float64(c)*(width+w.Padding)+w.Padding,
					float64(r)*(w.Height+w.Padding)+w.Top,
					width, w.Height,
				),
				Color: rowColors[r%len(rowColors)],
				Alive: true,
			})
		}
	}
}

// HandleInput is a no-op: the paddle follows the shared input state.
func (g *Game) HandleInput(core.Event) {}

// Update advances the simulation.
func (g *Game) Update(float64) {
	if g.over {
		return
	}
	g.movePaddle()

	vp := g.cfg.Viewport
	b := &g.ball
	b.X += b.DX
	b.Y += b.DY

	g.bounceWalls()
	if b.Y+b.R > vp.Height {
		g.over = true
		g.env.GameOver(g.score)
		return
	}

	g.bouncePaddle()
	g.hitBricks()
}

// bounceWalls reflects the ball off the side and top walls by direction and
// puts it back inside the view, so a wall flips dx exactly once.
func (g *Game) bounceWalls() {
	vp := g.cfg.Viewport
	b := &g.ball
	switch {
	case b.X+b.R > vp.Width:
		b.X = vp.Width - b.R
		b.DX = -math.Abs(b.DX)
	case b.X-b.R < 0:
		b.X = b.R
		b.DX = math.Abs(b.DX)
	}
	if b.Y-b.R < 0 {
		b.Y = b.R
		b.DY = math.Abs(b.DY)
	}
}

func (g *Game) movePaddle() {
	in := g.env.Input
	if in != nil {
		if in.Pressed(core.KeyLeft) {
			g.paddle.X -= g.cfg.Paddle.KeySpeed
		}
		if in.Pressed(core.KeyRight) {
			g.paddle.X += g.cfg.Paddle.KeySpeed
		}
		if px, ok := in.Pointer(); ok {
			x := px
			if g.env.Surface != nil {
				x = engine.ClientToLogicalX(g.env.Surface, px)
			}
			g.paddle.X = x - g.paddle.W/2
		}
	}
	g.paddle.X = core.ClampF(g.paddle.X, 0, g.cfg.Viewport.Width-g.paddle.W)
}

// bouncePaddle reflects a falling ball off the paddle. The hit offset from
// the paddle center sets the new horizontal speed.
func (g *Game) bouncePaddle() {
	b := &g.ball
	p := g.paddle
	if b.Y+b.R > p.Y && b.X > p.X && b.X < p.Right() && b.DY > 0 {
		speedUp := g.cfg.Ball.SpeedUp
		b.DY = -b.DY * speedUp
		b.DX = (b.X - (p.X + p.W/2)) * g.cfg.Ball.Spin * speedUp
	}
}

// hitBricks destroys the brick containing the ball center. Bricks never
// overlap, so at most one is hit per frame.
func (g *Game) hitBricks() {
	b := &g.ball
	alive := 0
	for i := range g.bricks {
		br := &g.bricks[i]
		if !br.Alive {
			continue
		}
		if b.X > br.Box.X && b.X < br.Box.Right() && b.Y > br.Box.Y && b.Y < br.Box.Bottom() {
			b.DY = -b.DY
			br.Alive = false
			g.score += g.cfg.Bricks.Reward
			continue
		}
		alive++
	}

	if alive == 0 {
		g.walls++
		g.buildWall()
		b.X = g.cfg.Viewport.Width / 2
		b.Y = g.cfg.Viewport.Height / 2
	}
}

// Draw renders the wall, paddle, ball and score.
func (g *Game) Draw() {
	s := g.env.Surface
	if s != nil {
		s.Clear(core.ColorDefault)
		for _, br := range g.bricks {
			if br.Alive {
				s.FillRect(br.Box.X, br.Box.Y, br.Box.W, br.Box.H, br.Color)
			}
		}
		s.FillRect(g.paddle.X, g.paddle.Y, g.paddle.W, g.paddle.H, core.ColorBrightBlue)
		s.FillCircle(g.ball.X, g.ball.Y, g.ball.R, core.ColorBrightWhite)
		s.FillText(g.cfg.Viewport.Width/2, 20, fmt.Sprintf("Score: %d", g.score), core.ColorWhite)
	}
	g.env.ShowScore(g.score)
}
