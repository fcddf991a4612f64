// Package snake implements the classic grid snake.
// The snake stands still until the first direction is chosen, moves one
// tile per interval and speeds up with every apple.
package snake

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
		Key:   registry.Snake,
		Title: "Snake",
		Help:  "Arrows or swipe to turn",
	}, func(src config.Source) (engine.Factory, error) {
		cfg, err := config.LoadSnake(src)
		if err != nil {
			return nil, err
		}
		return Factory(cfg), nil
	})
}

// Point represents a tile coordinate or a unit velocity.
type Point struct {
	X, Y int
}

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) isZero() bool { return p.X == 0 && p.Y == 0 }

// opposite reports whether p and q point in exactly opposite directions.
func (p Point) opposite(q Point) bool {
	return !p.isZero() && p.X == -q.X && p.Y == -q.Y
}

// Unit velocities.
var (
	Up    = Point{0, -1}
	Down  = Point{0, 1}
	Left  = Point{-1, 0}
	Right = Point{1, 0}
)

// Game implements the Snake game.
type Game struct {
	env engine.Env
	cfg config.SnakeConfig
	rng *rand.Rand

	cols, rows int
	snake      []Point // head at index 0
	dir        Point   // velocity used by the last move
	next       Point   // velocity for the next move
	growing    bool    // skip the tail pop on the next move
	apple      Point
	timer      float64
	score      int
	over       bool

	swipeFrom  core.Event
	swipeArmed bool
}

// Factory returns an engine factory for the given configuration.
func Factory(cfg config.SnakeConfig) engine.Factory {
	return func(env engine.Env) engine.Unit {
		return New(env, cfg)
	}
}

// New creates a Snake unit bound to env.
func New(env engine.Env, cfg config.SnakeConfig) *Game {
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

	g.cols = int(vp.Width / g.cfg.Tile)
	g.rows = int(vp.Height / g.cfg.Tile)
	g.snake = append(g.snake[:0], Point(g.cfg.Start))
	g.dir, g.next = Point{}, Point{}
	g.growing = false
	g.apple = Point(g.cfg.Apple.Start)
	g.timer = 0
	g.score = 0
	g.over = false
	g.swipeArmed = false
	return nil
}

// HandleInput turns on arrow presses and on swipes.
func (g *Game) HandleInput(ev core.Event) {
	switch ev.Kind {
	case core.EventPress:
		switch ev.Key {
		case core.KeyUp:
			g.turn(Up)
		case core.KeyDown:
			g.turn(Down)
		case core.KeyLeft:
			g.turn(Left)
		case core.KeyRight:
			g.turn(Right)
		}
	case core.EventPointerStart:
		g.swipeFrom, g.swipeArmed = ev, true
	case core.EventPointerEnd:
		if !g.swipeArmed {
			return
		}
		g.swipeArmed = false
		if d, ok := swipeDirection(ev.X-g.swipeFrom.X, ev.Y-g.swipeFrom.Y); ok {
			g.turn(d)
		}
	}
}

// swipeDirection picks the dominant axis of a drag. A tap has none.
func swipeDirection(dx, dy float64) (Point, bool) {
	switch {
	case dx == 0 && dy == 0:
		return Point{}, false
	case math.Abs(dx) > math.Abs(dy):
		if dx > 0 {
			return Right, true
		}
		return Left, true
	case dy > 0:
		return Down, true
	default:
		return Up, true
	}
}

// turn buffers a direction change. Reversing onto the neck is ignored.
func (g *Game) turn(d Point) {
	if d.opposite(g.dir) {
		return
	}
	g.next = d
}

// Interval returns the current ms per move.
func (g *Game) Interval() float64 {
	return g.cfg.Interval.At(g.score)
}

// Update accumulates dt and moves once the interval is reached.
func (g *Game) Update(dt float64) {
	if g.over || g.next.isZero() {
		return
	}
	g.timer += dt
	if g.timer < g.Interval() {
		return
	}
	g.timer = 0
	g.move()
}

func (g *Game) move() {
	g.dir = g.next
	head := g.snake[0].add(g.dir)

	if head.X < 0 || head.X >= g.cols || head.Y < 0 || head.Y >= g.rows {
		g.end()
		return
	}

	// Every segment counts, the tail included: it has not moved yet.
	if g.isSnakeAt(head) {
		g.end()
		return
	}

	g.snake = append([]Point{head}, g.snake...)
	if g.growing {
		g.growing = false
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}

	if head == g.apple {
		g.score += g.cfg.Apple.Reward
		g.growing = true
		g.spawnApple()
	}
}

func (g *Game) end() {
	g.over = true
	g.env.GameOver(g.score)
}

// spawnApple places the apple on a random tile the snake does not cover.
func (g *Game) spawnApple() {
	var empty []Point
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			p := Point{x, y}
			if !g.isSnakeAt(p) {
				empty = append(empty, p)
			}
		}
	}
	if len(empty) == 0 {
		g.apple = Point{-1, -1}
		return
	}
	g.apple = empty[g.rng.Intn(len(empty))]
}

func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Draw renders the apple, the snake and the score.
func (g *Game) Draw() {
	s := g.env.Surface
	if s != nil {
		s.Clear(core.ColorDefault)
		t := g.cfg.Tile
		if g.apple.X >= 0 {
			s.FillCircle(float64(g.apple.X)*t+t/2, float64(g.apple.Y)*t+t/2, t/2-2, core.ColorRed)
		}
		for i, seg := range g.snake {
			c := core.ColorGreen
			if i == 0 {
				c = core.ColorBrightGreen
			}
			s.FillRect(float64(seg.X)*t+1, float64(seg.Y)*t+1, t-2, t-2, c)
		}
		s.FillText(g.cfg.Viewport.Width/2, 15, fmt.Sprintf("Score: %d", g.score), core.ColorWhite)
	}
	g.env.ShowScore(g.score)
}
