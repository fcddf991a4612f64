package flappy

import (
	"math/rand"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/core"
)

// Pipe is one top/bottom pair with a passable gap between them.
type Pipe struct {
	X      float64
	GapY   float64 // top of the gap
	Passed bool    // the bird has cleared it (for scoring)
}

// TopRect returns the collision box of the upper half.
func (p Pipe) TopRect(cfg config.FlappyPipes) core.Box {
	return core.NewBox(p.X, 0, cfg.Width, p.GapY)
}

// BottomRect returns the collision box of the lower half.
func (p Pipe) BottomRect(cfg config.FlappyPipes, screenH float64) core.Box {
	y := p.GapY + cfg.Gap
	return core.NewBox(p.X, y, cfg.Width, screenH-y)
}

// PipeManager handles spawning, movement, and removal of pipes.
type PipeManager struct {
	pipes   []Pipe
	rng     *rand.Rand
	cfg     config.FlappyPipes
	screenW float64
	screenH float64
	timer   float64 // ms since the last spawn
}

// NewPipeManager creates a pipe manager for a screenW x screenH field.
func NewPipeManager(rng *rand.Rand, cfg config.FlappyPipes, screenW, screenH float64) *PipeManager {
	return &PipeManager{
		pipes:   make([]Pipe, 0, 8),
		rng:     rng,
		cfg:     cfg,
		screenW: screenW,
		screenH: screenH,
	}
}

// Reset clears all pipes and the spawn timer.
func (pm *PipeManager) Reset() {
	pm.pipes = pm.pipes[:0]
	pm.timer = 0
}

// Update advances the spawn timer by dt ms, moves pipes left and drops the
// ones that left the screen. Returns the number of pipes whose right edge
// went past birdX this frame.
func (pm *PipeManager) Update(dt, birdX float64) int {
	pm.timer += dt
	if pm.timer > pm.cfg.IntervalMS {
		pm.timer = 0
		pm.spawn()
	}

	passed := 0
	kept := pm.pipes[:0]
	for _, p := range pm.pipes {
		p.X -= pm.cfg.Speed
		if !p.Passed && p.X+pm.cfg.Width < birdX {
			p.Passed = true
			passed++
		}
		if p.X+pm.cfg.Width >= 0 {
			kept = append(kept, p)
		}
	}
	pm.pipes = kept
	return passed
}

// spawn places a pipe at the right edge with a random gap that keeps both
// halves at least MinHeight tall.
func (pm *PipeManager) spawn() {
	span := pm.screenH - pm.cfg.Gap - pm.cfg.MinHeight*2
	if span < 0 {
		span = 0
	}
	pm.pipes = append(pm.pipes, Pipe{
		X:    pm.screenW,
		GapY: pm.rng.Float64()*span + pm.cfg.MinHeight,
	})
}

// Pipes returns the current list of pipes.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// CheckCollision tests if box overlaps any pipe half.
func (pm *PipeManager) CheckCollision(box core.Box) bool {
	for _, p := range pm.pipes {
		if box.Overlaps(p.TopRect(pm.cfg)) || box.Overlaps(p.BottomRect(pm.cfg, pm.screenH)) {
			return true
		}
	}
	return false
}
