// Package engine hosts exactly one game unit at a time on a shared drawing
// surface. It drives the unit from a frame clock, routes normalized input
// to it and reports the final score when the unit signals game over.
//
// The engine is single-threaded: a host owns one goroutine that flushes the
// frame scheduler and dispatches raw events. Nothing in this package
// spawns goroutines.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-hub/internal/core"
)

// Unit is the contract every mini-game implements.
// Games contain pure logic; the runtime handles timing, input and teardown.
type Unit interface {
	// Init allocates a fresh session. Called exactly once, before the
	// first Update.
	Init() error

	// HandleInput consumes one normalized event. Must not block.
	HandleInput(ev core.Event)

	// Update advances the simulation by dtMillis milliseconds.
	// A unit calls Env.GameOver at most once and returns right after.
	Update(dtMillis float64)

	// Draw renders the current state to Env.Surface and refreshes the
	// score readout. It must not advance the simulation.
	Draw()
}

// Factory builds a unit bound to the given environment.
type Factory func(env Env) Unit

// Env is everything a unit receives from the runtime for one session.
type Env struct {
	Surface Surface
	Input   core.InputView
	Resize  *ScopedResize
	Rand    *rand.Rand

	// OnGameOver is the termination callback bound by the runtime.
	OnGameOver func(score int)
	// OnScore receives the externally visible score readout.
	OnScore func(score int)
}

// GameOver signals termination with the final score.
func (e Env) GameOver(score int) {
	if e.OnGameOver != nil {
		e.OnGameOver(score)
	}
}

// ShowScore updates the score readout.
func (e Env) ShowScore(score int) {
	if e.OnScore != nil {
		e.OnScore(score)
	}
}

// Phase names the unit method that was running when a fault happened.
type Phase string

const (
	PhaseInit   Phase = "init"
	PhaseInput  Phase = "input"
	PhaseUpdate Phase = "update"
	PhaseDraw   Phase = "draw"
)

// UnitFault describes a panic recovered from a unit. The session that
// produced it has already been stopped.
type UnitFault struct {
	Key   string
	Phase Phase
	Value any
}

func (f *UnitFault) Error() string {
	return fmt.Sprintf("engine: unit %q panicked during %s: %v", f.Key, f.Phase, f.Value)
}
