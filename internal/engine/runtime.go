package engine

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-hub/internal/core"
)

var (
	// ErrNoSurface is returned when the drawing surface or its event target is missing.
	ErrNoSurface = errors.New("engine: no drawing surface")
	// ErrNoWindow is returned when the window event target is missing.
	ErrNoWindow = errors.New("engine: no window target")
	// ErrNoScheduler is returned when no frame scheduler is configured.
	ErrNoScheduler = errors.New("engine: no frame scheduler")
	// ErrNilFactory is returned by Start for a nil factory.
	ErrNilFactory = errors.New("engine: nil unit factory")
)

// Options configures a Runtime.
type Options struct {
	Surface   Surface
	Window    Target // keyboard events
	Canvas    Target // touch events on the surface
	Scheduler Scheduler
	Resize    *ResizeSignal

	// MaxFrameDelta caps a single tick's dt. Zero means no cap.
	MaxFrameDelta time.Duration
	// Seed for unit randomness. Zero seeds from the clock.
	Seed int64

	Logger *log.Logger
	// OnFault is told about a session stopped by a recovered panic.
	OnFault func(f *UnitFault)
	// OnScore receives the active unit's score readout.
	OnScore func(key string, score int)
}

type session struct {
	key   string
	unit  Unit
	scope *Scope
	over  bool
}

// Runtime owns the surface and runs at most one unit.
// It is not safe for concurrent use; the host serializes all calls.
type Runtime struct {
	opts   Options
	logger *log.Logger
	router *Router
	clock  *FrameClock
	rng    *rand.Rand
	active *session
}

// New validates the options and creates an idle runtime.
func New(opts Options) (*Runtime, error) {
	if opts.Surface == nil || opts.Canvas == nil {
		return nil, ErrNoSurface
	}
	if opts.Window == nil {
		return nil, ErrNoWindow
	}
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if opts.Resize == nil {
		w, h := opts.Surface.Resolution()
		opts.Resize = NewResizeSignal(float64(w), float64(h))
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Runtime{
		opts:   opts,
		logger: logger.WithPrefix("engine"),
		router: NewRouter(opts.Window),
		clock:  NewFrameClock(opts.Scheduler, opts.MaxFrameDelta),
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Start stops any running unit, builds a new one with factory, initializes
// it and starts ticking it. onGameOver is invoked at most once, after the
// runtime has already stopped.
func (r *Runtime) Start(key string, factory Factory, onGameOver func(score int)) error {
	if factory == nil {
		return ErrNilFactory
	}
	r.Stop()

	sess := &session{key: key, scope: NewScope()}
	env := Env{
		Surface: r.opts.Surface,
		Input:   r.router.State(),
		Resize:  NewScopedResize(r.opts.Resize, sess.scope),
		Rand:    r.rng,
		OnGameOver: func(score int) {
			r.finish(sess, score, onGameOver)
		},
		OnScore: func(score int) {
			if r.active == sess && r.opts.OnScore != nil {
				r.opts.OnScore(sess.key, score)
			}
		},
	}

	sess.unit = factory(env)
	if sess.unit == nil {
		sess.scope.Close()
		return fmt.Errorf("engine: factory for %q returned nil", key)
	}
	r.active = sess

	var initErr error
	if !r.guard(sess, PhaseInit, func() { initErr = sess.unit.Init() }) {
		return fmt.Errorf("engine: init %q: unit panicked", key)
	}
	if initErr != nil {
		r.Stop()
		return fmt.Errorf("engine: init %q: %w", key, initErr)
	}
	if r.active != sess {
		// Game over during init; the session is already finished.
		return nil
	}

	r.router.Attach(r.opts.Canvas, func(ev core.Event) {
		if r.active != sess {
			return
		}
		r.guard(sess, PhaseInput, func() { sess.unit.HandleInput(ev) })
	})
	r.clock.Start(func(dt float64) { r.tick(sess, dt) })

	r.logger.Debug("unit started", "game", key)
	return nil
}

func (r *Runtime) tick(sess *session, dt float64) {
	if r.active != sess {
		return
	}
	if !r.guard(sess, PhaseUpdate, func() { sess.unit.Update(dt) }) {
		return
	}
	if r.active != sess {
		return
	}
	r.guard(sess, PhaseDraw, sess.unit.Draw)
}

// guard runs fn and converts a panic into a stopped session and a fault.
func (r *Runtime) guard(sess *session, phase Phase, fn func()) (ok bool) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		ok = false
		sess.over = true
		if r.active == sess {
			r.Stop()
		}
		fault := &UnitFault{Key: sess.key, Phase: phase, Value: rec}
		r.logger.Error("unit fault", "game", sess.key, "phase", phase, "panic", rec)
		if r.opts.OnFault != nil {
			r.opts.OnFault(fault)
		}
	}()
	fn()
	return true
}

// finish handles a game-over signal. Only the first signal of the active
// session reaches the caller.
func (r *Runtime) finish(sess *session, score int, onGameOver func(int)) {
	if sess.over || r.active != sess {
		return
	}
	sess.over = true
	r.Stop()
	r.logger.Info("game over", "game", sess.key, "score", score)
	if onGameOver != nil {
		onGameOver(score)
	}
}

// Stop cancels the frame clock, detaches input, ends the unit's resize
// subscriptions and releases the unit. Safe to call when idle.
func (r *Runtime) Stop() {
	sess := r.active
	if sess == nil {
		return
	}
	r.active = nil
	r.clock.Stop()
	r.router.Detach()
	sess.scope.Close()
	sess.unit = nil
	r.logger.Debug("unit stopped", "game", sess.key)
}

// Active reports whether a unit is running.
func (r *Runtime) Active() bool {
	return r.active != nil
}

// ActiveKey returns the running unit's key, or "".
func (r *Runtime) ActiveKey() string {
	if r.active == nil {
		return ""
	}
	return r.active.key
}

// Input returns the router's input snapshot.
func (r *Runtime) Input() core.InputView {
	return r.router.State()
}
