package engine

import (
	"math"
	"sync"

	"github.com/vovakirdan/arcade-hub/internal/core"
)

// Viewport is a title's fixed logical resolution.
type Viewport struct {
	W, H float64
}

// Layout is a viewport fitted into a display area.
type Layout struct {
	Scale float64
	X, Y  float64 // offset of the scaled buffer inside the display
	W, H  float64 // scaled display size
}

// Rect returns the layout as a client rectangle.
func (l Layout) Rect() core.Box {
	return core.NewBox(l.X, l.Y, l.W, l.H)
}

// Fit scales the viewport uniformly into a display of dw×dh, preserving
// its aspect ratio, and centers it.
func (v Viewport) Fit(dw, dh float64) Layout {
	if v.W <= 0 || v.H <= 0 || dw <= 0 || dh <= 0 {
		return Layout{Scale: 1, W: v.W, H: v.H}
	}
	scale := math.Min(dw/v.W, dh/v.H)
	w, h := v.W*scale, v.H*scale
	return Layout{
		Scale: scale,
		X:     (dw - w) / 2,
		Y:     (dh - h) / 2,
		W:     w,
		H:     h,
	}
}

// FitSurface is the shared unit init step: it fixes the buffer resolution
// to the logical size, sizes the display for the current host size and
// keeps it fitted for the rest of the unit's lifetime.
func FitSurface(env Env, vp Viewport) {
	s := env.Surface
	if s == nil {
		return
	}
	apply := func(dw, dh float64) {
		s.SetResolution(int(vp.W), int(vp.H))
		s.SetDisplayRect(vp.Fit(dw, dh).Rect())
	}
	if env.Resize == nil {
		apply(vp.W, vp.H)
		return
	}
	apply(env.Resize.Size())
	env.Resize.Subscribe(apply)
}

// ResizeSignal is the host's display-resize notification.
type ResizeSignal struct {
	mu   sync.Mutex
	w, h float64
	next uint64
	subs map[uint64]func(w, h float64)
}

// NewResizeSignal creates a signal with an initial display size.
func NewResizeSignal(w, h float64) *ResizeSignal {
	return &ResizeSignal{w: w, h: h, subs: make(map[uint64]func(w, h float64))}
}

// Size returns the current display size.
func (s *ResizeSignal) Size() (w, h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h
}

// Subscribe registers fn and returns a function removing it.
// The returned function is safe to call more than once.
func (s *ResizeSignal) Subscribe(fn func(w, h float64)) (cancel func()) {
	s.mu.Lock()
	s.next++
	id := s.next
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Notify records a new display size and informs every subscriber.
func (s *ResizeSignal) Notify(w, h float64) {
	s.mu.Lock()
	s.w, s.h = w, h
	fns := make([]func(w, h float64), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(w, h)
	}
}

// Subscribers returns the number of live subscriptions.
func (s *ResizeSignal) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Scope collects release functions and runs them once, in reverse order,
// when closed. Anything deferred after Close runs immediately.
type Scope struct {
	mu       sync.Mutex
	releases []func()
	closed   bool
}

// NewScope creates an open scope.
func NewScope() *Scope {
	return &Scope{}
}

// Defer registers a release function.
func (s *Scope) Defer(fn func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fn()
		return
	}
	s.releases = append(s.releases, fn)
	s.mu.Unlock()
}

// Close runs all release functions. Later calls do nothing.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	releases := s.releases
	s.releases = nil
	s.mu.Unlock()

	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}
}

// Closed reports whether Close has run.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// ScopedResize is a resize signal view whose subscriptions end with a scope.
type ScopedResize struct {
	signal *ResizeSignal
	scope  *Scope
}

// NewScopedResize binds signal subscriptions to scope.
func NewScopedResize(signal *ResizeSignal, scope *Scope) *ScopedResize {
	return &ScopedResize{signal: signal, scope: scope}
}

// Size returns the current display size.
func (r *ScopedResize) Size() (w, h float64) {
	return r.signal.Size()
}

// Subscribe registers fn until the scope closes.
func (r *ScopedResize) Subscribe(fn func(w, h float64)) {
	r.scope.Defer(r.signal.Subscribe(fn))
}
