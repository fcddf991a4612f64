package engine

import (
	"time"

	"github.com/vovakirdan/arcade-hub/internal/core"
)

// fakeSurface records state changes and counts draw calls.
type fakeSurface struct {
	w, h    int
	display core.Box
	clears  int
	fills   int
}

func (s *fakeSurface) SetResolution(w, h int)                    { s.w, s.h = w, h }
func (s *fakeSurface) Resolution() (int, int)                    { return s.w, s.h }
func (s *fakeSurface) SetDisplayRect(r core.Box)                 { s.display = r }
func (s *fakeSurface) DisplayRect() core.Box                     { return s.display }
func (s *fakeSurface) Clear(core.Color)                          { s.clears++ }
func (s *fakeSurface) FillRect(_, _, _, _ float64, _ core.Color) { s.fills++ }
func (s *fakeSurface) StrokeRect(_, _, _, _ float64, _ core.Color) {}
func (s *fakeSurface) FillCircle(_, _, _ float64, _ core.Color)  {}
func (s *fakeSurface) Line(_, _, _, _ float64, _ core.Color)     {}
func (s *fakeSurface) FillText(_, _ float64, _ string, _ core.Color) {}
func (s *fakeSurface) Save()                                     {}
func (s *fakeSurface) Restore()                                  {}
func (s *fakeSurface) Translate(_, _ float64)                    {}
func (s *fakeSurface) Rotate(float64)                            {}

// manualClock is a settable time source for FrameQueue.
type manualClock struct {
	t time.Time
}

func newManualClock() *manualClock {
	return &manualClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time { return c.t }

func (c *manualClock) Advance(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}

// recordingUnit counts lifecycle calls and can be told to end or panic.
type recordingUnit struct {
	env Env

	inits   int
	updates int
	draws   int
	inputs  []core.Event
	dts     []float64

	initErr      error
	updateBefore bool // an Update arrived before Init
	overAt       int  // signal game over on this update (0 disables)
	overTwice    bool // signal twice in the same update
	panicAt      int  // panic on this update (0 disables)
	score        int
}

func (u *recordingUnit) Init() error {
	u.inits++
	return u.initErr
}

func (u *recordingUnit) HandleInput(ev core.Event) {
	u.inputs = append(u.inputs, ev)
}

func (u *recordingUnit) Update(dt float64) {
	if u.inits == 0 {
		u.updateBefore = true
	}
	u.updates++
	u.dts = append(u.dts, dt)
	if u.panicAt > 0 && u.updates == u.panicAt {
		panic("boom")
	}
	if u.overAt > 0 && u.updates >= u.overAt {
		u.env.GameOver(u.score)
		if u.overTwice {
			u.env.GameOver(u.score + 1)
		}
	}
}

func (u *recordingUnit) Draw() {
	u.draws++
	u.env.ShowScore(u.score)
}
