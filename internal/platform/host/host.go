// Package host is the glue shared by terminal backends. It owns the
// cell screen, the window and canvas event targets, the frame queue and
// the resize signal, and turns terminal input into the raw device events
// the engine expects.
//
// A Host is not safe for concurrent use; each backend drives it from one
// loop (bubbletea's Update, or the tcell select loop).
package host

import (
	"time"

	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/engine"
	"github.com/vovakirdan/arcade-hub/internal/render"
)

// Host bundles everything a Runtime needs from its environment.
type Host struct {
	screen  *core.Screen
	surface *render.Canvas
	window  *engine.Dispatcher
	canvas  *engine.Dispatcher
	queue   *engine.FrameQueue
	resize  *engine.ResizeSignal
	keys    *KeyHold

	touching bool
}

// New creates a host for a cols x rows game area.
func New(cols, rows int, keyHold time.Duration, now func() time.Time) *Host {
	if now == nil {
		now = time.Now
	}
	screen := core.NewScreen(cols, rows)
	surface := render.NewCanvas(screen)
	w, h := surface.ClientSize()

	window := engine.NewDispatcher()
	return &Host{
		screen:  screen,
		surface: surface,
		window:  window,
		canvas:  engine.NewDispatcher(),
		queue:   engine.NewFrameQueue(now),
		resize:  engine.NewResizeSignal(w, h),
		keys:    NewKeyHold(keyHold, window),
	}
}

// Options fills the host-owned fields of a runtime configuration.
func (h *Host) Options(base engine.Options) engine.Options {
	base.Surface = h.surface
	base.Window = h.window
	base.Canvas = h.canvas
	base.Scheduler = h.queue
	base.Resize = h.resize
	return base
}

// Screen returns the cell buffer units draw into.
func (h *Host) Screen() *core.Screen { return h.screen }

// Surface returns the drawing surface.
func (h *Host) Surface() *render.Canvas { return h.surface }

// Window returns the keyboard event target.
func (h *Host) Window() *engine.Dispatcher { return h.window }

// Canvas returns the touch event target.
func (h *Host) Canvas() *engine.Dispatcher { return h.canvas }

// Queue returns the frame scheduler.
func (h *Host) Queue() *engine.FrameQueue { return h.queue }

// ResizeSignal returns the host size signal.
func (h *Host) ResizeSignal() *engine.ResizeSignal { return h.resize }

// Resize changes the game area and tells subscribed units.
func (h *Host) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	h.screen.Resize(cols, rows)
	h.resize.Notify(h.surface.ClientSize())
}

// Frame runs one host frame: synthesized key releases first, then every
// pending frame callback. Returns the number of callbacks run.
func (h *Host) Frame(now time.Time) int {
	h.keys.Expire(now)
	return h.queue.Flush(now)
}

// Key delivers a terminal key press. Unknown names are ignored.
func (h *Host) Key(name string, now time.Time) {
	if code, ok := KeyCode(name); ok {
		h.keys.Press(code, now)
	}
}

// ReleaseKeys lifts every held key, e.g. when leaving a game.
func (h *Host) ReleaseKeys() {
	h.keys.ReleaseAll()
}

// CellToClient maps a cell to client coordinates: the cell's center, with
// two client units per row.
func CellToClient(col, row int) (x, y float64) {
	return float64(col) + 0.5, float64(row*render.PixelsPerRow) + float64(render.PixelsPerRow)/2
}

// MousePress starts a touch at a cell.
func (h *Host) MousePress(col, row int) {
	p := touchAt(col, row)
	h.touching = true
	h.canvas.Dispatch(engine.RawEvent{
		Type:           engine.TouchStart,
		Touches:        []engine.TouchPoint{p},
		ChangedTouches: []engine.TouchPoint{p},
	})
}

// MouseMotion moves the active touch. Motion without a press is ignored.
func (h *Host) MouseMotion(col, row int) {
	if !h.touching {
		return
	}
	p := touchAt(col, row)
	h.canvas.Dispatch(engine.RawEvent{
		Type:           engine.TouchMove,
		Touches:        []engine.TouchPoint{p},
		ChangedTouches: []engine.TouchPoint{p},
	})
}

// MouseRelease ends the active touch.
func (h *Host) MouseRelease(col, row int) {
	if !h.touching {
		return
	}
	h.touching = false
	h.canvas.Dispatch(engine.RawEvent{
		Type:           engine.TouchEnd,
		ChangedTouches: []engine.TouchPoint{touchAt(col, row)},
	})
}

func touchAt(col, row int) engine.TouchPoint {
	x, y := CellToClient(col, row)
	return engine.TouchPoint{ClientX: x, ClientY: y}
}
