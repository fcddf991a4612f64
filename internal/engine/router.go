package engine

import "github.com/vovakirdan/arcade-hub/internal/core"

// Handler receives normalized input events.
type Handler func(ev core.Event)

type installed struct {
	target Target
	id     ListenerID
}

// Router normalizes raw device events into core events, keeps the shared
// InputState and forwards each event to the active handler.
//
// Keyboard listeners live on the window target and touch listeners on the
// canvas target. The router remembers every listener id it installs so
// Detach removes exactly what Attach added.
type Router struct {
	window  Target
	canvas  Target
	handler Handler
	ids     []installed
	state   *core.InputState
}

// NewRouter creates a detached router for the given window target.
func NewRouter(window Target) *Router {
	return &Router{
		window: window,
		state:  core.NewInputState(),
	}
}

// Attach subscribes to raw events and starts forwarding to h.
// The input state is reset. Attaching again to the same canvas only
// swaps the handler; a different canvas is detached first.
func (r *Router) Attach(canvas Target, h Handler) {
	r.state.Reset()
	if r.Attached() {
		if canvas == r.canvas {
			r.handler = h
			return
		}
		r.Detach()
	}

	r.canvas = canvas
	r.handler = h
	r.install(r.window, KeyDown)
	r.install(r.window, KeyUp)
	r.install(canvas, TouchStart)
	r.install(canvas, TouchMove)
	r.install(canvas, TouchEnd)
}

func (r *Router) install(t Target, typ EventType) {
	if t == nil {
		return
	}
	id := t.AddListener(typ, r.receive)
	r.ids = append(r.ids, installed{target: t, id: id})
}

// Detach removes every listener Attach installed. Safe when detached.
func (r *Router) Detach() {
	for _, in := range r.ids {
		in.target.RemoveListener(in.id)
	}
	r.ids = nil
	r.canvas = nil
	r.handler = nil
}

// Attached reports whether listeners are installed.
func (r *Router) Attached() bool {
	return len(r.ids) > 0
}

// State returns the read-only input snapshot.
func (r *Router) State() core.InputView {
	return r.state
}

// receive is the single listener installed for every event type.
func (r *Router) receive(raw RawEvent) {
	ev, ok := normalize(raw)
	if !ok {
		return
	}
	r.state.Apply(ev)
	if r.handler != nil {
		r.handler(ev)
	}
}

// normalize converts a raw event. Unknown key codes and touch events
// without a contact point are dropped.
func normalize(raw RawEvent) (core.Event, bool) {
	switch raw.Type {
	case KeyDown, KeyUp:
		key := core.KeyFromCode(raw.Code)
		if key == core.KeyNone {
			return core.Event{}, false
		}
		kind := core.EventPress
		if raw.Type == KeyUp {
			kind = core.EventRelease
		}
		return core.Event{Kind: kind, Key: key}, true

	case TouchStart, TouchMove:
		if len(raw.Touches) == 0 {
			return core.Event{}, false
		}
		kind := core.EventPointerStart
		if raw.Type == TouchMove {
			kind = core.EventPointerMove
		}
		p := raw.Touches[0]
		return core.Event{Kind: kind, X: p.ClientX, Y: p.ClientY}, true

	case TouchEnd:
		ev := core.Event{Kind: core.EventPointerEnd}
		if len(raw.ChangedTouches) > 0 {
			ev.X = raw.ChangedTouches[0].ClientX
			ev.Y = raw.ChangedTouches[0].ClientY
		}
		return ev, true
	}
	return core.Event{}, false
}
