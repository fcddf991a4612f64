package engine

import (
	"testing"

	"github.com/vovakirdan/arcade-hub/internal/core"
)

func TestRouterListenerSymmetry(t *testing.T) {
	window := NewDispatcher()
	canvas := NewDispatcher()

	// Foreign listeners must survive attach/detach cycles.
	window.AddListener(KeyDown, func(RawEvent) {})
	canvas.AddListener(TouchStart, func(RawEvent) {})
	beforeWindow, beforeCanvas := window.ListenerCount(), canvas.ListenerCount()

	r := NewRouter(window)
	for i := 0; i < 3; i++ {
		r.Attach(canvas, func(core.Event) {})
		if got := window.ListenerCount(); got != beforeWindow+2 {
			t.Fatalf("cycle %d: window listeners = %d, want %d", i, got, beforeWindow+2)
		}
		if got := canvas.ListenerCount(); got != beforeCanvas+3 {
			t.Fatalf("cycle %d: canvas listeners = %d, want %d", i, got, beforeCanvas+3)
		}
		r.Detach()
		if window.ListenerCount() != beforeWindow || canvas.ListenerCount() != beforeCanvas {
			t.Fatalf("cycle %d: leaked listeners: window=%d canvas=%d",
				i, window.ListenerCount(), canvas.ListenerCount())
		}
	}
}

func TestRouterAttachTwice(t *testing.T) {
	window := NewDispatcher()
	canvas := NewDispatcher()
	r := NewRouter(window)

	var first, second int
	r.Attach(canvas, func(core.Event) { first++ })
	r.Attach(canvas, func(core.Event) { second++ })

	if window.ListenerCount() != 2 || canvas.ListenerCount() != 3 {
		t.Fatalf("double attach installed extra listeners: window=%d canvas=%d",
			window.ListenerCount(), canvas.ListenerCount())
	}

	window.Dispatch(RawEvent{Type: KeyDown, Code: "Space"})
	if first != 0 || second != 1 {
		t.Errorf("handler not rebound: first=%d second=%d", first, second)
	}

	other := NewDispatcher()
	r.Attach(other, func(core.Event) {})
	if canvas.ListenerCount() != 0 {
		t.Errorf("old canvas kept %d listeners", canvas.ListenerCount())
	}
	if other.ListenerCount() != 3 {
		t.Errorf("new canvas has %d listeners, want 3", other.ListenerCount())
	}

	r.Detach()
	r.Detach()
	if window.ListenerCount() != 0 || other.ListenerCount() != 0 {
		t.Error("detach left listeners behind")
	}
}

func TestRouterNormalization(t *testing.T) {
	window := NewDispatcher()
	canvas := NewDispatcher()
	r := NewRouter(window)

	var got []core.Event
	r.Attach(canvas, func(ev core.Event) { got = append(got, ev) })

	window.Dispatch(RawEvent{Type: KeyDown, Code: "KeyQ"}) // unknown, dropped
	window.Dispatch(RawEvent{Type: KeyDown, Code: "ArrowLeft"})
	if !r.State().Pressed(core.KeyLeft) {
		t.Error("ArrowLeft should be pressed")
	}
	window.Dispatch(RawEvent{Type: KeyUp, Code: "ArrowLeft"})
	if r.State().Pressed(core.KeyLeft) {
		t.Error("ArrowLeft should be released")
	}

	canvas.Dispatch(RawEvent{Type: TouchStart, Touches: []TouchPoint{{ClientX: 120, ClientY: 40}}})
	if x, ok := r.State().Pointer(); !ok || x != 120 {
		t.Errorf("pointer = %v,%v, want 120,true", x, ok)
	}
	canvas.Dispatch(RawEvent{Type: TouchMove}) // no contact, dropped
	canvas.Dispatch(RawEvent{Type: TouchEnd, ChangedTouches: []TouchPoint{{ClientX: 200, ClientY: 44}}})
	if _, ok := r.State().Pointer(); ok {
		t.Error("pointer should be cleared on touch end")
	}

	want := []core.EventKind{core.EventPress, core.EventRelease, core.EventPointerStart, core.EventPointerEnd}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(got), len(want), got)
	}
	for i, k := range want {
		if got[i].Kind != k {
			t.Errorf("event %d kind = %v, want %v", i, got[i].Kind, k)
		}
	}
	if got[3].X != 200 || got[3].Y != 44 {
		t.Errorf("touch end position = (%v,%v), want (200,44)", got[3].X, got[3].Y)
	}
}

func TestRouterResetOnAttach(t *testing.T) {
	window := NewDispatcher()
	canvas := NewDispatcher()
	r := NewRouter(window)

	r.Attach(canvas, nil)
	window.Dispatch(RawEvent{Type: KeyDown, Code: "ArrowRight"})
	r.Detach()

	r.Attach(canvas, nil)
	if r.State().Pressed(core.KeyRight) {
		t.Error("input state should be empty after attach")
	}
}

func TestRouterDetachedDropsEvents(t *testing.T) {
	window := NewDispatcher()
	r := NewRouter(window)

	// No listener is installed, so nothing can reach a unit.
	window.Dispatch(RawEvent{Type: KeyDown, Code: "Space"})
	if r.State().Pressed(core.KeySpace) {
		t.Error("detached router must not record input")
	}
}

func TestDispatcherRemoveDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	var second ListenerID
	calls := 0
	d.AddListener(KeyDown, func(RawEvent) { d.RemoveListener(second) })
	second = d.AddListener(KeyDown, func(RawEvent) { calls++ })

	d.Dispatch(RawEvent{Type: KeyDown})
	if calls != 0 {
		t.Errorf("removed listener was called %d times", calls)
	}
	if d.ListenerCount() != 1 {
		t.Errorf("ListenerCount = %d, want 1", d.ListenerCount())
	}
}
