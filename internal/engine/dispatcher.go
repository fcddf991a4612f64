package engine

import "sync"

// EventType is a raw device event name.
type EventType string

const (
	KeyDown    EventType = "keydown"
	KeyUp      EventType = "keyup"
	TouchStart EventType = "touchstart"
	TouchMove  EventType = "touchmove"
	TouchEnd   EventType = "touchend"
)

// TouchPoint is one touch contact in client coordinates.
type TouchPoint struct {
	ClientX, ClientY float64
}

// RawEvent is an unnormalized device event as delivered by a host.
type RawEvent struct {
	Type EventType
	// Code is the device key code for keyboard events ("ArrowLeft", "Space").
	Code string
	// Touches lists contacts still down; ChangedTouches those that changed.
	Touches        []TouchPoint
	ChangedTouches []TouchPoint
}

// Listener receives raw events of one type.
type Listener func(ev RawEvent)

// ListenerID identifies an installed listener.
type ListenerID uint64

// Target is anything raw events can be subscribed on: the host window or
// the drawing surface's element.
type Target interface {
	AddListener(t EventType, l Listener) ListenerID
	RemoveListener(id ListenerID)
}

type listenerEntry struct {
	id      ListenerID
	typ     EventType
	fn      Listener
	removed bool
}

// Dispatcher is an event target with listener bookkeeping.
type Dispatcher struct {
	mu        sync.Mutex
	next      ListenerID
	listeners []*listenerEntry
}

// NewDispatcher creates an empty event target.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// AddListener installs l for events of type t.
func (d *Dispatcher) AddListener(t EventType, l Listener) ListenerID {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.next++
	d.listeners = append(d.listeners, &listenerEntry{id: d.next, typ: t, fn: l})
	return d.next
}

// RemoveListener uninstalls a listener. Unknown ids are ignored.
func (d *Dispatcher) RemoveListener(id ListenerID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, e := range d.listeners {
		if e.id == id {
			e.removed = true
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch delivers ev to every listener of its type, in install order.
// A listener removed during dispatch is not called.
func (d *Dispatcher) Dispatch(ev RawEvent) {
	d.mu.Lock()
	targets := make([]*listenerEntry, 0, len(d.listeners))
	for _, e := range d.listeners {
		if e.typ == ev.Type {
			targets = append(targets, e)
		}
	}
	d.mu.Unlock()

	for _, e := range targets {
		d.mu.Lock()
		removed := e.removed
		d.mu.Unlock()
		if !removed {
			e.fn(ev)
		}
	}
}

// ListenerCount returns the number of installed listeners.
func (d *Dispatcher) ListenerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}
