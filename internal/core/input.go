package core

// Key is a logical key identifier, abstracted from device key codes.
type Key int

const (
	KeyNone  Key = iota
	KeyLeft      // ArrowLeft
	KeyRight     // ArrowRight
	KeyUp        // ArrowUp
	KeyDown      // ArrowDown
	KeySpace     // Space - primary action (flap)
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeySpace:
		return "Space"
	default:
		return "Unknown"
	}
}

// KeyFromCode maps a DOM-style key code ("ArrowLeft", "Space", ...) to a Key.
// Unrecognized codes map to KeyNone.
func KeyFromCode(code string) Key {
	switch code {
	case "ArrowLeft":
		return KeyLeft
	case "ArrowRight":
		return KeyRight
	case "ArrowUp":
		return KeyUp
	case "ArrowDown":
		return KeyDown
	case "Space":
		return KeySpace
	}
	return KeyNone
}

// EventKind classifies a normalized input event.
type EventKind int

const (
	EventPress        EventKind = iota // key went down
	EventRelease                       // key went up
	EventPointerStart                  // touch began
	EventPointerMove                   // touch moved
	EventPointerEnd                    // touch ended
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPress:
		return "press"
	case EventRelease:
		return "release"
	case EventPointerStart:
		return "pointer-start"
	case EventPointerMove:
		return "pointer-move"
	case EventPointerEnd:
		return "pointer-end"
	default:
		return "unknown"
	}
}

// Event is one normalized input event delivered to a game.
// X and Y are client (display) coordinates for pointer events.
type Event struct {
	Kind EventKind
	Key  Key
	X, Y float64
}

// IsPointer reports whether the event comes from a touch/pointer device.
func (e Event) IsPointer() bool {
	return e.Kind == EventPointerStart || e.Kind == EventPointerMove || e.Kind == EventPointerEnd
}

// InputView is the read-only side of InputState handed to games.
type InputView interface {
	// Pressed reports whether the key is currently held.
	Pressed(k Key) bool
	// Pointer returns the active pointer's horizontal client coordinate.
	Pointer() (x float64, ok bool)
}

// InputState tracks held keys and the single active pointer.
type InputState struct {
	keys       map[Key]bool
	pointerX   float64
	hasPointer bool
}

// NewInputState creates an empty input state.
func NewInputState() *InputState {
	return &InputState{keys: make(map[Key]bool)}
}

// Apply folds one event into the state.
func (s *InputState) Apply(ev Event) {
	if s.keys == nil {
		s.keys = make(map[Key]bool)
	}
	switch ev.Kind {
	case EventPress:
		s.keys[ev.Key] = true
	case EventRelease:
		s.keys[ev.Key] = false
	case EventPointerStart, EventPointerMove:
		s.pointerX = ev.X
		s.hasPointer = true
	case EventPointerEnd:
		s.pointerX = 0
		s.hasPointer = false
	}
}

// Reset clears all keys and the pointer.
func (s *InputState) Reset() {
	clear(s.keys)
	s.pointerX = 0
	s.hasPointer = false
}

// Pressed reports whether the key is currently held.
func (s *InputState) Pressed(k Key) bool {
	return s.keys[k]
}

// Pointer returns the active pointer coordinate, if any.
func (s *InputState) Pointer() (float64, bool) {
	return s.pointerX, s.hasPointer
}

// Empty reports whether no key is held and no pointer is active.
func (s *InputState) Empty() bool {
	if s.hasPointer {
		return false
	}
	for _, down := range s.keys {
		if down {
			return false
		}
	}
	return true
}
