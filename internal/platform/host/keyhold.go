package host

import (
	"sort"
	"time"

	"github.com/vovakirdan/arcade-hub/internal/engine"
)

// repeatDelay covers the pause terminals leave between the first press and
// the first auto-repeat.
const repeatDelay = 500 * time.Millisecond

// keyCodes maps terminal key names to device codes.
var keyCodes = map[string]string{
	"left":  "ArrowLeft",
	"a":     "ArrowLeft",
	"right": "ArrowRight",
	"d":     "ArrowRight",
	"up":    "ArrowUp",
	"w":     "ArrowUp",
	"down":  "ArrowDown",
	"s":     "ArrowDown",
	" ":     "Space",
	"space": "Space",
}

// KeyCode returns the device code for a terminal key name.
func KeyCode(name string) (string, bool) {
	code, ok := keyCodes[name]
	return code, ok
}

// KeyHold synthesizes key releases. Terminals only report presses (and
// auto-repeats), so a key counts as held until it has not been seen for
// the hold window.
type KeyHold struct {
	hold   time.Duration
	target *engine.Dispatcher
	until  map[string]time.Time
}

// NewKeyHold creates a synthesizer dispatching to target.
func NewKeyHold(hold time.Duration, target *engine.Dispatcher) *KeyHold {
	return &KeyHold{hold: hold, target: target, until: make(map[string]time.Time)}
}

// Press records a press of code. The first press dispatches keydown;
// repeats only extend the hold.
func (k *KeyHold) Press(code string, now time.Time) {
	if _, held := k.until[code]; held {
		k.until[code] = now.Add(k.hold)
		return
	}
	k.until[code] = now.Add(max(k.hold, repeatDelay))
	k.target.Dispatch(engine.RawEvent{Type: engine.KeyDown, Code: code})
}

// Expire dispatches keyup for every key whose hold ran out by now.
func (k *KeyHold) Expire(now time.Time) {
	var done []string
	for code, until := range k.until {
		if !now.Before(until) {
			done = append(done, code)
		}
	}
	k.release(done)
}

// ReleaseAll dispatches keyup for every held key.
func (k *KeyHold) ReleaseAll() {
	codes := make([]string, 0, len(k.until))
	for code := range k.until {
		codes = append(codes, code)
	}
	k.release(codes)
}

// Held reports whether code is currently held.
func (k *KeyHold) Held(code string) bool {
	_, ok := k.until[code]
	return ok
}

func (k *KeyHold) release(codes []string) {
	sort.Strings(codes)
	for _, code := range codes {
		delete(k.until, code)
		k.target.Dispatch(engine.RawEvent{Type: engine.KeyUp, Code: code})
	}
}
