// Package registry provides the closed set of arcade titles and their
// factories. Games register themselves in init() functions, allowing the
// platform to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/engine"
)

// Key identifies a title. It is also the score key used for storage.
type Key string

// Every title the hub knows about, in menu order.
const (
	Dodge  Key = "dodge"
	Brick  Key = "brick"
	Flappy Key = "flappy"
	Jump   Key = "jump"
	Snake  Key = "snake"
)

var keys = []Key{Dodge, Brick, Flappy, Jump, Snake}

// ErrUnknownGame is returned for a key outside the closed set or one no
// package has registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Builder loads a title's configuration and returns its unit factory.
type Builder func(src config.Source) (engine.Factory, error)

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	Key   Key
	Title string
	Help  string
}

type entry struct {
	info    GameInfo
	builder Builder
}

var (
	entries = make(map[Key]entry)
	mu      sync.RWMutex
)

// Keys returns every known key in menu order.
func Keys() []Key {
	return append([]Key(nil), keys...)
}

// Parse validates a key.
func Parse(s string) (Key, error) {
	for _, k := range keys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownGame, s)
}

// Register adds a title's builder. Typically called from a game's init().
// Panics on a key outside the closed set or a duplicate registration.
func Register(info GameInfo, b Builder) {
	mu.Lock()
	defer mu.Unlock()

	if _, err := Parse(string(info.Key)); err != nil {
		panic(fmt.Sprintf("registry: cannot register %q: not a known title", info.Key))
	}
	if _, exists := entries[info.Key]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.Key))
	}
	entries[info.Key] = entry{info: info, builder: b}
}

// List returns information about all registered games in menu order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, k := range keys {
		if e, ok := entries[k]; ok {
			result = append(result, e.info)
		}
	}
	return result
}

// Info returns a registered title's metadata.
func Info(key Key) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[key]
	return e.info, ok
}

// Factory loads the title's configuration from src and returns its factory.
func Factory(key Key, src config.Source) (engine.Factory, error) {
	mu.RLock()
	e, ok := entries[key]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, key)
	}
	f, err := e.builder(src)
	if err != nil {
		return nil, fmt.Errorf("registry: %s: %w", key, err)
	}
	return f, nil
}

// Exists checks if a game with the given key is registered.
func Exists(key Key) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[key]
	return ok
}
