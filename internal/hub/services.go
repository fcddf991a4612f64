package hub

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-hub/internal/registry"
	"github.com/vovakirdan/arcade-hub/internal/storage"
)

// ErrEmptyName is returned by SignIn for a blank player name.
var ErrEmptyName = errors.New("hub: empty player name")

// Identity is the signed-in player.
type Identity struct {
	Name string
}

// SessionGate resolves who is playing.
type SessionGate interface {
	// Current returns the signed-in identity, if any.
	Current(ctx context.Context) (Identity, bool)
	SignIn(ctx context.Context, name string) (Identity, error)
	SignOut(ctx context.Context) error
}

// ScoreEntry is one leaderboard row.
type ScoreEntry struct {
	Name  string
	Score int
	At    time.Time
}

// ScoreService persists final scores and serves per-title rankings.
type ScoreService interface {
	Save(ctx context.Context, game registry.Key, name string, score int) error
	// Top returns at most n entries, best first, ties in arrival order.
	Top(ctx context.Context, game registry.Key, n int) ([]ScoreEntry, error)
}

// LocalGate is an in-memory gate. A non-empty preset signs the player in
// from the start (ssh user name, --name flag).
type LocalGate struct {
	mu       sync.Mutex
	identity Identity
	signedIn bool
}

// NewLocalGate creates a gate, signed in as preset when it is non-empty.
func NewLocalGate(preset string) *LocalGate {
	g := &LocalGate{}
	if name := strings.TrimSpace(preset); name != "" {
		g.identity, g.signedIn = Identity{Name: name}, true
	}
	return g
}

// Current implements SessionGate.
func (g *LocalGate) Current(context.Context) (Identity, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.identity, g.signedIn
}

// SignIn implements SessionGate.
func (g *LocalGate) SignIn(_ context.Context, name string) (Identity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Identity{}, ErrEmptyName
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.identity, g.signedIn = Identity{Name: name}, true
	return g.identity, nil
}

// SignOut implements SessionGate.
func (g *LocalGate) SignOut(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.identity, g.signedIn = Identity{}, false
	return nil
}

// StoreService backs ScoreService with the sqlite store.
type StoreService struct {
	store  *storage.Store
	logger *log.Logger
}

// NewStoreService wraps store. A nil logger discards.
func NewStoreService(store *storage.Store, logger *log.Logger) *StoreService {
	return &StoreService{store: store, logger: orDiscard(logger).WithPrefix("scores")}
}

// Save implements ScoreService.
func (s *StoreService) Save(ctx context.Context, game registry.Key, name string, score int) error {
	id, err := s.store.SaveScore(ctx, string(game), name, score)
	if err != nil {
		return fmt.Errorf("hub: save %s score: %w", game, err)
	}
	s.logger.Debug("score saved", "game", game, "player", name, "score", score, "id", id)
	return nil
}

// Top implements ScoreService.
func (s *StoreService) Top(ctx context.Context, game registry.Key, n int) ([]ScoreEntry, error) {
	rows, err := s.store.TopScores(ctx, string(game), n)
	if err != nil {
		return nil, fmt.Errorf("hub: load %s leaderboard: %w", game, err)
	}
	out := make([]ScoreEntry, len(rows))
	for i, r := range rows {
		out[i] = ScoreEntry{Name: r.Player, Score: r.Score, At: r.CreatedAt}
	}
	return out, nil
}

var (
	_ SessionGate  = (*LocalGate)(nil)
	_ ScoreService = (*StoreService)(nil)
)
