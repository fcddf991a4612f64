package snake

// GameStateType represents the current game state.
type GameStateType string

const (
	StateWaiting  GameStateType = "waiting" // no direction chosen yet
	StatePlaying  GameStateType = "playing"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the observable game state for determinism testing.
type Snapshot struct {
	Score    int
	SnakeLen int
	Head     Point
	Dir      Point
	Apple    Point
	Interval float64
	State    GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.over:
		state = StateGameOver
	case g.next.isZero():
		state = StateWaiting
	}

	var head Point
	if len(g.snake) > 0 {
		head = g.snake[0]
	}
	return Snapshot{
		Score:    g.score,
		SnakeLen: len(g.snake),
		Head:     head,
		Dir:      g.dir,
		Apple:    g.apple,
		Interval: g.Interval(),
		State:    state,
	}
}
