package hub

import (
	"fmt"

	"github.com/vovakirdan/arcade-hub/internal/registry"
)

// NoScoresText is shown in place of an empty or unavailable ranking.
const NoScoresText = "No scores yet!"

// Leaderboard is a loaded (or loading) ranking for one title.
type Leaderboard struct {
	Game       registry.Key
	FinalScore int // score of the run that opened the board; -1 for a preview
	Entries    []ScoreEntry
	Loading    bool
	Err        error
}

// Empty reports whether a finished load has nothing to show. A failed
// load counts as empty; Err keeps the cause for logging.
func (b Leaderboard) Empty() bool {
	return !b.Loading && (b.Err != nil || len(b.Entries) == 0)
}

// Lines renders the board as "rank. name score" rows, or a single status
// line while loading or when there is nothing to rank.
func (b Leaderboard) Lines() []string {
	switch {
	case b.Loading:
		return []string{"Loading..."}
	case b.Empty():
		return []string{NoScoresText}
	}
	lines := make([]string, len(b.Entries))
	for i, e := range b.Entries {
		lines[i] = fmt.Sprintf("%d. %s %d", i+1, e.Name, e.Score)
	}
	return lines
}
