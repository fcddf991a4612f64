package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, s *Store, game, player string, score int) {
	t.Helper()
	if _, err := s.SaveScore(context.Background(), game, player, score); err != nil {
		t.Fatalf("SaveScore(%s, %s, %d) failed: %v", game, player, score, err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	ctx := context.Background()
	store := openTemp(t)

	mustSave(t, store, "flappy", "ann", 100)
	mustSave(t, store, "flappy", "bob", 50)
	mustSave(t, store, "flappy", "cid", 200)
	mustSave(t, store, "snake", "ann", 500)

	scores, err := store.TopScores(ctx, "flappy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []struct {
		player string
		score  int
	}{{"cid", 200}, {"ann", 100}, {"bob", 50}}
	for i, w := range want {
		if scores[i].Player != w.player || scores[i].Score != w.score {
			t.Errorf("rank %d = %s/%d, want %s/%d", i+1, scores[i].Player, scores[i].Score, w.player, w.score)
		}
		if scores[i].GameID != "flappy" {
			t.Errorf("rank %d game = %q", i+1, scores[i].GameID)
		}
	}

	snake, err := store.TopScores(ctx, "snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(snake) != 1 {
		t.Errorf("Expected 1 snake score, got %d", len(snake))
	}
}

func TestStoreTiesKeepArrivalOrder(t *testing.T) {
	store := openTemp(t)
	for _, p := range []string{"first", "second", "third"} {
		mustSave(t, store, "dodge", p, 70)
	}
	mustSave(t, store, "dodge", "top", 90)

	scores, err := store.TopScores(context.Background(), "dodge", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	got := make([]string, len(scores))
	for i, e := range scores {
		got[i] = e.Player
	}
	want := []string{"top", "first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit", 3, 3},
		{"default", 0, DefaultLimit},
		{"negative", -1, DefaultLimit},
	}

	store := openTemp(t)
	for i := 0; i < 15; i++ {
		mustSave(t, store, "brick", "p", (i+1)*100)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := store.TopScores(context.Background(), "brick", tt.limit)
			if err != nil {
				t.Fatalf("TopScores() failed: %v", err)
			}
			if len(scores) != tt.want {
				t.Fatalf("got %d scores, want %d", len(scores), tt.want)
			}
			if scores[0].Score != 1500 {
				t.Errorf("top = %d, want 1500", scores[0].Score)
			}
		})
	}
}

func TestStoreHighScore(t *testing.T) {
	ctx := context.Background()
	store := openTemp(t)

	high, err := store.HighScore(ctx, "flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	mustSave(t, store, "flappy", "a", 100)
	mustSave(t, store, "flappy", "a", 300)
	mustSave(t, store, "flappy", "a", 200)

	high, err = store.HighScore(ctx, "flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	ctx := context.Background()
	store := openTemp(t)

	mustSave(t, store, "flappy", "a", 100)
	mustSave(t, store, "flappy", "a", 200)
	mustSave(t, store, "jump", "a", 300)

	if err := store.ClearScores(ctx, "flappy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	flappy, _ := store.TopScores(ctx, "flappy", 10)
	if len(flappy) != 0 {
		t.Errorf("Expected 0 flappy scores after clear, got %d", len(flappy))
	}
	jump, _ := store.TopScores(ctx, "jump", 10)
	if len(jump) != 1 {
		t.Errorf("Jump scores should not be affected by clearing flappy")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTemp(t)
	for i := 0; i < 20; i++ {
		mustSave(t, store, "snake", "p", i*10)
	}

	scores, err := store.AllScores(context.Background(), "snake")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	ctx := context.Background()
	store := openTemp(t)

	empty, err := store.GameStats(ctx, "brick")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	mustSave(t, store, "brick", "a", 40)
	mustSave(t, store, "brick", "b", 80)
	stats, err := store.GameStats(ctx, "brick")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 80 || stats.AvgScore != 60 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestStoreCanceledContext(t *testing.T) {
	store := openTemp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.SaveScore(ctx, "dodge", "a", 10); err == nil {
		t.Error("SaveScore with a canceled context succeeded")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
