package hub

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/arcade-hub/internal/registry"
	"github.com/vovakirdan/arcade-hub/internal/storage"
)

func TestStoreServiceRoundTrip(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	svc := NewStoreService(store, nil)
	for _, s := range []struct {
		name  string
		score int
	}{{"ann", 30}, {"bob", 90}, {"cid", 30}} {
		if err := svc.Save(ctx, registry.Brick, s.name, s.score); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	top, err := svc.Top(ctx, registry.Brick, 2)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 2 || top[0].Name != "bob" || top[1].Name != "ann" {
		t.Errorf("top = %+v, want bob then ann", top)
	}

	empty, err := svc.Top(ctx, registry.Snake, 5)
	if err != nil || len(empty) != 0 {
		t.Errorf("Top(snake) = %+v, %v", empty, err)
	}
}

func TestStoreServiceClosedStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	store.Close()

	svc := NewStoreService(store, nil)
	if err := svc.Save(context.Background(), registry.Dodge, "a", 1); err == nil {
		t.Error("Save on a closed store succeeded")
	}
}

func TestLocalGate(t *testing.T) {
	ctx := context.Background()
	g := NewLocalGate("")
	if _, ok := g.Current(ctx); ok {
		t.Fatal("empty preset is signed in")
	}
	if _, err := g.SignIn(ctx, "   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank SignIn = %v", err)
	}
	id, err := g.SignIn(ctx, "neo")
	if err != nil || id.Name != "neo" {
		t.Fatalf("SignIn = %+v, %v", id, err)
	}
	if cur, ok := g.Current(ctx); !ok || cur != id {
		t.Errorf("Current = %+v, %v", cur, ok)
	}
	if err := g.SignOut(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok := g.Current(ctx); ok {
		t.Error("still signed in after SignOut")
	}
}

func TestLeaderboardLines(t *testing.T) {
	tests := []struct {
		name  string
		board Leaderboard
		want  string
	}{
		{"loading", Leaderboard{Loading: true}, "Loading..."},
		{"error", Leaderboard{Err: errors.New("x")}, NoScoresText},
		{"empty", Leaderboard{}, NoScoresText},
		{"rows", Leaderboard{Entries: []ScoreEntry{{Name: "ann", Score: 5}}}, "1. ann 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.board.Lines(); len(got) != 1 || got[0] != tt.want {
				t.Errorf("Lines() = %q, want [%q]", got, tt.want)
			}
		})
	}
}
