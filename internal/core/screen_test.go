package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	if got := s.String(); got != "      \n      \n      " {
		t.Errorf("String() = %q", got)
	}

	empty := NewScreen(-2, 4)
	if empty.Width() != 0 || empty.Row(0) != "" {
		t.Errorf("negative width: %d %q", empty.Width(), empty.Row(0))
	}
}

func TestScreenBounds(t *testing.T) {
	s := NewScreen(4, 2)
	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, 'a'},
		{3, 1, 'b'},
		{4, 0, ' '},
		{-1, 0, ' '},
		{0, 2, ' '},
	}
	for _, tt := range tests {
		s.Set(tt.x, tt.y, tt.want)
	}
	for _, tt := range tests {
		if got := s.Get(tt.x, tt.y); got != tt.want {
			t.Errorf("Get(%d, %d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetColored(2, 1, '#', ColorRed)

	if c := s.GetCell(2, 1); c.Rune != '#' || c.Color != ColorRed {
		t.Errorf("GetCell(2, 1) = %+v, expected '#' in red", c)
	}

	s.Clear()
	if c := s.GetCell(2, 1); c != blankCell {
		t.Errorf("Clear should reset color, got %+v", c)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	tests := []struct {
		width int
		text  string
		want  string
	}{
		{10, "Hi", "    Hi    "},
		{9, "abc", "   abc   "},
		{5, "toolong", "oolon"},
		{6, "héllo", "héllo "},
	}
	for _, tt := range tests {
		s := NewScreen(tt.width, 1)
		s.DrawTextCentered(0, tt.text)
		if got := s.Row(0); got != tt.want {
			t.Errorf("width %d %q: row = %q, want %q", tt.width, tt.text, got, tt.want)
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(1, 1, 'x', ColorGreen)
	s.Set(3, 0, 'y')

	s.Resize(2, 3)
	if s.Width() != 2 || s.Height() != 3 {
		t.Fatalf("size = %dx%d", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c.Rune != 'x' || c.Color != ColorGreen {
		t.Errorf("kept cell = %+v", c)
	}
	if s.Row(2) != "  " {
		t.Errorf("new row = %q, want blank", s.Row(2))
	}

	s.Resize(4, 3)
	if s.Get(3, 0) != ' ' {
		t.Error("cropped column came back after growing")
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(5, 2)
	s.Set(0, 1, 'o')
	s.Set(4, 1, 'k')

	if got := s.Row(1); got != "o   k" {
		t.Errorf("Row(1) = %q", got)
	}
	if got := s.Row(-1); got != strings.Repeat(" ", 5) {
		t.Errorf("Row(-1) = %q, want blank", got)
	}
}
