package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/hub"
	"github.com/vovakirdan/arcade-hub/internal/registry"
)

var colorStyles = map[core.Color]tcell.Style{
	core.ColorDefault:       tcell.StyleDefault,
	core.ColorRed:           tcell.StyleDefault.Foreground(tcell.ColorMaroon),
	core.ColorGreen:         tcell.StyleDefault.Foreground(tcell.ColorGreen),
	core.ColorYellow:        tcell.StyleDefault.Foreground(tcell.ColorOlive),
	core.ColorBlue:          tcell.StyleDefault.Foreground(tcell.ColorNavy),
	core.ColorMagenta:       tcell.StyleDefault.Foreground(tcell.ColorPurple),
	core.ColorCyan:          tcell.StyleDefault.Foreground(tcell.ColorTeal),
	core.ColorWhite:         tcell.StyleDefault.Foreground(tcell.ColorSilver),
	core.ColorBrightRed:     tcell.StyleDefault.Foreground(tcell.ColorRed),
	core.ColorBrightGreen:   tcell.StyleDefault.Foreground(tcell.ColorLime),
	core.ColorBrightYellow:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
	core.ColorBrightBlue:    tcell.StyleDefault.Foreground(tcell.ColorBlue),
	core.ColorBrightMagenta: tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	core.ColorBrightCyan:    tcell.StyleDefault.Foreground(tcell.ColorAqua),
	core.ColorBrightWhite:   tcell.StyleDefault.Foreground(tcell.ColorWhite),
	core.ColorOrange:        tcell.StyleDefault.Foreground(tcell.ColorOrange),
	core.ColorGray:          tcell.StyleDefault.Foreground(tcell.ColorGray),
	core.ColorBrown:         tcell.StyleDefault.Foreground(tcell.ColorBrown),
	core.ColorBlack:         tcell.StyleDefault.Foreground(tcell.ColorBlack),
}

func styleFor(c core.Color) tcell.Style {
	if s, ok := colorStyles[c]; ok {
		return s
	}
	return tcell.StyleDefault
}

// draw paints the current screen and shows it.
func (t *Terminal) draw() {
	t.screen.Clear()
	switch t.app.Screen() {
	case hub.ScreenGame:
		t.blit(t.host.Screen())
		t.drawStatus()
	default:
		t.overlay.Clear()
		t.textScreen()
		t.blit(t.overlay)
	}
	t.screen.Show()
}

func (t *Terminal) blit(s *core.Screen) {
	for y := range s.Height() {
		for x := range s.Width() {
			c := s.GetCell(x, y)
			t.screen.SetContent(x, y, c.Rune, nil, styleFor(c.Color))
		}
	}
}

func (t *Terminal) drawStatus() {
	_, h := t.screen.Size()
	line := fmt.Sprintf("%s  Score: %d   esc quit  r restart", title(t.app.Selected()), t.app.LiveScore())
	if t.status != "" {
		line = t.status
	}
	for i, r := range []rune(line) {
		t.screen.SetContent(i, h-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
}

// textScreen writes the sign-in or leaderboard text into the overlay.
func (t *Terminal) textScreen() {
	var lines []string
	switch t.app.Screen() {
	case hub.ScreenAuth:
		lines = []string{
			"A R C A D E",
			"",
			"Enter your name to play",
			"",
			"> " + string(t.name) + "_",
			"",
			t.status,
			"",
			"enter sign in  esc quit",
		}
	case hub.ScreenLeaderboard:
		board := t.app.Leaderboard()
		lines = []string{
			"GAME OVER",
			"",
			fmt.Sprintf("%s  Final score: %d", title(board.Game), board.FinalScore),
			"",
		}
		lines = append(lines, board.Lines()...)
		lines = append(lines, "", "r play again  q quit")
	default:
		lines = []string{t.status}
	}

	top := max(0, (t.overlay.Height()-len(lines))/2)
	for i, l := range lines {
		t.overlay.DrawTextCentered(top+i, strings.TrimRight(l, " "))
	}
}

func title(k registry.Key) string {
	if info, ok := registry.Info(k); ok {
		return info.Title
	}
	return string(k)
}
