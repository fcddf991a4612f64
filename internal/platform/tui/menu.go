package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-hub/internal/hub"
	"github.com/vovakirdan/arcade-hub/internal/registry"
)

// minWidthForPreview is the narrowest terminal that shows the menu's
// leaderboard preview beside the game list.
const minWidthForPreview = 60

func (m Model) authView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("A R C A D E"))
	b.WriteString("\n\n")
	b.WriteString("Enter your name to play\n\n")
	b.WriteString(m.name.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp(hub.ScreenAuth)))
	return center(m.width, m.height, b.String())
}

func (m Model) menuView() string {
	var list strings.Builder
	list.WriteString(titleStyle.Render("A R C A D E"))
	list.WriteString("\n")
	list.WriteString(dimStyle.Render("Signed in as " + m.app.User().Name))
	list.WriteString("\n\n")
	for i, g := range m.games {
		if i == m.cursor {
			list.WriteString(selectedStyle.Render("> " + g.Title))
		} else {
			list.WriteString("  " + g.Title)
		}
		list.WriteString("\n")
	}
	if len(m.games) > 0 {
		list.WriteString("\n")
		list.WriteString(dimStyle.Render(m.games[m.cursor].Help))
	}

	body := list.String()
	if m.width >= minWidthForPreview && m.opts.Scores != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "    ", m.previewPanel())
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp(hub.ScreenMenu)))
	return center(m.width, m.height, b.String())
}

func (m Model) previewPanel() string {
	p := m.app.Preview()
	var b strings.Builder
	b.WriteString("Top scores")
	b.WriteString("\n")
	b.WriteString(strings.Join(p.Lines(), "\n"))
	return panelStyle.Render(b.String())
}

func (m Model) gameView() string {
	title := string(m.app.Selected())
	if info, ok := registry.Info(m.app.Selected()); ok {
		title = info.Title
	}
	bar := fmt.Sprintf("%s  Score: %d   %s", title, m.app.LiveScore(),
		m.help.ShortHelpView(m.keys.ShortHelp(hub.ScreenGame)))
	return RenderScreen(m.host.Screen()) + "\n" + bar
}

func (m Model) leaderboardView() string {
	board := m.app.Leaderboard()
	title := string(board.Game)
	if info, ok := registry.Info(board.Game); ok {
		title = info.Title
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("GAME OVER"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s  Final score: %d\n\n", title, board.FinalScore)
	b.WriteString(panelStyle.Render(m.boardText(board)))
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp(hub.ScreenLeaderboard)))
	return center(m.width, m.height, b.String())
}

// boardText renders the ranked lines, marking the signed-in player's rows.
func (m Model) boardText(board hub.Leaderboard) string {
	lines := board.Lines()
	if board.Loading || board.Empty() {
		return strings.Join(lines, "\n")
	}
	me := m.app.User().Name
	for i, e := range board.Entries {
		if e.Name == me && e.Score == board.FinalScore {
			lines[i] = selectedStyle.Render(lines[i])
		}
	}
	return strings.Join(lines, "\n")
}
