package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/arcade-hub/internal/hub"
)

// KeyMap holds the hub's key bindings. Game controls are not listed here:
// every key a game screen does not claim is forwarded to the running title.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Back    key.Binding
	Restart key.Binding
	Scores  key.Binding
	SignOut key.Binding
	Submit  key.Binding
	Quit    key.Binding
	Force   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "play again"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "high scores"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sign out"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "sign in"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Force: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp returns the bindings shown in the help bar for a screen.
func (k KeyMap) ShortHelp(s hub.Screen) []key.Binding {
	switch s {
	case hub.ScreenAuth:
		return []key.Binding{k.Submit, k.Force}
	case hub.ScreenMenu:
		return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.SignOut, k.Quit}
	case hub.ScreenGame:
		game := k.Restart
		game.SetKeys("r")
		return []key.Binding{k.Back, game}
	case hub.ScreenLeaderboard:
		return []key.Binding{k.Restart, k.Back, k.Quit}
	}
	return nil
}
