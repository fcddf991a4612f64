// Package tui hosts the arcade in a Bubble Tea program. It drives the
// engine's frame queue from tea.Tick, turns key, mouse and resize
// messages into the raw device events the engine expects, and draws the
// hub's screens. The same program serves local terminals and ssh sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to run one host frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
