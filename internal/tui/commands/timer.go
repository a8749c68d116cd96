// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindvr/reststyle/internal/clock"
	"github.com/mindvr/reststyle/internal/tui"
)

// ListenTimersCmd blocks until the dispatcher has a due callback and hands it
// to Update as a TimerFiredMsg. Update runs the callback and listens again.
// Returns TimersClosedMsg once the dispatcher is closed.
func ListenTimersCmd(d *clock.Dispatcher) tea.Cmd {
	return func() tea.Msg {
		fn, ok := d.Next()
		if !ok {
			return tui.TimersClosedMsg{}
		}
		return tui.TimerFiredMsg{Fn: fn}
	}
}
