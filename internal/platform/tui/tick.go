// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, name entry, menus and
// the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// maxFrameDelta caps the measured time between ticks so a stalled
// terminal does not dump seconds of gravity into one frame.
const maxFrameDelta = 250 * time.Millisecond

// tickCmd returns a Bubble Tea command that sends the next tick after
// one frame of cfg.
func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.FrameDuration(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the time since the previous tick, clamped to
// maxFrameDelta. A zero previous time yields zero, which games treat as
// one nominal frame.
func frameDelta(prev, now time.Time) time.Duration {
	if prev.IsZero() || now.Before(prev) {
		return 0
	}
	return min(now.Sub(prev), maxFrameDelta)
}
