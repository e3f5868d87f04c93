// Package tui provides the Bubble Tea integration for blockfall.
// It handles the terminal UI loop, input mapping, and drop timing.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent when the drop timer fires.
type TickMsg time.Time

// bannerExpiredMsg hides the game-over banner with the matching sequence.
type bannerExpiredMsg struct {
	seq int
}

// waitForTick returns a command that blocks until the drop timer fires.
// It yields nil once ctx is done so a finished session stops ticking.
func waitForTick(ctx context.Context, ticks <-chan time.Time) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticks:
			return TickMsg(t)
		}
	}
}

// expireBanner schedules the end of a game-over banner.
func expireBanner(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return bannerExpiredMsg{seq: seq}
	})
}
