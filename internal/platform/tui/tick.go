// Package tui hosts oscillator variants in a terminal with Bubble Tea.
// It owns wall-clock time, maps keys and mouse buttons to input edges,
// and turns core.Screen buffers into styled terminal output.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per host frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after one frame interval.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sinceMs returns the milliseconds elapsed from start to t.
// Frame timestamps handed to the simulation are always relative to the
// host's start so they stay small and monotonic.
func sinceMs(start, t time.Time) float64 {
	return float64(t.Sub(start)) / float64(time.Millisecond)
}
