package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/oscillator/internal/core"
)

// colorStyles maps semantic cell colors to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorBorder:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorWall:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorLane:     lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	core.ColorObstacle: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorShroom:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBall:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorBallHeld: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorHUD:      lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorMuted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
