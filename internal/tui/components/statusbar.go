package components

import (
	"charm.land/lipgloss/v2"

	"github.com/tablero-dev/tablero/internal/tui/theme"
)

// RenderStatusBar renders the bottom bar: board title, realtime
// indicator, and the current notification (errors in the error color).
func RenderStatusBar(width int, boardTitle string, connected bool, message string, isError bool) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Title)).
		Bold(true).
		Render(boardTitle)

	conn := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Connected)).
		Render("● live")
	if !connected {
		conn = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Disconnected)).
			Render("○ offline")
	}

	note := ""
	if message != "" {
		color := theme.Info
		if isError {
			color = theme.Error
		}
		note = lipgloss.NewStyle().
			Foreground(lipgloss.Color(color)).
			Render(message)
	}

	left := title + "  " + conn
	gap := width - lipgloss.Width(left) - lipgloss.Width(note) - 2
	if gap < 1 {
		gap = 1
	}
	bar := left + lipgloss.NewStyle().Width(gap).Render("") + note
	return lipgloss.NewStyle().Width(width).Render(bar)
}
