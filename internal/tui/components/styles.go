package components

import (
	"charm.land/lipgloss/v2"

	"github.com/tablero-dev/tablero/internal/tui/theme"
)

// ListWidth is the fixed rendered width of one list column
const ListWidth = 28

// CardHeight is the fixed height of one rendered card
const CardHeight = 4

func listStyle(selected bool) lipgloss.Style {
	border := theme.Border
	if selected {
		border = theme.ActiveBorder
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Width(ListWidth).
		Padding(0, 1)
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Title)).
		Bold(true)
}

func cardStyle(selected, grabbed bool) lipgloss.Style {
	border := theme.Border
	switch {
	case grabbed:
		border = theme.Grabbed
	case selected:
		border = theme.Selected
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(border)).
		Width(ListWidth - 4)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted)).
		Italic(true)
}

func modalStyle(borderColor string) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(1, 2)
}

// ModalBox wraps overlay content (forms, confirmations, pickers)
func ModalBox(content string) string {
	return modalStyle(theme.ActiveBorder).Render(content)
}

// ErrorModalBox wraps destructive confirmations
func ErrorModalBox(content string) string {
	return modalStyle(theme.Error).Render(content)
}
