package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/tablero-dev/tablero/internal/models"
	"github.com/tablero-dev/tablero/internal/tui/theme"
)

// RenderList renders a complete list column with its title and cards.
//
// Layout:
//
//	{List Title} ({count})
//	▲ (if scrolled down)
//	{Card 1}
//	{Card 2}
//	...
//	▼ (if more cards below)
func RenderList(list *models.List, cards []*models.Card, selected bool, selectedCardIdx, grabbedCardID, height int) string {
	header := fmt.Sprintf("%s (%d)", list.Title, len(cards))
	var b strings.Builder
	b.WriteString(titleStyle().Render(header))
	b.WriteString("\n")

	if len(cards) == 0 {
		b.WriteString(mutedStyle().Padding(1, 0).Render("No cards"))
		return listStyle(selected).Height(height).Render(b.String())
	}

	// Border, header, and the two scroll indicator lines
	const listOverhead = 5
	maxVisible := (height - listOverhead) / CardHeight
	if maxVisible < 1 {
		maxVisible = 1
	}

	// Keep the selected card inside the window
	offset := 0
	if selected && selectedCardIdx >= maxVisible {
		offset = selectedCardIdx - maxVisible + 1
	}

	indicator := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted)).
		Align(lipgloss.Center).
		Width(ListWidth - 2)

	if offset > 0 {
		b.WriteString(indicator.Render("▲ more") + "\n")
	} else {
		b.WriteString("\n")
	}

	end := offset + maxVisible
	if end > len(cards) {
		end = len(cards)
	}
	for i := offset; i < end; i++ {
		card := cards[i]
		isSelected := selected && i == selectedCardIdx
		b.WriteString(RenderCard(card, isSelected, card.ID == grabbedCardID))
		b.WriteString("\n")
	}

	if end < len(cards) {
		b.WriteString(indicator.Render("▼ more"))
	}

	return listStyle(selected).Height(height).Render(b.String())
}
