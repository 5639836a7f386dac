package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/tablero-dev/tablero/internal/models"
	"github.com/tablero-dev/tablero/internal/tui/theme"
)

// RenderCard renders one card cell: title line plus a metadata line with
// labels, due date, and comment count.
func RenderCard(card *models.Card, selected, grabbed bool) string {
	title := card.Title
	maxTitle := ListWidth - 6
	if len(title) > maxTitle {
		title = title[:maxTitle-1] + "…"
	}

	titleLine := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.CardTitle)).
		Render(title)

	var meta []string
	for _, label := range card.Labels {
		chip := lipgloss.NewStyle().
			Foreground(lipgloss.Color(label.Color)).
			Render("●")
		meta = append(meta, chip)
	}
	if card.DueDate != nil {
		meta = append(meta, mutedStyle().Render(card.DueDate.Format("Jan 2")))
	}
	if card.CommentCount > 0 {
		meta = append(meta, mutedStyle().Render(fmt.Sprintf("🗨%d", card.CommentCount)))
	}

	content := titleLine
	if len(meta) > 0 {
		content += "\n" + strings.Join(meta, " ")
	}
	return cardStyle(selected, grabbed).Render(content)
}
