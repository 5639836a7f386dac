package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	"charm.land/lipgloss/v2"

	"github.com/tablero-dev/tablero/internal/tui/components"
	"github.com/tablero-dev/tablero/internal/tui/theme"
)

// detailWidth is the content width of the card modal
const detailWidth = 64

// viewCardDetail renders the full card view with comments, labels, and
// attachments. The body scrolls in a viewport; the cursor walks comments
// first, then attachments.
func (m Model) viewCardDetail() string {
	detail := m.store.Detail()
	if detail == nil {
		return components.ModalBox("Loading card...")
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Title)).
		Bold(true)
	sectionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Selected)).
		Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted))

	var b strings.Builder
	cursorLine := 0

	b.WriteString(titleStyle.Render(detail.Title))
	b.WriteString("\n")
	if detail.DueDate != nil {
		b.WriteString(muted.Render("Due "+detail.DueDate.Format("Jan 2, 2006")) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(components.RenderDescription(detail.Description, detailWidth))
	b.WriteString("\n\n")

	// Labels show their toggle number so 1-9 works without a picker
	b.WriteString(sectionStyle.Render("Labels") + "\n")
	labels := m.store.Labels()
	if len(labels) == 0 {
		b.WriteString(muted.Render("None defined on this board") + "\n")
	}
	for i, label := range labels {
		attached := " "
		for _, l := range detail.Labels {
			if l.ID == label.ID {
				attached = "✓"
			}
		}
		chip := lipgloss.NewStyle().
			Foreground(lipgloss.Color(label.Color)).
			Render("● " + label.Name)
		b.WriteString(fmt.Sprintf("%d [%s] %s\n", i+1, attached, chip))
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Comments (%d)", len(detail.Comments))) + "\n")
	if len(detail.Comments) == 0 {
		b.WriteString(muted.Render("No comments yet") + "\n")
	}
	for i, comment := range detail.Comments {
		cursor := "  "
		if i == m.detailIndex {
			cursor = "> "
			cursorLine = strings.Count(b.String(), "\n")
		}
		header := comment.Author.Username
		if !comment.CreatedAt.IsZero() {
			header += " " + comment.CreatedAt.Format("Jan 2 15:04")
		}
		b.WriteString(cursor + muted.Render(header) + "\n")
		b.WriteString("  " + comment.Content + "\n")
	}

	if len(detail.Attachments) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(fmt.Sprintf("Attachments (%d)", len(detail.Attachments))) + "\n")
		for i, att := range detail.Attachments {
			cursor := "  "
			if len(detail.Comments)+i == m.detailIndex {
				cursor = "> "
				cursorLine = strings.Count(b.String(), "\n")
			}
			size := fmt.Sprintf("%.1fKB", float64(att.FileSize)/1024)
			b.WriteString(cursor + att.Filename + " " + muted.Render(size) + "\n")
		}
	}

	body := lipgloss.NewStyle().Width(detailWidth).Render(b.String())

	// Cap the modal to the terminal and scroll the cursor into view
	maxBody := m.uiState.Height() - 8
	if maxBody < 5 {
		maxBody = 5
	}
	if lipgloss.Height(body) > maxBody {
		vp := viewport.New()
		vp.SetWidth(detailWidth)
		vp.SetHeight(maxBody)
		vp.Style = lipgloss.NewStyle()
		vp.SetContent(body)
		offset := cursorLine - maxBody/2
		if offset < 0 {
			offset = 0
		}
		vp.SetYOffset(offset)
		body = vp.View()
	}

	km := m.config.KeyMappings
	help := muted.Render(
		"e edit  " + km.AddComment + " comment  E edit comment  1-9 labels  " + km.Delete + " delete  " + km.Cancel + " close",
	)
	return components.ModalBox(body + "\n" + help)
}
