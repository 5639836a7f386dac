package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/tablero-dev/tablero/internal/models"
	"github.com/tablero-dev/tablero/internal/tui/huhforms"
	"github.com/tablero-dev/tablero/internal/tui/state"
)

// handleCardDetailMode drives the full card view: comment and
// attachment navigation, label toggles, edits, and deletions.
func (m Model) handleCardDetailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	detail := m.store.Detail()
	if detail == nil {
		m.uiState.SetMode(state.NormalMode)
		return m, nil
	}

	key := msg.String()
	km := m.config.KeyMappings

	switch key {
	case km.Cancel, km.Quit:
		m.store.CloseCard()
		m.uiState.SetMode(state.NormalMode)
		return m, nil

	case km.Down, "down":
		if m.detailIndex < len(detail.Comments)+len(detail.Attachments)-1 {
			m.detailIndex++
		}
		return m, nil

	case km.Up, "up":
		if m.detailIndex > 0 {
			m.detailIndex--
		}
		return m, nil

	case "e":
		m.formTitle = detail.Title
		m.formDescription = detail.Description
		m.formKind = formEditCard
		m.editingCardID = detail.ID
		m.form = huhforms.CardForm(&m.formTitle, &m.formDescription, true)
		m.uiState.SetMode(state.CardFormMode)
		return m, m.form.Init()

	case km.AddComment:
		m.formContent = ""
		m.formKind = formComment
		m.editingCardID = detail.ID
		m.form = huhforms.CommentForm(&m.formContent, false)
		m.uiState.SetMode(state.CommentFormMode)
		return m, m.form.Init()

	case "E":
		return m.editSelectedComment(detail)

	case km.Delete:
		return m.deleteDetailSelection(detail.ID)

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m.toggleLabel(detail.ID, int(key[0]-'1'))
	}

	return m, nil
}

// editSelectedComment opens the comment form prefilled when the cursor
// sits on one of the card's comments
func (m Model) editSelectedComment(detail *models.CardDetail) (tea.Model, tea.Cmd) {
	if m.detailIndex >= len(detail.Comments) {
		return m, nil
	}
	comment := detail.Comments[m.detailIndex]
	m.formContent = comment.Content
	m.formKind = formEditComment
	m.editingCardID = detail.ID
	m.editingCommentID = comment.ID
	m.form = huhforms.CommentForm(&m.formContent, true)
	m.uiState.SetMode(state.CommentFormMode)
	return m, m.form.Init()
}

// deleteDetailSelection confirms deletion of the selected comment, or
// deletes the selected attachment directly.
func (m Model) deleteDetailSelection(cardID int) (tea.Model, tea.Cmd) {
	detail := m.store.Detail()
	if detail == nil {
		return m, nil
	}

	if m.detailIndex < len(detail.Comments) {
		comment := detail.Comments[m.detailIndex]
		m.confirmKind = confirmComment
		m.confirmID = comment.ID
		m.confirmTitle = comment.Content
		m.editingCardID = cardID
		m.uiState.SetMode(state.DeleteConfirmMode)
		return m, nil
	}

	attIdx := m.detailIndex - len(detail.Comments)
	if attIdx < len(detail.Attachments) {
		att := detail.Attachments[attIdx]
		if err := m.store.DeleteAttachment(cardID, att.ID); err != nil {
			m.notificationState.Set(err.Error(), true)
		}
	}
	return m, nil
}

// toggleLabel attaches or detaches the board label at the given index
func (m Model) toggleLabel(cardID, idx int) (tea.Model, tea.Cmd) {
	labels := m.store.Labels()
	if idx < 0 || idx >= len(labels) {
		return m, nil
	}
	label := labels[idx]

	detail := m.store.Detail()
	attached := false
	if detail != nil {
		for _, l := range detail.Labels {
			if l.ID == label.ID {
				attached = true
			}
		}
	}

	var err error
	if attached {
		err = m.store.DetachLabel(cardID, label.ID)
	} else {
		err = m.store.AttachLabel(cardID, label.ID)
	}
	if err != nil {
		m.notificationState.Set(err.Error(), true)
	}
	return m, nil
}
