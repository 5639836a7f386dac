package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/tablero-dev/tablero/internal/tui/state"
)

// handleDeleteConfirmMode waits for a yes/no on a pending deletion
func (m Model) handleDeleteConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", m.config.KeyMappings.Confirm:
		return m.confirmDelete()
	case "n", "N", m.config.KeyMappings.Cancel, "q":
		return m.cancelDelete()
	}
	return m, nil
}

func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	var err error
	next := state.NormalMode

	switch m.confirmKind {
	case confirmCard:
		err = m.store.DeleteCard(m.confirmID)
	case confirmList:
		err = m.store.DeleteList(m.confirmID)
	case confirmComment:
		err = m.store.DeleteComment(m.editingCardID, m.confirmID)
		next = state.CardDetailMode
		if m.detailIndex > 0 {
			m.detailIndex--
		}
	}

	if err != nil {
		m.notificationState.Set(err.Error(), true)
	}
	m.uiState.SetMode(next)
	m.clampSelection()
	return m, nil
}

func (m Model) cancelDelete() (tea.Model, tea.Cmd) {
	if m.confirmKind == confirmComment {
		m.uiState.SetMode(state.CardDetailMode)
	} else {
		m.uiState.SetMode(state.NormalMode)
	}
	return m, nil
}
