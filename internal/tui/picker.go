package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/tablero-dev/tablero/internal/tui/state"
)

// handleBoardPickerMode navigates the board list and switches boards
func (m Model) handleBoardPickerMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	km := m.config.KeyMappings

	switch key {
	case km.Down, "down":
		if m.pickerIndex < len(m.boards)-1 {
			m.pickerIndex++
		}
	case km.Up, "up":
		if m.pickerIndex > 0 {
			m.pickerIndex--
		}
	case km.Confirm:
		if m.pickerIndex >= len(m.boards) {
			return m, nil
		}
		picked := m.boards[m.pickerIndex]
		if picked.ID == m.boardID {
			m.uiState.SetMode(state.NormalMode)
			return m, nil
		}
		m.notificationState.Set("Opening "+picked.Title+"...", false)
		m.uiState.SetMode(state.NormalMode)
		return m, m.switchBoardCmd(picked.ID)
	case km.Cancel, km.Quit:
		m.uiState.SetMode(state.NormalMode)
	}
	return m, nil
}

// handleSearchResultNav navigates search results; confirm jumps the
// cursor to the picked card on the board.
func (m Model) handleSearchResultNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	km := m.config.KeyMappings

	switch key {
	case km.Down, "down":
		if m.searchIndex < len(m.searchResults)-1 {
			m.searchIndex++
		}
	case km.Up, "up":
		if m.searchIndex > 0 {
			m.searchIndex--
		}
	case km.Confirm:
		if m.searchIndex < len(m.searchResults) {
			m.jumpToCard(m.searchResults[m.searchIndex].ID)
		}
		m.exitSearch()
	case km.Cancel, km.Quit:
		m.exitSearch()
	}
	return m, nil
}

func (m *Model) exitSearch() {
	m.searchResults = nil
	m.formKind = formNone
	m.uiState.SetMode(state.NormalMode)
}

// jumpToCard moves the cursor to a card anywhere on the board
func (m *Model) jumpToCard(cardID int) {
	card, list, found := m.store.FindCard(cardID)
	if !found {
		m.notificationState.Set("Card is no longer on this board", false)
		return
	}
	for i, l := range m.store.Lists() {
		if l.ID == list.ID {
			m.uiState.SetSelectedList(i)
		}
	}
	m.uiState.SetSelectedCard(card.Position)
	m.ensureListVisible()
}
