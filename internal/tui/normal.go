package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/tablero-dev/tablero/internal/reorder"
	"github.com/tablero-dev/tablero/internal/tui/huhforms"
	"github.com/tablero-dev/tablero/internal/tui/state"
)

// handleNormalMode dispatches key events in NormalMode to specific handlers.
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notificationState.Clear()

	key := msg.String()
	km := m.config.KeyMappings

	switch key {
	case km.Quit, "ctrl+c":
		return m.handleQuit()
	case km.Left, "left":
		return m.handleNavigateLeft()
	case km.Right, "right":
		return m.handleNavigateRight()
	case km.Down, "down":
		return m.handleNavigateDown()
	case km.Up, "up":
		return m.handleNavigateUp()
	case km.Grab:
		return m.handleGrab()
	case km.NewCard:
		return m.handleNewCard()
	case km.NewList:
		return m.handleNewList()
	case "r":
		return m.handleRenameList()
	case km.Delete:
		return m.handleDelete()
	case km.OpenCard, km.EditLabels:
		return m.handleOpenCard()
	case "<":
		return m.handleMoveListLeft()
	case ">":
		return m.handleMoveListRight()
	case km.Search:
		return m.handleEnterSearch()
	case km.BoardPicker:
		return m, m.fetchBoardsCmd()
	case "?":
		m.uiState.SetMode(state.HelpMode)
		return m, nil
	}

	return m, nil
}

// handleQuit persists the board for offline viewing and exits
func (m Model) handleQuit() (tea.Model, tea.Cmd) {
	m.persistSnapshot()
	m.store.Close()
	if m.channel != nil {
		m.channel.Close()
	}
	return m, tea.Quit
}

// handleNavigateLeft moves selection to the previous list
func (m Model) handleNavigateLeft() (tea.Model, tea.Cmd) {
	if m.uiState.SelectedList() > 0 {
		m.uiState.SetSelectedList(m.uiState.SelectedList() - 1)
		m.uiState.SetSelectedCard(0)
		m.ensureListVisible()
	}
	return m, nil
}

// handleNavigateRight moves selection to the next list
func (m Model) handleNavigateRight() (tea.Model, tea.Cmd) {
	if m.uiState.SelectedList() < len(m.lists())-1 {
		m.uiState.SetSelectedList(m.uiState.SelectedList() + 1)
		m.uiState.SetSelectedCard(0)
		m.ensureListVisible()
	}
	return m, nil
}

// handleNavigateDown moves selection to the next card in the list
func (m Model) handleNavigateDown() (tea.Model, tea.Cmd) {
	list := m.currentList()
	if list == nil {
		return m, nil
	}
	if m.uiState.SelectedCard() < len(m.cardsFor(list.ID))-1 {
		m.uiState.SetSelectedCard(m.uiState.SelectedCard() + 1)
	}
	return m, nil
}

// handleNavigateUp moves selection to the previous card in the list
func (m Model) handleNavigateUp() (tea.Model, tea.Cmd) {
	if m.uiState.SelectedCard() > 0 {
		m.uiState.SetSelectedCard(m.uiState.SelectedCard() - 1)
	}
	return m, nil
}

// ensureListVisible scrolls the viewport so the selected list shows
func (m *Model) ensureListVisible() {
	visible := m.visibleListCount()
	if visible < 1 {
		visible = 1
	}
	selected := m.uiState.SelectedList()
	offset := m.uiState.ViewportOffset()
	if selected < offset {
		m.uiState.SetViewportOffset(selected)
	} else if selected >= offset+visible {
		m.uiState.SetViewportOffset(selected - visible + 1)
	}
}

// handleGrab enters grab mode with the selected card
func (m Model) handleGrab() (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}
	card := m.currentCard()
	if card == nil {
		m.notificationState.Set("No card to grab", false)
		return m, nil
	}
	m.uiState.SetGrabbedCard(card.ID)
	m.uiState.SetMode(state.GrabMode)
	return m, nil
}

// handleNewCard opens the card creation form
func (m Model) handleNewCard() (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}
	list := m.currentList()
	if list == nil {
		m.notificationState.Set("Create a list first", false)
		return m, nil
	}
	m.formTitle = ""
	m.formDescription = ""
	m.formKind = formNewCard
	m.editingListID = list.ID
	m.form = huhforms.CardForm(&m.formTitle, &m.formDescription, false)
	m.uiState.SetMode(state.CardFormMode)
	return m, m.form.Init()
}

// handleNewList opens the list creation form
func (m Model) handleNewList() (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}
	m.formTitle = ""
	m.formKind = formNewList
	m.form = huhforms.ListForm(&m.formTitle, false)
	m.uiState.SetMode(state.ListFormMode)
	return m, m.form.Init()
}

// handleRenameList opens the rename form for the selected list
func (m Model) handleRenameList() (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}
	list := m.currentList()
	if list == nil {
		return m, nil
	}
	m.formTitle = list.Title
	m.formKind = formRenameList
	m.editingListID = list.ID
	m.form = huhforms.ListForm(&m.formTitle, true)
	m.uiState.SetMode(state.ListFormMode)
	return m, m.form.Init()
}

// handleDelete asks for confirmation before deleting the selected card,
// or the selected list when it has no cards.
func (m Model) handleDelete() (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}
	if card := m.currentCard(); card != nil {
		m.confirmKind = confirmCard
		m.confirmID = card.ID
		m.confirmTitle = card.Title
		m.uiState.SetMode(state.DeleteConfirmMode)
		return m, nil
	}
	if list := m.currentList(); list != nil {
		m.confirmKind = confirmList
		m.confirmID = list.ID
		m.confirmTitle = list.Title
		m.uiState.SetMode(state.DeleteConfirmMode)
		return m, nil
	}
	return m, nil
}

// handleOpenCard opens the full card view
func (m Model) handleOpenCard() (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}
	card := m.currentCard()
	if card == nil {
		return m, nil
	}
	if err := m.store.OpenCard(card.ID); err != nil {
		m.notificationState.Set(err.Error(), true)
		return m, nil
	}
	m.detailIndex = 0
	m.uiState.SetMode(state.CardDetailMode)
	return m, nil
}

// handleMoveListLeft shifts the selected list one position left
func (m Model) handleMoveListLeft() (tea.Model, tea.Cmd) {
	return m.moveList(-1)
}

// handleMoveListRight shifts the selected list one position right
func (m Model) handleMoveListRight() (tea.Model, tea.Cmd) {
	return m.moveList(1)
}

func (m Model) moveList(delta int) (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}
	list := m.currentList()
	if list == nil {
		return m, nil
	}
	lists := m.lists()
	neighbor := m.uiState.SelectedList() + delta
	if neighbor < 0 || neighbor >= len(lists) {
		return m, nil
	}
	position, ok := reorder.ResolveList(lists, list.ID, lists[neighbor].ID)
	if !ok {
		return m, nil
	}
	if err := m.store.MoveList(list.ID, position); err != nil {
		m.notificationState.Set(err.Error(), true)
		return m, nil
	}
	m.uiState.SetSelectedList(position)
	m.ensureListVisible()
	return m, nil
}

// handleEnterSearch opens the search prompt
func (m Model) handleEnterSearch() (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}
	m.searchQuery = ""
	m.searchResults = nil
	m.formKind = formSearch
	m.form = huhforms.SearchForm(&m.searchQuery)
	m.uiState.SetMode(state.SearchMode)
	return m, m.form.Init()
}

// handleHelpMode closes the key reference on any key
func (m Model) handleHelpMode(tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.uiState.SetMode(state.NormalMode)
	return m, nil
}
