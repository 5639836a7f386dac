package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/tablero-dev/tablero/internal/reorder"
	"github.com/tablero-dev/tablero/internal/tui/state"
)

// handleGrabMode moves the grabbed card with the navigation keys and
// drops it on confirm. Every movement dispatches a real move through
// the store, so the board always shows where the card would land.
func (m Model) handleGrabMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	km := m.config.KeyMappings

	switch key {
	case km.Grab, km.Confirm, km.Cancel:
		m.uiState.SetGrabbedCard(0)
		m.uiState.SetMode(state.NormalMode)
		return m, nil
	case km.Down, "down":
		return m.dropOnNeighbor(1)
	case km.Up, "up":
		return m.dropOnNeighbor(-1)
	case km.Left, "left":
		return m.dropOnAdjacentList(-1)
	case km.Right, "right":
		return m.dropOnAdjacentList(1)
	}
	return m, nil
}

// dropOnNeighbor swaps the grabbed card with the card above or below it
func (m Model) dropOnNeighbor(delta int) (tea.Model, tea.Cmd) {
	grabbed := m.uiState.GrabbedCard()
	_, list, found := m.store.FindCard(grabbed)
	if !found {
		return m.releaseGrab()
	}

	cards := m.store.Cards(list.ID)
	idx := -1
	for i, c := range cards {
		if c.ID == grabbed {
			idx = i
		}
	}
	target := idx + delta
	if idx < 0 || target < 0 || target >= len(cards) {
		return m, nil
	}

	drop := reorder.Drop{
		Kind:  reorder.TargetCard,
		ID:    cards[target].ID,
		After: delta > 0,
	}
	return m.dispatchMove(grabbed, drop)
}

// dropOnAdjacentList sends the grabbed card to the end of the list on
// the left or right
func (m Model) dropOnAdjacentList(delta int) (tea.Model, tea.Cmd) {
	grabbed := m.uiState.GrabbedCard()
	_, list, found := m.store.FindCard(grabbed)
	if !found {
		return m.releaseGrab()
	}

	lists := m.store.Lists()
	idx := -1
	for i, l := range lists {
		if l.ID == list.ID {
			idx = i
		}
	}
	target := idx + delta
	if idx < 0 || target < 0 || target >= len(lists) {
		return m, nil
	}

	drop := reorder.Drop{
		Kind: reorder.TargetList,
		ID:   lists[target].ID,
	}
	return m.dispatchMove(grabbed, drop)
}

// dispatchMove resolves the drop and issues the store move, keeping the
// cursor on the grabbed card.
func (m Model) dispatchMove(grabbed int, drop reorder.Drop) (tea.Model, tea.Cmd) {
	intent, ok := reorder.Resolve(m.store, grabbed, drop)
	if !ok {
		return m, nil
	}
	if err := m.store.MoveCard(intent.CardID, intent.ListID, intent.Position); err != nil {
		m.notificationState.Set(err.Error(), true)
		return m, nil
	}

	for i, l := range m.store.Lists() {
		if l.ID == intent.ListID {
			m.uiState.SetSelectedList(i)
		}
	}
	m.uiState.SetSelectedCard(intent.Position)
	m.ensureListVisible()
	m.clampSelection()
	return m, nil
}

// releaseGrab drops out of grab mode when the card vanished under us
// (remote deletion or rollback)
func (m Model) releaseGrab() (tea.Model, tea.Cmd) {
	m.uiState.SetGrabbedCard(0)
	m.uiState.SetMode(state.NormalMode)
	m.clampSelection()
	return m, nil
}
