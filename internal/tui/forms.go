package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"

	"github.com/tablero-dev/tablero/internal/api"
	"github.com/tablero-dev/tablero/internal/tui/state"
)

// updateForm drives the open huh form. Esc cancels, completion submits
// through the store (or, for search, fires the search command).
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Search switches from form input to result navigation once the
	// query is submitted
	if m.formKind == formSearch && m.form == nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			return m.handleSearchResultNav(keyMsg)
		}
		return m, nil
	}
	if m.form == nil {
		m.uiState.SetMode(state.NormalMode)
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return m.closeForm()
	}

	model, cmd := m.form.Update(msg)
	m.form = model.(*huh.Form)

	if m.form.State == huh.StateCompleted {
		return m.submitForm()
	}
	if m.form.State == huh.StateAborted {
		return m.closeForm()
	}
	return m, cmd
}

// closeForm discards the open form without submitting
func (m Model) closeForm() (tea.Model, tea.Cmd) {
	m.form = nil
	m.formKind = formNone
	if m.uiState.Mode() == state.CommentFormMode {
		m.uiState.SetMode(state.CardDetailMode)
		return m, nil
	}
	m.uiState.SetMode(state.NormalMode)
	return m, nil
}

// submitForm applies the completed form through the store
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	kind := m.formKind
	m.form = nil
	m.formKind = formNone

	switch kind {
	case formNewCard:
		m.uiState.SetMode(state.NormalMode)
		title := strings.TrimSpace(m.formTitle)
		if err := m.store.CreateCard(m.editingListID, title); err != nil {
			m.notificationState.Set(err.Error(), true)
			return m, nil
		}
		if desc := strings.TrimSpace(m.formDescription); desc != "" {
			m.applyPendingDescription(desc)
		}

	case formEditCard:
		m.uiState.SetMode(state.NormalMode)
		title := strings.TrimSpace(m.formTitle)
		desc := m.formDescription
		err := m.store.UpdateCard(m.editingCardID, api.UpdateCardRequest{
			Title:       title,
			Description: &desc,
		})
		if err != nil {
			m.notificationState.Set(err.Error(), true)
		}

	case formNewList:
		m.uiState.SetMode(state.NormalMode)
		if err := m.store.CreateList(strings.TrimSpace(m.formTitle)); err != nil {
			m.notificationState.Set(err.Error(), true)
		}

	case formRenameList:
		m.uiState.SetMode(state.NormalMode)
		if err := m.store.UpdateList(m.editingListID, strings.TrimSpace(m.formTitle)); err != nil {
			m.notificationState.Set(err.Error(), true)
		}

	case formComment:
		m.uiState.SetMode(state.CardDetailMode)
		content := strings.TrimSpace(m.formContent)
		author := m.author()
		if err := m.store.AddComment(m.editingCardID, author, content); err != nil {
			m.notificationState.Set(err.Error(), true)
		}

	case formEditComment:
		m.uiState.SetMode(state.CardDetailMode)
		content := strings.TrimSpace(m.formContent)
		if err := m.store.UpdateComment(m.editingCardID, m.editingCommentID, content); err != nil {
			m.notificationState.Set(err.Error(), true)
		}

	case formSearch:
		query := strings.TrimSpace(m.searchQuery)
		if query == "" {
			m.uiState.SetMode(state.NormalMode)
			return m, nil
		}
		// Stay in SearchMode; the nil form marks the results phase
		m.formKind = formSearch
		return m, m.searchCmd(query)

	default:
		m.uiState.SetMode(state.NormalMode)
	}

	return m, nil
}

// applyPendingDescription sets the description on the card just created
// at the tail of the selected list. The create is still provisional, so
// the update queues behind it and resolves the server ID on its own.
func (m *Model) applyPendingDescription(desc string) {
	cards := m.store.Cards(m.editingListID)
	if len(cards) == 0 {
		return
	}
	created := cards[len(cards)-1]
	err := m.store.UpdateCard(created.ID, api.UpdateCardRequest{
		Description: &desc,
	})
	if err != nil {
		m.notificationState.Set(err.Error(), true)
	}
}
