package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tablero-dev/tablero/internal/tui/components"
	"github.com/tablero-dev/tablero/internal/tui/state"
	"github.com/tablero-dev/tablero/internal/tui/theme"
)

// View renders the current state of the application.
// This implements the "View" part of the Model-View-Update pattern.
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	// Wait for terminal size to be initialized
	if m.uiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	base := m.viewBoard()

	var modal string
	switch m.uiState.Mode() {
	case state.CardFormMode, state.ListFormMode, state.CommentFormMode:
		if m.form != nil {
			modal = components.ModalBox(m.form.View())
		}
	case state.SearchMode:
		modal = m.viewSearch()
	case state.DeleteConfirmMode:
		modal = m.viewDeleteConfirm()
	case state.CardDetailMode:
		modal = m.viewCardDetail()
	case state.BoardPickerMode:
		modal = m.viewBoardPicker()
	case state.HelpMode:
		modal = m.viewHelp()
	}

	if modal != "" {
		view.Content = lipgloss.Place(
			m.uiState.Width(), m.uiState.Height(),
			lipgloss.Center, lipgloss.Center,
			modal,
		)
		return view
	}

	view.Content = base
	return view
}

// visibleListCount is how many list columns fit the terminal
func (m Model) visibleListCount() int {
	count := m.uiState.Width() / (components.ListWidth + 2)
	if count < 1 {
		count = 1
	}
	return count
}

// viewBoard renders the list columns and the status bar
func (m Model) viewBoard() string {
	width, height := m.uiState.Width(), m.uiState.Height()
	lists := m.lists()

	if len(lists) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Muted)).
			Render("No lists yet. Press " + m.config.KeyMappings.NewList + " to create one.")
		board := lipgloss.Place(width, height-1, lipgloss.Center, lipgloss.Center, empty)
		return board + "\n" + m.statusBar()
	}

	visible := m.visibleListCount()
	offset := m.uiState.ViewportOffset()
	if offset > len(lists)-1 {
		offset = len(lists) - 1
	}
	end := offset + visible
	if end > len(lists) {
		end = len(lists)
	}

	columns := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		list := lists[i]
		selected := i == m.uiState.SelectedList()
		selectedCard := -1
		if selected {
			selectedCard = m.uiState.SelectedCard()
		}
		columns = append(columns, components.RenderList(
			list,
			m.cardsFor(list.ID),
			selected,
			selectedCard,
			m.uiState.GrabbedCard(),
			height-2,
		))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	return board + "\n" + m.statusBar()
}

func (m Model) statusBar() string {
	message := m.notificationState.Message()
	isError := m.notificationState.IsError()
	if message == "" && m.uiState.Mode() == state.GrabMode {
		message = "Moving card. Navigate to drop, " + m.config.KeyMappings.Grab + " to release."
	}
	return components.RenderStatusBar(
		m.uiState.Width(),
		m.boardTitle(),
		m.connState.Connected(),
		message,
		isError,
	)
}

// viewDeleteConfirm renders the deletion prompt
func (m Model) viewDeleteConfirm() string {
	noun := "card"
	switch m.confirmKind {
	case confirmList:
		noun = "list and all its cards"
	case confirmComment:
		noun = "comment"
	}

	title := m.confirmTitle
	if len(title) > 40 {
		title = title[:39] + "…"
	}

	content := fmt.Sprintf("Delete %s %q?\n\n", noun, title) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted)).Render("y to delete, n to cancel")
	return components.ErrorModalBox(content)
}

// viewBoardPicker renders the board selection list
func (m Model) viewBoardPicker() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Title)).
		Bold(true).
		Render("Boards"))
	b.WriteString("\n\n")

	for i, board := range m.boards {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.CardTitle))
		if i == m.pickerIndex {
			cursor = "> "
			style = style.Foreground(lipgloss.Color(theme.Selected)).Bold(true)
		}
		line := board.Title
		if board.ID == m.boardID {
			line += " (current)"
		}
		b.WriteString(cursor + style.Render(line) + "\n")
		if i == m.pickerIndex && board.Description != "" {
			b.WriteString("  " + lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.Muted)).
				Render(board.Description) + "\n")
		}
	}
	return components.ModalBox(b.String())
}

// viewSearch renders the query form, then the result list
func (m Model) viewSearch() string {
	if m.form != nil {
		return components.ModalBox(m.form.View())
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Title)).
		Bold(true).
		Render(fmt.Sprintf("Results for %q", m.searchQuery)))
	b.WriteString("\n\n")

	if len(m.searchResults) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Muted)).
			Render("No cards found"))
		return components.ModalBox(b.String())
	}

	for i, card := range m.searchResults {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.CardTitle))
		if i == m.searchIndex {
			cursor = "> "
			style = style.Foreground(lipgloss.Color(theme.Selected)).Bold(true)
		}
		b.WriteString(cursor + style.Render(card.Title) + "\n")
	}
	b.WriteString("\n" + lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted)).
		Render("enter to jump, esc to close"))
	return components.ModalBox(b.String())
}

// viewHelp renders the key binding reference
func (m Model) viewHelp() string {
	km := m.config.KeyMappings
	rows := [][2]string{
		{km.Left + "/" + km.Right, "switch list"},
		{km.Up + "/" + km.Down, "move between cards"},
		{km.Grab, "grab / release a card"},
		{"</>", "move list left / right"},
		{km.NewCard, "new card"},
		{km.NewList, "new list"},
		{"r", "rename list"},
		{km.OpenCard, "open card"},
		{km.Delete, "delete card (or empty list)"},
		{km.Search, "search cards"},
		{km.BoardPicker, "switch board"},
		{km.Quit, "quit"},
	}

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Selected)).Width(8)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Title)).
		Bold(true).
		Render("Keys"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(keyStyle.Render(row[0]) + row[1] + "\n")
	}
	return components.ModalBox(b.String())
}
