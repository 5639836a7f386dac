package tui

import (
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/tablero-dev/tablero/internal/models"
	"github.com/tablero-dev/tablero/internal/tui/state"
)

// Update handles all messages and updates the model accordingly.
// This implements the "Update" part of the Model-View-Update pattern.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.uiState.SetSize(msg.Width, msg.Height)
		return m, nil

	case snapshotMsg:
		return m.handleSnapshot(msg)
	case boardLoadedMsg:
		return m.handleBoardLoaded(msg)
	case storeChangedMsg:
		return m.handleStoreChanged(msg)
	case remoteEventMsg:
		return m.handleRemoteEvent(msg)

	case connectedMsg:
		return m.handleConnected(msg)
	case connectFailedMsg:
		slog.Debug("realtime connect failed", "error", msg.err)
		return m.scheduleReconnect()
	case channelClosedMsg:
		// Closes of channels we already replaced or tore down are stale
		if msg.channel != m.channel {
			return m, nil
		}
		return m.scheduleReconnect()
	case reconnectMsg:
		return m, m.connectCmd()

	case boardsLoadedMsg:
		return m.handleBoardsLoaded(msg)
	case boardSwitchedMsg:
		return m.handleBoardSwitched(msg)
	case searchResultsMsg:
		return m.handleSearchResults(msg)
	}

	// Forms own the keyboard while open
	switch m.uiState.Mode() {
	case state.CardFormMode, state.ListFormMode, state.CommentFormMode, state.SearchMode:
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.uiState.Mode() {
		case state.NormalMode:
			return m.handleNormalMode(keyMsg)
		case state.GrabMode:
			return m.handleGrabMode(keyMsg)
		case state.DeleteConfirmMode:
			return m.handleDeleteConfirmMode(keyMsg)
		case state.CardDetailMode:
			return m.handleCardDetailMode(keyMsg)
		case state.BoardPickerMode:
			return m.handleBoardPickerMode(keyMsg)
		case state.HelpMode:
			return m.handleHelpMode(keyMsg)
		}
	}

	return m, nil
}

// handleSnapshot paints the cached board while the live load runs
func (m Model) handleSnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	if m.loaded || msg.snap == nil {
		return m, nil
	}
	m.snapshot = msg.snap
	m.clampSelection()
	return m, nil
}

// handleBoardLoaded switches rendering from the snapshot to the store
func (m Model) handleBoardLoaded(msg boardLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		slog.Error("board load failed", "board_id", m.boardID, "error", msg.err)
		if m.snapshot != nil {
			m.notificationState.Set("Load failed, showing cached board", true)
			return m, nil
		}
		m.notificationState.Set("Could not load board: "+msg.err.Error(), true)
		return m, nil
	}
	m.loaded = true
	m.snapshot = nil
	m.clampSelection()
	return m, nil
}

// handleStoreChanged reacts to a completed store operation: surface
// rollback errors, keep the cursor valid, and re-arm the message pump.
func (m Model) handleStoreChanged(msg storeChangedMsg) (tea.Model, tea.Cmd) {
	if msg.note.Err != nil {
		m.notificationState.Set(msg.note.Message, true)
	}
	m.clampSelection()

	// A rolled-back open means the card modal has nothing to show
	if m.uiState.Mode() == state.CardDetailMode && m.store.Detail() == nil && msg.note.Err != nil {
		m.uiState.SetMode(state.NormalMode)
	}
	return m, m.waitMsg()
}

// handleRemoteEvent merges a realtime notification into the store
func (m Model) handleRemoteEvent(msg remoteEventMsg) (tea.Model, tea.Cmd) {
	if m.loaded {
		m.store.ApplyRemoteEvent(msg.event)
		m.clampSelection()
	}
	return m, m.waitMsg()
}

// handleConnected adopts the fresh channel instance
func (m Model) handleConnected(msg connectedMsg) (tea.Model, tea.Cmd) {
	if m.channel != nil {
		m.channel.Close()
	}
	m.channel = msg.channel
	m.connState.SetConnected()
	return m, nil
}

// scheduleReconnect marks the channel down and arms the backoff timer
func (m Model) scheduleReconnect() (tea.Model, tea.Cmd) {
	m.connState.SetDisconnected()
	m.channel = nil
	attempt := m.connState.NextAttempt()
	delay := reconnectDelay(attempt)
	slog.Debug("scheduling realtime reconnect", "attempt", attempt, "delay", delay)
	return m, tea.Tick(delay, func(time.Time) tea.Msg {
		return reconnectMsg{}
	})
}

// handleBoardsLoaded opens the board picker
func (m Model) handleBoardsLoaded(msg boardsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.notificationState.Set("Could not load boards: "+msg.err.Error(), true)
		return m, nil
	}
	if len(msg.boards) == 0 {
		m.notificationState.Set("No boards", false)
		return m, nil
	}
	m.boards = make([]models.BoardSummary, len(msg.boards))
	m.pickerIndex = 0
	for i, b := range msg.boards {
		m.boards[i] = models.BoardSummary{ID: b.ID, Title: b.Title, Description: b.Description}
		if b.ID == m.boardID {
			m.pickerIndex = i
		}
	}
	m.uiState.SetMode(state.BoardPickerMode)
	return m, nil
}

// handleBoardSwitched swaps in the new board's store and reconnects the
// realtime channel to the new scope.
func (m Model) handleBoardSwitched(msg boardSwitchedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.notificationState.Set("Could not open board: "+msg.err.Error(), true)
		return m, nil
	}

	m.persistSnapshot()
	m.store.Close()
	if m.channel != nil {
		m.channel.Close()
		m.channel = nil
	}

	m.store = msg.store
	m.boardID = msg.boardID
	m.loaded = true
	m.snapshot = nil
	m.uiState.SetSelectedList(0)
	m.uiState.SetSelectedCard(0)
	m.uiState.SetViewportOffset(0)
	m.uiState.SetMode(state.NormalMode)
	m.clampSelection()
	return m, m.connectCmd()
}

// handleSearchResults shows the search result list
func (m Model) handleSearchResults(msg searchResultsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.notificationState.Set("Search failed: "+msg.err.Error(), true)
		m.uiState.SetMode(state.NormalMode)
		return m, nil
	}
	m.searchResults = msg.cards
	m.searchIndex = 0
	return m, nil
}
