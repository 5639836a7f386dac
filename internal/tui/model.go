// Package tui implements the interactive board view.
// It follows the Model-View-Update pattern: the store owns domain state,
// the model owns interaction state, and every state change flows through
// Update on the program goroutine.
package tui

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"

	"github.com/tablero-dev/tablero/internal/api"
	"github.com/tablero-dev/tablero/internal/cache"
	"github.com/tablero-dev/tablero/internal/config"
	"github.com/tablero-dev/tablero/internal/models"
	"github.com/tablero-dev/tablero/internal/realtime"
	"github.com/tablero-dev/tablero/internal/session"
	"github.com/tablero-dev/tablero/internal/store"
	"github.com/tablero-dev/tablero/internal/tui/state"
)

// formKind tells the shared form handler which form is open
type formKind int

const (
	formNone formKind = iota
	formNewCard
	formEditCard
	formNewList
	formRenameList
	formComment
	formEditComment
	formSearch
)

// confirmTarget tells the delete confirmation what it is deleting
type confirmTarget int

const (
	confirmCard confirmTarget = iota
	confirmList
	confirmComment
)

// Model represents the application state for the board view
type Model struct {
	config  *config.Config
	sess    session.Session
	client  *api.Client
	store   *store.Store
	channel *realtime.Client
	cache   *cache.Cache
	boardID int

	uiState           *state.UIState
	notificationState *state.NotificationState
	connState         *state.ConnectionState

	// msgCh funnels store notifications and realtime events into the
	// update loop; waitMsg re-arms after every receive
	msgCh chan tea.Msg

	// snapshot renders immediately while the authoritative load runs
	snapshot *cache.Snapshot
	loaded   bool

	form             *huh.Form
	formKind         formKind
	formTitle        string
	formDescription  string
	formContent      string
	searchQuery      string
	editingCardID    int
	editingListID    int
	editingCommentID int

	confirmKind  confirmTarget
	confirmID    int
	confirmTitle string

	boards      []models.BoardSummary
	pickerIndex int

	searchResults []*models.Card
	searchIndex   int

	// detailIndex selects a comment or attachment inside the open card;
	// comments come first, attachments after
	detailIndex int
}

// NewModel creates the board model. The store and realtime channel are
// wired to push into msgCh; nothing mutates the model off the program
// goroutine.
func NewModel(cfg *config.Config, sess session.Session, client *api.Client, snapshots *cache.Cache, boardID int) Model {
	msgCh := make(chan tea.Msg, 256)

	st := store.New(client, boardID, func(note store.Notification) {
		pushMsg(msgCh, storeChangedMsg{note: note})
	})

	return Model{
		config:            cfg,
		sess:              sess,
		client:            client,
		store:             st,
		cache:             snapshots,
		boardID:           boardID,
		uiState:           state.NewUIState(),
		notificationState: state.NewNotificationState(),
		connState:         state.NewConnectionState(),
		msgCh:             msgCh,
	}
}

// pushMsg delivers a message to the update loop without blocking the
// caller. Store drainers and the websocket read goroutine must never
// stall on a slow UI; dropping under a full backlog is acceptable
// because the store remains the source of truth for the next render.
func pushMsg(ch chan tea.Msg, msg tea.Msg) {
	select {
	case ch <- msg:
	default:
		slog.Warn("ui message dropped, channel full")
	}
}

// Init kicks off the cached render, the authoritative load, and the
// realtime connection.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadSnapshotCmd(),
		m.loadBoardCmd(),
		m.connectCmd(),
		m.waitMsg(),
	)
}

// waitMsg blocks on the next store or realtime message. Re-issued after
// each receive so the pump never stops.
func (m Model) waitMsg() tea.Cmd {
	ch := m.msgCh
	return func() tea.Msg {
		return <-ch
	}
}

// loadSnapshotCmd reads the cached board for an instant first paint
func (m Model) loadSnapshotCmd() tea.Cmd {
	if m.cache == nil {
		return nil
	}
	c, boardID := m.cache, m.boardID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		snap, err := c.Load(ctx, boardID)
		if err != nil {
			return snapshotMsg{}
		}
		return snapshotMsg{snap: snap}
	}
}

// loadBoardCmd fetches the authoritative board into the store
func (m Model) loadBoardCmd() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return boardLoadedMsg{err: st.Load(ctx)}
	}
}

// connectCmd dials a fresh realtime channel. A closed channel instance
// is never reused; every attempt builds a new one.
func (m Model) connectCmd() tea.Cmd {
	sess, boardID, ch := m.sess, m.boardID, m.msgCh
	return func() tea.Msg {
		client := realtime.NewClient(sess, boardID, func(e realtime.Event) {
			pushMsg(ch, remoteEventMsg{event: e})
		})
		client.OnClose(func() {
			pushMsg(ch, channelClosedMsg{channel: client})
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Connect(ctx); err != nil {
			return connectFailedMsg{err: err}
		}
		return connectedMsg{channel: client}
	}
}

// reconnectDelay is the exponential backoff for realtime reconnects
func reconnectDelay(attempt int) time.Duration {
	delay := 500 * time.Millisecond << (attempt - 1)
	if attempt > 7 || delay > 30*time.Second {
		return 30 * time.Second
	}
	return delay
}

// fetchBoardsCmd loads the board picker entries
func (m Model) fetchBoardsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		boards, err := client.Boards(ctx)
		return boardsLoadedMsg{boards: boards, err: err}
	}
}

// switchBoardCmd loads a new store for another board. The old store and
// channel are torn down by the caller once the new store is ready.
func (m Model) switchBoardCmd(boardID int) tea.Cmd {
	client, ch := m.client, m.msgCh
	return func() tea.Msg {
		st := store.New(client, boardID, func(note store.Notification) {
			pushMsg(ch, storeChangedMsg{note: note})
		})
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := st.Load(ctx); err != nil {
			return boardSwitchedMsg{err: err}
		}
		return boardSwitchedMsg{store: st, boardID: boardID}
	}
}

// searchCmd runs a card search scoped to the open board
func (m Model) searchCmd(query string) tea.Cmd {
	client, boardID := m.client, m.boardID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		cards, err := client.SearchCards(ctx, api.SearchParams{
			Query:   query,
			BoardID: boardID,
		})
		return searchResultsMsg{cards: cards, err: err}
	}
}

// persistSnapshot writes the current board to the offline cache.
// Called on quit and after board switches; failures are logged, never
// surfaced.
func (m Model) persistSnapshot() {
	if m.cache == nil || !m.loaded {
		return
	}
	board := m.store.Board()
	if board == nil {
		return
	}

	lists := m.store.Lists()
	cards := make(map[int][]*models.Card, len(lists))
	for _, list := range lists {
		cards[list.ID] = m.store.Cards(list.ID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := m.cache.Save(ctx, cache.Snapshot{
		BoardID: m.boardID,
		Board:   board,
		Lists:   lists,
		Cards:   cards,
		Labels:  m.store.Labels(),
		SavedAt: time.Now(),
	})
	if err != nil {
		slog.Warn("snapshot save failed", "board_id", m.boardID, "error", err)
	}
}

// lists returns the lists to render: store state once loaded, the cached
// snapshot before that.
func (m Model) lists() []*models.List {
	if m.loaded {
		return m.store.Lists()
	}
	if m.snapshot != nil {
		return m.snapshot.Lists
	}
	return nil
}

// cardsFor returns the cards to render for one list
func (m Model) cardsFor(listID int) []*models.Card {
	if m.loaded {
		return m.store.Cards(listID)
	}
	if m.snapshot != nil {
		return m.snapshot.Cards[listID]
	}
	return nil
}

// boardTitle returns the title for the status bar
func (m Model) boardTitle() string {
	if m.loaded {
		if b := m.store.Board(); b != nil {
			return b.Title
		}
	}
	if m.snapshot != nil && m.snapshot.Board != nil {
		return m.snapshot.Board.Title + " (cached)"
	}
	return "Loading board..."
}

// currentList returns the selected list, nil when the board is empty
func (m Model) currentList() *models.List {
	lists := m.lists()
	idx := m.uiState.SelectedList()
	if idx < 0 || idx >= len(lists) {
		return nil
	}
	return lists[idx]
}

// currentCard returns the selected card, nil when the list is empty
func (m Model) currentCard() *models.Card {
	list := m.currentList()
	if list == nil {
		return nil
	}
	cards := m.cardsFor(list.ID)
	idx := m.uiState.SelectedCard()
	if idx < 0 || idx >= len(cards) {
		return nil
	}
	return cards[idx]
}

// author builds the comment author from the logged-in session
func (m Model) author() models.UserRef {
	return models.UserRef{
		ID:       m.sess.UserID,
		Username: m.sess.Username,
	}
}

// clampSelection keeps the cursor valid after any state change
func (m *Model) clampSelection() {
	lists := m.lists()
	m.uiState.ClampSelection(len(lists), func(listIdx int) int {
		return len(m.cardsFor(lists[listIdx].ID))
	})
}
