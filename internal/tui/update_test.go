package tui

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/tablero-dev/tablero/internal/api"
	"github.com/tablero-dev/tablero/internal/config"
	"github.com/tablero-dev/tablero/internal/models"
	"github.com/tablero-dev/tablero/internal/realtime"
	"github.com/tablero-dev/tablero/internal/session"
	"github.com/tablero-dev/tablero/internal/store"
	"github.com/tablero-dev/tablero/internal/tui/state"
)

// stubGateway serves a fixed board and accepts every mutation.
// The model tests exercise interaction logic, not the optimistic
// protocol, which has its own tests in the store package.
type stubGateway struct {
	nextID int
}

func (g *stubGateway) Board(ctx context.Context, boardID int) (*models.Board, []*models.List, error) {
	return &models.Board{ID: 1, Title: "Roadmap"}, []*models.List{
		{ID: 1, BoardID: 1, Title: "Todo", Position: 0},
		{ID: 2, BoardID: 1, Title: "Done", Position: 1},
	}, nil
}

func (g *stubGateway) CardsByList(ctx context.Context, listID int) ([]*models.Card, error) {
	if listID == 1 {
		return []*models.Card{
			{ID: 10, ListID: 1, Title: "first", Position: 0},
			{ID: 11, ListID: 1, Title: "second", Position: 1},
		}, nil
	}
	return nil, nil
}

func (g *stubGateway) LabelsByBoard(ctx context.Context, boardID int) ([]*models.Label, error) {
	return []*models.Label{{ID: 100, BoardID: 1, Name: "bug", Color: "#ff0000"}}, nil
}

func (g *stubGateway) Card(ctx context.Context, cardID int) (*models.CardDetail, error) {
	return &models.CardDetail{ID: cardID, ListID: 1, Title: "first", Comments: []*models.Comment{
		{ID: 500, CardID: cardID, Author: models.UserRef{ID: 7, Username: "ana"}, Content: "looks good"},
	}}, nil
}

func (g *stubGateway) CreateList(ctx context.Context, req api.CreateListRequest) (*models.List, error) {
	g.nextID++
	return &models.List{ID: 1000 + g.nextID, BoardID: req.BoardID, Title: req.Title, Position: req.Position}, nil
}

func (g *stubGateway) UpdateList(ctx context.Context, listID int, req api.UpdateListRequest) (*models.List, error) {
	return &models.List{ID: listID, Title: req.Title}, nil
}

func (g *stubGateway) MoveList(ctx context.Context, listID, position int) error { return nil }

func (g *stubGateway) DeleteList(ctx context.Context, listID int) error { return nil }

func (g *stubGateway) CreateCard(ctx context.Context, req api.CreateCardRequest) (*models.Card, error) {
	g.nextID++
	return &models.Card{ID: 2000 + g.nextID, ListID: req.ListID, Title: req.Title, Position: req.Position}, nil
}

func (g *stubGateway) UpdateCard(ctx context.Context, cardID int, req api.UpdateCardRequest) (*models.Card, error) {
	return &models.Card{ID: cardID, Title: req.Title}, nil
}

func (g *stubGateway) MoveCard(ctx context.Context, cardID int, req api.MoveCardRequest) error {
	return nil
}

func (g *stubGateway) DeleteCard(ctx context.Context, cardID int) error { return nil }

func (g *stubGateway) CreateComment(ctx context.Context, cardID int, content string) (*models.Comment, error) {
	g.nextID++
	return &models.Comment{ID: 3000 + g.nextID, CardID: cardID, Content: content}, nil
}

func (g *stubGateway) UpdateComment(ctx context.Context, commentID int, content string) (*models.Comment, error) {
	return &models.Comment{ID: commentID, Content: content}, nil
}

func (g *stubGateway) DeleteComment(ctx context.Context, commentID int) error { return nil }

func (g *stubGateway) AttachLabel(ctx context.Context, cardID, labelID int) error { return nil }

func (g *stubGateway) DetachLabel(ctx context.Context, cardID, labelID int) error { return nil }

func (g *stubGateway) UploadAttachment(ctx context.Context, cardID int, filename string, content []byte) (*models.Attachment, error) {
	g.nextID++
	return &models.Attachment{ID: 4000 + g.nextID, CardID: cardID, Filename: filename}, nil
}

func (g *stubGateway) DeleteAttachment(ctx context.Context, attachmentID int) error { return nil }

// setupTestModel builds a loaded model over the stub gateway
func setupTestModel(t *testing.T) Model {
	t.Helper()

	cfg := &config.Config{
		KeyMappings: config.DefaultKeyMappings(),
		ColorScheme: config.DefaultColorScheme(),
	}
	msgCh := make(chan tea.Msg, 256)
	st := store.New(&stubGateway{}, 1, func(note store.Notification) {
		pushMsg(msgCh, storeChangedMsg{note: note})
	})
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	t.Cleanup(st.Close)

	m := Model{
		config:            cfg,
		sess:              session.Session{UserID: 7, Username: "ana"},
		store:             st,
		boardID:           1,
		uiState:           state.NewUIState(),
		notificationState: state.NewNotificationState(),
		connState:         state.NewConnectionState(),
		msgCh:             msgCh,
		loaded:            true,
	}
	m.uiState.SetSize(120, 40)
	return m
}

func keyPress(key string) tea.Msg {
	if len(key) == 1 {
		r := rune(key[0])
		return tea.KeyPressMsg(tea.Key{Text: key, Code: r})
	}
	switch key {
	case "esc":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEsc})
	case "enter":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
	}
	return tea.KeyPressMsg(tea.Key{Text: key})
}

func asModel(t *testing.T, m tea.Model) Model {
	t.Helper()
	out, ok := m.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", m)
	}
	return out
}

func TestWindowSizeUpdatesUIState(t *testing.T) {
	m := setupTestModel(t)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = asModel(t, newModel)

	if m.uiState.Width() != 80 || m.uiState.Height() != 24 {
		t.Errorf("size = %dx%d, want 80x24", m.uiState.Width(), m.uiState.Height())
	}
}

func TestNavigateRightSwitchesList(t *testing.T) {
	m := setupTestModel(t)

	newModel, _ := m.Update(keyPress("l"))
	m = asModel(t, newModel)

	if m.uiState.SelectedList() != 1 {
		t.Errorf("SelectedList() = %d, want 1", m.uiState.SelectedList())
	}
	if m.uiState.SelectedCard() != 0 {
		t.Errorf("SelectedCard() = %d, want 0", m.uiState.SelectedCard())
	}
}

func TestNavigateRightStopsAtLastList(t *testing.T) {
	m := setupTestModel(t)
	m.uiState.SetSelectedList(1)

	newModel, _ := m.Update(keyPress("l"))
	m = asModel(t, newModel)

	if m.uiState.SelectedList() != 1 {
		t.Errorf("SelectedList() = %d, want 1", m.uiState.SelectedList())
	}
}

func TestGrabEntersGrabMode(t *testing.T) {
	m := setupTestModel(t)

	newModel, _ := m.Update(keyPress("g"))
	m = asModel(t, newModel)

	if m.uiState.Mode() != state.GrabMode {
		t.Fatalf("Mode() = %v, want GrabMode", m.uiState.Mode())
	}
	if m.uiState.GrabbedCard() != 10 {
		t.Errorf("GrabbedCard() = %d, want 10", m.uiState.GrabbedCard())
	}
}

func TestGrabOnEmptyListDoesNothing(t *testing.T) {
	m := setupTestModel(t)
	m.uiState.SetSelectedList(1) // Done has no cards

	newModel, _ := m.Update(keyPress("g"))
	m = asModel(t, newModel)

	if m.uiState.Mode() != state.NormalMode {
		t.Errorf("Mode() = %v, want NormalMode", m.uiState.Mode())
	}
}

func TestGrabMoveDownReordersCards(t *testing.T) {
	m := setupTestModel(t)

	newModel, _ := m.Update(keyPress("g"))
	m = asModel(t, newModel)
	newModel, _ = m.Update(keyPress("j"))
	m = asModel(t, newModel)

	cards := m.store.Cards(1)
	if len(cards) != 2 || cards[0].Title != "second" || cards[1].Title != "first" {
		titles := make([]string, len(cards))
		for i, c := range cards {
			titles[i] = c.Title
		}
		t.Errorf("cards after grab-down = %v, want [second first]", titles)
	}
	if m.uiState.SelectedCard() != 1 {
		t.Errorf("SelectedCard() = %d, want 1 (cursor follows the card)", m.uiState.SelectedCard())
	}
	if m.uiState.Mode() != state.GrabMode {
		t.Errorf("Mode() = %v, want GrabMode (grab persists across moves)", m.uiState.Mode())
	}
	m.store.Wait()
}

func TestGrabMoveRightSendsCardToNextList(t *testing.T) {
	m := setupTestModel(t)

	newModel, _ := m.Update(keyPress("g"))
	m = asModel(t, newModel)
	newModel, _ = m.Update(keyPress("l"))
	m = asModel(t, newModel)

	if got := len(m.store.Cards(2)); got != 1 {
		t.Fatalf("len(Cards(2)) = %d, want 1", got)
	}
	if m.uiState.SelectedList() != 1 {
		t.Errorf("SelectedList() = %d, want 1", m.uiState.SelectedList())
	}
	m.store.Wait()
}

func TestGrabReleaseReturnsToNormal(t *testing.T) {
	m := setupTestModel(t)

	newModel, _ := m.Update(keyPress("g"))
	m = asModel(t, newModel)
	newModel, _ = m.Update(keyPress("g"))
	m = asModel(t, newModel)

	if m.uiState.Mode() != state.NormalMode {
		t.Errorf("Mode() = %v, want NormalMode", m.uiState.Mode())
	}
	if m.uiState.GrabbedCard() != 0 {
		t.Errorf("GrabbedCard() = %d, want 0", m.uiState.GrabbedCard())
	}
}

func TestNewCardOpensForm(t *testing.T) {
	m := setupTestModel(t)

	newModel, _ := m.Update(keyPress("n"))
	m = asModel(t, newModel)

	if m.uiState.Mode() != state.CardFormMode {
		t.Fatalf("Mode() = %v, want CardFormMode", m.uiState.Mode())
	}
	if m.form == nil {
		t.Error("form is nil after opening card form")
	}
	if m.editingListID != 1 {
		t.Errorf("editingListID = %d, want 1", m.editingListID)
	}
}

func TestEscClosesForm(t *testing.T) {
	m := setupTestModel(t)

	newModel, _ := m.Update(keyPress("n"))
	m = asModel(t, newModel)
	newModel, _ = m.Update(keyPress("esc"))
	m = asModel(t, newModel)

	if m.uiState.Mode() != state.NormalMode {
		t.Errorf("Mode() = %v, want NormalMode", m.uiState.Mode())
	}
	if m.form != nil {
		t.Error("form still set after esc")
	}
}

func TestDeleteOpensConfirmForCard(t *testing.T) {
	m := setupTestModel(t)

	newModel, _ := m.Update(keyPress("d"))
	m = asModel(t, newModel)

	if m.uiState.Mode() != state.DeleteConfirmMode {
		t.Fatalf("Mode() = %v, want DeleteConfirmMode", m.uiState.Mode())
	}
	if m.confirmKind != confirmCard || m.confirmID != 10 {
		t.Errorf("confirm = (%v, %d), want (confirmCard, 10)", m.confirmKind, m.confirmID)
	}
}

func TestConfirmDeleteRemovesCard(t *testing.T) {
	m := setupTestModel(t)

	newModel, _ := m.Update(keyPress("d"))
	m = asModel(t, newModel)
	newModel, _ = m.Update(keyPress("y"))
	m = asModel(t, newModel)

	if got := len(m.store.Cards(1)); got != 1 {
		t.Errorf("len(Cards(1)) = %d, want 1", got)
	}
	if m.uiState.Mode() != state.NormalMode {
		t.Errorf("Mode() = %v, want NormalMode", m.uiState.Mode())
	}
	m.store.Wait()
}

func TestCancelDeleteKeepsCard(t *testing.T) {
	m := setupTestModel(t)

	newModel, _ := m.Update(keyPress("d"))
	m = asModel(t, newModel)
	newModel, _ = m.Update(keyPress("n"))
	m = asModel(t, newModel)

	if got := len(m.store.Cards(1)); got != 2 {
		t.Errorf("len(Cards(1)) = %d, want 2", got)
	}
	if m.uiState.Mode() != state.NormalMode {
		t.Errorf("Mode() = %v, want NormalMode", m.uiState.Mode())
	}
}

func TestDeleteOnEmptyListTargetsList(t *testing.T) {
	m := setupTestModel(t)
	m.uiState.SetSelectedList(1)

	newModel, _ := m.Update(keyPress("d"))
	m = asModel(t, newModel)

	if m.confirmKind != confirmList || m.confirmID != 2 {
		t.Errorf("confirm = (%v, %d), want (confirmList, 2)", m.confirmKind, m.confirmID)
	}
}

func TestMoveListRightReordersLists(t *testing.T) {
	m := setupTestModel(t)

	newModel, _ := m.Update(keyPress(">"))
	m = asModel(t, newModel)

	lists := m.store.Lists()
	if lists[0].Title != "Done" || lists[1].Title != "Todo" {
		t.Errorf("lists = [%s %s], want [Done Todo]", lists[0].Title, lists[1].Title)
	}
	if m.uiState.SelectedList() != 1 {
		t.Errorf("SelectedList() = %d, want 1 (cursor follows the list)", m.uiState.SelectedList())
	}
	m.store.Wait()
}

func TestMoveListLeftAtEdgeDoesNothing(t *testing.T) {
	m := setupTestModel(t)

	newModel, _ := m.Update(keyPress("<"))
	m = asModel(t, newModel)

	if lists := m.store.Lists(); lists[0].Title != "Todo" {
		t.Errorf("lists reordered at the left edge, first = %s", lists[0].Title)
	}
	if m.uiState.SelectedList() != 0 {
		t.Errorf("SelectedList() = %d, want 0", m.uiState.SelectedList())
	}
}

func TestBoardsLoadedOpensPickerWithSummaries(t *testing.T) {
	m := setupTestModel(t)

	msg := boardsLoadedMsg{boards: []*models.Board{
		{ID: 1, Title: "Roadmap", OwnerID: 7},
		{ID: 2, Title: "Icebox", Description: "someday maybe", OwnerID: 7},
	}}
	newModel, _ := m.Update(msg)
	m = asModel(t, newModel)

	if m.uiState.Mode() != state.BoardPickerMode {
		t.Fatalf("Mode() = %v, want BoardPickerMode", m.uiState.Mode())
	}
	if m.pickerIndex != 0 {
		t.Errorf("pickerIndex = %d, want 0 (preselects the open board)", m.pickerIndex)
	}
	if len(m.boards) != 2 || m.boards[1].Description != "someday maybe" {
		t.Errorf("boards = %+v, want two summaries with descriptions", m.boards)
	}
}

func TestEditCommentOpensPrefilledForm(t *testing.T) {
	m := setupTestModel(t)

	newModel, _ := m.Update(keyPress("enter"))
	m = asModel(t, newModel)
	if m.uiState.Mode() != state.CardDetailMode {
		t.Fatalf("Mode() = %v, want CardDetailMode", m.uiState.Mode())
	}
	m.store.Wait()

	newModel, _ = m.Update(keyPress("E"))
	m = asModel(t, newModel)

	if m.uiState.Mode() != state.CommentFormMode {
		t.Fatalf("Mode() = %v, want CommentFormMode", m.uiState.Mode())
	}
	if m.formKind != formEditComment {
		t.Errorf("formKind = %v, want formEditComment", m.formKind)
	}
	if m.formContent != "looks good" {
		t.Errorf("formContent = %q, want the existing comment text", m.formContent)
	}
	if m.editingCommentID != 500 {
		t.Errorf("editingCommentID = %d, want 500", m.editingCommentID)
	}
}

func TestRemoteEventMergesAndRearmsPump(t *testing.T) {
	m := setupTestModel(t)

	event := realtime.Event{
		Type:    realtime.EventCardCreated,
		BoardID: 1,
		Data:    []byte(`{"id": 99, "list_id": 2, "title": "from elsewhere", "position": 0}`),
	}
	newModel, cmd := m.Update(remoteEventMsg{event: event})
	m = asModel(t, newModel)

	if got := len(m.store.Cards(2)); got != 1 {
		t.Errorf("len(Cards(2)) = %d, want 1 after remote create", got)
	}
	if cmd == nil {
		t.Error("Update returned nil cmd, want re-armed waitMsg")
	}
}

func TestStoreErrorSurfacesNotification(t *testing.T) {
	m := setupTestModel(t)

	note := store.Notification{Err: context.DeadlineExceeded, Message: "Failed to move card"}
	newModel, cmd := m.Update(storeChangedMsg{note: note})
	m = asModel(t, newModel)

	if m.notificationState.Message() != "Failed to move card" {
		t.Errorf("notification = %q, want the failure message", m.notificationState.Message())
	}
	if !m.notificationState.IsError() {
		t.Error("notification not marked as error")
	}
	if cmd == nil {
		t.Error("Update returned nil cmd, want re-armed waitMsg")
	}
}

func TestChannelClosedSchedulesReconnect(t *testing.T) {
	m := setupTestModel(t)
	channel := realtime.NewClient(session.Session{}, 1, nil)
	m.channel = channel
	m.connState.SetConnected()

	newModel, cmd := m.Update(channelClosedMsg{channel: channel})
	m = asModel(t, newModel)

	if m.connState.Connected() {
		t.Error("still marked connected after channel close")
	}
	if m.connState.Attempts() != 1 {
		t.Errorf("Attempts() = %d, want 1", m.connState.Attempts())
	}
	if cmd == nil {
		t.Error("no reconnect timer scheduled")
	}
}

func TestStaleChannelCloseIgnored(t *testing.T) {
	m := setupTestModel(t)
	current := realtime.NewClient(session.Session{}, 1, nil)
	stale := realtime.NewClient(session.Session{}, 1, nil)
	m.channel = current
	m.connState.SetConnected()

	newModel, _ := m.Update(channelClosedMsg{channel: stale})
	m = asModel(t, newModel)

	if !m.connState.Connected() {
		t.Error("stale close disconnected the live channel")
	}
}

func TestQuitKeyQuits(t *testing.T) {
	m := setupTestModel(t)

	_, cmd := m.Update(keyPress("q"))
	if cmd == nil {
		t.Fatal("quit returned nil cmd")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("cmd() = %v, want tea.QuitMsg", msg)
	}
}

func TestHelpOpensAndAnyKeyCloses(t *testing.T) {
	m := setupTestModel(t)

	newModel, _ := m.Update(keyPress("?"))
	m = asModel(t, newModel)
	if m.uiState.Mode() != state.HelpMode {
		t.Fatalf("Mode() = %v, want HelpMode", m.uiState.Mode())
	}

	newModel, _ = m.Update(keyPress("x"))
	m = asModel(t, newModel)
	if m.uiState.Mode() != state.NormalMode {
		t.Errorf("Mode() = %v, want NormalMode", m.uiState.Mode())
	}
}

func TestReconnectDelayBacksOffAndCaps(t *testing.T) {
	if reconnectDelay(1) >= reconnectDelay(3) {
		t.Error("delay does not grow with attempts")
	}
	if got := reconnectDelay(20); got.Seconds() != 30 {
		t.Errorf("reconnectDelay(20) = %v, want 30s cap", got)
	}
}
