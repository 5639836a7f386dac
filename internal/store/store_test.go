package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tablero-dev/tablero/internal/api"
	"github.com/tablero-dev/tablero/internal/models"
)

// fakeGateway is a scriptable in-memory Gateway. Calls can be failed
// one-shot per method or held on a shared gate channel to exercise the
// per-entity serialization.
type fakeGateway struct {
	mu       sync.Mutex
	nextID   int
	failNext map[string]error
	block    chan struct{}
	blockOn  map[string]chan struct{}
	calls    []string

	board  models.Board
	lists  []*models.List
	cards  map[int][]*models.Card
	labels []*models.Label

	createdLists []api.CreateListRequest
	createdCards []api.CreateCardRequest
	movedCards   []api.MoveCardRequest
	movedLists   []int
}

// newSeededGateway returns a board with two lists: the first holds two
// cards, the second is empty.
func newSeededGateway() *fakeGateway {
	return &fakeGateway{
		nextID:   1000,
		failNext: make(map[string]error),
		blockOn:  make(map[string]chan struct{}),
		board:    models.Board{ID: 1, Title: "Roadmap"},
		lists: []*models.List{
			{ID: 1, BoardID: 1, Title: "Todo", Position: 0},
			{ID: 2, BoardID: 1, Title: "Done", Position: 1},
		},
		cards: map[int][]*models.Card{
			1: {
				{ID: 10, ListID: 1, Title: "first", Position: 0},
				{ID: 11, ListID: 1, Title: "second", Position: 1},
			},
			2: nil,
		},
		labels: []*models.Label{
			{ID: 100, BoardID: 1, Name: "bug", Color: "#ff0000"},
		},
	}
}

// gate records the call, consumes any scripted failure, and parks the
// caller on the block channel when one is set.
func (g *fakeGateway) gate(ctx context.Context, method string) error {
	g.mu.Lock()
	g.calls = append(g.calls, method)
	err := g.failNext[method]
	delete(g.failNext, method)
	block := g.block
	if ch, ok := g.blockOn[method]; ok {
		block = ch
	}
	g.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (g *fakeGateway) fail(method string, err error) {
	g.mu.Lock()
	g.failNext[method] = err
	g.mu.Unlock()
}

func (g *fakeGateway) id() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	return g.nextID
}

func (g *fakeGateway) callCount(method string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (g *fakeGateway) Board(ctx context.Context, boardID int) (*models.Board, []*models.List, error) {
	if err := g.gate(ctx, "Board"); err != nil {
		return nil, nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	b := g.board
	lists := make([]*models.List, len(g.lists))
	for i, l := range g.lists {
		cp := *l
		lists[i] = &cp
	}
	return &b, lists, nil
}

func (g *fakeGateway) CardsByList(ctx context.Context, listID int) ([]*models.Card, error) {
	if err := g.gate(ctx, "CardsByList"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*models.Card, len(g.cards[listID]))
	for i, c := range g.cards[listID] {
		cp := *c
		out[i] = &cp
	}
	return out, nil
}

func (g *fakeGateway) LabelsByBoard(ctx context.Context, boardID int) ([]*models.Label, error) {
	if err := g.gate(ctx, "LabelsByBoard"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*models.Label, len(g.labels))
	copy(out, g.labels)
	return out, nil
}

func (g *fakeGateway) Card(ctx context.Context, cardID int) (*models.CardDetail, error) {
	if err := g.gate(ctx, "Card"); err != nil {
		return nil, err
	}
	return &models.CardDetail{ID: cardID, Title: "first"}, nil
}

func (g *fakeGateway) CreateList(ctx context.Context, req api.CreateListRequest) (*models.List, error) {
	if err := g.gate(ctx, "CreateList"); err != nil {
		return nil, err
	}
	g.mu.Lock()
	g.createdLists = append(g.createdLists, req)
	g.mu.Unlock()
	return &models.List{ID: g.id(), BoardID: req.BoardID, Title: req.Title, Position: req.Position}, nil
}

func (g *fakeGateway) UpdateList(ctx context.Context, listID int, req api.UpdateListRequest) (*models.List, error) {
	if err := g.gate(ctx, "UpdateList"); err != nil {
		return nil, err
	}
	return &models.List{ID: listID, Title: req.Title}, nil
}

func (g *fakeGateway) MoveList(ctx context.Context, listID, position int) error {
	if err := g.gate(ctx, "MoveList"); err != nil {
		return err
	}
	g.mu.Lock()
	g.movedLists = append(g.movedLists, listID)
	g.mu.Unlock()
	return nil
}

func (g *fakeGateway) DeleteList(ctx context.Context, listID int) error {
	return g.gate(ctx, "DeleteList")
}

func (g *fakeGateway) CreateCard(ctx context.Context, req api.CreateCardRequest) (*models.Card, error) {
	if err := g.gate(ctx, "CreateCard"); err != nil {
		return nil, err
	}
	card := &models.Card{ID: g.id(), ListID: req.ListID, Title: req.Title, Position: req.Position}
	g.mu.Lock()
	g.createdCards = append(g.createdCards, req)
	g.cards[req.ListID] = append(g.cards[req.ListID], card)
	g.mu.Unlock()
	return card, nil
}

func (g *fakeGateway) UpdateCard(ctx context.Context, cardID int, req api.UpdateCardRequest) (*models.Card, error) {
	if err := g.gate(ctx, "UpdateCard"); err != nil {
		return nil, err
	}
	return &models.Card{ID: cardID, Title: req.Title}, nil
}

func (g *fakeGateway) MoveCard(ctx context.Context, cardID int, req api.MoveCardRequest) error {
	if err := g.gate(ctx, "MoveCard"); err != nil {
		return err
	}
	g.mu.Lock()
	g.movedCards = append(g.movedCards, req)
	g.mu.Unlock()
	return nil
}

func (g *fakeGateway) DeleteCard(ctx context.Context, cardID int) error {
	return g.gate(ctx, "DeleteCard")
}

func (g *fakeGateway) CreateComment(ctx context.Context, cardID int, content string) (*models.Comment, error) {
	if err := g.gate(ctx, "CreateComment"); err != nil {
		return nil, err
	}
	return &models.Comment{ID: g.id(), CardID: cardID, Content: content}, nil
}

func (g *fakeGateway) UpdateComment(ctx context.Context, commentID int, content string) (*models.Comment, error) {
	if err := g.gate(ctx, "UpdateComment"); err != nil {
		return nil, err
	}
	return &models.Comment{ID: commentID, Content: content}, nil
}

func (g *fakeGateway) DeleteComment(ctx context.Context, commentID int) error {
	return g.gate(ctx, "DeleteComment")
}

func (g *fakeGateway) AttachLabel(ctx context.Context, cardID, labelID int) error {
	return g.gate(ctx, "AttachLabel")
}

func (g *fakeGateway) DetachLabel(ctx context.Context, cardID, labelID int) error {
	return g.gate(ctx, "DetachLabel")
}

func (g *fakeGateway) UploadAttachment(ctx context.Context, cardID int, filename string, content []byte) (*models.Attachment, error) {
	if err := g.gate(ctx, "UploadAttachment"); err != nil {
		return nil, err
	}
	return &models.Attachment{ID: g.id(), CardID: cardID, Filename: filename, FileSize: int64(len(content))}, nil
}

func (g *fakeGateway) DeleteAttachment(ctx context.Context, attachmentID int) error {
	return g.gate(ctx, "DeleteAttachment")
}

// notifications is a threadsafe sink for store notifications
type notifications struct {
	mu    sync.Mutex
	items []Notification
}

func (n *notifications) add(note Notification) {
	n.mu.Lock()
	n.items = append(n.items, note)
	n.mu.Unlock()
}

func (n *notifications) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.items)
}

func (n *notifications) failures() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []Notification
	for _, note := range n.items {
		if note.Err != nil {
			out = append(out, note)
		}
	}
	return out
}

func newTestStore(t *testing.T, gw *fakeGateway) (*Store, *notifications) {
	t.Helper()
	notes := &notifications{}
	s := New(gw, 1, notes.add)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	t.Cleanup(s.Close)
	return s, notes
}

// cardTitles flattens a list's cards for ordering assertions
func cardTitles(s *Store, listID int) []string {
	cards := s.Cards(listID)
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Title
	}
	return out
}

func sameTitles(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// checkInvariants asserts that every card's ListID matches its holding
// list and positions are dense, after any sequence of operations.
func checkInvariants(t *testing.T, s *Store) {
	t.Helper()
	for i, list := range s.Lists() {
		if list.Position != i {
			t.Errorf("list %q position = %d, want %d", list.Title, list.Position, i)
		}
		for j, card := range s.Cards(list.ID) {
			if card.ListID != list.ID {
				t.Errorf("card %q ListID = %d, want %d", card.Title, card.ListID, list.ID)
			}
			if card.Position != j {
				t.Errorf("card %q position = %d, want %d", card.Title, card.Position, j)
			}
		}
	}
}

func TestLoadSortsByPosition(t *testing.T) {
	gw := newSeededGateway()
	gw.lists[0].Position, gw.lists[1].Position = 1, 0
	gw.cards[1][0].Position, gw.cards[1][1].Position = 1, 0

	s, _ := newTestStore(t, gw)

	lists := s.Lists()
	if lists[0].Title != "Done" || lists[1].Title != "Todo" {
		t.Errorf("lists = [%s %s], want position order", lists[0].Title, lists[1].Title)
	}
	if got := cardTitles(s, 1); !sameTitles(got, []string{"second", "first"}) {
		t.Errorf("cards = %v, want position order", got)
	}
}

func TestCreateCardConfirmSwapsProvisionalID(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)

	if err := s.CreateCard(1, "third"); err != nil {
		t.Fatalf("CreateCard() failed: %v", err)
	}

	// Visible immediately under a provisional ID
	cards := s.Cards(1)
	if len(cards) != 3 {
		t.Fatalf("len(cards) = %d, want 3", len(cards))
	}
	if !models.Provisional(cards[2].ID) {
		t.Errorf("new card ID = %d, want provisional", cards[2].ID)
	}

	s.Wait()
	cards = s.Cards(1)
	if models.Provisional(cards[2].ID) {
		t.Errorf("card ID = %d, still provisional after confirm", cards[2].ID)
	}
	checkInvariants(t, s)
}

func TestCreateCardRollbackLeavesNoPhantom(t *testing.T) {
	gw := newSeededGateway()
	gw.fail("CreateCard", errors.New("boom"))
	s, notes := newTestStore(t, gw)

	if err := s.CreateCard(1, "doomed"); err != nil {
		t.Fatalf("CreateCard() failed: %v", err)
	}
	s.Wait()

	if got := cardTitles(s, 1); !sameTitles(got, []string{"first", "second"}) {
		t.Errorf("cards = %v, phantom survived rollback", got)
	}
	if len(notes.failures()) != 1 {
		t.Errorf("failures = %d, want 1", len(notes.failures()))
	}
	checkInvariants(t, s)
}

func TestCreateCardEmptyTitleRejected(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)

	if err := s.CreateCard(1, "  "); !errors.Is(err, models.ErrEmptyTitle) {
		t.Errorf("err = %v, want ErrEmptyTitle", err)
	}
	if gw.callCount("CreateCard") != 0 {
		t.Error("invalid title reached the network")
	}
}

func TestMoveCardAcrossLists(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)

	if err := s.MoveCard(10, 2, 0); err != nil {
		t.Fatalf("MoveCard() failed: %v", err)
	}

	// Applied before the server answers
	if got := cardTitles(s, 1); !sameTitles(got, []string{"second"}) {
		t.Errorf("source = %v", got)
	}
	if got := cardTitles(s, 2); !sameTitles(got, []string{"first"}) {
		t.Errorf("target = %v", got)
	}
	checkInvariants(t, s)

	s.Wait()
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if len(gw.movedCards) != 1 || gw.movedCards[0].ListID != 2 || gw.movedCards[0].Position != 0 {
		t.Errorf("moves = %+v, want one move to list 2 position 0", gw.movedCards)
	}
}

func TestMoveCardClampsPosition(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)

	if err := s.MoveCard(10, 2, 99); err != nil {
		t.Fatalf("MoveCard() failed: %v", err)
	}
	if got := cardTitles(s, 2); !sameTitles(got, []string{"first"}) {
		t.Errorf("target = %v", got)
	}
	checkInvariants(t, s)
}

func TestMoveCardRollbackRestoresBothLists(t *testing.T) {
	gw := newSeededGateway()
	gw.fail("MoveCard", errors.New("conflict"))
	s, notes := newTestStore(t, gw)

	if err := s.MoveCard(10, 2, 0); err != nil {
		t.Fatalf("MoveCard() failed: %v", err)
	}
	s.Wait()

	if got := cardTitles(s, 1); !sameTitles(got, []string{"first", "second"}) {
		t.Errorf("source after rollback = %v", got)
	}
	if got := cardTitles(s, 2); len(got) != 0 {
		t.Errorf("target after rollback = %v, want empty", got)
	}
	if len(notes.failures()) != 1 {
		t.Errorf("failures = %d, want 1", len(notes.failures()))
	}
	checkInvariants(t, s)
}

func TestMoveWithinListRoundTrip(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)

	if err := s.MoveCard(10, 1, 1); err != nil {
		t.Fatalf("MoveCard() failed: %v", err)
	}
	if got := cardTitles(s, 1); !sameTitles(got, []string{"second", "first"}) {
		t.Errorf("after move = %v", got)
	}
	if err := s.MoveCard(10, 1, 0); err != nil {
		t.Fatalf("MoveCard() back failed: %v", err)
	}
	s.Wait()

	if got := cardTitles(s, 1); !sameTitles(got, []string{"first", "second"}) {
		t.Errorf("after round trip = %v, want original order", got)
	}
	checkInvariants(t, s)
}

func TestSameCardMovesSerialize(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)
	release := make(chan struct{})
	gw.block = release

	if err := s.MoveCard(10, 2, 0); err != nil {
		t.Fatalf("first MoveCard() failed: %v", err)
	}
	if err := s.MoveCard(10, 1, 0); err != nil {
		t.Fatalf("second MoveCard() failed: %v", err)
	}

	// Second move is queued, not yet on the wire
	if n := gw.callCount("MoveCard"); n > 1 {
		t.Errorf("MoveCard calls before release = %d, want at most 1", n)
	}

	close(release)
	s.Wait()

	gw.mu.Lock()
	moves := gw.movedCards
	gw.mu.Unlock()
	if len(moves) != 2 || moves[0].ListID != 2 || moves[1].ListID != 1 {
		t.Errorf("moves = %+v, want serialized [to 2, to 1]", moves)
	}
	if got := cardTitles(s, 1); !sameTitles(got, []string{"first", "second"}) {
		t.Errorf("final = %v, want the second move's outcome", got)
	}
	checkInvariants(t, s)
}

func TestQueuedMoveFailureKeepsSingleHolder(t *testing.T) {
	gw := newSeededGateway()
	gw.lists = append(gw.lists, &models.List{ID: 3, BoardID: 1, Title: "Later", Position: 2})
	gw.cards[3] = nil
	gw.fail("MoveCard", errors.New("conflict"))
	s, notes := newTestStore(t, gw)
	release := make(chan struct{})
	gw.block = release

	// The first move will fail; the second is already queued and
	// optimistically applied when the failure lands
	if err := s.MoveCard(10, 2, 0); err != nil {
		t.Fatalf("first MoveCard() failed: %v", err)
	}
	if err := s.MoveCard(10, 3, 0); err != nil {
		t.Fatalf("second MoveCard() failed: %v", err)
	}
	close(release)
	s.Wait()

	holders := 0
	for _, list := range s.Lists() {
		for _, c := range s.Cards(list.ID) {
			if c.ID == 10 {
				holders++
			}
		}
	}
	if holders != 1 {
		t.Fatalf("card 10 held by %d lists, want exactly 1", holders)
	}
	if got := cardTitles(s, 3); !sameTitles(got, []string{"first"}) {
		t.Errorf("list 3 = %v, want the surviving move's placement", got)
	}
	if len(notes.failures()) != 1 {
		t.Errorf("failures = %d, want 1", len(notes.failures()))
	}
	checkInvariants(t, s)
}

func TestMoveRollbackWhenSourceListDeleted(t *testing.T) {
	gw := newSeededGateway()
	gw.fail("MoveCard", errors.New("conflict"))
	s, _ := newTestStore(t, gw)
	release := make(chan struct{})
	gw.blockOn["MoveCard"] = release

	if err := s.MoveCard(10, 2, 0); err != nil {
		t.Fatalf("MoveCard() failed: %v", err)
	}
	if err := s.DeleteList(1); err != nil {
		t.Fatalf("DeleteList() failed: %v", err)
	}
	close(release)
	s.Wait()

	// The failed move cannot restore into a list that no longer exists;
	// the card drops out instead of resurrecting the list
	if _, _, found := s.FindCard(10); found {
		t.Error("card 10 restored into a deleted list")
	}
	checkInvariants(t, s)
}

func TestMoveListRollbackRestoresOrder(t *testing.T) {
	gw := newSeededGateway()
	gw.fail("MoveList", errors.New("boom"))
	s, _ := newTestStore(t, gw)

	if err := s.MoveList(1, 1); err != nil {
		t.Fatalf("MoveList() failed: %v", err)
	}
	if lists := s.Lists(); lists[0].Title != "Done" {
		t.Fatalf("optimistic order = [%s %s], want Done first", lists[0].Title, lists[1].Title)
	}
	s.Wait()

	lists := s.Lists()
	if lists[0].Title != "Todo" || lists[1].Title != "Done" {
		t.Errorf("order after rollback = [%s %s], want [Todo Done]", lists[0].Title, lists[1].Title)
	}
	checkInvariants(t, s)
}

func TestDeleteListRollbackSkipsCardsHeldElsewhere(t *testing.T) {
	gw := newSeededGateway()
	s, notes := newTestStore(t, gw)

	if err := s.MoveCard(10, 2, 0); err != nil {
		t.Fatalf("MoveCard() failed: %v", err)
	}
	s.Wait()

	gw.fail("MoveCard", errors.New("conflict"))
	gw.fail("DeleteList", errors.New("boom"))
	if err := s.MoveCard(10, 1, 0); err != nil {
		t.Fatalf("MoveCard() back failed: %v", err)
	}
	if err := s.DeleteList(1); err != nil {
		t.Fatalf("DeleteList() failed: %v", err)
	}
	s.Wait()

	// Both failed: the delete's rollback must not restore a copy of the
	// card the move's rollback already placed back in its source list
	holders := 0
	for _, list := range s.Lists() {
		for _, c := range s.Cards(list.ID) {
			if c.ID == 10 {
				holders++
			}
		}
	}
	if holders != 1 {
		t.Fatalf("card 10 held by %d lists, want exactly 1", holders)
	}
	if got := cardTitles(s, 2); !sameTitles(got, []string{"first"}) {
		t.Errorf("Done = %v, want [first]", got)
	}
	if got := cardTitles(s, 1); !sameTitles(got, []string{"second"}) {
		t.Errorf("Todo = %v, want [second]", got)
	}
	if len(notes.failures()) != 2 {
		t.Errorf("failures = %d, want 2", len(notes.failures()))
	}
	checkInvariants(t, s)
}

func TestDeleteListCascadesLocally(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)

	if err := s.DeleteList(1); err != nil {
		t.Fatalf("DeleteList() failed: %v", err)
	}
	if len(s.Lists()) != 1 || len(s.Cards(1)) != 0 {
		t.Error("list and its cards should vanish together")
	}
	s.Wait()
	checkInvariants(t, s)
}

func TestDeleteListRollbackRestoresCards(t *testing.T) {
	gw := newSeededGateway()
	gw.fail("DeleteList", errors.New("boom"))
	s, _ := newTestStore(t, gw)

	if err := s.DeleteList(1); err != nil {
		t.Fatalf("DeleteList() failed: %v", err)
	}
	s.Wait()

	lists := s.Lists()
	if len(lists) != 2 || lists[0].Title != "Todo" {
		t.Errorf("lists after rollback = %d, want Todo restored first", len(lists))
	}
	if got := cardTitles(s, 1); !sameTitles(got, []string{"first", "second"}) {
		t.Errorf("cards after rollback = %v", got)
	}
	checkInvariants(t, s)
}

func TestCreateCardOnProvisionalListQueuesBehindCreate(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)
	release := make(chan struct{})
	gw.block = release

	if err := s.CreateList("Backlog"); err != nil {
		t.Fatalf("CreateList() failed: %v", err)
	}
	lists := s.Lists()
	provisionalID := lists[len(lists)-1].ID
	if !models.Provisional(provisionalID) {
		t.Fatalf("new list ID = %d, want provisional", provisionalID)
	}

	if err := s.CreateCard(provisionalID, "queued"); err != nil {
		t.Fatalf("CreateCard() failed: %v", err)
	}
	if n := gw.callCount("CreateCard"); n != 0 {
		t.Errorf("CreateCard reached the wire before the list confirmed")
	}

	close(release)
	s.Wait()

	gw.mu.Lock()
	created := gw.createdCards
	gw.mu.Unlock()
	if len(created) != 1 || models.Provisional(created[0].ListID) {
		t.Errorf("created = %+v, want one card on the confirmed list ID", created)
	}
	checkInvariants(t, s)
}

func TestLateResponseAfterCloseIgnored(t *testing.T) {
	gw := newSeededGateway()
	s, notes := newTestStore(t, gw)
	release := make(chan struct{})
	gw.block = release
	gw.fail("MoveCard", errors.New("too late"))

	if err := s.MoveCard(10, 2, 0); err != nil {
		t.Fatalf("MoveCard() failed: %v", err)
	}
	s.Close()
	close(release)
	s.Wait()

	// Neither rollback nor failure notification after close
	if got := cardTitles(s, 2); !sameTitles(got, []string{"first"}) {
		t.Errorf("state changed after close: %v", got)
	}
	if len(notes.failures()) != 0 {
		t.Errorf("failures after close = %d, want 0", len(notes.failures()))
	}
}

func TestAddCommentRollbackRestoresCount(t *testing.T) {
	gw := newSeededGateway()
	gw.fail("CreateComment", errors.New("boom"))
	s, _ := newTestStore(t, gw)

	if err := s.AddComment(10, models.UserRef{ID: 1, Username: "ana"}, "hello"); err != nil {
		t.Fatalf("AddComment() failed: %v", err)
	}
	card, _, _ := s.FindCard(10)
	if card.CommentCount != 1 {
		t.Errorf("CommentCount = %d, want optimistic 1", card.CommentCount)
	}
	s.Wait()
	card, _, _ = s.FindCard(10)
	if card.CommentCount != 0 {
		t.Errorf("CommentCount = %d after rollback, want 0", card.CommentCount)
	}
}

func TestUpdateCommentRollbackRestoresContent(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)

	if err := s.OpenCard(10); err != nil {
		t.Fatalf("OpenCard() failed: %v", err)
	}
	s.Wait()
	if err := s.AddComment(10, models.UserRef{ID: 1, Username: "ana"}, "original"); err != nil {
		t.Fatalf("AddComment() failed: %v", err)
	}
	s.Wait()
	commentID := s.Detail().Comments[0].ID

	gw.fail("UpdateComment", errors.New("boom"))
	if err := s.UpdateComment(10, commentID, "edited"); err != nil {
		t.Fatalf("UpdateComment() failed: %v", err)
	}
	if got := s.Detail().Comments[0].Content; got != "edited" {
		t.Errorf("content = %q before settle, want optimistic edit", got)
	}
	s.Wait()

	if got := s.Detail().Comments[0].Content; got != "original" {
		t.Errorf("content = %q after rollback, want %q", got, "original")
	}
}

func TestAttachLabelRequiresBoardLabel(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)

	if err := s.AttachLabel(10, 999); err == nil {
		t.Error("attaching a label not on the board should fail")
	}
	if err := s.AttachLabel(10, 100); err != nil {
		t.Fatalf("AttachLabel() failed: %v", err)
	}
	s.Wait()
	card, _, _ := s.FindCard(10)
	if len(card.Labels) != 1 || card.Labels[0].Name != "bug" {
		t.Errorf("labels = %+v, want [bug]", card.Labels)
	}
}

func TestOversizedUploadRejected(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)

	big := make([]byte, models.MaxAttachmentSize+1)
	if err := s.UploadAttachment(10, "big.bin", big); !errors.Is(err, models.ErrAttachmentTooLarge) {
		t.Errorf("err = %v, want ErrAttachmentTooLarge", err)
	}
	if gw.callCount("UploadAttachment") != 0 {
		t.Error("oversized upload reached the network")
	}
}
