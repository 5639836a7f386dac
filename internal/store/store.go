// Package store is the single mutable source of truth for one open board.
// It applies user intents optimistically, sequences the network calls that
// confirm them, rolls back on failure, and merges realtime notifications.
// The UI reads store state and never talks to the network itself.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tablero-dev/tablero/internal/models"
)

// Notification is pushed to the store's observer after every completed
// operation. Err is nil for a successful state change; for a rolled-back
// failure Err carries the cause and Message is human-readable.
type Notification struct {
	Err     error
	Message string
}

// Store holds one board's lists, cards, and labels.
// One store instance is owned by exactly one open board view; closing the
// view discards the instance and a new board open creates a new one.
type Store struct {
	mu sync.Mutex

	gw      Gateway
	boardID int
	notify  func(Notification)

	board  *models.Board
	lists  []*models.List          // position order
	cards  map[int][]*models.Card  // list ID -> cards in position order
	labels []*models.Label

	// detail is the currently open card's full view, nil when no card
	// modal is open
	detail *models.CardDetail

	// inflight holds the per-entity operation queues; the head of each
	// queue is executing (see inflight.go)
	inflight map[string][]*operation

	// draining marks keys with a live drainer goroutine so exactly one
	// drainer ever owns a queue
	draining map[string]bool

	// aliases maps provisional IDs to their confirmed server IDs so
	// queued operations resolve the right entity at execution time
	aliases map[int]int

	// pendingMoves counts queued moves per entity key. A failed move's
	// rollback consults it: a newer queued move supersedes the restore.
	pendingMoves map[string]int

	nextProvisional int
	closed          bool
	wg              sync.WaitGroup
}

// requestTimeout bounds every network call the store issues
const requestTimeout = 15 * time.Second

// New creates a store for one board. The notify callback receives a
// Notification after every completed operation; it is called without the
// store lock held and may read store state.
func New(gw Gateway, boardID int, notify func(Notification)) *Store {
	if notify == nil {
		notify = func(Notification) {}
	}
	return &Store{
		gw:              gw,
		boardID:         boardID,
		notify:          notify,
		cards:           make(map[int][]*models.Card),
		inflight:        make(map[string][]*operation),
		draining:        make(map[string]bool),
		aliases:         make(map[int]int),
		pendingMoves:    make(map[string]int),
		nextProvisional: -1,
	}
}

// Load fetches the authoritative board state. Called once before the
// store is handed to the UI; a failure here means the board view should
// fall back to the prior view instead of rendering a broken board.
func (s *Store) Load(ctx context.Context) error {
	board, lists, err := s.gw.Board(ctx, s.boardID)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}

	cards := make(map[int][]*models.Card, len(lists))
	for _, list := range lists {
		listCards, err := s.gw.CardsByList(ctx, list.ID)
		if err != nil {
			return fmt.Errorf("load cards for list %d: %w", list.ID, err)
		}
		cards[list.ID] = listCards
	}

	labels, err := s.gw.LabelsByBoard(ctx, s.boardID)
	if err != nil {
		return fmt.Errorf("load labels: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = board
	s.lists = lists
	s.cards = cards
	s.labels = labels
	s.sortLocked()
	return nil
}

// Close detaches the store. Pending responses arriving afterwards are
// ignored, not applied.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Wait blocks until all in-flight operations have drained.
// Used by tests and at shutdown.
func (s *Store) Wait() {
	s.wg.Wait()
}

// Board returns the board header
func (s *Store) Board() *models.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

// Lists returns the board's lists in display order
func (s *Store) Lists() []*models.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.List, len(s.lists))
	copy(out, s.lists)
	return out
}

// Cards returns a list's cards in display order
func (s *Store) Cards(listID int) []*models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	cards := s.cards[listID]
	out := make([]*models.Card, len(cards))
	copy(out, cards)
	return out
}

// Labels returns the labels defined on the board
func (s *Store) Labels() []*models.Label {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Label, len(s.labels))
	copy(out, s.labels)
	return out
}

// Detail returns the open card's full view, nil when no card is open
func (s *Store) Detail() *models.CardDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detail
}

// FindCard locates a card and its list by card ID
func (s *Store) FindCard(cardID int) (*models.Card, *models.List, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findCardLocked(cardID)
}

func (s *Store) findCardLocked(cardID int) (*models.Card, *models.List, bool) {
	for _, list := range s.lists {
		for _, card := range s.cards[list.ID] {
			if card.ID == cardID {
				return card, list, true
			}
		}
	}
	return nil, nil, false
}

func (s *Store) findListLocked(listID int) (*models.List, int, bool) {
	for i, list := range s.lists {
		if list.ID == listID {
			return list, i, true
		}
	}
	return nil, 0, false
}

// sortLocked re-derives display order from positions after a load or a
// wholesale refresh. Optimistic mutations maintain order incrementally
// and renumber positions dense, so this only runs on server-shaped data.
func (s *Store) sortLocked() {
	sort.SliceStable(s.lists, func(i, j int) bool {
		return s.lists[i].Position < s.lists[j].Position
	})
	for id := range s.cards {
		cards := s.cards[id]
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Position < cards[j].Position
		})
	}
}

// resolve maps a possibly-provisional ID to the server ID. Fails when the
// entity's create has not confirmed yet (or was rolled back), which fails
// the dependent operation cleanly instead of sending a bogus ID.
func (s *Store) resolve(id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !models.Provisional(id) {
		return id, nil
	}
	if server, ok := s.aliases[id]; ok {
		return server, nil
	}
	return 0, fmt.Errorf("entity %d has no confirmed server id", id)
}
