package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/tablero-dev/tablero/internal/models"
	"github.com/tablero-dev/tablero/internal/realtime"
)

// Remote event payloads. The server embeds the affected entity in the
// event's data field; a missing or undecodable payload degrades to a
// wholesale refresh instead of being guessed at.
type cardPayload struct {
	ID           int        `json:"id"`
	ListID       int        `json:"list_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Position     int        `json:"position"`
	DueDate      *time.Time `json:"due_date"`
	CommentCount int        `json:"comment_count"`
}

type listPayload struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

type boardPayload struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type commentPayload struct {
	ID      int            `json:"id"`
	CardID  int            `json:"card_id"`
	Content string         `json:"content"`
	Author  models.UserRef `json:"author"`
}

// ApplyRemoteEvent merges a realtime notification into the board state.
// Events scoped to an entity with operations still in flight queue
// behind those operations, so a remote echo can never clobber an
// optimistic state that the server has not acknowledged yet.
func (s *Store) ApplyRemoteEvent(e realtime.Event) {
	if e.BoardID != s.boardID {
		return
	}

	switch e.Type {
	case realtime.EventCardCreated, realtime.EventCardUpdated,
		realtime.EventCardMoved, realtime.EventCardDeleted:
		var p cardPayload
		if !decodePayload(e.Data, &p) || p.ID == 0 {
			s.refresh()
			return
		}
		s.applyDeferred(cardKey(p.ID), func() { s.mergeCardLocked(e.Type, p) })

	case realtime.EventListCreated, realtime.EventListUpdated,
		realtime.EventListMoved, realtime.EventListDeleted:
		var p listPayload
		if !decodePayload(e.Data, &p) || p.ID == 0 {
			s.refresh()
			return
		}
		s.applyDeferred(listKey(p.ID), func() { s.mergeListLocked(e.Type, p) })

	case realtime.EventCommentAdded, realtime.EventCommentDeleted:
		var p commentPayload
		if !decodePayload(e.Data, &p) || p.CardID == 0 {
			s.refresh()
			return
		}
		s.applyDeferred(cardKey(p.CardID), func() { s.mergeCommentLocked(e.Type, p) })

	case realtime.EventBoardUpdated:
		var p boardPayload
		if !decodePayload(e.Data, &p) || p.ID == 0 {
			s.refresh()
			return
		}
		s.applyDeferred(boardKey, func() {
			if s.board != nil {
				s.board.Title = p.Title
				s.board.Description = p.Description
			}
		})

	case realtime.EventLabelChanged:
		// Label definitions changed board-wide; cheapest correct answer
		// is a refetch
		s.refresh()

	default:
		slog.Debug("ignoring unknown remote event", "type", e.Type)
	}
}

func decodePayload(data json.RawMessage, out any) bool {
	if len(data) == 0 {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

// applyDeferred merges immediately when the entity is quiet, or queues
// the merge behind the entity's in-flight operations.
func (s *Store) applyDeferred(key string, merge func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if !s.hasInflightLocked(key) {
		merge()
		s.mu.Unlock()
		s.notify(Notification{})
		return
	}
	s.mu.Unlock()

	s.enqueue(key, &operation{confirm: merge})
}

func (s *Store) mergeCardLocked(typ realtime.EventType, p cardPayload) {
	switch typ {
	case realtime.EventCardCreated:
		if _, _, ok := s.findCardLocked(p.ID); ok {
			return // own echo, already confirmed
		}
		if _, _, ok := s.findListLocked(p.ListID); !ok {
			return
		}
		card := &models.Card{
			ID:           p.ID,
			ListID:       p.ListID,
			Title:        p.Title,
			Description:  p.Description,
			DueDate:      p.DueDate,
			CommentCount: p.CommentCount,
		}
		s.insertCardLocked(p.ListID, card, p.Position)

	case realtime.EventCardUpdated:
		card, _, ok := s.findCardLocked(p.ID)
		if !ok {
			return
		}
		card.Title = p.Title
		card.Description = p.Description
		card.DueDate = p.DueDate
		s.syncDetailLocked(card)

	case realtime.EventCardMoved:
		card, source, ok := s.findCardLocked(p.ID)
		if !ok {
			return
		}
		if _, _, ok := s.findListLocked(p.ListID); !ok {
			return
		}
		s.removeCardLocked(source.ID, p.ID)
		s.renumberCardsLocked(source.ID)
		s.insertCardLocked(p.ListID, card, p.Position)

	case realtime.EventCardDeleted:
		_, list, ok := s.findCardLocked(p.ID)
		if !ok {
			return
		}
		s.removeCardLocked(list.ID, p.ID)
		s.renumberCardsLocked(list.ID)
		if s.detail != nil && s.detail.ID == p.ID {
			s.detail = nil
		}
	}
}

func (s *Store) insertCardLocked(listID int, card *models.Card, position int) {
	cards := s.cards[listID]
	if position < 0 {
		position = 0
	}
	if position > len(cards) {
		position = len(cards)
	}
	s.cards[listID] = append(cards[:position],
		append([]*models.Card{card}, cards[position:]...)...)
	s.renumberCardsLocked(listID)
}

func (s *Store) mergeListLocked(typ realtime.EventType, p listPayload) {
	switch typ {
	case realtime.EventListCreated:
		if _, _, ok := s.findListLocked(p.ID); ok {
			return
		}
		list := &models.List{ID: p.ID, BoardID: s.boardID, Title: p.Title}
		at := p.Position
		if at < 0 {
			at = 0
		}
		if at > len(s.lists) {
			at = len(s.lists)
		}
		s.lists = append(s.lists[:at], append([]*models.List{list}, s.lists[at:]...)...)
		s.cards[p.ID] = nil
		s.renumberListsLocked()

	case realtime.EventListUpdated:
		list, _, ok := s.findListLocked(p.ID)
		if !ok {
			return
		}
		list.Title = p.Title

	case realtime.EventListMoved:
		list, index, ok := s.findListLocked(p.ID)
		if !ok {
			return
		}
		s.lists = append(s.lists[:index], s.lists[index+1:]...)
		at := p.Position
		if at < 0 {
			at = 0
		}
		if at > len(s.lists) {
			at = len(s.lists)
		}
		s.lists = append(s.lists[:at], append([]*models.List{list}, s.lists[at:]...)...)
		s.renumberListsLocked()

	case realtime.EventListDeleted:
		_, index, ok := s.findListLocked(p.ID)
		if !ok {
			return
		}
		s.lists = append(s.lists[:index], s.lists[index+1:]...)
		delete(s.cards, p.ID)
		s.renumberListsLocked()
	}
}

func (s *Store) mergeCommentLocked(typ realtime.EventType, p commentPayload) {
	card, _, ok := s.findCardLocked(p.CardID)
	if !ok {
		return
	}
	switch typ {
	case realtime.EventCommentAdded:
		card.CommentCount++
		if s.detail != nil && s.detail.ID == p.CardID {
			for _, c := range s.detail.Comments {
				if c.ID == p.ID {
					return
				}
			}
			s.detail.Comments = append(s.detail.Comments, &models.Comment{
				ID:        p.ID,
				CardID:    p.CardID,
				Author:    p.Author,
				Content:   p.Content,
				CreatedAt: time.Now(),
			})
		}
	case realtime.EventCommentDeleted:
		if card.CommentCount > 0 {
			card.CommentCount--
		}
		s.removeCommentLocked(p.CardID, p.ID)
	}
}

// refresh refetches the whole board, preserving entities that only exist
// locally (provisional creates still awaiting confirmation). Serialized
// under the board key so overlapping refreshes cannot interleave.
func (s *Store) refresh() {
	var (
		board  *models.Board
		lists  []*models.List
		cards  map[int][]*models.Card
		labels []*models.Label
	)
	s.enqueue(boardKey, &operation{
		run: func(ctx context.Context) error {
			b, ls, err := s.gw.Board(ctx, s.boardID)
			if err != nil {
				return err
			}
			cs := make(map[int][]*models.Card, len(ls))
			for _, list := range ls {
				listCards, err := s.gw.CardsByList(ctx, list.ID)
				if err != nil {
					return err
				}
				cs[list.ID] = listCards
			}
			lbs, err := s.gw.LabelsByBoard(ctx, s.boardID)
			if err != nil {
				return err
			}
			board, lists, cards, labels = b, ls, cs, lbs
			return nil
		},
		confirm: func() {
			// Carry provisional entities forward; the server does not
			// know about them yet. Provisional lists move wholesale,
			// cards on their slices included.
			for _, list := range s.lists {
				if models.Provisional(list.ID) {
					lists = append(lists, list)
					cards[list.ID] = s.cards[list.ID]
				}
			}
			for listID, listCards := range s.cards {
				if models.Provisional(listID) {
					continue
				}
				if _, ok := cards[listID]; !ok {
					continue // list gone server-side, cascade wins
				}
				for _, card := range listCards {
					if models.Provisional(card.ID) {
						cards[listID] = append(cards[listID], card)
					}
				}
			}
			s.board = board
			s.lists = lists
			s.cards = cards
			s.labels = labels
			s.sortLocked()
			s.renumberListsLocked()
			for _, list := range s.lists {
				s.renumberCardsLocked(list.ID)
			}
		},
		failMsg: "Failed to refresh board",
	})
}
