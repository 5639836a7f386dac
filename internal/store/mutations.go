package store

import (
	"context"
	"fmt"

	"github.com/tablero-dev/tablero/internal/api"
	"github.com/tablero-dev/tablero/internal/models"
)

// renumberCardsLocked makes a list's card positions dense and
// order-consistent, and keeps every member's ListID in agreement with its
// membership - the two must never diverge.
func (s *Store) renumberCardsLocked(listID int) {
	for i, card := range s.cards[listID] {
		card.Position = i
		card.ListID = listID
	}
}

// renumberListsLocked makes list positions dense after a reorder
func (s *Store) renumberListsLocked() {
	for i, list := range s.lists {
		list.Position = i
	}
}

// moveSettledLocked retires one queued move for an entity and reports
// whether a later move of the same entity is still pending
func (s *Store) moveSettledLocked(key string) bool {
	if s.pendingMoves[key] > 1 {
		s.pendingMoves[key]--
		return true
	}
	delete(s.pendingMoves, key)
	return false
}

// CreateList appends a list optimistically with a provisional ID and
// issues the create. On success the provisional ID is replaced by the
// server's; on failure the list is removed and the error surfaced.
func (s *Store) CreateList(title string) error {
	if err := models.ValidateTitle(title); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("store closed")
	}
	pid := s.nextProvisional
	s.nextProvisional--
	list := &models.List{
		ID:       pid,
		BoardID:  s.boardID,
		Title:    title,
		Position: len(s.lists),
	}
	s.lists = append(s.lists, list)
	s.cards[pid] = nil
	position := list.Position
	s.mu.Unlock()

	var created *models.List
	s.enqueue(listKey(pid), &operation{
		run: func(ctx context.Context) error {
			var err error
			created, err = s.gw.CreateList(ctx, api.CreateListRequest{
				BoardID:  s.boardID,
				Title:    title,
				Position: position,
			})
			return err
		},
		confirm: func() {
			s.aliases[pid] = created.ID
			if l, _, ok := s.findListLocked(pid); ok {
				l.ID = created.ID
				l.CreatedAt = created.CreatedAt
				l.UpdatedAt = created.UpdatedAt
			}
			s.cards[created.ID] = s.cards[pid]
			delete(s.cards, pid)
			s.renumberCardsLocked(created.ID)
		},
		rollback: func() {
			if _, i, ok := s.findListLocked(pid); ok {
				s.lists = append(s.lists[:i], s.lists[i+1:]...)
			}
			delete(s.cards, pid)
			s.renumberListsLocked()
		},
		failMsg: fmt.Sprintf("Failed to create list %q", title),
	})
	s.notify(Notification{})
	return nil
}

// CreateCard appends a card to a list optimistically, symmetric to
// CreateList but scoped to one list's card sequence.
func (s *Store) CreateCard(listID int, title string) error {
	if err := models.ValidateTitle(title); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("store closed")
	}
	if _, _, ok := s.findListLocked(listID); !ok {
		s.mu.Unlock()
		return fmt.Errorf("list %d not found", listID)
	}
	pid := s.nextProvisional
	s.nextProvisional--
	card := &models.Card{
		ID:       pid,
		ListID:   listID,
		Title:    title,
		Position: len(s.cards[listID]),
	}
	s.cards[listID] = append(s.cards[listID], card)
	position := card.Position
	s.mu.Unlock()

	// A card created on a still-provisional list queues behind the
	// list's own create so the server sees them in order
	key := cardKey(pid)
	if models.Provisional(listID) {
		key = listKey(listID)
	}

	var created *models.Card
	s.enqueue(key, &operation{
		run: func(ctx context.Context) error {
			serverListID, err := s.resolve(listID)
			if err != nil {
				return err
			}
			created, err = s.gw.CreateCard(ctx, api.CreateCardRequest{
				ListID:   serverListID,
				Title:    title,
				Position: position,
			})
			return err
		},
		confirm: func() {
			s.aliases[pid] = created.ID
			if c, _, ok := s.findCardLocked(pid); ok {
				c.ID = created.ID
				c.CreatedAt = created.CreatedAt
				c.UpdatedAt = created.UpdatedAt
			}
		},
		rollback: func() {
			if c, list, ok := s.findCardLocked(pid); ok && c != nil {
				s.removeCardLocked(list.ID, pid)
				s.renumberCardsLocked(list.ID)
			}
		},
		failMsg: fmt.Sprintf("Failed to create card %q", title),
	})
	s.notify(Notification{})
	return nil
}

// removeCardLocked deletes a card from a list's sequence by ID,
// returning its index, without renumbering.
func (s *Store) removeCardLocked(listID, cardID int) int {
	cards := s.cards[listID]
	for i, card := range cards {
		if card.ID == cardID {
			s.cards[listID] = append(cards[:i], cards[i+1:]...)
			return i
		}
	}
	return -1
}

// MoveCard removes a card from its source list, inserts it into the
// target at the clamped position, and renumbers both lists locally
// before issuing the move. Moves of the same card serialize through its
// queue. A failure rolls back with an inverse move computed against
// current state, never a snapshot: operations queued behind this one
// may already have rearranged either list.
func (s *Store) MoveCard(cardID, targetListID, targetPos int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("store closed")
	}
	card, source, ok := s.findCardLocked(cardID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("card %d not found", cardID)
	}
	target, _, ok := s.findListLocked(targetListID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("list %d not found", targetListID)
	}

	sourceID, targetID := source.ID, target.ID
	sourceIndex := card.Position
	key := cardKey(cardID)
	s.pendingMoves[key]++

	s.removeCardLocked(sourceID, cardID)
	if targetPos < 0 {
		targetPos = 0
	}
	if targetPos > len(s.cards[targetID]) {
		targetPos = len(s.cards[targetID])
	}
	cards := s.cards[targetID]
	cards = append(cards[:targetPos], append([]*models.Card{card}, cards[targetPos:]...)...)
	s.cards[targetID] = cards
	s.renumberCardsLocked(sourceID)
	if targetID != sourceID {
		s.renumberCardsLocked(targetID)
	}
	position := targetPos
	s.mu.Unlock()

	s.enqueue(key, &operation{
		run: func(ctx context.Context) error {
			serverCardID, err := s.resolve(cardID)
			if err != nil {
				return err
			}
			serverListID, err := s.resolve(targetListID)
			if err != nil {
				return err
			}
			return s.gw.MoveCard(ctx, serverCardID, api.MoveCardRequest{
				ListID:   serverListID,
				Position: position,
			})
		},
		confirm: func() {
			s.moveSettledLocked(key)
		},
		rollback: func() {
			if s.moveSettledLocked(key) {
				// A newer queued move already repositioned the card;
				// its placement stands and only the failure surfaces
				return
			}
			if _, holder, ok := s.findCardLocked(cardID); ok {
				s.removeCardLocked(holder.ID, cardID)
				s.renumberCardsLocked(holder.ID)
			}
			if _, _, ok := s.findListLocked(sourceID); ok {
				s.insertCardLocked(sourceID, card, sourceIndex)
			}
		},
		failMsg: fmt.Sprintf("Failed to move card %q", card.Title),
	})
	s.notify(Notification{})
	return nil
}

// UpdateList renames a list optimistically
func (s *Store) UpdateList(listID int, title string) error {
	if err := models.ValidateTitle(title); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("store closed")
	}
	list, _, ok := s.findListLocked(listID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("list %d not found", listID)
	}
	prev := list.Title
	list.Title = title
	s.mu.Unlock()

	s.enqueue(listKey(listID), &operation{
		run: func(ctx context.Context) error {
			serverListID, err := s.resolve(listID)
			if err != nil {
				return err
			}
			_, err = s.gw.UpdateList(ctx, serverListID, api.UpdateListRequest{Title: title})
			return err
		},
		rollback: func() {
			list.Title = prev
		},
		failMsg: fmt.Sprintf("Failed to rename list %q", prev),
	})
	s.notify(Notification{})
	return nil
}

// MoveList reorders a list within the board, same protocol as MoveCard
func (s *Store) MoveList(listID, targetPos int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("store closed")
	}
	list, index, ok := s.findListLocked(listID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("list %d not found", listID)
	}
	key := listKey(listID)
	s.pendingMoves[key]++

	s.lists = append(s.lists[:index], s.lists[index+1:]...)
	if targetPos < 0 {
		targetPos = 0
	}
	if targetPos > len(s.lists) {
		targetPos = len(s.lists)
	}
	s.lists = append(s.lists[:targetPos], append([]*models.List{list}, s.lists[targetPos:]...)...)
	s.renumberListsLocked()
	position := targetPos
	s.mu.Unlock()

	s.enqueue(key, &operation{
		run: func(ctx context.Context) error {
			serverListID, err := s.resolve(listID)
			if err != nil {
				return err
			}
			return s.gw.MoveList(ctx, serverListID, position)
		},
		confirm: func() {
			s.moveSettledLocked(key)
		},
		rollback: func() {
			if s.moveSettledLocked(key) {
				return
			}
			_, current, ok := s.findListLocked(listID)
			if !ok {
				return
			}
			s.lists = append(s.lists[:current], s.lists[current+1:]...)
			at := index
			if at > len(s.lists) {
				at = len(s.lists)
			}
			s.lists = append(s.lists[:at], append([]*models.List{list}, s.lists[at:]...)...)
			s.renumberListsLocked()
		},
		failMsg: fmt.Sprintf("Failed to move list %q", list.Title),
	})
	s.notify(Notification{})
	return nil
}

// DeleteList removes a list and its cards optimistically. The server
// owns the cascade; locally the cards vanish with the list and a
// failure re-inserts everything at its original position.
func (s *Store) DeleteList(listID int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("store closed")
	}
	list, index, ok := s.findListLocked(listID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("list %d not found", listID)
	}

	removedCards := s.cards[listID]
	s.lists = append(s.lists[:index], s.lists[index+1:]...)
	delete(s.cards, listID)
	s.renumberListsLocked()
	s.mu.Unlock()

	s.enqueue(listKey(listID), &operation{
		run: func(ctx context.Context) error {
			serverListID, err := s.resolve(listID)
			if err != nil {
				return err
			}
			return s.gw.DeleteList(ctx, serverListID)
		},
		rollback: func() {
			if _, _, ok := s.findListLocked(listID); !ok {
				at := index
				if at > len(s.lists) {
					at = len(s.lists)
				}
				s.lists = append(s.lists[:at], append([]*models.List{list}, s.lists[at:]...)...)
			}
			// A captured card may have been placed back in another list
			// by a concurrent rollback; that placement stands
			restored := make([]*models.Card, 0, len(removedCards))
			for _, c := range removedCards {
				if _, _, ok := s.findCardLocked(c.ID); ok {
					continue
				}
				restored = append(restored, c)
			}
			s.cards[listID] = restored
			s.renumberListsLocked()
			s.renumberCardsLocked(listID)
		},
		failMsg: fmt.Sprintf("Failed to delete list %q", list.Title),
	})
	s.notify(Notification{})
	return nil
}

// DeleteCard removes a card optimistically; a failure re-inserts it at
// its original position rather than refetching, to avoid visible flicker.
func (s *Store) DeleteCard(cardID int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("store closed")
	}
	card, list, ok := s.findCardLocked(cardID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("card %d not found", cardID)
	}
	listID := list.ID
	index := s.removeCardLocked(listID, cardID)
	s.renumberCardsLocked(listID)
	if s.detail != nil && s.detail.ID == cardID {
		s.detail = nil
	}
	s.mu.Unlock()

	s.enqueue(cardKey(cardID), &operation{
		run: func(ctx context.Context) error {
			serverCardID, err := s.resolve(cardID)
			if err != nil {
				return err
			}
			return s.gw.DeleteCard(ctx, serverCardID)
		},
		rollback: func() {
			// A remote merge may have re-added the card or removed the
			// list while the delete was in flight
			if _, _, ok := s.findCardLocked(cardID); ok {
				return
			}
			if _, _, ok := s.findListLocked(listID); !ok {
				return
			}
			s.insertCardLocked(listID, card, index)
		},
		failMsg: fmt.Sprintf("Failed to delete card %q", card.Title),
	})
	s.notify(Notification{})
	return nil
}

// UpdateCard applies a title/description/due-date edit optimistically
func (s *Store) UpdateCard(cardID int, req api.UpdateCardRequest) error {
	if req.Title != "" {
		if err := models.ValidateTitle(req.Title); err != nil {
			return err
		}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("store closed")
	}
	card, _, ok := s.findCardLocked(cardID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("card %d not found", cardID)
	}

	prevTitle, prevDesc, prevDue := card.Title, card.Description, card.DueDate
	if req.Title != "" {
		card.Title = req.Title
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.DueDate != nil {
		due := *req.DueDate
		card.DueDate = &due
	}
	s.syncDetailLocked(card)
	s.mu.Unlock()

	var updated *models.Card
	s.enqueue(cardKey(cardID), &operation{
		run: func(ctx context.Context) error {
			serverCardID, err := s.resolve(cardID)
			if err != nil {
				return err
			}
			updated, err = s.gw.UpdateCard(ctx, serverCardID, req)
			return err
		},
		confirm: func() {
			if updated != nil {
				card.UpdatedAt = updated.UpdatedAt
			}
		},
		rollback: func() {
			card.Title, card.Description, card.DueDate = prevTitle, prevDesc, prevDue
			s.syncDetailLocked(card)
		},
		failMsg: fmt.Sprintf("Failed to update card %q", prevTitle),
	})
	s.notify(Notification{})
	return nil
}

// syncDetailLocked mirrors a card's summary fields into the open detail
// view when it shows the same card
func (s *Store) syncDetailLocked(card *models.Card) {
	if s.detail == nil || s.detail.ID != card.ID {
		return
	}
	s.detail.Title = card.Title
	s.detail.Description = card.Description
	s.detail.DueDate = card.DueDate
	s.detail.Labels = card.Labels
}
