package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tablero-dev/tablero/internal/models"
)

// OpenCard fetches the full card view and sets it as the open detail.
// Queued under the card's key so the detail reflects any edits still in
// flight on that card rather than racing past them.
func (s *Store) OpenCard(cardID int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("store closed")
	}
	if _, _, ok := s.findCardLocked(cardID); !ok {
		s.mu.Unlock()
		return fmt.Errorf("card %d not found", cardID)
	}
	s.mu.Unlock()

	var detail *models.CardDetail
	s.enqueue(cardKey(cardID), &operation{
		run: func(ctx context.Context) error {
			serverCardID, err := s.resolve(cardID)
			if err != nil {
				return err
			}
			detail, err = s.gw.Card(ctx, serverCardID)
			return err
		},
		confirm: func() {
			s.detail = detail
			if card, _, ok := s.findCardLocked(cardID); ok {
				// Keep the detail addressable by the ID the UI used
				s.detail.ID = card.ID
				card.CommentCount = len(detail.Comments)
				card.Labels = detail.Labels
			}
		},
		failMsg: "Failed to open card",
	})
	return nil
}

// CloseCard discards the open detail view. Local only.
func (s *Store) CloseCard() {
	s.mu.Lock()
	s.detail = nil
	s.mu.Unlock()
}

// AddComment appends a comment to the open card optimistically
func (s *Store) AddComment(cardID int, author models.UserRef, content string) error {
	if strings.TrimSpace(content) == "" {
		return models.ErrEmptyComment
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
	pid := s.nextProvisional
	s.nextProvisional--
	comment := &models.Comment{
		ID:        pid,
		CardID:    cardID,
		Author:    author,
		Content:   content,
		CreatedAt: time.Now(),
	}
	card.CommentCount++
	if s.detail != nil && s.detail.ID == cardID {
		s.detail.Comments = append(s.detail.Comments, comment)
	}
	s.mu.Unlock()

	var created *models.Comment
	s.enqueue(cardKey(cardID), &operation{
		run: func(ctx context.Context) error {
			serverCardID, err := s.resolve(cardID)
			if err != nil {
				return err
			}
			created, err = s.gw.CreateComment(ctx, serverCardID, content)
			return err
		},
		confirm: func() {
			s.aliases[pid] = created.ID
			comment.ID = created.ID
			comment.CreatedAt = created.CreatedAt
		},
		rollback: func() {
			if c, _, ok := s.findCardLocked(cardID); ok && c.CommentCount > 0 {
				c.CommentCount--
			}
			s.removeCommentLocked(cardID, pid)
		},
		failMsg: "Failed to add comment",
	})
	s.notify(Notification{})
	return nil
}

// UpdateComment rewrites a comment's content optimistically; a failure
// restores the previous content.
func (s *Store) UpdateComment(cardID, commentID int, content string) error {
	if strings.TrimSpace(content) == "" {
		return models.ErrEmptyComment
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("store closed")
	}
	if s.detail == nil || s.detail.ID != cardID {
		s.mu.Unlock()
		return fmt.Errorf("card %d is not open", cardID)
	}
	var comment *models.Comment
	for _, c := range s.detail.Comments {
		if c.ID == commentID {
			comment = c
			break
		}
	}
	if comment == nil {
		s.mu.Unlock()
		return fmt.Errorf("comment %d not found", commentID)
	}
	prev := comment.Content
	comment.Content = content
	s.mu.Unlock()

	s.enqueue(cardKey(cardID), &operation{
		run: func(ctx context.Context) error {
			serverCommentID, err := s.resolve(commentID)
			if err != nil {
				return err
			}
			_, err = s.gw.UpdateComment(ctx, serverCommentID, content)
			return err
		},
		rollback: func() {
			comment.Content = prev
		},
		failMsg: "Failed to edit comment",
	})
	s.notify(Notification{})
	return nil
}

// DeleteComment removes a comment from the open card optimistically; a
// failure re-inserts it at its original index.
func (s *Store) DeleteComment(cardID, commentID int) error {
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
	comment, index := s.takeCommentLocked(cardID, commentID)
	if comment == nil {
		s.mu.Unlock()
		return fmt.Errorf("comment %d not found", commentID)
	}
	if card.CommentCount > 0 {
		card.CommentCount--
	}
	s.mu.Unlock()

	s.enqueue(cardKey(cardID), &operation{
		run: func(ctx context.Context) error {
			serverCommentID, err := s.resolve(commentID)
			if err != nil {
				return err
			}
			return s.gw.DeleteComment(ctx, serverCommentID)
		},
		rollback: func() {
			if c, _, ok := s.findCardLocked(cardID); ok {
				c.CommentCount++
			}
			s.insertCommentLocked(cardID, comment, index)
		},
		failMsg: "Failed to delete comment",
	})
	s.notify(Notification{})
	return nil
}

func (s *Store) removeCommentLocked(cardID, commentID int) {
	s.takeCommentLocked(cardID, commentID)
}

func (s *Store) takeCommentLocked(cardID, commentID int) (*models.Comment, int) {
	if s.detail == nil || s.detail.ID != cardID {
		return nil, -1
	}
	for i, c := range s.detail.Comments {
		if c.ID == commentID {
			s.detail.Comments = append(s.detail.Comments[:i], s.detail.Comments[i+1:]...)
			return c, i
		}
	}
	return nil, -1
}

func (s *Store) insertCommentLocked(cardID int, comment *models.Comment, index int) {
	if s.detail == nil || s.detail.ID != cardID {
		return
	}
	if index < 0 || index > len(s.detail.Comments) {
		index = len(s.detail.Comments)
	}
	s.detail.Comments = append(s.detail.Comments[:index],
		append([]*models.Comment{comment}, s.detail.Comments[index:]...)...)
}

// AttachLabel adds a board label to a card optimistically. The label
// must already exist on the board; attaching is idempotent locally.
func (s *Store) AttachLabel(cardID, labelID int) error {
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
	var label *models.Label
	for _, l := range s.labels {
		if l.ID == labelID {
			label = l
			break
		}
	}
	if label == nil {
		s.mu.Unlock()
		return fmt.Errorf("label %d not found on board", labelID)
	}
	for _, l := range card.Labels {
		if l.ID == labelID {
			s.mu.Unlock()
			return nil
		}
	}
	card.Labels = append(card.Labels, label)
	s.syncDetailLocked(card)
	s.mu.Unlock()

	s.enqueue(cardKey(cardID), &operation{
		run: func(ctx context.Context) error {
			serverCardID, err := s.resolve(cardID)
			if err != nil {
				return err
			}
			return s.gw.AttachLabel(ctx, serverCardID, labelID)
		},
		rollback: func() {
			if c, _, ok := s.findCardLocked(cardID); ok {
				c.Labels = removeLabel(c.Labels, labelID)
				s.syncDetailLocked(c)
			}
		},
		failMsg: fmt.Sprintf("Failed to attach label %q", label.Name),
	})
	s.notify(Notification{})
	return nil
}

// DetachLabel removes a label from a card optimistically
func (s *Store) DetachLabel(cardID, labelID int) error {
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
	var label *models.Label
	for _, l := range card.Labels {
		if l.ID == labelID {
			label = l
			break
		}
	}
	if label == nil {
		s.mu.Unlock()
		return fmt.Errorf("label %d not attached", labelID)
	}
	card.Labels = removeLabel(card.Labels, labelID)
	s.syncDetailLocked(card)
	s.mu.Unlock()

	s.enqueue(cardKey(cardID), &operation{
		run: func(ctx context.Context) error {
			serverCardID, err := s.resolve(cardID)
			if err != nil {
				return err
			}
			return s.gw.DetachLabel(ctx, serverCardID, labelID)
		},
		rollback: func() {
			if c, _, ok := s.findCardLocked(cardID); ok {
				c.Labels = append(c.Labels, label)
				s.syncDetailLocked(c)
			}
		},
		failMsg: fmt.Sprintf("Failed to detach label %q", label.Name),
	})
	s.notify(Notification{})
	return nil
}

func removeLabel(labels []*models.Label, labelID int) []*models.Label {
	for i, l := range labels {
		if l.ID == labelID {
			return append(labels[:i], labels[i+1:]...)
		}
	}
	return labels
}

// UploadAttachment adds a file to the open card. The size ceiling is
// enforced here so an oversized file never leaves the client, and no
// placeholder is shown while the upload is in flight.
func (s *Store) UploadAttachment(cardID int, filename string, content []byte) error {
	if int64(len(content)) > models.MaxAttachmentSize {
		return models.ErrAttachmentTooLarge
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("store closed")
	}
	if _, _, ok := s.findCardLocked(cardID); !ok {
		s.mu.Unlock()
		return fmt.Errorf("card %d not found", cardID)
	}
	s.mu.Unlock()

	var created *models.Attachment
	s.enqueue(cardKey(cardID), &operation{
		run: func(ctx context.Context) error {
			serverCardID, err := s.resolve(cardID)
			if err != nil {
				return err
			}
			created, err = s.gw.UploadAttachment(ctx, serverCardID, filename, content)
			return err
		},
		confirm: func() {
			if s.detail != nil && s.detail.ID == cardID {
				s.detail.Attachments = append(s.detail.Attachments, created)
			}
		},
		failMsg: fmt.Sprintf("Failed to upload %q", filename),
	})
	s.notify(Notification{})
	return nil
}

// DeleteAttachment removes an attachment from the open card
// optimistically; a failure re-inserts it at its original index.
func (s *Store) DeleteAttachment(cardID, attachmentID int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("store closed")
	}
	if s.detail == nil || s.detail.ID != cardID {
		s.mu.Unlock()
		return fmt.Errorf("card %d is not open", cardID)
	}
	var attachment *models.Attachment
	index := -1
	for i, a := range s.detail.Attachments {
		if a.ID == attachmentID {
			attachment = a
			index = i
			break
		}
	}
	if attachment == nil {
		s.mu.Unlock()
		return fmt.Errorf("attachment %d not found", attachmentID)
	}
	s.detail.Attachments = append(s.detail.Attachments[:index], s.detail.Attachments[index+1:]...)
	s.mu.Unlock()

	s.enqueue(cardKey(cardID), &operation{
		run: func(ctx context.Context) error {
			return s.gw.DeleteAttachment(ctx, attachmentID)
		},
		rollback: func() {
			if s.detail == nil || s.detail.ID != cardID {
				return
			}
			at := index
			if at > len(s.detail.Attachments) {
				at = len(s.detail.Attachments)
			}
			s.detail.Attachments = append(s.detail.Attachments[:at],
				append([]*models.Attachment{attachment}, s.detail.Attachments[at:]...)...)
		},
		failMsg: fmt.Sprintf("Failed to delete %q", attachment.Filename),
	})
	s.notify(Notification{})
	return nil
}
