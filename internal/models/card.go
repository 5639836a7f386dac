package models

import "time"

// Card is a task unit; the unit of comments, labels, and attachments.
// ListID must always agree with membership in exactly one list's card
// sequence - the store changes both atomically.
type Card struct {
	ID           int
	ListID       int
	Title        string
	Description  string
	Position     int
	DueDate      *time.Time
	CommentCount int
	Labels       []*Label
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CardDetail is a DTO for the full card view.
// Contains everything the card modal shows including comments and attachments.
type CardDetail struct {
	ID          int
	ListID      int
	Title       string
	Description string
	Position    int
	DueDate     *time.Time
	Labels      []*Label
	Comments    []*Comment
	Attachments []*Attachment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
