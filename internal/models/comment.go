package models

import "time"

// Comment is owned by a card and append-only from the client's
// perspective (deletions allowed)
type Comment struct {
	ID        int
	CardID    int
	Author    UserRef
	Content   string
	CreatedAt time.Time
}
