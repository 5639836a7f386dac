package models

import "time"

// List is an ordered column of cards within a board.
// Position is unique within the board and defines display order;
// contiguity is not guaranteed, ordering is re-derived after every mutation.
type List struct {
	ID        int
	BoardID   int
	Title     string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
