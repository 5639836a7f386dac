package models

import "time"

// Board is the top-level container of lists and the unit of realtime scope
type Board struct {
	ID          int
	Title       string
	Description string
	OwnerID     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BoardSummary is a DTO for the board picker
// Contains only the fields needed to choose a board to open
type BoardSummary struct {
	ID          int
	Title       string
	Description string
}
