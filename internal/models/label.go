package models

// Label is defined on a board and shared by reference across its cards.
// A card's labels must be a subset of the labels on the card's board.
type Label struct {
	ID      int
	BoardID int
	Name    string
	Color   string // Hex color for display
}
