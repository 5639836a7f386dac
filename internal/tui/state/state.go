// Package state holds the TUI's interaction state, separate from the
// domain state which lives in the board store.
package state

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI
// is displayed.
type Mode int

const (
	NormalMode        Mode = iota // Default navigation mode
	GrabMode                      // A card is grabbed and follows movement keys
	CardFormMode                  // Creating or editing a card with huh
	ListFormMode                  // Creating or renaming a list with huh
	CommentFormMode               // Adding a comment with huh
	DeleteConfirmMode             // Confirming a card or list deletion
	CardDetailMode                // Full card view with comments and attachments
	BoardPickerMode               // Choosing another board to open
	SearchMode                    // Card search across the board
	HelpMode                      // Key binding reference
)

// UIState manages navigation and the current interaction mode
type UIState struct {
	selectedList int
	selectedCard int
	width        int
	height       int
	mode         Mode

	// viewportOffset is the index of the leftmost visible list
	viewportOffset int

	// grabbedCardID is the card being moved while in GrabMode, 0 otherwise
	grabbedCardID int
}

// NewUIState creates a UIState in normal mode
func NewUIState() *UIState {
	return &UIState{}
}

func (s *UIState) SelectedList() int        { return s.selectedList }
func (s *UIState) SetSelectedList(i int)    { s.selectedList = i }
func (s *UIState) SelectedCard() int        { return s.selectedCard }
func (s *UIState) SetSelectedCard(i int)    { s.selectedCard = i }
func (s *UIState) Width() int               { return s.width }
func (s *UIState) Height() int              { return s.height }
func (s *UIState) SetSize(w, h int)         { s.width, s.height = w, h }
func (s *UIState) Mode() Mode               { return s.mode }
func (s *UIState) SetMode(m Mode)           { s.mode = m }
func (s *UIState) ViewportOffset() int      { return s.viewportOffset }
func (s *UIState) SetViewportOffset(i int)  { s.viewportOffset = i }
func (s *UIState) GrabbedCard() int         { return s.grabbedCardID }
func (s *UIState) SetGrabbedCard(id int)    { s.grabbedCardID = id }

// ClampSelection keeps the cursor inside the board after state changes
// made it stale (remote deletions, rollbacks, list switches).
func (s *UIState) ClampSelection(listCount int, cardCount func(listIdx int) int) {
	if listCount == 0 {
		s.selectedList, s.selectedCard = 0, 0
		return
	}
	if s.selectedList >= listCount {
		s.selectedList = listCount - 1
	}
	if s.selectedList < 0 {
		s.selectedList = 0
	}
	cards := cardCount(s.selectedList)
	if s.selectedCard >= cards {
		s.selectedCard = cards - 1
	}
	if s.selectedCard < 0 {
		s.selectedCard = 0
	}
}
