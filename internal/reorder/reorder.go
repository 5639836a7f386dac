// Package reorder translates grab-and-drop gestures into single move
// intents. It owns the target disambiguation so the view never has to
// reason about positions.
package reorder

import "github.com/tablero-dev/tablero/internal/models"

// TargetKind says what the drop landed on
type TargetKind int

const (
	// TargetNone means no valid drop target; the gesture is a no-op
	TargetNone TargetKind = iota

	// TargetCard means the drop landed on another card; the dragged
	// card is inserted adjacent to it, inheriting its list
	TargetCard

	// TargetList means the drop landed on a list body; the dragged
	// card is appended to that list's end
	TargetList
)

// Drop is the resolved end of a gesture
type Drop struct {
	Kind TargetKind
	ID   int // card or list ID, per Kind

	// After inserts below the target card instead of above it.
	// Ignored for list targets.
	After bool
}

// Intent is the single move the gesture resolves to
type Intent struct {
	CardID   int
	ListID   int
	Position int
}

// BoardView is the read slice of the store the coordinator needs
type BoardView interface {
	FindCard(cardID int) (*models.Card, *models.List, bool)
	Cards(listID int) []*models.Card
}

// Resolve turns a drop into at most one move intent. ok is false for
// every no-op case: no target, unknown IDs, a cancelled gesture, or a
// drop on the dragged card's own current position.
func Resolve(view BoardView, draggedID int, drop Drop) (Intent, bool) {
	if drop.Kind == TargetNone {
		return Intent{}, false
	}
	dragged, source, found := view.FindCard(draggedID)
	if !found {
		return Intent{}, false
	}

	var listID, position int
	switch drop.Kind {
	case TargetCard:
		if drop.ID == draggedID {
			return Intent{}, false
		}
		target, targetList, found := view.FindCard(drop.ID)
		if !found {
			return Intent{}, false
		}
		listID = targetList.ID
		position = target.Position
		if drop.After {
			position++
		}
		// Removing the dragged card from above the insertion point
		// shifts everything below it up one
		if targetList.ID == source.ID && dragged.Position < position {
			position--
		}
	case TargetList:
		listID = drop.ID
		position = len(view.Cards(drop.ID))
		if listID == source.ID {
			position-- // the dragged card itself is still counted
		}
	default:
		return Intent{}, false
	}

	if listID == source.ID && position == dragged.Position {
		return Intent{}, false
	}
	return Intent{CardID: draggedID, ListID: listID, Position: position}, true
}

// ResolveList turns a list drop onto another list's slot into a list
// move intent. Dropping a list on itself is a no-op.
func ResolveList(lists []*models.List, draggedID, targetID int) (position int, ok bool) {
	if draggedID == targetID {
		return 0, false
	}
	var target *models.List
	found := false
	for _, l := range lists {
		if l.ID == draggedID {
			found = true
		}
		if l.ID == targetID {
			target = l
		}
	}
	if !found || target == nil {
		return 0, false
	}
	return target.Position, true
}
