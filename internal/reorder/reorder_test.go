package reorder

import (
	"testing"

	"github.com/tablero-dev/tablero/internal/models"
)

// boardView is a fixed two-list board: Todo=[a b c], Done=[d]
type boardView struct {
	lists map[int][]*models.Card
}

func newBoardView() *boardView {
	v := &boardView{lists: map[int][]*models.Card{
		1: {
			{ID: 10, ListID: 1, Title: "a", Position: 0},
			{ID: 11, ListID: 1, Title: "b", Position: 1},
			{ID: 12, ListID: 1, Title: "c", Position: 2},
		},
		2: {
			{ID: 20, ListID: 2, Title: "d", Position: 0},
		},
	}}
	return v
}

func (v *boardView) FindCard(cardID int) (*models.Card, *models.List, bool) {
	for listID, cards := range v.lists {
		for _, c := range cards {
			if c.ID == cardID {
				return c, &models.List{ID: listID}, true
			}
		}
	}
	return nil, nil, false
}

func (v *boardView) Cards(listID int) []*models.Card {
	return v.lists[listID]
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		dragged int
		drop    Drop
		want    Intent
		ok      bool
	}{
		{
			name:    "drop on card in another list inserts above it",
			dragged: 10,
			drop:    Drop{Kind: TargetCard, ID: 20},
			want:    Intent{CardID: 10, ListID: 2, Position: 0},
			ok:      true,
		},
		{
			name:    "drop below a card in another list",
			dragged: 10,
			drop:    Drop{Kind: TargetCard, ID: 20, After: true},
			want:    Intent{CardID: 10, ListID: 2, Position: 1},
			ok:      true,
		},
		{
			name:    "drop on a later card in the same list accounts for removal",
			dragged: 10,
			drop:    Drop{Kind: TargetCard, ID: 12, After: true},
			want:    Intent{CardID: 10, ListID: 1, Position: 2},
			ok:      true,
		},
		{
			name:    "drop on a list appends to its end",
			dragged: 10,
			drop:    Drop{Kind: TargetList, ID: 2},
			want:    Intent{CardID: 10, ListID: 2, Position: 1},
			ok:      true,
		},
		{
			name:    "drop on own list end moves to last",
			dragged: 10,
			drop:    Drop{Kind: TargetList, ID: 1},
			want:    Intent{CardID: 10, ListID: 1, Position: 2},
			ok:      true,
		},
		{
			name:    "no target is a no-op",
			dragged: 10,
			drop:    Drop{Kind: TargetNone},
		},
		{
			name:    "drop on itself is a no-op",
			dragged: 10,
			drop:    Drop{Kind: TargetCard, ID: 10},
		},
		{
			name:    "drop on own current position is a no-op",
			dragged: 11,
			drop:    Drop{Kind: TargetCard, ID: 11, After: false},
		},
		{
			name:    "unknown dragged card is a no-op",
			dragged: 999,
			drop:    Drop{Kind: TargetList, ID: 2},
		},
		{
			name:    "unknown target card is a no-op",
			dragged: 10,
			drop:    Drop{Kind: TargetCard, ID: 999},
		},
		{
			name:    "last card dropped on own list end is a no-op",
			dragged: 12,
			drop:    Drop{Kind: TargetList, ID: 1},
		},
	}

	view := newBoardView()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(view, tt.dragged, tt.drop)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("intent = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveList(t *testing.T) {
	lists := []*models.List{
		{ID: 1, Position: 0},
		{ID: 2, Position: 1},
		{ID: 3, Position: 2},
	}

	if pos, ok := ResolveList(lists, 1, 3); !ok || pos != 2 {
		t.Errorf("ResolveList(1, 3) = %d, %v; want 2, true", pos, ok)
	}
	if _, ok := ResolveList(lists, 2, 2); ok {
		t.Error("dropping a list on itself should be a no-op")
	}
	if _, ok := ResolveList(lists, 99, 1); ok {
		t.Error("unknown dragged list should be a no-op")
	}
}
