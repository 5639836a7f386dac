package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/tablero-dev/tablero/internal/models"
)

// SearchParams filters the card search. Zero values are omitted from the
// query string.
type SearchParams struct {
	Query   string
	BoardID int
	ListID  int
	LabelID int
	DueFrom string // RFC 3339 date
	DueTo   string
}

// SearchCards queries cards across the user's boards
func (c *Client) SearchCards(ctx context.Context, params SearchParams) ([]*models.Card, error) {
	values := url.Values{}
	if params.Query != "" {
		values.Set("q", params.Query)
	}
	if params.BoardID > 0 {
		values.Set("board_id", strconv.Itoa(params.BoardID))
	}
	if params.ListID > 0 {
		values.Set("list_id", strconv.Itoa(params.ListID))
	}
	if params.LabelID > 0 {
		values.Set("label_id", strconv.Itoa(params.LabelID))
	}
	if params.DueFrom != "" {
		values.Set("due_from", params.DueFrom)
	}
	if params.DueTo != "" {
		values.Set("due_to", params.DueTo)
	}

	path := "/search/cards"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	items, err := getList[cardResponse](ctx, c, path, "cards")
	if err != nil {
		return nil, err
	}
	cards := make([]*models.Card, len(items))
	for i, card := range items {
		cards[i] = card.toModel()
	}
	return cards, nil
}
