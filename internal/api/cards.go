package api

import (
	"context"
	"fmt"
	"time"

	"github.com/tablero-dev/tablero/internal/models"
)

// CreateCardRequest encapsulates the data needed to create a card
type CreateCardRequest struct {
	ListID      int        `json:"list_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Position    int        `json:"position"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateCardRequest updates card fields.
// Pointer fields are optional - nil means don't update.
type UpdateCardRequest struct {
	Title       string     `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// MoveCardRequest moves a card to a list and position
type MoveCardRequest struct {
	ListID   int `json:"list_id"`
	Position int `json:"position"`
}

// CardsByList returns the cards of a list in position order
func (c *Client) CardsByList(ctx context.Context, listID int) ([]*models.Card, error) {
	items, err := getList[cardResponse](ctx, c, fmt.Sprintf("/cards/list/%d", listID), "cards")
	if err != nil {
		return nil, err
	}
	cards := make([]*models.Card, len(items))
	for i, card := range items {
		cards[i] = card.toModel()
	}
	return cards, nil
}

// Card fetches a single card with comments, labels, and attachments
func (c *Client) Card(ctx context.Context, cardID int) (*models.CardDetail, error) {
	var resp cardDetailResponse
	if err := c.get(ctx, fmt.Sprintf("/cards/%d", cardID), &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// CreateCard creates a card on a list
func (c *Client) CreateCard(ctx context.Context, req CreateCardRequest) (*models.Card, error) {
	if err := models.ValidateTitle(req.Title); err != nil {
		return nil, validationError(err)
	}
	var resp cardResponse
	if err := c.post(ctx, "/cards", req, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// UpdateCard updates a card's fields
func (c *Client) UpdateCard(ctx context.Context, cardID int, req UpdateCardRequest) (*models.Card, error) {
	var resp cardResponse
	if err := c.put(ctx, fmt.Sprintf("/cards/%d", cardID), req, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// MoveCard moves a card to a list and position
func (c *Client) MoveCard(ctx context.Context, cardID int, req MoveCardRequest) error {
	return c.post(ctx, fmt.Sprintf("/cards/%d/move", cardID), req, nil)
}

// DeleteCard deletes a card
func (c *Client) DeleteCard(ctx context.Context, cardID int) error {
	return c.delete(ctx, fmt.Sprintf("/cards/%d", cardID))
}
