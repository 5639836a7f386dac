package api

import (
	"context"
	"fmt"

	"github.com/tablero-dev/tablero/internal/models"
)

// CreateListRequest encapsulates the data needed to create a list
type CreateListRequest struct {
	BoardID  int    `json:"board_id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

// UpdateListRequest renames a list; Position moves it when non-nil
type UpdateListRequest struct {
	Title    string `json:"title,omitempty"`
	Position *int   `json:"position,omitempty"`
}

// ListsByBoard returns the lists of a board in position order
func (c *Client) ListsByBoard(ctx context.Context, boardID int) ([]*models.List, error) {
	items, err := getList[listResponse](ctx, c, fmt.Sprintf("/lists/board/%d", boardID), "lists")
	if err != nil {
		return nil, err
	}
	lists := make([]*models.List, len(items))
	for i, l := range items {
		lists[i] = l.toModel()
	}
	return lists, nil
}

// CreateList creates a list on a board
func (c *Client) CreateList(ctx context.Context, req CreateListRequest) (*models.List, error) {
	if err := models.ValidateTitle(req.Title); err != nil {
		return nil, validationError(err)
	}
	var resp listResponse
	if err := c.post(ctx, "/lists", req, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// UpdateList renames a list
func (c *Client) UpdateList(ctx context.Context, listID int, req UpdateListRequest) (*models.List, error) {
	var resp listResponse
	if err := c.put(ctx, fmt.Sprintf("/lists/%d", listID), req, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// MoveList changes a list's position within its board
func (c *Client) MoveList(ctx context.Context, listID, position int) error {
	body := struct {
		Position int `json:"position"`
	}{Position: position}
	return c.post(ctx, fmt.Sprintf("/lists/%d/move", listID), body, nil)
}

// DeleteList deletes a list; the server cascades to its cards
func (c *Client) DeleteList(ctx context.Context, listID int) error {
	return c.delete(ctx, fmt.Sprintf("/lists/%d", listID))
}
