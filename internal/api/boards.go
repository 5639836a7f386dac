package api

import (
	"context"
	"fmt"

	"github.com/tablero-dev/tablero/internal/models"
)

// CreateBoardRequest encapsulates the data needed to create a board
type CreateBoardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateBoardRequest updates board fields; empty strings are not sent
type UpdateBoardRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Boards lists all boards visible to the session user
func (c *Client) Boards(ctx context.Context) ([]*models.Board, error) {
	items, err := getList[boardResponse](ctx, c, "/boards", "boards")
	if err != nil {
		return nil, err
	}
	boards := make([]*models.Board, len(items))
	for i, b := range items {
		boards[i] = b.toModel()
	}
	return boards, nil
}

// Board fetches a single board with its lists
func (c *Client) Board(ctx context.Context, boardID int) (*models.Board, []*models.List, error) {
	var resp boardDetailResponse
	if err := c.get(ctx, fmt.Sprintf("/boards/%d", boardID), &resp); err != nil {
		return nil, nil, err
	}
	lists := make([]*models.List, len(resp.Lists))
	for i, l := range resp.Lists {
		lists[i] = l.toModel()
	}
	return resp.boardResponse.toModel(), lists, nil
}

// CreateBoard creates a board
func (c *Client) CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error) {
	if err := models.ValidateTitle(req.Title); err != nil {
		return nil, validationError(err)
	}
	var resp boardResponse
	if err := c.post(ctx, "/boards", req, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// UpdateBoard updates a board's title or description
func (c *Client) UpdateBoard(ctx context.Context, boardID int, req UpdateBoardRequest) (*models.Board, error) {
	var resp boardResponse
	if err := c.put(ctx, fmt.Sprintf("/boards/%d", boardID), req, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// DeleteBoard deletes a board; the server cascades to all child entities
func (c *Client) DeleteBoard(ctx context.Context, boardID int) error {
	return c.delete(ctx, fmt.Sprintf("/boards/%d", boardID))
}
