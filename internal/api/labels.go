package api

import (
	"context"
	"fmt"

	"github.com/tablero-dev/tablero/internal/models"
)

// CreateLabelRequest encapsulates the data needed to create a label
type CreateLabelRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// LabelsByBoard returns the labels defined on a board
func (c *Client) LabelsByBoard(ctx context.Context, boardID int) ([]*models.Label, error) {
	items, err := getList[labelResponse](ctx, c, fmt.Sprintf("/labels/board/%d", boardID), "labels")
	if err != nil {
		return nil, err
	}
	labels := make([]*models.Label, len(items))
	for i, l := range items {
		labels[i] = l.toModel()
	}
	return labels, nil
}

// CreateLabel creates a label on a board
func (c *Client) CreateLabel(ctx context.Context, boardID int, req CreateLabelRequest) (*models.Label, error) {
	if req.Name == "" {
		return nil, validationError(models.ErrEmptyTitle)
	}
	var resp labelResponse
	if err := c.post(ctx, fmt.Sprintf("/labels/board/%d", boardID), req, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// AttachLabel attaches a board label to a card
func (c *Client) AttachLabel(ctx context.Context, cardID, labelID int) error {
	body := struct {
		LabelID int `json:"label_id"`
	}{LabelID: labelID}
	return c.post(ctx, fmt.Sprintf("/labels/card/%d", cardID), body, nil)
}

// DetachLabel removes a label from a card
func (c *Client) DetachLabel(ctx context.Context, cardID, labelID int) error {
	return c.delete(ctx, fmt.Sprintf("/labels/card/%d/%d", cardID, labelID))
}
