package api

import (
	"context"
	"fmt"

	"github.com/tablero-dev/tablero/internal/models"
)

// CommentsByCard returns a card's comments, oldest first
func (c *Client) CommentsByCard(ctx context.Context, cardID int) ([]*models.Comment, error) {
	items, err := getList[commentResponse](ctx, c, fmt.Sprintf("/comments/card/%d", cardID), "comments")
	if err != nil {
		return nil, err
	}
	comments := make([]*models.Comment, len(items))
	for i, cm := range items {
		comments[i] = cm.toModel()
	}
	return comments, nil
}

// CreateComment adds a comment to a card
func (c *Client) CreateComment(ctx context.Context, cardID int, content string) (*models.Comment, error) {
	if content == "" {
		return nil, validationError(models.ErrEmptyComment)
	}
	body := struct {
		Content string `json:"content"`
	}{Content: content}
	var resp commentResponse
	if err := c.post(ctx, fmt.Sprintf("/comments/card/%d", cardID), body, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// UpdateComment edits a comment's content
func (c *Client) UpdateComment(ctx context.Context, commentID int, content string) (*models.Comment, error) {
	if content == "" {
		return nil, validationError(models.ErrEmptyComment)
	}
	body := struct {
		Content string `json:"content"`
	}{Content: content}
	var resp commentResponse
	if err := c.put(ctx, fmt.Sprintf("/comments/%d", commentID), body, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// DeleteComment deletes a comment
func (c *Client) DeleteComment(ctx context.Context, commentID int) error {
	return c.delete(ctx, fmt.Sprintf("/comments/%d", commentID))
}
