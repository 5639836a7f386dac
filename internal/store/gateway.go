package store

import (
	"context"

	"github.com/tablero-dev/tablero/internal/api"
	"github.com/tablero-dev/tablero/internal/models"
)

// Gateway is the slice of the API client the store drives.
// Defined here so tests can substitute a fake; *api.Client satisfies it.
type Gateway interface {
	Board(ctx context.Context, boardID int) (*models.Board, []*models.List, error)
	CardsByList(ctx context.Context, listID int) ([]*models.Card, error)
	LabelsByBoard(ctx context.Context, boardID int) ([]*models.Label, error)
	Card(ctx context.Context, cardID int) (*models.CardDetail, error)

	CreateList(ctx context.Context, req api.CreateListRequest) (*models.List, error)
	UpdateList(ctx context.Context, listID int, req api.UpdateListRequest) (*models.List, error)
	MoveList(ctx context.Context, listID, position int) error
	DeleteList(ctx context.Context, listID int) error

	CreateCard(ctx context.Context, req api.CreateCardRequest) (*models.Card, error)
	UpdateCard(ctx context.Context, cardID int, req api.UpdateCardRequest) (*models.Card, error)
	MoveCard(ctx context.Context, cardID int, req api.MoveCardRequest) error
	DeleteCard(ctx context.Context, cardID int) error

	CreateComment(ctx context.Context, cardID int, content string) (*models.Comment, error)
	UpdateComment(ctx context.Context, commentID int, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID int) error

	AttachLabel(ctx context.Context, cardID, labelID int) error
	DetachLabel(ctx context.Context, cardID, labelID int) error

	UploadAttachment(ctx context.Context, cardID int, filename string, content []byte) (*models.Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID int) error
}
