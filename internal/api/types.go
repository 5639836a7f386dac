package api

import (
	"time"

	"github.com/tablero-dev/tablero/internal/models"
)

// Wire DTOs mirroring the server's JSON shapes. Conversion to models
// happens at this boundary so nothing outside the package sees raw JSON.

type boardResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     int       `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type boardDetailResponse struct {
	boardResponse
	Lists []listResponse `json:"lists"`
}

type listResponse struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	BoardID   int       `json:"board_id"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type userResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type labelResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	BoardID int    `json:"board_id"`
}

type commentResponse struct {
	ID        int          `json:"id"`
	Content   string       `json:"content"`
	CardID    int          `json:"card_id"`
	User      userResponse `json:"user"`
	CreatedAt time.Time    `json:"created_at"`
}

type attachmentResponse struct {
	ID         int          `json:"id"`
	Filename   string       `json:"filename"`
	FileURL    string       `json:"file_url"`
	FileSize   int64        `json:"file_size"`
	FileType   string       `json:"file_type"`
	CardID     int          `json:"card_id"`
	UploadedBy userResponse `json:"uploaded_by"`
	CreatedAt  time.Time    `json:"created_at"`
}

type cardResponse struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ListID      int             `json:"list_id"`
	Position    int             `json:"position"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Labels      []labelResponse `json:"labels"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type cardDetailResponse struct {
	cardResponse
	Comments    []commentResponse    `json:"comments"`
	Attachments []attachmentResponse `json:"attachments"`
}

func (r boardResponse) toModel() *models.Board {
	return &models.Board{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		OwnerID:     r.OwnerID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r listResponse) toModel() *models.List {
	return &models.List{
		ID:        r.ID,
		BoardID:   r.BoardID,
		Title:     r.Title,
		Position:  r.Position,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r labelResponse) toModel() *models.Label {
	return &models.Label{
		ID:      r.ID,
		BoardID: r.BoardID,
		Name:    r.Name,
		Color:   r.Color,
	}
}

func (r userResponse) toModel() models.UserRef {
	return models.UserRef{
		ID:       r.ID,
		Username: r.Username,
		Email:    r.Email,
	}
}

func (r commentResponse) toModel() *models.Comment {
	return &models.Comment{
		ID:        r.ID,
		CardID:    r.CardID,
		Author:    r.User.toModel(),
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
	}
}

func (r attachmentResponse) toModel() *models.Attachment {
	return &models.Attachment{
		ID:         r.ID,
		CardID:     r.CardID,
		Filename:   r.Filename,
		FileSize:   r.FileSize,
		FileType:   r.FileType,
		FileURL:    r.FileURL,
		UploadedBy: r.UploadedBy.toModel(),
		CreatedAt:  r.CreatedAt,
	}
}

func (r cardResponse) toModel() *models.Card {
	labels := make([]*models.Label, len(r.Labels))
	for i, l := range r.Labels {
		labels[i] = l.toModel()
	}
	return &models.Card{
		ID:          r.ID,
		ListID:      r.ListID,
		Title:       r.Title,
		Description: r.Description,
		Position:    r.Position,
		DueDate:     r.DueDate,
		Labels:      labels,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r cardDetailResponse) toModel() *models.CardDetail {
	labels := make([]*models.Label, len(r.Labels))
	for i, l := range r.Labels {
		labels[i] = l.toModel()
	}
	comments := make([]*models.Comment, len(r.Comments))
	for i, c := range r.Comments {
		comments[i] = c.toModel()
	}
	attachments := make([]*models.Attachment, len(r.Attachments))
	for i, a := range r.Attachments {
		attachments[i] = a.toModel()
	}
	return &models.CardDetail{
		ID:          r.ID,
		ListID:      r.ListID,
		Title:       r.Title,
		Description: r.Description,
		Position:    r.Position,
		DueDate:     r.DueDate,
		Labels:      labels,
		Comments:    comments,
		Attachments: attachments,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
