package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/tablero-dev/tablero/internal/models"
)

// UploadAttachment uploads a file to a card as multipart form data.
// Files over models.MaxAttachmentSize are rejected before any network
// call is issued.
func (c *Client) UploadAttachment(ctx context.Context, cardID int, filename string, content []byte) (*models.Attachment, error) {
	if int64(len(content)) > models.MaxAttachmentSize {
		return nil, validationError(models.ErrAttachmentTooLarge)
	}
	if filename == "" {
		return nil, validationError(models.ErrEmptyTitle)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	url := fmt.Sprintf("%s/attachments/card/%d", c.baseURL, cardID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}
	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return nil, statusError(resp.StatusCode, eb.Error)
	}

	var ar attachmentResponse
	if err := json.Unmarshal(data, &ar); err != nil {
		return nil, statusError(resp.StatusCode, fmt.Sprintf("unexpected response shape: %v", err))
	}
	return ar.toModel(), nil
}

// DownloadAttachment fetches an attachment's binary content
func (c *Client) DownloadAttachment(ctx context.Context, attachmentID int) ([]byte, error) {
	url := fmt.Sprintf("%s/attachments/%d/download", c.baseURL, attachmentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return nil, statusError(resp.StatusCode, eb.Error)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}
	return data, nil
}

// DeleteAttachment deletes an attachment
func (c *Client) DeleteAttachment(ctx context.Context, attachmentID int) error {
	return c.delete(ctx, fmt.Sprintf("/attachments/%d", attachmentID))
}
