// Package api is the typed gateway to the board server's REST surface.
// It translates intents into HTTP requests and responses into models,
// attaches bearer authentication, and maps failures onto a closed error
// taxonomy. It performs no retries - retry policy belongs to the store.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tablero-dev/tablero/internal/session"
)

// Client is the API gateway. All methods are safe for concurrent use;
// the client holds no mutable state beyond the http.Client's pool.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a gateway bound to a session. The session is the only source
// of the bearer token - there is no ambient lookup.
func New(sess session.Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(sess.ServerURL, "/"),
		token:   sess.Token,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// errorBody is the server's error envelope: {"error": "..."}
type errorBody struct {
	Error string `json:"error"`
}

// do issues a JSON request and decodes the response into out (when out is
// non-nil). body is marshaled as JSON when non-nil. Auth endpoints pass
// authed=false to skip the bearer header.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		// A malformed error body still maps onto the taxonomy
		_ = json.Unmarshal(data, &eb)
		return statusError(resp.StatusCode, eb.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return statusError(resp.StatusCode, fmt.Sprintf("unexpected response shape: %v", err))
	}
	return nil
}

// get issues an authenticated GET
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

// post issues an authenticated POST
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, true)
}

// put issues an authenticated PUT
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out, true)
}

// delete issues an authenticated DELETE
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}
