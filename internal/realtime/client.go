// Package realtime maintains the WebSocket channel that delivers board
// change notifications. Events are supplementary to authoritative REST
// responses, never the sole source of truth, so delivery is best effort.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/tablero-dev/tablero/internal/session"
)

// Handler receives parsed events from the channel.
// It is called from the read goroutine; implementations must not block.
type Handler func(Event)

// Client manages one WebSocket connection for one open board.
// The lifecycle is Idle -> Connecting -> Open -> Closed; Closed is
// terminal. Opening another board (or reconnecting) means a new Client.
type Client struct {
	wsURL   string
	boardID int
	token   string
	handler Handler

	mu     sync.Mutex
	status Status
	conn   *websocket.Conn

	// onClose fires once when the connection leaves Open, whether from a
	// read error or an explicit Close. Used by the owner to drive its
	// reconnect policy.
	onClose func()
}

// NewClient creates a channel client for one board. The handler receives
// every parsed event; malformed messages are dropped and logged.
func NewClient(sess session.Session, boardID int, handler Handler) *Client {
	return &Client{
		wsURL:   sess.WebSocketURL,
		boardID: boardID,
		token:   sess.Token,
		handler: handler,
		status:  StatusIdle,
	}
}

// OnClose registers a callback fired once when the channel closes.
// Must be called before Connect.
func (c *Client) OnClose(fn func()) {
	c.onClose = fn
}

// Status reports the current connection state
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Connect dials the realtime endpoint and starts the read loop.
// Board ID and token travel as query parameters, matching the server's
// websocket handler.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.status != StatusIdle {
		c.mu.Unlock()
		return fmt.Errorf("realtime: connect called in state %s", c.status)
	}
	c.status = StatusConnecting
	c.mu.Unlock()

	endpoint, err := url.Parse(c.wsURL)
	if err != nil {
		c.close()
		return fmt.Errorf("realtime: bad websocket URL: %w", err)
	}
	query := endpoint.Query()
	query.Set("board_id", strconv.Itoa(c.boardID))
	query.Set("token", c.token)
	endpoint.RawQuery = query.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint.String(), nil)
	if err != nil {
		c.close()
		return fmt.Errorf("realtime: dial: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.status = StatusOpen
	c.mu.Unlock()

	go c.readLoop()

	slog.Debug("realtime channel open", "board_id", c.boardID)
	return nil
}

// Send delivers a client-originated event to the server.
// Best effort: when the channel is not Open the event is logged and
// dropped rather than failing the caller - REST responses carry the
// authoritative result.
func (c *Client) Send(event Event) {
	c.mu.Lock()
	conn := c.conn
	open := c.status == StatusOpen
	c.mu.Unlock()

	if !open {
		slog.Debug("realtime send dropped, channel not open", "type", event.Type)
		return
	}

	if err := conn.WriteJSON(event); err != nil {
		slog.Warn("realtime send failed", "type", event.Type, "error", err)
	}
}

// Close tears down the connection. Safe to call more than once.
func (c *Client) Close() {
	c.close()
}

// readLoop reads and parses messages until the connection dies.
// Malformed payloads are dropped and logged, never crash the subscriber.
func (c *Client) readLoop() {
	defer c.close()

	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("realtime channel lost", "board_id", c.boardID, "error", err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			slog.Warn("dropping malformed realtime message", "error", err)
			continue
		}
		if event.Type == "" {
			slog.Warn("dropping realtime message without a type")
			continue
		}

		// Defensive: the server scopes the socket to one board, but a
		// mismatched event must never leak into another board's store
		if event.BoardID != 0 && event.BoardID != c.boardID {
			continue
		}

		c.handler(event)
	}
}

// close transitions to Closed exactly once and fires onClose
func (c *Client) close() {
	c.mu.Lock()
	if c.status == StatusClosed {
		c.mu.Unlock()
		return
	}
	c.status = StatusClosed
	conn := c.conn
	c.conn = nil
	onClose := c.onClose
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	if onClose != nil {
		onClose()
	}
	slog.Debug("realtime channel closed", "board_id", c.boardID)
}
