package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tablero-dev/tablero/internal/session"
)

// testServer is a minimal realtime endpoint backed by a gorilla upgrader.
// It records the query parameters of the last connection and exposes the
// server side of the socket for pushing messages.
type testServer struct {
	server *httptest.Server
	conns  chan *websocket.Conn
	query  chan string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	upgrader := websocket.Upgrader{}
	ts := &testServer{
		conns: make(chan *websocket.Conn, 4),
		query: make(chan string, 4),
	}
	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		ts.query <- r.URL.RawQuery
		ts.conns <- conn
	}))
	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) wsURL() string {
	return "ws" + strings.TrimPrefix(ts.server.URL, "http")
}

// waitStatus polls until the client reaches the wanted status
func waitStatus(t *testing.T, c *Client, want Status) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.Status() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("status = %s, want %s", c.Status(), want)
}

func TestConnectDeliversEvents(t *testing.T) {
	ts := newTestServer(t)
	events := make(chan Event, 4)

	sess := session.Session{WebSocketURL: ts.wsURL(), Token: "tok-1"}
	client := NewClient(sess, 42, func(e Event) { events <- e })

	if client.Status() != StatusIdle {
		t.Fatalf("initial status = %s, want idle", client.Status())
	}

	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() returned error: %v", err)
	}
	defer client.Close()
	waitStatus(t, client, StatusOpen)

	// Auth and board scope travel as query parameters
	query := <-ts.query
	if !strings.Contains(query, "board_id=42") || !strings.Contains(query, "token=tok-1") {
		t.Errorf("query = %q, want board_id and token", query)
	}

	server := <-ts.conns
	msg := `{"type":"card_moved","board_id":42,"data":{"id":7,"list_id":3,"position":0}}`
	if err := server.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("server write failed: %v", err)
	}

	select {
	case event := <-events:
		if event.Type != EventCardMoved || event.BoardID != 42 {
			t.Errorf("event = %+v", event)
		}
		if len(event.Data) == 0 {
			t.Error("event.Data should carry the embedded payload")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestMalformedMessagesDropped(t *testing.T) {
	ts := newTestServer(t)
	events := make(chan Event, 4)

	client := NewClient(session.Session{WebSocketURL: ts.wsURL()}, 1, func(e Event) { events <- e })
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() returned error: %v", err)
	}
	defer client.Close()

	server := <-ts.conns
	<-ts.query

	// Garbage, a typeless object, and an event for another board: all dropped
	for _, msg := range []string{`not json`, `{"board_id":1}`, `{"type":"card_moved","board_id":99}`} {
		if err := server.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("server write failed: %v", err)
		}
	}
	valid := `{"type":"list_created","board_id":1}`
	if err := server.WriteMessage(websocket.TextMessage, []byte(valid)); err != nil {
		t.Fatalf("server write failed: %v", err)
	}

	select {
	case event := <-events:
		// Only the valid message survives, and the client is still alive
		if event.Type != EventListCreated {
			t.Errorf("event.Type = %s, want list_created", event.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the valid event")
	}
	if client.Status() != StatusOpen {
		t.Errorf("status = %s, want open after malformed input", client.Status())
	}
}

func TestServerCloseIsTerminal(t *testing.T) {
	ts := newTestServer(t)
	closed := make(chan struct{})

	client := NewClient(session.Session{WebSocketURL: ts.wsURL()}, 1, func(Event) {})
	client.OnClose(func() { close(closed) })
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() returned error: %v", err)
	}

	server := <-ts.conns
	<-ts.query
	server.Close()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("OnClose never fired")
	}
	waitStatus(t, client, StatusClosed)

	// A closed instance refuses to reconnect - a new board subscription
	// creates a new instance instead
	if err := client.Connect(context.Background()); err == nil {
		t.Error("Connect() on a closed client should fail")
	}
}

func TestSendDroppedWhenNotOpen(t *testing.T) {
	client := NewClient(session.Session{WebSocketURL: "ws://localhost:1"}, 1, func(Event) {})

	// Must not panic or block; best-effort policy logs and drops
	client.Send(Event{Type: EventCardMoved, BoardID: 1})
}

func TestConnectFailureClosesClient(t *testing.T) {
	client := NewClient(session.Session{WebSocketURL: "ws://127.0.0.1:1"}, 1, func(Event) {})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Connect(ctx); err == nil {
		t.Fatal("Connect() to a dead endpoint should fail")
	}
	if client.Status() != StatusClosed {
		t.Errorf("status = %s, want closed after failed dial", client.Status())
	}
}
