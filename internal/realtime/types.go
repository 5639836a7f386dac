package realtime

import "encoding/json"

// EventType indicates what kind of change occurred on the board.
// The set mirrors the server's broadcast types; unknown types still
// reach the subscriber so new server events degrade to a full refresh.
type EventType string

const (
	EventCardCreated    EventType = "card_created"
	EventCardUpdated    EventType = "card_updated"
	EventCardMoved      EventType = "card_moved"
	EventCardDeleted    EventType = "card_deleted"
	EventListCreated    EventType = "list_created"
	EventListUpdated    EventType = "list_updated"
	EventListMoved      EventType = "list_moved"
	EventListDeleted    EventType = "list_deleted"
	EventCommentAdded   EventType = "comment_added"
	EventCommentDeleted EventType = "comment_deleted"
	EventLabelChanged   EventType = "label_changed"
	EventBoardUpdated   EventType = "board_updated"
)

// Event is a change notification for one board.
// Data optionally embeds the changed entity's payload; when absent the
// store refetches the affected resource instead of merging a partial.
type Event struct {
	Type    EventType       `json:"type"`
	BoardID int             `json:"board_id"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Status is the connection state of a channel instance
type Status int

const (
	// StatusIdle means Connect has not been called yet
	StatusIdle Status = iota

	// StatusConnecting means the dial is in progress
	StatusConnecting

	// StatusOpen means events are flowing
	StatusOpen

	// StatusClosed is terminal for this instance; reconnecting means
	// creating a new instance
	StatusClosed
)

// String returns a human-readable status name for logs
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusConnecting:
		return "connecting"
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}
