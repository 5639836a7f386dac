package tui

import (
	"github.com/tablero-dev/tablero/internal/cache"
	"github.com/tablero-dev/tablero/internal/models"
	"github.com/tablero-dev/tablero/internal/realtime"
	"github.com/tablero-dev/tablero/internal/store"
)

// Messages produced by the model's commands. Store notifications and
// realtime events are pumped through one channel so the update loop
// stays the single writer of UI state.

// storeChangedMsg is delivered after every completed store operation
type storeChangedMsg struct {
	note store.Notification
}

// remoteEventMsg is a realtime notification awaiting a store merge
type remoteEventMsg struct {
	event realtime.Event
}

// channelClosedMsg means a realtime connection died. It names the
// instance so closes of already-replaced channels are ignored.
type channelClosedMsg struct {
	channel *realtime.Client
}

// reconnectMsg fires when the backoff timer elapses
type reconnectMsg struct{}

// connectedMsg carries a freshly connected channel instance
type connectedMsg struct {
	channel *realtime.Client
}

// connectFailedMsg reports a failed dial; treated like a close
type connectFailedMsg struct {
	err error
}

// snapshotMsg carries the cached board snapshot shown while the
// authoritative load is in flight
type snapshotMsg struct {
	snap *cache.Snapshot
}

// boardLoadedMsg reports the initial store load
type boardLoadedMsg struct {
	err error
}

// boardsLoadedMsg carries the board picker entries
type boardsLoadedMsg struct {
	boards []*models.Board
	err    error
}

// boardSwitchedMsg carries a freshly loaded store for another board
type boardSwitchedMsg struct {
	store   *store.Store
	boardID int
	err     error
}

// searchResultsMsg carries card search results
type searchResultsMsg struct {
	cards []*models.Card
	err   error
}
