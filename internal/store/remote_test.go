package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/tablero-dev/tablero/internal/api"
	"github.com/tablero-dev/tablero/internal/models"
	"github.com/tablero-dev/tablero/internal/realtime"
)

func updateTitle(title string) api.UpdateCardRequest {
	return api.UpdateCardRequest{Title: title}
}

func event(typ realtime.EventType, boardID int, payload string) realtime.Event {
	e := realtime.Event{Type: typ, BoardID: boardID}
	if payload != "" {
		e.Data = json.RawMessage(payload)
	}
	return e
}

func TestRemoteCardMovedMerges(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)

	s.ApplyRemoteEvent(event(realtime.EventCardMoved, 1, `{"id":10,"list_id":2,"position":0}`))
	s.Wait()

	if got := cardTitles(s, 1); !sameTitles(got, []string{"second"}) {
		t.Errorf("source = %v", got)
	}
	if got := cardTitles(s, 2); !sameTitles(got, []string{"first"}) {
		t.Errorf("target = %v", got)
	}
	if gw.callCount("Board") != 1 {
		t.Error("embedded payload should merge without a refetch")
	}
	checkInvariants(t, s)
}

func TestRemoteCardCreatedIgnoresOwnEcho(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)

	s.ApplyRemoteEvent(event(realtime.EventCardCreated, 1, `{"id":10,"list_id":1,"title":"first","position":0}`))
	s.Wait()

	if got := cardTitles(s, 1); !sameTitles(got, []string{"first", "second"}) {
		t.Errorf("cards = %v, echo should be a no-op", got)
	}
}

func TestRemoteEventWrongBoardIgnored(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)

	s.ApplyRemoteEvent(event(realtime.EventCardDeleted, 99, `{"id":10,"list_id":1}`))
	s.Wait()

	if got := cardTitles(s, 1); !sameTitles(got, []string{"first", "second"}) {
		t.Errorf("cards = %v, other board's event applied", got)
	}
}

func TestRemoteEventDefersBehindInflight(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)
	release := make(chan struct{})
	gw.block = release

	if err := s.UpdateCard(10, updateTitle("mine")); err != nil {
		t.Fatalf("UpdateCard() failed: %v", err)
	}

	// The remote edit targets the same card while our edit is in flight;
	// it must wait its turn instead of clobbering the optimistic state
	s.ApplyRemoteEvent(event(realtime.EventCardUpdated, 1, `{"id":10,"list_id":1,"title":"theirs"}`))

	card, _, _ := s.FindCard(10)
	if card.Title != "mine" {
		t.Errorf("title = %q while in flight, want optimistic %q", card.Title, "mine")
	}

	close(release)
	s.Wait()

	card, _, _ = s.FindCard(10)
	if card.Title != "theirs" {
		t.Errorf("title = %q after drain, want remote %q", card.Title, "theirs")
	}
}

func TestRemoteEventWithoutPayloadRefreshes(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)

	gw.mu.Lock()
	gw.cards[2] = append(gw.cards[2], &models.Card{ID: 12, ListID: 2, Title: "server-side", Position: 0})
	gw.mu.Unlock()

	s.ApplyRemoteEvent(event(realtime.EventListCreated, 1, ""))
	s.Wait()

	if gw.callCount("Board") != 2 {
		t.Errorf("Board calls = %d, want a refetch", gw.callCount("Board"))
	}
	if got := cardTitles(s, 2); !sameTitles(got, []string{"server-side"}) {
		t.Errorf("cards = %v, want server state after refresh", got)
	}
	checkInvariants(t, s)
}

func TestRefreshPreservesProvisionalEntities(t *testing.T) {
	gw := newSeededGateway()
	s, notes := newTestStore(t, gw)
	release := make(chan struct{})
	gw.blockOn["CreateCard"] = release

	// A provisional card exists while its create is parked on the gate;
	// only the create blocks, so the refresh drains first
	if err := s.CreateCard(1, "pending"); err != nil {
		t.Fatalf("CreateCard() failed: %v", err)
	}
	s.ApplyRemoteEvent(event(realtime.EventLabelChanged, 1, ""))

	deadline := time.Now().Add(2 * time.Second)
	for notes.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	close(release)
	s.Wait()

	if got := cardTitles(s, 1); !sameTitles(got, []string{"first", "second", "pending"}) {
		t.Errorf("cards = %v, provisional card lost across refresh", got)
	}
	checkInvariants(t, s)
}

func TestRemoteBoardUpdated(t *testing.T) {
	gw := newSeededGateway()
	s, _ := newTestStore(t, gw)

	s.ApplyRemoteEvent(event(realtime.EventBoardUpdated, 1, `{"id":1,"title":"Renamed","description":"d"}`))
	s.Wait()

	if b := s.Board(); b.Title != "Renamed" {
		t.Errorf("board title = %q, want Renamed", b.Title)
	}
}
