package store

import (
	"context"
	"fmt"
	"log/slog"
)

// operation is one queued state transition. run executes the network call
// without the lock held; confirm and rollback run with the lock held and
// must only touch store state.
type operation struct {
	// run performs the network call. nil means a local-only transition
	// that was deferred behind in-flight operations on the same entity.
	run func(ctx context.Context) error

	// confirm applies the server's acknowledgement (id swaps, merges)
	confirm func()

	// rollback restores the pre-operation snapshot
	rollback func()

	// failMsg is the human-readable message surfaced on rollback
	failMsg string
}

func listKey(id int) string { return fmt.Sprintf("list/%d", id) }
func cardKey(id int) string { return fmt.Sprintf("card/%d", id) }

// boardKey serializes wholesale refreshes against each other
const boardKey = "board"

// enqueue appends an operation to an entity's queue and starts a drainer
// if the queue was empty. Operations on the same key execute strictly in
// order; disjoint keys proceed concurrently.
func (s *Store) enqueue(key string, op *operation) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.inflight[key] = append(s.inflight[key], op)
	starting := !s.draining[key]
	if starting {
		s.draining[key] = true
		s.wg.Add(1)
	}
	s.mu.Unlock()

	if starting {
		go s.drain(key)
	}
}

// drain executes an entity's queue head-first until it is empty.
// A second operation on an entity already in flight queues behind the
// first, so a stale response can never overwrite a newer optimistic
// state.
func (s *Store) drain(key string) {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		queue := s.inflight[key]
		if len(queue) == 0 || s.closed {
			delete(s.inflight, key)
			delete(s.draining, key)
			s.mu.Unlock()
			return
		}
		op := queue[0]
		s.mu.Unlock()

		var err error
		if op.run != nil {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			err = op.run(ctx)
			cancel()
		}

		s.mu.Lock()
		if s.closed {
			// The board view is gone; late responses are discarded
			delete(s.inflight, key)
			delete(s.draining, key)
			s.mu.Unlock()
			return
		}
		var note Notification
		if err != nil {
			if op.rollback != nil {
				op.rollback()
			}
			note = Notification{Err: err, Message: op.failMsg}
			slog.Warn("operation failed, rolled back", "key", key, "error", err)
		} else {
			if op.confirm != nil {
				op.confirm()
			}
			note = Notification{}
		}
		s.inflight[key] = s.inflight[key][1:]
		s.mu.Unlock()

		s.notify(note)
	}
}

// hasInflightLocked reports whether an entity has queued operations
func (s *Store) hasInflightLocked(key string) bool {
	return len(s.inflight[key]) > 0
}
