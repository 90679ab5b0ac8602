// Package projection builds local view state from observed events.
// Handles deduplication and store re-reads. Does not emit events.
package projection

import (
	"context"
	"sync"

	"messenger-lab/domain"
	"messenger-lab/domain/event"
)

// Timeline is one tab's per-room message view. It is fed from two sides
// that may both deliver the same message: the optimistic local append on
// send, and the NEW_MESSAGE envelope path. Appends are id-deduplicated
// so the two paths converge on exactly one copy.
type Timeline struct {
	mu    sync.RWMutex
	rooms map[string][]domain.Message
	seen  map[string]struct{}
}

func NewTimeline() *Timeline {
	return &Timeline{
		rooms: make(map[string][]domain.Message),
		seen:  make(map[string]struct{}),
	}
}

// Append adds the message to its room unless that id was already seen.
// Returns false on a duplicate.
func (t *Timeline) Append(message domain.Message) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, dup := t.seen[message.ID]; dup {
		return false
	}
	t.seen[message.ID] = struct{}{}
	t.rooms[message.RoomID] = append(t.rooms[message.RoomID], message)
	return true
}

// Messages returns the room's view in arrival order.
func (t *Timeline) Messages(roomID string) []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	messages := t.rooms[roomID]
	out := make([]domain.Message, len(messages))
	copy(out, messages)
	return out
}

// Load seeds a room from the persisted collection, typically when the
// room is first opened. Deduplication still applies.
func (t *Timeline) Load(roomID string, messages []domain.Message) {
	for _, m := range messages {
		if m.RoomID == roomID {
			t.Append(m)
		}
	}
}

func (t *Timeline) Consume(_ context.Context, e event.Envelope) error {
	if e.Kind != event.NewMessageKind {
		return nil
	}
	if payload, ok := e.Payload.(event.NewMessage); ok {
		t.Append(payload.Message)
	}
	return nil
}
