// Package presence holds the per-tab online and typing projections.
// Both are ephemeral: rebuilt empty on process start, then updated by
// local actions and received bus events. There is no heartbeat expiry;
// a tab that dies without publishing USER_OFFLINE leaves a stale entry
// until an explicit offline event arrives.
package presence

import (
	"context"
	"sort"
	"sync"

	"messenger-lab/domain/event"
)

// Aggregator is owned by one tab and passed explicitly to consumers;
// it is never shared between tabs.
type Aggregator struct {
	mu     sync.RWMutex
	online map[string]struct{}
	typing map[string]map[string]struct{}
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		online: make(map[string]struct{}),
		typing: make(map[string]map[string]struct{}),
	}
}

// SetOnline records a user as online (local login or USER_ONLINE event).
func (a *Aggregator) SetOnline(userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.online[userID] = struct{}{}
}

// SetOffline removes a user from the online set.
func (a *Aggregator) SetOffline(userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.online, userID)
}

func (a *Aggregator) IsOnline(userID string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.online[userID]
	return ok
}

func (a *Aggregator) Online() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return sortedKeys(a.online)
}

// StartTyping adds userID to the room's typing set and returns the full
// updated set, which the caller broadcasts (full state over delta, so a
// missed envelope is repaired by the next one). The second return is
// false when the user was already typing; callers skip the publish then.
func (a *Aggregator) StartTyping(roomID, userID string) ([]string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.typing[roomID] == nil {
		a.typing[roomID] = make(map[string]struct{})
	}
	_, already := a.typing[roomID][userID]
	a.typing[roomID][userID] = struct{}{}
	return sortedKeys(a.typing[roomID]), !already
}

// StopTyping removes userID if present and returns the full set even
// when unchanged, to keep receivers convergent.
func (a *Aggregator) StopTyping(roomID, userID string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.typing[roomID], userID)
	return sortedKeys(a.typing[roomID])
}

// ReplaceTyping overwrites the room's typing set wholesale with the
// broadcast state.
func (a *Aggregator) ReplaceTyping(roomID string, users []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	set := make(map[string]struct{}, len(users))
	for _, id := range users {
		set[id] = struct{}{}
	}
	a.typing[roomID] = set
}

// TypingOthers is the display view: the room's typing set without the
// viewer's own id. The underlying set still contains selfID; a user just
// never sees themselves listed as typing.
func (a *Aggregator) TypingOthers(roomID, selfID string) []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var others []string
	for id := range a.typing[roomID] {
		if id != selfID {
			others = append(others, id)
		}
	}
	sort.Strings(others)
	return others
}

// Consume applies presence and typing envelopes; every other kind is
// ignored.
func (a *Aggregator) Consume(_ context.Context, e event.Envelope) error {
	switch e.Kind {
	case event.UserOnlineKind:
		if payload, ok := e.Payload.(event.UserOnline); ok {
			a.SetOnline(payload.UserID)
		}
	case event.UserOfflineKind:
		if payload, ok := e.Payload.(event.UserOffline); ok {
			a.SetOffline(payload.UserID)
		}
	case event.UserTypingKind:
		if payload, ok := e.Payload.(event.UserTyping); ok {
			a.ReplaceTyping(payload.RoomID, payload.Users)
		}
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
