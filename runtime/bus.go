// Package runtime carries state changes between tabs. It contains the
// broadcast bus and the supervised workers that drain it; domain rules
// live elsewhere.
package runtime

import (
	"fmt"
	"log/slog"
	"sync"

	"messenger-lab/domain/event"
	"messenger-lab/observability"
)

// Bus is the cross-tab sync channel: one fixed topic shared by every tab
// of the process. Delivery is best-effort at-most-once, asynchronous,
// and never reaches the publishing tab itself. Publishers must apply
// their local state change independently of publishing; a tab that
// misses an envelope self-corrects on its next full re-read from the
// store.
//
// Bus is safe for concurrent use by multiple goroutines.
type Bus struct {
	mu      sync.RWMutex
	log     *slog.Logger
	monitor *observability.Monitor
	buffer  int
	nextID  int
	tabs    map[int]*Tab
}

// Tab is one subscriber handle, the stand-in for a browser tab. Its
// inbox is drained by a TabDispatcher worker.
type Tab struct {
	id    int
	name  string
	inbox chan event.Envelope
}

// Name identifies the tab in logs.
func (t *Tab) Name() string {
	return t.name
}

// Events exposes the tab's inbox to its dispatch loop.
func (t *Tab) Events() <-chan event.Envelope {
	return t.inbox
}

func NewBus(log *slog.Logger, buffer int, monitor *observability.Monitor) *Bus {
	return &Bus{
		log:     log,
		monitor: monitor,
		buffer:  buffer,
		tabs:    make(map[int]*Tab),
	}
}

// Subscribe opens a new tab on the topic.
func (b *Bus) Subscribe(name string) *Tab {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	tab := &Tab{id: b.nextID, name: name, inbox: make(chan event.Envelope, b.buffer)}
	b.tabs[tab.id] = tab
	b.log.Debug("Tab subscribed", "tab", name)
	return tab
}

// Unsubscribe closes the tab. Its inbox channel stays open so a racing
// publish never panics; the dispatcher simply stops draining it.
func (b *Bus) Unsubscribe(tab *Tab) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.tabs, tab.id)
}

// Publish fans the envelope out to every tab except the publisher.
// A full inbox drops the envelope for that tab: the store remains the
// authority and re-reads repair the gap.
func (b *Bus) Publish(from *Tab, env event.Envelope) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	b.monitor.IncrPublished()
	for _, tab := range b.tabs {
		if from != nil && tab.id == from.id {
			continue
		}
		select {
		case tab.inbox <- env:
			b.monitor.IncrDelivered()
		default:
			b.monitor.IncrDropped()
			b.log.Warn(fmt.Sprintf("Inbox full for tab %s, dropping %s", tab.name, env.Kind))
		}
	}
}
