package mosaic

import (
	"context"
	"sync"
)

// Listener handles events dispatched through the bus. One registration
// serves both delivery modes: under Emit the return values are discarded,
// under Filter the returned value feeds the next pipeline stage. A Filter
// listener that returns nil data signals "no transformation", which
// substitutes the pre-pipeline original value, not the previous stage's.
type Listener func(ctx context.Context, data any) (any, error)

// Subscription represents one listener registration. Cancelling it stops
// delivery; the method is idempotent.
type Subscription struct {
	id    uint64
	event string
	fn    Listener
	table *listenerTable
}

// Event returns the event name the subscription is registered for.
func (s *Subscription) Event() string {
	return s.event
}

// Cancel removes the subscription from its table. Safe to call more than
// once and safe on a nil subscription.
func (s *Subscription) Cancel() {
	if s == nil || s.table == nil {
		return
	}
	s.table.remove(s)
}

// listenerTable holds the name-to-listener registrations. It is owned by
// the App and handed by reference to the event bus: the bus dispatches,
// the App subscribes and unsubscribes.
type listenerTable struct {
	mu      sync.RWMutex
	nextID  uint64
	entries map[string][]*Subscription
}

func newListenerTable() *listenerTable {
	return &listenerTable{entries: make(map[string][]*Subscription)}
}

// add appends a listener for the event, preserving registration order.
func (t *listenerTable) add(event string, fn Listener) *Subscription {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	sub := &Subscription{id: t.nextID, event: event, fn: fn, table: t}
	t.entries[event] = append(t.entries[event], sub)
	return sub
}

// remove deletes the subscription; unknown subscriptions are a no-op.
func (t *listenerTable) remove(sub *Subscription) {
	t.mu.Lock()
	defer t.mu.Unlock()

	subs := t.entries[sub.event]
	for i, s := range subs {
		if s.id == sub.id {
			t.entries[sub.event] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(t.entries[sub.event]) == 0 {
		delete(t.entries, sub.event)
	}
}

// snapshot returns the current listeners for the event in registration
// order. Dispatch iterates the snapshot so listeners may subscribe or
// cancel reentrantly without affecting the in-flight delivery.
func (t *listenerTable) snapshot(event string) []*Subscription {
	t.mu.RLock()
	defer t.mu.RUnlock()

	subs := t.entries[event]
	if len(subs) == 0 {
		return nil
	}
	out := make([]*Subscription, len(subs))
	copy(out, subs)
	return out
}

// clear drops every registration.
func (t *listenerTable) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[string][]*Subscription)
}

// count returns the number of listeners for the event.
func (t *listenerTable) count(event string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries[event])
}
