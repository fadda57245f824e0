package events

import (
	"fmt"
	"sort"
	"sync"
)

// SubscriptionID identifies a Subscribe call for Unsubscribe
type SubscriptionID uint64

type subscription struct {
	id       SubscriptionID
	listener EventListener
}

// EventBus dispatches game events to listeners in priority order (lower first).
// Listeners with equal priority run in subscription order.
type EventBus struct {
	mu        sync.RWMutex
	listeners map[EventType][]subscription
	nextID    SubscriptionID
}

var _ Bus = (*EventBus)(nil)

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]subscription),
	}
}

// Subscribe adds a listener for an event type
func (eb *EventBus) Subscribe(eventType EventType, listener EventListener) SubscriptionID {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	eb.listeners[eventType] = append(eb.listeners[eventType], subscription{id: eb.nextID, listener: listener})
	return eb.nextID
}

// Unsubscribe removes a subscription. Unknown IDs are ignored.
func (eb *EventBus) Unsubscribe(id SubscriptionID) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for eventType, subs := range eb.listeners {
		for i, sub := range subs {
			if sub.id != id {
				continue
			}
			// keep order so equal priorities still run in subscription order
			eb.listeners[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Emit fires an event to all registered listeners, stopping at the first
// listener error or when a listener cancels the event.
func (eb *EventBus) Emit(event *GameEvent) error {
	if event == nil {
		return fmt.Errorf("cannot emit nil event")
	}

	subs := eb.getListeners(event.Type)
	if len(subs) == 0 {
		return nil
	}

	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].listener.Priority() < subs[j].listener.Priority()
	})

	for _, sub := range subs {
		if err := sub.listener.HandleEvent(event); err != nil {
			return fmt.Errorf("error handling event %s: %w", event.Type, err)
		}
		if event.IsCancelled() {
			break
		}
	}

	return nil
}

// getListeners returns a copy of the subscriptions for an event type
func (eb *EventBus) getListeners(eventType EventType) []subscription {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	original := eb.listeners[eventType]
	if len(original) == 0 {
		return nil
	}

	subs := make([]subscription, len(original))
	copy(subs, original)
	return subs
}

// Clear removes all listeners
func (eb *EventBus) Clear() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.listeners = make(map[EventType][]subscription)
}

// ListenerCount returns the number of listeners for a specific event type
func (eb *EventBus) ListenerCount(eventType EventType) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	return len(eb.listeners[eventType])
}
