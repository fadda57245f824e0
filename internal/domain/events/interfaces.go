package events

//go:generate mockgen -destination=mock/mock_bus.go -package=mockevents -source=interfaces.go

// EventListener represents an object that can handle game events
type EventListener interface {
	HandleEvent(event *GameEvent) error
	Priority() int
}

// Bus is the interface for event bus implementations
type Bus interface {
	// Subscribe adds a listener for a specific event type
	Subscribe(eventType EventType, listener EventListener) SubscriptionID

	// Unsubscribe removes a subscription
	Unsubscribe(id SubscriptionID)

	// Emit sends an event to all registered listeners
	Emit(event *GameEvent) error

	// Clear removes all listeners
	Clear()

	// ListenerCount returns the number of listeners for an event type
	ListenerCount(eventType EventType) int
}

// ListenerFunc adapts a function to EventListener with priority 100
type ListenerFunc func(event *GameEvent) error

func (f ListenerFunc) HandleEvent(event *GameEvent) error { return f(event) }
func (f ListenerFunc) Priority() int                      { return 100 }
