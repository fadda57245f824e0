package events

// GameEvent is a notification about a change to session state
type GameEvent struct {
	Type      EventType
	EntityID  string                 // character or unit the event concerns
	Context   map[string]interface{} // Flexible context data
	Cancelled bool
}

// NewGameEvent creates a new game event
func NewGameEvent(eventType EventType, entityID string) *GameEvent {
	return &GameEvent{
		Type:     eventType,
		EntityID: entityID,
		Context:  make(map[string]interface{}),
	}
}

// WithContext adds context data to the event
func (e *GameEvent) WithContext(key string, value interface{}) *GameEvent {
	e.Context[key] = value
	return e
}

// Cancel stops delivery to lower priority listeners
func (e *GameEvent) Cancel() {
	e.Cancelled = true
}

// IsCancelled returns whether the event has been cancelled
func (e *GameEvent) IsCancelled() bool {
	return e.Cancelled
}

// GetContext retrieves a value from the context
func (e *GameEvent) GetContext(key string) (interface{}, bool) {
	val, exists := e.Context[key]
	return val, exists
}

// GetIntContext retrieves an int value from the context
func (e *GameEvent) GetIntContext(key string) (int, bool) {
	val, exists := e.Context[key]
	if !exists {
		return 0, false
	}
	intVal, ok := val.(int)
	return intVal, ok
}

// GetFloatContext retrieves a float64 value from the context
func (e *GameEvent) GetFloatContext(key string) (float64, bool) {
	val, exists := e.Context[key]
	if !exists {
		return 0, false
	}
	f, ok := val.(float64)
	return f, ok
}

// GetStringContext retrieves a string value from the context
func (e *GameEvent) GetStringContext(key string) (string, bool) {
	val, exists := e.Context[key]
	if !exists {
		return "", false
	}
	strVal, ok := val.(string)
	return strVal, ok
}

// Emit sends event on bus if bus is non-nil. Listener failures are returned.
func Emit(bus Bus, event *GameEvent) error {
	if bus == nil {
		return nil
	}
	return bus.Emit(event)
}
