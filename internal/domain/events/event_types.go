package events

// EventType represents the type of game event
type EventType int

const (
	// Progression events
	OnUpgradeApplied EventType = iota
	OnNodeLearned
	OnNodeLocked
	OnTreeApplied

	// Buffer effect events
	OnEffectApplied
	OnEffectTicked
	OnEffectExpired
	OnUnitDefeated
)

// String returns the string representation of the event type
func (e EventType) String() string {
	names := [...]string{
		"OnUpgradeApplied",
		"OnNodeLearned",
		"OnNodeLocked",
		"OnTreeApplied",
		"OnEffectApplied",
		"OnEffectTicked",
		"OnEffectExpired",
		"OnUnitDefeated",
	}
	if e < OnUpgradeApplied || int(e) >= len(names) {
		return "Unknown"
	}
	return names[e]
}
