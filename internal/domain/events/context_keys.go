package events

// Context keys for event data
const (
	// Progression context keys
	ContextUpgrade      = "upgrade"       // string: upgrade description
	ContextTreeKey      = "tree_key"      // string: skill tree key
	ContextNodeKey      = "node_key"      // string: skill tree node key
	ContextTimesLearned = "times_learned" // int: times the node has been learned
	ContextUnmet        = "unmet"         // []string: unlearned prerequisite node keys
	ContextApplied      = "applied"       // int: upgrades applied from a tree's log
	ContextSelection    = "selection"     // int: 1-based proposal index chosen

	// Effect context keys
	ContextEffectID   = "effect_id"   // string: effect instance ID
	ContextEffectKind = "effect_kind" // string: burn, bleed, poison
	ContextDamage     = "damage"      // int: damage dealt this tick
	ContextRemaining  = "remaining"   // float64: duration left after the tick
	ContextHealth     = "health"      // int: unit health after the tick
)
