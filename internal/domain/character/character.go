package character

import (
	"github.com/KirkDiggler/upgrade-sim/internal/domain/abilities"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/attributes"
)

// Character is the player-controlled state upgrades act on: its attribute bank
// and its equipped abilities. One Character belongs to exactly one session.
type Character struct {
	ID      string
	Name    string
	Bank    *attributes.Bank
	Loadout *abilities.Loadout
}

// New creates a character with default attributes and the default loadout
func New(id, name string) *Character {
	return &Character{
		ID:      id,
		Name:    name,
		Bank:    attributes.NewBank(),
		Loadout: abilities.NewDefaultLoadout(),
	}
}
