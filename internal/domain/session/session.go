package session

import (
	"time"

	"github.com/KirkDiggler/upgrade-sim/internal/dice"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/character"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/events"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/skilltree"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/unit"
)

// Session owns one authoritative copy of every piece of mutable game state.
// Nothing in a session is shared with another session, so sessions may run on
// separate goroutines; a single session is not safe for concurrent use.
type Session struct {
	ID        string
	Name      string
	Character *character.Character
	Unit      *unit.Unit
	Forest    *skilltree.Forest
	Bus       events.Bus
	Roller    dice.Roller
	CreatedAt time.Time
	UpdatedAt time.Time
}
