package abilities

import (
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

// DefaultNames are the damaging abilities a new character starts with
var DefaultNames = []string{"Punch", "Kick", "Grapple"}

// Loadout is the ordered set of equipped abilities
type Loadout struct {
	equipped []*Ability
}

// NewLoadout creates a loadout with the given abilities equipped in order
func NewLoadout(equipped ...*Ability) *Loadout {
	l := &Loadout{}
	for _, a := range equipped {
		l.Equip(a)
	}
	return l
}

// NewDefaultLoadout equips Punch, Kick and Grapple
func NewDefaultLoadout() *Loadout {
	l := &Loadout{}
	for _, name := range DefaultNames {
		l.Equip(NewDamaging(name))
	}
	return l
}

// Equip appends an ability. Names are expected to be unique but are not enforced.
func (l *Loadout) Equip(a *Ability) {
	if a == nil {
		return
	}
	l.equipped = append(l.equipped, a)
}

// Unequip removes every ability with the given name and returns how many were removed
func (l *Loadout) Unequip(name string) int {
	kept := l.equipped[:0:0]
	removed := 0
	for _, a := range l.equipped {
		if a.Name == name {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	l.equipped = kept
	return removed
}

// Equipped returns the equipped abilities in order
func (l *Loadout) Equipped() []*Ability {
	return append([]*Ability(nil), l.equipped...)
}

// Len returns the number of equipped abilities
func (l *Loadout) Len() int {
	return len(l.equipped)
}

// FindAll returns every equipped ability named name, or an invalid-key error when none match
func (l *Loadout) FindAll(name string) ([]*Ability, error) {
	var found []*Ability
	for _, a := range l.equipped {
		if a.Name == name {
			found = append(found, a)
		}
	}
	if len(found) == 0 {
		return nil, simerrors.UnknownKey("ability", name, l.Names())
	}
	return found, nil
}

// Names returns the equipped ability names in order
func (l *Loadout) Names() []string {
	names := make([]string, len(l.equipped))
	for i, a := range l.equipped {
		names[i] = a.Name
	}
	return names
}
