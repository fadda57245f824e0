package effects

import (
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

// Kind is a buffer effect kind
type Kind string

const (
	Burn   Kind = "burn"
	Bleed  Kind = "bleed"
	Frost  Kind = "frost"
	Doom   Kind = "doom"
	Poison Kind = "poison"
)

// Kinds lists every declared kind in bucket order
var Kinds = []Kind{Burn, Bleed, Frost, Doom, Poison}

const (
	// DefaultDamage is dealt by damaging effects on every tick
	DefaultDamage = 5
	// DefaultDuration is the lifetime of a new effect
	DefaultDuration = 5.0
	// DefaultTickDelta is subtracted from the remaining duration per tick
	DefaultTickDelta = 0.5
)

// Profile describes how an implemented kind behaves
type Profile struct {
	Kind     Kind
	Label    string
	Damage   int
	Duration float64
}

// profiles holds implemented kinds only; doom and frost are declared but reserved
var profiles = map[Kind]Profile{
	Burn:   {Kind: Burn, Label: "Burn", Damage: DefaultDamage, Duration: DefaultDuration},
	Bleed:  {Kind: Bleed, Label: "Bleed", Damage: DefaultDamage, Duration: DefaultDuration},
	Poison: {Kind: Poison, Label: "Poison", Damage: DefaultDamage, Duration: DefaultDuration},
}

// Lookup returns the profile for a kind. Reserved kinds return an unimplemented
// error and undeclared kinds an invalid-key error.
func Lookup(kind Kind) (Profile, error) {
	if profile, ok := profiles[kind]; ok {
		return profile, nil
	}
	if IsDeclared(kind) {
		return Profile{}, simerrors.Unimplementedf("effect kind %s is reserved but not implemented", kind).
			WithMeta("kind", string(kind))
	}
	return Profile{}, simerrors.UnknownKey("effect kind", string(kind), KindStrings())
}

// ParseKind converts a name into a declared kind
func ParseKind(name string) (Kind, error) {
	kind := Kind(name)
	if !IsDeclared(kind) {
		return "", simerrors.UnknownKey("effect kind", name, KindStrings())
	}
	return kind, nil
}

// IsDeclared reports whether kind is one of Kinds
func IsDeclared(kind Kind) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Implemented returns the kinds that can be applied, in bucket order
func Implemented() []Kind {
	var out []Kind
	for _, k := range Kinds {
		if _, ok := profiles[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// KindStrings returns the declared kinds as strings
func KindStrings() []string {
	out := make([]string, len(Kinds))
	for i, k := range Kinds {
		out[i] = string(k)
	}
	return out
}
