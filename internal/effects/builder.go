package effects

import (
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

// Builder creates effect instances, starting from a kind's defaults
type Builder struct {
	kind     Kind
	damage   *int
	duration *float64
}

// NewBuilder creates a builder for kind
func NewBuilder(kind Kind) *Builder {
	return &Builder{kind: kind}
}

// WithDamage overrides the per-tick damage
func (b *Builder) WithDamage(damage int) *Builder {
	b.damage = &damage
	return b
}

// WithDuration overrides the starting duration
func (b *Builder) WithDuration(duration float64) *Builder {
	b.duration = &duration
	return b
}

// Build creates an alive effect owned by owner
func (b *Builder) Build(id string, owner Target) (*Effect, error) {
	profile, err := Lookup(b.kind)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, simerrors.InvalidArgumentf("effect %s needs an owner", b.kind)
	}

	e := &Effect{
		ID:        id,
		Kind:      profile.Kind,
		Label:     profile.Label,
		Damage:    profile.Damage,
		Remaining: profile.Duration,
		State:     StateAlive,
		owner:     owner,
	}
	if b.damage != nil {
		e.Damage = *b.damage
	}
	if b.duration != nil {
		if *b.duration <= 0 {
			return nil, simerrors.InvalidArgumentf("effect duration must be positive, got %v", *b.duration)
		}
		e.Remaining = *b.duration
	}

	return e, nil
}
