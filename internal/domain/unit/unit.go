package unit

import (
	"io"
	"log"
	"os"

	"github.com/KirkDiggler/upgrade-sim/internal/domain/abilities"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/events"
	"github.com/KirkDiggler/upgrade-sim/internal/effects"
	"github.com/KirkDiggler/upgrade-sim/internal/uuid"
)

const (
	DefaultHealth = 1000
	DefaultSpeed  = 10.0
)

// Config configures a new Unit. Zero values fall back to defaults.
type Config struct {
	ID          string
	Name        string
	Health      int
	Speed       float64
	TickDelta   float64
	Abilities   *abilities.Loadout
	Output      io.Writer // verbose tick lines; defaults to stdout
	IDGenerator uuid.Generator
	EventBus    events.Bus
}

// Unit is anything buffer effects can be attached to. Effects live in one bucket
// per kind, in the order they were applied.
type Unit struct {
	ID        string
	Name      string
	Health    int
	Speed     float64
	TickDelta float64
	Abilities *abilities.Loadout

	buckets     map[effects.Kind][]*effects.Effect
	hasEffects  bool
	defeated    bool
	damageTaken map[effects.Kind]int

	output io.Writer
	ids    uuid.Generator
	bus    events.Bus
}

// TickReport summarizes one Tick
type TickReport struct {
	HadEffects bool
	Ticked     int
	Expired    int
	Damage     int
}

// New creates a unit
func New(cfg *Config) *Unit {
	if cfg == nil {
		cfg = &Config{}
	}

	u := &Unit{
		ID:          cfg.ID,
		Name:        cfg.Name,
		Health:      cfg.Health,
		Speed:       cfg.Speed,
		TickDelta:   cfg.TickDelta,
		Abilities:   cfg.Abilities,
		buckets:     make(map[effects.Kind][]*effects.Effect, len(effects.Kinds)),
		damageTaken: make(map[effects.Kind]int),
		output:      cfg.Output,
		ids:         cfg.IDGenerator,
		bus:         cfg.EventBus,
	}

	if u.Health == 0 {
		u.Health = DefaultHealth
	}
	if u.Speed == 0 {
		u.Speed = DefaultSpeed
	}
	if u.TickDelta <= 0 {
		u.TickDelta = effects.DefaultTickDelta
	}
	if u.Abilities == nil {
		u.Abilities = abilities.NewLoadout()
	}
	if u.output == nil {
		u.output = os.Stdout
	}
	if u.ids == nil {
		u.ids = uuid.NewGoogleUUIDGenerator()
	}
	if u.ID == "" {
		u.ID = u.ids.New()
	}

	return u
}

// TakeDamage lowers health. Health floors at zero; the first time it gets there
// the unit is defeated and OnUnitDefeated is emitted.
func (u *Unit) TakeDamage(amount int) {
	u.Health -= amount
	if u.Health > 0 {
		return
	}

	u.Health = 0
	if u.defeated {
		return
	}
	u.defeated = true
	log.Printf("[EFFECTS] Unit %s defeated", u.ID)
	u.emit(events.NewGameEvent(events.OnUnitDefeated, u.ID))
}

// Defeated reports whether health has reached zero
func (u *Unit) Defeated() bool {
	return u.defeated
}

// ApplyEffect attaches a new effect of kind with its default damage and duration
func (u *Unit) ApplyEffect(kind effects.Kind) (*effects.Effect, error) {
	return u.ApplyEffectWith(effects.NewBuilder(kind))
}

// ApplyEffectWith attaches an effect built by b
func (u *Unit) ApplyEffectWith(b *effects.Builder) (*effects.Effect, error) {
	e, err := b.Build(u.ids.New(), u)
	if err != nil {
		return nil, err
	}

	u.buckets[e.Kind] = append(u.buckets[e.Kind], e)
	u.emit(events.NewGameEvent(events.OnEffectApplied, u.ID).
		WithContext(events.ContextEffectID, e.ID).
		WithContext(events.ContextEffectKind, string(e.Kind)).
		WithContext(events.ContextRemaining, e.Remaining))

	return e, nil
}

// Tick counts down every effect once, in bucket order then application order,
// and drops the ones that expired. HasEffects afterwards reports whether any
// bucket held an effect before this tick's removals.
func (u *Unit) Tick(verbose bool) TickReport {
	var w io.Writer
	if verbose {
		w = u.output
	}

	report := TickReport{}
	for _, kind := range effects.Kinds {
		bucket := u.buckets[kind]
		if len(bucket) == 0 {
			continue
		}
		report.HadEffects = true

		survivors := make([]*effects.Effect, 0, len(bucket))
		for _, e := range bucket {
			res := e.Tick(u.TickDelta, w)
			report.Ticked++
			report.Damage += res.Damage
			u.damageTaken[kind] += res.Damage

			u.emit(events.NewGameEvent(events.OnEffectTicked, u.ID).
				WithContext(events.ContextEffectID, e.ID).
				WithContext(events.ContextEffectKind, string(kind)).
				WithContext(events.ContextDamage, res.Damage).
				WithContext(events.ContextRemaining, res.Remaining).
				WithContext(events.ContextHealth, u.Health))

			if res.Expired {
				report.Expired++
				u.emit(events.NewGameEvent(events.OnEffectExpired, u.ID).
					WithContext(events.ContextEffectID, e.ID).
					WithContext(events.ContextEffectKind, string(kind)))
				continue
			}
			survivors = append(survivors, e)
		}
		u.buckets[kind] = survivors
	}

	u.hasEffects = report.HadEffects
	return report
}

// HasEffects is the flag recomputed by the last Tick
func (u *Unit) HasEffects() bool {
	return u.hasEffects
}

// ActiveEffects returns how many effects are attached right now
func (u *Unit) ActiveEffects() int {
	n := 0
	for _, bucket := range u.buckets {
		n += len(bucket)
	}
	return n
}

// Effects returns the effects of kind in application order
func (u *Unit) Effects(kind effects.Kind) []*effects.Effect {
	return append([]*effects.Effect(nil), u.buckets[kind]...)
}

// DamageTaken returns the total damage dealt by effects of kind
func (u *Unit) DamageTaken(kind effects.Kind) int {
	return u.damageTaken[kind]
}

func (u *Unit) emit(event *events.GameEvent) {
	if u.bus == nil {
		return
	}
	if err := u.bus.Emit(event); err != nil {
		log.Printf("[EFFECTS] Failed to emit %s for unit %s: %v", event.Type, u.ID, err)
	}
}
