package upgrade

import (
	"context"
	"log"

	"github.com/KirkDiggler/upgrade-sim/internal/dice"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/attributes"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/character"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/events"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/upgrades"
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

const (
	// ProposalCount is how many distinct upgrades one Propose call offers
	ProposalCount = 3

	// DefaultMaxAttempts bounds the draws made by one Propose call
	DefaultMaxAttempts = 100
)

// Service offers random upgrades to a character and applies the one chosen
type Service interface {
	// Propose draws ProposalCount upgrades that are pairwise distinct by key
	Propose(ctx context.Context, c *character.Character) ([]upgrades.Upgrade, error)

	// Choose applies proposals[selection-1] to c as a live bonus
	Choose(ctx context.Context, c *character.Character, proposals []upgrades.Upgrade, selection int) (upgrades.Upgrade, error)
}

// Config holds the dependencies for the upgrade service
type Config struct {
	Roller      dice.Roller // Required
	EventBus    events.Bus  // Optional
	MaxAttempts int         // Optional, defaults to DefaultMaxAttempts
}

type service struct {
	roller      dice.Roller
	bus         events.Bus
	maxAttempts int
}

// NewService creates a new upgrade service
func NewService(cfg *Config) Service {
	if cfg == nil || cfg.Roller == nil {
		panic("roller is required")
	}

	svc := &service{
		roller:      cfg.Roller,
		bus:         cfg.EventBus,
		maxAttempts: cfg.MaxAttempts,
	}
	if svc.maxAttempts <= 0 {
		svc.maxAttempts = DefaultMaxAttempts
	}
	return svc
}

func (s *service) Propose(ctx context.Context, c *character.Character) ([]upgrades.Upgrade, error) {
	if c == nil {
		return nil, simerrors.InvalidArgumentf("character is required")
	}

	if space := candidateSpace(c); space < ProposalCount {
		return nil, simerrors.ResourceExhaustedf("only %d distinct upgrades exist for %s, need %d", space, c.Name, ProposalCount)
	}

	proposed := make([]upgrades.Upgrade, 0, ProposalCount)
	seen := make(map[upgrades.Key]bool, ProposalCount)

	for attempt := 0; len(proposed) < ProposalCount; attempt++ {
		if attempt >= s.maxAttempts {
			return nil, simerrors.ResourceExhaustedf("found %d distinct upgrades in %d draws, need %d", len(proposed), attempt, ProposalCount)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		u, err := s.draw(c)
		if err != nil {
			return nil, simerrors.Wrap(err, "failed to draw upgrade")
		}
		if u == nil || seen[u.Key()] {
			continue
		}

		seen[u.Key()] = true
		proposed = append(proposed, u)
	}

	return proposed, nil
}

func (s *service) Choose(ctx context.Context, c *character.Character, proposals []upgrades.Upgrade, selection int) (upgrades.Upgrade, error) {
	if c == nil {
		return nil, simerrors.InvalidArgumentf("character is required")
	}
	if selection < 1 || selection > len(proposals) {
		return nil, simerrors.OutOfRangef("selection %d is not between 1 and %d", selection, len(proposals)).
			WithMeta("selection", selection).
			WithMeta("choices", len(proposals))
	}

	chosen := proposals[selection-1]
	if err := chosen.Apply(c); err != nil {
		log.Printf("[PROGRESSION] Failed to apply %s to %s: %v", chosen, c.ID, err)
		return nil, err
	}
	log.Printf("[PROGRESSION] %s chose %s", c.Name, chosen)

	err := events.Emit(s.bus, events.NewGameEvent(events.OnUpgradeApplied, c.ID).
		WithContext(events.ContextUpgrade, chosen.String()).
		WithContext(events.ContextSelection, selection))
	if err != nil {
		log.Printf("[PROGRESSION] Failed to emit %s: %v", events.OnUpgradeApplied, err)
	}

	return chosen, nil
}

// draw makes one random candidate. A nil upgrade means the draw found nothing
// to offer, such as an ability draw with nothing equipped.
func (s *service) draw(c *character.Character) (upgrades.Upgrade, error) {
	variant, err := dice.Pick(s.roller, 2)
	if err != nil {
		return nil, err
	}

	if variant == 0 {
		i, err := dice.Pick(s.roller, len(attributes.Keys))
		if err != nil {
			return nil, err
		}
		return upgrades.NewTraitUpgrade(attributes.Keys[i])
	}

	equipped := c.Loadout.Equipped()
	if len(equipped) == 0 {
		return nil, nil
	}
	i, err := dice.Pick(s.roller, len(equipped))
	if err != nil {
		return nil, err
	}
	ability := equipped[i]

	modules := ability.Modules()
	if len(modules) == 0 {
		return nil, nil
	}
	m, err := dice.Pick(s.roller, len(modules))
	if err != nil {
		return nil, err
	}
	return upgrades.NewAbilityUpgrade(ability.Name, modules[m])
}

// candidateSpace counts the distinct upgrade keys c could be offered
func candidateSpace(c *character.Character) int {
	keys := make(map[upgrades.Key]bool)
	for _, k := range attributes.Keys {
		if u, err := upgrades.NewTraitUpgrade(k); err == nil {
			keys[u.Key()] = true
		}
	}
	for _, a := range c.Loadout.Equipped() {
		for _, m := range a.Modules() {
			if u, err := upgrades.NewAbilityUpgrade(a.Name, m); err == nil {
				keys[u.Key()] = true
			}
		}
	}
	return len(keys)
}
