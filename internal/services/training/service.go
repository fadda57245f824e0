package training

import (
	"context"
	"log"

	"github.com/KirkDiggler/upgrade-sim/internal/domain/character"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/events"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/skilltree"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/upgrades"
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

// Service learns skill tree nodes for one character and applies the trees
type Service interface {
	// LearnNode learns a node. Unmet prerequisites are logged and returned as a
	// failed precondition; the node stays locked.
	LearnNode(ctx context.Context, treeKey, nodeKey string) (skilltree.LearnResult, error)

	// ApplyTree pushes the tree's applied log into the character's base values.
	// It is meant to be called once per session; a repeat call applies the log again.
	ApplyTree(ctx context.Context, treeKey string) (int, error)

	// AppliedLog returns the upgrades queued on a tree
	AppliedLog(treeKey string) ([]upgrades.Upgrade, error)
}

// Config holds the dependencies for the training service
type Config struct {
	Character *character.Character // Required
	Forest    *skilltree.Forest    // Required
	EventBus  events.Bus           // Optional
}

type service struct {
	character *character.Character
	forest    *skilltree.Forest
	bus       events.Bus
}

// NewService creates a new training service
func NewService(cfg *Config) Service {
	if cfg == nil || cfg.Character == nil {
		panic("character is required")
	}
	if cfg.Forest == nil {
		panic("forest is required")
	}

	return &service{
		character: cfg.Character,
		forest:    cfg.Forest,
		bus:       cfg.EventBus,
	}
}

func (s *service) LearnNode(ctx context.Context, treeKey, nodeKey string) (skilltree.LearnResult, error) {
	if err := ctx.Err(); err != nil {
		return skilltree.LearnResult{}, err
	}

	tree, err := s.forest.Tree(treeKey)
	if err != nil {
		return skilltree.LearnResult{}, err
	}

	res, err := tree.LearnKey(nodeKey)
	if err != nil {
		if simerrors.IsFailedPrecondition(err) {
			log.Printf("[SKILLTREE] %v", err)
			unmet, _ := simerrors.GetMeta(err)["unmet"].([]string)
			s.emit(events.NewGameEvent(events.OnNodeLocked, s.character.ID).
				WithContext(events.ContextTreeKey, treeKey).
				WithContext(events.ContextNodeKey, nodeKey).
				WithContext(events.ContextUnmet, unmet))
		}
		return res, err
	}

	if !res.Queued {
		log.Printf("[SKILLTREE] %s is already learned the maximum %d times", nodeKey, res.Node.MaxTimesLearnable)
		return res, nil
	}

	log.Printf("[SKILLTREE] Learned: %s", res.Node)
	log.Printf("[SKILLTREE] %s can be learned %d more times", nodeKey, res.RemainingLearns)
	s.emit(events.NewGameEvent(events.OnNodeLearned, s.character.ID).
		WithContext(events.ContextTreeKey, treeKey).
		WithContext(events.ContextNodeKey, nodeKey).
		WithContext(events.ContextUpgrade, res.Node.Upgrade.String()).
		WithContext(events.ContextTimesLearned, res.Node.TimesLearned))

	return res, nil
}

func (s *service) ApplyTree(ctx context.Context, treeKey string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	tree, err := s.forest.Tree(treeKey)
	if err != nil {
		return 0, err
	}

	if tree.Applications() > 0 {
		log.Printf("[SKILLTREE] Warning: tree %s was already applied to %s, its upgrades will stack again", treeKey, s.character.ID)
	}

	applied, err := tree.Apply(s.character)
	if err != nil {
		log.Printf("[SKILLTREE] Skipped upgrades while applying %s: %v", treeKey, err)
	}
	log.Printf("[SKILLTREE] Applied %d upgrades from %s to %s", applied, treeKey, s.character.Name)

	s.emit(events.NewGameEvent(events.OnTreeApplied, s.character.ID).
		WithContext(events.ContextTreeKey, treeKey).
		WithContext(events.ContextApplied, applied))

	return applied, err
}

func (s *service) AppliedLog(treeKey string) ([]upgrades.Upgrade, error) {
	tree, err := s.forest.Tree(treeKey)
	if err != nil {
		return nil, err
	}
	return tree.AppliedLog(), nil
}

func (s *service) emit(event *events.GameEvent) {
	if err := events.Emit(s.bus, event); err != nil {
		log.Printf("[SKILLTREE] Failed to emit %s: %v", event.Type, err)
	}
}
