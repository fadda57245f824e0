package session

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/KirkDiggler/upgrade-sim/internal/dice"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/character"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/events"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/session"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/skilltree"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/unit"
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
	"github.com/KirkDiggler/upgrade-sim/internal/repositories/sessions"
	"github.com/KirkDiggler/upgrade-sim/internal/uuid"
)

// Repository is an alias for the session repository interface
type Repository = sessions.Repository

// Service defines the session service interface
type Service interface {
	// CreateSession builds a session with fresh state and stores it
	CreateSession(ctx context.Context, input *CreateSessionInput) (*session.Session, error)

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, sessionID string) (*session.Session, error)

	// EndSession removes a session
	EndSession(ctx context.Context, sessionID string) error

	// ListSessions lists every live session
	ListSessions(ctx context.Context) ([]*session.Session, error)
}

// CreateSessionInput contains data for creating a session
type CreateSessionInput struct {
	Name          string
	CharacterName string // Optional, defaults to Name
	Seed          int64  // 0 seeds the session's dice from the clock
}

// ForestLoader builds a fresh forest for each session
type ForestLoader func() (*skilltree.Forest, error)

// RollerFactory builds the dice for a session
type RollerFactory func(seed int64) dice.Roller

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository     // Required
	UUIDGenerator uuid.Generator // Optional, will use default if nil
	ForestLoader  ForestLoader   // Optional, defaults to the built-in trees
	RollerFactory RollerFactory  // Optional, defaults to dice.NewRandomRoller
	TickDelta     float64        // Optional, defaults to the effect default
	Output        io.Writer      // Optional, verbose tick output for units
}

type service struct {
	repository    Repository
	uuidGenerator uuid.Generator
	loadForest    ForestLoader
	newRoller     RollerFactory
	tickDelta     float64
	output        io.Writer
}

// NewService creates a new session service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		uuidGenerator: cfg.UUIDGenerator,
		loadForest:    cfg.ForestLoader,
		newRoller:     cfg.RollerFactory,
		tickDelta:     cfg.TickDelta,
		output:        cfg.Output,
	}

	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.loadForest == nil {
		svc.loadForest = func() (*skilltree.Forest, error) { return skilltree.DefaultForest(), nil }
	}
	if svc.newRoller == nil {
		svc.newRoller = dice.NewRandomRoller
	}

	return svc
}

// CreateSession creates a new session
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*session.Session, error) {
	if input == nil {
		return nil, simerrors.InvalidArgumentf("input cannot be nil")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, simerrors.InvalidArgumentf("session name is required")
	}

	forest, err := s.loadForest()
	if err != nil {
		return nil, simerrors.Wrap(err, "failed to load skill trees").
			WithMeta("session_name", input.Name)
	}

	charName := input.CharacterName
	if charName == "" {
		charName = input.Name
	}

	sessionID := s.uuidGenerator.New()
	bus := events.NewEventBus()
	c := character.New(s.uuidGenerator.New(), charName)

	sess := &session.Session{
		ID:        sessionID,
		Name:      input.Name,
		Character: c,
		Unit: unit.New(&unit.Config{
			Name:        "Training Dummy",
			TickDelta:   s.tickDelta,
			Output:      s.output,
			IDGenerator: s.uuidGenerator,
			EventBus:    bus,
		}),
		Forest: forest,
		Bus:    bus,
		Roller: s.newRoller(input.Seed),
	}

	if err := s.repository.Create(ctx, sess); err != nil {
		return nil, simerrors.Wrap(err, "failed to create session").
			WithMeta("session_id", sessionID).
			WithMeta("session_name", input.Name)
	}

	log.Printf("[SESSION] Created session %s (%s)", sess.ID, sess.Name)
	return sess, nil
}

// GetSession retrieves a session by ID
func (s *service) GetSession(ctx context.Context, sessionID string) (*session.Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, simerrors.InvalidArgumentf("session ID is required")
	}

	sess, err := s.repository.Get(ctx, sessionID)
	if err != nil {
		return nil, simerrors.Wrapf(err, "failed to get session '%s'", sessionID).
			WithMeta("session_id", sessionID)
	}

	return sess, nil
}

// EndSession removes a session
func (s *service) EndSession(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return simerrors.InvalidArgumentf("session ID is required")
	}

	sess, err := s.repository.Get(ctx, sessionID)
	if err != nil {
		return simerrors.Wrapf(err, "failed to end session '%s'", sessionID)
	}
	sess.Bus.Clear()

	if err := s.repository.Delete(ctx, sessionID); err != nil {
		return simerrors.Wrapf(err, "failed to end session '%s'", sessionID)
	}

	log.Printf("[SESSION] Ended session %s", sessionID)
	return nil
}

// ListSessions lists every live session
func (s *service) ListSessions(ctx context.Context) ([]*session.Session, error) {
	all, err := s.repository.List(ctx)
	if err != nil {
		return nil, simerrors.Wrap(err, "failed to list sessions")
	}
	return all, nil
}
