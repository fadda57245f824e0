package services

import (
	"io"

	"github.com/KirkDiggler/upgrade-sim/internal/config"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/session"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/skilltree"
	"github.com/KirkDiggler/upgrade-sim/internal/repositories/sessions"
	sessionService "github.com/KirkDiggler/upgrade-sim/internal/services/session"
	"github.com/KirkDiggler/upgrade-sim/internal/services/training"
	"github.com/KirkDiggler/upgrade-sim/internal/services/upgrade"
	"github.com/KirkDiggler/upgrade-sim/internal/uuid"
)

// Provider holds the process-wide services
type Provider struct {
	SessionService sessionService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Config            *config.Config      // Required
	SessionRepository sessions.Repository // Optional, defaults to in-memory
	UUIDGenerator     uuid.Generator      // Optional
	Output            io.Writer           // Optional, verbose tick output
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil || cfg.Config == nil {
		panic("config is required")
	}

	sessionRepo := cfg.SessionRepository
	if sessionRepo == nil {
		sessionRepo = sessions.NewInMemoryRepository(nil)
	}

	var loader sessionService.ForestLoader
	if file := cfg.Config.Trees.File; file != "" {
		loader = func() (*skilltree.Forest, error) { return skilltree.LoadFile(file) }
	}

	sessService := sessionService.NewService(&sessionService.ServiceConfig{
		Repository:    sessionRepo,
		UUIDGenerator: cfg.UUIDGenerator,
		ForestLoader:  loader,
		TickDelta:     cfg.Config.Sim.TickDelta,
		Output:        cfg.Output,
	})

	return &Provider{
		SessionService: sessService,
	}
}

// SessionServices are the services bound to one session's state
type SessionServices struct {
	Upgrades upgrade.Service
	Training training.Service
}

// ForSession builds the services that act on sess
func ForSession(sess *session.Session) *SessionServices {
	return &SessionServices{
		Upgrades: upgrade.NewService(&upgrade.Config{
			Roller:   sess.Roller,
			EventBus: sess.Bus,
		}),
		Training: training.NewService(&training.Config{
			Character: sess.Character,
			Forest:    sess.Forest,
			EventBus:  sess.Bus,
		}),
	}
}
