package sessions

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/upgrade-sim/internal/domain/session"
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage.
// Sessions are stored by pointer: their game state is live and owned by the session.
type inMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
	clock    TimeProvider
}

// InMemoryConfig configures the in-memory repository
type InMemoryConfig struct {
	TimeProvider TimeProvider // Optional, defaults to the wall clock
}

// NewInMemoryRepository creates a new in-memory session repository
func NewInMemoryRepository(cfg *InMemoryConfig) Repository {
	repo := &inMemoryRepository{
		sessions: make(map[string]*session.Session),
	}
	if cfg != nil {
		repo.clock = cfg.TimeProvider
	}
	if repo.clock == nil {
		repo.clock = &RealTimeProvider{}
	}
	return repo
}

// Create stores a new session
func (r *inMemoryRepository) Create(ctx context.Context, s *session.Session) error {
	if s == nil {
		return simerrors.InvalidArgumentf("session cannot be nil")
	}
	if s.ID == "" {
		return simerrors.InvalidArgumentf("session ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.ID]; exists {
		return simerrors.AlreadyExistsf("session with ID %s already exists", s.ID)
	}

	now := r.clock.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	r.sessions[s.ID] = s

	return nil
}

// Get retrieves a session by ID
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[id]
	if !exists {
		return nil, simerrors.NotFoundf("session not found: %s", id).WithMeta("session_id", id)
	}
	return s, nil
}

// Update replaces a stored session
func (r *inMemoryRepository) Update(ctx context.Context, s *session.Session) error {
	if s == nil {
		return simerrors.InvalidArgumentf("session cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.sessions[s.ID]
	if !exists {
		return simerrors.NotFoundf("session not found: %s", s.ID).WithMeta("session_id", s.ID)
	}

	s.CreatedAt = existing.CreatedAt
	s.UpdatedAt = r.clock.Now()
	r.sessions[s.ID] = s

	return nil
}

// Delete removes a session
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; !exists {
		return simerrors.NotFoundf("session not found: %s", id).WithMeta("session_id", id)
	}
	delete(r.sessions, id)

	return nil
}

// List returns every session, oldest first
func (r *inMemoryRepository) List(ctx context.Context) ([]*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*session.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}
