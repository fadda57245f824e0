package sessions

import (
	"context"

	"github.com/KirkDiggler/upgrade-sim/internal/domain/session"
)

// Repository defines the interface for session storage operations
type Repository interface {
	Create(ctx context.Context, session *session.Session) error
	Get(ctx context.Context, id string) (*session.Session, error)
	Update(ctx context.Context, session *session.Session) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*session.Session, error)
}
