package sessions_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/upgrade-sim/internal/domain/session"
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
	"github.com/KirkDiggler/upgrade-sim/internal/repositories/sessions"
)

func TestInMemoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	clock := &sessions.FixedTimeProvider{T: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo := sessions.NewInMemoryRepository(&sessions.InMemoryConfig{TimeProvider: clock})

	t.Run("Create and Get", func(t *testing.T) {
		err := repo.Create(ctx, &session.Session{ID: "s1", Name: "first"})
		require.NoError(t, err)

		got, err := repo.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "first", got.Name)
		assert.Equal(t, clock.T, got.CreatedAt)
	})

	t.Run("Create rejects duplicates", func(t *testing.T) {
		err := repo.Create(ctx, &session.Session{ID: "s1"})
		assert.True(t, simerrors.Is(err, simerrors.CodeAlreadyExists))
	})

	t.Run("Create rejects missing ID", func(t *testing.T) {
		assert.True(t, simerrors.IsInvalidArgument(repo.Create(ctx, &session.Session{})))
		assert.True(t, simerrors.IsInvalidArgument(repo.Create(ctx, nil)))
	})

	t.Run("Update keeps CreatedAt", func(t *testing.T) {
		clock.T = clock.T.Add(time.Hour)
		err := repo.Update(ctx, &session.Session{ID: "s1", Name: "renamed"})
		require.NoError(t, err)

		got, err := repo.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Name)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))
	})

	t.Run("Update missing", func(t *testing.T) {
		err := repo.Update(ctx, &session.Session{ID: "nope"})
		assert.True(t, simerrors.IsNotFound(err))
	})

	t.Run("List oldest first", func(t *testing.T) {
		clock.T = clock.T.Add(time.Hour)
		require.NoError(t, repo.Create(ctx, &session.Session{ID: "s2"}))

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "s1", all[0].ID)
		assert.Equal(t, "s2", all[1].ID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "s1"))

		_, err := repo.Get(ctx, "s1")
		assert.True(t, simerrors.IsNotFound(err))
		assert.Equal(t, "s1", simerrors.GetMeta(err)["session_id"])
		assert.True(t, simerrors.IsNotFound(repo.Delete(ctx, "s1")))
	})
}
