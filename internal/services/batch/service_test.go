package batch_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/upgrade-sim/internal/effects"
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
	"github.com/KirkDiggler/upgrade-sim/internal/repositories/sessions"
	"github.com/KirkDiggler/upgrade-sim/internal/services/batch"
	sessionService "github.com/KirkDiggler/upgrade-sim/internal/services/session"
	"github.com/KirkDiggler/upgrade-sim/internal/uuid"
)

func newSessionService() (sessionService.Service, sessions.Repository) {
	repo := sessions.NewInMemoryRepository(nil)
	return sessionService.NewService(&sessionService.ServiceConfig{
		Repository:    repo,
		UUIDGenerator: uuid.NewSequenceGenerator("b"),
		Output:        &bytes.Buffer{},
	}), repo
}

func TestRunner_Run(t *testing.T) {
	svc, repo := newSessionService()
	runner, err := batch.NewRunner(&batch.Config{
		SessionService: svc,
		Sessions:       4,
		Ticks:          10,
		Seed:           42,
	})
	require.NoError(t, err)

	summaries, err := runner.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, summaries, 4)
	for i, s := range summaries {
		require.NotNil(t, s, "session %d", i)
		assert.Len(t, s.Chosen, batch.ProposalRounds)
		// 3 effects, 5 damage a tick, 10 ticks each
		assert.Equal(t, 1000-150, s.UnitHealth)
		for _, kind := range effects.Implemented() {
			assert.Equal(t, 50, s.DamageTaken[kind])
		}
		// fighter_01 twice then fighter_02 and fighter_03 applied to base
		assert.GreaterOrEqual(t, s.Damage, 1.2-1e-9)
		assert.GreaterOrEqual(t, s.CastRate, 1.1-1e-9)
		assert.GreaterOrEqual(t, s.Area, 1.1-1e-9)
		assert.Contains(t, s.String(), s.Name)
	}

	remaining, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, remaining, "sessions end after the run")
}

func TestRunner_SeedIsReproducible(t *testing.T) {
	run := func() []*batch.Summary {
		svc, _ := newSessionService()
		runner, err := batch.NewRunner(&batch.Config{SessionService: svc, Sessions: 2, Ticks: 1, Seed: 7})
		require.NoError(t, err)
		summaries, err := runner.Run(context.Background())
		require.NoError(t, err)
		return summaries
	}

	first, second := run(), run()
	for i := range first {
		assert.Equal(t, first[i].Chosen, second[i].Chosen)
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	svc, _ := newSessionService()
	runner, err := batch.NewRunner(&batch.Config{SessionService: svc, Sessions: 2, Ticks: 5})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = runner.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRunner_Validation(t *testing.T) {
	svc, _ := newSessionService()

	_, err := batch.NewRunner(&batch.Config{Sessions: 1})
	assert.True(t, simerrors.IsInvalidArgument(err))

	_, err = batch.NewRunner(&batch.Config{SessionService: svc})
	assert.True(t, simerrors.IsInvalidArgument(err))

	_, err = batch.NewRunner(&batch.Config{SessionService: svc, Sessions: 1, Ticks: -1})
	assert.True(t, simerrors.IsInvalidArgument(err))
}
