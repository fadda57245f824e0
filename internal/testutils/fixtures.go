package testutils

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/upgrade-sim/internal/dice"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/character"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/session"
	"github.com/KirkDiggler/upgrade-sim/internal/repositories/sessions"
	sessionService "github.com/KirkDiggler/upgrade-sim/internal/services/session"
	"github.com/KirkDiggler/upgrade-sim/internal/uuid"
)

// CreateTestCharacter creates a character with default stats and loadout
func CreateTestCharacter(id string) *character.Character {
	return character.New(id, "Test "+id)
}

// CreateTestSession creates a stored session whose dice are roller and whose
// IDs come from a "test" sequence
func CreateTestSession(t *testing.T, roller dice.Roller) *session.Session {
	t.Helper()

	svc := sessionService.NewService(&sessionService.ServiceConfig{
		Repository:    sessions.NewInMemoryRepository(nil),
		UUIDGenerator: uuid.NewSequenceGenerator("test"),
		RollerFactory: func(int64) dice.Roller { return roller },
		Output:        &bytes.Buffer{},
	})
	sess, err := svc.CreateSession(context.Background(), &sessionService.CreateSessionInput{
		Name:          "test",
		CharacterName: "Hero",
	})
	require.NoError(t, err)
	return sess
}
