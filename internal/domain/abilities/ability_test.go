package abilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/upgrade-sim/internal/domain/attributes"
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

func TestNew(t *testing.T) {
	t.Run("seeds module values from the base table", func(t *testing.T) {
		a, err := New("Peck", attributes.Damage, attributes.Area)
		require.NoError(t, err)

		assert.Equal(t, []attributes.Key{attributes.Damage, attributes.Area}, a.Modules())
		dmg, err := a.Value(attributes.Damage)
		require.NoError(t, err)
		assert.Equal(t, 20.0, dmg)
		assert.False(t, a.HasModule(attributes.CastRate))
	})

	t.Run("rejects modules outside the base table", func(t *testing.T) {
		_, err := New("Peck", attributes.Speed)
		require.Error(t, err)
		assert.True(t, simerrors.IsInvalidArgument(err))
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := New("", attributes.Damage)
		assert.Error(t, err)
	})

	t.Run("instances are independent", func(t *testing.T) {
		a := NewDamaging("Punch")
		b := NewDamaging("Kick")

		require.NoError(t, a.ApplyUpgrade(attributes.CastRate, 0.2))

		av, _ := a.Value(attributes.CastRate)
		bv, _ := b.Value(attributes.CastRate)
		assert.InDelta(t, 5.2, av, 1e-9)
		assert.Equal(t, 5.0, bv)
		assert.Equal(t, 5.0, BaseValues[attributes.CastRate])
	})
}

func TestAbility_ApplyUpgrade_UnknownModule(t *testing.T) {
	a, err := New("Peck", attributes.Damage)
	require.NoError(t, err)

	err = a.ApplyUpgrade(attributes.Area, 0.1)

	require.Error(t, err)
	assert.True(t, simerrors.IsInvalidArgument(err))
	assert.Equal(t, "Peck", simerrors.GetMeta(err)["ability"])
}

func TestLoadout(t *testing.T) {
	l := NewDefaultLoadout()
	require.Equal(t, []string{"Punch", "Kick", "Grapple"}, l.Names())

	t.Run("find all matches", func(t *testing.T) {
		l.Equip(NewDamaging("Kick"))
		found, err := l.FindAll("Kick")
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("unknown name suggests a close match", func(t *testing.T) {
		_, err := l.FindAll("Kik")
		require.Error(t, err)
		assert.Equal(t, "Kick", simerrors.GetMeta(err)["suggestion"])
	})

	t.Run("unequip removes every match", func(t *testing.T) {
		assert.Equal(t, 2, l.Unequip("Kick"))
		assert.Equal(t, []string{"Punch", "Grapple"}, l.Names())
		assert.Equal(t, 0, l.Unequip("Kick"))
	})
}
