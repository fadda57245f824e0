package effects

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

type dummyTarget struct {
	health int
}

func (d *dummyTarget) TakeDamage(amount int) {
	d.health -= amount
}

func TestLookup(t *testing.T) {
	t.Run("implemented kinds", func(t *testing.T) {
		for _, k := range []Kind{Burn, Bleed, Poison} {
			profile, err := Lookup(k)
			require.NoError(t, err)
			assert.Equal(t, DefaultDamage, profile.Damage)
			assert.Equal(t, DefaultDuration, profile.Duration)
		}
	})

	t.Run("reserved kinds are unimplemented", func(t *testing.T) {
		for _, k := range []Kind{Doom, Frost} {
			_, err := Lookup(k)
			require.Error(t, err)
			assert.True(t, simerrors.IsUnimplemented(err), k)
		}
	})

	t.Run("undeclared kinds are invalid keys", func(t *testing.T) {
		_, err := Lookup(Kind("burm"))
		require.Error(t, err)
		assert.True(t, simerrors.IsInvalidArgument(err))
		assert.Equal(t, "burn", simerrors.GetMeta(err)["suggestion"])
	})
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("doom")
	require.NoError(t, err)
	assert.Equal(t, Doom, k)

	_, err = ParseKind("lightning")
	assert.True(t, simerrors.IsInvalidArgument(err))
}

func TestImplemented(t *testing.T) {
	assert.Equal(t, []Kind{Burn, Bleed, Poison}, Implemented())
}

func TestEffect_TicksTenTimes(t *testing.T) {
	target := &dummyTarget{health: 1000}
	e, err := NewBuilder(Burn).Build("e1", target)
	require.NoError(t, err)

	ticks := 0
	for e.IsAlive() {
		before := target.health
		res := e.Tick(DefaultTickDelta, nil)
		ticks++

		assert.Equal(t, before-DefaultDamage, target.health)
		assert.Equal(t, DefaultDamage, res.Damage)
		require.LessOrEqual(t, ticks, 10)
	}

	assert.Equal(t, 10, ticks)
	assert.Equal(t, StateExpired, e.State)
	assert.Equal(t, 950, target.health)
}

func TestEffect_FractionalDeltas(t *testing.T) {
	for _, delta := range []float64{0.5, 0.25, 0.2, 0.1} {
		target := &dummyTarget{health: 1000}
		e, err := NewBuilder(Burn).Build("e1", target)
		require.NoError(t, err)

		want := int(DefaultDuration/delta + 0.5)
		ticks := 0
		for e.IsAlive() && ticks <= want {
			e.Tick(delta, nil)
			ticks++
		}

		assert.Equal(t, want, ticks, "delta %g", delta)
		assert.Equal(t, 1000-want*DefaultDamage, target.health, "delta %g", delta)
	}
}

func TestEffect_TickAfterExpiryIsNoop(t *testing.T) {
	target := &dummyTarget{health: 100}
	e, err := NewBuilder(Poison).WithDuration(0.5).Build("e1", target)
	require.NoError(t, err)

	res := e.Tick(DefaultTickDelta, nil)
	assert.True(t, res.Expired)
	assert.Equal(t, 95, target.health)

	res = e.Tick(DefaultTickDelta, nil)
	assert.True(t, res.Expired)
	assert.Equal(t, 0, res.Damage)
	assert.Equal(t, 95, target.health)
}

func TestEffect_TickOutput(t *testing.T) {
	var buf bytes.Buffer
	e, err := NewBuilder(Bleed).Build("e1", &dummyTarget{health: 10})
	require.NoError(t, err)

	e.Tick(DefaultTickDelta, &buf)

	assert.Equal(t, "Time remaining: 5.0 | Bleed dealt 5 damage (pre-mitigation)\n", buf.String())
}

func TestBuilder(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		target := &dummyTarget{}
		e, err := NewBuilder(Burn).WithDamage(12).WithDuration(2).Build("e1", target)
		require.NoError(t, err)

		assert.Equal(t, 12, e.Damage)
		assert.Equal(t, 2.0, e.Remaining)
		assert.Equal(t, "Burn", e.Label)
		assert.Same(t, target, e.Owner())
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := NewBuilder(Burn).Build("e1", nil)
		assert.Error(t, err)

		_, err = NewBuilder(Burn).WithDuration(0).Build("e1", &dummyTarget{})
		assert.Error(t, err)

		_, err = NewBuilder(Frost).Build("e1", &dummyTarget{})
		assert.True(t, simerrors.IsUnimplemented(err))
	})
}
