package attributes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

func TestNewBank_Defaults(t *testing.T) {
	bank := NewBank()

	for _, k := range Keys {
		assert.Equal(t, DefaultBases[k], bank.Base(k), k)
		assert.Equal(t, DefaultBases[k], bank.Effective(k), k)
	}
	assert.Equal(t, 1.0, bank.MultiplicativeBonus(Speed))
	assert.Equal(t, 0.0, bank.MultiplicativeBonus(CritChance))
	assert.Equal(t, 0, bank.AdditiveBonus(Armor))
}

func TestNewBankWithBases_MissingKey(t *testing.T) {
	_, err := NewBankWithBases(map[Key]float64{Speed: 1})
	require.Error(t, err)
	assert.True(t, simerrors.IsInvalidArgument(err))
}

func TestBank_ApplyBonus(t *testing.T) {
	t.Run("percent on multiplicative attribute", func(t *testing.T) {
		bank := NewBank()

		require.NoError(t, bank.ApplyBonus(Speed, Percent(0.10)))

		assert.InDelta(t, 1.1, bank.MultiplicativeBonus(Speed), 1e-9)
		assert.InDelta(t, 1.1, bank.Effective(Speed), 1e-9)
		assert.Equal(t, 1.0, bank.Base(Speed))
	})

	t.Run("points on additive attribute", func(t *testing.T) {
		bank := NewBank()

		require.NoError(t, bank.ApplyBonus(Armor, Points(6)))

		assert.Equal(t, 6, bank.AdditiveBonus(Armor))
		assert.Equal(t, 16.0, bank.Effective(Armor))
	})

	t.Run("crit attributes use an offset tracker", func(t *testing.T) {
		bank := NewBank()

		require.NoError(t, bank.ApplyBonus(CritChance, Percent(0.05)))

		assert.InDelta(t, 0.05, bank.MultiplicativeBonus(CritChance), 1e-9)
		assert.InDelta(t, 0.15, bank.Effective(CritChance), 1e-9)
	})

	t.Run("unknown attribute is an invalid key", func(t *testing.T) {
		bank := NewBank()

		err := bank.ApplyBonus(Key("sped"), Percent(0.1))

		require.Error(t, err)
		assert.True(t, simerrors.IsInvalidArgument(err))
		assert.Equal(t, "speed", simerrors.GetMeta(err)["suggestion"])
	})
}

func TestBank_KindMismatchLeavesStateUnchanged(t *testing.T) {
	cases := []struct {
		name   string
		key    Key
		amount Amount
	}{
		{name: "percent on armor", key: Armor, amount: Percent(0.5)},
		{name: "percent on health", key: Health, amount: Percent(0.1)},
		{name: "points on speed", key: Speed, amount: Points(2)},
		{name: "points on crit chance", key: CritChance, amount: Points(1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bank := NewBank()
			before := bank.Snapshot()
			beforeBase := bank.Base(tc.key)

			err := bank.ApplyBonus(tc.key, tc.amount)
			require.Error(t, err)
			assert.True(t, simerrors.IsValidation(err))

			err = bank.ApplyBonusToBase(tc.key, tc.amount)
			require.Error(t, err)
			assert.True(t, simerrors.IsValidation(err))

			assert.Equal(t, before, bank.Snapshot())
			assert.Equal(t, beforeBase, bank.Base(tc.key))
		})
	}
}

func TestBank_LowLevelTrackMismatch(t *testing.T) {
	bank := NewBank()

	assert.True(t, simerrors.IsValidation(bank.ApplyPercentBonus(Health, 0.1)))
	assert.True(t, simerrors.IsValidation(bank.ApplyIntegerBonus(Damage, 1)))
	assert.Equal(t, 100.0, bank.Effective(Health))
	assert.Equal(t, 1.0, bank.Effective(Damage))
}

func TestBank_IntegerBonusRoundTrip(t *testing.T) {
	for _, k := range Keys {
		if tracks[k] != TrackAdditive {
			continue
		}
		t.Run(string(k), func(t *testing.T) {
			bank := NewBank()
			before := bank.Effective(k)

			require.NoError(t, bank.ApplyIntegerBonus(k, 37))
			require.NoError(t, bank.ApplyIntegerBonus(k, -37))

			assert.Equal(t, before, bank.Effective(k))
		})
	}
}

func TestBank_EffectiveFollowsTrack(t *testing.T) {
	bank := NewBank()
	steps := []struct {
		key    Key
		amount Amount
		toBase bool
	}{
		{key: Speed, amount: Percent(0.1)},
		{key: Damage, amount: Percent(0.2)},
		{key: Damage, amount: Percent(0.1), toBase: true},
		{key: CritDamage, amount: Percent(0.12)},
		{key: CritChance, amount: Percent(0.05), toBase: true},
		{key: Experience, amount: Percent(-0.3)},
	}

	for _, step := range steps {
		if step.toBase {
			require.NoError(t, bank.ApplyBonusToBase(step.key, step.amount))
		} else {
			require.NoError(t, bank.ApplyBonus(step.key, step.amount))
		}

		for _, k := range Keys {
			if tracks[k] != TrackMultiplicative {
				continue
			}
			if IsAdditivePercent(k) {
				assert.InDelta(t, bank.Base(k)+bank.MultiplicativeBonus(k), bank.Effective(k), 1e-9, k)
				continue
			}
			assert.InDelta(t, bank.Base(k)*bank.MultiplicativeBonus(k), bank.Effective(k), 1e-9, k)
		}
	}
}

func TestBank_CritBonusesAddToBase(t *testing.T) {
	bank := NewBank()

	require.NoError(t, bank.ApplyBonus(CritChance, Percent(0.05)))
	require.NoError(t, bank.ApplyBonus(CritDamage, Percent(0.12)))

	assert.InDelta(t, 0.15, bank.Effective(CritChance), 1e-9)
	assert.InDelta(t, 2.12, bank.Effective(CritDamage), 1e-9)

	require.NoError(t, bank.ApplyBonusToBase(CritChance, Percent(0.05)))
	assert.InDelta(t, 0.15, bank.Base(CritChance), 1e-9)
	assert.InDelta(t, 0.20, bank.Effective(CritChance), 1e-9)
}

func TestBank_BaseBonusScenario(t *testing.T) {
	bank := NewBank()
	require.Equal(t, 100.0, bank.Base(Health))
	require.Equal(t, 0, bank.AdditiveBonus(Health))

	require.NoError(t, bank.ApplyBonus(Health, Points(15)))
	assert.Equal(t, 115.0, bank.Effective(Health))

	require.NoError(t, bank.ApplyBonusToBase(Health, Points(10)))
	assert.Equal(t, 110.0, bank.Base(Health))
	assert.Equal(t, 15, bank.AdditiveBonus(Health))
	assert.Equal(t, 125.0, bank.Effective(Health))
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "15 points", Points(15).String())
	assert.Equal(t, "10 percent", Percent(0.10).String())
	assert.Equal(t, "12 percent", Percent(0.12).String())
	assert.Equal(t, "20 percent", Percent(0.10).Scale(2).String())
	assert.True(t, Amount{}.IsZero())
	assert.False(t, Points(0).IsZero())
	assert.Equal(t, 15.0, Points(15).Value())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Crit Chance", Label(CritChance))
	assert.Equal(t, "Speed", Label(Speed))
}
