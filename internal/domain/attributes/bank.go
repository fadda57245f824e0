package attributes

import (
	"fmt"
	"strings"

	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

// Bank stores a character's base attribute values and its two bonus tracks.
// Effective values are recomputed whenever a bonus or base value changes.
//
// A Bank is not safe for concurrent use; each session owns its own.
type Bank struct {
	base           map[Key]float64
	additive       map[Key]int
	multiplicative map[Key]float64
	effective      map[Key]float64
}

// NewBank creates a bank seeded with DefaultBases
func NewBank() *Bank {
	b, _ := NewBankWithBases(DefaultBases) //nolint:errcheck // defaults cover every key
	return b
}

// NewBankWithBases creates a bank from explicit base values. Every known key must be present.
func NewBankWithBases(bases map[Key]float64) (*Bank, error) {
	b := &Bank{
		base:           make(map[Key]float64, len(Keys)),
		additive:       make(map[Key]int),
		multiplicative: make(map[Key]float64),
		effective:      make(map[Key]float64, len(Keys)),
	}

	for _, k := range Keys {
		v, ok := bases[k]
		if !ok {
			return nil, simerrors.InvalidArgumentf("missing base value for %s", k)
		}
		b.base[k] = v
		b.effective[k] = v

		switch tracks[k] {
		case TrackAdditive:
			b.additive[k] = 0
		case TrackMultiplicative:
			if offsetTracked[k] {
				b.multiplicative[k] = 0.0
			} else {
				b.multiplicative[k] = 1.0
			}
		}
	}

	return b, nil
}

// ApplyBonus routes an amount to the track its attribute belongs to.
// A percent amount on an additive attribute (or points on a multiplicative one)
// returns a validation error and leaves the bank unchanged.
func (b *Bank) ApplyBonus(key Key, amount Amount) error {
	track, err := b.check(key, amount)
	if err != nil {
		return err
	}

	switch track {
	case TrackMultiplicative:
		return b.ApplyPercentBonus(key, amount.Percent())
	default:
		return b.ApplyIntegerBonus(key, amount.Points())
	}
}

// ApplyPercentBonus adds to the multiplicative tracker and recomputes the effective value
func (b *Bank) ApplyPercentBonus(key Key, amount float64) error {
	if _, err := b.check(key, Percent(amount)); err != nil {
		return err
	}

	b.multiplicative[key] += amount
	b.recompute(key)
	return nil
}

// ApplyIntegerBonus adds to the additive tracker and recomputes the effective value
func (b *Bank) ApplyIntegerBonus(key Key, amount int) error {
	if _, err := b.check(key, Points(amount)); err != nil {
		return err
	}

	b.additive[key] += amount
	b.recompute(key)
	return nil
}

// ApplyBonusToBase permanently raises the base value. The live bonus trackers are
// left alone and the effective value is recomputed from the new base.
func (b *Bank) ApplyBonusToBase(key Key, amount Amount) error {
	if _, err := b.check(key, amount); err != nil {
		return err
	}

	b.base[key] += amount.Value()
	b.recompute(key)
	return nil
}

// Base returns the base value of an attribute
func (b *Bank) Base(key Key) float64 {
	return b.base[key]
}

// Effective returns the derived value of an attribute
func (b *Bank) Effective(key Key) float64 {
	return b.effective[key]
}

// AdditiveBonus returns the accumulated point bonus of an additive attribute
func (b *Bank) AdditiveBonus(key Key) int {
	return b.additive[key]
}

// MultiplicativeBonus returns the raw multiplicative tracker of an attribute.
// For crit attributes it is the percentage added to the base.
func (b *Bank) MultiplicativeBonus(key Key) float64 {
	return b.multiplicative[key]
}

// IsAdditivePercent reports whether the attribute's percent tracker is added to
// its base instead of multiplying it
func IsAdditivePercent(key Key) bool {
	return offsetTracked[key]
}

// Snapshot returns a copy of every effective value
func (b *Bank) Snapshot() map[Key]float64 {
	out := make(map[Key]float64, len(b.effective))
	for k, v := range b.effective {
		out[k] = v
	}
	return out
}

// String renders effective values in table order
func (b *Bank) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range Keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %g", k, b.effective[k])
	}
	sb.WriteString("}")
	return sb.String()
}

func (b *Bank) check(key Key, amount Amount) (Track, error) {
	track, ok := tracks[key]
	if !ok {
		return "", simerrors.UnknownKey("attribute", string(key), KeyStrings())
	}
	if !track.Accepts(amount.Kind()) {
		return "", simerrors.Validationf("attribute %s does not match amount kind %s", key, amount.Kind()).
			WithMeta("attribute", string(key)).
			WithMeta("track", string(track)).
			WithMeta("kind", string(amount.Kind()))
	}
	return track, nil
}

func (b *Bank) recompute(key Key) {
	switch tracks[key] {
	case TrackAdditive:
		b.effective[key] = b.base[key] + float64(b.additive[key])
	case TrackMultiplicative:
		if offsetTracked[key] {
			b.effective[key] = b.base[key] + b.multiplicative[key]
			return
		}
		b.effective[key] = b.base[key] * b.multiplicative[key]
	}
}
