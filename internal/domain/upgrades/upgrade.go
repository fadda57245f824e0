package upgrades

import (
	"fmt"

	"github.com/KirkDiggler/upgrade-sim/internal/domain/attributes"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/character"
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

// Variant distinguishes the two kinds of upgrade
type Variant string

const (
	VariantTrait   Variant = "trait"
	VariantAbility Variant = "ability"
)

// Upgrade improves a character, either as a live run bonus (Apply) or
// permanently (ApplyToBase).
type Upgrade interface {
	Variant() Variant
	Apply(c *character.Character) error
	ApplyToBase(c *character.Character) error
	// Key identifies the upgrade for de-duplication
	Key() Key
	String() string
}

// Key is a comparable identity for an upgrade. Two trait upgrades share a key iff
// they target the same attribute with the same amount; two ability upgrades share
// a key iff they target the same ability module, whatever the amount.
type Key struct {
	Variant   Variant
	Attribute attributes.Key
	Ability   string
	Amount    attributes.Amount
}

// Table is the base amount for upgrading each attribute
var Table = map[attributes.Key]attributes.Amount{
	attributes.Speed:      attributes.Percent(0.10),
	attributes.Armor:      attributes.Points(6),
	attributes.Experience: attributes.Percent(0.10),
	attributes.Health:     attributes.Points(15),
	attributes.Area:       attributes.Percent(0.10),
	attributes.CastRate:   attributes.Percent(0.10),
	attributes.Damage:     attributes.Percent(0.10),
	attributes.CritChance: attributes.Percent(0.05),
	attributes.CritDamage: attributes.Percent(0.12),
}

// AbilityFactor scales table amounts for ability upgrades
const AbilityFactor = 2

// TableAmount returns the table amount for an attribute
func TableAmount(key attributes.Key) (attributes.Amount, error) {
	amount, ok := Table[key]
	if !ok {
		return attributes.Amount{}, simerrors.UnknownKey("upgrade table entry", string(key), attributes.KeyStrings())
	}
	return amount, nil
}

// TraitUpgrade improves an attribute in the character's bank
type TraitUpgrade struct {
	Attribute attributes.Key
	Amount    attributes.Amount
}

// NewTraitUpgrade creates a trait upgrade using the table amount for the attribute
func NewTraitUpgrade(key attributes.Key) (*TraitUpgrade, error) {
	amount, err := TableAmount(key)
	if err != nil {
		return nil, err
	}
	return &TraitUpgrade{Attribute: key, Amount: amount}, nil
}

func (u *TraitUpgrade) Variant() Variant { return VariantTrait }

// Apply adds the amount as a live bonus
func (u *TraitUpgrade) Apply(c *character.Character) error {
	if err := c.Bank.ApplyBonus(u.Attribute, u.Amount); err != nil {
		return simerrors.Wrapf(err, "apply %s", u)
	}
	return nil
}

// ApplyToBase adds the amount to the base value
func (u *TraitUpgrade) ApplyToBase(c *character.Character) error {
	if err := c.Bank.ApplyBonusToBase(u.Attribute, u.Amount); err != nil {
		return simerrors.Wrapf(err, "apply %s to base", u)
	}
	return nil
}

func (u *TraitUpgrade) Key() Key {
	return Key{Variant: VariantTrait, Attribute: u.Attribute, Amount: u.Amount}
}

func (u *TraitUpgrade) String() string {
	return fmt.Sprintf("Trait Upgrade: Improve %s by %s", attributes.Label(u.Attribute), u.Amount)
}

// AbilityUpgrade improves one module of an equipped ability, matched by name
type AbilityUpgrade struct {
	Ability string
	Module  attributes.Key
	Amount  attributes.Amount
}

// NewAbilityUpgrade creates an ability upgrade worth AbilityFactor times the table amount
func NewAbilityUpgrade(ability string, module attributes.Key) (*AbilityUpgrade, error) {
	amount, err := TableAmount(module)
	if err != nil {
		return nil, err
	}
	return &AbilityUpgrade{Ability: ability, Module: module, Amount: amount.Scale(AbilityFactor)}, nil
}

func (u *AbilityUpgrade) Variant() Variant { return VariantAbility }

// Apply adds the amount to the module of every equipped ability named u.Ability
func (u *AbilityUpgrade) Apply(c *character.Character) error {
	targets, err := c.Loadout.FindAll(u.Ability)
	if err != nil {
		return simerrors.Wrapf(err, "apply %s", u)
	}

	// every target is checked before any is touched so a miswired module changes nothing
	for _, a := range targets {
		if _, err := a.Value(u.Module); err != nil {
			return simerrors.Wrapf(err, "apply %s", u)
		}
	}
	for _, a := range targets {
		if err := a.ApplyUpgrade(u.Module, u.Amount.Value()); err != nil {
			return simerrors.Wrapf(err, "apply %s", u)
		}
	}
	return nil
}

// ApplyToBase is the same as Apply: ability module values have no separate base
func (u *AbilityUpgrade) ApplyToBase(c *character.Character) error {
	return u.Apply(c)
}

func (u *AbilityUpgrade) Key() Key {
	return Key{Variant: VariantAbility, Attribute: u.Module, Ability: u.Ability}
}

func (u *AbilityUpgrade) String() string {
	return fmt.Sprintf("%s Upgrade: Improve %s by %s", u.Ability, attributes.Label(u.Module), u.Amount)
}

// Equal compares two upgrades by Key
func Equal(a, b Upgrade) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Key() == b.Key()
}
