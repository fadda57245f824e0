package abilities

import (
	"fmt"

	"github.com/KirkDiggler/upgrade-sim/internal/domain/attributes"
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

// Modules an ability may expose for upgrades
var Modules = []attributes.Key{attributes.Area, attributes.CastRate, attributes.Damage}

// BaseValues seed every new ability's module values
var BaseValues = map[attributes.Key]float64{
	attributes.Area:     1.0,
	attributes.CastRate: 5.0,
	attributes.Damage:   20,
}

// Ability is a named skill with upgradeable numeric modules
type Ability struct {
	Name    string
	modules []attributes.Key
	values  map[attributes.Key]float64
}

// New creates an ability exposing the given modules, seeded from BaseValues
func New(name string, modules ...attributes.Key) (*Ability, error) {
	if name == "" {
		return nil, simerrors.InvalidArgumentf("ability name is required")
	}

	a := &Ability{
		Name:   name,
		values: make(map[attributes.Key]float64, len(modules)),
	}
	for _, m := range modules {
		base, ok := BaseValues[m]
		if !ok {
			return nil, simerrors.UnknownKey("ability module", string(m), moduleStrings(Modules))
		}
		if _, dup := a.values[m]; dup {
			continue
		}
		a.modules = append(a.modules, m)
		a.values[m] = base
	}

	return a, nil
}

// NewDamaging creates an ability exposing damage, area and cast_rate
func NewDamaging(name string) *Ability {
	a, _ := New(name, attributes.Damage, attributes.Area, attributes.CastRate) //nolint:errcheck // fixed modules
	return a
}

// Modules returns the upgradeable modules in declaration order
func (a *Ability) Modules() []attributes.Key {
	return append([]attributes.Key(nil), a.modules...)
}

// HasModule reports whether the ability exposes a module
func (a *Ability) HasModule(module attributes.Key) bool {
	_, ok := a.values[module]
	return ok
}

// Value returns the current value of a module
func (a *Ability) Value(module attributes.Key) (float64, error) {
	v, ok := a.values[module]
	if !ok {
		return 0, a.unknownModule(module)
	}
	return v, nil
}

// ApplyUpgrade adds amount to a module value
func (a *Ability) ApplyUpgrade(module attributes.Key, amount float64) error {
	if !a.HasModule(module) {
		return a.unknownModule(module)
	}
	a.values[module] += amount
	return nil
}

func (a *Ability) String() string {
	return fmt.Sprintf("%s%v", a.Name, a.values)
}

func (a *Ability) unknownModule(module attributes.Key) error {
	return simerrors.UnknownKey("module on "+a.Name, string(module), moduleStrings(a.modules)).
		WithMeta("ability", a.Name)
}

func moduleStrings(keys []attributes.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
