package attributes

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Key identifies a modifiable character attribute
type Key string

const (
	Speed      Key = "speed"
	Area       Key = "area"
	Armor      Key = "armor"
	Health     Key = "health"
	CastRate   Key = "cast_rate"
	Damage     Key = "damage"
	Experience Key = "experience"
	CritDamage Key = "crit_damage"
	CritChance Key = "crit_chance"
)

// Keys lists every attribute in table order
var Keys = []Key{Speed, Area, Armor, Health, CastRate, Damage, Experience, CritDamage, CritChance}

// Track is the bonus track an attribute belongs to
type Track string

const (
	// TrackAdditive attributes take integer point bonuses: effective = base + bonus
	TrackAdditive Track = "additive"
	// TrackMultiplicative attributes take real percent bonuses: effective = base * multiplier
	TrackMultiplicative Track = "multiplicative"
)

var tracks = map[Key]Track{
	Speed:      TrackMultiplicative,
	Area:       TrackMultiplicative,
	Armor:      TrackAdditive,
	Health:     TrackAdditive,
	CastRate:   TrackMultiplicative,
	Damage:     TrackMultiplicative,
	Experience: TrackMultiplicative,
	CritDamage: TrackMultiplicative,
	CritChance: TrackMultiplicative,
}

// offsetTracked attributes are percentages themselves: their tracker starts at 0.0
// and is added to the base, so a 5 percent crit chance bonus takes 10% to 15%.
var offsetTracked = map[Key]bool{
	CritChance: true,
	CritDamage: true,
}

// DefaultBases are the starting base values for a new character
var DefaultBases = map[Key]float64{
	Speed:      1.0,
	Area:       1.0,
	Armor:      10,
	Health:     100,
	CastRate:   1.0,
	Damage:     1.0,
	Experience: 1.0,
	CritDamage: 2.0,
	CritChance: 0.1,
}

// TrackOf returns the bonus track for an attribute
func TrackOf(key Key) (Track, bool) {
	t, ok := tracks[key]
	return t, ok
}

// KeyStrings returns the known attribute keys as strings
func KeyStrings() []string {
	out := make([]string, len(Keys))
	for i, k := range Keys {
		out[i] = string(k)
	}
	return out
}

// Label returns a human readable name, e.g. "crit_chance" -> "Crit Chance"
func Label(key Key) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(key), "_", " "))
}

// AmountKind is the numeric kind of a bonus amount
type AmountKind string

const (
	// KindPoints is an integral amount
	KindPoints AmountKind = "points"
	// KindPercent is a real amount, where 0.10 means 10 percent
	KindPercent AmountKind = "percent"
)

// Amount is a tagged bonus value: either integral points or a real percent
type Amount struct {
	kind    AmountKind
	points  int
	percent float64
}

// Points returns an integral amount
func Points(n int) Amount {
	return Amount{kind: KindPoints, points: n}
}

// Percent returns a real amount
func Percent(f float64) Amount {
	return Amount{kind: KindPercent, percent: f}
}

// Kind returns the numeric kind of the amount
func (a Amount) Kind() AmountKind {
	return a.kind
}

// Points returns the integral value; zero for percent amounts
func (a Amount) Points() int {
	return a.points
}

// Percent returns the real value; zero for point amounts
func (a Amount) Percent() float64 {
	return a.percent
}

// Value returns the amount as a float regardless of kind
func (a Amount) Value() float64 {
	if a.kind == KindPoints {
		return float64(a.points)
	}
	return a.percent
}

// Scale multiplies the amount, keeping its kind
func (a Amount) Scale(factor int) Amount {
	if a.kind == KindPoints {
		return Points(a.points * factor)
	}
	return Percent(a.percent * float64(factor))
}

// IsZero reports whether the amount was never set
func (a Amount) IsZero() bool {
	return a.kind == ""
}

// String renders "15 points" or "10 percent"
func (a Amount) String() string {
	if a.kind == KindPoints {
		return fmt.Sprintf("%d points", a.points)
	}
	// rounded to hundredths of a percent to hide float noise (0.07*100)
	return strconv.FormatFloat(math.Round(a.percent*10000)/100, 'f', -1, 64) + " percent"
}

// Accepts reports whether an amount of this kind may be applied to the track
func (t Track) Accepts(kind AmountKind) bool {
	switch t {
	case TrackAdditive:
		return kind == KindPoints
	case TrackMultiplicative:
		return kind == KindPercent
	}
	return false
}
