package effects

import (
	"fmt"
	"io"
)

// Target is the owner an effect damages
type Target interface {
	TakeDamage(amount int)
}

// State of an effect instance
type State string

const (
	StateAlive   State = "alive"
	StateExpired State = "expired"
)

// remainingEpsilon absorbs float drift from summing fractional tick deltas
const remainingEpsilon = 1e-9

// Effect is a timed, periodic, damaging effect attached to one owner
type Effect struct {
	ID        string
	Kind      Kind
	Label     string
	Damage    int
	Remaining float64
	State     State

	owner Target
}

// TickResult reports what a single tick did
type TickResult struct {
	Damage    int
	Remaining float64
	Expired   bool
}

// IsAlive reports whether the effect still ticks
func (e *Effect) IsAlive() bool {
	return e.State == StateAlive
}

// Owner returns the target the effect damages
func (e *Effect) Owner() Target {
	return e.owner
}

// Tick deals this tick's damage to the owner, then counts the remaining duration
// down by delta. The effect expires once nothing remains. When w is non-nil the
// tick is reported as "Time remaining: <d> | <Label> dealt <n> damage (pre-mitigation)".
// Ticking an expired effect does nothing.
func (e *Effect) Tick(delta float64, w io.Writer) TickResult {
	if !e.IsAlive() {
		return TickResult{Remaining: e.Remaining, Expired: true}
	}

	if w != nil {
		fmt.Fprintf(w, "Time remaining: %.1f | ", e.Remaining)
	}

	e.owner.TakeDamage(e.Damage)
	if w != nil {
		fmt.Fprintf(w, "%s dealt %d damage (pre-mitigation)\n", e.Label, e.Damage)
	}

	e.Remaining -= delta
	if e.Remaining <= remainingEpsilon {
		e.State = StateExpired
	}

	return TickResult{Damage: e.Damage, Remaining: e.Remaining, Expired: !e.IsAlive()}
}
