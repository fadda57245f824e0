package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

import (
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

// Roller is the source of every random choice in a session, so tests can
// script outcomes.
type Roller interface {
	// Roll returns a uniform result in [1, sides]
	Roll(sides int) (int, error)
}

// Pick rolls a die with n sides and returns a zero-based index in [0, n)
func Pick(r Roller, n int) (int, error) {
	if n < 1 {
		return 0, simerrors.InvalidArgumentf("cannot pick from %d options", n)
	}
	roll, err := r.Roll(n)
	if err != nil {
		return 0, err
	}
	if roll < 1 || roll > n {
		return 0, simerrors.Internalf("roller returned %d for d%d", roll, n)
	}
	return roll - 1, nil
}
