package dice

import (
	"math/rand"
	"sync"
	"time"

	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

// randomRoller implements Roller with a seeded math/rand source
type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a roller. A zero seed uses the current time.
func NewRandomRoller(seed int64) Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randomRoller{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // game randomness
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(sides int) (int, error) {
	if sides < 1 {
		return 0, simerrors.InvalidArgumentf("invalid dice size %d", sides)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(sides) + 1, nil
}
