package dice

import (
	"fmt"
	"sync"
)

// ManualRoller returns predetermined rolls in order, for tests and replays
type ManualRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewManualRoller creates a roller that will return rolls in order
func NewManualRoller(rolls ...int) *ManualRoller {
	return &ManualRoller{rolls: rolls}
}

// SetNextRoll queues another roll result
func (m *ManualRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// Used returns how many rolls have been consumed
func (m *ManualRoller) Used() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rollIndex
}

// Roll implements Roller.Roll
func (m *ManualRoller) Roll(sides int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	if roll < 1 || roll > sides {
		return 0, fmt.Errorf("invalid roll %d for d%d", roll, sides)
	}
	m.rollIndex++
	return roll, nil
}
