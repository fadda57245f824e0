package skilltree

import (
	"fmt"

	"github.com/KirkDiggler/upgrade-sim/internal/domain/upgrades"
)

// DefaultMaxTimesLearnable caps how often a node can queue its upgrade
const DefaultMaxTimesLearnable = 5

// NodeState is the lifecycle position of a node
type NodeState string

const (
	StateLocked   NodeState = "locked"
	StateUnlocked NodeState = "unlocked"
	StateLearned  NodeState = "learned"
)

// Node gates an upgrade behind its prerequisites. Prerequisites are shared
// references to other nodes of the same tree and are fixed at construction.
type Node struct {
	Key               string
	TreeKey           string
	Upgrade           upgrades.Upgrade
	Prerequisites     []*Node
	Unlocked          bool
	Learned           bool
	TimesLearned      int
	MaxTimesLearnable int
}

// NewNode creates a locked node. Root nodes pass unlocked=true.
func NewNode(key string, upgrade upgrades.Upgrade, unlocked bool, prerequisites ...*Node) *Node {
	return &Node{
		Key:               key,
		Upgrade:           upgrade,
		Prerequisites:     prerequisites,
		Unlocked:          unlocked,
		MaxTimesLearnable: DefaultMaxTimesLearnable,
	}
}

// State returns the node's lifecycle state
func (n *Node) State() NodeState {
	switch {
	case n.Learned:
		return StateLearned
	case n.Unlocked:
		return StateUnlocked
	default:
		return StateLocked
	}
}

// TryUnlock unlocks the node when every prerequisite is learned and returns the
// prerequisites that are not. An unlocked node never locks again.
func (n *Node) TryUnlock() []*Node {
	var unmet []*Node
	for _, req := range n.Prerequisites {
		if !req.Learned {
			unmet = append(unmet, req)
		}
	}
	if len(unmet) == 0 {
		n.Unlocked = true
	}
	return unmet
}

// RemainingLearns is how many more times the node can queue its upgrade
func (n *Node) RemainingLearns() int {
	if n.TimesLearned >= n.MaxTimesLearnable {
		return 0
	}
	return n.MaxTimesLearnable - n.TimesLearned
}

func (n *Node) String() string {
	return fmt.Sprintf("Node: %s", n.Upgrade)
}

func nodeKeys(nodes []*Node) []string {
	keys := make([]string, len(nodes))
	for i, n := range nodes {
		keys[i] = n.Key
	}
	return keys
}
