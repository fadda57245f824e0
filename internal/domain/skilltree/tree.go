package skilltree

import (
	"errors"

	"github.com/KirkDiggler/upgrade-sim/internal/domain/character"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/upgrades"
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

// Tree is one skill tree: its nodes in insertion order and the applied log of
// upgrades queued by learning them.
type Tree struct {
	Key string

	nodes        []*Node
	byKey        map[string]*Node
	appliedLog   []upgrades.Upgrade
	applications int
}

// LearnResult reports what a successful Learn did
type LearnResult struct {
	Node            *Node
	Queued          bool // false once the node is at its cap
	RemainingLearns int
}

// NewTree creates an empty tree
func NewTree(key string) *Tree {
	return &Tree{
		Key:   key,
		byKey: make(map[string]*Node),
	}
}

// AddNode adds n to the tree. Every prerequisite must already be in this tree,
// which keeps the prerequisite graph acyclic.
func (t *Tree) AddNode(n *Node) error {
	if n == nil || n.Key == "" {
		return simerrors.InvalidArgumentf("node key is required")
	}
	if n.Upgrade == nil {
		return simerrors.InvalidArgumentf("node %s has no upgrade", n.Key)
	}
	if _, exists := t.byKey[n.Key]; exists {
		return simerrors.AlreadyExistsf("node %s already in tree %s", n.Key, t.Key)
	}
	for _, req := range n.Prerequisites {
		if req == nil || t.byKey[req.Key] != req {
			return simerrors.InvalidArgumentf("node %s: prerequisite must be added to tree %s first", n.Key, t.Key)
		}
	}
	if n.MaxTimesLearnable <= 0 {
		n.MaxTimesLearnable = DefaultMaxTimesLearnable
	}

	n.TreeKey = t.Key
	t.nodes = append(t.nodes, n)
	t.byKey[n.Key] = n
	return nil
}

// Node returns the node with key
func (t *Tree) Node(key string) (*Node, error) {
	n, ok := t.byKey[key]
	if !ok {
		return nil, simerrors.UnknownKey("node in tree "+t.Key, key, nodeKeys(t.nodes))
	}
	return n, nil
}

// Nodes returns the nodes in insertion order
func (t *Tree) Nodes() []*Node {
	return append([]*Node(nil), t.nodes...)
}

// Learn unlocks n if its prerequisites are learned, marks it learned, and queues
// its upgrade on the applied log until the node reaches its cap. Learning again
// at the cap changes nothing. Unmet prerequisites return a failed precondition
// error listing them and leave the node untouched.
func (t *Tree) Learn(n *Node) (LearnResult, error) {
	if n == nil || t.byKey[n.Key] != n {
		return LearnResult{}, simerrors.InvalidArgumentf("node does not belong to tree %s", t.Key)
	}

	unmet := n.TryUnlock()
	if !n.Unlocked {
		return LearnResult{Node: n}, simerrors.FailedPreconditionf("the following nodes need to be learned before %s: %v", n.Key, nodeKeys(unmet)).
			WithMeta("node", n.Key).
			WithMeta("unmet", nodeKeys(unmet))
	}

	n.Learned = true
	result := LearnResult{Node: n}
	if n.TimesLearned < n.MaxTimesLearnable {
		n.TimesLearned++
		t.appliedLog = append(t.appliedLog, n.Upgrade)
		result.Queued = true
	}
	result.RemainingLearns = n.RemainingLearns()
	return result, nil
}

// LearnKey looks up a node by key and learns it
func (t *Tree) LearnKey(key string) (LearnResult, error) {
	n, err := t.Node(key)
	if err != nil {
		return LearnResult{}, err
	}
	return t.Learn(n)
}

// AppliedLog returns the queued upgrades in learn order
func (t *Tree) AppliedLog() []upgrades.Upgrade {
	return append([]upgrades.Upgrade(nil), t.appliedLog...)
}

// Apply pushes every logged upgrade into c's permanent state. It is meant to run
// once per session before play: a second call applies the whole log again.
// An entry that fails is skipped; the rest are still applied and the failures
// are returned joined. The count of applied entries is returned.
func (t *Tree) Apply(c *character.Character) (int, error) {
	t.applications++

	applied := 0
	var errs []error
	for _, u := range t.appliedLog {
		if err := u.ApplyToBase(c); err != nil {
			errs = append(errs, err)
			continue
		}
		applied++
	}
	return applied, errors.Join(errs...)
}

// Applications counts Apply calls
func (t *Tree) Applications() int {
	return t.applications
}
