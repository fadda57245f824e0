package skilltree

import (
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

// FighterKey is the key of the built-in fighter tree
const FighterKey = "fighter"

// Forest holds a session's skill trees by key
type Forest struct {
	trees map[string]*Tree
	order []string
}

// NewForest creates an empty forest
func NewForest() *Forest {
	return &Forest{trees: make(map[string]*Tree)}
}

// Add registers a tree
func (f *Forest) Add(t *Tree) error {
	if t == nil || t.Key == "" {
		return simerrors.InvalidArgumentf("tree key is required")
	}
	if _, exists := f.trees[t.Key]; exists {
		return simerrors.AlreadyExistsf("tree %s already exists", t.Key)
	}
	f.trees[t.Key] = t
	f.order = append(f.order, t.Key)
	return nil
}

// Tree returns the tree with key
func (f *Forest) Tree(key string) (*Tree, error) {
	t, ok := f.trees[key]
	if !ok {
		return nil, simerrors.UnknownKey("skill tree", key, f.Keys())
	}
	return t, nil
}

// Keys returns tree keys in the order they were added
func (f *Forest) Keys() []string {
	return append([]string(nil), f.order...)
}
