package skilltree

import (
	_ "embed"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/upgrade-sim/internal/domain/abilities"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/attributes"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/upgrades"
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

//go:embed data/default.yaml
var defaultDefinitions []byte

// Definitions is the YAML document describing skill trees
type Definitions struct {
	Trees []TreeDefinition `yaml:"trees"`
}

// TreeDefinition describes one tree
type TreeDefinition struct {
	Key   string           `yaml:"key"`
	Nodes []NodeDefinition `yaml:"nodes"`
}

// NodeDefinition describes one node. Prerequisites name other nodes of the same
// tree and may appear in any order in the file.
type NodeDefinition struct {
	Key               string            `yaml:"key"`
	Unlocked          bool              `yaml:"unlocked"`
	MaxTimesLearnable int               `yaml:"max_times_learnable"`
	Prerequisites     []string          `yaml:"prerequisites"`
	Upgrade           UpgradeDefinition `yaml:"upgrade"`
}

// UpgradeDefinition describes a node's upgrade. Without points or percent the
// upgrade table amount is used.
type UpgradeDefinition struct {
	Kind      string   `yaml:"kind"` // trait or ability
	Attribute string   `yaml:"attribute"`
	Ability   string   `yaml:"ability"`
	Module    string   `yaml:"module"`
	Points    *int     `yaml:"points"`
	Percent   *float64 `yaml:"percent"`
}

// DefaultForest returns a fresh copy of the built-in trees
func DefaultForest() *Forest {
	f, err := Parse(defaultDefinitions)
	if err != nil {
		panic("skilltree: built-in definitions are invalid: " + err.Error())
	}
	return f
}

// LoadFile reads tree definitions from a YAML file
func LoadFile(path string) (*Forest, error) {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath) //nolint:gosec // operator supplied path
	if err != nil {
		return nil, simerrors.Wrapf(err, "read skill trees %s", cleanPath)
	}
	return Parse(b)
}

// Parse decodes YAML tree definitions and builds a forest
func Parse(data []byte) (*Forest, error) {
	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, simerrors.Wrap(err, "decode skill trees")
	}
	return Build(&defs)
}

// Build turns definitions into a forest, rejecting unknown prerequisites and cycles
func Build(defs *Definitions) (*Forest, error) {
	forest := NewForest()
	for _, td := range defs.Trees {
		tree, err := buildTree(td)
		if err != nil {
			return nil, err
		}
		if err := forest.Add(tree); err != nil {
			return nil, err
		}
	}
	return forest, nil
}

func buildTree(td TreeDefinition) (*Tree, error) {
	if td.Key == "" {
		return nil, simerrors.InvalidArgumentf("tree key is required")
	}

	defs := make(map[string]NodeDefinition, len(td.Nodes))
	for _, nd := range td.Nodes {
		if nd.Key == "" {
			return nil, simerrors.InvalidArgumentf("tree %s: node key is required", td.Key)
		}
		if _, dup := defs[nd.Key]; dup {
			return nil, simerrors.AlreadyExistsf("tree %s: duplicate node %s", td.Key, nd.Key)
		}
		defs[nd.Key] = nd
	}

	order, err := topoOrder(td, defs)
	if err != nil {
		return nil, err
	}

	tree := NewTree(td.Key)
	for _, key := range order {
		nd := defs[key]
		up, err := buildUpgrade(nd.Upgrade)
		if err != nil {
			return nil, simerrors.Wrapf(err, "tree %s node %s", td.Key, nd.Key)
		}

		prereqs := make([]*Node, 0, len(nd.Prerequisites))
		for _, reqKey := range nd.Prerequisites {
			req, err := tree.Node(reqKey)
			if err != nil {
				return nil, err
			}
			prereqs = append(prereqs, req)
		}

		n := NewNode(nd.Key, up, nd.Unlocked, prereqs...)
		if nd.MaxTimesLearnable > 0 {
			n.MaxTimesLearnable = nd.MaxTimesLearnable
		}
		if err := tree.AddNode(n); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// topoOrder orders nodes so prerequisites come first, keeping file order where
// possible. A prerequisite cycle is an invalid argument naming a node on it.
func topoOrder(td TreeDefinition, defs map[string]NodeDefinition) ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)

	keys := make([]string, len(td.Nodes))
	for i, nd := range td.Nodes {
		keys[i] = nd.Key
	}

	color := make(map[string]int, len(defs))
	order := make([]string, 0, len(defs))

	var visit func(key string) error
	visit = func(key string) error {
		switch color[key] {
		case done:
			return nil
		case visiting:
			return simerrors.InvalidArgumentf("tree %s: prerequisite cycle through node %s", td.Key, key).
				WithMeta("node", key)
		}

		color[key] = visiting
		for _, req := range defs[key].Prerequisites {
			if _, ok := defs[req]; !ok {
				return simerrors.UnknownKey("prerequisite of "+key, req, keys)
			}
			if err := visit(req); err != nil {
				return err
			}
		}
		color[key] = done
		order = append(order, key)
		return nil
	}

	for _, key := range keys {
		if err := visit(key); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func buildUpgrade(ud UpgradeDefinition) (upgrades.Upgrade, error) {
	if ud.Points != nil && ud.Percent != nil {
		return nil, simerrors.InvalidArgumentf("upgrade sets both points and percent")
	}

	switch upgrades.Variant(ud.Kind) {
	case upgrades.VariantTrait:
		key := attributes.Key(ud.Attribute)
		if _, ok := attributes.TrackOf(key); !ok {
			return nil, simerrors.UnknownKey("attribute", ud.Attribute, attributes.KeyStrings())
		}
		u, err := upgrades.NewTraitUpgrade(key)
		if err != nil {
			return nil, err
		}
		if amount := explicitAmount(ud); !amount.IsZero() {
			if err := checkAmount(key, amount); err != nil {
				return nil, err
			}
			u.Amount = amount
		}
		return u, nil

	case upgrades.VariantAbility:
		if ud.Ability == "" {
			return nil, simerrors.InvalidArgumentf("ability upgrade needs an ability name")
		}
		if _, ok := abilities.BaseValues[attributes.Key(ud.Module)]; !ok {
			return nil, simerrors.UnknownKey("ability module", ud.Module, abilityModules())
		}
		u, err := upgrades.NewAbilityUpgrade(ud.Ability, attributes.Key(ud.Module))
		if err != nil {
			return nil, err
		}
		if amount := explicitAmount(ud); !amount.IsZero() {
			if err := checkAmount(u.Module, amount); err != nil {
				return nil, err
			}
			u.Amount = amount
		}
		return u, nil
	}

	return nil, simerrors.UnknownKey("upgrade kind", ud.Kind, []string{string(upgrades.VariantTrait), string(upgrades.VariantAbility)})
}

// explicitAmount returns the amount set in the definition, or the zero Amount
func explicitAmount(ud UpgradeDefinition) attributes.Amount {
	switch {
	case ud.Points != nil:
		return attributes.Points(*ud.Points)
	case ud.Percent != nil:
		return attributes.Percent(*ud.Percent)
	}
	return attributes.Amount{}
}

// checkAmount rejects an amount the attribute's track would refuse at apply time
func checkAmount(key attributes.Key, amount attributes.Amount) error {
	track, ok := attributes.TrackOf(key)
	if !ok {
		return simerrors.UnknownKey("attribute", string(key), attributes.KeyStrings())
	}
	if !track.Accepts(amount.Kind()) {
		return simerrors.InvalidArgumentf("%s takes %s bonuses, not %s", key, track, amount.Kind()).
			WithMeta("attribute", string(key)).
			WithMeta("kind", string(amount.Kind()))
	}
	return nil
}

func abilityModules() []string {
	out := make([]string, len(abilities.Modules))
	for i, m := range abilities.Modules {
		out[i] = string(m)
	}
	return out
}
