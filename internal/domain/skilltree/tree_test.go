package skilltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/upgrade-sim/internal/domain/attributes"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/character"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/upgrades"
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
)

type TreeSuite struct {
	suite.Suite
	tree   *Tree
	root   *Node
	child  *Node
	leaf   *Node
	damage *upgrades.TraitUpgrade
}

func TestTreeSuite(t *testing.T) {
	suite.Run(t, new(TreeSuite))
}

func (s *TreeSuite) SetupTest() {
	var err error
	s.damage, err = upgrades.NewTraitUpgrade(attributes.Damage)
	s.Require().NoError(err)
	castRate, err := upgrades.NewTraitUpgrade(attributes.CastRate)
	s.Require().NoError(err)
	area, err := upgrades.NewTraitUpgrade(attributes.Area)
	s.Require().NoError(err)

	s.tree = NewTree(FighterKey)
	s.root = NewNode("fighter_01", s.damage, true)
	s.child = NewNode("fighter_02", castRate, false, s.root)
	s.leaf = NewNode("fighter_03", area, false, s.child)
	s.Require().NoError(s.tree.AddNode(s.root))
	s.Require().NoError(s.tree.AddNode(s.child))
	s.Require().NoError(s.tree.AddNode(s.leaf))
}

func (s *TreeSuite) TestUnmetPrerequisitesLeaveNodeLocked() {
	_, err := s.tree.Learn(s.child)

	s.Require().Error(err)
	s.True(simerrors.IsFailedPrecondition(err))
	s.Equal([]string{"fighter_01"}, simerrors.GetMeta(err)["unmet"])
	s.False(s.child.Learned)
	s.False(s.child.Unlocked)
	s.Equal(0, s.child.TimesLearned)
	s.Equal(StateLocked, s.child.State())
	s.Empty(s.tree.AppliedLog())
}

func (s *TreeSuite) TestRootThenChild() {
	res, err := s.tree.Learn(s.root)
	s.Require().NoError(err)
	s.True(res.Queued)
	s.Equal(4, res.RemainingLearns)

	res, err = s.tree.Learn(s.child)
	s.Require().NoError(err)
	s.True(res.Queued)
	s.True(s.child.Unlocked)
	s.True(s.child.Learned)
	s.Equal(StateLearned, s.child.State())
	s.Equal(StateLocked, s.leaf.State())
	s.Len(s.tree.AppliedLog(), 2)
}

func (s *TreeSuite) TestLearnIsCappedAtFive() {
	for i := 0; i < 6; i++ {
		_, err := s.tree.Learn(s.root)
		s.Require().NoError(err)
	}

	s.Equal(5, s.root.TimesLearned)
	log := s.tree.AppliedLog()
	s.Len(log, 5)
	for _, u := range log {
		s.Same(s.damage, u)
	}

	res, err := s.tree.Learn(s.root)
	s.Require().NoError(err)
	s.False(res.Queued)
	s.Equal(0, res.RemainingLearns)
}

func (s *TreeSuite) TestLearnKey() {
	_, err := s.tree.LearnKey("fighter_01")
	s.Require().NoError(err)

	_, err = s.tree.LearnKey("fighter_1")
	s.Require().Error(err)
	s.True(simerrors.IsInvalidArgument(err))
	s.NotEmpty(simerrors.GetMeta(err)["suggestion"])
}

func (s *TreeSuite) TestLearnForeignNode() {
	other := NewNode("fighter_01", s.damage, true)

	_, err := s.tree.Learn(other)

	s.True(simerrors.IsInvalidArgument(err))
	s.False(other.Learned)
}

func (s *TreeSuite) TestApplyPushesLogIntoBase() {
	c := character.New("c1", "Hero")
	_, err := s.tree.Learn(s.root)
	s.Require().NoError(err)
	_, err = s.tree.Learn(s.root)
	s.Require().NoError(err)
	_, err = s.tree.Learn(s.child)
	s.Require().NoError(err)

	applied, err := s.tree.Apply(c)

	s.Require().NoError(err)
	s.Equal(3, applied)
	s.InDelta(1.2, c.Bank.Base(attributes.Damage), 1e-9)
	s.InDelta(1.1, c.Bank.Base(attributes.CastRate), 1e-9)
	s.Equal(1.0, c.Bank.Base(attributes.Area))
	s.Equal(1, s.tree.Applications())
}

func (s *TreeSuite) TestApplyTwiceDoubleApplies() {
	c := character.New("c1", "Hero")
	_, err := s.tree.Learn(s.root)
	s.Require().NoError(err)

	_, err = s.tree.Apply(c)
	s.Require().NoError(err)
	_, err = s.tree.Apply(c)
	s.Require().NoError(err)

	s.InDelta(1.2, c.Bank.Base(attributes.Damage), 1e-9)
	s.Equal(2, s.tree.Applications())
}

func (s *TreeSuite) TestApplySkipsFailingEntries() {
	bad := &upgrades.TraitUpgrade{Attribute: attributes.Armor, Amount: attributes.Percent(0.5)}
	badNode := NewNode("bad", bad, true)
	s.Require().NoError(s.tree.AddNode(badNode))
	_, err := s.tree.Learn(badNode)
	s.Require().NoError(err)
	_, err = s.tree.Learn(s.root)
	s.Require().NoError(err)
	c := character.New("c1", "Hero")

	applied, err := s.tree.Apply(c)

	s.Require().Error(err)
	s.True(simerrors.IsValidation(err))
	s.Equal(1, applied)
	s.InDelta(1.1, c.Bank.Base(attributes.Damage), 1e-9)
	s.Equal(10.0, c.Bank.Base(attributes.Armor))
}

func TestTree_AddNode(t *testing.T) {
	up, err := upgrades.NewTraitUpgrade(attributes.Speed)
	require.NoError(t, err)

	t.Run("prerequisites must already be in the tree", func(t *testing.T) {
		tree := NewTree("t")
		orphanParent := NewNode("parent", up, true)
		child := NewNode("child", up, false, orphanParent)

		err := tree.AddNode(child)
		assert.True(t, simerrors.IsInvalidArgument(err))
	})

	t.Run("duplicate key", func(t *testing.T) {
		tree := NewTree("t")
		require.NoError(t, tree.AddNode(NewNode("a", up, true)))

		err := tree.AddNode(NewNode("a", up, true))
		assert.True(t, simerrors.Is(err, simerrors.CodeAlreadyExists))
	})

	t.Run("missing upgrade", func(t *testing.T) {
		tree := NewTree("t")
		assert.Error(t, tree.AddNode(NewNode("a", nil, true)))
	})

	t.Run("sets tree key and default cap", func(t *testing.T) {
		tree := NewTree("t")
		n := &Node{Key: "a", Upgrade: up}
		require.NoError(t, tree.AddNode(n))

		assert.Equal(t, "t", n.TreeKey)
		assert.Equal(t, DefaultMaxTimesLearnable, n.MaxTimesLearnable)
	})
}

func TestNode_String(t *testing.T) {
	up, err := upgrades.NewTraitUpgrade(attributes.Damage)
	require.NoError(t, err)

	assert.Equal(t, "Node: Trait Upgrade: Improve Damage by 10 percent", NewNode("a", up, true).String())
}

func TestForest(t *testing.T) {
	f := NewForest()
	require.NoError(t, f.Add(NewTree("fighter")))
	require.NoError(t, f.Add(NewTree("mage")))

	assert.Equal(t, []string{"fighter", "mage"}, f.Keys())
	assert.True(t, simerrors.Is(f.Add(NewTree("mage")), simerrors.CodeAlreadyExists))

	_, err := f.Tree("fightr")
	assert.True(t, simerrors.IsInvalidArgument(err))
	assert.Equal(t, "fighter", simerrors.GetMeta(err)["suggestion"])
}
