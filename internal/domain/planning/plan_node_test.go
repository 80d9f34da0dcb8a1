package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
)

func leaf(id string, power float64, multiplier float64) *planning.PlanNode {
	recipe := &catalog.Recipe{ID: catalog.RecipeID(id), Name: id}
	return planning.NewLeafNode(recipe, target("X", 10), multiplier, power, nil, false)
}

func TestLeafComplexity(t *testing.T) {
	assert.Equal(t, 10, planning.LeafComplexity(0))
	assert.Equal(t, 11, planning.LeafComplexity(1))
	assert.Equal(t, 12, planning.LeafComplexity(1.01))
	assert.Equal(t, 13, planning.LeafComplexity(3))
}

func TestPlanNode_GroupDelegatesToSelection(t *testing.T) {
	// Arrange
	first := leaf("first", 10, 2)
	second := leaf("second", 6, 2.5)
	child := leaf("child", 1, 1)
	second.AddChild(child)
	group := planning.NewGroupNode(target("X", 10), []*planning.PlanNode{first, second}, false)

	// Act
	group.SetSelectedIndex(1)

	// Assert
	assert.Equal(t, planning.NodeKindGroup, group.Kind)
	assert.Equal(t, "GROUP", group.Kind.String())
	assert.Equal(t, catalog.RecipeID("second"), group.Recipe().ID)
	assert.InDelta(t, 2.5, group.Multiplier(), 1e-9)
	assert.InDelta(t, 6.0, group.PowerConsumption(), 1e-9)
	assert.Equal(t, 13, group.Complexity())
	assert.Equal(t, []*planning.PlanNode{child}, group.Subnodes())
	assert.InDelta(t, 7.0, group.TotalPowerConsumption(), 1e-9)
	assert.Equal(t, 24, group.TotalComplexity())

	selected, ok := group.Selected()
	require.True(t, ok)
	assert.Same(t, second, selected)
}

func TestPlanNode_GroupAggregates(t *testing.T) {
	first := leaf("first", 10, 2)
	second := leaf("second", 6, 2.5)
	second.AddChild(leaf("child", 5, 1))
	group := planning.NewGroupNode(target("X", 10), []*planning.PlanNode{first, second}, false)

	assert.Equal(t, []float64{2, 2.5}, group.AllMultipliers())
	assert.Equal(t, []float64{10, 6}, group.AllPowerConsumptions())
	assert.Equal(t, []float64{10, 11}, group.AllTotalPowerConsumptions())
	assert.Equal(t, []int{12, 13}, group.AllComplexities())
	assert.Equal(t, []int{12, 24}, group.AllTotalComplexities())
	assert.Len(t, group.AllRecipes(), 2)
}

func TestPlanNode_LeafIgnoresGroupOperations(t *testing.T) {
	node := leaf("only", 4, 1)

	node.SetSelectedIndex(3)

	assert.Equal(t, 0, node.SelectedIndex())
	assert.Equal(t, 0, node.NumAlternatives())
	assert.Empty(t, node.AllPowerConsumptions())
	_, ok := node.Selected()
	assert.False(t, ok)
}

func TestPlanNode_GroupIgnoresAddChild(t *testing.T) {
	group := planning.NewGroupNode(target("X", 10), []*planning.PlanNode{leaf("a", 1, 1), leaf("b", 2, 1)}, false)

	group.AddChild(leaf("stray", 1, 1))

	assert.Empty(t, group.Subnodes())
}

func TestPlanNode_NegativeSelectionYieldsZeroValues(t *testing.T) {
	group := planning.NewGroupNode(target("X", 10), []*planning.PlanNode{leaf("a", 1, 1)}, false)

	group.SetSelectedIndex(-1)

	assert.Nil(t, group.Recipe())
	assert.Zero(t, group.TotalPowerConsumption())
	assert.Zero(t, group.TotalComplexity())
	assert.Nil(t, group.Byproducts())
	assert.Equal(t, 1, group.CountNodes())
}

func TestWalkPreOrder_StopsEarly(t *testing.T) {
	root := leaf("root", 1, 1)
	root.AddChild(leaf("a", 1, 1))
	root.AddChild(leaf("b", 1, 1))

	visited := make([]catalog.RecipeID, 0)
	planning.WalkPreOrder(root, func(ordinal int, _ int, node *planning.PlanNode) bool {
		visited = append(visited, node.Recipe().ID)
		return ordinal < 2
	})

	assert.Equal(t, []catalog.RecipeID{"root", "b"}, visited)

	found, ok := planning.FindByOrdinal(root, 3)
	require.True(t, ok)
	assert.Equal(t, catalog.RecipeID("a"), found.Recipe().ID)

	_, ok = planning.FindByOrdinal(root, 0)
	assert.False(t, ok)
}

func TestWalkPreOrder_OrdinalsAndDepths(t *testing.T) {
	// Arrange - root with children a, b; a has child a1
	root := leaf("root", 1, 1)
	a := leaf("a", 1, 1)
	a.AddChild(leaf("a1", 1, 1))
	root.AddChild(a)
	root.AddChild(leaf("b", 1, 1))

	type visit struct {
		ordinal int
		depth   int
		recipe  catalog.RecipeID
	}
	visits := make([]visit, 0)

	// Act
	planning.WalkPreOrder(root, func(ordinal int, depth int, node *planning.PlanNode) bool {
		visits = append(visits, visit{ordinal, depth, node.Recipe().ID})
		return true
	})

	// Assert - the last pushed sibling is visited first
	assert.Equal(t, []visit{
		{1, 0, "root"},
		{2, 1, "b"},
		{3, 1, "a"},
		{4, 2, "a1"},
	}, visits)
}

func TestWalkPreOrder_DeepChain(t *testing.T) {
	root := leaf("root", 1, 1)
	tail := root
	for i := 0; i < 50000; i++ {
		next := leaf("link", 1, 1)
		tail.AddChild(next)
		tail = next
	}

	deepest := 0
	planning.WalkPreOrder(root, func(_ int, depth int, _ *planning.PlanNode) bool {
		deepest = depth
		return true
	})

	assert.Equal(t, 50000, deepest)
}
