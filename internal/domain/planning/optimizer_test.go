package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
)

func TestParseOptimizationPolicy(t *testing.T) {
	cases := map[string]planning.OptimizationPolicy{
		"":                 planning.PolicyNone,
		"none":             planning.PolicyNone,
		"power":            planning.PolicyMinimizePower,
		"complexity":       planning.PolicyMinimizeComplexity,
		"total-power":      planning.PolicyMinimizeTotalPower,
		"total-complexity": planning.PolicyMinimizeTotalComplexity,
	}

	for name, expected := range cases {
		policy, err := planning.ParseOptimizationPolicy(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, policy)
	}

	_, err := planning.ParseOptimizationPolicy("cheapest")
	assert.Error(t, err)
}

func TestOptimizationPolicy_TiesResolveToFirstIndex(t *testing.T) {
	group := planning.NewGroupNode(target("X", 10), []*planning.PlanNode{
		leaf("a", 7, 1),
		leaf("b", 3, 1),
		leaf("c", 3, 1),
	}, false)

	assert.Equal(t, 1, planning.PolicyMinimizePower.SelectIndex(group))
	assert.Equal(t, 0, planning.PolicyMinimizeComplexity.SelectIndex(group))
	assert.Equal(t, 0, planning.PolicyNone.SelectIndex(group))
}

func TestOptimizationPolicy_ShallowVersusDeep(t *testing.T) {
	// Arrange: "cheap" is cheaper on its own but drags an expensive ingredient chain
	cheap := leaf("cheap", 2, 1)
	cheap.AddChild(leaf("expensive-input", 50, 4))
	pricey := leaf("pricey", 8, 1)
	group := planning.NewGroupNode(target("X", 10), []*planning.PlanNode{cheap, pricey}, false)

	// Act + Assert
	assert.Equal(t, 0, planning.PolicyMinimizePower.SelectIndex(group))
	assert.Equal(t, 1, planning.PolicyMinimizeTotalPower.SelectIndex(group))
	assert.Equal(t, 1, planning.PolicyMinimizeTotalComplexity.SelectIndex(group))

	planning.PolicyMinimizeTotalPower.Apply(group)
	assert.Equal(t, 1, group.SelectedIndex())
}

func TestOptimizationPolicy_ApplyIgnoresLeaves(t *testing.T) {
	node := leaf("a", 1, 1)

	planning.PolicyMinimizePower.Apply(node)
	planning.PolicyMinimizePower.Apply(nil)

	assert.True(t, node.IsLeaf())
}
