package planning_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
	"github.com/andrescamacho/ficsit-planner-go/test/helpers"
)

func newBuilder(c *catalog.Catalog) *planning.PlanBuilder {
	index := planning.BuildRecipeIndex(c, planning.BuildingPrefixPredicate(planning.DefaultBuildingPrefix), nil)
	return planning.NewPlanBuilder(index, planning.DefaultBuildLimits(), nil)
}

func target(item string, rate float64) catalog.ItemAmount {
	return catalog.ItemAmount{Item: catalog.ItemID(item), Amount: rate}
}

func TestCreateFactoryPlan_SingleRecipeLeaf(t *testing.T) {
	// Arrange
	builder := newBuilder(helpers.SmeltingCatalog())

	// Act
	root, err := builder.CreateFactoryPlan(context.Background(), target("Desc_IronIngot_C", 60), true, planning.PolicyNone)

	// Assert
	require.NoError(t, err)
	assert.True(t, root.IsLeaf())
	assert.Equal(t, catalog.RecipeID("SmeltIron"), root.Recipe().ID)
	assert.InDelta(t, 2.0, root.Multiplier(), 1e-9)
	assert.InDelta(t, 8.0, root.PowerConsumption(), 1e-9)
	assert.Equal(t, 12, root.Complexity())
	assert.Empty(t, root.Subnodes(), "iron ore has no recipe and stays a raw input")
	assert.Empty(t, root.Byproducts())
	assert.InDelta(t, 8.0, root.TotalPowerConsumption(), 1e-9)
	assert.Equal(t, 12, root.TotalComplexity())
}

func TestCreateFactoryPlan_MultiplierFormula(t *testing.T) {
	cases := []struct {
		name       string
		rate       float64
		multiplier float64
		complexity int
	}{
		{name: "exact building", rate: 30, multiplier: 1, complexity: 11},
		{name: "fractional building rounds up", rate: 45, multiplier: 1.5, complexity: 12},
		{name: "under one building", rate: 7.5, multiplier: 0.25, complexity: 11},
	}

	builder := newBuilder(helpers.SmeltingCatalog())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := builder.CreateFactoryPlan(context.Background(), target("Desc_IronIngot_C", tc.rate), true, planning.PolicyNone)

			require.NoError(t, err)
			assert.InDelta(t, tc.multiplier, root.Multiplier(), 1e-9)
			assert.InDelta(t, 4*tc.multiplier, root.PowerConsumption(), 1e-9)
			assert.Equal(t, tc.complexity, root.Complexity())
		})
	}
}

func TestCreateFactoryPlan_NoRecipeIsEmptyAlternativeSet(t *testing.T) {
	// Arrange
	builder := newBuilder(helpers.SmeltingCatalog())

	// Act
	root, err := builder.CreateFactoryPlan(context.Background(), target("Desc_OreIron_C", 60), true, planning.PolicyNone)

	// Assert
	assert.Nil(t, root)
	var emptyErr *planning.ErrEmptyAlternativeSet
	require.True(t, errors.As(err, &emptyErr))
	assert.Equal(t, catalog.ItemID("Desc_OreIron_C"), emptyErr.Item)
}

func TestCreateFactoryPlan_RejectsNonPositiveRate(t *testing.T) {
	builder := newBuilder(helpers.SmeltingCatalog())

	_, err := builder.CreateFactoryPlan(context.Background(), target("Desc_IronIngot_C", 0), true, planning.PolicyNone)

	var rateErr *planning.ErrInvalidTargetRate
	assert.True(t, errors.As(err, &rateErr))
}

func TestCreateFactoryPlan_MinimizePowerPicksCheapestAlternative(t *testing.T) {
	// Arrange
	builder := newBuilder(helpers.CopperSheetCatalog())

	// Act
	root, err := builder.CreateFactoryPlan(context.Background(), target("Desc_CopperSheet_C", 60), false, planning.PolicyMinimizePower)

	// Assert
	require.NoError(t, err)
	require.True(t, root.IsGroup())
	powers := root.AllPowerConsumptions()
	require.Len(t, powers, 2, "locked recipe must not be a candidate")
	assert.InDelta(t, 10.0, powers[0], 1e-9)
	assert.InDelta(t, 6.0, powers[1], 1e-9)
	assert.Equal(t, 1, root.SelectedIndex())
	assert.Equal(t, catalog.RecipeID("CopperSheetRolled"), root.Recipe().ID)
	assert.InDelta(t, 6.0, root.PowerConsumption(), 1e-9)
}

func TestCreateFactoryPlan_AllowLockedAddsAlternatives(t *testing.T) {
	builder := newBuilder(helpers.CopperSheetCatalog())

	root, err := builder.CreateFactoryPlan(context.Background(), target("Desc_CopperSheet_C", 60), true, planning.PolicyNone)

	require.NoError(t, err)
	assert.Equal(t, 3, root.NumAlternatives())
	assert.Equal(t, 0, root.SelectedIndex())
	assert.True(t, root.UsesLockedRecipes())
}

func TestCreateFactoryPlan_RecursesThroughIngredients(t *testing.T) {
	// Arrange
	builder := newBuilder(helpers.FactoryCatalog())

	// Act
	root, err := builder.CreateFactoryPlan(context.Background(), target("Desc_IronPlateReinforced_C", 5), false, planning.PolicyNone)

	// Assert
	require.NoError(t, err)
	require.True(t, root.IsLeaf())
	assert.InDelta(t, 1.0, root.Multiplier(), 1e-9)

	children := root.Subnodes()
	require.Len(t, children, 2)

	plates := children[0]
	assert.True(t, plates.IsLeaf(), "handcrafted plate recipe is not building-produced")
	assert.Equal(t, catalog.ItemID("Desc_IronPlate_C"), plates.PrimaryProduct().Item)
	assert.InDelta(t, 30.0, plates.PrimaryProduct().Amount, 1e-9)
	assert.InDelta(t, 1.5, plates.Multiplier(), 1e-9)

	screws := children[1]
	assert.True(t, screws.IsGroup())
	assert.InDelta(t, 60.0, screws.PrimaryProduct().Amount, 1e-9)
	assert.Equal(t, 2, screws.NumAlternatives())

	assert.InDelta(t, 39.0, root.TotalPowerConsumption(), 1e-9)
	assert.Equal(t, 69, root.TotalComplexity())
}

func TestCreateFactoryPlan_ShallowAndDeepPolicies(t *testing.T) {
	cases := []struct {
		policy   planning.OptimizationPolicy
		selected int
	}{
		{policy: planning.PolicyNone, selected: 0},
		{policy: planning.PolicyMinimizePower, selected: 1},
		{policy: planning.PolicyMinimizeComplexity, selected: 0},
		{policy: planning.PolicyMinimizeTotalPower, selected: 1},
		{policy: planning.PolicyMinimizeTotalComplexity, selected: 1},
	}

	builder := newBuilder(helpers.FactoryCatalog())
	for _, tc := range cases {
		t.Run(string(tc.policy), func(t *testing.T) {
			root, err := builder.CreateFactoryPlan(context.Background(), target("Desc_IronPlateReinforced_C", 5), false, tc.policy)

			require.NoError(t, err)
			screws := root.Subnodes()[1]
			assert.Equal(t, tc.selected, screws.SelectedIndex())
		})
	}
}

func TestCreateFactoryPlan_CycleTerminates(t *testing.T) {
	// Arrange
	builder := newBuilder(helpers.CyclicCatalog())

	// Act
	root, err := builder.CreateFactoryPlan(context.Background(), target("Widget", 60), true, planning.PolicyNone)

	// Assert
	require.NoError(t, err)
	require.Len(t, root.Subnodes(), 1)
	gear := root.Subnodes()[0]
	assert.Equal(t, catalog.RecipeID("RecipeB"), gear.Recipe().ID)
	assert.Empty(t, gear.Subnodes(), "widget is already produced on this path")
	assert.Equal(t, 2, root.CountNodes())
}

func TestCreateFactoryPlan_SiblingBranchesReuseRecipes(t *testing.T) {
	// Iron ingot is needed by both the plate and the screw branches
	builder := newBuilder(helpers.FactoryCatalog())

	root, err := builder.CreateFactoryPlan(context.Background(), target("Desc_IronPlateReinforced_C", 5), false, planning.PolicyNone)

	require.NoError(t, err)
	plateIngots := root.Subnodes()[0].Subnodes()
	require.Len(t, plateIngots, 1)
	assert.Equal(t, catalog.RecipeID("IngotIron"), plateIngots[0].Recipe().ID)

	rods := root.Subnodes()[1].Subnodes()
	require.Len(t, rods, 1)
	rodIngots := rods[0].Subnodes()
	require.Len(t, rodIngots, 1)
	assert.Equal(t, catalog.RecipeID("IngotIron"), rodIngots[0].Recipe().ID)
	assert.NotSame(t, plateIngots[0], rodIngots[0])
	assert.InDelta(t, 1.5, plateIngots[0].Multiplier(), 1e-9)
	assert.InDelta(t, 0.5, rodIngots[0].Multiplier(), 1e-9)
}

func TestCreateFactoryPlan_Deterministic(t *testing.T) {
	builder := newBuilder(helpers.FactoryCatalog())
	formatter := planning.NewReportFormatter(builder.Index())

	first, err := builder.CreateFactoryPlan(context.Background(), target("Desc_IronPlateReinforced_C", 10), false, planning.PolicyMinimizePower)
	require.NoError(t, err)
	second, err := builder.CreateFactoryPlan(context.Background(), target("Desc_IronPlateReinforced_C", 10), false, planning.PolicyMinimizePower)
	require.NoError(t, err)

	assert.Equal(t, formatter.RenderFull(first), formatter.RenderFull(second))
}

func TestCreateFactoryPlan_ByproductsAreScaled(t *testing.T) {
	c := helpers.NewCatalogBuilder().
		WithRecipe(helpers.CreateTestRecipe("Refinery",
			helpers.Amounts("Crude", 3),
			helpers.Amounts("Plastic", 2, "Residue", 1),
			6, helpers.TestAssembler)).
		Build()
	builder := newBuilder(c)

	root, err := builder.CreateFactoryPlan(context.Background(), target("Plastic", 40), true, planning.PolicyNone)

	require.NoError(t, err)
	assert.InDelta(t, 2.0, root.Multiplier(), 1e-9)
	byproducts := root.Byproducts()
	require.Len(t, byproducts, 1)
	assert.Equal(t, catalog.ItemID("Residue"), byproducts[0].Item)
	assert.InDelta(t, 2.0, byproducts[0].Amount, 1e-9)
}

func TestCreateFactoryPlan_NodeCeiling(t *testing.T) {
	index := planning.BuildRecipeIndex(helpers.FactoryCatalog(), nil, nil)
	builder := planning.NewPlanBuilder(index, planning.BuildLimits{MaxNodes: 3}, nil)

	_, err := builder.CreateFactoryPlan(context.Background(), target("Desc_IronPlateReinforced_C", 5), false, planning.PolicyNone)

	var limitErr *planning.ErrBuildLimitExceeded
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, "nodes", limitErr.Limit)
}

func TestCreateFactoryPlan_DepthCeiling(t *testing.T) {
	index := planning.BuildRecipeIndex(helpers.FactoryCatalog(), nil, nil)
	builder := planning.NewPlanBuilder(index, planning.BuildLimits{MaxDepth: 1}, nil)

	_, err := builder.CreateFactoryPlan(context.Background(), target("Desc_IronPlateReinforced_C", 5), false, planning.PolicyNone)

	var limitErr *planning.ErrBuildLimitExceeded
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, "depth", limitErr.Limit)
}

func TestCreateFactoryPlan_HonoursCancellation(t *testing.T) {
	builder := newBuilder(helpers.FactoryCatalog())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := builder.CreateFactoryPlan(ctx, target("Desc_IronPlateReinforced_C", 5), false, planning.PolicyNone)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildNode_DoesNotMutateVisited(t *testing.T) {
	c := helpers.FactoryCatalog()
	builder := newBuilder(c)
	recipe, ok := c.Recipe("IronPlate")
	require.True(t, ok)
	visited := planning.NewRecipeSet("Screw")

	node, err := builder.BuildNode(context.Background(), target("Desc_IronPlate_C", 20), recipe, visited, false, planning.PolicyNone)

	require.NoError(t, err)
	assert.InDelta(t, 1.0, node.Multiplier(), 1e-9)
	assert.Len(t, visited, 1)
	assert.False(t, visited.Contains("IronPlate"))
}

func TestBuildNode_MalformedRecipeDegradesToZero(t *testing.T) {
	c := helpers.NewCatalogBuilder().
		WithRecipe(helpers.CreateTestRecipe("Broken",
			helpers.Amounts("A", 1),
			helpers.Amounts("B", 1),
			0, helpers.TestConstructor)).
		Build()
	builder := newBuilder(c)
	recipe, _ := c.Recipe("Broken")

	node, err := builder.BuildNode(context.Background(), target("B", 10), recipe, nil, true, planning.PolicyNone)

	require.NoError(t, err)
	assert.Zero(t, node.Multiplier())
	assert.Zero(t, node.PowerConsumption())
}

func TestBuildNode_RejectsRecipeForAnotherItem(t *testing.T) {
	// Arrange
	c := helpers.FactoryCatalog()
	builder := newBuilder(c)
	recipe, ok := c.Recipe("IronPlate")
	require.True(t, ok)

	// Act
	node, err := builder.BuildNode(context.Background(), target("Desc_IronRod_C", 15), recipe, nil, false, planning.PolicyNone)

	// Assert
	assert.Nil(t, node)
	var mismatch *planning.ErrRecipeMismatch
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, catalog.RecipeID("IronPlate"), mismatch.Recipe)
	assert.Equal(t, catalog.ItemID("Desc_IronRod_C"), mismatch.Item)
}
