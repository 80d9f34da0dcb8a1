package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
	"github.com/andrescamacho/ficsit-planner-go/test/helpers"
)

func recipeIDs(recipes []*catalog.Recipe) []catalog.RecipeID {
	ids := make([]catalog.RecipeID, 0, len(recipes))
	for _, recipe := range recipes {
		ids = append(ids, recipe.ID)
	}
	return ids
}

func TestBuildRecipeIndex_UnlockedAndFullViews(t *testing.T) {
	// Arrange
	c := helpers.CopperSheetCatalog()

	// Act
	index := planning.BuildRecipeIndex(c, nil, nil)

	// Assert
	assert.Equal(t,
		[]catalog.RecipeID{"CopperSheetPressed", "CopperSheetRolled"},
		recipeIDs(index.Candidates("Desc_CopperSheet_C", false)))
	assert.Equal(t,
		[]catalog.RecipeID{"CopperSheetPressed", "CopperSheetRolled", "Alternate_CopperSheetSteamed"},
		recipeIDs(index.Candidates("Desc_CopperSheet_C", true)))
	assert.Equal(t, 2, index.RecipeCount(false))
	assert.Equal(t, 3, index.RecipeCount(true))
	assert.Empty(t, index.Candidates("Desc_CopperIngot_C", true))
}

func TestBuildRecipeIndex_ProducerPredicate(t *testing.T) {
	c := helpers.FactoryCatalog()

	byPrefix := planning.BuildRecipeIndex(c, planning.BuildingPrefixPredicate("Build_"), nil)
	byFlag := planning.BuildRecipeIndex(c, planning.ManufacturerPredicate(c), nil)
	everything := planning.BuildRecipeIndex(c, func(catalog.BuildingID) bool { return true }, nil)

	assert.Equal(t, []catalog.RecipeID{"IronPlate"}, recipeIDs(byPrefix.Candidates("Desc_IronPlate_C", false)))
	assert.Equal(t, []catalog.RecipeID{"IronPlate"}, recipeIDs(byFlag.Candidates("Desc_IronPlate_C", false)))
	assert.Equal(t,
		[]catalog.RecipeID{"IronPlate", "IronPlateHandcrafted"},
		recipeIDs(everything.Candidates("Desc_IronPlate_C", false)))
}

func TestBuildRecipeIndex_IngredientDenylist(t *testing.T) {
	c := helpers.FactoryCatalog()

	index := planning.BuildRecipeIndex(c, nil, []catalog.ItemID{"Desc_IronRod_C"})

	assert.Equal(t,
		[]catalog.RecipeID{"Alternate_CastScrew"},
		recipeIDs(index.Candidates("Desc_IronScrew_C", false)))
	assert.Len(t, index.Candidates("Desc_IronRod_C", false), 1, "recipes producing a denied item stay indexed")
}

func TestBuildRecipeIndex_MultiProductRecipeListedOncePerItem(t *testing.T) {
	c := helpers.NewCatalogBuilder().
		WithRecipe(helpers.CreateTestRecipe("Refinery",
			helpers.Amounts("Crude", 3),
			helpers.Amounts("Plastic", 2, "Residue", 1, "Plastic", 1),
			6, helpers.TestAssembler)).
		Build()

	index := planning.BuildRecipeIndex(c, nil, nil)

	assert.Len(t, index.Candidates("Plastic", false), 1)
	assert.Len(t, index.Candidates("Residue", false), 1)
	assert.Equal(t, []catalog.ItemID{"Plastic", "Residue"}, index.Items(false))
}

func TestRecipeIndex_CandidatesReturnsCopy(t *testing.T) {
	index := planning.BuildRecipeIndex(helpers.CopperSheetCatalog(), nil, nil)

	candidates := index.Candidates("Desc_CopperSheet_C", false)
	candidates[0] = nil

	require.Len(t, index.Candidates("Desc_CopperSheet_C", false), 2)
	assert.NotNil(t, index.Candidates("Desc_CopperSheet_C", false)[0])
}

func TestRecipeIndex_ProducerPower(t *testing.T) {
	c := helpers.NewCatalogBuilder().
		WithRecipe(helpers.CreateTestRecipe("Known",
			helpers.Amounts("A", 1), helpers.Amounts("B", 1), 1, helpers.TestAssembler)).
		WithRecipe(helpers.CreateTestRecipe("Unknown",
			helpers.Amounts("A", 1), helpers.Amounts("C", 1), 1, "Build_Mystery_C")).
		Build()

	index := planning.BuildRecipeIndex(c, nil, nil)

	assert.InDelta(t, 15.0, index.ProducerPower("Known"), 1e-9)
	assert.Zero(t, index.ProducerPower("Unknown"))
	assert.Len(t, index.Candidates("C", false), 1, "unknown producer building still matches the prefix")
}

func TestRecipeIndex_ItemName(t *testing.T) {
	index := planning.BuildRecipeIndex(helpers.SmeltingCatalog(), nil, nil)

	assert.Equal(t, "Iron Ingot", index.ItemName("Desc_IronIngot_C"))
	assert.Equal(t, "Desc_Missing_C", index.ItemName("Desc_Missing_C"))
}
