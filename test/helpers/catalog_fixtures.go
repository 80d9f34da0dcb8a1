package helpers

import (
	"fmt"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
)

// Building ids used by the fixture catalogs
const (
	TestSmelter     catalog.BuildingID = "Build_SmelterMk1_C"
	TestConstructor catalog.BuildingID = "Build_ConstructorMk1_C"
	TestAssembler   catalog.BuildingID = "Build_AssemblerMk1_C"
	TestWorkbench   catalog.BuildingID = "BP_WorkBenchComponent_C"
)

// CatalogBuilder assembles catalog snapshots for tests
type CatalogBuilder struct {
	items     []catalog.Item
	buildings []catalog.Building
	recipes   []catalog.Recipe
	known     map[catalog.ItemID]bool
}

// NewCatalogBuilder creates a builder preloaded with the fixture buildings
func NewCatalogBuilder() *CatalogBuilder {
	return &CatalogBuilder{
		buildings: []catalog.Building{
			{ID: TestSmelter, Name: "Smelter", PowerConsumption: 4, Manufacturer: true},
			{ID: TestConstructor, Name: "Constructor", PowerConsumption: 4, Manufacturer: true},
			{ID: TestAssembler, Name: "Assembler", PowerConsumption: 15, Manufacturer: true},
			{ID: TestWorkbench, Name: "Craft Bench", PowerConsumption: 0, Manufacturer: false},
		},
		known: make(map[catalog.ItemID]bool),
	}
}

// WithItem registers an item. Items referenced by recipes are registered automatically.
func (b *CatalogBuilder) WithItem(id, name string) *CatalogBuilder {
	if !b.known[catalog.ItemID(id)] {
		b.known[catalog.ItemID(id)] = true
		b.items = append(b.items, catalog.Item{ID: catalog.ItemID(id), Name: name})
	}
	return b
}

// WithBuilding registers an extra producer building
func (b *CatalogBuilder) WithBuilding(id string, power float64) *CatalogBuilder {
	b.buildings = append(b.buildings, catalog.Building{
		ID:               catalog.BuildingID(id),
		Name:             id,
		PowerConsumption: power,
		Manufacturer:     true,
	})
	return b
}

// WithRecipe registers a recipe, auto-registering any unknown item it references
func (b *CatalogBuilder) WithRecipe(recipe catalog.Recipe) *CatalogBuilder {
	for _, amount := range append(append([]catalog.ItemAmount(nil), recipe.Ingredients...), recipe.Products...) {
		b.WithItem(string(amount.Item), string(amount.Item))
	}
	b.recipes = append(b.recipes, recipe)
	return b
}

// Build validates and returns the catalog, panicking on invalid fixtures
func (b *CatalogBuilder) Build() *catalog.Catalog {
	c, err := catalog.NewCatalog(b.items, b.buildings, b.recipes)
	if err != nil {
		panic(fmt.Sprintf("invalid fixture catalog: %v", err))
	}
	return c
}

// Amounts builds an ingredient/product list from alternating item ids and amounts
func Amounts(pairs ...interface{}) []catalog.ItemAmount {
	result := make([]catalog.ItemAmount, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		item := pairs[i].(string)
		var amount float64
		switch v := pairs[i+1].(type) {
		case int:
			amount = float64(v)
		case float64:
			amount = v
		default:
			panic(fmt.Sprintf("unsupported amount type %T", v))
		}
		result = append(result, catalog.ItemAmount{Item: catalog.ItemID(item), Amount: amount})
	}
	return result
}

// CreateTestRecipe builds an unlocked recipe produced in building
func CreateTestRecipe(
	id string,
	ingredients []catalog.ItemAmount,
	products []catalog.ItemAmount,
	duration float64,
	building catalog.BuildingID,
) catalog.Recipe {
	return catalog.Recipe{
		ID:          catalog.RecipeID(id),
		Name:        id,
		Ingredients: ingredients,
		Products:    products,
		Duration:    duration,
		ProducedIn:  []catalog.BuildingID{building},
		Unlocked:    true,
	}
}

// SmeltingCatalog is the single-recipe iron catalog:
// SmeltIron turns 1 Iron Ore into 1 Iron Ingot every 2s in a 4 MW smelter.
func SmeltingCatalog() *catalog.Catalog {
	return NewCatalogBuilder().
		WithItem("Desc_OreIron_C", "Iron Ore").
		WithItem("Desc_IronIngot_C", "Iron Ingot").
		WithRecipe(CreateTestRecipe("SmeltIron",
			Amounts("Desc_OreIron_C", 1),
			Amounts("Desc_IronIngot_C", 1),
			2, TestSmelter)).
		Build()
}

// CopperSheetCatalog has two recipes for Copper Sheet drawing 10 MW and 6 MW respectively
// at 60/min, plus a locked third recipe.
func CopperSheetCatalog() *catalog.Catalog {
	locked := CreateTestRecipe("Alternate_CopperSheetSteamed",
		Amounts("Desc_CopperIngot_C", 3),
		Amounts("Desc_CopperSheet_C", 3),
		8, TestConstructor)
	locked.Unlocked = false

	return NewCatalogBuilder().
		WithItem("Desc_CopperIngot_C", "Copper Ingot").
		WithItem("Desc_CopperSheet_C", "Copper Sheet").
		WithBuilding("Build_Press_C", 5).
		WithBuilding("Build_Roller_C", 3).
		// 60/min from base rate 30/min: multiplier 2 -> 10 MW
		WithRecipe(CreateTestRecipe("CopperSheetPressed",
			Amounts("Desc_CopperIngot_C", 2),
			Amounts("Desc_CopperSheet_C", 1),
			2, "Build_Press_C")).
		// 60/min from base rate 30/min: multiplier 2 -> 6 MW
		WithRecipe(CreateTestRecipe("CopperSheetRolled",
			Amounts("Desc_CopperIngot_C", 1),
			Amounts("Desc_CopperSheet_C", 1),
			2, "Build_Roller_C")).
		WithRecipe(locked).
		Build()
}

// CyclicCatalog contains two recipes feeding each other:
// RecipeA makes Widget from Gear, RecipeB makes Gear from Widget.
func CyclicCatalog() *catalog.Catalog {
	return NewCatalogBuilder().
		WithRecipe(CreateTestRecipe("RecipeA",
			Amounts("Gear", 1),
			Amounts("Widget", 1),
			1, TestConstructor)).
		WithRecipe(CreateTestRecipe("RecipeB",
			Amounts("Widget", 1),
			Amounts("Gear", 1),
			1, TestConstructor)).
		Build()
}

// FactoryCatalog is a small multi-level catalog:
//
//	Reinforced Plate <- Iron Plate (x6) + Screw (x12)      [Assembler, 12s]
//	Iron Plate       <- Iron Ingot (x3)                    [Constructor, 6s]
//	Screw            <- Iron Rod (x1) -> 4                 [Constructor, 6s]
//	Screw (alt)      <- Iron Ingot (x5) -> 20              [Constructor, 24s]
//	Iron Rod         <- Iron Ingot (x1)                    [Constructor, 4s]
//	Iron Ingot       <- Iron Ore (x1)                      [Smelter, 2s]
//	Iron Plate (craft bench only)                          [Workbench]
func FactoryCatalog() *catalog.Catalog {
	craft := CreateTestRecipe("IronPlateHandcrafted",
		Amounts("Desc_IronIngot_C", 3),
		Amounts("Desc_IronPlate_C", 2),
		6, TestWorkbench)

	return NewCatalogBuilder().
		WithItem("Desc_OreIron_C", "Iron Ore").
		WithItem("Desc_IronIngot_C", "Iron Ingot").
		WithItem("Desc_IronPlate_C", "Iron Plate").
		WithItem("Desc_IronRod_C", "Iron Rod").
		WithItem("Desc_IronScrew_C", "Screw").
		WithItem("Desc_IronPlateReinforced_C", "Reinforced Iron Plate").
		WithRecipe(CreateTestRecipe("IronPlateReinforced",
			Amounts("Desc_IronPlate_C", 6, "Desc_IronScrew_C", 12),
			Amounts("Desc_IronPlateReinforced_C", 1),
			12, TestAssembler)).
		WithRecipe(CreateTestRecipe("IronPlate",
			Amounts("Desc_IronIngot_C", 3),
			Amounts("Desc_IronPlate_C", 2),
			6, TestConstructor)).
		WithRecipe(craft).
		WithRecipe(CreateTestRecipe("Screw",
			Amounts("Desc_IronRod_C", 1),
			Amounts("Desc_IronScrew_C", 4),
			6, TestConstructor)).
		WithRecipe(CreateTestRecipe("Alternate_CastScrew",
			Amounts("Desc_IronIngot_C", 5),
			Amounts("Desc_IronScrew_C", 20),
			24, TestConstructor)).
		WithRecipe(CreateTestRecipe("IronRod",
			Amounts("Desc_IronIngot_C", 1),
			Amounts("Desc_IronRod_C", 1),
			4, TestConstructor)).
		WithRecipe(CreateTestRecipe("IngotIron",
			Amounts("Desc_OreIron_C", 1),
			Amounts("Desc_IronIngot_C", 1),
			2, TestSmelter)).
		Build()
}
