package planning

import (
	"strings"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
)

// DefaultBuildingPrefix marks producer classes that are fixed buildings
// (as opposed to workbenches or equipment that hand-craft items)
const DefaultBuildingPrefix = "Build_"

// ProducerPredicate reports whether a producer type is a fixed production building
type ProducerPredicate func(building catalog.BuildingID) bool

// BuildingPrefixPredicate accepts producers whose id starts with prefix
func BuildingPrefixPredicate(prefix string) ProducerPredicate {
	return func(building catalog.BuildingID) bool {
		return strings.HasPrefix(string(building), prefix)
	}
}

// ManufacturerPredicate accepts producers flagged as manufacturers in the catalog's building table
func ManufacturerPredicate(c *catalog.Catalog) ProducerPredicate {
	return func(id catalog.BuildingID) bool {
		building, ok := c.Building(id)
		return ok && building.Manufacturer
	}
}

// RecipeIndex maps every item to the building-produced recipes able to make it.
//
// Two views are kept: one over the unlocked subset of the catalog and one over the
// full catalog. The index is immutable once built; a catalog reload builds a new one.
type RecipeIndex struct {
	catalog *catalog.Catalog

	unlocked      map[catalog.ItemID][]*catalog.Recipe
	all           map[catalog.ItemID][]*catalog.Recipe
	unlockedItems []catalog.ItemID
	allItems      []catalog.ItemID

	producerPower map[catalog.RecipeID]float64
}

// BuildRecipeIndex indexes the catalog.
//
// A recipe is included only if at least one of its producers satisfies producedByBuilding,
// and is excluded entirely if any of its ingredients is in ingredientDenylist. A recipe is
// listed under every item it produces, in catalog order.
func BuildRecipeIndex(
	c *catalog.Catalog,
	producedByBuilding ProducerPredicate,
	ingredientDenylist []catalog.ItemID,
) *RecipeIndex {
	if producedByBuilding == nil {
		producedByBuilding = BuildingPrefixPredicate(DefaultBuildingPrefix)
	}

	denied := make(map[catalog.ItemID]bool, len(ingredientDenylist))
	for _, item := range ingredientDenylist {
		denied[item] = true
	}

	index := &RecipeIndex{
		catalog:       c,
		producerPower: make(map[catalog.RecipeID]float64),
	}

	accept := func(recipe *catalog.Recipe) bool {
		for _, ingredient := range recipe.Ingredients {
			if denied[ingredient.Item] {
				return false
			}
		}

		producer, ok := defaultProducer(recipe, producedByBuilding)
		if !ok {
			return false
		}

		if _, seen := index.producerPower[recipe.ID]; !seen {
			power := 0.0
			if building, known := c.Building(producer); known {
				power = building.PowerConsumption
			}
			index.producerPower[recipe.ID] = power
		}
		return true
	}

	index.all, index.allItems = groupByProduct(c.Recipes(), accept)
	index.unlocked, index.unlockedItems = groupByProduct(c.UnlockedRecipes(), accept)

	return index
}

// defaultProducer returns the first producer of recipe accepted by the predicate
func defaultProducer(recipe *catalog.Recipe, producedByBuilding ProducerPredicate) (catalog.BuildingID, bool) {
	for _, producer := range recipe.ProducedIn {
		if producedByBuilding(producer) {
			return producer, true
		}
	}
	return "", false
}

func groupByProduct(
	recipes []*catalog.Recipe,
	accept func(*catalog.Recipe) bool,
) (map[catalog.ItemID][]*catalog.Recipe, []catalog.ItemID) {
	byItem := make(map[catalog.ItemID][]*catalog.Recipe)
	items := make([]catalog.ItemID, 0)

	for _, recipe := range recipes {
		if !accept(recipe) {
			continue
		}
		for _, product := range recipe.Products {
			existing, known := byItem[product.Item]
			if !known {
				items = append(items, product.Item)
			}
			if containsRecipe(existing, recipe.ID) {
				continue
			}
			byItem[product.Item] = append(existing, recipe)
		}
	}

	return byItem, items
}

func containsRecipe(recipes []*catalog.Recipe, id catalog.RecipeID) bool {
	for _, recipe := range recipes {
		if recipe.ID == id {
			return true
		}
	}
	return false
}

// Catalog returns the snapshot the index was built from
func (ix *RecipeIndex) Catalog() *catalog.Catalog {
	return ix.catalog
}

// Candidates returns the recipes producing item, in catalog order.
// The returned slice is a copy and may be modified by the caller.
func (ix *RecipeIndex) Candidates(item catalog.ItemID, allowLocked bool) []*catalog.Recipe {
	source := ix.unlocked
	if allowLocked {
		source = ix.all
	}
	return append([]*catalog.Recipe(nil), source[item]...)
}

// Items returns every item that at least one indexed recipe produces
func (ix *RecipeIndex) Items(allowLocked bool) []catalog.ItemID {
	if allowLocked {
		return append([]catalog.ItemID(nil), ix.allItems...)
	}
	return append([]catalog.ItemID(nil), ix.unlockedItems...)
}

// RecipeCount returns the number of distinct indexed recipes
func (ix *RecipeIndex) RecipeCount(allowLocked bool) int {
	source := ix.unlocked
	if allowLocked {
		source = ix.all
	}
	seen := make(map[catalog.RecipeID]bool)
	for _, recipes := range source {
		for _, recipe := range recipes {
			seen[recipe.ID] = true
		}
	}
	return len(seen)
}

// ProducerPower returns the base power draw (MW) of the recipe's default producer.
// Recipes without a known producer building draw 0.
func (ix *RecipeIndex) ProducerPower(recipe catalog.RecipeID) float64 {
	return ix.producerPower[recipe]
}

// ItemName resolves an item's display name through the indexed catalog
func (ix *RecipeIndex) ItemName(item catalog.ItemID) string {
	if ix.catalog == nil {
		return string(item)
	}
	return ix.catalog.ItemName(item)
}
