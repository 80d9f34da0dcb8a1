package catalog

import (
	"fmt"
	"strings"
)

// Catalog is an immutable snapshot of the game's items, producer buildings and recipes.
// Slices keep the catalog's declaration order, which the recipe index relies on for
// deterministic alternative ordering.
type Catalog struct {
	items     []Item
	buildings []Building
	recipes   []Recipe

	itemsByID     map[ItemID]Item
	buildingsByID map[BuildingID]Building
	recipesByID   map[RecipeID]*Recipe
}

// NewCatalog validates and indexes a catalog snapshot.
//
// Validation is structural only: ids must be unique and non-empty, and every recipe
// ingredient/product must reference a known item. Recipes pointing at unknown
// buildings are accepted; the index simply finds no producer for them.
func NewCatalog(items []Item, buildings []Building, recipes []Recipe) (*Catalog, error) {
	c := &Catalog{
		items:         append([]Item(nil), items...),
		buildings:     append([]Building(nil), buildings...),
		recipes:       append([]Recipe(nil), recipes...),
		itemsByID:     make(map[ItemID]Item, len(items)),
		buildingsByID: make(map[BuildingID]Building, len(buildings)),
		recipesByID:   make(map[RecipeID]*Recipe, len(recipes)),
	}

	for _, item := range c.items {
		if item.ID == "" {
			return nil, &ErrInvalidCatalog{Reason: "item with empty id"}
		}
		if _, exists := c.itemsByID[item.ID]; exists {
			return nil, &ErrInvalidCatalog{Reason: fmt.Sprintf("duplicate item %s", item.ID)}
		}
		c.itemsByID[item.ID] = item
	}

	for _, building := range c.buildings {
		if building.ID == "" {
			return nil, &ErrInvalidCatalog{Reason: "building with empty id"}
		}
		if _, exists := c.buildingsByID[building.ID]; exists {
			return nil, &ErrInvalidCatalog{Reason: fmt.Sprintf("duplicate building %s", building.ID)}
		}
		c.buildingsByID[building.ID] = building
	}

	for i := range c.recipes {
		recipe := &c.recipes[i]
		if recipe.ID == "" {
			return nil, &ErrInvalidCatalog{Reason: "recipe with empty id"}
		}
		if _, exists := c.recipesByID[recipe.ID]; exists {
			return nil, &ErrInvalidCatalog{Reason: fmt.Sprintf("duplicate recipe %s", recipe.ID)}
		}
		for _, amount := range append(append([]ItemAmount(nil), recipe.Ingredients...), recipe.Products...) {
			if _, ok := c.itemsByID[amount.Item]; !ok {
				return nil, &ErrInvalidCatalog{
					Reason: fmt.Sprintf("recipe %s references unknown item %s", recipe.ID, amount.Item),
				}
			}
		}
		c.recipesByID[recipe.ID] = recipe
	}

	return c, nil
}

// Items returns all items in catalog order
func (c *Catalog) Items() []Item { return append([]Item(nil), c.items...) }

// Buildings returns all producer buildings in catalog order
func (c *Catalog) Buildings() []Building { return append([]Building(nil), c.buildings...) }

// Recipes returns pointers to every recipe in catalog order.
// The pointed-to recipes belong to the catalog and must not be modified.
func (c *Catalog) Recipes() []*Recipe {
	result := make([]*Recipe, 0, len(c.recipes))
	for i := range c.recipes {
		result = append(result, &c.recipes[i])
	}
	return result
}

// UnlockedRecipes returns the recipes currently available to the player, in catalog order
func (c *Catalog) UnlockedRecipes() []*Recipe {
	result := make([]*Recipe, 0, len(c.recipes))
	for i := range c.recipes {
		if c.recipes[i].Unlocked {
			result = append(result, &c.recipes[i])
		}
	}
	return result
}

// Item looks up an item by id
func (c *Catalog) Item(id ItemID) (Item, bool) {
	item, ok := c.itemsByID[id]
	return item, ok
}

// ItemName returns the display name of an item, falling back to its id
func (c *Catalog) ItemName(id ItemID) string {
	if item, ok := c.itemsByID[id]; ok && item.Name != "" {
		return item.Name
	}
	return string(id)
}

// Building looks up a producer building by id
func (c *Catalog) Building(id BuildingID) (Building, bool) {
	building, ok := c.buildingsByID[id]
	return building, ok
}

// Recipe looks up a recipe by id
func (c *Catalog) Recipe(id RecipeID) (*Recipe, bool) {
	recipe, ok := c.recipesByID[id]
	return recipe, ok
}

// FindItemByDisplayName returns the first item (in catalog order) whose display name
// matches name exactly, or ignoring case when caseInsensitive is set.
func (c *Catalog) FindItemByDisplayName(name string, caseInsensitive bool) (Item, error) {
	for _, item := range c.items {
		if item.Name == name || (caseInsensitive && strings.EqualFold(item.Name, name)) {
			return item, nil
		}
	}
	return Item{}, &ErrItemNotFound{Query: name}
}
