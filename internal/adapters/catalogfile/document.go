package catalogfile

import (
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
)

// document is the on-disk catalog layout. JSON files use the same keys.
type document struct {
	Items     []itemDoc     `yaml:"items"`
	Buildings []buildingDoc `yaml:"buildings"`
	Recipes   []recipeDoc   `yaml:"recipes"`
}

type itemDoc struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type buildingDoc struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Power        float64 `yaml:"power"`
	Manufacturer bool    `yaml:"manufacturer"`
}

type amountDoc struct {
	Item   string  `yaml:"item"`
	Amount float64 `yaml:"amount"`
}

type recipeDoc struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Duration    float64     `yaml:"duration"`
	Unlocked    bool        `yaml:"unlocked"`
	ProducedIn  []string    `yaml:"produced_in,flow"`
	Ingredients []amountDoc `yaml:"ingredients"`
	Products    []amountDoc `yaml:"products"`
}

func (d *document) toCatalog() (*catalog.Catalog, error) {
	items := make([]catalog.Item, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, catalog.Item{ID: catalog.ItemID(item.ID), Name: item.Name})
	}

	buildings := make([]catalog.Building, 0, len(d.Buildings))
	for _, building := range d.Buildings {
		buildings = append(buildings, catalog.Building{
			ID:               catalog.BuildingID(building.ID),
			Name:             building.Name,
			PowerConsumption: building.Power,
			Manufacturer:     building.Manufacturer,
		})
	}

	recipes := make([]catalog.Recipe, 0, len(d.Recipes))
	for _, recipe := range d.Recipes {
		producers := make([]catalog.BuildingID, 0, len(recipe.ProducedIn))
		for _, producer := range recipe.ProducedIn {
			producers = append(producers, catalog.BuildingID(producer))
		}
		recipes = append(recipes, catalog.Recipe{
			ID:          catalog.RecipeID(recipe.ID),
			Name:        recipe.Name,
			Ingredients: toAmounts(recipe.Ingredients),
			Products:    toAmounts(recipe.Products),
			Duration:    recipe.Duration,
			ProducedIn:  producers,
			Unlocked:    recipe.Unlocked,
		})
	}

	return catalog.NewCatalog(items, buildings, recipes)
}

func toAmounts(docs []amountDoc) []catalog.ItemAmount {
	amounts := make([]catalog.ItemAmount, 0, len(docs))
	for _, doc := range docs {
		amounts = append(amounts, catalog.ItemAmount{Item: catalog.ItemID(doc.Item), Amount: doc.Amount})
	}
	return amounts
}

func fromCatalog(c *catalog.Catalog) *document {
	d := &document{}
	for _, item := range c.Items() {
		d.Items = append(d.Items, itemDoc{ID: string(item.ID), Name: item.Name})
	}
	for _, building := range c.Buildings() {
		d.Buildings = append(d.Buildings, buildingDoc{
			ID:           string(building.ID),
			Name:         building.Name,
			Power:        building.PowerConsumption,
			Manufacturer: building.Manufacturer,
		})
	}
	for _, recipe := range c.Recipes() {
		producers := make([]string, 0, len(recipe.ProducedIn))
		for _, producer := range recipe.ProducedIn {
			producers = append(producers, string(producer))
		}
		d.Recipes = append(d.Recipes, recipeDoc{
			ID:          string(recipe.ID),
			Name:        recipe.Name,
			Duration:    recipe.Duration,
			Unlocked:    recipe.Unlocked,
			ProducedIn:  producers,
			Ingredients: fromAmounts(recipe.Ingredients),
			Products:    fromAmounts(recipe.Products),
		})
	}
	return d
}

func fromAmounts(amounts []catalog.ItemAmount) []amountDoc {
	docs := make([]amountDoc, 0, len(amounts))
	for _, amount := range amounts {
		docs = append(docs, amountDoc{Item: string(amount.Item), Amount: amount.Amount})
	}
	return docs
}
