package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/shared"
)

// CatalogImport describes one stored catalog replacement
type CatalogImport struct {
	ID         string
	Source     string
	Items      int
	Buildings  int
	Recipes    int
	ImportedAt time.Time
}

// GormCatalogRepository stores the game catalog in the database and serves it as a
// catalog source. Rows keep their catalog position so a loaded catalog has the same
// order as the one saved.
type GormCatalogRepository struct {
	db     *gorm.DB
	clock  shared.Clock
	source string
}

// NewGormCatalogRepository creates a new GORM-based catalog repository.
// A nil clock falls back to the system clock.
func NewGormCatalogRepository(db *gorm.DB, clock shared.Clock) *GormCatalogRepository {
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &GormCatalogRepository{
		db:    db,
		clock: clock,
	}
}

// WithSource returns a repository that records source as the origin of saved catalogs
func (r *GormCatalogRepository) WithSource(source string) *GormCatalogRepository {
	return &GormCatalogRepository{db: r.db, clock: r.clock, source: source}
}

// Load reads the stored catalog. An empty database yields ErrInvalidCatalog.
func (r *GormCatalogRepository) Load(ctx context.Context) (*catalog.Catalog, error) {
	var itemModels []ItemModel
	if err := r.db.WithContext(ctx).Order("position").Find(&itemModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog items: %w", err)
	}
	if len(itemModels) == 0 {
		return nil, &catalog.ErrInvalidCatalog{Reason: "no catalog has been imported"}
	}

	var buildingModels []BuildingModel
	if err := r.db.WithContext(ctx).Order("position").Find(&buildingModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog buildings: %w", err)
	}

	var recipeModels []RecipeModel
	if err := r.db.WithContext(ctx).Order("position").Find(&recipeModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog recipes: %w", err)
	}

	items := make([]catalog.Item, 0, len(itemModels))
	for _, model := range itemModels {
		items = append(items, catalog.Item{ID: catalog.ItemID(model.ID), Name: model.Name})
	}

	buildings := make([]catalog.Building, 0, len(buildingModels))
	for _, model := range buildingModels {
		buildings = append(buildings, catalog.Building{
			ID:               catalog.BuildingID(model.ID),
			Name:             model.Name,
			PowerConsumption: model.PowerConsumption,
			Manufacturer:     model.Manufacturer == 1,
		})
	}

	recipes := make([]catalog.Recipe, 0, len(recipeModels))
	for _, model := range recipeModels {
		recipe, err := modelToRecipe(&model)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}

	return catalog.NewCatalog(items, buildings, recipes)
}

// Save replaces the stored catalog with c in a single transaction
func (r *GormCatalogRepository) Save(ctx context.Context, c *catalog.Catalog) error {
	recipeModels := make([]RecipeModel, 0, len(c.Recipes()))
	for i, recipe := range c.Recipes() {
		model, err := recipeToModel(recipe, i)
		if err != nil {
			return err
		}
		recipeModels = append(recipeModels, model)
	}

	itemModels := make([]ItemModel, 0, len(c.Items()))
	for i, item := range c.Items() {
		itemModels = append(itemModels, ItemModel{ID: string(item.ID), Name: item.Name, Position: i})
	}

	buildingModels := make([]BuildingModel, 0, len(c.Buildings()))
	for i, building := range c.Buildings() {
		manufacturer := 0
		if building.Manufacturer {
			manufacturer = 1
		}
		buildingModels = append(buildingModels, BuildingModel{
			ID:               string(building.ID),
			Name:             building.Name,
			PowerConsumption: building.PowerConsumption,
			Manufacturer:     manufacturer,
			Position:         i,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&RecipeModel{}, &BuildingModel{}, &ItemModel{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear catalog: %w", err)
			}
		}

		if len(itemModels) > 0 {
			if err := tx.CreateInBatches(itemModels, 200).Error; err != nil {
				return fmt.Errorf("failed to save catalog items: %w", err)
			}
		}
		if len(buildingModels) > 0 {
			if err := tx.CreateInBatches(buildingModels, 200).Error; err != nil {
				return fmt.Errorf("failed to save catalog buildings: %w", err)
			}
		}
		if len(recipeModels) > 0 {
			if err := tx.CreateInBatches(recipeModels, 200).Error; err != nil {
				return fmt.Errorf("failed to save catalog recipes: %w", err)
			}
		}

		record := CatalogImportModel{
			ID:         uuid.New().String(),
			Source:     r.source,
			Items:      len(itemModels),
			Buildings:  len(buildingModels),
			Recipes:    len(recipeModels),
			ImportedAt: r.clock.Now(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to record catalog import: %w", err)
		}
		return nil
	})
}

// LastImport returns the most recent catalog replacement, or nil if none happened
func (r *GormCatalogRepository) LastImport(ctx context.Context) (*CatalogImport, error) {
	var model CatalogImportModel
	err := r.db.WithContext(ctx).Order("imported_at DESC").First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find last catalog import: %w", err)
	}
	return &CatalogImport{
		ID:         model.ID,
		Source:     model.Source,
		Items:      model.Items,
		Buildings:  model.Buildings,
		Recipes:    model.Recipes,
		ImportedAt: model.ImportedAt,
	}, nil
}

// amountJSON is the stored form of a recipe ingredient or product
type amountJSON struct {
	Item   string  `json:"item"`
	Amount float64 `json:"amount"`
}

func recipeToModel(recipe *catalog.Recipe, position int) (RecipeModel, error) {
	ingredients, err := marshalAmounts(recipe.Ingredients)
	if err != nil {
		return RecipeModel{}, fmt.Errorf("recipe %s: %w", recipe.ID, err)
	}
	products, err := marshalAmounts(recipe.Products)
	if err != nil {
		return RecipeModel{}, fmt.Errorf("recipe %s: %w", recipe.ID, err)
	}
	producedIn, err := json.Marshal(recipe.ProducedIn)
	if err != nil {
		return RecipeModel{}, fmt.Errorf("recipe %s: failed to marshal producers: %w", recipe.ID, err)
	}

	unlocked := 0
	if recipe.Unlocked {
		unlocked = 1
	}

	return RecipeModel{
		ID:          string(recipe.ID),
		Name:        recipe.Name,
		Ingredients: ingredients,
		Products:    products,
		Duration:    recipe.Duration,
		ProducedIn:  string(producedIn),
		Unlocked:    unlocked,
		Position:    position,
	}, nil
}

func modelToRecipe(model *RecipeModel) (catalog.Recipe, error) {
	ingredients, err := unmarshalAmounts(model.Ingredients)
	if err != nil {
		return catalog.Recipe{}, fmt.Errorf("recipe %s: %w", model.ID, err)
	}
	products, err := unmarshalAmounts(model.Products)
	if err != nil {
		return catalog.Recipe{}, fmt.Errorf("recipe %s: %w", model.ID, err)
	}

	producedIn := make([]catalog.BuildingID, 0)
	if model.ProducedIn != "" {
		if err := json.Unmarshal([]byte(model.ProducedIn), &producedIn); err != nil {
			return catalog.Recipe{}, fmt.Errorf("recipe %s: failed to unmarshal producers: %w", model.ID, err)
		}
	}

	return catalog.Recipe{
		ID:          catalog.RecipeID(model.ID),
		Name:        model.Name,
		Ingredients: ingredients,
		Products:    products,
		Duration:    model.Duration,
		ProducedIn:  producedIn,
		Unlocked:    model.Unlocked == 1,
	}, nil
}

func marshalAmounts(amounts []catalog.ItemAmount) (string, error) {
	stored := make([]amountJSON, 0, len(amounts))
	for _, amount := range amounts {
		stored = append(stored, amountJSON{Item: string(amount.Item), Amount: amount.Amount})
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("failed to marshal amounts: %w", err)
	}
	return string(data), nil
}

func unmarshalAmounts(data string) ([]catalog.ItemAmount, error) {
	stored := make([]amountJSON, 0)
	if data != "" {
		if err := json.Unmarshal([]byte(data), &stored); err != nil {
			return nil, fmt.Errorf("failed to unmarshal amounts: %w", err)
		}
	}
	amounts := make([]catalog.ItemAmount, 0, len(stored))
	for _, amount := range stored {
		amounts = append(amounts, catalog.ItemAmount{Item: catalog.ItemID(amount.Item), Amount: amount.Amount})
	}
	return amounts, nil
}
