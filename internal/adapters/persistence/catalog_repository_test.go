package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ficsit-planner-go/internal/adapters/persistence"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/shared"
	"github.com/andrescamacho/ficsit-planner-go/test/helpers"
)

func TestCatalogRepository_SaveAndLoad(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCatalogRepository(db, nil)
	original := helpers.FactoryCatalog()

	// Act - Save
	err := repo.Save(context.Background(), original)

	// Assert
	require.NoError(t, err)

	// Act - Load
	loaded, err := repo.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, original.Items(), loaded.Items())
	assert.Equal(t, original.Buildings(), loaded.Buildings())
	require.Len(t, loaded.Recipes(), len(original.Recipes()))
	for i, recipe := range original.Recipes() {
		assert.Equal(t, *recipe, *loaded.Recipes()[i], "recipe %s", recipe.ID)
	}
}

func TestCatalogRepository_SaveReplacesPreviousCatalog(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewManualClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	repo := persistence.NewGormCatalogRepository(db, clock)
	require.NoError(t, repo.WithSource("factory.yaml").Save(context.Background(), helpers.FactoryCatalog()))
	clock.Advance(time.Hour)

	// Act
	err := repo.WithSource("smelting.yaml").Save(context.Background(), helpers.SmeltingCatalog())

	// Assert
	require.NoError(t, err)
	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, loaded.Recipes(), 1)
	assert.Len(t, loaded.Items(), 2)

	last, err := repo.LastImport(context.Background())
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "smelting.yaml", last.Source)
	assert.Equal(t, 1, last.Recipes)
	assert.True(t, clock.Now().Equal(last.ImportedAt))
}

func TestCatalogRepository_LoadEmptyDatabase(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCatalogRepository(db, nil)

	_, err := repo.Load(context.Background())

	var invalid *catalog.ErrInvalidCatalog
	assert.True(t, errors.As(err, &invalid))

	last, err := repo.LastImport(context.Background())
	require.NoError(t, err)
	assert.Nil(t, last)
}
