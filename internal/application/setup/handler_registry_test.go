package setup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ficsit-planner-go/internal/adapters/metrics"
	"github.com/andrescamacho/ficsit-planner-go/internal/adapters/persistence"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/commands"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/queries"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/setup"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
	"github.com/andrescamacho/ficsit-planner-go/test/helpers"
)

func newPlanner(c *catalog.Catalog) *services.PlannerService {
	return services.NewPlannerService(helpers.NewMockCatalogSource(c), services.PlannerOptions{
		Limits: planning.DefaultBuildLimits(),
	}, nil)
}

func TestHandlerRegistry_PlanningWorkflow(t *testing.T) {
	// Arrange
	ctx := context.Background()
	m, err := setup.NewHandlerRegistry(newPlanner(helpers.FactoryCatalog()), nil).
		CreateConfiguredMediator(metrics.NewRequestMetricsCollector())
	require.NoError(t, err)

	// Act - reload
	response, err := m.Send(ctx, &commands.ReloadCatalogCommand{})

	// Assert
	require.NoError(t, err)
	stats := response.(*services.CatalogStats)
	assert.Equal(t, 7, stats.UnlockedRecipes)

	// Act - create by display name
	response, err = m.Send(ctx, &commands.CreatePlanCommand{
		ItemName: "reinforced iron plate",
		Rate:     5,
		Policy:   planning.PolicyNone,
		Save:     true,
	})

	// Assert
	require.NoError(t, err)
	created := response.(*commands.CreatePlanResponse)
	assert.Equal(t, 0, created.PlanID)
	assert.Equal(t, catalog.ItemID("Desc_IronPlateReinforced_C"), created.Target.Item)

	// Act - select the cast screw alternative and render the header
	_, err = m.Send(ctx, &commands.SelectAlternativeCommand{PlanID: 0, NodeOrdinal: 2, Alternative: 2})
	require.NoError(t, err)
	response, err = m.Send(ctx, &queries.RenderPlanQuery{PlanID: 0, Format: services.ReportHeader})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "5.00/min Reinforced Iron Plate | power 33.80 MW | complexity 58",
		response.(*queries.RenderPlanResponse).Report)

	// Act - optimize then list
	_, err = m.Send(ctx, &commands.OptimizePlanCommand{PlanID: 0, Policy: planning.PolicyMinimizeTotalPower})
	require.NoError(t, err)
	response, err = m.Send(ctx, &queries.ListPlansQuery{})

	// Assert
	require.NoError(t, err)
	plans := response.(*queries.ListPlansResponse).Plans
	require.Len(t, plans, 1)
	assert.InDelta(t, 33.8, plans[0].TotalPower, 1e-9)

	// Act - delete
	_, err = m.Send(ctx, &commands.DeletePlanCommand{PlanID: 0})
	require.NoError(t, err)
	_, err = m.Send(ctx, &commands.DeletePlanCommand{PlanID: 0})

	// Assert
	var notFound *planning.ErrPlanNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestHandlerRegistry_RenderUnsavedTree(t *testing.T) {
	ctx := context.Background()
	m, err := setup.NewHandlerRegistry(newPlanner(helpers.SmeltingCatalog()), nil).CreateConfiguredMediator(nil)
	require.NoError(t, err)
	_, err = m.Send(ctx, &commands.ReloadCatalogCommand{})
	require.NoError(t, err)

	response, err := m.Send(ctx, &commands.CreatePlanCommand{Item: "Desc_IronIngot_C", Rate: 60})
	require.NoError(t, err)
	created := response.(*commands.CreatePlanResponse)
	assert.Equal(t, -1, created.PlanID)

	response, err = m.Send(ctx, &queries.RenderPlanQuery{Root: created.Root, Format: services.ReportHeader})
	require.NoError(t, err)
	assert.Equal(t, "60.00/min Iron Ingot | power 8.00 MW | complexity 12", response.(*queries.RenderPlanResponse).Report)

	response, err = m.Send(ctx, &queries.ListPlansQuery{})
	require.NoError(t, err)
	assert.Empty(t, response.(*queries.ListPlansResponse).Plans)
}

func TestHandlerRegistry_CreatePlanRequiresItem(t *testing.T) {
	// Arrange - no catalog loaded, so a lookup would fail differently
	ctx := context.Background()
	m, err := setup.NewHandlerRegistry(newPlanner(helpers.FactoryCatalog()), nil).CreateConfiguredMediator(nil)
	require.NoError(t, err)

	// Act
	_, err = m.Send(ctx, &commands.CreatePlanCommand{ItemName: "   ", Rate: 5, Save: true})

	// Assert
	assert.ErrorIs(t, err, commands.ErrMissingItem)

	_, err = m.Send(ctx, &commands.ReloadCatalogCommand{})
	require.NoError(t, err)
	_, err = m.Send(ctx, &commands.CreatePlanCommand{Item: " ", Rate: 5, Save: true})
	assert.ErrorIs(t, err, commands.ErrMissingItem)

	response, err := m.Send(ctx, &queries.ListPlansQuery{})
	require.NoError(t, err)
	assert.Empty(t, response.(*queries.ListPlansResponse).Plans)
}

func TestHandlerRegistry_ItemQueries(t *testing.T) {
	ctx := context.Background()
	m, err := setup.NewHandlerRegistry(newPlanner(helpers.CopperSheetCatalog()), nil).CreateConfiguredMediator(nil)
	require.NoError(t, err)
	_, err = m.Send(ctx, &commands.ReloadCatalogCommand{})
	require.NoError(t, err)

	response, err := m.Send(ctx, &queries.FindItemQuery{Name: "Copper Sheet"})
	require.NoError(t, err)
	assert.Equal(t, catalog.ItemID("Desc_CopperSheet_C"), response.(*queries.FindItemResponse).Item.ID)

	_, err = m.Send(ctx, &queries.FindItemQuery{Name: "copper sheet"})
	var notFound *catalog.ErrItemNotFound
	assert.True(t, errors.As(err, &notFound))

	response, err = m.Send(ctx, &queries.ListItemsQuery{AllowLocked: true})
	require.NoError(t, err)
	require.Len(t, response.(*queries.ListItemsResponse).Items, 1)
}

func TestHandlerRegistry_ImportCatalog(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := persistence.NewGormCatalogRepository(helpers.NewTestDB(t), nil)
	m, err := setup.NewHandlerRegistry(nil, repo).CreateConfiguredMediator(nil)
	require.NoError(t, err)

	// Act
	response, err := m.Send(ctx, &commands.ImportCatalogCommand{
		Source: helpers.NewMockCatalogSource(helpers.SmeltingCatalog()),
	})

	// Assert
	require.NoError(t, err)
	imported := response.(*commands.ImportCatalogResponse)
	assert.Equal(t, 2, imported.Items)
	assert.Equal(t, 1, imported.Recipes)

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, stored.Recipes(), 1)

	_, err = m.Send(ctx, &commands.CreatePlanCommand{Item: "Desc_IronIngot_C", Rate: 1})
	assert.Error(t, err, "planning handlers are not registered without a planner")
}

func TestHandlerRegistry_ImportFailureLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewGormCatalogRepository(helpers.NewTestDB(t), nil)
	m, err := setup.NewHandlerRegistry(nil, repo).CreateConfiguredMediator(nil)
	require.NoError(t, err)
	source := helpers.NewMockCatalogSource(nil)
	source.SetError(errors.New("unreadable"))

	_, err = m.Send(ctx, &commands.ImportCatalogCommand{Source: source})

	require.Error(t, err)
	_, err = repo.Load(ctx)
	var invalid *catalog.ErrInvalidCatalog
	assert.True(t, errors.As(err, &invalid))
}
