package setup

import (
	"reflect"

	"github.com/andrescamacho/ficsit-planner-go/internal/adapters/metrics"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	planningCommands "github.com/andrescamacho/ficsit-planner-go/internal/application/planning/commands"
	planningQueries "github.com/andrescamacho/ficsit-planner-go/internal/application/planning/queries"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	planner      *services.PlannerService
	catalogStore catalog.CatalogStore // optional; nil disables catalog import
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(planner *services.PlannerService, catalogStore catalog.CatalogStore) *HandlerRegistry {
	return &HandlerRegistry{
		planner:      planner,
		catalogStore: catalogStore,
	}
}

// RegisterPlanningHandlers registers all planning command and query handlers with the mediator
//
// This method registers:
//   - CreatePlanCommand, DeletePlanCommand, SelectAlternativeCommand, OptimizePlanCommand
//   - ReloadCatalogCommand
//   - RenderPlanQuery, ListPlansQuery, FindItemQuery, ListItemsQuery
func (r *HandlerRegistry) RegisterPlanningHandlers(m mediator.Mediator) error {
	handlers := map[reflect.Type]mediator.RequestHandler{
		reflect.TypeOf(&planningCommands.CreatePlanCommand{}):        planningCommands.NewCreatePlanHandler(r.planner),
		reflect.TypeOf(&planningCommands.DeletePlanCommand{}):        planningCommands.NewDeletePlanHandler(r.planner),
		reflect.TypeOf(&planningCommands.SelectAlternativeCommand{}): planningCommands.NewSelectAlternativeHandler(r.planner),
		reflect.TypeOf(&planningCommands.OptimizePlanCommand{}):      planningCommands.NewOptimizePlanHandler(r.planner),
		reflect.TypeOf(&planningCommands.ReloadCatalogCommand{}):     planningCommands.NewReloadCatalogHandler(r.planner),
		reflect.TypeOf(&planningQueries.RenderPlanQuery{}):           planningQueries.NewRenderPlanHandler(r.planner),
		reflect.TypeOf(&planningQueries.ListPlansQuery{}):            planningQueries.NewListPlansHandler(r.planner),
		reflect.TypeOf(&planningQueries.FindItemQuery{}):             planningQueries.NewFindItemHandler(r.planner),
		reflect.TypeOf(&planningQueries.ListItemsQuery{}):            planningQueries.NewListItemsHandler(r.planner),
	}

	for requestType, handler := range handlers {
		if err := m.Register(requestType, handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterCatalogHandlers registers the catalog import command handler
func (r *HandlerRegistry) RegisterCatalogHandlers(m mediator.Mediator) error {
	return m.Register(
		reflect.TypeOf(&planningCommands.ImportCatalogCommand{}),
		planningCommands.NewImportCatalogHandler(r.catalogStore),
	)
}

// CreateConfiguredMediator creates a new mediator with all available handlers registered.
// A non-nil collector adds the request metrics middleware.
func (r *HandlerRegistry) CreateConfiguredMediator(collector *metrics.RequestMetricsCollector) (mediator.Mediator, error) {
	m := mediator.NewMediator()

	if collector != nil {
		m.Use(metrics.RequestMetricsMiddleware(collector))
	}

	if r.planner != nil {
		if err := r.RegisterPlanningHandlers(m); err != nil {
			return nil, err
		}
	}

	// Register catalog handlers if a writable store is available
	if r.catalogStore != nil {
		if err := r.RegisterCatalogHandlers(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}
