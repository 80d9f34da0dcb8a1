package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
)

// ReloadCatalogCommand re-reads the catalog source and rebuilds the recipe index
type ReloadCatalogCommand struct{}

// ReloadCatalogHandler handles the ReloadCatalog command.
// The response is a *services.CatalogStats.
type ReloadCatalogHandler struct {
	planner *services.PlannerService
}

// NewReloadCatalogHandler creates a new ReloadCatalogHandler
func NewReloadCatalogHandler(planner *services.PlannerService) *ReloadCatalogHandler {
	return &ReloadCatalogHandler{planner: planner}
}

// Handle executes the ReloadCatalog command
func (h *ReloadCatalogHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ReloadCatalogCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ReloadCatalogCommand")
	}
	return h.planner.ReloadCatalog(ctx)
}
