package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ficsit-planner-go/internal/application/common"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
)

// ImportCatalogCommand copies a catalog snapshot from Source into the handler's store
type ImportCatalogCommand struct {
	Source catalog.CatalogSource
}

// ImportCatalogResponse counts what was written
type ImportCatalogResponse struct {
	Items     int
	Buildings int
	Recipes   int
}

// ImportCatalogHandler handles the ImportCatalog command
type ImportCatalogHandler struct {
	store catalog.CatalogStore
}

// NewImportCatalogHandler creates a new ImportCatalogHandler
func NewImportCatalogHandler(store catalog.CatalogStore) *ImportCatalogHandler {
	return &ImportCatalogHandler{store: store}
}

// Handle executes the ImportCatalog command
func (h *ImportCatalogHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportCatalogCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportCatalogCommand")
	}
	if cmd.Source == nil {
		return nil, fmt.Errorf("import source is required")
	}

	snapshot, err := cmd.Source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	if err := h.store.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to store catalog: %w", err)
	}

	response := &ImportCatalogResponse{
		Items:     len(snapshot.Items()),
		Buildings: len(snapshot.Buildings()),
		Recipes:   len(snapshot.Recipes()),
	}
	common.LoggerFromContext(ctx).Info("catalog imported",
		"items", response.Items,
		"buildings", response.Buildings,
		"recipes", response.Recipes)

	return response, nil
}
