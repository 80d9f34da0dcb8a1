package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
)

// FindItemQuery resolves an item by its display name
type FindItemQuery struct {
	Name            string
	CaseInsensitive bool
}

// FindItemResponse holds the first matching item in catalog order
type FindItemResponse struct {
	Item catalog.Item
}

// FindItemHandler handles the FindItem query
type FindItemHandler struct {
	planner *services.PlannerService
}

// NewFindItemHandler creates a new FindItemHandler
func NewFindItemHandler(planner *services.PlannerService) *FindItemHandler {
	return &FindItemHandler{planner: planner}
}

// Handle executes the FindItem query
func (h *FindItemHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*FindItemQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *FindItemQuery")
	}

	item, err := h.planner.FindItemByDisplayName(query.Name, query.CaseInsensitive)
	if err != nil {
		return nil, err
	}
	return &FindItemResponse{Item: item}, nil
}
