package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
)

// ListItemsQuery lists the items the indexed recipes can produce
type ListItemsQuery struct {
	AllowLocked bool
}

// ListItemsResponse holds producible items in recipe order
type ListItemsResponse struct {
	Items []catalog.Item
}

// ListItemsHandler handles the ListItems query
type ListItemsHandler struct {
	planner *services.PlannerService
}

// NewListItemsHandler creates a new ListItemsHandler
func NewListItemsHandler(planner *services.PlannerService) *ListItemsHandler {
	return &ListItemsHandler{planner: planner}
}

// Handle executes the ListItems query
func (h *ListItemsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListItemsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListItemsQuery")
	}

	items, err := h.planner.ProducibleItems(query.AllowLocked)
	if err != nil {
		return nil, err
	}
	return &ListItemsResponse{Items: items}, nil
}
