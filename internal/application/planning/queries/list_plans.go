package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
)

// ListPlansQuery lists every stored plan
type ListPlansQuery struct{}

// ListPlansResponse holds plan summaries in id order
type ListPlansResponse struct {
	Plans []planning.PlanSummary
}

// ListPlansHandler handles the ListPlans query
type ListPlansHandler struct {
	planner *services.PlannerService
}

// NewListPlansHandler creates a new ListPlansHandler
func NewListPlansHandler(planner *services.PlannerService) *ListPlansHandler {
	return &ListPlansHandler{planner: planner}
}

// Handle executes the ListPlans query
func (h *ListPlansHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListPlansQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListPlansQuery")
	}
	return &ListPlansResponse{Plans: h.planner.ListPlans()}, nil
}
