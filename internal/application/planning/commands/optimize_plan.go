package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
)

// OptimizePlanCommand rebuilds a stored plan under a different selection policy
type OptimizePlanCommand struct {
	PlanID int
	Policy planning.OptimizationPolicy
}

// OptimizePlanHandler handles the OptimizePlan command
type OptimizePlanHandler struct {
	planner *services.PlannerService
}

// NewOptimizePlanHandler creates a new OptimizePlanHandler
func NewOptimizePlanHandler(planner *services.PlannerService) *OptimizePlanHandler {
	return &OptimizePlanHandler{planner: planner}
}

// Handle executes the OptimizePlan command
func (h *OptimizePlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*OptimizePlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *OptimizePlanCommand")
	}

	if err := h.planner.OptimizeExisting(ctx, cmd.PlanID, cmd.Policy); err != nil {
		return nil, fmt.Errorf("failed to optimize plan %d: %w", cmd.PlanID, err)
	}
	return nil, nil
}
