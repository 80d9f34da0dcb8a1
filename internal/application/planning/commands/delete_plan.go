package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
)

// DeletePlanCommand removes a stored plan. Plans saved after it move down one id.
type DeletePlanCommand struct {
	PlanID int
}

// DeletePlanHandler handles the DeletePlan command
type DeletePlanHandler struct {
	planner *services.PlannerService
}

// NewDeletePlanHandler creates a new DeletePlanHandler
func NewDeletePlanHandler(planner *services.PlannerService) *DeletePlanHandler {
	return &DeletePlanHandler{planner: planner}
}

// Handle executes the DeletePlan command
func (h *DeletePlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DeletePlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeletePlanCommand")
	}

	if err := h.planner.DeletePlan(cmd.PlanID); err != nil {
		return nil, err
	}
	return nil, nil
}
