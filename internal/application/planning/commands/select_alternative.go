package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
)

// SelectAlternativeCommand activates one alternative of a group node in a stored plan.
// NodeOrdinal is the number printed next to the node in a full report; Alternative is
// 1-based.
type SelectAlternativeCommand struct {
	PlanID      int
	NodeOrdinal int
	Alternative int
}

// SelectAlternativeHandler handles the SelectAlternative command
type SelectAlternativeHandler struct {
	planner *services.PlannerService
}

// NewSelectAlternativeHandler creates a new SelectAlternativeHandler
func NewSelectAlternativeHandler(planner *services.PlannerService) *SelectAlternativeHandler {
	return &SelectAlternativeHandler{planner: planner}
}

// Handle executes the SelectAlternative command
func (h *SelectAlternativeHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SelectAlternativeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SelectAlternativeCommand")
	}

	if err := h.planner.UpdateSelection(cmd.PlanID, cmd.NodeOrdinal, cmd.Alternative); err != nil {
		return nil, err
	}
	return nil, nil
}
