package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
)

// RenderPlanQuery renders a plan as text.
// Root renders an unsaved tree; otherwise the stored plan PlanID is rendered.
type RenderPlanQuery struct {
	PlanID int
	Root   *planning.PlanNode
	Format services.ReportFormat
}

// RenderPlanResponse holds the rendered report
type RenderPlanResponse struct {
	Report string
}

// RenderPlanHandler handles the RenderPlan query
type RenderPlanHandler struct {
	planner *services.PlannerService
}

// NewRenderPlanHandler creates a new RenderPlanHandler
func NewRenderPlanHandler(planner *services.PlannerService) *RenderPlanHandler {
	return &RenderPlanHandler{planner: planner}
}

// Handle executes the RenderPlan query
func (h *RenderPlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*RenderPlanQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RenderPlanQuery")
	}

	if query.Root == nil {
		report, err := h.planner.RenderPlan(query.PlanID, query.Format)
		if err != nil {
			return nil, err
		}
		return &RenderPlanResponse{Report: report}, nil
	}

	var report string
	switch query.Format {
	case services.ReportHeader:
		report = h.planner.RenderHeader(query.Root)
	case services.ReportSummary:
		report = h.planner.RenderSummary(query.Root)
	default:
		report = h.planner.RenderFull(query.Root)
	}
	return &RenderPlanResponse{Report: report}, nil
}
