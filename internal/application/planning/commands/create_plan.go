package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andrescamacho/ficsit-planner-go/internal/application/common"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
)

// CreatePlanCommand builds a production plan for a target item and rate
type CreatePlanCommand struct {
	// Item is the target item id. When empty, ItemName is resolved against the catalog
	// ignoring case.
	Item     catalog.ItemID
	ItemName string

	Rate        float64 // items per minute
	AllowLocked bool
	Policy      planning.OptimizationPolicy

	// Save stores the plan in the registry
	Save bool
}

// CreatePlanResponse carries the built tree and, when saved, its plan id
type CreatePlanResponse struct {
	PlanID int // -1 when the plan was not saved
	Root   *planning.PlanNode
	Target catalog.ItemAmount
}

// PlanNodes reports the size of the built tree for request metrics
func (r *CreatePlanResponse) PlanNodes() int {
	if r.Root == nil {
		return 0
	}
	return r.Root.CountNodes()
}

// ErrMissingItem is returned when a CreatePlanCommand names no item
var ErrMissingItem = errors.New("an item id or display name is required")

// CreatePlanHandler handles the CreatePlan command
type CreatePlanHandler struct {
	planner *services.PlannerService
}

// NewCreatePlanHandler creates a new CreatePlanHandler
func NewCreatePlanHandler(planner *services.PlannerService) *CreatePlanHandler {
	return &CreatePlanHandler{planner: planner}
}

// Handle executes the CreatePlan command
func (h *CreatePlanHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreatePlanCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreatePlanCommand")
	}

	itemID := catalog.ItemID(strings.TrimSpace(string(cmd.Item)))
	name := strings.TrimSpace(cmd.ItemName)
	if itemID == "" && name == "" {
		return nil, ErrMissingItem
	}
	if itemID == "" {
		item, err := h.planner.FindItemByDisplayName(name, true)
		if err != nil {
			return nil, err
		}
		itemID = item.ID
	}

	target := catalog.ItemAmount{Item: itemID, Amount: cmd.Rate}
	root, err := h.planner.CreateFactoryPlan(ctx, target, cmd.AllowLocked, cmd.Policy)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan for %s: %w", itemID, err)
	}

	response := &CreatePlanResponse{PlanID: -1, Root: root, Target: target}
	if cmd.Save {
		id, err := h.planner.SavePlan(root)
		if err != nil {
			return nil, err
		}
		response.PlanID = id
		common.LoggerFromContext(ctx).Info("plan saved",
			"plan_id", response.PlanID,
			"item", itemID,
			"rate", cmd.Rate)
	}

	return response, nil
}
