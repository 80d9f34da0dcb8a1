package planning

import (
	"fmt"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
)

// Domain errors for production planning

// ErrEmptyAlternativeSet indicates no recipe can produce the requested target
type ErrEmptyAlternativeSet struct {
	Item        catalog.ItemID
	AllowLocked bool
}

func (e *ErrEmptyAlternativeSet) Error() string {
	scope := "unlocked"
	if e.AllowLocked {
		scope = "known"
	}
	return fmt.Sprintf("no %s recipe produces %s", scope, e.Item)
}

// ErrInvalidTargetRate indicates a plan was requested for a non-positive rate
type ErrInvalidTargetRate struct {
	Item catalog.ItemID
	Rate float64
}

func (e *ErrInvalidTargetRate) Error() string {
	return fmt.Sprintf("target rate for %s must be positive, got %g", e.Item, e.Rate)
}

// ErrBuildLimitExceeded indicates a build was aborted by the depth or node ceiling
type ErrBuildLimitExceeded struct {
	Limit string // "depth" or "nodes"
	Max   int
}

func (e *ErrBuildLimitExceeded) Error() string {
	return fmt.Sprintf("plan build aborted: %s limit of %d exceeded", e.Limit, e.Max)
}

// ErrRecipeMismatch indicates a node was requested from a recipe that does not make its target
type ErrRecipeMismatch struct {
	Recipe catalog.RecipeID
	Item   catalog.ItemID
}

func (e *ErrRecipeMismatch) Error() string {
	return fmt.Sprintf("recipe %s does not produce %s", e.Recipe, e.Item)
}

// ErrNilPlan indicates a registry operation was given no plan tree
type ErrNilPlan struct {
	PlanID int // -1 when saving a new plan
}

func (e *ErrNilPlan) Error() string {
	if e.PlanID < 0 {
		return "cannot save an empty plan"
	}
	return fmt.Sprintf("cannot replace plan %d with an empty plan", e.PlanID)
}

// ErrPlanNotFound indicates no plan is stored under the given id
type ErrPlanNotFound struct {
	PlanID int
	Count  int
}

func (e *ErrPlanNotFound) Error() string {
	return fmt.Sprintf("plan %d not found (%d plans stored)", e.PlanID, e.Count)
}

// ErrInvalidIndex indicates a node ordinal or alternative index is out of range
type ErrInvalidIndex struct {
	What  string
	Index int
}

func (e *ErrInvalidIndex) Error() string {
	return fmt.Sprintf("invalid %s: %d", e.What, e.Index)
}

// ErrNotAGroup indicates a selection was attempted on a single-recipe node
type ErrNotAGroup struct {
	PlanID  int
	Ordinal int
}

func (e *ErrNotAGroup) Error() string {
	return fmt.Sprintf("node #%d of plan %d has no alternatives", e.Ordinal, e.PlanID)
}
