package planning

import (
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/shared"
)

// PlanEntry is a stored plan root with bookkeeping used for listings and logs
type PlanEntry struct {
	Root    *PlanNode
	BuildID string
	SavedAt time.Time
}

// PlanSummary is a compact view of a stored plan
type PlanSummary struct {
	PlanID          int
	BuildID         string
	Target          string
	Rate            float64
	TotalPower      float64
	TotalComplexity int
	Nodes           int
	SavedAt         time.Time
}

// PlanRegistry stores completed plans for the lifetime of the process.
//
// Plans are addressed by their position in the registry. Deleting a plan shifts every
// later plan down by one id; callers holding ids must refresh them after a delete.
//
// The registry is not safe for concurrent use.
type PlanRegistry struct {
	plans []*PlanEntry
	clock shared.Clock
}

// NewPlanRegistry creates an empty registry.
// A nil clock falls back to the system clock.
func NewPlanRegistry(clock shared.Clock) *PlanRegistry {
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &PlanRegistry{
		plans: make([]*PlanEntry, 0),
		clock: clock,
	}
}

// SavePlan appends root and returns its id
func (r *PlanRegistry) SavePlan(root *PlanNode) (int, error) {
	if root == nil {
		return -1, &ErrNilPlan{PlanID: -1}
	}
	r.plans = append(r.plans, r.newEntry(root))
	return len(r.plans) - 1, nil
}

func (r *PlanRegistry) newEntry(root *PlanNode) *PlanEntry {
	return &PlanEntry{
		Root:    root,
		BuildID: uuid.New().String(),
		SavedAt: r.clock.Now(),
	}
}

// Len returns the number of stored plans
func (r *PlanRegistry) Len() int {
	return len(r.plans)
}

func (r *PlanRegistry) inRange(id int) bool {
	return id >= 0 && id < len(r.plans)
}

// Entry returns the stored entry for id
func (r *PlanRegistry) Entry(id int) (*PlanEntry, error) {
	if !r.inRange(id) {
		return nil, &ErrPlanNotFound{PlanID: id, Count: len(r.plans)}
	}
	return r.plans[id], nil
}

// GetPlan returns the root of plan id
func (r *PlanRegistry) GetPlan(id int) (*PlanNode, error) {
	entry, err := r.Entry(id)
	if err != nil {
		return nil, err
	}
	return entry.Root, nil
}

// DeletePlan removes plan id. Every later plan moves down one id.
func (r *PlanRegistry) DeletePlan(id int) error {
	if !r.inRange(id) {
		return &ErrPlanNotFound{PlanID: id, Count: len(r.plans)}
	}
	r.plans[id] = nil
	r.plans = append(r.plans[:id], r.plans[id+1:]...)
	return nil
}

// ReplacePlan overwrites plan id with root, dropping the previous tree
func (r *PlanRegistry) ReplacePlan(id int, root *PlanNode) error {
	if !r.inRange(id) {
		return &ErrPlanNotFound{PlanID: id, Count: len(r.plans)}
	}
	if root == nil {
		return &ErrNilPlan{PlanID: id}
	}
	r.plans[id] = r.newEntry(root)
	return nil
}

// FindNode returns the node of plan id at nodeOrdinal (1-based, WalkPreOrder numbering)
func (r *PlanRegistry) FindNode(id int, nodeOrdinal int) (*PlanNode, error) {
	root, err := r.GetPlan(id)
	if err != nil {
		return nil, err
	}
	node, ok := FindByOrdinal(root, nodeOrdinal)
	if !ok {
		return nil, &ErrInvalidIndex{What: "node ordinal", Index: nodeOrdinal}
	}
	return node, nil
}

// UpdateSelection makes alternative (1-based) the active one of the group at nodeOrdinal.
//
// The alternative number is not checked against the group's size; an out-of-range
// selection is stored as-is and the group then reports zero values. Leaves and
// unreachable ordinals fail without modifying the plan.
func (r *PlanRegistry) UpdateSelection(id int, nodeOrdinal int, alternative int) error {
	node, err := r.FindNode(id, nodeOrdinal)
	if err != nil {
		return err
	}
	if !node.IsGroup() {
		return &ErrNotAGroup{PlanID: id, Ordinal: nodeOrdinal}
	}
	node.SetSelectedIndex(alternative - 1)
	return nil
}

// List summarizes every stored plan, in id order
// names resolves display names; nil falls back to item ids.
func (r *PlanRegistry) List(names func(catalog.ItemID) string) []PlanSummary {
	summaries := make([]PlanSummary, 0, len(r.plans))
	for id, entry := range r.plans {
		target := entry.Root.PrimaryProduct()
		name := string(target.Item)
		if names != nil {
			name = names(target.Item)
		}
		summaries = append(summaries, PlanSummary{
			PlanID:          id,
			BuildID:         entry.BuildID,
			Target:          name,
			Rate:            target.Amount,
			TotalPower:      entry.Root.TotalPowerConsumption(),
			TotalComplexity: entry.Root.TotalComplexity(),
			Nodes:           entry.Root.CountNodes(),
			SavedAt:         entry.SavedAt,
		})
	}
	return summaries
}
