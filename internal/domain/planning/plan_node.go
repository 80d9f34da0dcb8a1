package planning

import (
	"math"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
)

// Complexity weights
const (
	// RecipeComplexity is the fixed cost of running one more recipe in a factory
	RecipeComplexity = 10

	// BuildingComplexity is the cost of each building instance needed by a recipe
	BuildingComplexity = 1
)

// NodeKind tags a PlanNode as a single recipe or a set of alternatives
type NodeKind int

const (
	// NodeKindLeaf is a single recipe instance with its own ingredient subtree
	NodeKindLeaf NodeKind = iota

	// NodeKindGroup holds alternative nodes for the same target, one of them active
	NodeKindGroup
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindLeaf:
		return "LEAF"
	case NodeKindGroup:
		return "GROUP"
	default:
		return "UNKNOWN"
	}
}

// PlanNode is one node of a production plan tree.
//
// A leaf runs one recipe at some multiplier and owns one child per ingredient that
// must itself be produced. A group owns several alternatives for the same target and
// delegates every accessor to the alternative at its selected index. An out-of-range
// selected index is tolerated: accessors then return zero values.
//
// Each node has exactly one owner (its parent, or the registry for roots).
type PlanNode struct {
	Kind NodeKind

	target      catalog.ItemAmount
	allowLocked bool

	// Leaf fields
	recipe     *catalog.Recipe
	multiplier float64
	power      float64
	complexity int
	byproducts []catalog.ItemAmount
	children   []*PlanNode

	// Group fields
	alternatives []*PlanNode
	selected     int
}

// LeafComplexity returns the complexity score of a recipe run at multiplier
func LeafComplexity(multiplier float64) int {
	return RecipeComplexity + BuildingComplexity*int(math.Ceil(multiplier))
}

// NewLeafNode creates a single-recipe node. Children are attached with AddChild.
func NewLeafNode(
	recipe *catalog.Recipe,
	target catalog.ItemAmount,
	multiplier float64,
	power float64,
	byproducts []catalog.ItemAmount,
	allowLocked bool,
) *PlanNode {
	return &PlanNode{
		Kind:        NodeKindLeaf,
		target:      target,
		allowLocked: allowLocked,
		recipe:      recipe,
		multiplier:  multiplier,
		power:       power,
		complexity:  LeafComplexity(multiplier),
		byproducts:  byproducts,
		children:    make([]*PlanNode, 0),
	}
}

// NewGroupNode creates an alternative set for target with the first alternative selected
func NewGroupNode(target catalog.ItemAmount, alternatives []*PlanNode, allowLocked bool) *PlanNode {
	return &PlanNode{
		Kind:         NodeKindGroup,
		target:       target,
		allowLocked:  allowLocked,
		alternatives: alternatives,
		selected:     0,
	}
}

// AddChild attaches an ingredient subtree to a leaf node. Ignored on groups.
func (n *PlanNode) AddChild(child *PlanNode) {
	if n.Kind != NodeKindLeaf {
		return
	}
	n.children = append(n.children, child)
}

func (n *PlanNode) IsLeaf() bool  { return n.Kind == NodeKindLeaf }
func (n *PlanNode) IsGroup() bool { return n.Kind == NodeKindGroup }

// UsesLockedRecipes reports whether the node was built over the full catalog
func (n *PlanNode) UsesLockedRecipes() bool { return n.allowLocked }

// Selected returns the active alternative of a group.
// Returns false for leaves and for groups whose selected index is out of range.
func (n *PlanNode) Selected() (*PlanNode, bool) {
	if n.Kind != NodeKindGroup {
		return nil, false
	}
	if n.selected < 0 || n.selected >= len(n.alternatives) {
		return nil, false
	}
	return n.alternatives[n.selected], true
}

// active resolves delegation: a leaf is its own active node, a group's is its selection
func (n *PlanNode) active() (*PlanNode, bool) {
	switch n.Kind {
	case NodeKindLeaf:
		return n, true
	case NodeKindGroup:
		selected, ok := n.Selected()
		if !ok {
			return nil, false
		}
		return selected.active()
	default:
		return nil, false
	}
}

// Recipe returns the recipe of the active leaf, or nil
func (n *PlanNode) Recipe() *catalog.Recipe {
	leaf, ok := n.active()
	if !ok {
		return nil
	}
	return leaf.recipe
}

// PrimaryProduct returns the target item and rate this node was built for.
// All alternatives of a group share the same target, so groups answer directly.
func (n *PlanNode) PrimaryProduct() catalog.ItemAmount {
	return n.target
}

// Multiplier returns how many 100%-clock buildings the active recipe needs
func (n *PlanNode) Multiplier() float64 {
	leaf, ok := n.active()
	if !ok {
		return 0
	}
	return leaf.multiplier
}

// PowerConsumption returns the active recipe's own power draw in MW
func (n *PlanNode) PowerConsumption() float64 {
	leaf, ok := n.active()
	if !ok {
		return 0
	}
	return leaf.power
}

// Complexity returns the active recipe's own complexity score
func (n *PlanNode) Complexity() int {
	leaf, ok := n.active()
	if !ok {
		return 0
	}
	return leaf.complexity
}

// Byproducts returns the scaled non-target outputs of the active recipe
func (n *PlanNode) Byproducts() []catalog.ItemAmount {
	leaf, ok := n.active()
	if !ok {
		return nil
	}
	return append([]catalog.ItemAmount(nil), leaf.byproducts...)
}

// Subnodes returns the ingredient subtrees of the active recipe, in ingredient order
func (n *PlanNode) Subnodes() []*PlanNode {
	leaf, ok := n.active()
	if !ok {
		return nil
	}
	return leaf.children
}

// TotalPowerConsumption sums own power over the active subtree. Recomputed on every call.
func (n *PlanNode) TotalPowerConsumption() float64 {
	total := n.PowerConsumption()
	for _, child := range n.Subnodes() {
		if child != nil {
			total += child.TotalPowerConsumption()
		}
	}
	return total
}

// TotalComplexity sums own complexity over the active subtree. Recomputed on every call.
func (n *PlanNode) TotalComplexity() int {
	total := n.Complexity()
	for _, child := range n.Subnodes() {
		if child != nil {
			total += child.TotalComplexity()
		}
	}
	return total
}

// Group accessors

// Alternatives returns the candidate nodes of a group (nil for leaves)
func (n *PlanNode) Alternatives() []*PlanNode {
	if n.Kind != NodeKindGroup {
		return nil
	}
	return n.alternatives
}

// NumAlternatives returns the number of candidates of a group (0 for leaves)
func (n *PlanNode) NumAlternatives() int {
	return len(n.Alternatives())
}

// SelectedIndex returns the group's selected index (0-based). Leaves return 0.
func (n *PlanNode) SelectedIndex() int {
	if n.Kind != NodeKindGroup {
		return 0
	}
	return n.selected
}

// SetSelectedIndex changes the active alternative of a group.
// The index is stored unchecked; readers tolerate out-of-range values.
func (n *PlanNode) SetSelectedIndex(index int) {
	if n.Kind != NodeKindGroup {
		return
	}
	n.selected = index
}

// AllMultipliers returns each alternative's multiplier
func (n *PlanNode) AllMultipliers() []float64 {
	return collectFloat(n.Alternatives(), (*PlanNode).Multiplier)
}

// AllPowerConsumptions returns each alternative's own power draw
func (n *PlanNode) AllPowerConsumptions() []float64 {
	return collectFloat(n.Alternatives(), (*PlanNode).PowerConsumption)
}

// AllTotalPowerConsumptions returns each alternative's subtree power draw
func (n *PlanNode) AllTotalPowerConsumptions() []float64 {
	return collectFloat(n.Alternatives(), (*PlanNode).TotalPowerConsumption)
}

// AllComplexities returns each alternative's own complexity
func (n *PlanNode) AllComplexities() []int {
	return collectInt(n.Alternatives(), (*PlanNode).Complexity)
}

// AllTotalComplexities returns each alternative's subtree complexity
func (n *PlanNode) AllTotalComplexities() []int {
	return collectInt(n.Alternatives(), (*PlanNode).TotalComplexity)
}

// AllRecipes returns each alternative's active recipe
func (n *PlanNode) AllRecipes() []*catalog.Recipe {
	alternatives := n.Alternatives()
	result := make([]*catalog.Recipe, 0, len(alternatives))
	for _, alternative := range alternatives {
		if recipe := alternative.Recipe(); recipe != nil {
			result = append(result, recipe)
		}
	}
	return result
}

func collectFloat(nodes []*PlanNode, metric func(*PlanNode) float64) []float64 {
	result := make([]float64, 0, len(nodes))
	for _, node := range nodes {
		if node != nil {
			result = append(result, metric(node))
		}
	}
	return result
}

func collectInt(nodes []*PlanNode, metric func(*PlanNode) int) []int {
	result := make([]int, 0, len(nodes))
	for _, node := range nodes {
		if node != nil {
			result = append(result, metric(node))
		}
	}
	return result
}

// Tree analysis

// CountNodes returns the number of nodes reachable through active selections
func (n *PlanNode) CountNodes() int {
	count := 0
	WalkPreOrder(n, func(_ int, _ int, _ *PlanNode) bool {
		count++
		return true
	})
	return count
}

// RawInputs sums, per item, the ingredient rates of the active subtree that are not
// produced by any child node (raw resources and cycle-guarded ingredients).
func (n *PlanNode) RawInputs() map[catalog.ItemID]float64 {
	totals := make(map[catalog.ItemID]float64)
	WalkPreOrder(n, func(_ int, _ int, node *PlanNode) bool {
		recipe := node.Recipe()
		if recipe == nil {
			return true
		}
		produced := make(map[catalog.ItemID]bool)
		for _, child := range node.Subnodes() {
			produced[child.PrimaryProduct().Item] = true
		}
		rate := node.Multiplier() * recipe.CyclesPerMinute()
		for _, ingredient := range recipe.Ingredients {
			if !produced[ingredient.Item] {
				totals[ingredient.Item] += ingredient.Amount * rate
			}
		}
		return true
	})
	return totals
}
