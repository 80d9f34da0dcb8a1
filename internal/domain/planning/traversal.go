package planning

// VisitFunc is called for every node of a walk with the node's 1-based ordinal and
// its depth (root = 0). Returning false stops the walk.
type VisitFunc func(ordinal int, depth int, node *PlanNode) bool

type walkFrame struct {
	node  *PlanNode
	depth int
}

// WalkPreOrder visits the active tree depth-first, numbering nodes from 1.
//
// The walk is driven by an explicit LIFO stack. Children are pushed in ingredient
// order, so siblings are visited in reverse ingredient order. A group counts as one
// node and its children are those of its selected alternative.
//
// This numbering is the node address used by PlanRegistry.UpdateSelection and printed
// by ReportFormatter; both must go through this function.
func WalkPreOrder(root *PlanNode, visit VisitFunc) {
	if root == nil {
		return
	}

	stack := []walkFrame{{node: root, depth: 0}}
	ordinal := 0

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ordinal++
		if !visit(ordinal, frame.depth, frame.node) {
			return
		}

		for _, child := range frame.node.Subnodes() {
			if child != nil {
				stack = append(stack, walkFrame{node: child, depth: frame.depth + 1})
			}
		}
	}
}

// FindByOrdinal returns the node numbered ordinal by WalkPreOrder
func FindByOrdinal(root *PlanNode, ordinal int) (*PlanNode, bool) {
	var found *PlanNode
	WalkPreOrder(root, func(current int, _ int, node *PlanNode) bool {
		if current == ordinal {
			found = node
			return false
		}
		return true
	})
	return found, found != nil
}
