package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
)

// TreeFormatter draws plan trees with box-drawing connectors.
// Node numbers are the same ordinals the plain report prints.
type TreeFormatter struct {
	useColors bool
	names     func(catalog.ItemID) string
}

// NewTreeFormatter creates a new tree formatter. A nil names func prints item ids.
func NewTreeFormatter(useColors bool, names func(catalog.ItemID) string) *TreeFormatter {
	return &TreeFormatter{
		useColors: useColors,
		names:     names,
	}
}

type treeLine struct {
	ordinal    int
	depth      int
	node       *planning.PlanNode
	hasSibling bool // a later sibling follows this node
}

// FormatTree renders the active tree of a plan
func (f *TreeFormatter) FormatTree(root *planning.PlanNode) string {
	if root == nil {
		return "(empty tree)"
	}

	lines := make([]treeLine, 0)
	planning.WalkPreOrder(root, func(ordinal int, depth int, node *planning.PlanNode) bool {
		lines = append(lines, treeLine{ordinal: ordinal, depth: depth, node: node})
		return true
	})

	// Walk backwards to learn which nodes have a later sibling
	seen := make([]bool, 0)
	for i := len(lines) - 1; i >= 0; i-- {
		depth := lines[i].depth
		for len(seen) <= depth {
			seen = append(seen, false)
		}
		lines[i].hasSibling = seen[depth]
		seen = seen[:depth+1]
		seen[depth] = true
	}

	var builder strings.Builder
	open := make([]bool, 0)
	for _, line := range lines {
		open = append(open[:min(len(open), line.depth)], line.hasSibling)

		var prefix strings.Builder
		for depth := 1; depth < line.depth; depth++ {
			if open[depth] {
				prefix.WriteString("│   ")
			} else {
				prefix.WriteString("    ")
			}
		}
		if line.depth > 0 {
			if line.hasSibling {
				prefix.WriteString("├── ")
			} else {
				prefix.WriteString("└── ")
			}
		}

		builder.WriteString(prefix.String())
		builder.WriteString(f.formatNode(line.ordinal, line.node))
		builder.WriteString("\n")
	}

	return builder.String()
}

func (f *TreeFormatter) formatNode(ordinal int, node *planning.PlanNode) string {
	target := node.PrimaryProduct()

	recipe := "(no recipe selected)"
	if r := node.Recipe(); r != nil {
		recipe = r.Name
	}

	line := fmt.Sprintf("#%d %s %.2f/min [%s x%.2f, %.2f MW]",
		ordinal,
		f.itemName(target.Item),
		target.Amount,
		recipe,
		node.Multiplier(),
		node.PowerConsumption(),
	)

	if node.IsGroup() {
		line += fmt.Sprintf(" %s{%d/%d}%s",
			f.groupColor(), node.SelectedIndex()+1, node.NumAlternatives(), f.colorReset())
	}

	if byproducts := node.Byproducts(); len(byproducts) > 0 {
		parts := make([]string, 0, len(byproducts))
		for _, b := range byproducts {
			parts = append(parts, fmt.Sprintf("%s %.2f/min", f.itemName(b.Item), b.Amount))
		}
		line += " +" + strings.Join(parts, ", +")
	}

	return line
}

// FormatNodeDetails compares the alternatives of a node.
// Leaves list their single recipe.
func (f *TreeFormatter) FormatNodeDetails(ordinal int, node *planning.PlanNode) string {
	if node == nil {
		return "No node"
	}

	var builder strings.Builder
	target := node.PrimaryProduct()
	builder.WriteString(fmt.Sprintf("Node #%d: %s %.2f/min (%s)\n",
		ordinal, f.itemName(target.Item), target.Amount, node.Kind))

	if node.IsLeaf() {
		recipe := "(none)"
		if r := node.Recipe(); r != nil {
			recipe = string(r.ID)
		}
		builder.WriteString(fmt.Sprintf("  Recipe:      %s\n", recipe))
		builder.WriteString(fmt.Sprintf("  Multiplier:  %.2f\n", node.Multiplier()))
		builder.WriteString(fmt.Sprintf("  Power:       %.2f MW (total %.2f MW)\n",
			node.PowerConsumption(), node.TotalPowerConsumption()))
		builder.WriteString(fmt.Sprintf("  Complexity:  %d (total %d)\n",
			node.Complexity(), node.TotalComplexity()))
		return builder.String()
	}

	recipes := node.AllRecipes()
	multipliers := node.AllMultipliers()
	power := node.AllPowerConsumptions()
	totalPower := node.AllTotalPowerConsumptions()
	complexity := node.AllComplexities()
	totalComplexity := node.AllTotalComplexities()

	builder.WriteString(fmt.Sprintf("  %-3s %-32s %8s %10s %12s %6s %8s\n",
		"", "RECIPE", "MULT", "POWER", "TOTAL POWER", "CPLX", "TOTAL"))
	for i, recipe := range recipes {
		marker := " "
		if i == node.SelectedIndex() {
			marker = "*"
		}
		name := "(none)"
		if recipe != nil {
			name = string(recipe.ID)
		}
		builder.WriteString(fmt.Sprintf("%s %-3d %-32s %8.2f %10.2f %12.2f %6d %8d\n",
			marker, i+1, name, multipliers[i], power[i], totalPower[i], complexity[i], totalComplexity[i]))
	}

	return builder.String()
}

func (f *TreeFormatter) itemName(item catalog.ItemID) string {
	if f.names == nil {
		return string(item)
	}
	return f.names(item)
}

// groupColor returns the ANSI color used for alternative markers
func (f *TreeFormatter) groupColor() string {
	if !f.useColors {
		return ""
	}
	return "\033[33m" // Yellow
}

// colorReset returns ANSI reset code
func (f *TreeFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}
