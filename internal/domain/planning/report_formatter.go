package planning

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
)

// ItemNamer resolves item display names
type ItemNamer interface {
	ItemName(item catalog.ItemID) string
}

// ReportFormatter renders plan trees as plain-text reports.
//
// Node lines carry the same ordinals PlanRegistry.UpdateSelection expects, since both
// number nodes through WalkPreOrder.
type ReportFormatter struct {
	names  ItemNamer
	indent string
}

// NewReportFormatter creates a formatter resolving names through names
func NewReportFormatter(names ItemNamer) *ReportFormatter {
	return &ReportFormatter{
		names:  names,
		indent: "  ",
	}
}

func (f *ReportFormatter) itemName(item catalog.ItemID) string {
	if f.names == nil {
		return string(item)
	}
	return f.names.ItemName(item)
}

// RenderHeader renders the plan's summary line only
func (f *ReportFormatter) RenderHeader(root *PlanNode) string {
	if root == nil {
		return "(empty plan)"
	}

	target := root.PrimaryProduct()
	return fmt.Sprintf("%.2f/min %s | power %.2f MW | complexity %d",
		target.Amount,
		f.itemName(target.Item),
		root.TotalPowerConsumption(),
		root.TotalComplexity(),
	)
}

// RenderFull renders the header followed by one numbered line per node
func (f *ReportFormatter) RenderFull(root *PlanNode) string {
	if root == nil {
		return "(empty plan)"
	}

	var builder strings.Builder
	builder.WriteString(f.RenderHeader(root))
	builder.WriteString("\n")

	WalkPreOrder(root, func(ordinal int, depth int, node *PlanNode) bool {
		builder.WriteString(f.formatNode(ordinal, depth, node))
		builder.WriteString("\n")
		return true
	})

	return builder.String()
}

// formatNode renders one tree line
func (f *ReportFormatter) formatNode(ordinal int, depth int, node *PlanNode) string {
	recipeName := "(no recipe selected)"
	if recipe := node.Recipe(); recipe != nil {
		recipeName = recipe.Name
	}

	line := fmt.Sprintf("%s#%d %s <- %s x%.2f",
		strings.Repeat(f.indent, depth),
		ordinal,
		f.itemName(node.PrimaryProduct().Item),
		recipeName,
		node.Multiplier(),
	)

	if node.IsGroup() {
		line += fmt.Sprintf(" (Option %d of %d)", node.SelectedIndex()+1, node.NumAlternatives())
	}

	return line
}

// RenderSummary renders node counts and raw resource totals of a plan
func (f *ReportFormatter) RenderSummary(root *PlanNode) string {
	if root == nil {
		return "No plan"
	}

	nodes, groups := 0, 0
	WalkPreOrder(root, func(_ int, _ int, node *PlanNode) bool {
		nodes++
		if node.IsGroup() {
			groups++
		}
		return true
	})

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Plan: %d nodes (%d with alternatives)\n", nodes, groups))

	raw := root.RawInputs()
	items := make([]catalog.ItemID, 0, len(raw))
	for item := range raw {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })

	for _, item := range items {
		builder.WriteString(fmt.Sprintf("  raw %s: %.2f/min\n", f.itemName(item), raw[item]))
	}

	return builder.String()
}
