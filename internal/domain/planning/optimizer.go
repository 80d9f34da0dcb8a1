package planning

import "fmt"

// OptimizationPolicy determines which alternative a group starts with
type OptimizationPolicy string

const (
	// PolicyNone keeps catalog order and selects the first alternative
	PolicyNone OptimizationPolicy = "none"

	// PolicyMinimizePower selects the alternative with the lowest own power draw
	PolicyMinimizePower OptimizationPolicy = "power"

	// PolicyMinimizeComplexity selects the alternative with the lowest own complexity
	PolicyMinimizeComplexity OptimizationPolicy = "complexity"

	// PolicyMinimizeTotalPower selects the alternative whose whole subtree draws the least power
	PolicyMinimizeTotalPower OptimizationPolicy = "total-power"

	// PolicyMinimizeTotalComplexity selects the alternative whose whole subtree is least complex
	PolicyMinimizeTotalComplexity OptimizationPolicy = "total-complexity"
)

// Policies lists every supported policy, in documentation order
var Policies = []OptimizationPolicy{
	PolicyNone,
	PolicyMinimizePower,
	PolicyMinimizeComplexity,
	PolicyMinimizeTotalPower,
	PolicyMinimizeTotalComplexity,
}

// ParseOptimizationPolicy converts a policy name to an OptimizationPolicy.
// The empty string maps to PolicyNone.
func ParseOptimizationPolicy(name string) (OptimizationPolicy, error) {
	if name == "" {
		return PolicyNone, nil
	}
	for _, policy := range Policies {
		if string(policy) == name {
			return policy, nil
		}
	}
	return "", fmt.Errorf("unknown optimization policy %q (expected one of %v)", name, Policies)
}

// SelectIndex returns the alternative the policy prefers. Ties resolve to the lowest index.
//
// The shallow policies compare each alternative's own metric only, not the cost of its
// ingredient chain; use the total-* policies for a subtree comparison.
func (p OptimizationPolicy) SelectIndex(group *PlanNode) int {
	switch p {
	case PolicyMinimizePower:
		return argMinFloat(group.AllPowerConsumptions())
	case PolicyMinimizeComplexity:
		return argMinInt(group.AllComplexities())
	case PolicyMinimizeTotalPower:
		return argMinFloat(group.AllTotalPowerConsumptions())
	case PolicyMinimizeTotalComplexity:
		return argMinInt(group.AllTotalComplexities())
	default:
		return 0
	}
}

// Apply sets the group's selected index according to the policy. No-op on leaves.
func (p OptimizationPolicy) Apply(group *PlanNode) {
	if group == nil || !group.IsGroup() || group.NumAlternatives() == 0 {
		return
	}
	group.SetSelectedIndex(p.SelectIndex(group))
}

func argMinFloat(values []float64) int {
	minIndex := 0
	for i := 1; i < len(values); i++ {
		if values[i] < values[minIndex] {
			minIndex = i
		}
	}
	return minIndex
}

func argMinInt(values []int) int {
	minIndex := 0
	for i := 1; i < len(values); i++ {
		if values[i] < values[minIndex] {
			minIndex = i
		}
	}
	return minIndex
}
