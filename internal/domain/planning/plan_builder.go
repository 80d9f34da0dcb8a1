package planning

import (
	"context"
	"log/slog"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
)

// Default build ceilings
const (
	DefaultMaxDepth = 64
	DefaultMaxNodes = 200000
)

// BuildLimits bounds the size of a single build. Zero disables a limit.
type BuildLimits struct {
	MaxDepth int
	MaxNodes int
}

// DefaultBuildLimits returns the ceilings used when none are configured
func DefaultBuildLimits() BuildLimits {
	return BuildLimits{MaxDepth: DefaultMaxDepth, MaxNodes: DefaultMaxNodes}
}

// RecipeSet is a set of recipe ids, used to track the recipes on the current build path
type RecipeSet map[catalog.RecipeID]struct{}

// NewRecipeSet creates a set holding ids
func NewRecipeSet(ids ...catalog.RecipeID) RecipeSet {
	set := make(RecipeSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether id is in the set
func (s RecipeSet) Contains(id catalog.RecipeID) bool {
	_, ok := s[id]
	return ok
}

// With returns a copy of the set with id added. The receiver is not modified.
func (s RecipeSet) With(id catalog.RecipeID) RecipeSet {
	next := make(RecipeSet, len(s)+1)
	for existing := range s {
		next[existing] = struct{}{}
	}
	next[id] = struct{}{}
	return next
}

// PlanBuilder turns a target item and rate into a PlanNode tree using a RecipeIndex.
//
// Builds are synchronous and run on the caller's goroutine. The builder holds no
// per-build state, so one builder may serve concurrent builds over the same index.
type PlanBuilder struct {
	index  *RecipeIndex
	limits BuildLimits
	logger *slog.Logger
}

// NewPlanBuilder creates a builder over index. A nil logger discards output.
func NewPlanBuilder(index *RecipeIndex, limits BuildLimits, logger *slog.Logger) *PlanBuilder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PlanBuilder{
		index:  index,
		limits: limits,
		logger: logger,
	}
}

// Index returns the recipe index the builder reads from
func (b *PlanBuilder) Index() *RecipeIndex {
	return b.index
}

// buildRun carries the settings and counters of one build invocation
type buildRun struct {
	builder     *PlanBuilder
	ctx         context.Context
	allowLocked bool
	policy      OptimizationPolicy
	nodes       int
}

// CreateFactoryPlan builds a plan producing target.Amount per minute of target.Item.
//
// With a single candidate recipe the root is a leaf; with several it is a group whose
// selection is chosen by policy. No candidate at all yields ErrEmptyAlternativeSet.
func (b *PlanBuilder) CreateFactoryPlan(
	ctx context.Context,
	target catalog.ItemAmount,
	allowLocked bool,
	policy OptimizationPolicy,
) (*PlanNode, error) {
	if target.Amount <= 0 {
		return nil, &ErrInvalidTargetRate{Item: target.Item, Rate: target.Amount}
	}

	candidates := b.index.Candidates(target.Item, allowLocked)
	if len(candidates) == 0 {
		return nil, &ErrEmptyAlternativeSet{Item: target.Item, AllowLocked: allowLocked}
	}

	run := &buildRun{builder: b, ctx: ctx, allowLocked: allowLocked, policy: policy}
	return run.alternatives(target, candidates, NewRecipeSet(), 0)
}

// BuildNode builds a single-recipe node for target using recipe, expanding ingredients
// recursively. visited holds the recipes already on the path and is not modified.
// The recipe must list target among its products.
func (b *PlanBuilder) BuildNode(
	ctx context.Context,
	target catalog.ItemAmount,
	recipe *catalog.Recipe,
	visited RecipeSet,
	allowLocked bool,
	policy OptimizationPolicy,
) (*PlanNode, error) {
	if !recipe.Produces(target.Item) {
		return nil, &ErrRecipeMismatch{Recipe: recipe.ID, Item: target.Item}
	}

	run := &buildRun{builder: b, ctx: ctx, allowLocked: allowLocked, policy: policy}
	return run.leaf(target, recipe, visited, 0)
}

// alternatives builds a leaf for a single candidate, or a policy-optimized group
func (r *buildRun) alternatives(
	target catalog.ItemAmount,
	candidates []*catalog.Recipe,
	visited RecipeSet,
	depth int,
) (*PlanNode, error) {
	if len(candidates) == 1 {
		return r.leaf(target, candidates[0], visited, depth)
	}

	if err := r.count(depth); err != nil {
		return nil, err
	}

	options := make([]*PlanNode, 0, len(candidates))
	for _, candidate := range candidates {
		option, err := r.leaf(target, candidate, visited, depth)
		if err != nil {
			return nil, err
		}
		options = append(options, option)
	}

	group := NewGroupNode(target, options, r.allowLocked)
	r.policy.Apply(group)
	return group, nil
}

// leaf builds one recipe instance and recurses into its ingredients
func (r *buildRun) leaf(
	target catalog.ItemAmount,
	recipe *catalog.Recipe,
	visited RecipeSet,
	depth int,
) (*PlanNode, error) {
	if err := r.count(depth); err != nil {
		return nil, err
	}

	b := r.builder
	multiplier := 0.0
	if baseRate := recipe.BaseRatePerMinute(target.Item); baseRate > 0 {
		multiplier = target.Amount / baseRate
	} else {
		b.logger.Warn("recipe has no usable output rate for target",
			"recipe", recipe.ID, "item", target.Item, "duration", recipe.Duration)
	}

	power := b.index.ProducerPower(recipe.ID) * multiplier

	byproducts := make([]catalog.ItemAmount, 0)
	for _, product := range recipe.Products {
		if product.Item != target.Item {
			byproducts = append(byproducts, product.Scaled(multiplier))
		}
	}

	node := NewLeafNode(recipe, target, multiplier, power, byproducts, r.allowLocked)

	path := visited.With(recipe.ID)
	cyclesPerMinute := recipe.CyclesPerMinute()

	for _, ingredient := range recipe.Ingredients {
		input := ingredient.Scaled(multiplier * cyclesPerMinute)

		known := b.index.Candidates(ingredient.Item, r.allowLocked)
		candidates := make([]*catalog.Recipe, 0, len(known))
		for _, candidate := range known {
			if !path.Contains(candidate.ID) {
				candidates = append(candidates, candidate)
			}
		}

		if len(candidates) == 0 {
			if len(known) > 0 {
				b.logger.Debug("ingredient treated as raw input: every recipe is already on the path",
					"item", ingredient.Item, "recipe", recipe.ID)
			} else {
				b.logger.Debug("no recipes found for ingredient", "item", ingredient.Item)
			}
			continue
		}

		child, err := r.alternatives(input, candidates, path, depth+1)
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}

	return node, nil
}

// count registers one more node and enforces the build ceilings and cancellation
func (r *buildRun) count(depth int) error {
	if r.ctx != nil {
		if err := r.ctx.Err(); err != nil {
			return err
		}
	}

	limits := r.builder.limits
	if limits.MaxDepth > 0 && depth > limits.MaxDepth {
		return &ErrBuildLimitExceeded{Limit: "depth", Max: limits.MaxDepth}
	}

	r.nodes++
	if limits.MaxNodes > 0 && r.nodes > limits.MaxNodes {
		return &ErrBuildLimitExceeded{Limit: "nodes", Max: limits.MaxNodes}
	}
	return nil
}
