package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andrescamacho/ficsit-planner-go/internal/adapters/metrics"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/common"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/shared"
)

// ReportFormat selects how a stored plan is rendered
type ReportFormat string

const (
	ReportFull    ReportFormat = "full"
	ReportHeader  ReportFormat = "header"
	ReportSummary ReportFormat = "summary"
)

// Producer predicates accepted by PlannerOptions.ProducerPredicate
const (
	ProducerPredicatePrefix       = "prefix"
	ProducerPredicateManufacturer = "manufacturer"
)

// PlannerOptions configures how the catalog is indexed and how large a build may grow
type PlannerOptions struct {
	// Producers whose id starts with BuildingPrefix count as production buildings.
	// Empty uses planning.DefaultBuildingPrefix.
	BuildingPrefix string

	// ProducerPredicate picks how fixed production buildings are recognized:
	// "prefix" (or empty) matches BuildingPrefix, "manufacturer" uses the catalog's
	// per-building Manufacturer flag.
	ProducerPredicate string

	// Recipes consuming any of these items are not indexed
	IngredientDenylist []catalog.ItemID

	Limits planning.BuildLimits
}

// CatalogStats describes the index produced by a catalog reload
type CatalogStats struct {
	Items           int
	UnlockedRecipes int
	AllRecipes      int
	LoadedAt        time.Time
}

// PlannerService is the planning engine: it owns the recipe index built from a catalog
// source and the registry of saved plans.
//
// The index reference is guarded by an RWMutex and swapped whole on reload; builds take a
// snapshot and never block each other. Registry access, including any read or mutation of
// a stored tree, is serialized by a separate mutex.
type PlannerService struct {
	source  catalog.CatalogSource
	options PlannerOptions
	clock   shared.Clock

	indexMu  sync.RWMutex
	index    *planning.RecipeIndex
	loadedAt time.Time

	registryMu sync.Mutex
	registry   *planning.PlanRegistry
}

// NewPlannerService creates a service over source. The catalog is not read until
// ReloadCatalog is called. A nil clock falls back to the system clock.
func NewPlannerService(source catalog.CatalogSource, options PlannerOptions, clock shared.Clock) *PlannerService {
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &PlannerService{
		source:   source,
		options:  options,
		clock:    clock,
		registry: planning.NewPlanRegistry(clock),
	}
}

// ReloadCatalog reads a fresh catalog snapshot and rebuilds the recipe index.
// On failure the previous index stays active. Stored plans are kept as built.
func (s *PlannerService) ReloadCatalog(ctx context.Context) (*CatalogStats, error) {
	logger := common.LoggerFromContext(ctx)

	snapshot, err := s.source.Load(ctx)
	if err != nil {
		metrics.RecordCatalogReload(0, 0, false)
		logger.Error("catalog reload failed", "error", err)
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	predicate, err := s.producerPredicate(snapshot)
	if err != nil {
		metrics.RecordCatalogReload(0, 0, false)
		return nil, err
	}
	index := planning.BuildRecipeIndex(snapshot, predicate, s.options.IngredientDenylist)

	stats := &CatalogStats{
		Items:           len(snapshot.Items()),
		UnlockedRecipes: index.RecipeCount(false),
		AllRecipes:      index.RecipeCount(true),
		LoadedAt:        s.clock.Now(),
	}

	s.indexMu.Lock()
	s.index = index
	s.loadedAt = stats.LoadedAt
	s.indexMu.Unlock()

	metrics.RecordCatalogReload(stats.UnlockedRecipes, stats.AllRecipes, true)
	logger.Info("catalog loaded",
		"items", stats.Items,
		"unlocked_recipes", stats.UnlockedRecipes,
		"all_recipes", stats.AllRecipes)

	return stats, nil
}

func (s *PlannerService) producerPredicate(snapshot *catalog.Catalog) (planning.ProducerPredicate, error) {
	switch s.options.ProducerPredicate {
	case "", ProducerPredicatePrefix:
		prefix := s.options.BuildingPrefix
		if prefix == "" {
			prefix = planning.DefaultBuildingPrefix
		}
		return planning.BuildingPrefixPredicate(prefix), nil
	case ProducerPredicateManufacturer:
		return planning.ManufacturerPredicate(snapshot), nil
	default:
		return nil, fmt.Errorf("unknown producer predicate %q", s.options.ProducerPredicate)
	}
}

// Index returns the active recipe index
func (s *PlannerService) Index() (*planning.RecipeIndex, error) {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	if s.index == nil {
		return nil, &ErrCatalogNotLoaded{}
	}
	return s.index, nil
}

// CreateFactoryPlan builds a plan for target without storing it
func (s *PlannerService) CreateFactoryPlan(
	ctx context.Context,
	target catalog.ItemAmount,
	allowLocked bool,
	policy planning.OptimizationPolicy,
) (*planning.PlanNode, error) {
	index, err := s.Index()
	if err != nil {
		return nil, err
	}
	return s.build(ctx, index, target, allowLocked, policy)
}

func (s *PlannerService) build(
	ctx context.Context,
	index *planning.RecipeIndex,
	target catalog.ItemAmount,
	allowLocked bool,
	policy planning.OptimizationPolicy,
) (*planning.PlanNode, error) {
	logger := common.LoggerFromContext(ctx)
	builder := planning.NewPlanBuilder(index, s.options.Limits, logger)

	start := time.Now()
	root, err := builder.CreateFactoryPlan(ctx, target, allowLocked, policy)
	elapsed := time.Since(start)

	if err != nil {
		metrics.RecordPlanBuild(string(policy), 0, elapsed.Seconds(), false)
		return nil, err
	}

	nodes := root.CountNodes()
	metrics.RecordPlanBuild(string(policy), nodes, elapsed.Seconds(), true)
	logger.Debug("plan built",
		"item", target.Item,
		"rate", target.Amount,
		"policy", policy,
		"nodes", nodes,
		"elapsed", elapsed)

	return root, nil
}

// SavePlan stores root and returns its plan id
func (s *PlannerService) SavePlan(root *planning.PlanNode) (int, error) {
	s.registryMu.Lock()
	defer s.registryMu.Unlock()
	id, err := s.registry.SavePlan(root)
	if err != nil {
		return -1, err
	}
	metrics.SetStoredPlans(s.registry.Len())
	return id, nil
}

// GetPlan returns the stored root of plan id.
// The tree is shared with the registry; callers must not read it while other goroutines
// change selections.
func (s *PlannerService) GetPlan(id int) (*planning.PlanNode, error) {
	s.registryMu.Lock()
	defer s.registryMu.Unlock()
	return s.registry.GetPlan(id)
}

// DeletePlan removes plan id. Later plan ids shift down by one.
func (s *PlannerService) DeletePlan(id int) error {
	s.registryMu.Lock()
	defer s.registryMu.Unlock()
	if err := s.registry.DeletePlan(id); err != nil {
		return err
	}
	metrics.SetStoredPlans(s.registry.Len())
	return nil
}

// ReplacePlan overwrites plan id with root
func (s *PlannerService) ReplacePlan(id int, root *planning.PlanNode) error {
	s.registryMu.Lock()
	defer s.registryMu.Unlock()
	return s.registry.ReplacePlan(id, root)
}

// UpdateSelection activates alternative (1-based) of the group at node ordinal nodeOrdinal
func (s *PlannerService) UpdateSelection(id int, nodeOrdinal int, alternative int) error {
	s.registryMu.Lock()
	defer s.registryMu.Unlock()
	return s.registry.UpdateSelection(id, nodeOrdinal, alternative)
}

// OptimizeExisting rebuilds plan id for the same target and recipe scope with policy,
// replacing the stored tree. Manual selections on the old tree are discarded.
func (s *PlannerService) OptimizeExisting(ctx context.Context, id int, policy planning.OptimizationPolicy) error {
	index, err := s.Index()
	if err != nil {
		return err
	}

	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	root, err := s.registry.GetPlan(id)
	if err != nil {
		return err
	}

	rebuilt, err := s.build(ctx, index, root.PrimaryProduct(), root.UsesLockedRecipes(), policy)
	if err != nil {
		return err
	}

	common.LoggerFromContext(ctx).Info("plan re-optimized", "plan_id", id, "policy", policy)
	return s.registry.ReplacePlan(id, rebuilt)
}

// RenderFull renders an unsaved tree with names from the active catalog
func (s *PlannerService) RenderFull(root *planning.PlanNode) string {
	return planning.NewReportFormatter(s.namer()).RenderFull(root)
}

// RenderHeader renders the summary line of an unsaved tree
func (s *PlannerService) RenderHeader(root *planning.PlanNode) string {
	return planning.NewReportFormatter(s.namer()).RenderHeader(root)
}

// RenderSummary renders node counts and raw inputs of an unsaved tree
func (s *PlannerService) RenderSummary(root *planning.PlanNode) string {
	return planning.NewReportFormatter(s.namer()).RenderSummary(root)
}

// RenderPlan renders stored plan id while holding the registry lock
func (s *PlannerService) RenderPlan(id int, format ReportFormat) (string, error) {
	formatter := planning.NewReportFormatter(s.namer())

	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	root, err := s.registry.GetPlan(id)
	if err != nil {
		return "", err
	}

	switch format {
	case ReportHeader:
		return formatter.RenderHeader(root), nil
	case ReportSummary:
		return formatter.RenderSummary(root), nil
	default:
		return formatter.RenderFull(root), nil
	}
}

// InspectPlan runs fn on the stored root of plan id while holding the registry lock.
// fn must not keep references to the tree after it returns.
func (s *PlannerService) InspectPlan(id int, fn func(root *planning.PlanNode) error) error {
	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	root, err := s.registry.GetPlan(id)
	if err != nil {
		return err
	}
	return fn(root)
}

// ListPlans summarizes every stored plan
func (s *PlannerService) ListPlans() []planning.PlanSummary {
	namer := s.namer()

	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	if namer == nil {
		return s.registry.List(nil)
	}
	return s.registry.List(namer.ItemName)
}

// FindItemByDisplayName resolves a display name against the active catalog
func (s *PlannerService) FindItemByDisplayName(name string, caseInsensitive bool) (catalog.Item, error) {
	index, err := s.Index()
	if err != nil {
		return catalog.Item{}, err
	}
	return index.Catalog().FindItemByDisplayName(name, caseInsensitive)
}

// ProducibleItems lists the items at least one indexed recipe produces, in recipe order
func (s *PlannerService) ProducibleItems(allowLocked bool) ([]catalog.Item, error) {
	index, err := s.Index()
	if err != nil {
		return nil, err
	}

	ids := index.Items(allowLocked)
	items := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		item, ok := index.Catalog().Item(id)
		if !ok {
			item = catalog.Item{ID: id, Name: string(id)}
		}
		items = append(items, item)
	}
	return items, nil
}

// namer returns the active index as an ItemNamer, or nil before the first load
func (s *PlannerService) namer() planning.ItemNamer {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	if s.index == nil {
		return nil
	}
	return s.index
}
