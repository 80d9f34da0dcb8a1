package steps

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/commands"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/queries"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/setup"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
	"github.com/andrescamacho/ficsit-planner-go/test/helpers"
)

type planningContext struct {
	catalog  *catalog.Catalog
	limits   planning.BuildLimits
	planner  *services.PlannerService
	mediator mediator.Mediator
	root     *planning.PlanNode
	planID   int
	report   string
	err      error
}

func (pc *planningContext) reset() {
	pc.catalog = nil
	pc.limits = planning.DefaultBuildLimits()
	pc.planner = nil
	pc.mediator = nil
	pc.root = nil
	pc.planID = -1
	pc.report = ""
	pc.err = nil
}

// ensurePlanner loads the scenario catalog on first use
func (pc *planningContext) ensurePlanner() error {
	if pc.mediator != nil {
		return nil
	}
	if pc.catalog == nil {
		return fmt.Errorf("no catalog configured")
	}

	pc.planner = services.NewPlannerService(helpers.NewMockCatalogSource(pc.catalog), services.PlannerOptions{
		Limits: pc.limits,
	}, nil)
	m, err := setup.NewHandlerRegistry(pc.planner, nil).CreateConfiguredMediator(nil)
	if err != nil {
		return err
	}
	pc.mediator = m

	_, err = m.Send(context.Background(), &commands.ReloadCatalogCommand{})
	return err
}

// Given steps

func (pc *planningContext) theFactoryCatalog() error {
	pc.catalog = helpers.FactoryCatalog()
	return nil
}

func (pc *planningContext) theCopperSheetCatalog() error {
	pc.catalog = helpers.CopperSheetCatalog()
	return nil
}

func (pc *planningContext) aCyclicCatalog() error {
	pc.catalog = helpers.CyclicCatalog()
	return nil
}

func (pc *planningContext) aCatalogWithRecipes(table *godog.Table) error {
	builder := helpers.NewCatalogBuilder()
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		if len(row.Cells) != 6 {
			return fmt.Errorf("row %d: expected id | ingredients | products | seconds | building | unlocked", i)
		}

		ingredients, err := parseAmounts(row.Cells[1].Value)
		if err != nil {
			return err
		}
		products, err := parseAmounts(row.Cells[2].Value)
		if err != nil {
			return err
		}
		duration, err := strconv.ParseFloat(row.Cells[3].Value, 64)
		if err != nil {
			return fmt.Errorf("row %d: invalid duration: %w", i, err)
		}

		recipe := helpers.CreateTestRecipe(row.Cells[0].Value, ingredients, products, duration,
			catalog.BuildingID(row.Cells[4].Value))
		recipe.Unlocked = row.Cells[5].Value == "yes"
		builder.WithRecipe(recipe)
	}
	pc.catalog = builder.Build()
	return nil
}

func (pc *planningContext) buildLimitsOfDepthAndNodes(depth, nodes int) error {
	pc.limits = planning.BuildLimits{MaxDepth: depth, MaxNodes: nodes}
	return nil
}

// When steps

func (pc *planningContext) plan(rate float64, item string, policy string, allowLocked bool, save bool) error {
	if err := pc.ensurePlanner(); err != nil {
		return err
	}
	parsed, err := planning.ParseOptimizationPolicy(policy)
	if err != nil {
		return err
	}

	response, err := pc.mediator.Send(context.Background(), &commands.CreatePlanCommand{
		Item:        catalog.ItemID(item),
		Rate:        rate,
		AllowLocked: allowLocked,
		Policy:      parsed,
		Save:        save,
	})
	pc.err = err
	if err != nil {
		pc.root = nil
		return nil
	}

	created := response.(*commands.CreatePlanResponse)
	pc.root = created.Root
	pc.planID = created.PlanID
	return nil
}

func (pc *planningContext) iPlanPerMinuteOf(rate float64, item string) error {
	return pc.plan(rate, item, "none", false, false)
}

func (pc *planningContext) iPlanPerMinuteOfUsingPolicy(rate float64, item, policy string) error {
	return pc.plan(rate, item, policy, false, false)
}

func (pc *planningContext) iPlanPerMinuteOfIncludingLockedRecipes(rate float64, item string) error {
	return pc.plan(rate, item, "none", true, false)
}

func (pc *planningContext) iSavePerMinuteOf(rate float64, item string) error {
	return pc.plan(rate, item, "none", false, true)
}

func (pc *planningContext) iSelectOptionOfNodeInPlan(option, node, id int) error {
	_, pc.err = pc.mediator.Send(context.Background(), &commands.SelectAlternativeCommand{
		PlanID:      id,
		NodeOrdinal: node,
		Alternative: option,
	})
	return nil
}

func (pc *planningContext) iOptimizePlanFor(id int, policy string) error {
	parsed, err := planning.ParseOptimizationPolicy(policy)
	if err != nil {
		return err
	}
	_, pc.err = pc.mediator.Send(context.Background(), &commands.OptimizePlanCommand{PlanID: id, Policy: parsed})
	return nil
}

func (pc *planningContext) iDeletePlan(id int) error {
	_, pc.err = pc.mediator.Send(context.Background(), &commands.DeletePlanCommand{PlanID: id})
	return nil
}

func (pc *planningContext) iRenderPlan(id int) error {
	response, err := pc.mediator.Send(context.Background(), &queries.RenderPlanQuery{
		PlanID: id,
		Format: services.ReportFull,
	})
	pc.err = err
	if err == nil {
		pc.report = response.(*queries.RenderPlanResponse).Report
	}
	return nil
}

// Then steps

func (pc *planningContext) requireRoot() error {
	if pc.err != nil {
		return fmt.Errorf("expected a plan, got error: %v", pc.err)
	}
	if pc.root == nil {
		return fmt.Errorf("no plan was built")
	}
	return nil
}

func (pc *planningContext) thePlanShouldHaveTotalPower(expected float64) error {
	if err := pc.requireRoot(); err != nil {
		return err
	}
	return expectFloat("total power", expected, pc.root.TotalPowerConsumption())
}

func (pc *planningContext) thePlanShouldHaveTotalComplexity(expected int) error {
	if err := pc.requireRoot(); err != nil {
		return err
	}
	if actual := pc.root.TotalComplexity(); actual != expected {
		return fmt.Errorf("expected total complexity %d, got %d", expected, actual)
	}
	return nil
}

func (pc *planningContext) thePlanShouldHaveNodes(expected int) error {
	if err := pc.requireRoot(); err != nil {
		return err
	}
	if actual := pc.root.CountNodes(); actual != expected {
		return fmt.Errorf("expected %d nodes, got %d", expected, actual)
	}
	return nil
}

func (pc *planningContext) theRootShouldBeALeaf() error {
	if err := pc.requireRoot(); err != nil {
		return err
	}
	if !pc.root.IsLeaf() {
		return fmt.Errorf("expected a leaf root, got a group of %d", pc.root.NumAlternatives())
	}
	return nil
}

func (pc *planningContext) theRootShouldBeAGroupOfAlternatives(expected int) error {
	if err := pc.requireRoot(); err != nil {
		return err
	}
	if !pc.root.IsGroup() {
		return fmt.Errorf("expected a group root, got a leaf")
	}
	if actual := pc.root.NumAlternatives(); actual != expected {
		return fmt.Errorf("expected %d alternatives, got %d", expected, actual)
	}
	return nil
}

func (pc *planningContext) nodeShouldUseRecipe(ordinal int, recipe string) error {
	if err := pc.requireRoot(); err != nil {
		return err
	}
	node, ok := planning.FindByOrdinal(pc.root, ordinal)
	if !ok {
		return fmt.Errorf("plan has no node #%d", ordinal)
	}
	if node.Recipe() == nil {
		return fmt.Errorf("node #%d has no active recipe", ordinal)
	}
	if actual := string(node.Recipe().ID); actual != recipe {
		return fmt.Errorf("expected node #%d to use %s, got %s", ordinal, recipe, actual)
	}
	return nil
}

func (pc *planningContext) theRawInputOfShouldBePerMinute(item string, expected float64) error {
	if err := pc.requireRoot(); err != nil {
		return err
	}
	return expectFloat("raw "+item, expected, pc.root.RawInputs()[catalog.ItemID(item)])
}

func (pc *planningContext) planShouldHaveTotalPower(id int, expected float64) error {
	response, err := pc.mediator.Send(context.Background(), &queries.ListPlansQuery{})
	if err != nil {
		return err
	}
	plans := response.(*queries.ListPlansResponse).Plans
	if id < 0 || id >= len(plans) {
		return fmt.Errorf("plan %d not stored (%d plans)", id, len(plans))
	}
	return expectFloat(fmt.Sprintf("plan %d total power", id), expected, plans[id].TotalPower)
}

func (pc *planningContext) plansShouldBeStored(expected int) error {
	response, err := pc.mediator.Send(context.Background(), &queries.ListPlansQuery{})
	if err != nil {
		return err
	}
	if actual := len(response.(*queries.ListPlansResponse).Plans); actual != expected {
		return fmt.Errorf("expected %d stored plans, got %d", expected, actual)
	}
	return nil
}

func (pc *planningContext) theReportShouldBe(expected *godog.DocString) error {
	if pc.err != nil {
		return fmt.Errorf("expected a report, got error: %v", pc.err)
	}
	if strings.TrimRight(pc.report, "\n") != strings.TrimRight(expected.Content, "\n") {
		return fmt.Errorf("expected report:\n%s\ngot:\n%s", expected.Content, pc.report)
	}
	return nil
}

func (pc *planningContext) theOperationShouldSucceed() error {
	if pc.err != nil {
		return fmt.Errorf("expected success, got error: %v", pc.err)
	}
	return nil
}

func (pc *planningContext) theOperationShouldFailWith(expected string) error {
	if pc.err == nil {
		return fmt.Errorf("expected error containing '%s', but operation succeeded", expected)
	}
	if !strings.Contains(pc.err.Error(), expected) {
		return fmt.Errorf("expected error containing '%s', got '%s'", expected, pc.err.Error())
	}
	return nil
}

// parseAmounts reads "Item:2, Other:1.5"; "-" means no amounts
func parseAmounts(value string) ([]catalog.ItemAmount, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "-" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	amounts := make([]catalog.ItemAmount, 0, len(parts))
	for _, part := range parts {
		item, amount, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("invalid amount %q, expected item:amount", part)
		}
		parsed, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", part, err)
		}
		amounts = append(amounts, catalog.ItemAmount{Item: catalog.ItemID(item), Amount: parsed})
	}
	return amounts, nil
}

func expectFloat(what string, expected, actual float64) error {
	if math.Abs(expected-actual) > 0.01 {
		return fmt.Errorf("expected %s %.2f, got %.2f", what, expected, actual)
	}
	return nil
}

func InitializePlanningScenario(ctx *godog.ScenarioContext) {
	pc := &planningContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		pc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the factory catalog$`, pc.theFactoryCatalog)
	ctx.Step(`^the copper sheet catalog$`, pc.theCopperSheetCatalog)
	ctx.Step(`^a cyclic catalog$`, pc.aCyclicCatalog)
	ctx.Step(`^a catalog with recipes:$`, pc.aCatalogWithRecipes)
	ctx.Step(`^build limits of depth (\d+) and (\d+) nodes$`, pc.buildLimitsOfDepthAndNodes)

	// When steps
	ctx.Step(`^I plan (-?[0-9.]+) per minute of "([^"]*)"$`, pc.iPlanPerMinuteOf)
	ctx.Step(`^I plan (-?[0-9.]+) per minute of "([^"]*)" using policy "([^"]*)"$`, pc.iPlanPerMinuteOfUsingPolicy)
	ctx.Step(`^I plan (-?[0-9.]+) per minute of "([^"]*)" including locked recipes$`, pc.iPlanPerMinuteOfIncludingLockedRecipes)
	ctx.Step(`^I save a plan for ([0-9.]+) per minute of "([^"]*)"$`, pc.iSavePerMinuteOf)
	ctx.Step(`^I select option (-?\d+) of node (\d+) in plan (\d+)$`, pc.iSelectOptionOfNodeInPlan)
	ctx.Step(`^I optimize plan (\d+) for "([^"]*)"$`, pc.iOptimizePlanFor)
	ctx.Step(`^I delete plan (\d+)$`, pc.iDeletePlan)
	ctx.Step(`^I render plan (\d+)$`, pc.iRenderPlan)

	// Then steps
	ctx.Step(`^the plan should have total power ([0-9.]+) MW$`, pc.thePlanShouldHaveTotalPower)
	ctx.Step(`^the plan should have total complexity (\d+)$`, pc.thePlanShouldHaveTotalComplexity)
	ctx.Step(`^the plan should have (\d+) nodes$`, pc.thePlanShouldHaveNodes)
	ctx.Step(`^the root should be a leaf$`, pc.theRootShouldBeALeaf)
	ctx.Step(`^the root should be a group of (\d+) alternatives$`, pc.theRootShouldBeAGroupOfAlternatives)
	ctx.Step(`^node (\d+) should use recipe "([^"]*)"$`, pc.nodeShouldUseRecipe)
	ctx.Step(`^the raw input of "([^"]*)" should be ([0-9.]+) per minute$`, pc.theRawInputOfShouldBePerMinute)
	ctx.Step(`^plan (\d+) should have total power ([0-9.]+) MW$`, pc.planShouldHaveTotalPower)
	ctx.Step(`^(\d+) plans? should be stored$`, pc.plansShouldBeStored)
	ctx.Step(`^the report should be:$`, pc.theReportShouldBe)
	ctx.Step(`^the operation should succeed$`, pc.theOperationShouldSucceed)
	ctx.Step(`^the operation should fail with "([^"]*)"$`, pc.theOperationShouldFailWith)
}
