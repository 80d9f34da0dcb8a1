package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/ficsit-planner-go/internal/adapters/persistence"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/commands"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/setup"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
	"github.com/andrescamacho/ficsit-planner-go/test/helpers"
)

type catalogStoreContext struct {
	store    *persistence.GormCatalogRepository
	planner  *services.PlannerService
	mediator mediator.Mediator
	root     *planning.PlanNode
	err      error
}

func (cc *catalogStoreContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	cc.store = persistence.NewGormCatalogRepository(helpers.SharedTestDB, nil)
	cc.planner = nil
	cc.mediator = nil
	cc.root = nil
	cc.err = nil
	return nil
}

func fixtureCatalog(name string) (*catalog.Catalog, error) {
	switch name {
	case "factory":
		return helpers.FactoryCatalog(), nil
	case "smelting":
		return helpers.SmeltingCatalog(), nil
	case "copper sheet":
		return helpers.CopperSheetCatalog(), nil
	default:
		return nil, fmt.Errorf("unknown fixture catalog %q", name)
	}
}

// Given steps

func (cc *catalogStoreContext) theCatalogIsImportedFrom(name, source string) error {
	snapshot, err := fixtureCatalog(name)
	if err != nil {
		return err
	}

	m, err := setup.NewHandlerRegistry(nil, cc.store.WithSource(source)).CreateConfiguredMediator(nil)
	if err != nil {
		return err
	}
	_, err = m.Send(context.Background(), &commands.ImportCatalogCommand{
		Source: helpers.NewMockCatalogSource(snapshot),
	})
	return err
}

// When steps

func (cc *catalogStoreContext) thePlannerReloadsFromTheCatalogDatabase() error {
	cc.planner = services.NewPlannerService(cc.store, services.PlannerOptions{
		Limits: planning.DefaultBuildLimits(),
	}, nil)

	m, err := setup.NewHandlerRegistry(cc.planner, cc.store).CreateConfiguredMediator(nil)
	if err != nil {
		return err
	}
	cc.mediator = m

	_, cc.err = m.Send(context.Background(), &commands.ReloadCatalogCommand{})
	return nil
}

func (cc *catalogStoreContext) iPlanPerMinuteOfFromTheDatabase(rate float64, item string) error {
	if cc.mediator == nil {
		return fmt.Errorf("the planner has not been loaded")
	}

	response, err := cc.mediator.Send(context.Background(), &commands.CreatePlanCommand{
		Item:   catalog.ItemID(item),
		Rate:   rate,
		Policy: planning.PolicyNone,
	})
	cc.err = err
	if err != nil {
		cc.root = nil
		return nil
	}
	cc.root = response.(*commands.CreatePlanResponse).Root
	return nil
}

// Then steps

func (cc *catalogStoreContext) theDatabasePlanShouldHaveTotalPower(expected float64) error {
	if cc.err != nil {
		return fmt.Errorf("expected a plan, got error: %v", cc.err)
	}
	if cc.root == nil {
		return fmt.Errorf("no plan was built")
	}
	return expectFloat("total power", expected, cc.root.TotalPowerConsumption())
}

func (cc *catalogStoreContext) theDatabaseOperationShouldFailWith(expected string) error {
	if cc.err == nil {
		return fmt.Errorf("expected error containing '%s', but operation succeeded", expected)
	}
	if !strings.Contains(cc.err.Error(), expected) {
		return fmt.Errorf("expected error containing '%s', got '%s'", expected, cc.err.Error())
	}
	return nil
}

func (cc *catalogStoreContext) theLastCatalogImportShouldBeWithRecipes(source string, recipes int) error {
	last, err := cc.store.LastImport(context.Background())
	if err != nil {
		return err
	}
	if last == nil {
		return fmt.Errorf("no catalog import recorded")
	}
	if last.Source != source {
		return fmt.Errorf("expected last import from %s, got %s", source, last.Source)
	}
	if last.Recipes != recipes {
		return fmt.Errorf("expected last import of %d recipes, got %d", recipes, last.Recipes)
	}
	return nil
}

func (cc *catalogStoreContext) theDatabaseShouldHoldRecipes(expected int) error {
	snapshot, err := cc.store.Load(context.Background())
	if err != nil {
		return err
	}
	if actual := len(snapshot.Recipes()); actual != expected {
		return fmt.Errorf("expected %d stored recipes, got %d", expected, actual)
	}
	return nil
}

func InitializeCatalogStoreScenario(ctx *godog.ScenarioContext) {
	cc := &catalogStoreContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, cc.reset()
	})

	// Given steps
	ctx.Step(`^the (factory|smelting|copper sheet) catalog is imported from "([^"]*)"$`, cc.theCatalogIsImportedFrom)

	// When steps
	ctx.Step(`^the planner reloads from the catalog database$`, cc.thePlannerReloadsFromTheCatalogDatabase)
	ctx.Step(`^I plan ([0-9.]+) per minute of "([^"]*)" from the database$`, cc.iPlanPerMinuteOfFromTheDatabase)

	// Then steps
	ctx.Step(`^the database plan should have total power ([0-9.]+) MW$`, cc.theDatabasePlanShouldHaveTotalPower)
	ctx.Step(`^the database operation should fail with "([^"]*)"$`, cc.theDatabaseOperationShouldFailWith)
	ctx.Step(`^the last catalog import should be "([^"]*)" with (\d+) recipes$`, cc.theLastCatalogImportShouldBeWithRecipes)
	ctx.Step(`^the database should hold (\d+) recipes$`, cc.theDatabaseShouldHoldRecipes)
}
