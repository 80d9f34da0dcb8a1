package cli

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/andrescamacho/ficsit-planner-go/internal/adapters/catalogfile"
	"github.com/andrescamacho/ficsit-planner-go/internal/adapters/metrics"
	"github.com/andrescamacho/ficsit-planner-go/internal/adapters/persistence"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/common"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/services"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/setup"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/catalog"
	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
	"github.com/andrescamacho/ficsit-planner-go/internal/infrastructure/config"
	"github.com/andrescamacho/ficsit-planner-go/internal/infrastructure/database"
	"github.com/andrescamacho/ficsit-planner-go/internal/infrastructure/logging"
)

// application bundles everything a command needs
type application struct {
	cfg      *config.Config
	logger   *logging.Logger
	db       *gorm.DB
	store    *persistence.GormCatalogRepository
	planner  *services.PlannerService
	mediator mediator.Mediator
}

// loadConfig reads configuration and layers user preferences over the planner section
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	prefsHandler, err := config.NewPreferencesHandler()
	if err != nil {
		return cfg, nil
	}
	prefs, err := prefsHandler.Load()
	if err != nil {
		return nil, err
	}
	prefs.Apply(&cfg.Planner)

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid preferences in %s: %w", prefsHandler.Path(), err)
	}
	return cfg, nil
}

// newApplication wires config, logging, the catalog source, metrics and the mediator.
// When loadCatalog is set the catalog is read before returning.
func newApplication(ctx context.Context, loadCatalog bool) (*application, context.Context, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, ctx, err
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if serveMetrics {
		cfg.Metrics.Enabled = true
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, ctx, err
	}
	ctx = common.WithLogger(ctx, logger.Slog())

	app := &application{cfg: cfg, logger: logger}

	var requestCollector *metrics.RequestMetricsCollector
	if cfg.Metrics.Enabled {
		requestCollector, err = initMetrics()
		if err != nil {
			app.Close()
			return nil, ctx, err
		}
	}

	source, err := app.catalogSource()
	if err != nil {
		app.Close()
		return nil, ctx, err
	}

	policy, err := planning.ParseOptimizationPolicy(cfg.Planner.DefaultPolicy)
	if err != nil {
		app.Close()
		return nil, ctx, err
	}
	logger.Slog().Debug("planner configured",
		"catalog_source", cfg.Catalog.Source,
		"default_policy", policy,
		"max_depth", cfg.Planner.MaxDepth,
		"max_nodes", cfg.Planner.MaxNodes)

	app.planner = services.NewPlannerService(source, plannerOptions(cfg), nil)

	var store catalog.CatalogStore
	if app.store != nil {
		store = app.store
	}
	app.mediator, err = setup.NewHandlerRegistry(app.planner, store).CreateConfiguredMediator(requestCollector)
	if err != nil {
		app.Close()
		return nil, ctx, err
	}

	if loadCatalog {
		if _, err := app.planner.ReloadCatalog(ctx); err != nil {
			app.Close()
			return nil, ctx, err
		}
	}

	return app, ctx, nil
}

// catalogSource picks the file or database source. The --catalog flag wins over config.
func (a *application) catalogSource() (catalog.CatalogSource, error) {
	if catalogPath != "" {
		return catalogfile.NewFileCatalogSource(catalogPath), nil
	}

	if a.cfg.Catalog.Source == "file" {
		return catalogfile.NewFileCatalogSource(a.cfg.Catalog.Path), nil
	}

	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	return store, nil
}

// openStore connects to the catalog database and migrates its tables
func (a *application) openStore() (*persistence.GormCatalogRepository, error) {
	if a.store != nil {
		return a.store, nil
	}

	db, err := database.NewConnection(&a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	a.db = db
	a.store = persistence.NewGormCatalogRepository(db, nil)
	return a.store, nil
}

// Close releases the database connection and log file
func (a *application) Close() {
	if a.db != nil {
		_ = database.Close(a.db)
		a.db = nil
	}
	if a.logger != nil {
		_ = a.logger.Close()
	}
}

// Slog returns the configured logger
func (a *application) Slog() *slog.Logger {
	return a.logger.Slog()
}

func plannerOptions(cfg *config.Config) services.PlannerOptions {
	denylist := make([]catalog.ItemID, 0, len(cfg.Catalog.IngredientDenylist))
	for _, item := range cfg.Catalog.IngredientDenylist {
		denylist = append(denylist, catalog.ItemID(item))
	}

	return services.PlannerOptions{
		BuildingPrefix:     cfg.Catalog.BuildingPrefix,
		ProducerPredicate:  cfg.Catalog.ProducerPredicate,
		IngredientDenylist: denylist,
		Limits: planning.BuildLimits{
			MaxDepth: config.Limit(cfg.Planner.MaxDepth),
			MaxNodes: config.Limit(cfg.Planner.MaxNodes),
		},
	}
}

// initMetrics creates the Prometheus registry and registers the planner collectors
func initMetrics() (*metrics.RequestMetricsCollector, error) {
	metrics.InitRegistry()

	plannerCollector := metrics.NewPlannerMetricsCollector()
	if err := plannerCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register planner metrics: %w", err)
	}
	metrics.SetGlobalPlannerCollector(plannerCollector)

	requestCollector := metrics.NewRequestMetricsCollector()
	if err := requestCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register request metrics: %w", err)
	}
	return requestCollector, nil
}
