package config

import (
	"time"

	"github.com/andrescamacho/ficsit-planner-go/internal/domain/planning"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Catalog defaults
	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = "file"
	}
	if cfg.Catalog.Path == "" && cfg.Catalog.Source == "file" {
		cfg.Catalog.Path = "catalog.yaml"
	}
	if cfg.Catalog.BuildingPrefix == "" {
		cfg.Catalog.BuildingPrefix = planning.DefaultBuildingPrefix
	}
	if cfg.Catalog.ProducerPredicate == "" {
		cfg.Catalog.ProducerPredicate = "prefix"
	}

	// Planner defaults
	if cfg.Planner.DefaultPolicy == "" {
		cfg.Planner.DefaultPolicy = string(planning.PolicyNone)
	}
	if cfg.Planner.MaxDepth == 0 {
		cfg.Planner.MaxDepth = planning.DefaultMaxDepth
	}
	if cfg.Planner.MaxNodes == 0 {
		cfg.Planner.MaxNodes = planning.DefaultMaxNodes
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "ficsit-planner.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "ficsit"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "ficsit_planner"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9464
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
