package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "ficsit"
	// Subsystem for planner metrics
	subsystem = "planner"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalPlannerCollector is the singleton planner metrics collector
	// Set by SetGlobalPlannerCollector() when metrics are enabled
	globalPlannerCollector PlannerMetricsRecorder
)

// PlannerMetricsRecorder defines the interface for recording planner events
// This interface is used by application code to record metrics
type PlannerMetricsRecorder interface {
	RecordPlanBuild(policy string, nodes int, duration float64, success bool)
	RecordCatalogReload(unlockedRecipes int, allRecipes int, success bool)
	SetStoredPlans(count int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalPlannerCollector sets the global planner metrics collector
func SetGlobalPlannerCollector(collector PlannerMetricsRecorder) {
	globalPlannerCollector = collector
}

// RecordPlanBuild records a plan build globally
func RecordPlanBuild(policy string, nodes int, duration float64, success bool) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordPlanBuild(policy, nodes, duration, success)
	}
}

// RecordCatalogReload records a catalog reload globally
func RecordCatalogReload(unlockedRecipes int, allRecipes int, success bool) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordCatalogReload(unlockedRecipes, allRecipes, success)
	}
}

// SetStoredPlans records the registry size globally
func SetStoredPlans(count int) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.SetStoredPlans(count)
	}
}
