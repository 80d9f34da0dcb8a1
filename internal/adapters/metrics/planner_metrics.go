package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PlannerMetricsCollector handles plan building and catalog metrics
type PlannerMetricsCollector struct {
	plansBuiltTotal   *prometheus.CounterVec
	planBuildDuration *prometheus.HistogramVec
	planNodes         prometheus.Histogram

	catalogReloadsTotal *prometheus.CounterVec
	catalogRecipes      *prometheus.GaugeVec

	storedPlans prometheus.Gauge
}

// NewPlannerMetricsCollector creates a new planner metrics collector
func NewPlannerMetricsCollector() *PlannerMetricsCollector {
	return &PlannerMetricsCollector{
		plansBuiltTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plans_built_total",
				Help:      "Total number of plan builds by policy and status",
			},
			[]string{"policy", "status"},
		),

		planBuildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_build_duration_seconds",
				Help:      "Plan build duration distribution",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"policy"},
		),

		planNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plan_nodes",
				Help:      "Number of nodes reachable in successfully built plans",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),

		catalogReloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_reloads_total",
				Help:      "Total number of catalog reloads by status",
			},
			[]string{"status"},
		),

		catalogRecipes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_recipes",
				Help:      "Indexed recipes in the current catalog by view",
			},
			[]string{"view"},
		),

		storedPlans: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stored_plans",
				Help:      "Plans currently held in the registry",
			},
		),
	}
}

// Register registers all planner metrics with the Prometheus registry
func (c *PlannerMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.plansBuiltTotal,
		c.planBuildDuration,
		c.planNodes,
		c.catalogReloadsTotal,
		c.catalogRecipes,
		c.storedPlans,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordPlanBuild records one plan build
func (c *PlannerMetricsCollector) RecordPlanBuild(policy string, nodes int, duration float64, success bool) {
	c.plansBuiltTotal.WithLabelValues(policy, status(success)).Inc()
	c.planBuildDuration.WithLabelValues(policy).Observe(duration)
	if success {
		c.planNodes.Observe(float64(nodes))
	}
}

// RecordCatalogReload records one catalog reload and the resulting index size
func (c *PlannerMetricsCollector) RecordCatalogReload(unlockedRecipes int, allRecipes int, success bool) {
	c.catalogReloadsTotal.WithLabelValues(status(success)).Inc()
	if success {
		c.catalogRecipes.WithLabelValues("unlocked").Set(float64(unlockedRecipes))
		c.catalogRecipes.WithLabelValues("all").Set(float64(allRecipes))
	}
}

// SetStoredPlans records the registry size
func (c *PlannerMetricsCollector) SetStoredPlans(count int) {
	c.storedPlans.Set(float64(count))
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
