package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ficsit-planner-go/internal/adapters/metrics"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/mediator"
	"github.com/andrescamacho/ficsit-planner-go/internal/application/planning/queries"
)

type buildPlanCommand struct{}

func TestPlannerMetricsCollector_RecordsThroughGlobals(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	collector := metrics.NewPlannerMetricsCollector()
	require.NoError(t, collector.Register())
	metrics.SetGlobalPlannerCollector(collector)
	t.Cleanup(func() { metrics.SetGlobalPlannerCollector(nil) })

	// Act
	metrics.RecordPlanBuild("power", 6, 0.002, true)
	metrics.RecordPlanBuild("power", 0, 0.001, false)
	metrics.RecordCatalogReload(2, 3, true)
	metrics.SetStoredPlans(4)

	// Assert
	count, err := testutil.GatherAndCount(metrics.GetRegistry(),
		"ficsit_planner_plans_built_total",
		"ficsit_planner_catalog_recipes",
		"ficsit_planner_stored_plans")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

type sizedPlanResponse struct{ nodes int }

func (r sizedPlanResponse) PlanNodes() int { return r.nodes }

// labelsOf flattens the label pairs of a gathered metric
func labelsOf(m *dto.Metric) map[string]string {
	labels := make(map[string]string)
	for _, pair := range m.GetLabel() {
		labels[pair.GetName()] = pair.GetValue()
	}
	return labels
}

func gatherFamily(t *testing.T, name string) *dto.MetricFamily {
	t.Helper()
	families, err := metrics.GetRegistry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}
	t.Fatalf("metric family %s not gathered", name)
	return nil
}

func newMeteredMediator(t *testing.T) mediator.Mediator {
	t.Helper()
	metrics.InitRegistry()
	collector := metrics.NewRequestMetricsCollector()
	require.NoError(t, collector.Register())

	m := mediator.NewMediator()
	m.Use(metrics.RequestMetricsMiddleware(collector))
	return m
}

func TestRequestMetricsMiddleware_LabelsQueriesByKind(t *testing.T) {
	// Arrange
	m := newMeteredMediator(t)
	require.NoError(t, mediator.RegisterHandler[*queries.ListPlansQuery](m, mediator.HandlerFunc(
		func(context.Context, mediator.Request) (mediator.Response, error) { return nil, nil })))

	// Act
	_, err := m.Send(context.Background(), &queries.ListPlansQuery{})

	// Assert
	require.NoError(t, err)
	family := gatherFamily(t, "ficsit_planner_requests_total")
	require.Len(t, family.GetMetric(), 1)
	assert.Equal(t, map[string]string{
		"request": "ListPlansQuery",
		"kind":    "query",
		"outcome": "ok",
	}, labelsOf(family.GetMetric()[0]))
}

func TestRequestMetricsMiddleware_RecordsPlanNodesAndCancellation(t *testing.T) {
	// Arrange
	m := newMeteredMediator(t)
	require.NoError(t, mediator.RegisterHandler[*buildPlanCommand](m, mediator.HandlerFunc(
		func(ctx context.Context, _ mediator.Request) (mediator.Response, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return sizedPlanResponse{nodes: 6}, nil
		})))
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	_, err := m.Send(context.Background(), &buildPlanCommand{})
	require.NoError(t, err)
	_, err = m.Send(cancelled, &buildPlanCommand{})

	// Assert
	assert.ErrorIs(t, err, context.Canceled)

	nodes := gatherFamily(t, "ficsit_planner_response_plan_nodes")
	require.Len(t, nodes.GetMetric(), 1)
	histogram := nodes.GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(1), histogram.GetSampleCount())
	assert.Equal(t, 6.0, histogram.GetSampleSum())

	outcomes := make(map[string]string)
	for _, metric := range gatherFamily(t, "ficsit_planner_requests_total").GetMetric() {
		labels := labelsOf(metric)
		assert.Equal(t, "buildPlanCommand", labels["request"])
		assert.Equal(t, "other", labels["kind"])
		outcomes[labels["outcome"]] = labels["request"]
	}
	assert.Contains(t, outcomes, "ok")
	assert.Contains(t, outcomes, "canceled")
}

func TestServer_ServesRegistry(t *testing.T) {
	metrics.InitRegistry()
	collector := metrics.NewPlannerMetricsCollector()
	require.NoError(t, collector.Register())
	collector.SetStoredPlans(2)

	server, err := metrics.NewServer("127.0.0.1:0", "/metrics", nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "ficsit_planner_stored_plans 2")
}
