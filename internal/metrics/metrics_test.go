package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dateTracker/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := metrics.New()

	m.ObserveRequest(http.MethodGet, "/api/tasks", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/tasks", http.StatusOK, 30*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	expected := `
# HELP datetracker_http_requests_total HTTP requests by method, route pattern and status code.
# TYPE datetracker_http_requests_total counter
datetracker_http_requests_total{method="GET",route="/api/tasks",status="200"} 2
datetracker_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "datetracker_http_requests_total"))
}

func TestDateCalculated(t *testing.T) {
	m := metrics.New()

	m.DateCalculated(metrics.OutcomeOK)
	m.DateCalculated(metrics.OutcomeInvalid)
	m.DateCalculated(metrics.OutcomeInvalid)

	count, err := testutil.GatherAndCount(m.Registry(), "datetracker_date_calculations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestHandler(t *testing.T) {
	m := metrics.New()
	m.TaskOperation("create")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `datetracker_task_operations_total{operation="create"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestStoreGauges(t *testing.T) {
	m := metrics.New()

	m.SetStoreUp(true)
	m.SetLiveTasks(7)

	expected := `
# HELP datetracker_tasks_live Tasks that are not soft-deleted, as of the last check.
# TYPE datetracker_tasks_live gauge
datetracker_tasks_live 7
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "datetracker_tasks_live"))

	m.SetStoreUp(false)
	count, err := testutil.GatherAndCount(m.Registry(), "datetracker_store_up")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
