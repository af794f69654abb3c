package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment/internal/notification"
	"fulfillment/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Notify(t *testing.T) {
	m := metrics.New()

	require.NoError(t, m.Notify(t.Context(), notification.Event{Type: notification.TypeOrderDispatched}))
	require.NoError(t, m.Notify(t.Context(), notification.Event{Type: notification.TypeOrderDispatched}))

	count, err := testutil.GatherAndCount(m.Registry(), "fulfillment_notifications_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "metrics", m.Name())
}

func TestMetrics_ObserveRequestAndPendingTimers(t *testing.T) {
	m := metrics.New()
	pending := 3
	require.NoError(t, m.RegisterPendingTimers(func() int { return pending }))

	m.ObserveRequest(http.MethodPut, "/api/order/pay/:id", 200)
	m.ObserveRequest(http.MethodPut, "/api/order/pay/:id", 200)
	m.ObserveRequest(http.MethodGet, "/api/order/detail/:id", 404)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `fulfillment_http_requests_total{code="200",method="PUT",route="/api/order/pay/:id"} 2`)
	assert.Contains(t, body, `fulfillment_http_requests_total{code="404",method="GET",route="/api/order/detail/:id"} 1`)
	assert.Contains(t, body, "fulfillment_pending_timers 3")
}
