package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("GET", "/", 200, time.Millisecond)
		m.ObserveGroceryList(3)
		m.RecordSearch(true)
		m.RecordCache(false)
		m.RecordUpstream("x", time.Second, nil)
		m.RequestStarted()()
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	m.ObserveGroceryList(4)
	m.ObserveGroceryList(2)
	m.RecordCache(true)
	m.RecordCache(false)
	m.RecordCache(false)
	m.RecordUpstream("spoonacular", time.Second, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.groceryLists))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamCalls.WithLabelValues("spoonacular", "error")))

	done := m.RequestStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.activeRequests))
	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.activeRequests))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("GET", "/health", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `smartplates_http_requests_total{method="GET",path="/health",status="200"} 1`)
}

func TestNewMetrics_Twice(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics()
		NewMetrics()
	})
}
