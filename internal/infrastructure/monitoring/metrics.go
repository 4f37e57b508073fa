package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smartplates"

// Metrics Prometheus 指標，使用獨立的 registry
// 所有方法在 nil receiver 上皆為 no-op
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestCount    *prometheus.CounterVec
	activeRequests  prometheus.Gauge

	groceryLists  prometheus.Counter
	groceryItems  prometheus.Histogram
	searches      *prometheus.CounterVec
	cacheRequests *prometheus.CounterVec
	upstreamCalls *prometheus.CounterVec
	upstreamTime  *prometheus.HistogramVec
}

// NewMetrics 建立並註冊所有指標
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		activeRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_active_requests",
				Help:      "Number of active HTTP requests",
			},
		),
		groceryLists: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "grocery_lists_generated_total",
				Help:      "Total number of grocery lists generated",
			},
		),
		groceryItems: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "grocery_list_items",
				Help:      "Number of aggregated items per grocery list",
				Buckets:   []float64{0, 5, 10, 20, 40, 80},
			},
		),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recipe_searches_total",
				Help:      "Total number of recipe searches",
			},
			[]string{"external"},
		),
		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "Cache lookups by result",
			},
			[]string{"result"},
		),
		upstreamCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Calls to upstream APIs",
			},
			[]string{"upstream", "status"},
		),
		upstreamTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream API latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"upstream"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration,
		m.requestCount,
		m.activeRequests,
		m.groceryLists,
		m.groceryItems,
		m.searches,
		m.cacheRequests,
		m.upstreamCalls,
		m.upstreamTime,
	)
	return m
}

// Registry 供測試讀取
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RequestStarted 進行中請求 +1，回傳的函式在請求結束時呼叫
func (m *Metrics) RequestStarted() func() {
	if m == nil {
		return func() {}
	}
	m.activeRequests.Inc()
	return m.activeRequests.Dec
}

// RecordRequest 記錄 HTTP 請求
func (m *Metrics) RecordRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	statusStr := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, statusStr).Observe(duration.Seconds())
	m.requestCount.WithLabelValues(method, path, statusStr).Inc()
}

// ObserveGroceryList 記錄一次清單產生
func (m *Metrics) ObserveGroceryList(items int) {
	if m == nil {
		return
	}
	m.groceryLists.Inc()
	m.groceryItems.Observe(float64(items))
}

// RecordSearch 記錄食譜搜尋
func (m *Metrics) RecordSearch(external bool) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(strconv.FormatBool(external)).Inc()
}

// RecordCache 記錄快取命中或未命中
func (m *Metrics) RecordCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheRequests.WithLabelValues(result).Inc()
}

// RecordUpstream 記錄上游 API 呼叫
func (m *Metrics) RecordUpstream(upstream string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.upstreamCalls.WithLabelValues(upstream, status).Inc()
	m.upstreamTime.WithLabelValues(upstream).Observe(duration.Seconds())
}
