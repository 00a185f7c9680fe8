// Package metrics exposes Prometheus collectors for HTTP traffic and
// shopping list activity.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every metric the service records
type Collector struct {
	gatherer prometheus.Gatherer

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	syncsTotal          *prometheus.CounterVec
	syncDuration        prometheus.Histogram
	planItemsReconciled prometheus.Histogram
	concurrentUpdates   prometheus.Counter
	itemMutationsTotal  *prometheus.CounterVec
	exportsTotal        *prometheus.CounterVec
}

// New registers the collectors on reg. Passing a fresh registry keeps tests isolated.
func New(reg *prometheus.Registry) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		gatherer: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		syncsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopping_list_syncs_total",
				Help: "Shopping list syncs by weeks selector and outcome",
			},
			[]string{"weeks", "status"},
		),
		syncDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shopping_list_sync_duration_seconds",
				Help:    "Time spent consolidating and reconciling a shopping list",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		planItemsReconciled: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shopping_list_plan_items",
				Help:    "Number of plan-derived items produced per sync",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
		),
		concurrentUpdates: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "shopping_list_concurrent_updates_total",
				Help: "Saves rejected because the list changed underneath them",
			},
		),
		itemMutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopping_list_item_mutations_total",
				Help: "Manual item adds, updates and deletes",
			},
			[]string{"operation"},
		),
		exportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopping_list_exports_total",
				Help: "Shopping list exports by outcome",
			},
			[]string{"status"},
		),
	}
}

// HTTPMiddleware records request counts and latency per route
func (m *Collector) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Collector) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// ObserveSync records one sync attempt. The recording methods are no-ops on a nil Collector.
func (m *Collector) ObserveSync(weeks string, planItems int, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.syncsTotal.WithLabelValues(weeks, status).Inc()
	if err == nil {
		m.syncDuration.Observe(duration.Seconds())
		m.planItemsReconciled.Observe(float64(planItems))
	}
}

// ConcurrentUpdate counts a save that lost an optimistic version check
func (m *Collector) ConcurrentUpdate() {
	if m == nil {
		return
	}
	m.concurrentUpdates.Inc()
}

// ItemMutation counts a manual list change: "add", "update" or "delete"
func (m *Collector) ItemMutation(operation string) {
	if m == nil {
		return
	}
	m.itemMutationsTotal.WithLabelValues(operation).Inc()
}

// Export counts an export attempt
func (m *Collector) Export(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.exportsTotal.WithLabelValues("error").Inc()
		return
	}
	m.exportsTotal.WithLabelValues("success").Inc()
}
