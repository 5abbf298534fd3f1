package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Store and cache Prometheus metrics.
var (
	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "plantdex",
			Name:      "db_query_duration_seconds",
			Help:      "Database statement duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"entity", "op"},
	)

	QueryErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plantdex",
			Name:      "db_query_errors_total",
			Help:      "Total failed database statements",
		},
		[]string{"entity", "op"},
	)

	PageCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plantdex",
			Name:      "page_cache_total",
			Help:      "Page cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers store and cache metrics. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(QueryErrorsTotal)
	prometheus.MustRegister(PageCacheTotal)
	queryMetricsRegistered = true
}

// QueryObserver feeds statement timings into QueryDuration and QueryErrorsTotal.
type QueryObserver struct{}

// ObserveQuery implements db.QueryObserver.
func (QueryObserver) ObserveQuery(entity, op string, elapsed time.Duration, err error) {
	QueryDuration.WithLabelValues(entity, op).Observe(elapsed.Seconds())
	if err != nil {
		QueryErrorsTotal.WithLabelValues(entity, op).Inc()
	}
}
