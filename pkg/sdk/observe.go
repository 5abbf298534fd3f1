package plantdex

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resource label values. Client-level calls (ping, health) use resourceClient.
const (
	resourceClient    = "client"
	resourcePlants    = "plants"
	resourcePlantings = "plantings"
	resourceMaps      = "maps"
)

// sdkMetrics counts catalog calls and failed statements.
type sdkMetrics struct {
	calls        *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	queryFailure *prometheus.CounterVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plantdex",
			Subsystem: "sdk",
			Name:      "calls_total",
			Help:      "Plant catalog calls by resource (plants, plantings, maps), action and outcome.",
		}, []string{"resource", "action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "plantdex",
			Subsystem: "sdk",
			Name:      "call_duration_seconds",
			Help:      "Plant catalog call latency, including count and page queries.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"resource", "action"}),
		queryFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plantdex",
			Subsystem: "sdk",
			Name:      "query_failures_total",
			Help:      "Failed store statements by table and statement kind.",
		}, []string{"entity", "op"}),
	}
	if err := registerOrReuse(reg, &m.calls); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.queryFailure); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c, or points it at the collector a previous
// client already registered under the same name.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("plantdex: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("plantdex: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// outcome buckets an error by the catalog's sentinel errors.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidInput):
		return "invalid"
	case errors.Is(err, ErrStoreUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

// observer logs and counts SDK calls. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *observer) observe(resource, action string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	result := outcome(err)

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(resource, action, result).Inc()
		o.metrics.duration.WithLabelValues(resource, action).Observe(dur.Seconds())
	}
	if o.logger == nil {
		return
	}
	switch result {
	case "ok":
		o.logger.Debug("catalog call completed", "resource", resource, "action", action, "duration", dur)
	case "not_found", "invalid":
		// Caller mistakes, not SDK faults.
		o.logger.Debug("catalog call rejected",
			"resource", resource, "action", action, "outcome", result, "error", err)
	default:
		o.logger.Warn("catalog call failed",
			"resource", resource, "action", action, "outcome", result, "duration", dur, "error", err)
	}
}

// ObserveQuery records a failed statement below the call level.
func (o *observer) ObserveQuery(entity, op string, elapsed time.Duration, err error) {
	if o == nil || err == nil {
		return
	}
	if o.metrics != nil {
		o.metrics.queryFailure.WithLabelValues(entity, op).Inc()
	}
	if o.logger != nil {
		o.logger.Debug("query failed", "entity", entity, "op", op, "duration", elapsed, "error", err)
	}
}
