// Package middleware provides observability middleware for the router:
// Prometheus metrics and OpenTelemetry tracing around each navigation
// resolution.
package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "wayfind").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for resolve duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "wayfind",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus collectors for the router.
type metrics struct {
	navigationsTotal *prometheus.CounterVec
	resolveDuration  *prometheus.HistogramVec
	scrollAttempts   *prometheus.CounterVec
	suppressedTotal  prometheus.Counter
	notFoundTotal    prometheus.Counter
}

// defaultMetrics guards collectors registered on the default registry:
// registering the same names twice panics, so every Prometheus()
// middleware without an explicit registry shares one set.
var (
	defaultMetrics     *metrics
	defaultMetricsOnce sync.Once
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigation resolutions by route and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "outcome"}),

		resolveDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolve_duration_seconds",
			Help:        "Navigation resolution duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		scrollAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "scroll_attempts_total",
			Help:        "Fragment scroll attempts by whether the target element existed",
			ConstLabels: config.ConstLabels,
		}, []string{"found"}),

		suppressedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_suppressed_total",
			Help:        "Navigations discarded because the snapshot did not change",
			ConstLabels: config.ConstLabels,
		}),

		notFoundTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_not_found_total",
			Help:        "Navigations that resolved to the not-found fallback",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that records navigation metrics.
//
// Metrics collected:
//   - wayfind_navigations_total: counter by route and outcome
//     (matched, not_found, error)
//   - wayfind_resolve_duration_seconds: histogram of resolution time
//   - wayfind_scroll_attempts_total: fragment scrolls by found target
//   - wayfind_navigations_suppressed_total: discarded duplicates
//   - wayfind_navigations_not_found_total: fallback renders
//
// Example:
//
//	ctrl := router.NewController(table,
//	    router.WithMiddleware(middleware.Prometheus()),
//	)
func Prometheus(opts ...MetricsOption) router.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	var m *metrics
	if config.Registry == prometheus.DefaultRegisterer {
		defaultMetricsOnce.Do(func() {
			defaultMetrics = initMetrics(config)
		})
		m = defaultMetrics
	} else {
		m = initMetrics(config)
	}

	return router.MiddlewareFunc(func(ctx *router.NavContext, next func() error) error {
		start := time.Now()
		err := next()
		elapsed := time.Since(start).Seconds()

		route := ctx.Route
		if route == "" {
			route = "(none)"
		}

		outcome := "matched"
		switch {
		case err != nil:
			outcome = "error"
		case !ctx.Matched:
			outcome = "not_found"
			m.notFoundTotal.Inc()
		}

		m.navigationsTotal.WithLabelValues(route, outcome).Inc()
		m.resolveDuration.WithLabelValues(route).Observe(elapsed)

		if ctx.ScrollAttempted {
			m.scrollAttempts.WithLabelValues(strconv.FormatBool(ctx.ScrollFound)).Inc()
		}

		if err == nil && !ctx.Replaced {
			m.suppressedTotal.Inc()
		}

		return err
	})
}
