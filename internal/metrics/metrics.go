package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the Prometheus collectors of the service.
type Metrics struct {
	// counters
	CounterRequests       *prometheus.CounterVec
	CounterPlansGenerated prometheus.Counter
	CounterPlanFailures   prometheus.Counter
	CounterPoolExhaustion prometheus.Counter
	CounterSetsLogged     prometheus.Counter
	CounterDaysCompleted  prometheus.Counter
	CounterCatalogCache   *prometheus.CounterVec

	// gauges
	GaugeFilteredPool prometheus.Gauge

	// histograms
	HistRequestDuration    prometheus.Histogram
	HistGenerationDuration prometheus.Histogram
}

func New(namespace, subsystem string) *Metrics {
	return NewWithRegisterer(namespace, subsystem, prometheus.DefaultRegisterer)
}

// NewTestMetrics registers on a private registry so tests can build as many as they need.
func NewTestMetrics() *Metrics {
	return NewWithRegisterer("planner", "test", prometheus.NewRegistry())
}

func NewWithRegisterer(namespace, subsystem string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "The total number of handled HTTP requests",
		}, []string{"method", "route", "status"}),
		CounterPlansGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "plans_generated_total",
			Help:      "Number of plans generated successfully",
		}),
		CounterPlanFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "plan_generation_failures_total",
			Help:      "Number of plan generations aborted by a storage error",
		}),
		CounterPoolExhaustion: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "pool_exhaustion_total",
			Help:      "Generations whose filtered exercise pool was below the usable minimum",
		}),
		CounterSetsLogged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sets_logged_total",
			Help:      "Number of logged exercise sets",
		}),
		CounterDaysCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "days_completed_total",
			Help:      "Number of workout days marked complete",
		}),
		CounterCatalogCache: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "catalog_cache_lookups_total",
			Help:      "Catalog cache lookups by result",
		}, []string{"result"}),
		GaugeFilteredPool: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_filtered_pool_size",
			Help:      "Size of the exercise pool that survived filtering in the last generation",
		}),
		HistRequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Duration of handled HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}),
		HistGenerationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "plan_generation_duration_seconds",
			Help:      "Duration of a full plan generation including storage writes",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}
