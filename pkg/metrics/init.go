package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPipelineMetrics() {
	r.StageRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netplan_stage_runs_total",
			Help: "Total number of planning stage runs",
		},
		[]string{"stage", "status"},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netplan_stage_duration_seconds",
			Help:    "Planning stage duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"stage"},
	)

	r.UnroutedDemands = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "netplan_unrouted_demands_total",
			Help: "Total number of traffic demands without a route",
		},
	)

	r.UnroutedVolume = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "netplan_unrouted_volume_total",
			Help: "Total traffic volume that could not be routed",
		},
	)

	r.PlanTotalCost = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netplan_plan_total_cost",
			Help:    "Total deployment cost of evaluated plans",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8),
		},
	)

	r.PlanMaxDelay = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netplan_plan_max_delay_milliseconds",
			Help:    "Worst-case end-to-end delay of evaluated plans",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 50, 100, 1000},
		},
	)

	r.PlanSaturatedLinks = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netplan_plan_saturated_links",
			Help: "Saturated links in the most recently evaluated plan",
		},
	)
}

func (r *Registry) initCacheMetrics() {
	r.CacheLookupsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netplan_cache_lookups_total",
			Help: "Total number of cache lookups",
		},
		[]string{"kind", "result"}, // result: hit, miss
	)

	r.CacheWritesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netplan_cache_writes_total",
			Help: "Total number of cache writes",
		},
		[]string{"kind"},
	)

	r.CacheWriteBytes = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netplan_cache_write_bytes",
			Help:    "Size of cache entries written",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"kind"},
	)
}

func (r *Registry) initAPIMetrics() {
	r.APIRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netplan_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	r.APIRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netplan_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
}
