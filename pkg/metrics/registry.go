// Package metrics exports planning, cache and API metrics to Prometheus.
//
// [Registry] implements the observability hook interfaces, so registering
// it is all a server needs to do:
//
//	reg := metrics.NewRegistry()
//	observability.SetPipelineHooks(reg)
//	observability.SetCacheHooks(reg)
//	observability.SetAPIHooks(reg)
//	router.Handle("/metrics", reg.Handler())
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/netplan/pkg/observability"
)

// Registry holds all netplan metrics on a private Prometheus registry.
type Registry struct {
	// Pipeline metrics
	StageRunsTotal     *prometheus.CounterVec
	StageDuration      *prometheus.HistogramVec
	UnroutedDemands    prometheus.Counter
	UnroutedVolume     prometheus.Counter
	PlanTotalCost      prometheus.Histogram
	PlanMaxDelay       prometheus.Histogram
	PlanSaturatedLinks prometheus.Gauge

	// Cache metrics
	CacheLookupsTotal *prometheus.CounterVec
	CacheWritesTotal  *prometheus.CounterVec
	CacheWriteBytes   *prometheus.HistogramVec

	// API metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with every metric initialized, plus the
// Go runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initPipelineMetrics()
	r.initCacheMetrics()
	r.initAPIMetrics()
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

var (
	_ observability.PipelineHooks = (*Registry)(nil)
	_ observability.CacheHooks    = (*Registry)(nil)
	_ observability.APIHooks      = (*Registry)(nil)
)
