package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/matzehuels/netplan/pkg/observability"
)

// OnStageComplete implements observability.PipelineHooks.
func (r *Registry) OnStageComplete(_ context.Context, stage observability.Stage, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.StageRunsTotal.WithLabelValues(string(stage), status).Inc()
	r.StageDuration.WithLabelValues(string(stage)).Observe(duration.Seconds())
}

// OnUnroutedDemand implements observability.PipelineHooks.
func (r *Registry) OnUnroutedDemand(_ context.Context, volume float64) {
	r.UnroutedDemands.Inc()
	if volume > 0 {
		r.UnroutedVolume.Add(volume)
	}
}

// OnPlanEvaluated implements observability.PipelineHooks.
func (r *Registry) OnPlanEvaluated(_ context.Context, totalCost, maxDelay float64, saturatedLinks int) {
	r.PlanTotalCost.Observe(totalCost)
	r.PlanMaxDelay.Observe(maxDelay)
	r.PlanSaturatedLinks.Set(float64(saturatedLinks))
}

// OnCacheHit implements observability.CacheHooks.
func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheLookupsTotal.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheLookupsTotal.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheWritesTotal.WithLabelValues(keyType).Inc()
	r.CacheWriteBytes.WithLabelValues(keyType).Observe(float64(size))
}

// OnRequest implements observability.APIHooks.
func (r *Registry) OnRequest(_ context.Context, method, route string, status int, duration time.Duration) {
	r.APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
