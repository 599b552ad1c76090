package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/matzehuels/netplan/pkg/observability"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.StageRunsTotal == nil || r.CacheLookupsTotal == nil || r.APIRequestsTotal == nil {
		t.Fatal("metrics not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Fatal("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestOnStageComplete(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	r.OnStageComplete(ctx, observability.StageRouting, 5*time.Millisecond, nil)
	r.OnStageComplete(ctx, observability.StageRouting, 7*time.Millisecond, nil)
	r.OnStageComplete(ctx, observability.StageRouting, time.Millisecond, errors.New("boom"))

	counter, err := r.StageRunsTotal.GetMetricWithLabelValues("routing", "success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("success count = %v, want 2", metric.Counter.GetValue())
	}
	if got := testutil.ToFloat64(r.StageRunsTotal.WithLabelValues("routing", "error")); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
}

func TestPlanMetrics(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	r.OnUnroutedDemand(ctx, 4)
	r.OnUnroutedDemand(ctx, 6)
	r.OnPlanEvaluated(ctx, 1200, 3.5, 2)

	if got := testutil.ToFloat64(r.UnroutedDemands); got != 2 {
		t.Errorf("unrouted demands = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.UnroutedVolume); got != 10 {
		t.Errorf("unrouted volume = %v, want 10", got)
	}
	if got := testutil.ToFloat64(r.PlanSaturatedLinks); got != 2 {
		t.Errorf("saturated links = %v, want 2", got)
	}
	if n := testutil.CollectAndCount(r.PlanTotalCost); n != 1 {
		t.Errorf("total cost histogram series = %d, want 1", n)
	}
}

func TestCacheAndAPIMetrics(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	r.OnCacheHit(ctx, "routes")
	r.OnCacheMiss(ctx, "routes")
	r.OnCacheMiss(ctx, "routes")
	r.OnCacheSet(ctx, "routes", 2048)
	r.OnRequest(ctx, "POST", "/v1/plans", 201, 30*time.Millisecond)

	if got := testutil.ToFloat64(r.CacheLookupsTotal.WithLabelValues("routes", "miss")); got != 2 {
		t.Errorf("misses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.CacheWritesTotal.WithLabelValues("routes")); got != 1 {
		t.Errorf("writes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.APIRequestsTotal.WithLabelValues("POST", "/v1/plans", "201")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.OnStageComplete(context.Background(), observability.StageFlow, time.Millisecond, nil)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(string(body), `netplan_stage_runs_total{stage="flow",status="success"} 1`) {
		t.Errorf("stage metric missing from exposition:\n%s", body)
	}
}

func TestMetricNamesHavePrefix(t *testing.T) {
	r := NewRegistry()
	r.OnCacheHit(context.Background(), "plan")
	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range families {
		name := f.GetName()
		if strings.HasPrefix(name, "go_") || strings.HasPrefix(name, "process_") || strings.HasPrefix(name, "promhttp_") {
			continue
		}
		if !strings.HasPrefix(name, "netplan_") {
			t.Errorf("metric %s does not have netplan_ prefix", name)
		}
	}
}
