package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netplan/pkg/cache"
	"github.com/matzehuels/netplan/pkg/capacity"
	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/evaluate"
	"github.com/matzehuels/netplan/pkg/flow"
	"github.com/matzehuels/netplan/pkg/network"
	"github.com/matzehuels/netplan/pkg/observability"
	"github.com/matzehuels/netplan/pkg/project"
	"github.com/matzehuels/netplan/pkg/render"
	"github.com/matzehuels/netplan/pkg/routing"
	"github.com/matzehuels/netplan/pkg/topology"
)

// Cache key kinds reported to the cache hooks.
const (
	kindRoutes   = "routes"
	kindPlan     = "plan"
	kindArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so that caching and stage logging live in one
// place.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different inputs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-kind cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Planned is a network with assigned flows and chosen capacities.
type Planned struct {
	Network  *network.Network
	Warnings []errors.Warning
	Routed   int
	Unrouted int
}

// Execute runs topology → routing → plan → evaluate → render.
//
// Evaluation is skipped, with a warning in the log, when no link carries
// flow. Rendering only runs when opts.Formats is non-empty.
func (r *Runner) Execute(ctx context.Context, in Input, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if in.Network == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no network given")
	}

	result := &Result{}

	// Stage 1: Topology
	net := in.Network
	if opts.Rebuild || len(net.Edges) == 0 {
		start := time.Now()
		built, err := r.BuildTopology(ctx, net.Nodes, opts)
		if err != nil {
			return nil, fmt.Errorf("topology: %w", err)
		}
		net = built
		result.Stats.Built = true
		result.Stats.TopologyTime = time.Since(start)
		opts.Logger.Info("built topology",
			"nodes", net.NodeCount(),
			"edges", net.EdgeCount(),
			"duration", result.Stats.TopologyTime)
	}
	result.Stats.NodeCount = net.NodeCount()
	result.Stats.EdgeCount = net.EdgeCount()
	result.TopologyHash = TopologyHash(net)

	// Stage 2: Routing
	start := time.Now()
	table, routesHit, err := r.RoutesWithCacheInfo(ctx, net, opts)
	if err != nil {
		return nil, fmt.Errorf("routing: %w", err)
	}
	result.Routes = table
	result.Stats.RouteCount = len(table)
	result.Stats.RoutingTime = time.Since(start)
	result.CacheInfo.RoutesHit = routesHit
	opts.Logger.Info("computed routes",
		"routes", len(table),
		"cached", routesHit,
		"duration", result.Stats.RoutingTime)

	// Stage 3: Plan
	start = time.Now()
	planned, planHit, err := r.PlanWithCacheInfo(ctx, net, table, in.Demands, opts)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	result.Network = planned.Network
	result.Warnings = planned.Warnings
	result.Stats.TotalDemand = flow.Total(in.Demands)
	result.Stats.Routed = planned.Routed
	result.Stats.Unrouted = planned.Unrouted
	result.Stats.PlanTime = time.Since(start)
	result.CacheInfo.PlanHit = planHit
	opts.Logger.Info("planned capacities",
		"demands", len(in.Demands),
		"routed", planned.Routed,
		"warnings", len(planned.Warnings),
		"cached", planHit,
		"duration", result.Stats.PlanTime)
	for _, w := range planned.Warnings {
		opts.Logger.Warn(w.Message, "code", w.Code)
	}

	// Stage 4: Evaluate
	if planned.Network.HasFlow() {
		start = time.Now()
		report, evaluated, err := r.Evaluate(ctx, planned.Network, opts)
		if err != nil {
			return nil, fmt.Errorf("evaluate: %w", err)
		}
		result.Network = evaluated
		result.Report = report
		result.Evaluated = true
		result.Stats.EvaluateTime = time.Since(start)
		opts.Logger.Info("evaluated plan",
			"total_cost", report.TotalCost,
			"max_delay", report.MaxDelay,
			"saturated", report.SaturatedLinks,
			"duration", result.Stats.EvaluateTime)
	} else {
		opts.Logger.Warn("no link carries flow, skipping evaluation")
	}

	// Stage 5: Render
	if len(opts.Formats) > 0 {
		start = time.Now()
		artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Network, opts)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifacts = artifacts
		result.Stats.RenderTime = time.Since(start)
		result.CacheInfo.RenderHit = renderHit
		opts.Logger.Info("rendered outputs",
			"formats", opts.Formats,
			"cached", renderHit,
			"duration", result.Stats.RenderTime)
	}

	return result, nil
}

// BuildTopology connects the nodes with a fresh set of links.
func (r *Runner) BuildTopology(ctx context.Context, nodes []network.Node, opts Options) (*network.Network, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()
	net, err := topology.Build(ctx, nodes, opts.TopologyOptions())
	stageDone(ctx, observability.StageTopology, start, err)
	return net, err
}

// RoutesWithCacheInfo computes the routing table with caching and returns
// cache hit info. Tables are keyed by [TopologyHash], so any change to the
// node set or links invalidates them.
func (r *Runner) RoutesWithCacheInfo(ctx context.Context, net *network.Network, opts Options) (routing.Table, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.RoutesKey(TopologyHash(net))

	if !opts.Refresh {
		if data, hit := r.lookup(ctx, kindRoutes, cacheKey); hit {
			var table routing.Table
			if err := json.Unmarshal(data, &table); err == nil {
				return table, true, nil // Cache hit
			}
		}
	}

	start := time.Now()
	table, err := routing.Compute(ctx, net)
	stageDone(ctx, observability.StageRouting, start, err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(table); err == nil {
		r.store(ctx, kindRoutes, cacheKey, data, cache.TTLRoutes)
	}
	return table, false, nil // Cache miss
}

// Routes is a convenience wrapper that calls RoutesWithCacheInfo and discards the cache hit info.
func (r *Runner) Routes(ctx context.Context, net *network.Network, opts Options) (routing.Table, error) {
	table, _, err := r.RoutesWithCacheInfo(ctx, net, opts)
	return table, err
}

// plannedEntry is the cached form of a Planned.
type plannedEntry struct {
	Project  project.Document `json:"project"`
	Warnings []errors.Warning `json:"warnings,omitempty"`
	Routed   int              `json:"routed"`
	Unrouted int              `json:"unrouted"`
}

// PlanWithCacheInfo assigns demand flows along the routes and picks link
// capacities from the catalog, with caching, and returns cache hit info.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, net *network.Network, table routing.Table, demands []network.Demand, opts Options) (*Planned, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	// Plans depend on positions and costs as well as on the link set, so
	// they are keyed by the whole network.
	cacheKey := ""
	networkHash := cache.HashJSON(project.FromNetwork(net))
	demandsHash := cache.HashJSON(demands)
	if networkHash != "" && demandsHash != "" {
		cacheKey = r.Keyer.PlanKey(networkHash, demandsHash, opts.PlanKeyOpts())
	}

	if cacheKey != "" && !opts.Refresh {
		if data, hit := r.lookup(ctx, kindPlan, cacheKey); hit {
			var entry plannedEntry
			if err := json.Unmarshal(data, &entry); err == nil {
				if cached, err := entry.Project.Network(); err == nil {
					return &Planned{
						Network:  cached,
						Warnings: entry.Warnings,
						Routed:   entry.Routed,
						Unrouted: entry.Unrouted,
					}, true, nil // Cache hit
				}
			}
		}
	}

	start := time.Now()
	flowed, res, err := flow.Apply(net, table, demands)
	stageDone(ctx, observability.StageFlow, start, err)
	if err != nil {
		return nil, false, err
	}
	for _, w := range res.Warnings {
		observability.Pipeline().OnUnroutedDemand(ctx, w.Volume)
	}

	start = time.Now()
	flowed.Edges = capacity.Plan(flowed.Edges, opts.catalog, *opts.Costs)
	stageDone(ctx, observability.StageCapacity, start, nil)

	planned := &Planned{
		Network:  flowed,
		Warnings: res.Warnings,
		Routed:   res.Routed,
		Unrouted: res.Unrouted,
	}
	if cacheKey != "" {
		entry := plannedEntry{
			Project:  project.FromNetwork(flowed),
			Warnings: res.Warnings,
			Routed:   res.Routed,
			Unrouted: res.Unrouted,
		}
		if data, err := json.Marshal(entry); err == nil {
			r.store(ctx, kindPlan, cacheKey, data, cache.TTLPlan)
		}
	}
	return planned, false, nil // Cache miss
}

// Plan is a convenience wrapper that calls PlanWithCacheInfo and discards the cache hit info.
func (r *Runner) Plan(ctx context.Context, net *network.Network, table routing.Table, demands []network.Demand, opts Options) (*Planned, error) {
	planned, _, err := r.PlanWithCacheInfo(ctx, net, table, demands, opts)
	return planned, err
}

// Evaluate recomputes delays and returns the report with the re-delayed
// network. Evaluation is not cached.
func (r *Runner) Evaluate(ctx context.Context, net *network.Network, opts Options) (evaluate.Report, *network.Network, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return evaluate.Report{}, nil, err
	}
	start := time.Now()
	report, out, err := evaluate.Evaluate(ctx, net, opts.EvaluateOptions())
	stageDone(ctx, observability.StageEvaluate, start, err)
	if err != nil {
		return evaluate.Report{}, nil, err
	}
	observability.Pipeline().OnPlanEvaluated(ctx, report.TotalCost, report.MaxDelay, report.SaturatedLinks)
	return report, out, nil
}

// RenderWithCacheInfo draws the network in every requested format with
// caching and returns whether all artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, net *network.Network, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{string(render.FormatSVG)}
	}
	networkHash := cache.HashJSON(project.FromNetwork(net))

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := networkHash != "" && !opts.Refresh
	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(networkHash, opts.ArtifactKeyOpts(format))
			data, hit := r.lookup(ctx, kindArtifact, cacheKey)
			if !hit {
				allCached = false
				break
			}
			artifacts[format] = data
		}
	}
	if allCached {
		return artifacts, true, nil // All artifacts from cache
	}

	start := time.Now()
	ropts := opts.RenderOptions()
	for _, format := range opts.Formats {
		data, err := render.Render(ctx, net, render.Format(format), ropts)
		if err != nil {
			stageDone(ctx, observability.StageRender, start, err)
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		if networkHash != "" {
			r.store(ctx, kindArtifact, r.Keyer.ArtifactKey(networkHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
		}
	}
	stageDone(ctx, observability.StageRender, start, nil)
	return artifacts, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, net *network.Network, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, net, opts)
	return artifacts, err
}

// TopologyHash identifies a topology by its node ids and links, ignoring
// positions, flows and capacities.
func TopologyHash(net *network.Network) string {
	links := make([][2]int, 0, len(net.Edges))
	for _, e := range net.Edges {
		k := e.Key()
		links = append(links, [2]int{k.A, k.B})
	}
	slices.SortFunc(links, func(a, b [2]int) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})
	return cache.HashJSON(struct {
		Nodes []int    `json:"nodes"`
		Links [][2]int `json:"links"`
	}{net.NodeIDs(), links})
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) lookup(ctx context.Context, kind, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "kind", kind, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, kind)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, kind)
	return data, true
}

func (r *Runner) store(ctx context.Context, kind, key string, data []byte, ttl time.Duration) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "kind", kind, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

func stageDone(ctx context.Context, stage observability.Stage, start time.Time, err error) {
	observability.Pipeline().OnStageComplete(ctx, stage, time.Since(start), err)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
