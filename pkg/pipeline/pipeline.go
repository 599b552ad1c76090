// Package pipeline chains the planning stages for the CLI and the API.
//
// # Architecture
//
// A planning run has five stages:
//
//  1. Topology: connect the sites with a spanning tree plus leaf redundancy
//  2. Routing: hop-count shortest paths between every pair of sites
//  3. Plan: assign demand flows along the routes and pick link capacities
//  4. Evaluate: recompute delays and summarize cost and delay
//  5. Render: draw the planned network (optional)
//
// Each stage can be run on its own through a [Runner], which caches routing
// tables, plans and renders.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Input{
//	    Network: net,
//	    Demands: demands,
//	}, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Report.TotalCost)
//
// Run individual stages:
//
//	table, err := runner.Routes(ctx, net, opts)
//	planned, err := runner.Plan(ctx, net, table, demands, opts)
//	report, evaluated, err := runner.Evaluate(ctx, planned.Network, opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netplan/pkg/cache"
	"github.com/matzehuels/netplan/pkg/capacity"
	"github.com/matzehuels/netplan/pkg/delay"
	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/evaluate"
	"github.com/matzehuels/netplan/pkg/network"
	"github.com/matzehuels/netplan/pkg/render"
	"github.com/matzehuels/netplan/pkg/routing"
	"github.com/matzehuels/netplan/pkg/topology"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed seeds the redundancy chooser when no seed is given.
	DefaultSeed = uint64(42)

	// DefaultPacketSizeBytes is the packet size used for delay estimates.
	DefaultPacketSizeBytes = delay.DefaultPacketSizeBytes
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a planning run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Topology options
	Seed          uint64 `json:"seed,omitempty"`
	Deterministic bool   `json:"deterministic,omitempty"` // lowest-id redundancy targets instead of seeded random
	SkipAugment   bool   `json:"skip_augment,omitempty"`  // spanning tree only
	Rebuild       bool   `json:"rebuild,omitempty"`       // discard existing links and rebuild

	// Planning options
	Catalog         []float64            `json:"catalog,omitempty"`
	Costs           *capacity.CostModel  `json:"costs,omitempty"`
	Thresholds      *capacity.Thresholds `json:"thresholds,omitempty"`
	PacketSizeBytes int                  `json:"packet_size_bytes,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Highlight []int    `json:"highlight,omitempty"` // route to draw in green
	Labels    bool     `json:"labels,omitempty"`

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	catalog    capacity.Catalog
	packetBits float64

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Input is what a planning run starts from. If Network has no links (or
// Options.Rebuild is set) a topology is built over its nodes.
type Input struct {
	Network *network.Network
	Demands []network.Demand
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Network is the planned network with flows, capacities, costs and,
	// when evaluated, delays.
	Network *network.Network

	// Routes is the routing table of the topology.
	Routes routing.Table

	// Report is the evaluation. It is the zero value when Evaluated is false.
	Report    evaluate.Report
	Evaluated bool

	// Warnings lists demands that could not be routed.
	Warnings []errors.Warning

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// TopologyHash identifies the topology the routes belong to.
	TopologyHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	RouteCount   int
	TotalDemand  float64
	Routed       int
	Unrouted     int
	Built        bool // whether the topology was (re)built
	TopologyTime time.Duration
	RoutingTime  time.Duration
	PlanTime     time.Duration
	EvaluateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RoutesHit bool
	PlanHit   bool
	RenderHit bool // whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the planning settings and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Catalog) == 0 {
		o.Catalog = slices.Clone(capacity.DefaultValues)
	}
	catalog, err := capacity.NewCatalog(o.Catalog)
	if err != nil {
		return err
	}
	o.catalog = catalog

	if o.Costs == nil {
		costs := capacity.DefaultCostModel()
		o.Costs = &costs
	}
	if err := o.Costs.Validate(); err != nil {
		return err
	}

	if o.Thresholds == nil {
		th := capacity.DefaultThresholds()
		o.Thresholds = &th
	}
	if err := o.Thresholds.Validate(); err != nil {
		return err
	}

	if o.PacketSizeBytes == 0 {
		o.PacketSizeBytes = DefaultPacketSizeBytes
	}
	bits, err := delay.PacketSizeBits(o.PacketSizeBytes)
	if err != nil {
		return err
	}
	o.packetBits = bits

	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// WithOverrides returns a copy of o in which every planning parameter set
// in req replaces o's value. Flags only ever switch on. The copy has to be
// validated again.
func (o Options) WithOverrides(req *Options) Options {
	out := o
	out.validated = false
	if req == nil {
		return out
	}
	if len(req.Catalog) > 0 {
		out.Catalog = slices.Clone(req.Catalog)
	}
	if req.Costs != nil {
		out.Costs = req.Costs
	}
	if req.Thresholds != nil {
		out.Thresholds = req.Thresholds
	}
	if req.PacketSizeBytes != 0 {
		out.PacketSizeBytes = req.PacketSizeBytes
	}
	if req.Seed != 0 {
		out.Seed = req.Seed
	}
	if len(req.Formats) > 0 {
		out.Formats = slices.Clone(req.Formats)
	}
	if len(req.Highlight) > 0 {
		out.Highlight = slices.Clone(req.Highlight)
	}
	out.Deterministic = out.Deterministic || req.Deterministic
	out.SkipAugment = out.SkipAugment || req.SkipAugment
	out.Rebuild = out.Rebuild || req.Rebuild
	out.Refresh = out.Refresh || req.Refresh
	out.Labels = out.Labels || req.Labels
	return out
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// TopologyOptions returns the options for building a topology.
func (o *Options) TopologyOptions() topology.Options {
	var chooser topology.Chooser = topology.LowestID
	if !o.Deterministic {
		chooser = topology.SeededChooser(o.Seed)
	}
	return topology.Options{Augment: !o.SkipAugment, Chooser: chooser}
}

// EvaluateOptions returns the options for evaluating a plan.
func (o *Options) EvaluateOptions() evaluate.Options {
	return evaluate.Options{
		PacketSizeBits: o.packetBits,
		Costs:          o.Costs,
		Thresholds:     o.Thresholds,
	}
}

// RenderOptions returns the options for drawing a network.
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		Thresholds: o.Thresholds,
		Highlight:  routing.Path(o.Highlight),
		Labels:     o.Labels,
	}
}

// PlanKeyOpts returns cache key options for planning.
func (o *Options) PlanKeyOpts() cache.PlanKeyOpts {
	return cache.PlanKeyOpts{
		Catalog:   o.catalog.Values(),
		CostsHash: cache.HashJSON(o.Costs),
	}
}

// ArtifactKeyOpts returns cache key options for rendering one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Highlight: slices.Clone(o.Highlight),
		High:      o.Thresholds.High,
		Overload:  o.Thresholds.Overload,
		Labels:    o.Labels,
	}
}
