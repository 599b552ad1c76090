// Package pkg provides the core libraries for netplan network capacity
// planning.
//
// # Overview
//
// netplan takes a set of sites with coordinates and costs, connects them
// with a cost-minimal topology that survives the loss of any single leaf
// link, routes traffic demands over it, sizes every link from a capacity
// catalog and reports the resulting cost and delay.
//
// # Architecture
//
// The data flow of a planning run:
//
//	Sites (project file)          Demands (matrix or list)
//	         ↓                              ↓
//	    [topology] spanning tree + leaf redundancy
//	         ↓
//	    [routing] hop-count shortest paths
//	         ↓
//	    [flow] demand volumes summed per link  ←──────┘
//	         ↓
//	    [capacity] smallest catalog capacity per link, link cost
//	         ↓
//	    [delay] + [evaluate] M/M/1 link delay, worst-case path delay, totals
//	         ↓
//	    [render] DOT / SVG / PNG
//
// [pipeline] chains these stages with caching; the CLI and the HTTP API
// both run through it.
//
// # Quick Start
//
//	net, _ := project.Import("sites.yaml")
//	demands, _ := traffic.Load("demands.csv", net.NodeIDs())
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Input{
//	    Network: net,
//	    Demands: demands,
//	}, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Report.TotalCost, result.Report.MaxDelay)
//
// # Main Packages
//
// ## Domain
//
// [network] - Sites, links, demands and the structural checks every stage
// relies on.
//
// [topology] - Prim's minimum spanning tree plus one redundancy link per
// leaf, with a seeded or deterministic choice among equally near targets.
//
// [routing] - Hop-count shortest paths between every ordered pair of sites.
//
// [flow] - Assigns demand volumes to the links along their routes.
//
// [capacity] - Capacity catalog, step cost models and load thresholds.
//
// [delay] - Per-link M/M/1 delay for a packet size.
//
// [evaluate] - Cost totals, worst-case end-to-end delay and per-link report.
//
// ## Input and Output
//
// [project] - JSON and YAML project documents.
//
// [traffic] - Demand lists and CSV traffic matrices.
//
// [render] - Graphviz drawing with pinned positions and load colours.
//
// ## Infrastructure
//
// [pipeline] - Stage orchestration with caching, used by CLI and API.
//
// [cache] - File, Redis and no-op caches with key derivation.
//
// [store] - Stored plans on the file system or in MongoDB.
//
// [config] - TOML configuration.
//
// [observability] and [metrics] - Pipeline, cache and API hooks with a
// Prometheus implementation.
//
// [errors] - Coded errors and warnings shared by all packages.
//
// # Testing
//
//	go test ./...                            # All tests
//	NETPLAN_TEST_REDIS=localhost:6379 go test ./pkg/cache
//	NETPLAN_TEST_MONGO=mongodb://localhost go test ./pkg/store
//
// [network]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/network
// [topology]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/topology
// [routing]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/routing
// [flow]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/flow
// [capacity]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/capacity
// [delay]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/delay
// [evaluate]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/evaluate
// [project]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/project
// [traffic]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/traffic
// [render]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/observability
// [metrics]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/metrics
// [errors]: https://pkg.go.dev/github.com/matzehuels/netplan/pkg/errors
package pkg
