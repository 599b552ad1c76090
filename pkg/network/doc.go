// Package network defines the planning data model: sites, links, traffic
// demands and the Network snapshot that every planning stage reads.
//
// # Identity
//
// Nodes are identified by integer ids that are unique within a snapshot.
// Links are undirected and identified by the unordered pair of their
// endpoint ids, see [EdgeKey]. Two edges with the same key are the same link
// regardless of the order in which their endpoints were written.
//
// # Lengths
//
// [NewEdge] fixes a link's length to the Euclidean distance between its
// endpoints when the link is created. Moving a node afterwards does not
// change the length of existing links.
//
// # Saturation
//
// A link whose flow reaches its capacity has an infinite queueing delay.
// [Saturated] is that value and [IsSaturated] tests for it. Saturation is
// a structural property of the plan and never an error.
//
// # Snapshots
//
// Planning stages treat a [Network] as an immutable snapshot: they copy the
// slices they need to change and return new values. Use [Network.Clone]
// before mutating a network that other goroutines may still read.
package network
