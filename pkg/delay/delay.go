// Package delay estimates per-link queueing delay with an M/M/1 model.
//
// Flow and capacity are in Mbit/s. Both are converted to packets per second
// using the average packet size, and the sojourn time 1/(μ−λ) is returned in
// milliseconds. A link whose flow reaches its capacity has no steady state;
// its delay is [network.Saturated].
package delay

import (
	"math"
	"slices"

	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/network"
)

// Packet size defaults and bounds.
const (
	DefaultPacketSizeBytes = 1500
	DefaultPacketSizeBits  = DefaultPacketSizeBytes * 8

	MinPacketSizeBytes = 64
	MaxPacketSizeBytes = 9000
)

// Compute returns the delay of e in milliseconds.
//
// A non-positive packet size falls back to [DefaultPacketSizeBits]. Links
// without capacity or without flow have zero delay.
func Compute(e network.Edge, packetBits float64) float64 {
	if packetBits <= 0 {
		packetBits = DefaultPacketSizeBits
	}
	if e.Capacity <= 0 || e.Flow <= 0 {
		return 0
	}
	if e.Flow >= e.Capacity {
		return network.Saturated
	}

	// Capacity > Flow, so the difference is strictly positive.
	diff := e.Capacity - e.Flow
	errors.Assert(diff > 0,
		"delay denominator %g for link %d-%d (flow %g, capacity %g)", diff, e.From, e.To, e.Flow, e.Capacity)

	headroom := diff * (1e6 / packetBits)
	d := 1000 / headroom
	if math.IsInf(d, 1) {
		// Headroom too small to represent; the link is still below capacity.
		return math.MaxFloat64
	}
	return d
}

// Apply returns a copy of edges with every delay recomputed.
func Apply(edges []network.Edge, packetBits float64) []network.Edge {
	out := slices.Clone(edges)
	for i := range out {
		out[i].Delay = Compute(out[i], packetBits)
	}
	return out
}

// PacketSizeBits converts a packet size in bytes to bits. Sizes outside
// [MinPacketSizeBytes, MaxPacketSizeBytes] are rejected.
func PacketSizeBits(bytes int) (float64, error) {
	if bytes < MinPacketSizeBytes || bytes > MaxPacketSizeBytes {
		return 0, errors.New(errors.ErrCodeInvalidPacketSize,
			"packet size must be between %d and %d bytes, got %d", MinPacketSizeBytes, MaxPacketSizeBytes, bytes)
	}
	return float64(bytes) * 8, nil
}
