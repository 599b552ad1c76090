package capacity

import (
	"math"

	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/network"
)

// Default utilization thresholds.
const (
	DefaultHighThreshold     = 0.6
	DefaultOverloadThreshold = 0.9
)

// LoadLevel is a utilization band.
type LoadLevel string

// Load levels in increasing order of severity.
const (
	LoadNormal   LoadLevel = "normal"
	LoadHigh     LoadLevel = "high"
	LoadOverload LoadLevel = "overload"
)

// Thresholds are the utilization bounds of the high and overload bands.
type Thresholds struct {
	High     float64 `toml:"high" json:"high" yaml:"high"`
	Overload float64 `toml:"overload" json:"overload" yaml:"overload"`
}

// DefaultThresholds returns 60% high and 90% overload.
func DefaultThresholds() Thresholds {
	return Thresholds{High: DefaultHighThreshold, Overload: DefaultOverloadThreshold}
}

// Validate requires 0 < High < Overload ≤ 1.
func (t Thresholds) Validate() error {
	if math.IsNaN(t.High) || math.IsNaN(t.Overload) {
		return errors.New(errors.ErrCodeInvalidThresholds, "load thresholds must be numbers")
	}
	if t.High <= 0 || t.High >= t.Overload || t.Overload > 1 {
		return errors.New(errors.ErrCodeInvalidThresholds,
			"load thresholds must satisfy 0 < high < overload <= 1, got high=%g overload=%g", t.High, t.Overload)
	}
	return nil
}

// Classify returns the band of a utilization ratio.
func (t Thresholds) Classify(utilization float64) LoadLevel {
	switch {
	case utilization >= t.Overload:
		return LoadOverload
	case utilization >= t.High:
		return LoadHigh
	default:
		return LoadNormal
	}
}

// Level returns the band of a link.
func (t Thresholds) Level(e network.Edge) LoadLevel {
	return t.Classify(Utilization(e))
}

// Utilization returns flow / capacity, or 0 for a link without capacity.
func Utilization(e network.Edge) float64 {
	if e.Capacity <= 0 {
		return 0
	}
	return e.Flow / e.Capacity
}
