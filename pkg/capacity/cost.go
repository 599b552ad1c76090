package capacity

import (
	"math"

	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/network"
)

// Tier is one step of a [StepCost]: values up to and including Max cost Cost.
type Tier struct {
	Max  float64 `toml:"max" json:"max" yaml:"max"`
	Cost float64 `toml:"cost" json:"cost" yaml:"cost"`
}

// StepCost is a piecewise-constant price function.
//
// Values ≤ 0 cost Zero. Positive values cost the first tier whose Max is
// ≥ the value. Values above the last tier cost Above.
type StepCost struct {
	Zero  float64 `toml:"zero" json:"zero" yaml:"zero"`
	Tiers []Tier  `toml:"tiers" json:"tiers" yaml:"tiers"`
	Above float64 `toml:"above" json:"above" yaml:"above"`
}

// At returns the price for v.
func (s StepCost) At(v float64) float64 {
	if v <= 0 {
		return s.Zero
	}
	for _, t := range s.Tiers {
		if v <= t.Max {
			return t.Cost
		}
	}
	return s.Above
}

// Validate checks that tiers are strictly ascending and every price is a
// finite, non-negative number.
func (s StepCost) Validate(name string) error {
	prices := []float64{s.Zero, s.Above}
	for i, t := range s.Tiers {
		if math.IsNaN(t.Max) || math.IsInf(t.Max, 0) || t.Max <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s tier %d has invalid bound %g", name, i, t.Max)
		}
		if i > 0 && t.Max <= s.Tiers[i-1].Max {
			return errors.New(errors.ErrCodeInvalidConfig, "%s tiers must be strictly ascending", name)
		}
		prices = append(prices, t.Cost)
	}
	for _, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s has invalid price %g", name, p)
		}
	}
	return nil
}

// CostModel prices links by length and capacity.
type CostModel struct {
	Length   StepCost `toml:"length" json:"length" yaml:"length"`
	Capacity StepCost `toml:"capacity" json:"capacity" yaml:"capacity"`
}

// DefaultCostModel returns the standard tariff:
//
//	length L      cost     capacity C     cost
//	L = 0            0     C = 0            10
//	0 < L ≤ 100     50     0 < C ≤ 64      100
//	100 < L ≤ 300  150     64 < C ≤ 128    250
//	L > 300        400     128 < C ≤ 500   600
//	                       C > 500        1000
func DefaultCostModel() CostModel {
	return CostModel{
		Length: StepCost{
			Zero:  0,
			Tiers: []Tier{{Max: 100, Cost: 50}, {Max: 300, Cost: 150}},
			Above: 400,
		},
		Capacity: StepCost{
			Zero:  10,
			Tiers: []Tier{{Max: 64, Cost: 100}, {Max: 128, Cost: 250}, {Max: 500, Cost: 600}},
			Above: 1000,
		},
	}
}

// Validate checks both step functions.
func (m CostModel) Validate() error {
	if err := m.Length.Validate("length cost"); err != nil {
		return err
	}
	return m.Capacity.Validate("capacity cost")
}

// LengthCost prices a link length.
func (m CostModel) LengthCost(length float64) float64 {
	return m.Length.At(length)
}

// CapacityCost prices a link capacity.
func (m CostModel) CapacityCost(capacity float64) float64 {
	return m.Capacity.At(capacity)
}

// EdgeCost returns lengthCost + capacityCost for e.
func (m CostModel) EdgeCost(e network.Edge) float64 {
	return m.LengthCost(e.Length) + m.CapacityCost(e.Capacity)
}
