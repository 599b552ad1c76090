// Package capacity selects link capacities from a discrete catalog and
// prices the resulting links.
//
// # Catalog
//
// A [Catalog] is a strictly ascending list of purchasable capacities that
// always includes 0. [Catalog.Select] picks the smallest entry that carries
// a link's flow, falling back to the largest entry when nothing does. The
// fallback leaves the link oversubscribed on purpose so that the delay
// model reports it as saturated.
//
// # Costs
//
// A [CostModel] prices a link as lengthCost(length) + capacityCost(capacity),
// where both terms are step functions described by a [StepCost]. The
// defaults reproduce the standard tariff tables and can be replaced from
// configuration.
//
// # Load
//
// [Thresholds] classify a link's utilization (flow / capacity) into normal,
// high and overload bands for reports and renders.
package capacity

import (
	"math"
	"slices"
	"sort"

	"github.com/matzehuels/netplan/pkg/errors"
)

// DefaultValues are the capacities of the standard catalog.
var DefaultValues = []float64{0, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024}

// Catalog is a validated, strictly ascending list of capacities that
// contains 0. The zero value is an empty catalog; use [NewCatalog] or
// [DefaultCatalog].
type Catalog struct {
	values []float64
}

// NewCatalog validates values and returns a catalog over a copy of them.
func NewCatalog(values []float64) (Catalog, error) {
	if len(values) == 0 {
		return Catalog{}, errors.New(errors.ErrCodeInvalidCatalog, "capacity catalog is empty")
	}
	hasZero := false
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return Catalog{}, errors.New(errors.ErrCodeInvalidCatalog, "capacity catalog entry %d is invalid: %g", i, v)
		}
		if i > 0 && v <= values[i-1] {
			return Catalog{}, errors.New(errors.ErrCodeInvalidCatalog,
				"capacity catalog must be strictly ascending: %g follows %g", v, values[i-1])
		}
		if v == 0 {
			hasZero = true
		}
	}
	if !hasZero {
		return Catalog{}, errors.New(errors.ErrCodeInvalidCatalog, "capacity catalog must contain 0")
	}
	return Catalog{values: slices.Clone(values)}, nil
}

// DefaultCatalog returns the standard catalog.
func DefaultCatalog() Catalog {
	return Catalog{values: slices.Clone(DefaultValues)}
}

// Values returns a copy of the catalog entries.
func (c Catalog) Values() []float64 {
	return slices.Clone(c.values)
}

// Len returns the number of entries.
func (c Catalog) Len() int { return len(c.values) }

// Max returns the largest entry.
func (c Catalog) Max() float64 {
	if len(c.values) == 0 {
		return 0
	}
	return c.values[len(c.values)-1]
}

// Contains reports whether v is a catalog entry.
func (c Catalog) Contains(v float64) bool {
	_, ok := slices.BinarySearch(c.values, v)
	return ok
}

// Select returns the capacity for a link carrying flow:
//   - 0 when flow is 0
//   - the smallest entry ≥ flow otherwise
//   - the largest entry when flow exceeds every entry
func (c Catalog) Select(flow float64) float64 {
	if flow <= 0 || len(c.values) == 0 {
		return 0
	}
	i := sort.SearchFloat64s(c.values, flow)
	if i == len(c.values) {
		return c.Max()
	}
	return c.values[i]
}
