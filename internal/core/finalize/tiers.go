package finalize

import (
	"math"
	"sort"
)

// Tier values: 1 = top third, 2 = middle, 3 = bottom third or no data.
const (
	TierTop    = 1
	TierMiddle = 2
	TierBottom = 3
)

// Cutoffs are the nearest-rank 33rd and 67th percentile values of a
// statistic across the league. Valid is false when the pool is empty.
type Cutoffs struct {
	P33   float64
	P67   float64
	Valid bool
}

// CutoffsFor computes the tier cutoffs over the available values.
func CutoffsFor(values []float64) Cutoffs {
	if len(values) == 0 {
		return Cutoffs{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return Cutoffs{
		P33:   percentile(sorted, 0.33),
		P67:   percentile(sorted, 0.67),
		Valid: true,
	}
}

// percentile is the nearest-rank method over an ascending-sorted
// slice: the value at rank ceil(p·N).
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	rank := int(math.Ceil(float64(n) * p))
	if rank < 1 {
		rank = 1
	}
	if rank > n {
		rank = n
	}
	return sorted[rank-1]
}

// Tier buckets a statistic against the cutoffs. A nil value or an
// empty pool lands in the bottom tier.
func Tier(v *float64, c Cutoffs) int {
	if v == nil || !c.Valid {
		return TierBottom
	}
	switch {
	case *v >= c.P67:
		return TierTop
	case *v >= c.P33:
		return TierMiddle
	default:
		return TierBottom
	}
}
