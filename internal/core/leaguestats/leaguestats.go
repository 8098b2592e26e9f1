// Package leaguestats computes the cross-team distribution of the
// decayed metrics for a single date. It is the reduction barrier
// between the per-team decay phase and the per-team scoring phase.
package leaguestats

import (
	"math"
	"time"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/ewma"
)

// Distribution holds the sample mean and sample standard deviation of
// every metric for one date. It has no team dimension.
type Distribution struct {
	Date  time.Time
	Teams int

	BaseMean [ewma.NumBase]float64
	BaseStd  [ewma.NumBase]float64

	DerivedMean [ewma.NumDerived]float64
	DerivedStd  [ewma.NumDerived]float64
}

// Describe reduces the non-nil metric vectors of one date. An empty
// input yields a zero-team distribution; callers treat that as "no
// ratings today", not as an error.
func Describe(date time.Time, teams []ewma.Metrics) Distribution {
	dist := Distribution{Date: date, Teams: len(teams)}
	if len(teams) == 0 {
		return dist
	}

	for m := ewma.BaseMetric(0); m < ewma.NumBase; m++ {
		values := make([]float64, len(teams))
		for i, t := range teams {
			values[i] = t.Base[m]
		}
		dist.BaseMean[m], dist.BaseStd[m] = MeanStd(values)
	}

	for m := ewma.DerivedMetric(0); m < ewma.NumDerived; m++ {
		values := make([]float64, len(teams))
		for i, t := range teams {
			values[i] = t.Derived[m]
		}
		dist.DerivedMean[m], dist.DerivedStd[m] = MeanStd(values)
	}

	return dist
}

// MeanStd returns the sample mean and sample standard deviation
// (N−1 denominator). The deviation is 0 when N ≤ 1.
func MeanStd(values []float64) (mean, std float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	if n <= 1 {
		return mean, 0
	}

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(n-1))
}
