// Package zscore standardizes a team's decayed metrics against the
// league distribution for the same date. Base rate metrics are
// regressed toward the league mean by sample size before
// standardization; derived metrics are standardized as-is. The two
// behaviors are distinct tagged operations so the asymmetry lives in
// the type system rather than in a branch buried inside a loop.
package zscore

import (
	"time"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/ewma"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/leaguestats"
)

// Op selects how a value is standardized.
type Op int

const (
	// Blended applies regression-to-mean weighting before the z-score.
	// Early-sample rate metrics are volatile; pulling them toward the
	// league mean keeps week-one ratings sane.
	Blended Op = iota

	// Direct standardizes the raw value. Ratio and difference metrics
	// are already stable enough to stand on their own.
	Direct
)

// Standardize applies the tagged operation. gpWeight is the shrinkage
// weight in [0,1]; it is ignored for Direct. A zero league deviation
// forces the z-score to 0.
func Standardize(op Op, value, gpWeight, leagueMean, leagueStd float64) (blended, z float64) {
	blended = value
	if op == Blended {
		blended = gpWeight*value + (1-gpWeight)*leagueMean
	}
	if leagueStd == 0 {
		return blended, 0
	}
	return blended, (blended - leagueMean) / leagueStd
}

// GPWeight is the shrinkage weight for a team with gp games played:
// clamp(gp/denominator, 0, 1). At 0 games the blend is pure league
// mean; at denominator games and beyond it is pure team value.
func GPWeight(gp, denominator int) float64 {
	if denominator <= 0 {
		return 1
	}
	w := float64(gp) / float64(denominator)
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}

// TeamZ is a team's standardized vector for one date.
type TeamZ struct {
	Team        string
	Date        time.Time
	GamesPlayed int

	BaseBlend [ewma.NumBase]float64
	BaseZ     [ewma.NumBase]float64
	DerivedZ  [ewma.NumDerived]float64
}

// Score standardizes one team against the league distribution.
func Score(m ewma.Metrics, dist leaguestats.Distribution, shrinkageGames int) TeamZ {
	tz := TeamZ{Team: m.Team, Date: m.Date, GamesPlayed: m.GamesPlayed}
	w := GPWeight(m.GamesPlayed, shrinkageGames)

	for b := ewma.BaseMetric(0); b < ewma.NumBase; b++ {
		tz.BaseBlend[b], tz.BaseZ[b] = Standardize(
			Blended, m.Base[b], w, dist.BaseMean[b], dist.BaseStd[b])
	}

	for d := ewma.DerivedMetric(0); d < ewma.NumDerived; d++ {
		_, tz.DerivedZ[d] = Standardize(
			Direct, m.Derived[d], 0, dist.DerivedMean[d], dist.DerivedStd[d])
	}

	return tz
}
