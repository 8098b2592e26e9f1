// Package finalize maps composite and standardized scores to the
// 100±15 display scale and buckets special-teams percentages into
// percentile tiers.
//
// The base triplet (off/def/pace) is normalized twice: once inside the
// z-scorer against the metric distribution, then again here against
// the distribution of the composite scores. The derived sub-ratings
// are scaled from their single z-score directly. Both stages go
// through Scale so the asymmetry stays visible.
package finalize

import (
	"time"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/config"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/composite"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/ewma"
)

const (
	scaleCenter = 100.0
	scaleSpread = 15.0
)

// Rating is the persisted output row for one team and date.
type Rating struct {
	Team string
	Date time.Time

	Off  float64
	Def  float64
	Pace float64

	Finishing   float64
	Goaltending float64
	Danger      float64
	Discipline  float64
	Special     float64

	Trend10      float64
	PPTier       int
	PKTier       int
	VarianceFlag int

	GamesPlayed int
}

// Scale maps v onto the display scale: 100 + 15·(v−mean)/std. A zero
// deviation contributes nothing, leaving the center value.
func Scale(v, mean, std float64) float64 {
	if std == 0 {
		return scaleCenter
	}
	return scaleCenter + scaleSpread*(v-mean)/std
}

// scaleZ maps an already-standardized value onto the display scale.
func scaleZ(z float64) float64 {
	return scaleCenter + scaleSpread*z
}

// Finalize builds a fresh rating row. offHistory holds the team's
// prior off-ratings, most recent first; Trend10 is the current
// off-rating minus the mean of up to the requested number of them.
func Finalize(raw composite.Raw, dist composite.Distribution, offHistory []float64, p config.EngineParams) Rating {
	z := raw.Z

	r := Rating{
		Team:        raw.Team,
		Date:        raw.Date,
		GamesPlayed: z.GamesPlayed,

		Off:  Scale(raw.Off, dist.OffMean, dist.OffStd),
		Def:  Scale(raw.Def, dist.DefMean, dist.DefStd),
		Pace: Scale(raw.Pace, dist.PaceMean, dist.PaceStd),

		Finishing:   scaleZ(z.DerivedZ[ewma.Finishing]),
		Goaltending: scaleZ(z.DerivedZ[ewma.Goaltending]),
		Danger:      scaleZ(z.DerivedZ[ewma.DangerShare]),
		Discipline:  scaleZ(z.DerivedZ[ewma.Discipline]),

		Special: scaleZ(p.SpecialWeight*z.DerivedZ[ewma.PowerPlayOff] -
			p.SpecialWeight*z.DerivedZ[ewma.PenaltyKillDef]),
	}

	if abs(z.DerivedZ[ewma.PDO]) >= p.VarianceThreshold {
		r.VarianceFlag = 1
	}

	r.Trend10 = Trend(r.Off, offHistory, p.TrendGames)
	return r
}

// Trend is the current off-rating minus the mean of up to maxGames
// prior off-ratings (most recent first). With no history the trend
// is 0.
func Trend(currentOff float64, offHistory []float64, maxGames int) float64 {
	if len(offHistory) == 0 || maxGames <= 0 {
		return 0
	}
	if len(offHistory) > maxGames {
		offHistory = offHistory[:maxGames]
	}
	var sum float64
	for _, v := range offHistory {
		sum += v
	}
	return currentOff - sum/float64(len(offHistory))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
