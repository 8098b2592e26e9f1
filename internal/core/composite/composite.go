// Package composite folds a team's standardized metrics into weighted
// offensive, defensive, and pace raw scores, and describes the
// cross-team distribution of those scores for a date.
package composite

import (
	"time"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/config"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/ewma"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/leaguestats"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/zscore"
)

// Raw carries a team's composite scores plus the standardized vector
// they were built from; the finalizer needs both.
type Raw struct {
	Team string
	Date time.Time

	Off  float64
	Def  float64
	Pace float64

	Z zscore.TeamZ
}

// Score combines the standardized components. Defensive z-scores are
// negated so that low against-rates score high.
func Score(tz zscore.TeamZ, w config.CompositeWeights) Raw {
	return Raw{
		Team: tz.Team,
		Date: tz.Date,
		Off: w.XG*tz.BaseZ[ewma.XGF60] +
			w.Shots*tz.BaseZ[ewma.SF60] +
			w.Goals*tz.BaseZ[ewma.GF60],
		Def: w.XG*(-tz.BaseZ[ewma.XGA60]) +
			w.Shots*(-tz.BaseZ[ewma.SA60]) +
			w.Goals*(-tz.BaseZ[ewma.GA60]),
		Pace: tz.BaseZ[ewma.Pace60],
		Z:    tz,
	}
}

// Distribution is the second cross-team pass, over the composite raw
// scores themselves.
type Distribution struct {
	Date  time.Time
	Teams int

	OffMean, OffStd   float64
	DefMean, DefStd   float64
	PaceMean, PaceStd float64
}

func Describe(date time.Time, raws []Raw) Distribution {
	dist := Distribution{Date: date, Teams: len(raws)}
	if len(raws) == 0 {
		return dist
	}

	off := make([]float64, len(raws))
	def := make([]float64, len(raws))
	pace := make([]float64, len(raws))
	for i, r := range raws {
		off[i] = r.Off
		def[i] = r.Def
		pace[i] = r.Pace
	}

	dist.OffMean, dist.OffStd = leaguestats.MeanStd(off)
	dist.DefMean, dist.DefStd = leaguestats.MeanStd(def)
	dist.PaceMean, dist.PaceStd = leaguestats.MeanStd(pace)
	return dist
}
