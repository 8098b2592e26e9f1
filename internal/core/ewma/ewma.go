// Package ewma turns a team's indexed game window into a single
// recency-decayed metric vector for a target date.
package ewma

import (
	"math"
	"time"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/gamelog"
)

// BaseMetric enumerates the rate metrics that later pass through
// sample-size shrinkage before standardization.
type BaseMetric int

const (
	XGF60 BaseMetric = iota
	GF60
	SF60
	XGA60
	GA60
	SA60
	Pace60

	NumBase
)

var baseNames = [NumBase]string{"xgf60", "gf60", "sf60", "xga60", "ga60", "sa60", "pace60"}

func (m BaseMetric) String() string { return baseNames[m] }

// DerivedMetric enumerates the ratio/difference metrics computed from
// the same decayed window. These are standardized directly, never
// shrinkage-blended.
type DerivedMetric int

const (
	Finishing DerivedMetric = iota
	Goaltending
	DangerShare
	PowerPlayOff
	PenaltyKillDef
	Discipline
	PDO

	NumDerived
)

var derivedNames = [NumDerived]string{
	"finishing", "goaltending", "danger_share", "pp_off", "pk_def", "discipline", "pdo",
}

func (m DerivedMetric) String() string { return derivedNames[m] }

// Metrics is one team's decayed vector as of one date.
type Metrics struct {
	Team        string
	Date        time.Time
	GamesPlayed int
	Base        [NumBase]float64
	Derived     [NumDerived]float64
}

// Config holds the decay knobs.
type Config struct {
	LookbackGames int
	HalfLifeGames int
	PDOBaseline   float64
}

// Compute returns the decayed metric vector for a team, or nil when
// the team's most recent game (among games dated on or before target)
// does not fall exactly on the target date: no game that day means no
// fresh rating that day.
func Compute(games []gamelog.TeamGame, target time.Time, cfg Config) *Metrics {
	window := make([]gamelog.TeamGame, 0, len(games))
	for _, g := range games {
		if !g.Date.After(target) {
			window = append(window, g)
		}
	}
	if len(window) == 0 || !sameDay(window[0].Date, target) {
		return nil
	}
	if len(window) > cfg.LookbackGames {
		window = window[:cfg.LookbackGames]
	}

	d := newDecayer(cfg.HalfLifeGames)
	for i, g := range window {
		pdo := cfg.PDOBaseline
		if g.HasPDO {
			pdo = g.PDO
		}
		d.add(i, series{
			xgf: g.XGF60, gf: g.GF60, sf: g.SF60,
			xga: g.XGA60, ga: g.GA60, sa: g.SA60,
			cf: g.CF60, ca: g.CA60,
			hdcf: g.HDCF60, hdca: g.HDCA60,
			ppXGF: g.PPXGF60, pkXGA: g.PKXGA60,
			penDrawn: g.PenDrawn60, penTaken: g.PenTaken60,
			pdo: pdo,
		})
	}
	avg := d.averages()

	m := &Metrics{
		Team:        window[0].Team,
		Date:        target,
		GamesPlayed: window[0].GPToDate,
	}
	m.Base[XGF60] = avg.xgf
	m.Base[GF60] = avg.gf
	m.Base[SF60] = avg.sf
	m.Base[XGA60] = avg.xga
	m.Base[GA60] = avg.ga
	m.Base[SA60] = avg.sa
	m.Base[Pace60] = avg.cf + avg.ca

	m.Derived[Finishing] = avg.gf - avg.xgf
	m.Derived[Goaltending] = avg.xga - avg.ga
	m.Derived[DangerShare] = dangerShare(avg.hdcf, avg.hdca)
	m.Derived[PowerPlayOff] = avg.ppXGF
	m.Derived[PenaltyKillDef] = avg.pkXGA
	m.Derived[Discipline] = avg.penDrawn - avg.penTaken
	m.Derived[PDO] = avg.pdo

	return m
}

type series struct {
	xgf, gf, sf, xga, ga, sa float64
	cf, ca, hdcf, hdca       float64
	ppXGF, pkXGA             float64
	penDrawn, penTaken, pdo  float64
}

type decayer struct {
	halfLife  float64
	weightSum float64
	acc       series
}

func newDecayer(halfLifeGames int) *decayer {
	return &decayer{halfLife: float64(halfLifeGames)}
}

// add accumulates one game at recency offset i (0 = most recent) with
// weight 0.5^(i/halfLife).
func (d *decayer) add(i int, s series) {
	w := math.Pow(0.5, float64(i)/d.halfLife)
	d.weightSum += w

	d.acc.xgf += w * s.xgf
	d.acc.gf += w * s.gf
	d.acc.sf += w * s.sf
	d.acc.xga += w * s.xga
	d.acc.ga += w * s.ga
	d.acc.sa += w * s.sa
	d.acc.cf += w * s.cf
	d.acc.ca += w * s.ca
	d.acc.hdcf += w * s.hdcf
	d.acc.hdca += w * s.hdca
	d.acc.ppXGF += w * s.ppXGF
	d.acc.pkXGA += w * s.pkXGA
	d.acc.penDrawn += w * s.penDrawn
	d.acc.penTaken += w * s.penTaken
	d.acc.pdo += w * s.pdo
}

func (d *decayer) averages() series {
	if d.weightSum == 0 {
		return series{}
	}
	a := d.acc
	inv := 1.0 / d.weightSum
	a.xgf *= inv
	a.gf *= inv
	a.sf *= inv
	a.xga *= inv
	a.ga *= inv
	a.sa *= inv
	a.cf *= inv
	a.ca *= inv
	a.hdcf *= inv
	a.hdca *= inv
	a.ppXGF *= inv
	a.pkXGA *= inv
	a.penDrawn *= inv
	a.penTaken *= inv
	a.pdo *= inv
	return a
}

func dangerShare(hdcf, hdca float64) float64 {
	total := hdcf + hdca
	if total == 0 {
		return 0.5
	}
	return hdcf / total
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
