package finalize

import (
	"math"
	"testing"
	"time"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/config"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/composite"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/ewma"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/zscore"
)

func params() config.EngineParams { return config.DefaultEngineParams() }

func TestScale(t *testing.T) {
	if got := Scale(3.0, 3.0, 1.0); got != 100 {
		t.Errorf("Scale at the mean = %v, want 100", got)
	}
	if got := Scale(4.0, 3.0, 0.5); got != 130 {
		t.Errorf("Scale two deviations up = %v, want 130", got)
	}
	if got := Scale(9.0, 3.0, 0); got != 100 {
		t.Errorf("Scale with zero stddev = %v, want the center 100", got)
	}
}

func TestRatingCentering(t *testing.T) {
	date := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	raws := []composite.Raw{
		{Team: "BOS", Date: date, Off: 0.8, Def: -0.1, Pace: 0.4},
		{Team: "TOR", Date: date, Off: -0.3, Def: 0.6, Pace: -0.2},
		{Team: "MTL", Date: date, Off: 0.1, Def: -0.9, Pace: 0.7},
	}
	dist := composite.Describe(date, raws)

	var sumOff, sumDef, sumPace float64
	for _, raw := range raws {
		r := Finalize(raw, dist, nil, params())
		sumOff += r.Off
		sumDef += r.Def
		sumPace += r.Pace
	}

	n := float64(len(raws))
	for name, mean := range map[string]float64{
		"off": sumOff / n, "def": sumDef / n, "pace": sumPace / n,
	} {
		if math.Abs(mean-100) > 1e-9 {
			t.Errorf("%s rating mean = %v, want 100", name, mean)
		}
	}
}

func TestDerivedRatingsScaleDirectly(t *testing.T) {
	// The derived sub-ratings take 100 + 15·z straight from the
	// z-scorer; they must not pass through the composite distribution.
	var tz zscore.TeamZ
	tz.DerivedZ[ewma.Finishing] = 1.0
	tz.DerivedZ[ewma.Goaltending] = -2.0
	tz.DerivedZ[ewma.DangerShare] = 0.5
	tz.DerivedZ[ewma.Discipline] = 0

	raw := composite.Raw{Team: "BOS", Z: tz}
	// A wildly off-center composite distribution must not affect them.
	dist := composite.Distribution{Teams: 5, OffMean: 42, OffStd: 17, DefMean: -3, DefStd: 9, PaceMean: 7, PaceStd: 2}

	r := Finalize(raw, dist, nil, params())
	if r.Finishing != 115 {
		t.Errorf("finishing = %v, want 115", r.Finishing)
	}
	if r.Goaltending != 70 {
		t.Errorf("goaltending = %v, want 70", r.Goaltending)
	}
	if r.Danger != 107.5 {
		t.Errorf("danger = %v, want 107.5", r.Danger)
	}
	if r.Discipline != 100 {
		t.Errorf("discipline = %v, want 100", r.Discipline)
	}
}

func TestSpecialRating(t *testing.T) {
	var tz zscore.TeamZ
	tz.DerivedZ[ewma.PowerPlayOff] = 2.0
	tz.DerivedZ[ewma.PenaltyKillDef] = 1.0

	r := Finalize(composite.Raw{Team: "BOS", Z: tz}, composite.Distribution{}, nil, params())
	want := 100 + 15*(0.2*2.0-0.2*1.0)
	if math.Abs(r.Special-want) > 1e-12 {
		t.Errorf("special = %v, want %v", r.Special, want)
	}
}

func TestVarianceFlag(t *testing.T) {
	tests := []struct {
		pdoZ float64
		want int
	}{
		{0, 0},
		{0.99, 0},
		{1.0, 1},
		{-1.3, 1},
	}
	for _, tc := range tests {
		var tz zscore.TeamZ
		tz.DerivedZ[ewma.PDO] = tc.pdoZ
		r := Finalize(composite.Raw{Team: "BOS", Z: tz}, composite.Distribution{}, nil, params())
		if r.VarianceFlag != tc.want {
			t.Errorf("z(PDO)=%v: variance flag = %d, want %d", tc.pdoZ, r.VarianceFlag, tc.want)
		}
	}
}

func TestTrend(t *testing.T) {
	if got := Trend(105, nil, 10); got != 0 {
		t.Errorf("trend with no history = %v, want 0", got)
	}
	if got := Trend(105, []float64{100, 102}, 10); math.Abs(got-4) > 1e-12 {
		t.Errorf("trend = %v, want 4", got)
	}

	// Only the most recent N entries count.
	history := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 500}
	if got := Trend(110, history, 10); math.Abs(got-10) > 1e-12 {
		t.Errorf("trend = %v, want 10 (older entries beyond the window ignored)", got)
	}
}
