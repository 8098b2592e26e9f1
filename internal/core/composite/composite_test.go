package composite

import (
	"math"
	"testing"
	"time"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/config"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/ewma"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/zscore"
)

func weights() config.CompositeWeights {
	return config.DefaultEngineParams().Composite
}

func TestScoreWeighting(t *testing.T) {
	tz := zscore.TeamZ{Team: "BOS", Date: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)}
	tz.BaseZ[ewma.XGF60] = 1.0
	tz.BaseZ[ewma.SF60] = 0.5
	tz.BaseZ[ewma.GF60] = -1.0
	tz.BaseZ[ewma.XGA60] = 0.4
	tz.BaseZ[ewma.SA60] = -0.2
	tz.BaseZ[ewma.GA60] = 1.0
	tz.BaseZ[ewma.Pace60] = 0.9

	raw := Score(tz, weights())

	wantOff := 0.7*1.0 + 0.2*0.5 + 0.1*(-1.0)
	if math.Abs(raw.Off-wantOff) > 1e-12 {
		t.Errorf("off_raw = %v, want %v", raw.Off, wantOff)
	}

	wantDef := 0.7*(-0.4) + 0.2*0.2 + 0.1*(-1.0)
	if math.Abs(raw.Def-wantDef) > 1e-12 {
		t.Errorf("def_raw = %v, want %v", raw.Def, wantDef)
	}

	if raw.Pace != 0.9 {
		t.Errorf("pace_raw = %v, want 0.9", raw.Pace)
	}
}

func TestZeroZYieldsZeroComposite(t *testing.T) {
	raw := Score(zscore.TeamZ{Team: "BOS"}, weights())
	if raw.Off != 0 || raw.Def != 0 || raw.Pace != 0 {
		t.Errorf("composites = %v/%v/%v, want all 0 for all-zero z", raw.Off, raw.Def, raw.Pace)
	}
}

func TestDescribe(t *testing.T) {
	date := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	raws := []Raw{
		{Team: "BOS", Off: 1, Def: -1, Pace: 0},
		{Team: "TOR", Off: -1, Def: 1, Pace: 0},
	}

	dist := Describe(date, raws)
	if dist.Teams != 2 {
		t.Fatalf("teams = %d, want 2", dist.Teams)
	}
	if dist.OffMean != 0 || dist.DefMean != 0 {
		t.Errorf("means = %v/%v, want 0/0", dist.OffMean, dist.DefMean)
	}
	if math.Abs(dist.OffStd-math.Sqrt2) > 1e-12 {
		t.Errorf("off std = %v, want sqrt(2)", dist.OffStd)
	}
	if dist.PaceStd != 0 {
		t.Errorf("pace std = %v, want 0 for identical values", dist.PaceStd)
	}
}
