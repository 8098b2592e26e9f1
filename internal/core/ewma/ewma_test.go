package ewma

import (
	"math"
	"testing"
	"time"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/gamelog"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func defaultCfg() Config {
	return Config{LookbackGames: 25, HalfLifeGames: 10, PDOBaseline: 1.0}
}

func indexed(logs []gamelog.GameLog) []gamelog.TeamGame {
	return gamelog.IndexTeamGames(logs)
}

func TestHalfLifeDecay(t *testing.T) {
	target := day("2026-01-10")
	games := indexed([]gamelog.GameLog{
		{Team: "BOS", Date: day("2026-01-10"), GF60: 3.0},
		{Team: "BOS", Date: day("2026-01-08"), GF60: 2.0},
		{Team: "BOS", Date: day("2026-01-05"), GF60: 1.0},
	})

	m := Compute(games, target, defaultCfg())
	if m == nil {
		t.Fatal("got nil metrics for a team that played on the target date")
	}

	w1 := math.Pow(0.5, 0.1)
	w2 := math.Pow(0.5, 0.2)
	want := (3.0 + 2.0*w1 + 1.0*w2) / (1.0 + w1 + w2)
	if math.Abs(m.Base[GF60]-want) > 1e-6 {
		t.Errorf("decayed GF60 = %.7f, want %.7f", m.Base[GF60], want)
	}
	// sanity against the hand-computed value
	if math.Abs(want-2.046) > 1e-3 {
		t.Errorf("expected value %.4f drifted from 2.046", want)
	}
}

func TestNilWhenNoGameOnTargetDate(t *testing.T) {
	games := indexed([]gamelog.GameLog{
		{Team: "BOS", Date: day("2026-01-08"), GF60: 2.0},
		{Team: "BOS", Date: day("2026-01-05"), GF60: 1.0},
	})

	if m := Compute(games, day("2026-01-10"), defaultCfg()); m != nil {
		t.Fatalf("got metrics %+v, want nil for an idle date", m)
	}
}

func TestFutureGamesExcluded(t *testing.T) {
	games := indexed([]gamelog.GameLog{
		{Team: "BOS", Date: day("2026-01-12"), GF60: 9.0},
		{Team: "BOS", Date: day("2026-01-10"), GF60: 3.0},
	})

	m := Compute(games, day("2026-01-10"), defaultCfg())
	if m == nil {
		t.Fatal("got nil metrics")
	}
	if m.Base[GF60] != 3.0 {
		t.Errorf("decayed GF60 = %v, leaked a future game into the window", m.Base[GF60])
	}
	if m.GamesPlayed != 1 {
		t.Errorf("games played = %d, want 1", m.GamesPlayed)
	}
}

func TestLookbackCap(t *testing.T) {
	target := day("2026-03-01")
	var logs []gamelog.GameLog
	for i := 0; i < 40; i++ {
		logs = append(logs, gamelog.GameLog{
			Team: "BOS", Date: target.AddDate(0, 0, -i), GF60: 1.0,
		})
	}

	cfg := defaultCfg()
	cfg.LookbackGames = 3
	m := Compute(indexed(logs), target, cfg)
	if m == nil {
		t.Fatal("got nil metrics")
	}
	// All in-window values are 1.0 so the average is exactly 1
	// regardless of weights; the cap matters for GamesPlayed reporting.
	if m.Base[GF60] != 1.0 {
		t.Errorf("decayed GF60 = %v, want 1.0", m.Base[GF60])
	}
	if m.GamesPlayed != 40 {
		t.Errorf("games played = %d, want the full indexed count 40", m.GamesPlayed)
	}
}

func TestDeterminism(t *testing.T) {
	target := day("2026-01-10")
	logs := []gamelog.GameLog{
		{Team: "BOS", Date: day("2026-01-10"), GF60: 3.1, XGF60: 2.7, SF60: 31, PDO: 1.012, HasPDO: true},
		{Team: "BOS", Date: day("2026-01-08"), GF60: 2.4, XGF60: 2.9, SF60: 28, PDO: 0.994, HasPDO: true},
	}

	a := Compute(indexed(logs), target, defaultCfg())
	b := Compute(indexed(logs), target, defaultCfg())
	if a == nil || b == nil {
		t.Fatal("got nil metrics")
	}
	if *a != *b {
		t.Errorf("identical input produced different vectors:\n%+v\n%+v", *a, *b)
	}
}

func TestPDOBaselineForMissingValues(t *testing.T) {
	target := day("2026-01-10")
	games := indexed([]gamelog.GameLog{
		{Team: "BOS", Date: day("2026-01-10"), PDO: 1.05, HasPDO: true},
		{Team: "BOS", Date: day("2026-01-08")}, // no PDO reported
	})

	m := Compute(games, target, defaultCfg())
	if m == nil {
		t.Fatal("got nil metrics")
	}

	w1 := math.Pow(0.5, 0.1)
	want := (1.05 + 1.0*w1) / (1.0 + w1)
	if math.Abs(m.Derived[PDO]-want) > 1e-9 {
		t.Errorf("decayed PDO = %.7f, want %.7f (missing game at neutral baseline)", m.Derived[PDO], want)
	}
}

func TestDerivedMetrics(t *testing.T) {
	target := day("2026-01-10")
	games := indexed([]gamelog.GameLog{{
		Team: "BOS", Date: target,
		GF60: 3.0, XGF60: 2.5,
		GA60: 2.0, XGA60: 2.6,
		HDCF60: 12, HDCA60: 8,
		CF60: 55, CA60: 50,
		PPXGF60: 6.5, PKXGA60: 5.0,
		PenDrawn60: 4.0, PenTaken60: 3.0,
	}})

	m := Compute(games, target, defaultCfg())
	if m == nil {
		t.Fatal("got nil metrics")
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"finishing", m.Derived[Finishing], 0.5},
		{"goaltending", m.Derived[Goaltending], 0.6},
		{"danger share", m.Derived[DangerShare], 0.6},
		{"pp offense", m.Derived[PowerPlayOff], 6.5},
		{"pk defense", m.Derived[PenaltyKillDef], 5.0},
		{"discipline", m.Derived[Discipline], 1.0},
		{"pace", m.Base[Pace60], 105},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestDangerShareDefaultsToHalf(t *testing.T) {
	target := day("2026-01-10")
	games := indexed([]gamelog.GameLog{{Team: "BOS", Date: target}})

	m := Compute(games, target, defaultCfg())
	if m == nil {
		t.Fatal("got nil metrics")
	}
	if m.Derived[DangerShare] != 0.5 {
		t.Errorf("danger share = %v, want 0.5 with no chances either way", m.Derived[DangerShare])
	}
}
