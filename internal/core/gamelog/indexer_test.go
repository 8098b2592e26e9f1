package gamelog

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIndexTeamGames(t *testing.T) {
	logs := []GameLog{
		{Team: "BOS", Date: day("2026-01-02")},
		{Team: "BOS", Date: day("2026-01-10")},
		{Team: "BOS", Date: day("2026-01-05")},
	}

	games := IndexTeamGames(logs)
	if len(games) != 3 {
		t.Fatalf("got %d games, want 3", len(games))
	}

	wantDates := []string{"2026-01-10", "2026-01-05", "2026-01-02"}
	for i, g := range games {
		if got := g.Date.Format("2006-01-02"); got != wantDates[i] {
			t.Errorf("game %d: date %s, want %s", i, got, wantDates[i])
		}
		if g.RnDesc != i {
			t.Errorf("game %d: rn_desc %d, want %d", i, g.RnDesc, i)
		}
		if want := len(games) - i; g.GPToDate != want {
			t.Errorf("game %d: gp_to_date %d, want %d", i, g.GPToDate, want)
		}
	}
}

func TestIndexTeamGamesEmpty(t *testing.T) {
	if games := IndexTeamGames(nil); games != nil {
		t.Fatalf("got %v, want nil for empty input", games)
	}
}

func TestGroupByTeam(t *testing.T) {
	logs := []GameLog{
		{Team: "BOS", Date: day("2026-01-02")},
		{Team: "TOR", Date: day("2026-01-02")},
		{Team: "BOS", Date: day("2026-01-04")},
	}
	byTeam := GroupByTeam(logs)
	if len(byTeam) != 2 {
		t.Fatalf("got %d teams, want 2", len(byTeam))
	}
	if len(byTeam["BOS"]) != 2 || len(byTeam["TOR"]) != 1 {
		t.Errorf("unexpected group sizes: BOS=%d TOR=%d", len(byTeam["BOS"]), len(byTeam["TOR"]))
	}
}

func TestRate60(t *testing.T) {
	if got := Rate60(30, 3600); got != 30 {
		t.Errorf("Rate60(30, 3600) = %v, want 30", got)
	}
	if got := Rate60(15, 1800); got != 30 {
		t.Errorf("Rate60(15, 1800) = %v, want 30", got)
	}
	if got := Rate60(10, 0); got != 0 {
		t.Errorf("Rate60 with zero TOI = %v, want 0", got)
	}
}
