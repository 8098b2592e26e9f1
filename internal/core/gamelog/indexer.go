package gamelog

import "sort"

// TeamGame is a GameLog with its position inside an indexed window.
// RnDesc is 0 for the most recent game and increases with age;
// GPToDate is 1 for the earliest game in the window and increases
// with recency.
type TeamGame struct {
	GameLog
	RnDesc   int
	GPToDate int
}

// IndexTeamGames sorts a team's logs descending by date and assigns
// recency ranks and the games-played counter. An empty input yields an
// empty output; it is not an error to have no games.
func IndexTeamGames(logs []GameLog) []TeamGame {
	if len(logs) == 0 {
		return nil
	}

	sorted := make([]GameLog, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	games := make([]TeamGame, len(sorted))
	for i, lg := range sorted {
		games[i] = TeamGame{
			GameLog:  lg,
			RnDesc:   i,
			GPToDate: len(sorted) - i,
		}
	}
	return games
}

// GroupByTeam splits a window of logs into per-team slices.
func GroupByTeam(logs []GameLog) map[string][]GameLog {
	byTeam := make(map[string][]GameLog)
	for _, lg := range logs {
		byTeam[lg.Team] = append(byTeam[lg.Team], lg)
	}
	return byTeam
}
