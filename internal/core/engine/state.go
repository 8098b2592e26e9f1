package engine

import (
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/finalize"
)

// PriorState is an immutable snapshot of previously written ratings,
// taken once per date before any new row is produced. Each iteration
// of the date loop reads the snapshot written by earlier iterations
// rather than a live store mid-computation.
type PriorState struct {
	// Latest holds each team's most recent rating within the trend
	// window.
	Latest map[string]finalize.Rating

	// OffHistory holds up to N prior off-ratings per team, most
	// recent first.
	OffHistory map[string][]float64
}

// buildPriorState folds rows (descending by date) into the snapshot.
func buildPriorState(rows []finalize.Rating, historyLimit int) PriorState {
	st := PriorState{
		Latest:     make(map[string]finalize.Rating),
		OffHistory: make(map[string][]float64),
	}
	for _, r := range rows {
		if _, ok := st.Latest[r.Team]; !ok {
			st.Latest[r.Team] = r
		}
		if len(st.OffHistory[r.Team]) < historyLimit {
			st.OffHistory[r.Team] = append(st.OffHistory[r.Team], r.Off)
		}
	}
	return st
}
