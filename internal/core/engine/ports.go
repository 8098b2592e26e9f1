package engine

import (
	"context"
	"time"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/finalize"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/gamelog"
)

// SpecialTeams is one team's special-teams line for one date, used
// only for tier classification.
type SpecialTeams struct {
	Team string
	Date time.Time

	// Nil when the feed has no value for the team/date.
	PPPct *float64
	PKPct *float64

	PenaltiesDrawn int
	PenaltiesTaken int
}

// GameLogSource supplies per-team rate lines for a date window.
// Satisfied by *store.Store.
type GameLogSource interface {
	FetchGameLogs(ctx context.Context, start, end time.Time) ([]gamelog.GameLog, error)
}

// SpecialTeamsSource supplies the special-teams lines for a window.
// Satisfied by *store.Store and *nhl_http.Client.
type SpecialTeamsSource interface {
	FetchSpecialTeams(ctx context.Context, start, end time.Time) ([]SpecialTeams, error)
}

// RatingHistory reads previously persisted rating rows.
// Satisfied by *store.Store.
type RatingHistory interface {
	// HasRatings reports whether any rating row exists at all.
	HasRatings(ctx context.Context) (bool, error)

	// FetchLatest returns rows dated before `before` and at or after
	// `since`, for all teams, descending by date.
	FetchLatest(ctx context.Context, before, since time.Time) ([]finalize.Rating, error)
}

// RatingSink persists rating rows with an idempotent upsert keyed on
// (team, date).
type RatingSink interface {
	UpsertRatings(ctx context.Context, rows []finalize.Rating) error
}

// TeamResolver maps feed team names to canonical abbreviations.
// Satisfied by *teams.Directory.
type TeamResolver interface {
	Abbrev(ctx context.Context, name string) (string, bool)
}
