package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/finalize"
)

const fetchPageSize = 500

// UpsertRatings writes rating rows keyed on (team, date). Re-running
// the same date overwrites prior values and touches nothing else.
func (s *Store) UpsertRatings(ctx context.Context, rows []finalize.Rating) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rating upsert: %w", err)
	}
	defer tx.Rollback()

	query := s.rebind(`INSERT INTO team_ratings (
			team, date, off_rating, def_rating, pace_rating,
			finishing, goaltending, danger, discipline, special,
			trend10, pp_tier, pk_tier, variance_flag, games_played
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT (team, date) DO UPDATE SET
			off_rating = excluded.off_rating,
			def_rating = excluded.def_rating,
			pace_rating = excluded.pace_rating,
			finishing = excluded.finishing,
			goaltending = excluded.goaltending,
			danger = excluded.danger,
			discipline = excluded.discipline,
			special = excluded.special,
			trend10 = excluded.trend10,
			pp_tier = excluded.pp_tier,
			pk_tier = excluded.pk_tier,
			variance_flag = excluded.variance_flag,
			games_played = excluded.games_played`)

	for _, r := range rows {
		if _, err := tx.ExecContext(ctx, query,
			r.Team, r.Date.UTC().Format(dateLayout),
			r.Off, r.Def, r.Pace,
			r.Finishing, r.Goaltending, r.Danger, r.Discipline, r.Special,
			r.Trend10, r.PPTier, r.PKTier, r.VarianceFlag, r.GamesPlayed,
		); err != nil {
			return fmt.Errorf("upsert rating %s/%s: %w", r.Team, r.Date.Format(dateLayout), err)
		}
	}

	return tx.Commit()
}

// HasRatings reports whether any rating row exists.
func (s *Store) HasRatings(ctx context.Context) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM team_ratings LIMIT 1`).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("ratings emptiness check: %w", err)
	}
	return true, nil
}

// FetchLatest pages through rating rows dated in [since, before),
// descending by date, for all teams.
func (s *Store) FetchLatest(ctx context.Context, before, since time.Time) ([]finalize.Rating, error) {
	query := s.rebind(`SELECT
			team, date, off_rating, def_rating, pace_rating,
			finishing, goaltending, danger, discipline, special,
			trend10, pp_tier, pk_tier, variance_flag, games_played
		FROM team_ratings
		WHERE date < ? AND date >= ?
		ORDER BY date DESC, team
		LIMIT ? OFFSET ?`)

	var out []finalize.Rating
	for offset := 0; ; offset += fetchPageSize {
		page, err := s.fetchRatingPage(ctx, query,
			before.UTC().Format(dateLayout), since.UTC().Format(dateLayout),
			fetchPageSize, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < fetchPageSize {
			return out, nil
		}
	}
}

// FetchDate returns the persisted rows for one date, ordered by team.
func (s *Store) FetchDate(ctx context.Context, date time.Time) ([]finalize.Rating, error) {
	query := s.rebind(`SELECT
			team, date, off_rating, def_rating, pace_rating,
			finishing, goaltending, danger, discipline, special,
			trend10, pp_tier, pk_tier, variance_flag, games_played
		FROM team_ratings
		WHERE date = ?
		ORDER BY team`)
	return s.queryRatings(ctx, query, date.UTC().Format(dateLayout))
}

func (s *Store) fetchRatingPage(ctx context.Context, query string, args ...any) ([]finalize.Rating, error) {
	return s.queryRatings(ctx, query, args...)
}

func (s *Store) queryRatings(ctx context.Context, query string, args ...any) ([]finalize.Rating, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch ratings: %w", err)
	}
	defer rows.Close()

	var out []finalize.Rating
	for rows.Next() {
		var (
			r    finalize.Rating
			date string
		)
		if err := rows.Scan(
			&r.Team, &date, &r.Off, &r.Def, &r.Pace,
			&r.Finishing, &r.Goaltending, &r.Danger, &r.Discipline, &r.Special,
			&r.Trend10, &r.PPTier, &r.PKTier, &r.VarianceFlag, &r.GamesPlayed,
		); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		if r.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parse rating date %q: %w", date, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
