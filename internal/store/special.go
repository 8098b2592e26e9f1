package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/engine"
)

// UpsertSpecialTeams writes special-teams lines keyed on (team, date).
func (s *Store) UpsertSpecialTeams(ctx context.Context, rows []engine.SpecialTeams) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin special teams upsert: %w", err)
	}
	defer tx.Rollback()

	query := s.rebind(`INSERT INTO special_teams (
			team, date, pp_pct, pk_pct, penalties_drawn, penalties_taken
		) VALUES (?,?,?,?,?,?)
		ON CONFLICT (team, date) DO UPDATE SET
			pp_pct = excluded.pp_pct,
			pk_pct = excluded.pk_pct,
			penalties_drawn = excluded.penalties_drawn,
			penalties_taken = excluded.penalties_taken`)

	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, query,
			row.Team, row.Date.UTC().Format(dateLayout),
			nullable(row.PPPct), nullable(row.PKPct),
			row.PenaltiesDrawn, row.PenaltiesTaken,
		); err != nil {
			return fmt.Errorf("upsert special teams %s/%s: %w", row.Team, row.Date.Format(dateLayout), err)
		}
	}

	return tx.Commit()
}

// FetchSpecialTeams returns the lines for the window, inclusive on
// both ends.
func (s *Store) FetchSpecialTeams(ctx context.Context, start, end time.Time) ([]engine.SpecialTeams, error) {
	query := s.rebind(`SELECT team, date, pp_pct, pk_pct, penalties_drawn, penalties_taken
		FROM special_teams
		WHERE date >= ? AND date <= ?
		ORDER BY date, team`)

	rows, err := s.db.QueryContext(ctx, query,
		start.UTC().Format(dateLayout), end.UTC().Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("fetch special teams: %w", err)
	}
	defer rows.Close()

	var out []engine.SpecialTeams
	for rows.Next() {
		var (
			row    engine.SpecialTeams
			date   string
			pp, pk sql.NullFloat64
		)
		if err := rows.Scan(&row.Team, &date, &pp, &pk, &row.PenaltiesDrawn, &row.PenaltiesTaken); err != nil {
			return nil, fmt.Errorf("scan special teams: %w", err)
		}
		if row.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parse special teams date %q: %w", date, err)
		}
		if pp.Valid {
			v := pp.Float64
			row.PPPct = &v
		}
		if pk.Valid {
			v := pk.Float64
			row.PKPct = &v
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
