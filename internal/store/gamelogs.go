package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/gamelog"
)

// UpsertGameLogs writes rate lines keyed on (team, date, situation).
func (s *Store) UpsertGameLogs(ctx context.Context, rows []gamelog.GameLog) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin game log upsert: %w", err)
	}
	defer tx.Rollback()

	query := s.rebind(`INSERT INTO game_logs (
			team, date, situation,
			cf60, ca60, sf60, sa60, gf60, ga60, xgf60, xga60,
			hdcf60, hdca60, pdo, pp_xgf60, pk_xga60, pen_drawn60, pen_taken60
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT (team, date, situation) DO UPDATE SET
			cf60 = excluded.cf60, ca60 = excluded.ca60,
			sf60 = excluded.sf60, sa60 = excluded.sa60,
			gf60 = excluded.gf60, ga60 = excluded.ga60,
			xgf60 = excluded.xgf60, xga60 = excluded.xga60,
			hdcf60 = excluded.hdcf60, hdca60 = excluded.hdca60,
			pdo = excluded.pdo,
			pp_xgf60 = excluded.pp_xgf60, pk_xga60 = excluded.pk_xga60,
			pen_drawn60 = excluded.pen_drawn60, pen_taken60 = excluded.pen_taken60`)

	for _, row := range rows {
		var pdo any
		if row.HasPDO {
			pdo = row.PDO
		}
		if _, err := tx.ExecContext(ctx, query,
			row.Team, row.Date.UTC().Format(dateLayout), string(row.Situation),
			row.CF60, row.CA60, row.SF60, row.SA60, row.GF60, row.GA60,
			row.XGF60, row.XGA60, row.HDCF60, row.HDCA60, pdo,
			row.PPXGF60, row.PKXGA60, row.PenDrawn60, row.PenTaken60,
		); err != nil {
			return fmt.Errorf("upsert game log %s/%s: %w", row.Team, row.Date.Format(dateLayout), err)
		}
	}

	return tx.Commit()
}

// FetchGameLogs returns the 5v5 rate lines for the window, inclusive
// on both ends.
func (s *Store) FetchGameLogs(ctx context.Context, start, end time.Time) ([]gamelog.GameLog, error) {
	query := s.rebind(`SELECT
			team, date,
			cf60, ca60, sf60, sa60, gf60, ga60, xgf60, xga60,
			hdcf60, hdca60, pdo, pp_xgf60, pk_xga60, pen_drawn60, pen_taken60
		FROM game_logs
		WHERE situation = ? AND date >= ? AND date <= ?
		ORDER BY date, team`)

	rows, err := s.db.QueryContext(ctx, query,
		string(gamelog.Situation5v5),
		start.UTC().Format(dateLayout),
		end.UTC().Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch game logs: %w", err)
	}
	defer rows.Close()

	var out []gamelog.GameLog
	for rows.Next() {
		var (
			lg   gamelog.GameLog
			date string
			pdo  sql.NullFloat64
		)
		if err := rows.Scan(
			&lg.Team, &date,
			&lg.CF60, &lg.CA60, &lg.SF60, &lg.SA60, &lg.GF60, &lg.GA60,
			&lg.XGF60, &lg.XGA60, &lg.HDCF60, &lg.HDCA60, &pdo,
			&lg.PPXGF60, &lg.PKXGA60, &lg.PenDrawn60, &lg.PenTaken60,
		); err != nil {
			return nil, fmt.Errorf("scan game log: %w", err)
		}
		lg.Situation = gamelog.Situation5v5
		if lg.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parse game log date %q: %w", date, err)
		}
		if pdo.Valid {
			lg.PDO = pdo.Float64
			lg.HasPDO = true
		}
		out = append(out, lg)
	}
	return out, rows.Err()
}
