// Package store is the SQL-backed home of game logs, special-teams
// lines, and the rating history. SQLite is the default; Postgres is a
// driver switch away for deployments that share the surrounding
// system's database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/telemetry"
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

const dateLayout = "2006-01-02"

// Store wraps the ratings database.
type Store struct {
	db     *sql.DB
	driver Driver
}

// Open connects, pings, and ensures the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*Store, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite"
		if dsn == "" {
			dsn = "file:ratings.db?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx"
		if dsn == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	s := &Store{db: db, driver: driver}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	telemetry.Infof("store: opened %s", driver)
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// rebind rewrites ?-placeholders to $n for Postgres. Queries are
// written once in SQLite style.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS game_logs (
			team        TEXT NOT NULL,
			date        TEXT NOT NULL,
			situation   TEXT NOT NULL,
			cf60        REAL NOT NULL DEFAULT 0,
			ca60        REAL NOT NULL DEFAULT 0,
			sf60        REAL NOT NULL DEFAULT 0,
			sa60        REAL NOT NULL DEFAULT 0,
			gf60        REAL NOT NULL DEFAULT 0,
			ga60        REAL NOT NULL DEFAULT 0,
			xgf60       REAL NOT NULL DEFAULT 0,
			xga60       REAL NOT NULL DEFAULT 0,
			hdcf60      REAL NOT NULL DEFAULT 0,
			hdca60      REAL NOT NULL DEFAULT 0,
			pdo         REAL,
			pp_xgf60    REAL NOT NULL DEFAULT 0,
			pk_xga60    REAL NOT NULL DEFAULT 0,
			pen_drawn60 REAL NOT NULL DEFAULT 0,
			pen_taken60 REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (team, date, situation)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_game_logs_date ON game_logs(date)`,
		`CREATE TABLE IF NOT EXISTS team_ratings (
			team          TEXT NOT NULL,
			date          TEXT NOT NULL,
			off_rating    REAL NOT NULL,
			def_rating    REAL NOT NULL,
			pace_rating   REAL NOT NULL,
			finishing     REAL NOT NULL,
			goaltending   REAL NOT NULL,
			danger        REAL NOT NULL,
			discipline    REAL NOT NULL,
			special       REAL NOT NULL,
			trend10       REAL NOT NULL,
			pp_tier       INTEGER NOT NULL,
			pk_tier       INTEGER NOT NULL,
			variance_flag INTEGER NOT NULL,
			games_played  INTEGER NOT NULL,
			PRIMARY KEY (team, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_team_ratings_date ON team_ratings(date)`,
		`CREATE TABLE IF NOT EXISTS special_teams (
			team            TEXT NOT NULL,
			date            TEXT NOT NULL,
			pp_pct          REAL,
			pk_pct          REAL,
			penalties_drawn INTEGER NOT NULL DEFAULT 0,
			penalties_taken INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (team, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_special_teams_date ON special_teams(date)`,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
