package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Trigger HTTP server
	HTTPHost string
	HTTPPort int

	// Ratings store. Driver is "sqlite" or "postgres".
	DBDriver string
	DBDSN    string

	// NHL stats REST API (team directory, special-teams summary)
	NHLAPIBase    string
	NHLAPIEnabled bool

	// Season start, used when the ratings store is empty and the run
	// widens to a full-season backfill.
	SeasonStart time.Time

	// Engine parameter overrides (yaml). Empty means compiled-in defaults.
	ParamsPath string

	// Per-date fan-out width for the per-team phases.
	Workers int

	// Telemetry
	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPHost: envStr("RATINGS_HTTP_HOST", "0.0.0.0"),
		HTTPPort: envInt("RATINGS_HTTP_PORT", 8090),

		DBDriver: envStr("RATINGS_DB_DRIVER", "sqlite"),
		DBDSN:    envStr("RATINGS_DB_DSN", ""),

		NHLAPIBase:    envStr("NHL_API_BASE", "https://api.nhle.com/stats/rest"),
		NHLAPIEnabled: envBool("NHL_API_ENABLED", false),

		SeasonStart: envDate("SEASON_START", defaultSeasonStart()),

		ParamsPath: envStr("RATINGS_PARAMS_PATH", ""),

		Workers: envInt("RATINGS_WORKERS", 8),

		LogLevel: envStr("LOG_LEVEL", "info"),
	}
}

// defaultSeasonStart is October 1 of the season's opening year: the
// current year when we are past October, else the previous year.
func defaultSeasonStart() time.Time {
	now := time.Now().UTC()
	year := now.Year()
	if now.Month() < time.October {
		year--
	}
	return time.Date(year, time.October, 1, 0, 0, 0, 0, time.UTC)
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDate(key string, def time.Time) time.Time {
	if v := os.Getenv(key); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t.UTC()
		}
	}
	return def
}
