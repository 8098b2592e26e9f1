// Command backfill recomputes ratings for an explicit date range.
// Unlike the trigger endpoint, it never widens the range on its own:
// what you pass is what runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/adapters/outbound/nhl_http"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/config"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/engine"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/teams"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/store"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/telemetry"
)

const dateLayout = "2006-01-02"

func main() {
	var (
		startFlag = flag.String("start", "", "first date to process (YYYY-MM-DD)")
		endFlag   = flag.String("end", "", "last date to process (YYYY-MM-DD, default start)")
	)
	flag.Parse()

	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))

	if *startFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: backfill -start YYYY-MM-DD [-end YYYY-MM-DD]")
		os.Exit(2)
	}
	start, err := time.Parse(dateLayout, *startFlag)
	if err != nil {
		telemetry.Errorf("bad -start: %v", err)
		os.Exit(2)
	}
	end := start
	if *endFlag != "" {
		if end, err = time.Parse(dateLayout, *endFlag); err != nil {
			telemetry.Errorf("bad -end: %v", err)
			os.Exit(2)
		}
	}
	if end.Before(start) {
		telemetry.Errorf("-end is before -start")
		os.Exit(2)
	}

	params, err := config.LoadEngineParams(cfg.ParamsPath)
	if err != nil {
		telemetry.Errorf("engine params: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := store.Open(ctx, store.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		telemetry.Errorf("store: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	var directory *teams.Directory
	var special engine.SpecialTeamsSource = db
	if cfg.NHLAPIEnabled {
		nhl := nhl_http.NewClient(cfg.NHLAPIBase)
		directory = teams.NewDirectory(nhl)
		special = nhl
	} else {
		directory = teams.NewDirectory(nil)
	}

	eng := engine.New(db, special, db, db, directory, params, cfg.SeasonStart, cfg.Workers)

	summary, err := eng.Run(ctx, start, end)
	if err != nil {
		telemetry.Errorf("backfill: %v", err)
		os.Exit(1)
	}

	telemetry.Plainf("backfill %s: %s..%s  dates=%d fresh=%d carried=%d rows=%d",
		summary.RunID,
		summary.Start.Format(dateLayout), summary.End.Format(dateLayout),
		summary.Dates, summary.Fresh, summary.Carried, summary.Rows)
}
