package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/adapters/inbound/trigger"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/adapters/outbound/nhl_http"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/config"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/engine"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/teams"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/store"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))
	telemetry.Infof("Starting ratings service")

	params, err := config.LoadEngineParams(cfg.ParamsPath)
	if err != nil {
		telemetry.Errorf("Engine params: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Store ──────────────────────────────────────────────────
	db, err := store.Open(ctx, store.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		telemetry.Errorf("Store: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// ── NHL API + team directory ───────────────────────────────
	var nhl *nhl_http.Client
	var directory *teams.Directory
	if cfg.NHLAPIEnabled {
		nhl = nhl_http.NewClient(cfg.NHLAPIBase)
		directory = teams.NewDirectory(nhl)
	} else {
		directory = teams.NewDirectory(nil)
	}

	// ── Engine ─────────────────────────────────────────────────
	var special engine.SpecialTeamsSource = db
	if nhl != nil {
		special = nhl
	}
	eng := engine.New(db, special, db, db, directory, params, cfg.SeasonStart, cfg.Workers)

	// ── Trigger HTTP server ────────────────────────────────────
	handler := trigger.NewHandler(eng, db)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTPHost, cfg.HTTPPort),
		Handler: handler.Routes(),
	}

	go func() {
		telemetry.Infof("Trigger listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			telemetry.Errorf("HTTP server: %v", err)
			cancel()
		}
	}()

	// ── Shutdown ───────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	telemetry.Infof("Shutting down ratings service...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)

	telemetry.Infof("Shutdown complete  dates=%d rows=%d fetch_errors=%d",
		telemetry.Metrics.DatesProcessed.Value(),
		telemetry.Metrics.RowsUpserted.Value(),
		telemetry.Metrics.FetchErrors.Value(),
	)
}
