// Package engine drives the daily rating pipeline: per-team decay,
// league reduction, standardization, composite scoring, finalization,
// and the carry-forward merge, once per calendar date in strict
// chronological order.
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/config"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/composite"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/ewma"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/finalize"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/gamelog"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/leaguestats"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/zscore"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/telemetry"
)

// Engine wires the pipeline to its collaborators.
type Engine struct {
	logs     GameLogSource
	special  SpecialTeamsSource
	history  RatingHistory
	sink     RatingSink
	resolver TeamResolver

	params      config.EngineParams
	seasonStart time.Time
	workers     int
}

func New(
	logs GameLogSource,
	special SpecialTeamsSource,
	history RatingHistory,
	sink RatingSink,
	resolver TeamResolver,
	params config.EngineParams,
	seasonStart time.Time,
	workers int,
) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		logs:        logs,
		special:     special,
		history:     history,
		sink:        sink,
		resolver:    resolver,
		params:      params,
		seasonStart: seasonStart,
		workers:     workers,
	}
}

// RunSummary reports what a run produced.
type RunSummary struct {
	RunID   string
	Start   time.Time
	End     time.Time
	Dates   int
	Fresh   int
	Carried int
	Rows    int
}

// ResolveRange widens a single requested date to a full-season
// backfill when the ratings store is completely empty. A partially
// populated store keeps the single-day default; callers wanting a
// multi-day catch-up must pass an explicit range to Run.
func (e *Engine) ResolveRange(ctx context.Context, requested time.Time) (start, end time.Time, err error) {
	requested = midnight(requested)
	populated, err := e.history.HasRatings(ctx)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("backfill detect: %w", err)
	}
	if !populated {
		return midnight(e.seasonStart), requested, nil
	}
	return requested, requested, nil
}

// Run processes every date in [start, end] in order. A failed date
// aborts the remainder of the range; rows already upserted for earlier
// dates stay persisted.
func (e *Engine) Run(ctx context.Context, start, end time.Time) (RunSummary, error) {
	summary := RunSummary{
		RunID: uuid.NewString(),
		Start: midnight(start),
		End:   midnight(end),
	}
	telemetry.Metrics.RunsStarted.Inc()
	telemetry.Metrics.ActiveRuns.Inc()
	defer telemetry.Metrics.ActiveRuns.Dec()

	telemetry.Infof("engine: run %s  %s .. %s",
		summary.RunID, summary.Start.Format(dateLayout), summary.End.Format(dateLayout))

	for date := summary.Start; !date.After(summary.End); date = date.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			telemetry.Metrics.RunsFailed.Inc()
			return summary, fmt.Errorf("run %s cancelled at %s: %w",
				summary.RunID, date.Format(dateLayout), err)
		}

		began := time.Now()
		fresh, carried, err := e.runDate(ctx, date)
		if err != nil {
			telemetry.Metrics.RunsFailed.Inc()
			return summary, fmt.Errorf("run %s date %s: %w",
				summary.RunID, date.Format(dateLayout), err)
		}

		summary.Dates++
		summary.Fresh += fresh
		summary.Carried += carried
		summary.Rows += fresh + carried

		telemetry.Metrics.DatesProcessed.Inc()
		telemetry.Metrics.DateLatency.Record(time.Since(began))
		telemetry.Debugf("engine: %s  fresh=%d carried=%d (%s)",
			date.Format(dateLayout), fresh, carried, time.Since(began))
	}

	telemetry.Infof("engine: run %s done  dates=%d fresh=%d carried=%d",
		summary.RunID, summary.Dates, summary.Fresh, summary.Carried)
	return summary, nil
}

const dateLayout = "2006-01-02"

func (e *Engine) runDate(ctx context.Context, date time.Time) (fresh, carried int, err error) {
	windowStart := date.AddDate(0, 0, -e.params.LogLookbackDays)

	began := time.Now()
	logs, err := e.logs.FetchGameLogs(ctx, windowStart, date)
	if err != nil {
		telemetry.Metrics.FetchErrors.Inc()
		return 0, 0, fmt.Errorf("fetch game logs: %w", err)
	}
	telemetry.Metrics.FetchLatency.Record(time.Since(began))

	e.canonicalizeLogs(ctx, logs)

	// Phase 1: index + decay, independent per team.
	metrics := e.decayPhase(ctx, date, gamelog.GroupByTeam(logs))

	// Phase 2: league reduction barrier.
	dist := leaguestats.Describe(date, metrics)

	// Prior-state snapshot, taken before any new row for this date.
	trendSince := date.AddDate(0, 0, -e.params.TrendWindowDays)
	priorRows, err := e.history.FetchLatest(ctx, date, trendSince)
	if err != nil {
		telemetry.Metrics.FetchErrors.Inc()
		return 0, 0, fmt.Errorf("fetch prior ratings: %w", err)
	}
	prior := buildPriorState(priorRows, e.params.TrendGames)

	// Tier cutoffs come from the current date's special-teams pools
	// and apply to fresh and carried rows alike.
	ppCut, pkCut, latestST, err := e.tierInputs(ctx, windowStart, date)
	if err != nil {
		return 0, 0, err
	}

	var rows []finalize.Rating
	freshTeams := make(map[string]bool)

	if len(metrics) > 0 {
		// Phase 3: standardize + composite per team, a second
		// reduction over the raw scores, then finalize per team.
		raws := e.compositePhase(ctx, metrics, dist)
		rawDist := composite.Describe(date, raws)

		for _, raw := range raws {
			r := finalize.Finalize(raw, rawDist, prior.OffHistory[raw.Team], e.params)
			st := latestST[r.Team]
			r.PPTier = finalize.Tier(st.PPPct, ppCut)
			r.PKTier = finalize.Tier(st.PKPct, pkCut)
			rows = append(rows, r)
			freshTeams[r.Team] = true
		}
	}

	// Carry-forward: idle teams keep their last rating verbatim, with
	// trend and tiers recomputed against today's context.
	for team, last := range prior.Latest {
		if freshTeams[team] {
			continue
		}
		r := last
		r.Date = date
		r.Trend10 = finalize.Trend(r.Off, prior.OffHistory[team], e.params.TrendGames)
		st := latestST[team]
		r.PPTier = finalize.Tier(st.PPPct, ppCut)
		r.PKTier = finalize.Tier(st.PKPct, pkCut)
		rows = append(rows, r)
	}

	if len(rows) == 0 {
		return 0, 0, nil
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Team < rows[j].Team })

	began = time.Now()
	if err := e.sink.UpsertRatings(ctx, rows); err != nil {
		telemetry.Metrics.UpsertErrors.Inc()
		return 0, 0, fmt.Errorf("upsert ratings: %w", err)
	}
	telemetry.Metrics.UpsertLatency.Record(time.Since(began))
	telemetry.Metrics.RowsUpserted.Add(int64(len(rows)))

	fresh = len(freshTeams)
	carried = len(rows) - fresh
	telemetry.Metrics.TeamsRated.Add(int64(fresh))
	telemetry.Metrics.CarryForwards.Add(int64(carried))
	return fresh, carried, nil
}

// decayPhase fans out per team and collects the non-nil decayed
// vectors for the date.
func (e *Engine) decayPhase(ctx context.Context, date time.Time, byTeam map[string][]gamelog.GameLog) []ewma.Metrics {
	cfg := ewma.Config{
		LookbackGames: e.params.LookbackGames,
		HalfLifeGames: e.params.HalfLifeGames,
		PDOBaseline:   e.params.PDOBaseline,
	}

	var (
		mu      sync.Mutex
		metrics []ewma.Metrics
	)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, logs := range byTeam {
		logs := logs
		g.Go(func() error {
			games := gamelog.IndexTeamGames(logs)
			if m := ewma.Compute(games, date, cfg); m != nil {
				mu.Lock()
				metrics = append(metrics, *m)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; absence of data is not one

	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Team < metrics[j].Team })
	return metrics
}

// compositePhase standardizes and scores each team against the league
// distribution, independent per team.
func (e *Engine) compositePhase(ctx context.Context, metrics []ewma.Metrics, dist leaguestats.Distribution) []composite.Raw {
	raws := make([]composite.Raw, len(metrics))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, m := range metrics {
		i, m := i, m
		g.Go(func() error {
			tz := zscore.Score(m, dist, e.params.ShrinkageGames)
			raws[i] = composite.Score(tz, e.params.Composite)
			return nil
		})
	}
	_ = g.Wait()

	return raws
}

// tierInputs fetches the special-teams window and reduces it to the
// most recent line per team plus league-wide percentile cutoffs.
func (e *Engine) tierInputs(ctx context.Context, start, date time.Time) (ppCut, pkCut finalize.Cutoffs, latest map[string]SpecialTeams, err error) {
	rows, err := e.special.FetchSpecialTeams(ctx, start, date)
	if err != nil {
		telemetry.Metrics.FetchErrors.Inc()
		return finalize.Cutoffs{}, finalize.Cutoffs{}, nil, fmt.Errorf("fetch special teams: %w", err)
	}

	latest = make(map[string]SpecialTeams)
	for _, row := range rows {
		if row.Date.After(date) {
			continue
		}
		if abbrev, ok := e.resolver.Abbrev(ctx, row.Team); ok {
			row.Team = abbrev
		}
		cur, ok := latest[row.Team]
		if !ok || row.Date.After(cur.Date) {
			latest[row.Team] = row
		}
	}

	var ppPool, pkPool []float64
	for _, row := range latest {
		if row.PPPct != nil {
			ppPool = append(ppPool, *row.PPPct)
		}
		if row.PKPct != nil {
			pkPool = append(pkPool, *row.PKPct)
		}
	}
	return finalize.CutoffsFor(ppPool), finalize.CutoffsFor(pkPool), latest, nil
}

func (e *Engine) canonicalizeLogs(ctx context.Context, logs []gamelog.GameLog) {
	for i := range logs {
		if abbrev, ok := e.resolver.Abbrev(ctx, logs[i].Team); ok {
			logs[i].Team = abbrev
		}
	}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
