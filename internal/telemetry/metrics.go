package telemetry

import (
	"sync"
	"sync/atomic"
	"time"
)

type Counter struct {
	val atomic.Int64
}

func (c *Counter) Inc()         { c.val.Add(1) }
func (c *Counter) Add(n int64)  { c.val.Add(n) }
func (c *Counter) Value() int64 { return c.val.Load() }

type Gauge struct {
	val atomic.Int64
}

func (g *Gauge) Set(v int64)  { g.val.Store(v) }
func (g *Gauge) Inc()         { g.val.Add(1) }
func (g *Gauge) Dec()         { g.val.Add(-1) }
func (g *Gauge) Value() int64 { return g.val.Load() }

type LatencyTracker struct {
	mu      sync.Mutex
	samples []time.Duration
	maxKeep int
}

func NewLatencyTracker(maxKeep int) *LatencyTracker {
	return &LatencyTracker{maxKeep: maxKeep}
}

func (lt *LatencyTracker) Record(d time.Duration) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	lt.samples = append(lt.samples, d)
	if len(lt.samples) > lt.maxKeep {
		lt.samples = lt.samples[len(lt.samples)-lt.maxKeep:]
	}
}

func (lt *LatencyTracker) P50() time.Duration { return lt.percentile(0.50) }
func (lt *LatencyTracker) P99() time.Duration { return lt.percentile(0.99) }

func (lt *LatencyTracker) percentile(p float64) time.Duration {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	if len(lt.samples) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(lt.samples))
	copy(sorted, lt.samples)
	// insertion sort; the sample buffer stays small
	for i := 1; i < len(sorted); i++ {
		key := sorted[i]
		j := i - 1
		for j >= 0 && sorted[j] > key {
			sorted[j+1] = sorted[j]
			j--
		}
		sorted[j+1] = key
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}

// Metrics is the global metrics registry.
var Metrics = struct {
	DatesProcessed Counter
	TeamsRated     Counter
	CarryForwards  Counter
	RowsUpserted   Counter
	FetchErrors    Counter
	UpsertErrors   Counter
	RunsStarted    Counter
	RunsFailed     Counter
	ActiveRuns     Gauge
	DateLatency    *LatencyTracker
	UpsertLatency  *LatencyTracker
	FetchLatency   *LatencyTracker
}{
	DateLatency:   NewLatencyTracker(1000),
	UpsertLatency: NewLatencyTracker(1000),
	FetchLatency:  NewLatencyTracker(1000),
}

// Snapshot returns a flat view of the registry for the /metrics endpoint.
func Snapshot() map[string]int64 {
	return map[string]int64{
		"dates_processed":    Metrics.DatesProcessed.Value(),
		"teams_rated":        Metrics.TeamsRated.Value(),
		"carry_forwards":     Metrics.CarryForwards.Value(),
		"rows_upserted":      Metrics.RowsUpserted.Value(),
		"fetch_errors":       Metrics.FetchErrors.Value(),
		"upsert_errors":      Metrics.UpsertErrors.Value(),
		"runs_started":       Metrics.RunsStarted.Value(),
		"runs_failed":        Metrics.RunsFailed.Value(),
		"active_runs":        Metrics.ActiveRuns.Value(),
		"date_latency_p50":   Metrics.DateLatency.P50().Milliseconds(),
		"date_latency_p99":   Metrics.DateLatency.P99().Milliseconds(),
		"upsert_latency_p99": Metrics.UpsertLatency.P99().Milliseconds(),
	}
}
