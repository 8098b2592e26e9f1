// Package trigger exposes the HTTP surface that kicks off rating runs
// and serves the persisted rows back.
//
// Routes:
//
//	POST /v1/ratings/run     -> start a run (optional date or range)
//	GET  /v1/ratings/{date}  -> persisted rows for a date
//	GET  /health             -> 200 OK
//	GET  /metrics            -> telemetry snapshot
package trigger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/engine"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/finalize"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/telemetry"
)

const dateLayout = "2006-01-02"

// RatingReader serves persisted rows for a date.
// Satisfied by *store.Store.
type RatingReader interface {
	FetchDate(ctx context.Context, date time.Time) ([]finalize.Rating, error)
}

type Handler struct {
	engine  *engine.Engine
	reader  RatingReader
	running atomic.Bool
}

func NewHandler(eng *engine.Engine, reader RatingReader) *Handler {
	return &Handler{engine: eng, reader: reader}
}

// Routes builds the chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/ratings/run", h.handleRun)
	r.Get("/v1/ratings/{date}", h.handleDate)
	r.Get("/health", h.handleHealth)
	r.Get("/metrics", h.handleMetrics)
	return r
}

type runRequest struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type runResponse struct {
	Status string `json:"status"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if r.Body != nil {
		// An empty body means "today"; a malformed one is a caller bug.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
	}

	start, end, err := h.resolveRange(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.running.CompareAndSwap(false, true) {
		writeError(w, http.StatusConflict, "a run is already in progress")
		return
	}

	go func() {
		defer h.running.Store(false)
		// The run outlives the request; it is only bounded by the
		// process lifetime.
		if _, err := h.engine.Run(context.Background(), start, end); err != nil {
			telemetry.Errorf("trigger: run failed: %v", err)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(runResponse{
		Status: "accepted",
		Start:  start.Format(dateLayout),
		End:    end.Format(dateLayout),
	})
}

// resolveRange turns the request into a concrete date range. An
// explicit start/end pair wins; otherwise the single date (default
// today) goes through the engine's backfill detection.
func (h *Handler) resolveRange(ctx context.Context, req runRequest) (start, end time.Time, err error) {
	if req.Start != "" || req.End != "" {
		if start, err = time.Parse(dateLayout, req.Start); err != nil {
			return time.Time{}, time.Time{}, errBadDate("start", req.Start)
		}
		if end, err = time.Parse(dateLayout, req.End); err != nil {
			return time.Time{}, time.Time{}, errBadDate("end", req.End)
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, errRange
		}
		return start, end, nil
	}

	target := time.Now().UTC()
	if req.Date != "" {
		if target, err = time.Parse(dateLayout, req.Date); err != nil {
			return time.Time{}, time.Time{}, errBadDate("date", req.Date)
		}
	}
	return h.engine.ResolveRange(ctx, target)
}

func (h *Handler) handleDate(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(dateLayout, chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	rows, err := h.reader.FetchDate(r.Context(), date)
	if err != nil {
		telemetry.Errorf("trigger: fetch %s: %v", date.Format(dateLayout), err)
		writeError(w, http.StatusInternalServerError, "fetch failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toWire(rows))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok","service":"ratings"}`))
}

func (h *Handler) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(telemetry.Snapshot())
}

type wireRating struct {
	Team         string  `json:"team"`
	Date         string  `json:"date"`
	Off          float64 `json:"off_rating"`
	Def          float64 `json:"def_rating"`
	Pace         float64 `json:"pace_rating"`
	Finishing    float64 `json:"finishing_rating"`
	Goaltending  float64 `json:"goaltending_rating"`
	Danger       float64 `json:"danger_rating"`
	Discipline   float64 `json:"discipline_rating"`
	Special      float64 `json:"special_rating"`
	Trend10      float64 `json:"trend10"`
	PPTier       int     `json:"pp_tier"`
	PKTier       int     `json:"pk_tier"`
	VarianceFlag int     `json:"variance_flag"`
	GamesPlayed  int     `json:"games_played"`
}

func toWire(rows []finalize.Rating) []wireRating {
	out := make([]wireRating, len(rows))
	for i, r := range rows {
		out[i] = wireRating{
			Team:         r.Team,
			Date:         r.Date.Format(dateLayout),
			Off:          r.Off,
			Def:          r.Def,
			Pace:         r.Pace,
			Finishing:    r.Finishing,
			Goaltending:  r.Goaltending,
			Danger:       r.Danger,
			Discipline:   r.Discipline,
			Special:      r.Special,
			Trend10:      r.Trend10,
			PPTier:       r.PPTier,
			PKTier:       r.PKTier,
			VarianceFlag: r.VarianceFlag,
			GamesPlayed:  r.GamesPlayed,
		}
	}
	return out
}

var errRange = errors.New("end must not be before start")

func errBadDate(field, value string) error {
	return fmt.Errorf("%s %q must be YYYY-MM-DD", field, value)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
