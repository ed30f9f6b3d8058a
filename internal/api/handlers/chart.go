package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/hot100/internal/analysis"
	"github.com/wonny/hot100/internal/chart"
	"github.com/wonny/hot100/pkg/logger"
)

// ChartService is what the chart endpoints need from the analysis layer
type ChartService interface {
	Week(ctx context.Context, date time.Time) (chart.ChartWeek, error)
	History(ctx context.Context, from, to time.Time) (chart.History, error)
	BestWeek(ctx context.Context, referenceDate, today time.Time) (analysis.BestWeekReport, error)
	BestSong(ctx context.Context, referenceDate, today time.Time) (analysis.BestSongReport, error)
	BestArtist(ctx context.Context, referenceDate, today time.Time) (analysis.ArtistSummary, error)
	NumberOnes(ctx context.Context, from, to time.Time) (analysis.Trajectories, error)
}

// ChartHandler handles chart and analysis endpoints
// ⭐ SSOT: 차트 API 핸들러는 이 구조체에서만
type ChartHandler struct {
	service ChartService
	logger  *logger.Logger
	now     func() time.Time
}

// NewChartHandler creates a new chart handler
func NewChartHandler(service ChartService, log *logger.Logger, now func() time.Time) *ChartHandler {
	if now == nil {
		now = time.Now
	}
	return &ChartHandler{
		service: service,
		logger:  log,
		now:     now,
	}
}

// HistoryResponse is a range of chart weeks, most recent first
type HistoryResponse struct {
	From  time.Time         `json:"from"`
	To    time.Time         `json:"to"`
	Weeks []chart.ChartWeek `json:"weeks"`
}

// TrajectoryResponse is one song's rank per week
type TrajectoryResponse struct {
	Title  string               `json:"title"`
	Artist string               `json:"artist"`
	Points []analysis.RankPoint `json:"points"`
}

// GetWeek returns one chart week
// GET /api/charts/{date}
func (h *ChartHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	date, err := chart.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	week, err := h.service.Week(r.Context(), date)
	if err != nil {
		h.fail(w, err, "Failed to fetch chart week")
		return
	}

	respondJSON(w, http.StatusOK, week)
}

// GetHistory returns every chart week in a range
// GET /api/history?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ChartHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.rangeParams(w, r)
	if !ok {
		return
	}

	history, err := h.service.History(r.Context(), from, to)
	if err != nil {
		h.fail(w, err, "Failed to build history")
		return
	}

	respondJSON(w, http.StatusOK, HistoryResponse{From: from, To: to, Weeks: history.Weeks()})
}

// GetBestWeek returns the week with the most #1-peaked songs
// GET /api/analysis/best-week?year=2020
func (h *ChartHandler) GetBestWeek(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.yearParam(w, r)
	if !ok {
		return
	}

	report, err := h.service.BestWeek(r.Context(), ref, h.now())
	if err != nil {
		h.fail(w, err, "Failed to compute best week")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetBestSong returns the longest-charting #1-peaked song of the year
// GET /api/analysis/best-song?year=2020
func (h *ChartHandler) GetBestSong(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.yearParam(w, r)
	if !ok {
		return
	}

	report, err := h.service.BestSong(r.Context(), ref, h.now())
	if err != nil {
		h.fail(w, err, "Failed to compute best song")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetBestArtist returns the artist who led the most weeks of the year
// GET /api/analysis/best-artist?year=2020
func (h *ChartHandler) GetBestArtist(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.yearParam(w, r)
	if !ok {
		return
	}

	summary, err := h.service.BestArtist(r.Context(), ref, h.now())
	if err != nil {
		h.fail(w, err, "Failed to compute best artist")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetNumberOnes returns the rank trajectories of every #1-peaked song in a range
// GET /api/analysis/number-ones?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ChartHandler) GetNumberOnes(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.rangeParams(w, r)
	if !ok {
		return
	}

	traj, err := h.service.NumberOnes(r.Context(), from, to)
	if err != nil {
		h.fail(w, err, "Failed to compute number-one trajectories")
		return
	}

	resp := make([]TrajectoryResponse, 0, len(traj))
	for _, key := range traj.Keys() {
		resp = append(resp, TrajectoryResponse{Title: key.Title, Artist: key.Artist, Points: traj[key]})
	}

	respondJSON(w, http.StatusOK, resp)
}

// yearParam reads ?year=, defaulting to the current year
func (h *ChartHandler) yearParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	year := h.now().Year()
	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 1958 {
			respondError(w, http.StatusBadRequest, "Invalid year")
			return time.Time{}, false
		}
		year = y
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
}

// rangeParams reads ?from=&to=; "to" defaults to today
func (h *ChartHandler) rangeParams(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	q := r.URL.Query()

	from, err := chart.ParseDate(q.Get("from"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}

	to := chart.Day(h.now())
	if s := q.Get("to"); s != "" {
		to, err = chart.ParseDate(s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
	}

	return from, to, true
}

// fail maps error kinds onto status codes
func (h *ChartHandler) fail(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, chart.ErrInvalidRange):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, chart.ErrFetchFailure):
		h.logger.WithError(err).Error(message)
		respondError(w, http.StatusBadGateway, message)
	case errors.Is(err, context.Canceled):
		respondError(w, http.StatusServiceUnavailable, "Request cancelled")
	default:
		h.logger.WithError(err).Error(message)
		respondError(w, http.StatusInternalServerError, message)
	}
}
