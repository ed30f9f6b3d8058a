package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/hot100/internal/chart"
	"github.com/wonny/hot100/internal/collector"
	"github.com/wonny/hot100/pkg/logger"
)

// HistoryBuilder assembles a History over a date range
type HistoryBuilder interface {
	Build(ctx context.Context, start, end time.Time) (chart.History, error)
}

// Service answers the retrospective chart questions by collecting the weeks
// each question needs and running the matching reduction.
// "today" is always a parameter so results are reproducible.
// ⭐ SSOT: 차트 분석 진입점은 여기서만
type Service struct {
	builder HistoryBuilder
	logger  *logger.Logger
}

// NewService creates a new analysis Service
func NewService(builder HistoryBuilder, log *logger.Logger) *Service {
	return &Service{
		builder: builder,
		logger:  log,
	}
}

// BestWeekReport is the best week of a year together with its listing
type BestWeekReport struct {
	Year int `json:"year"`
	BestWeekResult
	Chart chart.ChartWeek `json:"chart"`
}

// BestSongReport is the best song of a year and the week it was judged on
type BestSongReport struct {
	Year int             `json:"year"`
	Week time.Time       `json:"week"`
	Song chart.SongEntry `json:"song"`
}

// Week returns the chart week dated on or before date
func (s *Service) Week(ctx context.Context, date time.Time) (chart.ChartWeek, error) {
	h, err := s.builder.Build(ctx, date, date)
	if err != nil {
		return chart.ChartWeek{}, err
	}

	weeks := h.Weeks()
	if len(weeks) == 0 {
		return chart.ChartWeek{Date: chart.Align(date)}, nil
	}
	return weeks[0], nil
}

// History returns every chart week between from and to
func (s *Service) History(ctx context.Context, from, to time.Time) (chart.History, error) {
	return s.builder.Build(ctx, from, to)
}

// BestWeek returns the week of referenceDate's year (year to date when the
// year is still running) with the most songs that have peaked at #1.
func (s *Service) BestWeek(ctx context.Context, referenceDate, today time.Time) (BestWeekReport, error) {
	start, end := collector.YearRange(referenceDate, today)

	h, err := s.builder.Build(ctx, start, end)
	if err != nil {
		return BestWeekReport{}, fmt.Errorf("best week %d: %w", referenceDate.Year(), err)
	}

	best := BestWeek(h)
	report := BestWeekReport{
		Year:           referenceDate.Year(),
		BestWeekResult: best,
		Chart:          chart.ChartWeek{Date: best.Week, Songs: h.Week(best.Week)},
	}

	s.logger.WithFields(map[string]interface{}{
		"year":        report.Year,
		"week":        chart.FormatDate(best.Week),
		"number_ones": best.NumberOnes,
	}).Info("Best week computed")

	return report, nil
}

// BestSong returns the longest-charting song that has peaked at #1, judged on
// the last chart week of referenceDate's year (or today's week).
func (s *Service) BestSong(ctx context.Context, referenceDate, today time.Time) (BestSongReport, error) {
	_, end := collector.YearRange(referenceDate, today)

	h, err := s.builder.Build(ctx, end, end)
	if err != nil {
		return BestSongReport{}, fmt.Errorf("best song %d: %w", referenceDate.Year(), err)
	}

	report := BestSongReport{
		Year: referenceDate.Year(),
		Week: chart.Align(end),
		Song: BestSong(h, end),
	}

	s.logger.WithFields(map[string]interface{}{
		"year":  report.Year,
		"week":  chart.FormatDate(report.Week),
		"title": report.Song.Title,
	}).Info("Best song computed")

	return report, nil
}

// BestArtist returns the artist who led the most weeks of referenceDate's year
func (s *Service) BestArtist(ctx context.Context, referenceDate, today time.Time) (ArtistSummary, error) {
	start, end := collector.YearRange(referenceDate, today)

	h, err := s.builder.Build(ctx, start, end)
	if err != nil {
		return ArtistSummary{}, fmt.Errorf("best artist %d: %w", referenceDate.Year(), err)
	}

	summary := BestArtist(h.Weeks())

	s.logger.WithFields(map[string]interface{}{
		"year":      referenceDate.Year(),
		"artist":    summary.Artist,
		"weeks_won": summary.WeeksWon,
	}).Info("Best artist computed")

	return summary, nil
}

// NumberOnes returns the trajectories of every song at #1 between from and to
func (s *Service) NumberOnes(ctx context.Context, from, to time.Time) (Trajectories, error) {
	h, err := s.builder.Build(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("number ones: %w", err)
	}
	return NumberOneTrajectories(h), nil
}
