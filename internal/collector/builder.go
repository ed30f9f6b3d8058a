package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/hot100/internal/chart"
	"github.com/wonny/hot100/pkg/logger"
)

// WeekFetcher retrieves one chart week
type WeekFetcher interface {
	Fetch(ctx context.Context, date time.Time) (chart.ChartWeek, error)
}

// Builder walks a date range one chart week at a time and assembles a History
type Builder struct {
	fetcher WeekFetcher
	logger  *logger.Logger
}

// NewBuilder creates a new history Builder
func NewBuilder(fetcher WeekFetcher, log *logger.Logger) *Builder {
	return &Builder{
		fetcher: fetcher,
		logger:  log,
	}
}

// Build collects every chart week from align(end) back to align(start).
// Rows come most recent week first, each week in published rank order.
// Any week failing to fetch aborts the build.
// ⭐ SSOT: 기간별 차트 히스토리 생성은 여기서만
func (b *Builder) Build(ctx context.Context, start, end time.Time) (chart.History, error) {
	weeks, err := b.BuildWeeks(ctx, start, end)
	if err != nil {
		return chart.History{}, err
	}
	return chart.HistoryFromWeeks(weeks), nil
}

// BuildWeeks is Build without flattening: one ChartWeek per step, most recent first
func (b *Builder) BuildWeeks(ctx context.Context, start, end time.Time) ([]chart.ChartWeek, error) {
	start, end = chart.Day(start), chart.Day(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s is before %s", chart.ErrInvalidRange, chart.FormatDate(end), chart.FormatDate(start))
	}

	first := chart.Align(start)
	var weeks []chart.ChartWeek

	for cursor := end; !chart.Align(cursor).Before(first); cursor = cursor.AddDate(0, 0, -7) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		week, err := b.fetcher.Fetch(ctx, chart.Align(cursor))
		if err != nil {
			return nil, fmt.Errorf("build history %s..%s: %w", chart.FormatDate(start), chart.FormatDate(end), err)
		}
		weeks = append(weeks, week)
	}

	b.logger.WithFields(map[string]interface{}{
		"start": chart.FormatDate(start),
		"end":   chart.FormatDate(end),
		"weeks": len(weeks),
	}).Info("Built chart history")

	return weeks, nil
}

// BuildSingleYear builds the history of referenceDate's year, up to today
// when the year is still running. today is supplied by the caller.
func (b *Builder) BuildSingleYear(ctx context.Context, referenceDate, today time.Time) (chart.History, error) {
	start, end := YearRange(referenceDate, today)
	return b.Build(ctx, start, end)
}

// YearRange returns Jan 1 and min(Dec 31, today) of referenceDate's year
func YearRange(referenceDate, today time.Time) (time.Time, time.Time) {
	year := referenceDate.Year()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	if t := chart.Day(today); t.Before(end) {
		end = t
	}
	return start, end
}
