package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/hot100/internal/chart"
	"github.com/wonny/hot100/pkg/logger"
)

// Source delivers the raw listing of one chart week.
// Implemented by internal/external/billboard.
type Source interface {
	GetWeek(ctx context.Context, date time.Time) ([]chart.RawRecord, error)
}

// Fetcher turns a Source's raw records into a ChartWeek.
// No caching: every call goes to the source.
type Fetcher struct {
	source Source
	logger *logger.Logger
}

// NewFetcher creates a new Fetcher
func NewFetcher(source Source, log *logger.Logger) *Fetcher {
	return &Fetcher{
		source: source,
		logger: log,
	}
}

// Fetch retrieves the chart week dated on (or before) date.
// A source error or an unparseable required field fails the whole week.
// ⭐ SSOT: 원본 레코드 → SongEntry 변환은 여기서만
func (f *Fetcher) Fetch(ctx context.Context, date time.Time) (chart.ChartWeek, error) {
	week := chart.Align(date)
	weekStr := chart.FormatDate(week)

	records, err := f.source.GetWeek(ctx, week)
	if err != nil {
		f.logger.WithError(err).WithField("week", weekStr).Error("Chart source failed")
		return chart.ChartWeek{}, fmt.Errorf("%w: week %s: %w", chart.ErrFetchFailure, weekStr, err)
	}

	songs := make([]chart.SongEntry, 0, len(records))
	for i, rec := range records {
		song, err := parseRecord(rec)
		if err != nil {
			f.logger.WithError(err).WithFields(map[string]interface{}{
				"week":  weekStr,
				"index": i,
			}).Error("Unparseable chart record")
			return chart.ChartWeek{}, fmt.Errorf("%w: week %s record %d: %w", chart.ErrFetchFailure, weekStr, i, err)
		}
		songs = append(songs, song)
	}

	f.logger.WithFields(map[string]interface{}{
		"week":  weekStr,
		"count": len(songs),
	}).Debug("Fetched chart week")

	return chart.ChartWeek{Date: week, Songs: songs}, nil
}

// parseRecord maps a raw record into a SongEntry.
// Only LastWeekRank tolerates bad input: it falls back to chart.NotOnChart.
func parseRecord(rec chart.RawRecord) (chart.SongEntry, error) {
	rank, err := parseField("rank", rec.Rank)
	if err != nil {
		return chart.SongEntry{}, err
	}
	peak, err := parseField("peak position", rec.PeakPosition)
	if err != nil {
		return chart.SongEntry{}, err
	}
	weeks, err := parseField("weeks on chart", rec.WeeksOnChart)
	if err != nil {
		return chart.SongEntry{}, err
	}

	return chart.SongEntry{
		Title:        rec.Title,
		Artist:       rec.Artist,
		Rank:         rank,
		PeakPosition: peak,
		WeeksOnChart: weeks,
		LastWeekRank: parseLastWeek(rec.LastWeekRank),
	}, nil
}

// parseField reads the leading integer token of a field ("12 Wks on Chart" -> 12)
func parseField(name, raw string) (int, error) {
	n, ok := leadingInt(raw)
	if !ok {
		return 0, fmt.Errorf("%w: %s %q", chart.ErrFieldParse, name, raw)
	}
	return n, nil
}

// parseLastWeek returns chart.NotOnChart for the "-" marker or any non-integer token
func parseLastWeek(raw string) int {
	n, ok := leadingInt(raw)
	if !ok {
		return chart.NotOnChart
	}
	return n
}

func leadingInt(raw string) (int, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return n, true
}
