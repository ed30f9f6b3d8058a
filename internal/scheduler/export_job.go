package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/hot100/internal/chart"
	"github.com/wonny/hot100/internal/export"
	"github.com/wonny/hot100/pkg/logger"
)

// HistorySource builds chart history for a range
type HistorySource interface {
	History(ctx context.Context, from, to time.Time) (chart.History, error)
}

// HistorySaver persists chart history
type HistorySaver interface {
	SaveHistory(ctx context.Context, history chart.History) (uuid.UUID, error)
}

// WeeklyExportJob collects the latest published chart week, writes it to the
// export directory as CSV and, when a saver is set, stores it in the database.
type WeeklyExportJob struct {
	source   HistorySource
	saver    HistorySaver // nil = CSV only
	dir      string
	schedule string
	now      func() time.Time
	logger   *logger.Logger
}

// NewWeeklyExportJob creates the export job. saver may be nil.
func NewWeeklyExportJob(source HistorySource, saver HistorySaver, dir, schedule string, log *logger.Logger) *WeeklyExportJob {
	return &WeeklyExportJob{
		source:   source,
		saver:    saver,
		dir:      dir,
		schedule: schedule,
		now:      time.Now,
		logger:   log,
	}
}

// WithClock replaces the job's notion of today
func (j *WeeklyExportJob) WithClock(now func() time.Time) *WeeklyExportJob {
	j.now = now
	return j
}

// Name returns the job name
func (j *WeeklyExportJob) Name() string { return "weekly-export" }

// Schedule returns the cron expression
func (j *WeeklyExportJob) Schedule() string { return j.schedule }

// Run exports the chart week dated on or before today
func (j *WeeklyExportJob) Run(ctx context.Context) error {
	week := chart.Align(j.now())

	history, err := j.source.History(ctx, week, week)
	if err != nil {
		return fmt.Errorf("weekly export %s: %w", chart.FormatDate(week), err)
	}

	path := filepath.Join(j.dir, export.HistoryFileName(history))
	if err := export.CSVFile(path, history); err != nil {
		return fmt.Errorf("weekly export %s: %w", chart.FormatDate(week), err)
	}

	fields := map[string]interface{}{
		"week": chart.FormatDate(week),
		"rows": history.Len(),
		"file": path,
	}

	if j.saver != nil {
		id, err := j.saver.SaveHistory(ctx, history)
		if err != nil {
			return fmt.Errorf("weekly export %s: save: %w", chart.FormatDate(week), err)
		}
		fields["export_id"] = id.String()
	}

	j.logger.WithFields(fields).Info("Weekly chart exported")
	return nil
}
