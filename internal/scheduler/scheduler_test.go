package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/hot100/internal/chart"
	"github.com/wonny/hot100/pkg/logger"
)

// countingJob fails its first failures runs
type countingJob struct {
	mu       sync.Mutex
	runs     int
	failures int
}

func (j *countingJob) Name() string     { return "counting" }
func (j *countingJob) Schedule() string { return "0 0 6 * * 0" }

func (j *countingJob) Run(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs++
	if j.runs <= j.failures {
		return errors.New("upstream unavailable")
	}
	return nil
}

func TestScheduler_AddJob(t *testing.T) {
	s := New(logger.NewNop())

	require.NoError(t, s.AddJob(&countingJob{}))
	assert.Error(t, s.AddJob(&countingJob{}), "duplicate name")
	assert.Equal(t, []string{"counting"}, s.GetAllJobs())

	next, err := s.NextRun("counting")
	require.NoError(t, err)
	assert.True(t, next.IsZero(), "no next run before Start")

	require.NoError(t, s.RemoveJob("counting"))
	assert.Error(t, s.RemoveJob("counting"))
	assert.Empty(t, s.GetAllJobs())
}

type badScheduleJob struct{ countingJob }

func (j *badScheduleJob) Schedule() string { return "every sunday" }

func TestScheduler_AddJob_InvalidSchedule(t *testing.T) {
	s := New(logger.NewNop())
	assert.Error(t, s.AddJob(&badScheduleJob{}))
}

func TestScheduler_RunNow_Retries(t *testing.T) {
	s := New(logger.NewNop()).WithRetry(2, time.Millisecond)
	job := &countingJob{failures: 2}
	require.NoError(t, s.AddJob(job))

	result, err := s.RunNow(context.Background(), "counting")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Attempts)

	job.failures = 10
	result, err = s.RunNow(context.Background(), "counting")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "upstream unavailable", result.Error)

	stats := s.GetJobStats()["counting"]
	assert.Equal(t, 2, stats.TotalRuns)
	assert.Equal(t, 1, stats.FailureCount)
	assert.InDelta(t, 0.5, stats.SuccessRate, 1e-9)
	assert.Equal(t, "upstream unavailable", stats.LastError)

	_, err = s.RunNow(context.Background(), "missing")
	assert.Error(t, err)
}

func TestJobHistory_KeepsLast100(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{Attempts: i, Success: i%2 == 0})
	}

	assert.Len(t, h.Results, 100)
	assert.Equal(t, 50, h.Results[0].Attempts)

	latest := h.Latest(3)
	require.Len(t, latest, 3)
	assert.Equal(t, 149, latest[2].Attempts)
	assert.Empty(t, (&JobHistory{}).Latest(5))
	assert.InDelta(t, 0.5, h.SuccessRate(), 1e-9)
}

type fakeHistorySource struct {
	from, to time.Time
	err      error
}

func (f *fakeHistorySource) History(ctx context.Context, from, to time.Time) (chart.History, error) {
	f.from, f.to = from, to
	if f.err != nil {
		return chart.History{}, f.err
	}
	return chart.HistoryFromWeeks([]chart.ChartWeek{{Date: chart.Align(to), Songs: []chart.SongEntry{
		{Title: "Drivers License", Artist: "Olivia Rodrigo", Rank: 1, PeakPosition: 1, WeeksOnChart: 1, LastWeekRank: chart.NotOnChart},
	}}}), nil
}

type fakeSaver struct {
	saved []chart.History
}

func (f *fakeSaver) SaveHistory(ctx context.Context, h chart.History) (uuid.UUID, error) {
	f.saved = append(f.saved, h)
	return uuid.New(), nil
}

func TestWeeklyExportJob_Run(t *testing.T) {
	dir := t.TempDir()
	src := &fakeHistorySource{}
	saver := &fakeSaver{}
	today := time.Date(2021, 1, 20, 9, 0, 0, 0, time.UTC)

	job := NewWeeklyExportJob(src, saver, dir, "0 0 6 * * 0", logger.NewNop()).
		WithClock(func() time.Time { return today })
	require.NoError(t, job.Run(context.Background()))

	week := time.Date(2021, 1, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, week, src.from)
	assert.Equal(t, week, src.to)

	data, err := os.ReadFile(filepath.Join(dir, "hot100_2021-01-16.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2021-01-16,Drivers License,Olivia Rodrigo,1,101,1,1")

	require.Len(t, saver.saved, 1)
	assert.Equal(t, 1, saver.saved[0].Len())
}

func TestWeeklyExportJob_CSVOnly(t *testing.T) {
	dir := t.TempDir()
	job := NewWeeklyExportJob(&fakeHistorySource{}, nil, dir, "0 0 6 * * 0", logger.NewNop()).
		WithClock(func() time.Time { return time.Date(2021, 1, 16, 0, 0, 0, 0, time.UTC) })

	require.NoError(t, job.Run(context.Background()))
	assert.FileExists(t, filepath.Join(dir, "hot100_2021-01-16.csv"))
}

func TestWeeklyExportJob_SourceFailure(t *testing.T) {
	src := &fakeHistorySource{err: chart.ErrFetchFailure}
	job := NewWeeklyExportJob(src, nil, t.TempDir(), "0 0 6 * * 0", logger.NewNop())

	err := job.Run(context.Background())
	assert.ErrorIs(t, err, chart.ErrFetchFailure)
}
