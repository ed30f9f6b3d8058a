package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wonny/hot100/internal/analysis"
	"github.com/wonny/hot100/internal/chart"
)

// HistoryColumns is the header of a history export
var HistoryColumns = []string{"week", "title", "artist", "rank", "last_week", "peak_pos", "weeks_on_chart"}

// WriteHistoryCSV writes one line per history row, in history order
func WriteHistoryCSV(w io.Writer, history chart.History) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(HistoryColumns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, r := range history.Rows() {
		row := []string{
			chart.FormatDate(r.Week),
			r.Title,
			r.Artist,
			strconv.Itoa(r.Rank),
			strconv.Itoa(r.LastWeekRank),
			strconv.Itoa(r.PeakPosition),
			strconv.Itoa(r.WeeksOnChart),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTrajectoriesCSV writes (title, artist, week, rank) lines, songs in Keys order
func WriteTrajectoriesCSV(w io.Writer, t analysis.Trajectories) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"title", "artist", "week", "rank"}); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, key := range t.Keys() {
		for _, p := range t[key] {
			if err := cw.Write([]string{key.Title, key.Artist, chart.FormatDate(p.Week), strconv.Itoa(p.Rank)}); err != nil {
				return fmt.Errorf("csv: write row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteChampionsCSV writes the per-week champions of an artist summary
func WriteChampionsCSV(w io.Writer, s analysis.ArtistSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"week", "week_of_year", "artist", "songs"}); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, c := range s.Weekly {
		if err := cw.Write([]string{chart.FormatDate(c.Week), strconv.Itoa(c.WeekOfYear), c.Artist, strconv.Itoa(c.Songs)}); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile creates (or truncates) path, creating parent directories, and
// fills it with write
func WriteFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}

	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// HistoryFileName names a history export after its week range
func HistoryFileName(history chart.History) string {
	weeks := history.Weeks()
	if len(weeks) == 0 {
		return "hot100_empty.csv"
	}
	newest := weeks[0].Date
	oldest := weeks[len(weeks)-1].Date
	if newest.Equal(oldest) {
		return fmt.Sprintf("hot100_%s.csv", chart.FormatDate(newest))
	}
	return fmt.Sprintf("hot100_%s_%s.csv", chart.FormatDate(oldest), chart.FormatDate(newest))
}

// CSVFile writes the history export to path
func CSVFile(path string, history chart.History) error {
	return WriteFile(path, func(w io.Writer) error {
		return WriteHistoryCSV(w, history)
	})
}
