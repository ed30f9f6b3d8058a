package chart

import "time"

// Row is one song in one chart week
type Row struct {
	Week time.Time `json:"week"`
	SongEntry
}

// History is an ordered, immutable table of chart rows, one per song per week.
// Rows keep the order they were collected in (most recent week first, each week
// in published rank order). No key is enforced.
// ⭐ SSOT: 분석 입력 테이블은 이 타입으로만
type History struct {
	rows []Row
}

// NewHistory builds a History from rows. The slice is copied.
func NewHistory(rows []Row) History {
	owned := make([]Row, len(rows))
	copy(owned, rows)
	return History{rows: owned}
}

// HistoryFromWeeks flattens weeks, in the given order, into a History
func HistoryFromWeeks(weeks []ChartWeek) History {
	n := 0
	for _, w := range weeks {
		n += len(w.Songs)
	}

	rows := make([]Row, 0, n)
	for _, w := range weeks {
		for _, s := range w.Songs {
			rows = append(rows, Row{Week: w.Date, SongEntry: s})
		}
	}
	return History{rows: rows}
}

// Len returns the number of rows
func (h History) Len() int {
	return len(h.rows)
}

// Rows returns a copy of the rows in history order
func (h History) Rows() []Row {
	out := make([]Row, len(h.rows))
	copy(out, h.rows)
	return out
}

// Weeks partitions the rows by week, preserving the order in which each week
// first appears and the row order within each week.
func (h History) Weeks() []ChartWeek {
	var weeks []ChartWeek
	index := make(map[time.Time]int)

	for _, r := range h.rows {
		i, ok := index[r.Week]
		if !ok {
			i = len(weeks)
			index[r.Week] = i
			weeks = append(weeks, ChartWeek{Date: r.Week})
		}
		weeks[i].Songs = append(weeks[i].Songs, r.SongEntry)
	}
	return weeks
}

// Week returns the songs of the week dated date, in history order.
// Returns nil when the week is not part of the history.
func (h History) Week(date time.Time) []SongEntry {
	var songs []SongEntry
	for _, r := range h.rows {
		if r.Week.Equal(date) {
			songs = append(songs, r.SongEntry)
		}
	}
	return songs
}
