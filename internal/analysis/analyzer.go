package analysis

import (
	"sort"
	"time"

	"github.com/wonny/hot100/internal/chart"
)

// BestWeekResult is the week holding the most songs that have peaked at #1
type BestWeekResult struct {
	Week       time.Time `json:"week"`
	NumberOnes int       `json:"number_ones"`
}

// BestWeek scans the history's weeks in chronological order and returns the
// week with the most rows at PeakPosition 1. A later week must strictly beat
// the running maximum, so ties keep the earliest week.
// Returns the zero result for an empty history.
func BestWeek(history chart.History) BestWeekResult {
	weeks := history.Weeks()
	sort.SliceStable(weeks, func(i, j int) bool {
		return weeks[i].Date.Before(weeks[j].Date)
	})

	var best BestWeekResult
	found := false
	for _, w := range weeks {
		count := 0
		for _, s := range w.Songs {
			if s.IsNumberOne() {
				count++
			}
		}
		if !found || count > best.NumberOnes {
			best = BestWeekResult{Week: w.Date, NumberOnes: count}
			found = true
		}
	}
	return best
}

// BestSong looks only at the chart week of referenceDate and returns, among
// songs that have peaked at #1, the one with the most weeks on the chart.
// On equal WeeksOnChart the later song in rank order wins.
// Returns the empty SongEntry when no song in that week has peaked at #1.
func BestSong(history chart.History, referenceDate time.Time) chart.SongEntry {
	var best chart.SongEntry
	longest := 0
	for _, s := range history.Week(chart.Align(referenceDate)) {
		if s.IsNumberOne() && s.WeeksOnChart >= longest {
			longest = s.WeeksOnChart
			best = s
		}
	}
	return best
}

// WeeklyChampion is the artist with the most songs on one week's chart
type WeeklyChampion struct {
	Week       time.Time `json:"week"`
	WeekOfYear int       `json:"week_of_year"`
	Artist     string    `json:"artist"`
	Songs      int       `json:"songs"`
}

// ArtistSummary is the artist who was weekly champion most often
type ArtistSummary struct {
	Artist   string           `json:"artist"`
	WeeksWon int              `json:"weeks_won"`
	Weekly   []WeeklyChampion `json:"weekly"`
}

// BestArtist finds each week's champion (the mode of the artist column) and
// then the artist who was champion in the most weeks. Both modes break ties
// by first appearance in the given order. Weeks without songs are skipped.
func BestArtist(weeks []chart.ChartWeek) ArtistSummary {
	summary := ArtistSummary{Weekly: make([]WeeklyChampion, 0, len(weeks))}
	champions := newTally()

	for _, w := range weeks {
		if len(w.Songs) == 0 {
			continue
		}

		artists := newTally()
		for _, s := range w.Songs {
			artists.add(s.Artist)
		}
		artist, songs := artists.mode()

		_, weekOfYear := w.Date.ISOWeek()
		summary.Weekly = append(summary.Weekly, WeeklyChampion{
			Week:       w.Date,
			WeekOfYear: weekOfYear,
			Artist:     artist,
			Songs:      songs,
		})
		champions.add(artist)
	}

	summary.Artist, summary.WeeksWon = champions.mode()
	return summary
}

// RankPoint is a song's rank in one week
type RankPoint struct {
	Week time.Time `json:"week"`
	Rank int       `json:"rank"`
}

// Trajectories maps each song that reached #1 to its ranks, oldest week first
type Trajectories map[chart.SongKey][]RankPoint

// NumberOneTrajectories returns the full in-range trajectory of every song
// with at least one row at PeakPosition 1. All of a qualifying song's rows are
// included, not only its #1 weeks.
func NumberOneTrajectories(history chart.History) Trajectories {
	rows := history.Rows()

	qualified := make(map[chart.SongKey]bool)
	for _, r := range rows {
		if r.IsNumberOne() {
			qualified[r.Key()] = true
		}
	}

	out := make(Trajectories, len(qualified))
	for _, r := range rows {
		key := r.Key()
		if qualified[key] {
			out[key] = append(out[key], RankPoint{Week: r.Week, Rank: r.Rank})
		}
	}

	for _, points := range out {
		sort.SliceStable(points, func(i, j int) bool {
			return points[i].Week.Before(points[j].Week)
		})
	}
	return out
}

// Keys returns the songs ordered by their first week, then title and artist
func (t Trajectories) Keys() []chart.SongKey {
	keys := make([]chart.SongKey, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		a, b := t[keys[i]], t[keys[j]]
		if !a[0].Week.Equal(b[0].Week) {
			return a[0].Week.Before(b[0].Week)
		}
		if keys[i].Title != keys[j].Title {
			return keys[i].Title < keys[j].Title
		}
		return keys[i].Artist < keys[j].Artist
	})
	return keys
}
