package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/hot100/internal/chart"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func song(title, artist string, rank, peak, weeks int) chart.SongEntry {
	return chart.SongEntry{Title: title, Artist: artist, Rank: rank, PeakPosition: peak, WeeksOnChart: weeks, LastWeekRank: chart.NotOnChart}
}

var (
	w1 = date(2020, 3, 7)
	w2 = date(2020, 3, 14)
	w3 = date(2020, 3, 21)
)

// threeWeeks is collected most recent first, like a built history
func threeWeeks() chart.History {
	return chart.HistoryFromWeeks([]chart.ChartWeek{
		{Date: w3, Songs: []chart.SongEntry{
			song("The Box", "Roddy Ricch", 1, 1, 15),
			song("Circles", "Post Malone", 2, 3, 28),
		}},
		{Date: w2, Songs: []chart.SongEntry{
			song("The Box", "Roddy Ricch", 1, 1, 14),
			song("Blinding Lights", "The Weeknd", 2, 1, 16),
			song("Circles", "Post Malone", 3, 3, 27),
		}},
		{Date: w1, Songs: []chart.SongEntry{
			song("The Box", "Roddy Ricch", 1, 1, 13),
			song("Blinding Lights", "The Weeknd", 2, 2, 15),
		}},
	})
}

func TestBestWeek_EndToEnd(t *testing.T) {
	got := BestWeek(threeWeeks())
	assert.Equal(t, w2, got.Week)
	assert.Equal(t, 2, got.NumberOnes)
}

func TestBestWeek_TieKeepsEarliestWeek(t *testing.T) {
	h := chart.HistoryFromWeeks([]chart.ChartWeek{
		{Date: w3, Songs: []chart.SongEntry{song("A", "x", 1, 1, 1), song("B", "y", 2, 1, 1)}},
		{Date: w2, Songs: []chart.SongEntry{song("A", "x", 1, 1, 1)}},
		{Date: w1, Songs: []chart.SongEntry{song("A", "x", 1, 1, 1), song("C", "z", 2, 1, 1)}},
	})

	got := BestWeek(h)
	assert.Equal(t, w1, got.Week)
	assert.Equal(t, 2, got.NumberOnes)
}

func TestBestWeek_NoNumberOnesPicksFirstWeek(t *testing.T) {
	h := chart.HistoryFromWeeks([]chart.ChartWeek{
		{Date: w2, Songs: []chart.SongEntry{song("A", "x", 1, 2, 1)}},
		{Date: w1, Songs: []chart.SongEntry{song("A", "x", 1, 3, 1)}},
	})

	got := BestWeek(h)
	assert.Equal(t, w1, got.Week)
	assert.Equal(t, 0, got.NumberOnes)
}

func TestBestWeek_Empty(t *testing.T) {
	assert.Equal(t, BestWeekResult{}, BestWeek(chart.History{}))
}

func TestBestSong(t *testing.T) {
	got := BestSong(threeWeeks(), w2.AddDate(0, 0, 3))
	assert.Equal(t, "Blinding Lights", got.Title, "16 weeks beats 14")
}

func TestBestSong_TieGoesToLaterSong(t *testing.T) {
	h := chart.HistoryFromWeeks([]chart.ChartWeek{
		{Date: w2, Songs: []chart.SongEntry{
			song("First", "x", 1, 1, 20),
			song("Second", "y", 2, 1, 20),
			song("Longer but not #1", "z", 3, 2, 40),
		}},
	})

	got := BestSong(h, w2)
	assert.Equal(t, "Second", got.Title)
}

func TestBestSong_OnlyLooksAtReferenceWeek(t *testing.T) {
	got := BestSong(threeWeeks(), w3)
	assert.Equal(t, "The Box", got.Title, "Blinding Lights is not on the w3 chart")
}

func TestBestSong_NoQualifyingSong(t *testing.T) {
	h := chart.HistoryFromWeeks([]chart.ChartWeek{
		{Date: w2, Songs: []chart.SongEntry{song("A", "x", 1, 2, 9)}},
	})

	got := BestSong(h, w2)
	assert.True(t, got.IsEmpty())
	assert.Equal(t, chart.SongEntry{}, got)

	assert.True(t, BestSong(h, w3).IsEmpty(), "week missing from history")
}

func TestBestArtist(t *testing.T) {
	weeks := []chart.ChartWeek{
		{Date: w3, Songs: []chart.SongEntry{
			song("a", "Drake", 1, 1, 1), song("b", "Drake", 2, 2, 1), song("c", "Bieber", 3, 3, 1),
		}},
		{Date: w2, Songs: []chart.SongEntry{
			song("a", "Bieber", 1, 1, 1), song("b", "Bieber", 2, 2, 1), song("c", "Drake", 3, 3, 1),
		}},
		{Date: w1, Songs: []chart.SongEntry{
			song("a", "Drake", 1, 1, 1), song("b", "Drake", 2, 2, 1), song("c", "Drake", 3, 3, 1),
		}},
	}

	got := BestArtist(weeks)
	assert.Equal(t, "Drake", got.Artist)
	assert.Equal(t, 2, got.WeeksWon)

	require.Len(t, got.Weekly, 3)
	assert.Equal(t, WeeklyChampion{Week: w3, WeekOfYear: 12, Artist: "Drake", Songs: 2}, got.Weekly[0])
	assert.Equal(t, WeeklyChampion{Week: w2, WeekOfYear: 11, Artist: "Bieber", Songs: 2}, got.Weekly[1])
	assert.Equal(t, WeeklyChampion{Week: w1, WeekOfYear: 10, Artist: "Drake", Songs: 3}, got.Weekly[2])
}

func TestBestArtist_TiesGoToFirstEncountered(t *testing.T) {
	weeks := []chart.ChartWeek{
		// one song each: first listed artist wins the week
		{Date: w2, Songs: []chart.SongEntry{song("a", "Dua Lipa", 1, 1, 1), song("b", "Doja Cat", 2, 2, 1)}},
		{Date: w1, Songs: []chart.SongEntry{song("a", "Doja Cat", 1, 1, 1), song("b", "Dua Lipa", 2, 2, 1)}},
	}

	got := BestArtist(weeks)
	assert.Equal(t, "Dua Lipa", got.Weekly[0].Artist)
	assert.Equal(t, "Doja Cat", got.Weekly[1].Artist)
	assert.Equal(t, "Dua Lipa", got.Artist, "one week each: first champion wins")
	assert.Equal(t, 1, got.WeeksWon)
}

func TestBestArtist_SkipsEmptyWeeks(t *testing.T) {
	weeks := []chart.ChartWeek{
		{Date: w3},
		{Date: w2, Songs: []chart.SongEntry{song("a", "Drake", 1, 1, 1)}},
	}

	got := BestArtist(weeks)
	require.Len(t, got.Weekly, 1)
	assert.Equal(t, w2, got.Weekly[0].Week)
	assert.Equal(t, "Drake", got.Artist)
}

func TestBestArtist_NoWeeks(t *testing.T) {
	got := BestArtist(nil)
	assert.Equal(t, "", got.Artist)
	assert.Equal(t, 0, got.WeeksWon)
	assert.Empty(t, got.Weekly)
}

func TestNumberOneTrajectories_IncludesAllWeeksOfQualifyingSong(t *testing.T) {
	weeks := make([]chart.ChartWeek, 0, 5)
	for i := 4; i >= 0; i-- {
		d := w1.AddDate(0, 0, 7*i)
		peak := 5
		if i >= 2 {
			peak = 1 // reaches #1 in week 3
		}
		weeks = append(weeks, chart.ChartWeek{Date: d, Songs: []chart.SongEntry{
			song("Climber", "x", 5-i, peak, i+1),
			song("Never", "y", 10, 8, i+1),
		}})
	}

	got := NumberOneTrajectories(chart.HistoryFromWeeks(weeks))
	require.Len(t, got, 1)

	points := got[chart.SongKey{Title: "Climber", Artist: "x"}]
	require.Len(t, points, 5)
	for i, p := range points {
		assert.Equal(t, w1.AddDate(0, 0, 7*i), p.Week, "ascending weeks")
		assert.Equal(t, 5-i, p.Rank)
	}
}

func TestNumberOneTrajectories_IdentityIsTitleAndArtist(t *testing.T) {
	h := chart.HistoryFromWeeks([]chart.ChartWeek{
		{Date: w2, Songs: []chart.SongEntry{song("Stay", "Rihanna", 1, 1, 3), song("Stay", "The Kid LAROI", 7, 7, 1)}},
		{Date: w1, Songs: []chart.SongEntry{song("Stay", "Rihanna", 2, 2, 2)}},
	})

	got := NumberOneTrajectories(h)
	require.Len(t, got, 1)
	assert.Equal(t, []RankPoint{{Week: w1, Rank: 2}, {Week: w2, Rank: 1}}, got[chart.SongKey{Title: "Stay", Artist: "Rihanna"}])
}

func TestTrajectories_Keys(t *testing.T) {
	h := chart.HistoryFromWeeks([]chart.ChartWeek{
		{Date: w2, Songs: []chart.SongEntry{song("Late", "x", 1, 1, 1), song("B", "y", 2, 1, 2)}},
		{Date: w1, Songs: []chart.SongEntry{song("B", "y", 3, 3, 1), song("A", "z", 4, 1, 9)}},
	})

	// first week, then title
	assert.Equal(t, []chart.SongKey{
		{Title: "A", Artist: "z"},
		{Title: "B", Artist: "y"},
		{Title: "Late", Artist: "x"},
	}, NumberOneTrajectories(h).Keys())
}

func TestAnalysesDoNotMutateHistory(t *testing.T) {
	h := threeWeeks()
	before := h.Rows()

	BestWeek(h)
	BestSong(h, w2)
	BestArtist(h.Weeks())
	NumberOneTrajectories(h)

	assert.Equal(t, before, h.Rows())
}

func TestTally_Mode(t *testing.T) {
	tl := newTally()
	for _, k := range []string{"b", "a", "a", "b", "c"} {
		tl.add(k)
	}
	key, count := tl.mode()
	assert.Equal(t, "b", key)
	assert.Equal(t, 2, count)

	key, count = newTally().mode()
	assert.Equal(t, "", key)
	assert.Equal(t, 0, count)
}
