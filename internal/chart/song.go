package chart

import "time"

// NotOnChart is the LastWeekRank of a song that was absent the previous week
// (new entry or re-entry).
const NotOnChart = 101

// SongEntry is one song's state in exactly one chart week
// ⭐ SSOT: 차트 곡 정보는 이 구조체로만 전달
type SongEntry struct {
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	Rank         int    `json:"rank"`
	PeakPosition int    `json:"peak_pos"`
	WeeksOnChart int    `json:"weeks_on_chart"`
	LastWeekRank int    `json:"last_week"`
}

// Key returns the song identity used to follow a song across weeks
func (s SongEntry) Key() SongKey {
	return SongKey{Title: s.Title, Artist: s.Artist}
}

// IsNumberOne reports whether the song has ever reached #1 as of this week
func (s SongEntry) IsNumberOne() bool {
	return s.PeakPosition == 1
}

// IsEmpty reports whether s is the empty result value
func (s SongEntry) IsEmpty() bool {
	return s == SongEntry{}
}

// Movement describes a song's week-over-week rank change
type Movement string

const (
	MovementNew    Movement = "new"
	MovementUp     Movement = "up"
	MovementDown   Movement = "down"
	MovementSteady Movement = "steady"
)

// Movement classifies the change from LastWeekRank to Rank.
// A lower rank number is a better position.
func (s SongEntry) Movement() Movement {
	switch {
	case s.LastWeekRank == NotOnChart:
		return MovementNew
	case s.Rank < s.LastWeekRank:
		return MovementUp
	case s.Rank > s.LastWeekRank:
		return MovementDown
	default:
		return MovementSteady
	}
}

// SongKey identifies a song by (title, artist). Case-sensitive, not normalized.
type SongKey struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// RawRecord is one unparsed listing row as delivered by a chart source.
// Numeric fields keep the source text (e.g. "12 Wks on Chart").
type RawRecord struct {
	Title        string
	Artist       string
	Rank         string
	PeakPosition string
	WeeksOnChart string
	LastWeekRank string
}

// ChartWeek is the published listing for one canonical chart date
type ChartWeek struct {
	Date  time.Time   `json:"date"`
	Songs []SongEntry `json:"songs"`
}
