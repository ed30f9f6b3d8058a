package chart

import "time"

// PublicationDay is the weekday a new chart week is dated on
const PublicationDay = time.Saturday

// DateFormat is the chart's date format (URL path and exports)
const DateFormat = "2006-01-02"

// Week is the length of one chart cycle
const Week = 7 * 24 * time.Hour

// Align maps any date to the nearest preceding (or same) publication date.
// The result is a UTC midnight date, never after d, and less than 7 days before it.
// ⭐ SSOT: 차트 날짜 정렬은 이 함수에서만
func Align(d time.Time) time.Time {
	day := Day(d)
	shift := (int(day.Weekday()) - int(PublicationDay) + 7) % 7
	return day.AddDate(0, 0, -shift)
}

// Day truncates t to midnight UTC of its calendar date
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}

// FormatDate formats a date the way the chart source addresses weeks
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}
