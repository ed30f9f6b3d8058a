package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAlign(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"saturday is unchanged", date(2020, 3, 14), date(2020, 3, 14)},
		{"sunday goes back one day", date(2020, 3, 15), date(2020, 3, 14)},
		{"friday goes back six days", date(2020, 3, 20), date(2020, 3, 14)},
		{"wednesday", date(2020, 3, 18), date(2020, 3, 14)},
		{"crosses year boundary", date(2025, 1, 1), date(2024, 12, 28)},
		{"crosses month boundary", date(2024, 3, 1), date(2024, 2, 24)},
		{"time of day is dropped", time.Date(2020, 3, 14, 23, 59, 0, 0, time.UTC), date(2020, 3, 14)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Align(tt.in))
		})
	}
}

func TestAlign_Properties(t *testing.T) {
	start := date(2019, 12, 1)
	for i := 0; i < 400; i++ {
		d := start.AddDate(0, 0, i)
		got := Align(d)

		assert.Equal(t, PublicationDay, got.Weekday(), "date %s", FormatDate(d))
		assert.False(t, got.After(d), "aligned date after input for %s", FormatDate(d))
		assert.Less(t, d.Sub(got), Week, "aligned date too far back for %s", FormatDate(d))
		assert.Equal(t, got, Align(got), "not idempotent for %s", FormatDate(d))
	}
}

func TestAlign_KeepsCalendarDateOfOtherZones(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	d := time.Date(2020, 3, 15, 1, 0, 0, 0, loc) // Sunday locally, Saturday in UTC
	assert.Equal(t, date(2020, 3, 14), Align(d))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2021-07-10")
	require.NoError(t, err)
	assert.Equal(t, date(2021, 7, 10), got)
	assert.Equal(t, "2021-07-10", FormatDate(got))

	_, err = ParseDate("07/10/2021")
	assert.Error(t, err)
}
