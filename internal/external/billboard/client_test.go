package billboard

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/hot100/pkg/config"
	"github.com/wonny/hot100/pkg/httputil"
	"github.com/wonny/hot100/pkg/logger"
)

type entry struct {
	title, artist, rank, peak, weeks, last string
}

func page(entries ...entry) string {
	var b strings.Builder
	b.WriteString(`<html><body><ol class="chart-list__elements">`)
	for _, e := range entries {
		fmt.Fprintf(&b, `<li class="chart-list__element display--flex">
  <button class="chart-element__wrapper">
    <span class="chart-element__rank flex--column">
      <span class="chart-element__rank__number">%s</span>
    </span>
    <span class="chart-element__information">
      <span class="chart-element__information__song text--truncate color--primary">%s</span>
      <span class="chart-element__information__artist text--truncate color--secondary">%s</span>
      <span class="chart-element__information__delta">
        <span class="chart-element__information__delta__text text--last">%s</span>
        <span class="chart-element__information__delta__text text--peak">%s</span>
        <span class="chart-element__information__delta__text text--week">%s</span>
      </span>
    </span>
  </button>
</li>`, e.rank, e.title, e.artist, e.last, e.peak, e.weeks)
	}
	b.WriteString(`</ol></body></html>`)
	return b.String()
}

func TestParseWeek(t *testing.T) {
	html := page(
		entry{"Blinding Lights", "The Weeknd", "1", "1 Peak Rank", "16 Weeks on Chart", "2 Last Week"},
		entry{"Toosie Slide", "Drake", "2", "1 Peak Rank", "1 Weeks on Chart", "- Last Week"},
	)

	records, err := ParseWeek([]byte(html))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Blinding Lights", records[0].Title)
	assert.Equal(t, "The Weeknd", records[0].Artist)
	assert.Equal(t, "1", records[0].Rank)
	assert.Equal(t, "1 Peak Rank", records[0].PeakPosition)
	assert.Equal(t, "16 Weeks on Chart", records[0].WeeksOnChart)
	assert.Equal(t, "2 Last Week", records[0].LastWeekRank)

	assert.Equal(t, "- Last Week", records[1].LastWeekRank)
}

func TestParseWeek_NoEntries(t *testing.T) {
	_, err := ParseWeek([]byte(`<html><body><p>Chart not found</p></body></html>`))
	assert.Error(t, err)
}

func TestParseWeek_CapsAt100(t *testing.T) {
	entries := make([]entry, 0, 105)
	for i := 1; i <= 105; i++ {
		entries = append(entries, entry{fmt.Sprintf("Song %d", i), "Artist", fmt.Sprint(i), "1", "1", "-"})
	}

	records, err := ParseWeek([]byte(page(entries...)))
	require.NoError(t, err)
	assert.Len(t, records, 100)
}

func TestClient_GetWeek(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(page(entry{"The Box", "Roddy Ricch", "1", "1", "13", "1"})))
	}))
	defer server.Close()

	cfg := &config.Config{HTTP: config.HTTPConfig{Timeout: 5 * time.Second}}
	client := NewClient(httputil.New(cfg, logger.NewNop()), logger.NewNop(), server.URL+"/")

	records, err := client.GetWeek(context.Background(), time.Date(2020, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "/charts/hot-100/2020-03-14", gotPath)
	require.Len(t, records, 1)
	assert.Equal(t, "The Box", records[0].Title)
}

func TestClient_GetWeek_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := &config.Config{HTTP: config.HTTPConfig{Timeout: 5 * time.Second}}
	client := NewClient(httputil.New(cfg, logger.NewNop()), logger.NewNop(), server.URL)

	_, err := client.GetWeek(context.Background(), time.Date(2020, 3, 14, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}

func TestWeekURL(t *testing.T) {
	c := NewClient(nil, logger.NewNop(), "https://www.billboard.com/")
	assert.Equal(t, "https://www.billboard.com/charts/hot-100/2021-01-02",
		c.WeekURL(time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)))
}
