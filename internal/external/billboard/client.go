package billboard

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/hot100/internal/chart"
	"github.com/wonny/hot100/pkg/httputil"
	"github.com/wonny/hot100/pkg/logger"
)

// chartPath is the Hot 100 path; weeks are addressed as <chartPath>/YYYY-MM-DD
const chartPath = "/charts/hot-100"

// Listing markup
const (
	itemSelector     = "li.chart-list__element"
	titleSelector    = "span.chart-element__information__song"
	artistSelector   = "span.chart-element__information__artist"
	rankSelector     = "span.chart-element__rank__number"
	peakSelector     = "span.chart-element__information__delta__text.text--peak"
	weeksSelector    = "span.chart-element__information__delta__text.text--week"
	lastWeekSelector = "span.chart-element__information__delta__text.text--last"
)

// Client fetches Hot 100 weeks from billboard.com
// ⭐ SSOT: 차트 원본 페이지 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new chart source client
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// WeekURL returns the page URL of the chart week dated date
func (c *Client) WeekURL(date time.Time) string {
	return fmt.Sprintf("%s%s/%s", c.baseURL, chartPath, chart.FormatDate(date))
}

// GetWeek fetches and parses the listing of one chart week.
// Returns up to 100 raw records in published order.
func (c *Client) GetWeek(ctx context.Context, date time.Time) ([]chart.RawRecord, error) {
	url := c.WeekURL(date)

	body, err := c.httpClient.GetBody(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}

	records, err := ParseWeek(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"week":  chart.FormatDate(date),
		"count": len(records),
	}).Debug("Fetched chart page")

	return records, nil
}

// ParseWeek extracts the raw records of a chart page.
// A page without any listing item is an error.
func ParseWeek(html []byte) ([]chart.RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}

	items := doc.Find(itemSelector)
	if items.Length() == 0 {
		return nil, fmt.Errorf("no chart entries found")
	}

	records := make([]chart.RawRecord, 0, items.Length())
	items.Each(func(i int, item *goquery.Selection) {
		if i >= 100 {
			return
		}
		records = append(records, chart.RawRecord{
			Title:        spanText(item, titleSelector),
			Artist:       spanText(item, artistSelector),
			Rank:         spanText(item, rankSelector),
			PeakPosition: spanText(item, peakSelector),
			WeeksOnChart: spanText(item, weeksSelector),
			LastWeekRank: spanText(item, lastWeekSelector),
		})
	})

	return records, nil
}

func spanText(item *goquery.Selection, selector string) string {
	return strings.TrimSpace(item.Find(selector).First().Text())
}
