package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"stocklens-api/pkg/quotes"
)

// GetDailyHistory fetches daily bars covering [start, end] inclusive.
// Rows missing any of open/high/low/close are dropped; timestamps are
// truncated to calendar dates at UTC midnight. A window without trading
// data returns (nil, nil).
func (c *Client) GetDailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]quotes.RawBar, error) {
	if symbol == "" {
		return nil, fmt.Errorf("yahoo: symbol must not be empty")
	}
	if end.Before(start) {
		return nil, fmt.Errorf("yahoo: end %s precedes start %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	period1 := dateUTC(start)
	// period2 is exclusive upstream; push it one day past the requested end.
	period2 := dateUTC(end).AddDate(0, 0, 1)

	query := url.Values{}
	query.Set("period1", strconv.FormatInt(period1.Unix(), 10))
	query.Set("period2", strconv.FormatInt(period2.Unix(), 10))
	query.Set("interval", "1d")
	query.Set("events", "div,split")
	query.Set("includeAdjustedClose", "true")

	var response chartResponse
	if err := c.doGet(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), query, &response); err != nil {
		return nil, err
	}
	if response.Chart.Error != nil {
		if response.Chart.Error.Code == "Not Found" {
			return nil, ErrSymbolNotFound
		}
		return nil, fmt.Errorf("yahoo: chart error %s: %s", response.Chart.Error.Code, response.Chart.Error.Description)
	}
	if len(response.Chart.Result) == 0 {
		return nil, nil
	}

	result := response.Chart.Result[0]
	if len(result.Timestamps) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]

	var adjClose []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adjClose = result.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]quotes.RawBar, 0, len(result.Timestamps))
	for i, ts := range result.Timestamps {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}
		bar := quotes.RawBar{
			Date:  dateUTC(time.Unix(ts, 0).UTC()),
			Open:  *quote.Open[i],
			High:  *quote.High[i],
			Low:   *quote.Low[i],
			Close: *quote.Close[i],
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		if i < len(adjClose) && adjClose[i] != nil {
			bar.AdjClose = adjClose[i]
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, nil
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// dateUTC truncates t to its calendar date at UTC midnight.
func dateUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
