package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const chartPayload = `{
  "chart": {
    "result": [{
      "timestamp": [1704153600, 1704240000, 1704326400],
      "indicators": {
        "quote": [{
          "open":   [185.0, 186.5, null],
          "high":   [186.0, 188.0, 189.0],
          "low":    [184.0, 185.5, 186.0],
          "close":  [185.5, 187.2, 188.1],
          "volume": [1000000, null, 1200000]
        }],
        "adjclose": [{
          "adjclose": [184.9, null, 187.5]
        }]
      }
    }],
    "error": null
  }
}`

func TestGetDailyHistory(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, "1d", r.URL.Query().Get("interval"))
		require.NotEmpty(t, r.URL.Query().Get("period1"))
		require.NotEmpty(t, r.URL.Query().Get("period2"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chartPayload))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	bars, err := client.GetDailyHistory(context.Background(), "AAPL", start, end)
	require.NoError(t, err)
	require.Equal(t, "/v8/finance/chart/AAPL", gotPath)

	// The third row has a null open and is dropped.
	require.Len(t, bars, 2)

	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].Date)
	require.InDelta(t, 185.0, bars[0].Open, 1e-9)
	require.InDelta(t, 185.5, bars[0].Close, 1e-9)
	require.Equal(t, int64(1000000), bars[0].Volume)
	require.NotNil(t, bars[0].AdjClose)
	require.InDelta(t, 184.9, *bars[0].AdjClose, 1e-9)

	// Second row: volume and adjclose nulls tolerated.
	require.Equal(t, int64(0), bars[1].Volume)
	require.Nil(t, bars[1].AdjClose)
}

func TestGetDailyHistoryEmptyWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":[{"timestamp":[],"indicators":{"quote":[]}}],"error":null}}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	bars, err := client.GetDailyHistory(context.Background(), "AAPL",
		time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Nil(t, bars)
}

func TestGetDailyHistorySymbolNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.GetDailyHistory(context.Background(), "NOPE",
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	require.True(t, errors.Is(err, ErrSymbolNotFound))
}

func TestDoGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(chartPayload))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithMaxRetries(3))
	bars, err := client.GetDailyHistory(context.Background(), "AAPL",
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, bars, 2)
	require.Equal(t, int32(3), calls.Load())
}

func TestDoGetExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithMaxRetries(1))
	_, err := client.GetDailyHistory(context.Background(), "AAPL",
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	require.Contains(t, err.Error(), "http status 503")
}

func TestGetInfo(t *testing.T) {
	const payload = `{
	  "quoteSummary": {
	    "result": [{
	      "price": {
	        "symbol": "AAPL",
	        "longName": "Apple Inc.",
	        "exchangeName": "NasdaqGS",
	        "marketCap": {"raw": 2900000000000},
	        "regularMarketPrice": {"raw": 187.2},
	        "regularMarketPreviousClose": {"raw": 185.5}
	      },
	      "summaryProfile": {
	        "sector": "Technology",
	        "industry": "Consumer Electronics"
	      }
	    }],
	    "error": null
	  }
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v10/finance/quoteSummary/AAPL", r.URL.Path)
		require.Equal(t, "price,summaryProfile", r.URL.Query().Get("modules"))
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	info, err := client.GetInfo(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, "Apple Inc.", info.Name)
	require.Equal(t, "NasdaqGS", info.Exchange)
	require.Equal(t, "Technology", info.Sector)
	require.Equal(t, int64(2900000000000), info.MarketCap)
	require.NotNil(t, info.CurrentPrice)
	require.InDelta(t, 187.2, *info.CurrentPrice, 1e-9)
	require.NotNil(t, info.PreviousClose)
	require.InDelta(t, 185.5, *info.PreviousClose, 1e-9)
}

func TestProviderTimeoutApplied(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	provider := NewProvider("yahoo",
		WithTimeout(50*time.Millisecond),
		WithClientOptions(WithBaseURL(server.URL), WithMaxRetries(0)))

	_, err := provider.FetchDailyHistory(context.Background(), "AAPL",
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	require.True(t, errors.Is(err, context.DeadlineExceeded))
	<-started
}
