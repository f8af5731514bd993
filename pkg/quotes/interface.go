// Package quotes defines the contract for external daily price-history
// sources and the registry that builds configured providers.
package quotes

import (
	"context"
	"errors"
	"time"
)

// ErrUpstreamUnavailable indicates the external source could not be reached
// or answered with a transport-level failure. An empty history is not an
// error; it is reported as a nil slice with a nil error.
var ErrUpstreamUnavailable = errors.New("quotes: upstream unavailable")

// ErrSymbolNotFound indicates the source does not know the requested symbol.
var ErrSymbolNotFound = errors.New("quotes: symbol not found")

// RawBar is one daily OHLCV record as returned by an upstream source,
// before normalization. Date carries the calendar day at UTC midnight.
type RawBar struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose *float64 // nil when the source omits an adjusted close
	Volume   int64
}

// Info is best-effort descriptive metadata for a ticker. Any field may be
// zero when the source does not know it.
type Info struct {
	Symbol        string
	Name          string
	Exchange      string
	Sector        string
	Industry      string
	MarketCap     int64
	CurrentPrice  *float64
	PreviousClose *float64
}

// Provider is an external daily price-history source.
type Provider interface {
	// Name identifies the provider instance (config key).
	Name() string

	// FetchDailyHistory returns raw daily bars covering [start, end], both
	// inclusive. A window with no trading data yields (nil, nil).
	FetchDailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]RawBar, error)

	// FetchInfo returns descriptive metadata for the symbol. Partial data is
	// acceptable; callers must tolerate absent fields.
	FetchInfo(ctx context.Context, symbol string) (*Info, error)
}
