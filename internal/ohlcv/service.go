// Package ohlcv is the sync engine: it decides when stored daily bars
// cover a requested window, fetches the gap from the configured provider,
// and persists the result idempotently before serving reads.
package ohlcv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/logx"
	gzcache "github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/core/syncx"

	cachekeys "stocklens-api/internal/cache"
	"stocklens-api/internal/store"
	"stocklens-api/pkg/journal"
	"stocklens-api/pkg/quotes"
)

// ErrInvalidTicker rejects symbols outside the accepted shape before any
// store or upstream work happens.
var ErrInvalidTicker = errors.New("ohlcv: invalid ticker symbol")

// tickerPattern accepts uppercase symbols like AAPL, BRK.B, or BF-B.
var tickerPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

const defaultMaxInflightFetches = 4

// NormalizeSymbol uppercases and validates a user-supplied ticker symbol.
func NormalizeSymbol(raw string) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(raw))
	if !tickerPattern.MatchString(symbol) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTicker, raw)
	}
	return symbol, nil
}

// SeriesStore is the slice of the persistence layer the sync engine needs.
// *store.Store satisfies it.
type SeriesStore interface {
	GetTicker(ctx context.Context, symbol string) (*store.Ticker, error)
	InsertTicker(ctx context.Context, t *store.Ticker) error
	Coverage(ctx context.Context, tickerID int64) (time.Time, time.Time, bool, error)
	ReadRange(ctx context.Context, tickerID int64, start, end time.Time) ([]store.Bar, error)
	UpsertBars(ctx context.Context, tickerID int64, bars []store.Bar) error
}

// History is a served slice of daily bars for one ticker and period.
type History struct {
	Ticker string
	Period string
	Start  time.Time
	End    time.Time
	Bars   []store.Bar
}

// TickerInfo is the metadata snapshot served for one ticker, merging the
// stored row with a best-effort live quote.
type TickerInfo struct {
	Ticker        string   `json:"ticker"`
	Name          string   `json:"name,omitempty"`
	Exchange      string   `json:"exchange,omitempty"`
	Sector        string   `json:"sector,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	MarketCap     int64    `json:"market_cap,omitempty"`
	CurrentPrice  *float64 `json:"current_price,omitempty"`
	PreviousClose *float64 `json:"previous_close,omitempty"`
	Change        *float64 `json:"change,omitempty"`
	ChangePercent *float64 `json:"change_percent,omitempty"`
}

// Config assembles a Service from its collaborators. Cache and Journal are
// optional; the service degrades to uncached, unjournaled operation.
type Config struct {
	Store              SeriesStore
	Provider           quotes.Provider
	Cache              gzcache.Cache
	TTL                cachekeys.TTLSet
	Journal            *journal.Writer
	MaxInflightFetches int
}

// Service coordinates coverage checks, coalesced upstream fetches, and
// idempotent persistence for daily bars.
type Service struct {
	store    SeriesStore
	provider quotes.Provider
	cache    gzcache.Cache
	ttl      cachekeys.TTLSet
	journal  *journal.Writer
	flight   syncx.SingleFlight
	limit    syncx.Limit
	nowFn    func() time.Time
}

// NewService wires a sync engine over the given store and provider.
func NewService(cfg Config) *Service {
	maxFetches := cfg.MaxInflightFetches
	if maxFetches <= 0 {
		maxFetches = defaultMaxInflightFetches
	}
	return &Service{
		store:    cfg.Store,
		provider: cfg.Provider,
		cache:    cfg.Cache,
		ttl:      cfg.TTL,
		journal:  cfg.Journal,
		flight:   syncx.NewSingleFlight(),
		limit:    syncx.NewLimit(maxFetches),
		nowFn:    time.Now,
	}
}

// GetHistory serves bars for the named period, syncing from upstream first
// when the stored coverage does not contain the window or force is set.
func (s *Service) GetHistory(ctx context.Context, rawSymbol, period string, force bool) (*History, error) {
	symbol, err := NormalizeSymbol(rawSymbol)
	if err != nil {
		return nil, err
	}
	ticker, err := s.getOrCreateTicker(ctx, symbol)
	if err != nil {
		return nil, err
	}

	start, end := ResolveRange(period, s.nowFn())
	if err := s.ensureCoverage(ctx, ticker, start, end, force); err != nil {
		return nil, err
	}

	bars, err := s.store.ReadRange(ctx, ticker.ID, start, end)
	if err != nil {
		return nil, err
	}
	// A window nobody has bars for is still a valid answer: an empty series
	// spanning the requested range.
	hist := &History{Ticker: symbol, Period: period, Start: start, End: end, Bars: bars}
	if len(bars) > 0 {
		hist.Start = bars[0].Day
		hist.End = bars[len(bars)-1].Day
	}
	return hist, nil
}

// GetInfo serves the metadata snapshot for one ticker, preferring the cache
// and overlaying a live quote on the stored row when the provider answers.
func (s *Service) GetInfo(ctx context.Context, rawSymbol string) (*TickerInfo, error) {
	symbol, err := NormalizeSymbol(rawSymbol)
	if err != nil {
		return nil, err
	}

	cacheKey := cachekeys.TickerInfoKey(symbol)
	if s.cache != nil {
		var cached TickerInfo
		if err := s.cache.GetCtx(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	ticker, err := s.getOrCreateTicker(ctx, symbol)
	if err != nil {
		return nil, err
	}
	out := &TickerInfo{
		Ticker:    symbol,
		Name:      ticker.Name.String,
		Exchange:  ticker.Exchange.String,
		Sector:    ticker.Sector.String,
		Industry:  ticker.Industry.String,
		MarketCap: ticker.MarketCap.Int64,
	}

	info, infoErr := s.provider.FetchInfo(ctx, symbol)
	if infoErr != nil {
		logx.WithContext(ctx).Infow("live quote unavailable, serving stored metadata",
			logx.Field("ticker", symbol), logx.Field("error", infoErr.Error()))
	} else if info != nil {
		overlayInfo(out, info)
	}

	if s.cache != nil {
		if err := s.cache.SetWithExpireCtx(ctx, cacheKey, out, cachekeys.InfoTTL(s.ttl)); err != nil {
			logx.WithContext(ctx).Errorw("info cache write failed",
				logx.Field("ticker", symbol), logx.Field("error", err.Error()))
		}
	}
	return out, nil
}

// getOrCreateTicker loads the ticker row, creating it on first sight. The
// metadata fetch is best-effort: an unreachable provider still yields a bare
// row so history sync can proceed.
func (s *Service) getOrCreateTicker(ctx context.Context, symbol string) (*store.Ticker, error) {
	ticker, err := s.store.GetTicker(ctx, symbol)
	if err == nil {
		return ticker, nil
	}
	if !errors.Is(err, sqlx.ErrNotFound) {
		return nil, err
	}

	row := &store.Ticker{Ticker: symbol, IsActive: true}
	info, infoErr := s.provider.FetchInfo(ctx, symbol)
	if infoErr != nil {
		logx.WithContext(ctx).Infow("ticker metadata unavailable at creation",
			logx.Field("ticker", symbol), logx.Field("error", infoErr.Error()))
	} else if info != nil {
		applyInfo(row, info)
	}
	if err := s.store.InsertTicker(ctx, row); err != nil {
		return nil, err
	}
	// Re-read so concurrent creators all observe the winning row and its id.
	return s.store.GetTicker(ctx, symbol)
}

// ensureCoverage fetches and stores the window when the stored min/max days
// do not contain it. Concurrent identical requests share one upstream call.
func (s *Service) ensureCoverage(ctx context.Context, ticker *store.Ticker, start, end time.Time, force bool) error {
	minDay, maxDay, ok, err := s.store.Coverage(ctx, ticker.ID)
	if err != nil {
		return err
	}
	if !force && ok && !start.Before(dateUTC(minDay)) && !end.After(dateUTC(maxDay)) {
		return nil
	}

	key := cachekeys.FetchFlightKey(ticker.Ticker, start, end, force)
	_, err = s.flight.Do(key, func() (interface{}, error) {
		return nil, s.fetchAndStore(ctx, ticker, start, end)
	})
	return err
}

func (s *Service) fetchAndStore(ctx context.Context, ticker *store.Ticker, start, end time.Time) error {
	s.limit.Borrow()
	defer func() { _ = s.limit.Return() }()

	began := time.Now()
	raw, err := s.provider.FetchDailyHistory(ctx, ticker.Ticker, start, end)
	s.journalFetch(ticker.Ticker, start, end, len(raw), time.Since(began), err)
	if err != nil {
		return fmt.Errorf("ohlcv: fetch %s: %w", ticker.Ticker, err)
	}
	if len(raw) == 0 {
		logx.WithContext(ctx).Infow("upstream returned no rows for window",
			logx.Field("ticker", ticker.Ticker),
			logx.Field("start", start.Format("2006-01-02")),
			logx.Field("end", end.Format("2006-01-02")))
		return nil
	}

	bars := normalizeBars(ticker.ID, raw)
	if err := s.store.UpsertBars(ctx, ticker.ID, bars); err != nil {
		return err
	}
	if s.cache != nil {
		window := fmt.Sprintf("%s..%s",
			bars[0].Day.Format("2006-01-02"), bars[len(bars)-1].Day.Format("2006-01-02"))
		if err := s.cache.SetWithExpireCtx(ctx, cachekeys.CoverageKey(ticker.Ticker), window,
			cachekeys.InfoTTL(s.ttl)); err != nil {
			logx.WithContext(ctx).Errorw("coverage cache write failed",
				logx.Field("ticker", ticker.Ticker), logx.Field("error", err.Error()))
		}
	}
	logx.WithContext(ctx).Infow("stored daily bars",
		logx.Field("ticker", ticker.Ticker), logx.Field("bars", len(bars)))
	return nil
}

func (s *Service) journalFetch(symbol string, start, end time.Time, bars int, took time.Duration, fetchErr error) {
	if s.journal == nil {
		return
	}
	rec := &journal.FetchRecord{
		Provider:   s.provider.Name(),
		Ticker:     symbol,
		Start:      start.Format("2006-01-02"),
		End:        end.Format("2006-01-02"),
		Bars:       bars,
		DurationMs: took.Milliseconds(),
		Success:    fetchErr == nil,
	}
	if fetchErr != nil {
		rec.ErrorMessage = fetchErr.Error()
	}
	if err := s.journal.Append(rec); err != nil {
		logx.Errorw("fetch journal append failed",
			logx.Field("ticker", symbol), logx.Field("error", err.Error()))
	}
}

// normalizeBars converts raw upstream rows into store rows. A missing
// adjusted close falls back to the raw close and negative volumes clamp to
// zero.
func normalizeBars(tickerID int64, raw []quotes.RawBar) []store.Bar {
	bars := make([]store.Bar, 0, len(raw))
	for _, r := range raw {
		adj := r.Close
		if r.AdjClose != nil {
			adj = *r.AdjClose
		}
		volume := r.Volume
		if volume < 0 {
			volume = 0
		}
		bars = append(bars, store.Bar{
			TickerID: tickerID,
			Day:      dateUTC(r.Date),
			Open:     decimal.NewFromFloat(r.Open),
			High:     decimal.NewFromFloat(r.High),
			Low:      decimal.NewFromFloat(r.Low),
			Close:    decimal.NewFromFloat(r.Close),
			AdjClose: decimal.NewFromFloat(adj),
			Volume:   volume,
		})
	}
	return bars
}

func applyInfo(row *store.Ticker, info *quotes.Info) {
	setNullString(&row.Name, info.Name)
	setNullString(&row.Exchange, info.Exchange)
	setNullString(&row.Sector, info.Sector)
	setNullString(&row.Industry, info.Industry)
	if info.MarketCap > 0 {
		row.MarketCap.Int64 = info.MarketCap
		row.MarketCap.Valid = true
	}
}

func overlayInfo(out *TickerInfo, info *quotes.Info) {
	if info.Name != "" {
		out.Name = info.Name
	}
	if info.Exchange != "" {
		out.Exchange = info.Exchange
	}
	if info.Sector != "" {
		out.Sector = info.Sector
	}
	if info.Industry != "" {
		out.Industry = info.Industry
	}
	if info.MarketCap > 0 {
		out.MarketCap = info.MarketCap
	}
	out.CurrentPrice = info.CurrentPrice
	out.PreviousClose = info.PreviousClose
	if info.CurrentPrice != nil && info.PreviousClose != nil && *info.PreviousClose != 0 {
		change := *info.CurrentPrice - *info.PreviousClose
		pct := change / *info.PreviousClose * 100
		out.Change = &change
		out.ChangePercent = &pct
	}
}

func setNullString(dst *sql.NullString, value string) {
	if value == "" {
		return
	}
	dst.String = value
	dst.Valid = true
}
