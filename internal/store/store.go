// Package store is the persistence boundary for tickers and daily bars.
// It carries no business logic: range reads, coverage lookups, and
// idempotent keyed upserts over Postgres via go-zero sqlx.
package store

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

// upsertChunkSize bounds the number of rows per multi-row INSERT so a large
// backfill stays inside the driver's parameter limits.
const upsertChunkSize = 500

// Ticker is one row of the tickers table. Descriptive fields are nullable:
// metadata is fetched best-effort and absence is tolerated.
type Ticker struct {
	ID        int64          `db:"id"`
	Ticker    string         `db:"ticker"`
	Name      sql.NullString `db:"name"`
	Exchange  sql.NullString `db:"exchange"`
	Sector    sql.NullString `db:"sector"`
	Industry  sql.NullString `db:"industry"`
	MarketCap sql.NullInt64  `db:"market_cap"`
	IsActive  bool           `db:"is_active"`
	CreatedAt time.Time      `db:"created_at"`
}

// Bar is one daily OHLCV row, keyed by (ticker_id, day). Prices are stored
// as decimals end-to-end; conversion to float happens only at the indicator
// boundary.
type Bar struct {
	TickerID int64           `db:"ticker_id"`
	Day      time.Time       `db:"day"`
	Open     decimal.Decimal `db:"open"`
	High     decimal.Decimal `db:"high"`
	Low      decimal.Decimal `db:"low"`
	Close    decimal.Decimal `db:"close"`
	AdjClose decimal.Decimal `db:"adj_close"`
	Volume   int64           `db:"volume"`
}

// Store wraps a sqlx connection with typed accessors for the price schema.
type Store struct {
	conn sqlx.SqlConn
}

// New constructs a Store over an open connection.
func New(conn sqlx.SqlConn) *Store {
	return &Store{conn: conn}
}

// Conn exposes the underlying connection for health checks.
func (s *Store) Conn() sqlx.SqlConn { return s.conn }
