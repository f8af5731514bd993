package store

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

const tickerColumns = "id, ticker, name, exchange, sector, industry, market_cap, is_active, created_at"

// GetTicker loads a ticker row by its uppercase symbol. Returns
// sqlx.ErrNotFound when the symbol is unknown.
func (s *Store) GetTicker(ctx context.Context, symbol string) (*Ticker, error) {
	query := fmt.Sprintf("SELECT %s FROM tickers WHERE ticker = $1", tickerColumns)
	var row Ticker
	if err := s.conn.QueryRowCtx(ctx, &row, query, symbol); err != nil {
		if err == sqlx.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("store: get ticker %s: %w", symbol, err)
	}
	return &row, nil
}

// InsertTicker creates the ticker row if it does not exist yet. Concurrent
// creators are harmless: the conflict is silently ignored and the caller
// re-reads the winning row.
func (s *Store) InsertTicker(ctx context.Context, t *Ticker) error {
	const stmt = `
INSERT INTO tickers (ticker, name, exchange, sector, industry, market_cap, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
ON CONFLICT (ticker) DO NOTHING`
	if _, err := s.conn.ExecCtx(ctx, stmt,
		t.Ticker, t.Name, t.Exchange, t.Sector, t.Industry, t.MarketCap, t.IsActive,
	); err != nil {
		return fmt.Errorf("store: insert ticker %s: %w", t.Ticker, err)
	}
	return nil
}
