package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

const barColumns = "ticker_id, day, open, high, low, close, adj_close, volume"

// HasBar reports whether a bar exists for the ticker on the given day.
func (s *Store) HasBar(ctx context.Context, tickerID int64, day time.Time) (bool, error) {
	const query = "SELECT COUNT(1) FROM ohlcv_daily WHERE ticker_id = $1 AND day = $2"
	var count int64
	if err := s.conn.QueryRowCtx(ctx, &count, query, tickerID, day); err != nil {
		return false, fmt.Errorf("store: has bar: %w", err)
	}
	return count > 0, nil
}

// ReadRange returns all bars for the ticker within [start, end], ascending
// by day.
func (s *Store) ReadRange(ctx context.Context, tickerID int64, start, end time.Time) ([]Bar, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM ohlcv_daily WHERE ticker_id = $1 AND day >= $2 AND day <= $3 ORDER BY day ASC",
		barColumns)
	var rows []Bar
	if err := s.conn.QueryRowsCtx(ctx, &rows, query, tickerID, start, end); err != nil {
		return nil, fmt.Errorf("store: read range: %w", err)
	}
	return rows, nil
}

type coverageRow struct {
	MinDay sql.NullTime `db:"min_day"`
	MaxDay sql.NullTime `db:"max_day"`
}

// Coverage returns the min/max day currently stored for the ticker. The
// third return is false when no bars exist at all. The window is derived on
// demand and never persisted.
func (s *Store) Coverage(ctx context.Context, tickerID int64) (time.Time, time.Time, bool, error) {
	const query = "SELECT MIN(day) AS min_day, MAX(day) AS max_day FROM ohlcv_daily WHERE ticker_id = $1"
	var row coverageRow
	if err := s.conn.QueryRowCtx(ctx, &row, query, tickerID); err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("store: coverage: %w", err)
	}
	if !row.MinDay.Valid || !row.MaxDay.Valid {
		return time.Time{}, time.Time{}, false, nil
	}
	return row.MinDay.Time, row.MaxDay.Time, true, nil
}

// UpsertBars writes-or-replaces bars keyed by (ticker_id, day). The batch is
// split into chunks to stay under parameter limits, but all chunks run in a
// single transaction: a failing chunk rolls the whole batch back. Safe to
// call repeatedly with overlapping batches.
func (s *Store) UpsertBars(ctx context.Context, tickerID int64, bars []Bar) error {
	if len(bars) == 0 {
		return nil
	}
	err := s.conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		for start := 0; start < len(bars); start += upsertChunkSize {
			endIdx := start + upsertChunkSize
			if endIdx > len(bars) {
				endIdx = len(bars)
			}
			if err := upsertChunk(ctx, session, tickerID, bars[start:endIdx]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store: upsert %d bars: %w", len(bars), err)
	}
	return nil
}

func upsertChunk(ctx context.Context, session sqlx.Session, tickerID int64, chunk []Bar) error {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ohlcv_daily (")
	sb.WriteString(barColumns)
	sb.WriteString(") VALUES ")

	args := make([]interface{}, 0, len(chunk)*8)
	for i, bar := range chunk {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 8
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8)
		args = append(args, tickerID, bar.Day, bar.Open, bar.High, bar.Low, bar.Close, bar.AdjClose, bar.Volume)
	}

	sb.WriteString(`
ON CONFLICT (ticker_id, day) DO UPDATE SET
    open = EXCLUDED.open,
    high = EXCLUDED.high,
    low = EXCLUDED.low,
    close = EXCLUDED.close,
    adj_close = EXCLUDED.adj_close,
    volume = EXCLUDED.volume`)

	_, err := session.ExecCtx(ctx, sb.String(), args...)
	return err
}
