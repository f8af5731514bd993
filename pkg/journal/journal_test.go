package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAppendAndReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fetches.msgpack")

	w, err := NewWriter(path)
	require.NoError(t, err)

	require.NoError(t, w.Append(&FetchRecord{
		Provider:   "yahoo",
		Ticker:     "AAPL",
		Start:      "2024-01-02",
		End:        "2024-01-31",
		Bars:       21,
		DurationMs: 120,
		Success:    true,
	}))
	require.NoError(t, w.Append(&FetchRecord{
		Provider:     "yahoo",
		Ticker:       "NOPE",
		Start:        "2024-01-02",
		End:          "2024-01-31",
		Success:      false,
		ErrorMessage: "symbol not found",
	}))
	require.NoError(t, w.Close())

	records, err := ReadAll(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "AAPL", records[0].Ticker)
	require.Equal(t, 21, records[0].Bars)
	require.True(t, records[0].Success)
	require.False(t, records[0].Timestamp.IsZero())
	require.Equal(t, "symbol not found", records[1].ErrorMessage)
}

func TestAppendSetsTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fetches.msgpack")
	w, err := NewWriter(path)
	require.NoError(t, err)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	w.nowFn = func() time.Time { return fixed }

	require.NoError(t, w.Append(&FetchRecord{Ticker: "MSFT"}))
	require.NoError(t, w.Close())

	records, err := ReadAll(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.True(t, records[0].Timestamp.Equal(fixed))
}

func TestAppendNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fetches.msgpack")
	w, err := NewWriter(path)
	require.NoError(t, err)
	defer w.Close()
	require.Error(t, w.Append(nil))
}
