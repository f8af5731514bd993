package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyShapes(t *testing.T) {
	require.Equal(t, "stocklens:ticker:info:AAPL", TickerInfoKey("aapl"))
	require.Equal(t, "stocklens:ticker:coverage:MSFT", CoverageKey("msft"))
	require.Equal(t, "stocklens:search:apple:10", SearchKey("Apple", 10))
	require.Equal(t, "stocklens:indicators:catalog", IndicatorCatalogKey())
}

func TestFetchFlightKey(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "AAPL|2024-01-02|2024-02-02|false", FetchFlightKey("aapl", start, end, false))
	require.Equal(t, "AAPL|2024-01-02|2024-02-02|true", FetchFlightKey("AAPL", start, end, true))
}

func TestTTLSetDefaults(t *testing.T) {
	ttl := NewTTLSet(TTLConf{})
	require.Equal(t, 30*time.Second, ttl.Short)
	require.Equal(t, 5*time.Minute, ttl.Medium)
	require.Equal(t, time.Hour, ttl.Long)
	require.Equal(t, ttl.Medium, SearchTTL(ttl))
	require.Equal(t, time.Duration(0), ttl.Duration(TTLClass("bogus")))
}

func TestTTLSetDisabled(t *testing.T) {
	ttl := NewTTLSet(TTLConf{Short: -1, Medium: 120, Long: 60})
	require.Equal(t, time.Duration(0), ttl.Short)
	require.Equal(t, 2*time.Minute, ttl.Medium)
	require.Equal(t, time.Minute, ttl.Long)
}
