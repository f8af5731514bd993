// Package cache centralises Redis key construction and TTL policy so that
// the API server and the sync CLI agree on naming.
package cache

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Namespace is the Redis key prefix for the stocklens application.
const Namespace = "stocklens"

// TTLClass represents a config-driven TTL bucket.
type TTLClass string

const (
	TTLShort  TTLClass = "short"
	TTLMedium TTLClass = "medium"
	TTLLong   TTLClass = "long"
)

// TTLConf carries cache durations in seconds, as loaded from config.
type TTLConf struct {
	Short  int `json:",default=30"`
	Medium int `json:",default=300"`
	Long   int `json:",default=3600"`
}

// TTLSet normalises cache TTLs from config into time.Duration values.
type TTLSet struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg TTLConf) TTLSet {
	return TTLSet{
		Short:  durationOrDefault(cfg.Short, 30*time.Second),
		Medium: durationOrDefault(cfg.Medium, 5*time.Minute),
		Long:   durationOrDefault(cfg.Long, time.Hour),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// Duration returns the configured duration for the given TTL class.
func (t TTLSet) Duration(class TTLClass) time.Duration {
	switch class {
	case TTLShort:
		return t.Short
	case TTLMedium:
		return t.Medium
	case TTLLong:
		return t.Long
	default:
		return 0
	}
}

// InfoTTL is the lifetime of cached ticker metadata snapshots.
func InfoTTL(t TTLSet) time.Duration { return t.Duration(TTLShort) }

// SearchTTL is the lifetime of cached search responses.
func SearchTTL(t TTLSet) time.Duration { return t.Duration(TTLMedium) }

// CatalogTTL is the lifetime of the cached indicator catalogue payload.
func CatalogTTL(t TTLSet) time.Duration { return t.Duration(TTLLong) }

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// --- Ticker Keys ------------------------------------------------------------

// TickerInfoKey stores the live metadata snapshot for one ticker.
func TickerInfoKey(symbol string) string {
	return formatKey("ticker", "info", strings.ToUpper(symbol))
}

// CoverageKey stores the last known coverage window for one ticker.
func CoverageKey(symbol string) string {
	return formatKey("ticker", "coverage", strings.ToUpper(symbol))
}

// --- Search Keys ------------------------------------------------------------

// SearchKey stores a rendered search response for one query/limit pair.
func SearchKey(query string, limit int) string {
	return formatKey("search", strings.ToLower(query), strconv.Itoa(limit))
}

// --- Catalogue Keys ---------------------------------------------------------

// IndicatorCatalogKey stores the rendered indicator catalogue.
func IndicatorCatalogKey() string {
	return formatKey("indicators", "catalog")
}

// FetchFlightKey names the singleflight slot for one coalesced upstream
// fetch. Not a Redis key, but kept here so key shapes live in one place.
func FetchFlightKey(symbol string, start, end time.Time, force bool) string {
	return fmt.Sprintf("%s|%s|%s|%t", strings.ToUpper(symbol),
		start.Format("2006-01-02"), end.Format("2006-01-02"), force)
}
