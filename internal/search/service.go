// Package search fuzzy-matches free-text queries against a static ticker
// catalogue using edit distance over symbols and name words.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
	gzcache "github.com/zeromicro/go-zero/core/stores/cache"

	cachekeys "stocklens-api/internal/cache"
)

// maxDistance is the largest edit distance still considered a match.
const maxDistance = 5

const (
	defaultLimit = 10
	maxLimit     = 50
)

// Entry is one catalogue row.
type Entry struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// Match is a catalogue entry paired with its query distance. Distance zero
// means an exact, prefix, or substring hit.
type Match struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Distance int    `json:"distance"`
}

// LoadCatalog reads the catalogue from a JSON array file.
func LoadCatalog(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("search: read catalog %s: %w", path, err)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("search: parse catalog %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("search: catalog %s is empty", path)
	}
	return entries, nil
}

// Service ranks catalogue entries against queries. The catalogue is fixed at
// construction; an optional cache stores rendered result sets.
type Service struct {
	entries []Entry
	cache   gzcache.Cache
	ttl     cachekeys.TTLSet
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables result caching with the given TTL policy.
func WithCache(c gzcache.Cache, ttl cachekeys.TTLSet) Option {
	return func(s *Service) {
		s.cache = c
		s.ttl = ttl
	}
}

// NewService builds a search service over the given catalogue.
func NewService(entries []Entry, opts ...Option) *Service {
	s := &Service{entries: entries}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns up to limit catalogue entries matching the query, ordered
// by distance then ticker. An empty query yields no matches.
func (s *Service) Search(ctx context.Context, query string, limit int) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	cacheKey := cachekeys.SearchKey(query, limit)
	if s.cache != nil {
		var cached []Match
		if err := s.cache.GetCtx(ctx, cacheKey, &cached); err == nil {
			return cached
		}
	}

	matches := make([]Match, 0, limit)
	for _, entry := range s.entries {
		distance, ok := scoreEntry(query, entry)
		if !ok {
			continue
		}
		matches = append(matches, Match{Ticker: entry.Ticker, Name: entry.Name, Distance: distance})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Ticker < matches[j].Ticker
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	if s.cache != nil {
		if err := s.cache.SetWithExpireCtx(ctx, cacheKey, matches, cachekeys.SearchTTL(s.ttl)); err != nil {
			logx.WithContext(ctx).Errorw("search cache write failed",
				logx.Field("query", query), logx.Field("error", err.Error()))
		}
	}
	return matches
}

// scoreEntry computes the best distance between the lowercased query and one
// entry. Symbol exact/prefix hits and name substring hits score zero; other
// candidates take the minimum edit distance over the symbol, the full name,
// and each name word, rejected past maxDistance.
func scoreEntry(query string, entry Entry) (int, bool) {
	ticker := strings.ToLower(entry.Ticker)
	if ticker == query || strings.HasPrefix(ticker, query) {
		return 0, true
	}
	best := levenshtein(query, ticker)

	name := strings.ToLower(entry.Name)
	if name == query || strings.Contains(name, query) {
		return 0, true
	}
	if d := levenshtein(query, name); d < best {
		best = d
	}
	for _, word := range strings.Fields(name) {
		if strings.HasPrefix(word, query) {
			return 0, true
		}
		if d := levenshtein(query, word); d < best {
			best = d
		}
	}

	if best > maxDistance {
		return 0, false
	}
	return best, true
}
