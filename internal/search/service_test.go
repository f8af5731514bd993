package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"aple", "apple", 1},
		{"msft", "msfy", 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, levenshtein(tc.a, tc.b), "%s vs %s", tc.a, tc.b)
	}
}

var testCatalog = []Entry{
	{Ticker: "AAPL", Name: "Apple Inc."},
	{Ticker: "MSFT", Name: "Microsoft Corporation"},
	{Ticker: "GOOGL", Name: "Alphabet Inc."},
	{Ticker: "AMZN", Name: "Amazon.com Inc."},
	{Ticker: "META", Name: "Meta Platforms Inc."},
	{Ticker: "AMD", Name: "Advanced Micro Devices Inc."},
	{Ticker: "A", Name: "Agilent Technologies Inc."},
}

func TestSearchExactTickerScoresZero(t *testing.T) {
	s := NewService(testCatalog)
	matches := s.Search(context.Background(), "AAPL", 10)
	require.NotEmpty(t, matches)
	assert.Equal(t, "AAPL", matches[0].Ticker)
	assert.Equal(t, 0, matches[0].Distance)
}

func TestSearchMisspelledCompanyName(t *testing.T) {
	s := NewService(testCatalog)
	matches := s.Search(context.Background(), "aple", 10)
	require.NotEmpty(t, matches)
	tickers := make([]string, 0, len(matches))
	for _, m := range matches {
		tickers = append(tickers, m.Ticker)
	}
	assert.Contains(t, tickers, "AAPL")
}

func TestSearchNameSubstringScoresZero(t *testing.T) {
	s := NewService(testCatalog)
	matches := s.Search(context.Background(), "micro", 10)
	require.NotEmpty(t, matches)
	var msft *Match
	for i := range matches {
		if matches[i].Ticker == "MSFT" {
			msft = &matches[i]
		}
	}
	require.NotNil(t, msft)
	assert.Equal(t, 0, msft.Distance)
}

func TestSearchFullNameDistance(t *testing.T) {
	// "appleinc" spans the word boundary in "Apple Inc.": the whole name is
	// two edits away while the best single word is three.
	s := NewService(testCatalog)
	matches := s.Search(context.Background(), "appleinc", 10)
	require.NotEmpty(t, matches)
	assert.Equal(t, "AAPL", matches[0].Ticker)
	assert.Equal(t, 2, matches[0].Distance)
}

func TestSearchOrdersByDistanceThenTicker(t *testing.T) {
	s := NewService(testCatalog)
	matches := s.Search(context.Background(), "am", 10)
	require.NotEmpty(t, matches)
	for i := 1; i < len(matches); i++ {
		if matches[i-1].Distance == matches[i].Distance {
			assert.Less(t, matches[i-1].Ticker, matches[i].Ticker)
		} else {
			assert.Less(t, matches[i-1].Distance, matches[i].Distance)
		}
	}
}

func TestSearchRespectsLimit(t *testing.T) {
	s := NewService(testCatalog)
	matches := s.Search(context.Background(), "a", 2)
	assert.Len(t, matches, 2)
}

func TestSearchEmptyQuery(t *testing.T) {
	s := NewService(testCatalog)
	assert.Nil(t, s.Search(context.Background(), "  ", 10))
}

func TestSearchRejectsDistantQueries(t *testing.T) {
	s := NewService(testCatalog)
	assert.Empty(t, s.Search(context.Background(), "zzzzzzzzzzzz", 10))
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`[{"ticker":"AAPL","name":"Apple Inc."},{"ticker":"MSFT","name":"Microsoft Corporation"}]`), 0o644))

	entries, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "AAPL", entries[0].Ticker)
}

func TestLoadCatalogErrors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`[]`), 0o644))
	_, err = LoadCatalog(empty)
	assert.Error(t, err)
}
