package indicators

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testSeries(n int) Series {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := Series{
		Timestamps: make([]time.Time, n),
		Closes:     make([]float64, n),
	}
	for i := 0; i < n; i++ {
		s.Timestamps[i] = start.AddDate(0, 0, i)
		s.Closes[i] = 100 + float64(i)
	}
	return s
}

func TestCalculateUnknownIndicator(t *testing.T) {
	calc := NewCalculator(NewDefaultRegistry())
	_, err := calc.Calculate(testSeries(30), "vwap", nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownIndicator))
}

func TestCalculateDefaultsAndAlignment(t *testing.T) {
	calc := NewCalculator(NewDefaultRegistry())
	series := testSeries(30)

	result, err := calc.Calculate(series, "sma", nil)
	require.NoError(t, err)
	require.Equal(t, "sma", result.Indicator)
	require.Equal(t, OutputOverlay, result.OutputType)

	points := result.Data["sma"]
	require.Len(t, points, len(series.Closes))

	// Default period is 20: the first 19 samples are warm-up nulls.
	for i := 0; i < 19; i++ {
		require.Nil(t, points[i].Value, "index %d", i)
	}
	for i := 19; i < len(points); i++ {
		require.NotNil(t, points[i].Value, "index %d", i)
	}
	require.Equal(t, series.Timestamps[0], points[0].Time)
	require.Equal(t, series.Timestamps[len(points)-1], points[len(points)-1].Time)
}

func TestCalculateParamOverride(t *testing.T) {
	calc := NewCalculator(NewDefaultRegistry())
	series := testSeries(10)

	result, err := calc.Calculate(series, "sma", map[string]float64{"period": 3})
	require.NoError(t, err)

	points := result.Data["sma"]
	require.Nil(t, points[0].Value)
	require.Nil(t, points[1].Value)
	require.NotNil(t, points[2].Value)
	require.InDelta(t, 101.0, *points[2].Value, 1e-9)
}

func TestCalculateMACDChannels(t *testing.T) {
	calc := NewCalculator(NewDefaultRegistry())
	series := testSeries(60)

	result, err := calc.Calculate(series, "macd", nil)
	require.NoError(t, err)
	require.Equal(t, OutputSeparate, result.OutputType)
	require.Len(t, result.Data, 3)
	for _, channel := range []string{"macd", "signal", "histogram"} {
		require.Len(t, result.Data[channel], 60, "channel %s", channel)
	}
}

func TestCalculateBatch(t *testing.T) {
	calc := NewCalculator(NewDefaultRegistry())
	series := testSeries(30)

	items := calc.CalculateBatch(series, []Request{
		{Name: "sma", Params: map[string]float64{"period": 5}},
		{Name: "nope"},
		{Name: "bbands"},
	})
	require.Len(t, items, 3)
	require.NoError(t, items[0].Err)
	require.NotNil(t, items[0].Result)
	require.True(t, errors.Is(items[1].Err, ErrUnknownIndicator))
	require.Nil(t, items[1].Result)
	require.NoError(t, items[2].Err)
	require.Len(t, items[2].Result.Data, 3)
}

func TestRegistryLookup(t *testing.T) {
	registry := NewDefaultRegistry()

	def, ok := registry.Get("MACD")
	require.True(t, ok)
	require.Equal(t, "macd", def.Name)

	_, ok = registry.Get("missing")
	require.False(t, ok)

	all := registry.ListAll()
	require.Len(t, all, 5)

	trend := registry.ListByCategory(CategoryTrend)
	require.Len(t, trend, 2)
	require.Equal(t, "ema", trend[0].Name)
	require.Equal(t, "sma", trend[1].Name)

	require.Empty(t, registry.ListByCategory(CategoryVolume))
}

func TestRegisterReplaces(t *testing.T) {
	registry := NewDefaultRegistry()
	registry.Register(Definition{
		Name:        "sma",
		DisplayName: "Replacement",
		Category:    CategoryTrend,
		OutputType:  OutputOverlay,
		OutputNames: []string{"sma"},
		Transform:   smaTransform{},
	})
	def, ok := registry.Get("sma")
	require.True(t, ok)
	require.Equal(t, "Replacement", def.DisplayName)
	require.Len(t, registry.ListAll(), 5)
}
