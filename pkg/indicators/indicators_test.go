package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	result := SMA(data, 3)
	require.Len(t, result, len(data))
	require.True(t, math.IsNaN(result[0]))
	require.True(t, math.IsNaN(result[1]))
	require.InDelta(t, 2.0, result[2], 1e-9)
	require.InDelta(t, 3.0, result[3], 1e-9)
	require.InDelta(t, 4.0, result[4], 1e-9)
	require.InDelta(t, 5.0, result[5], 1e-9)
}

func TestSMAShortInput(t *testing.T) {
	result := SMA([]float64{1, 2}, 5)
	require.Len(t, result, 2)
	for _, v := range result {
		require.True(t, math.IsNaN(v))
	}
}

func TestEMA(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	result := EMA(data, 3)
	require.Len(t, result, len(data))
	require.True(t, math.IsNaN(result[0]))
	require.True(t, math.IsNaN(result[1]))
	require.InDelta(t, 2.0, result[2], 1e-9)
	require.InDelta(t, 3.0, result[3], 1e-9)
	require.InDelta(t, 4.0, result[4], 1e-9)
	require.InDelta(t, 5.0, result[5], 1e-9)
}

var trendingCloses = []float64{100, 101, 102, 103, 105, 107, 106, 108, 110, 111, 112, 115, 117, 119, 118, 120, 121, 123, 125, 124, 126, 127, 129, 130, 132, 133, 134, 135, 136, 138, 139, 141, 140, 142, 144, 143, 145, 147, 149, 148, 150, 151, 149, 148, 150, 152, 151, 153, 154, 156, 155, 157, 158, 160, 161, 159, 158, 157, 159, 160}

func TestMACD(t *testing.T) {
	macd, signal, hist := MACD(trendingCloses, 12, 26, 9)
	require.Len(t, macd, len(trendingCloses))
	require.Len(t, signal, len(trendingCloses))
	require.Len(t, hist, len(trendingCloses))

	// MACD line is undefined until the slow EMA fills.
	for i := 0; i < 25; i++ {
		require.True(t, math.IsNaN(macd[i]), "index %d", i)
	}

	last := len(trendingCloses) - 1
	require.InDelta(t, 5.582947, macd[last], 1e-6)
	require.InDelta(t, 6.307087, signal[last], 1e-6)
	require.InDelta(t, -0.724141, hist[last], 1e-6)
}

func TestRSI(t *testing.T) {
	rsi := RSI(trendingCloses, 14)
	require.Len(t, rsi, len(trendingCloses))
	for i := 0; i < 14; i++ {
		require.True(t, math.IsNaN(rsi[i]), "index %d", i)
	}
	require.InDelta(t, 73.084185, rsi[len(rsi)-1], 1e-6)
}

func TestBollingerBands(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	upper, middle, lower := BollingerBands(data, 3, 2.0)
	require.Len(t, upper, len(data))
	require.Len(t, middle, len(data))
	require.Len(t, lower, len(data))

	require.True(t, math.IsNaN(upper[0]))
	require.True(t, math.IsNaN(upper[1]))

	// Population sigma of {1,2,3} is sqrt(2/3).
	sigma := math.Sqrt(2.0 / 3.0)
	require.InDelta(t, 2.0, middle[2], 1e-9)
	require.InDelta(t, 2.0+2.0*sigma, upper[2], 1e-9)
	require.InDelta(t, 2.0-2.0*sigma, lower[2], 1e-9)
	require.InDelta(t, 4.0, middle[4], 1e-9)
}

func TestEmptyInputs(t *testing.T) {
	require.Empty(t, SMA(nil, 10))
	require.Empty(t, EMA(nil, 10))
	require.Empty(t, RSI(nil, 10))
	macd, signal, hist := MACD(nil, 12, 26, 9)
	require.Empty(t, macd)
	require.Empty(t, signal)
	require.Empty(t, hist)
}
