// Package indicators implements technical indicator transforms over daily
// close-price series.
//
// Every function returns output slices exactly as long as the input, with
// math.NaN() marking warm-up indices where the window has not filled yet.
// Callers that serialize results must map non-finite values to null.
package indicators

import "math"

func nanSeries(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

// SMA produces the simple moving average of the trailing period closes.
func SMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) == 0 {
		return []float64{}
	}
	result := nanSeries(len(prices))
	if len(prices) < period {
		return result
	}
	for i := period - 1; i < len(prices); i++ {
		sum := 0.0
		valid := true
		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(prices[j]) {
				valid = false
				break
			}
			sum += prices[j]
		}
		if valid {
			result[i] = sum / float64(period)
		}
	}
	return result
}

// EMA produces the exponential moving average with the conventional
// 2/(period+1) smoothing factor, seeded by the first full SMA window.
func EMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) == 0 {
		return []float64{}
	}
	result := nanSeries(len(prices))
	if len(prices) < period {
		return result
	}
	multiplier := 2.0 / float64(period+1)

	start := -1
	var seed float64
	for i := period - 1; i < len(prices); i++ {
		windowValid := true
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(prices[j]) {
				windowValid = false
				break
			}
			sum += prices[j]
		}
		if windowValid {
			start = i
			seed = sum / float64(period)
			break
		}
	}
	if start == -1 {
		return result
	}
	result[start] = seed

	for i := start + 1; i < len(prices); i++ {
		if math.IsNaN(prices[i]) {
			result[i] = result[i-1]
			continue
		}
		prev := result[i-1]
		if math.IsNaN(prev) {
			prev = seed
		}
		result[i] = (prices[i]-prev)*multiplier + prev
	}
	return result
}

// MACD returns the MACD line (EMA fast minus EMA slow), its EMA signal
// line, and the histogram (MACD minus signal).
func MACD(prices []float64, fast, slow, signal int) ([]float64, []float64, []float64) {
	if len(prices) == 0 {
		return []float64{}, []float64{}, []float64{}
	}
	emaFast := EMA(prices, fast)
	emaSlow := EMA(prices, slow)

	macd := make([]float64, len(prices))
	for i := range prices {
		if math.IsNaN(emaFast[i]) || math.IsNaN(emaSlow[i]) {
			macd[i] = math.NaN()
		} else {
			macd[i] = emaFast[i] - emaSlow[i]
		}
	}

	signalLine := EMA(macd, signal)
	hist := make([]float64, len(prices))
	for i := range hist {
		if math.IsNaN(macd[i]) || math.IsNaN(signalLine[i]) {
			hist[i] = math.NaN()
		} else {
			hist[i] = macd[i] - signalLine[i]
		}
	}
	return macd, signalLine, hist
}

// BollingerBands returns the upper, middle, and lower bands: middle is the
// SMA, upper/lower sit stdDev population standard deviations away.
func BollingerBands(prices []float64, period int, stdDev float64) ([]float64, []float64, []float64) {
	if period <= 0 || len(prices) == 0 {
		return []float64{}, []float64{}, []float64{}
	}
	middle := SMA(prices, period)
	upper := nanSeries(len(prices))
	lower := nanSeries(len(prices))

	for i := period - 1; i < len(prices); i++ {
		if math.IsNaN(middle[i]) {
			continue
		}
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			diff := prices[j] - middle[i]
			variance += diff * diff
		}
		sigma := math.Sqrt(variance / float64(period))
		upper[i] = middle[i] + stdDev*sigma
		lower[i] = middle[i] - stdDev*sigma
	}
	return upper, middle, lower
}

// RSI computes the Relative Strength Index with Wilder smoothing.
func RSI(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) == 0 {
		return []float64{}
	}
	rsi := nanSeries(len(prices))
	if len(prices) <= period {
		return rsi
	}

	var gainSum, lossSum float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gainSum += change
		} else {
			lossSum -= change
		}
	}

	avgGain := gainSum / float64(period)
	avgLoss := lossSum / float64(period)

	rsi[period] = computeRSI(avgGain, avgLoss)

	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain := math.Max(change, 0)
		loss := math.Max(-change, 0)

		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)

		rsi[i] = computeRSI(avgGain, avgLoss)
	}
	return rsi
}

func computeRSI(avgGain, avgLoss float64) float64 {
	switch {
	case avgLoss == 0 && avgGain == 0:
		return 50.0
	case avgLoss == 0:
		return 100.0
	case avgGain == 0:
		return 0.0
	default:
		rs := avgGain / avgLoss
		return 100.0 - (100.0 / (1.0 + rs))
	}
}
