package ohlcv

import "time"

// maxFloor is the fixed deep-past start used for the "max" period. True
// "all available history" is not distinguished from this floor; a known
// approximation carried over from the original period mapping.
var maxFloor = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// periodLookbackDays maps named periods to a fixed lookback from today.
var periodLookbackDays = map[string]int{
	"1d":  1,
	"5d":  5,
	"1mo": 30,
	"3mo": 90,
	"6mo": 180,
	"1y":  365,
	"2y":  730,
	"5y":  1825,
	"10y": 3650,
}

// ResolveRange maps a named period onto the inclusive [start, end] date
// range ending today. "ytd" starts at January 1 of the current year and
// "max" at the fixed floor. Unrecognized periods fall back to the 1y
// lookback instead of failing.
func ResolveRange(period string, today time.Time) (time.Time, time.Time) {
	end := dateUTC(today)
	switch period {
	case "max":
		return maxFloor, end
	case "ytd":
		return time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), end
	}
	days, ok := periodLookbackDays[period]
	if !ok {
		days = periodLookbackDays["1y"]
	}
	return end.AddDate(0, 0, -days), end
}

// dateUTC truncates t to its calendar date at UTC midnight.
func dateUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
