package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// SeriesColumns splits a bar slice into the column slices the indicator and
// detector functions consume.
func SeriesColumns(bars []OHLCV) (timestamps []int64, closes, highs, lows []float64) {
	timestamps = make([]int64, len(bars))
	closes = make([]float64, len(bars))
	highs = make([]float64, len(bars))
	lows = make([]float64, len(bars))
	for i, b := range bars {
		timestamps[i] = b.Time.Unix()
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
	}
	return timestamps, closes, highs, lows
}
