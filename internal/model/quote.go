package model

import "time"

// MarketQuote is the latest price snapshot for a symbol.
type MarketQuote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Current       float64   `json:"current"`
	Change        float64   `json:"change"`
	Percent       float64   `json:"percent"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Open          float64   `json:"open"`
	PreviousClose float64   `json:"previous_close"`
	Timestamp     time.Time `json:"timestamp"`
}

// CandleSeries is the parallel-slice wire form of a bar series.
type CandleSeries struct {
	Timestamps []int64   `json:"timestamps"`
	Opens      []float64 `json:"opens"`
	Highs      []float64 `json:"highs"`
	Lows       []float64 `json:"lows"`
	Closes     []float64 `json:"closes"`
	Volumes    []float64 `json:"volumes"`
}

// CandleResponse wraps a candle series for the HTTP API.
type CandleResponse struct {
	Symbol     string       `json:"symbol"`
	Resolution string       `json:"resolution"`
	Data       CandleSeries `json:"data"`
}

// CandlesFromBars converts a bar slice into the parallel-slice wire form.
func CandlesFromBars(symbol, resolution string, bars []OHLCV) CandleResponse {
	data := CandleSeries{
		Timestamps: make([]int64, len(bars)),
		Opens:      make([]float64, len(bars)),
		Highs:      make([]float64, len(bars)),
		Lows:       make([]float64, len(bars)),
		Closes:     make([]float64, len(bars)),
		Volumes:    make([]float64, len(bars)),
	}
	for i, b := range bars {
		data.Timestamps[i] = b.Time.Unix()
		data.Opens[i] = b.Open
		data.Highs[i] = b.High
		data.Lows[i] = b.Low
		data.Closes[i] = b.Close
		data.Volumes[i] = b.Volume
	}
	return CandleResponse{Symbol: symbol, Resolution: resolution, Data: data}
}
