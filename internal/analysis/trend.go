package analysis

import (
	"TradeScope/internal/model"
)

const trendWindow = 20

// DetectTrendLines fits an ordinary least squares line through the closes of
// the trailing window and classifies the slope direction. It returns at most
// one trend line; fewer than two full windows of history yields none.
func DetectTrendLines(timestamps []int64, closes []float64) []model.TrendLine {
	n := len(closes)
	if n < 2*trendWindow || len(timestamps) != n {
		return nil
	}

	window := closes[n-trendWindow:]
	slope := olsSlope(window)

	kind := model.TrendSideways
	switch {
	case slope > 0:
		kind = model.TrendUp
	case slope < 0:
		kind = model.TrendDown
	}

	return []model.TrendLine{{
		StartPrice: window[0],
		EndPrice:   window[len(window)-1],
		StartTime:  timestamps[n-trendWindow],
		EndTime:    timestamps[n-1],
		Kind:       kind,
	}}
}

// olsSlope returns the least squares slope of values regressed on their
// index 0..n-1. Zero when fewer than two points.
func olsSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}
