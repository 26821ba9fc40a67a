package calculator

// BollingerResult holds the three Bollinger band series.
type BollingerResult struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// BollingerBands computes the middle SMA band and upper/lower bands at
// k standard deviations. Positions before the window fills are NaN; a
// zero-variance window collapses both bands onto the middle.
func BollingerBands(closes []float64, period int, k float64) BollingerResult {
	middle := SMASeries(closes, period)
	std := RollingStd(closes, period)
	upper := nanSlice(len(closes))
	lower := nanSlice(len(closes))
	for i := period - 1; i >= 0 && i < len(closes); i++ {
		upper[i] = middle[i] + k*std[i]
		lower[i] = middle[i] - k*std[i]
	}
	return BollingerResult{Upper: upper, Middle: middle, Lower: lower}
}

// DefaultBollingerBands computes Bollinger(20, 2).
func DefaultBollingerBands(closes []float64) BollingerResult {
	return BollingerBands(closes, 20, 2.0)
}
