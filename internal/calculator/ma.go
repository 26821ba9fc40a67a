package calculator

// MAWindows are the moving-average windows the dashboard displays.
var MAWindows = []int{5, 20, 60, 120}

// MovingAverages computes the standard SMA set keyed by window size.
func MovingAverages(closes []float64) map[int][]float64 {
	out := make(map[int][]float64, len(MAWindows))
	for _, w := range MAWindows {
		out[w] = SMASeries(closes, w)
	}
	return out
}

// SMA returns the latest simple moving average over the trailing window, or 0
// when the series is shorter than the window.
func SMA(values []float64, window int) float64 {
	if window <= 0 || len(values) < window {
		return 0
	}
	var sum float64
	for i := len(values) - window; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(window)
}
