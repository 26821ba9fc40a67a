package calculator

// MACDResult holds the MACD line, signal line and histogram series.
type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes MACD with the given fast/slow/signal spans. The histogram is
// exactly MACD minus Signal at every position.
func MACD(closes []float64, fast, slow, signal int) MACDResult {
	macd := make([]float64, len(closes))
	emaFast := EMASeries(closes, fast)
	emaSlow := EMASeries(closes, slow)
	for i := range closes {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	sig := EMASeries(macd, signal)
	hist := make([]float64, len(closes))
	for i := range closes {
		hist[i] = macd[i] - sig[i]
	}
	return MACDResult{MACD: macd, Signal: sig, Histogram: hist}
}

// DefaultMACD computes MACD(12, 26, 9).
func DefaultMACD(closes []float64) MACDResult {
	return MACD(closes, 12, 26, 9)
}

// LastMACD returns the latest MACD, signal and histogram values, all zero for
// an empty series.
func (r MACDResult) LastMACD() (macd, signal, histogram float64) {
	n := len(r.MACD)
	if n == 0 {
		return 0, 0, 0
	}
	return r.MACD[n-1], r.Signal[n-1], r.Histogram[n-1]
}
