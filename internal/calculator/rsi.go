package calculator

import "math"

// RSISeries computes the RSI over rolling simple means of gains and losses.
// The first period positions are NaN. When the rolling average loss is zero
// the RSI clamps to 100 instead of propagating a division by zero.
func RSISeries(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period {
			continue
		}
		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)
		if avgLoss == 0 {
			out[i] = 100.0
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return out
}

// RSI returns the latest RSI value, or 50 (neutral) when the series is too
// short to fill the window.
func RSI(closes []float64, period int) float64 {
	v := Last(RSISeries(closes, period), 50.0)
	if math.IsNaN(v) {
		return 50.0
	}
	return v
}
