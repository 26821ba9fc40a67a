package calculator

import "math"

// TradingDaysPerYear annualizes daily statistics.
const TradingDaysPerYear = 252

// PctReturns computes day-over-day percentage returns. Bars whose previous
// close is zero are skipped.
func PctReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		out = append(out, (closes[i]-closes[i-1])/closes[i-1])
	}
	return out
}

// AnnualizedVolatility is the sample standard deviation of daily returns
// scaled by sqrt(252). Returned as a fraction (0.25 = 25%).
func AnnualizedVolatility(returns []float64) float64 {
	return sampleStd(returns) * math.Sqrt(TradingDaysPerYear)
}

// AnnualizedMeanReturn is the mean daily return scaled by 252, as a fraction.
func AnnualizedMeanReturn(returns []float64) float64 {
	return mean(returns) * TradingDaysPerYear
}

// MaxDrawdown is the largest peak-to-trough decline of the cumulative return
// curve, as a positive fraction.
func MaxDrawdown(returns []float64) float64 {
	cumulative := 1.0
	peak := 1.0
	var maxDD float64
	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		if peak > 0 {
			dd := (peak - cumulative) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// SharpeRatio is annualized mean return over annualized volatility, with no
// risk-free-rate subtraction. Zero when volatility is zero.
func SharpeRatio(returns []float64) float64 {
	vol := AnnualizedVolatility(returns)
	if vol == 0 {
		return 0
	}
	return AnnualizedMeanReturn(returns) / vol
}

// YearRange scans the most recent 252 bars' highs and lows and returns the
// 52-week high and low.
func YearRange(highs, lows []float64) (high, low float64) {
	n := len(highs)
	if n == 0 || len(lows) != n {
		return 0, 0
	}
	start := n - TradingDaysPerYear
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if highs[i] > high {
			high = highs[i]
		}
		if lows[i] < low {
			low = lows[i]
		}
	}
	return high, low
}
