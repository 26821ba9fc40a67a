package calculator

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestSMASeries(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	got := SMASeries(values, 3)
	if len(got) != len(values) {
		t.Fatalf("length = %d, want %d", len(got), len(values))
	}
	if !math.IsNaN(got[0]) || !math.IsNaN(got[1]) {
		t.Errorf("positions before the window fills should be NaN, got %v", got[:2])
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if !almostEqual(got[i+2], w, 1e-9) {
			t.Errorf("sma[%d] = %v, want %v", i+2, got[i+2], w)
		}
	}
}

func TestEMASeriesSeedsFromFirstValue(t *testing.T) {
	values := []float64{10, 11, 12, 13}
	got := EMASeries(values, 3)
	if got[0] != 10 {
		t.Fatalf("ema[0] = %v, want the first observation", got[0])
	}
	// alpha = 2/(3+1) = 0.5
	if !almostEqual(got[1], 10.5, 1e-9) {
		t.Errorf("ema[1] = %v, want 10.5", got[1])
	}
	if !almostEqual(got[2], 11.25, 1e-9) {
		t.Errorf("ema[2] = %v, want 11.25", got[2])
	}
}

func TestRollingStdIsSampleStd(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	got := RollingStd(values, len(values))
	last := got[len(got)-1]
	// sample std of the set is sqrt(32/7)
	want := math.Sqrt(32.0 / 7.0)
	if !almostEqual(last, want, 1e-9) {
		t.Errorf("rolling std = %v, want %v", last, want)
	}
}

func TestRSIBounds(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
	}{
		{"rising", rising(60, 100, 1)},
		{"falling", falling(60, 100, 1)},
		{"flat", flat(60, 100)},
		{"sawtooth", sawtooth(60, 100, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := RSISeries(tt.closes, 14)
			for i, v := range series {
				if math.IsNaN(v) {
					if i >= 14 {
						t.Errorf("rsi[%d] is NaN past the warmup window", i)
					}
					continue
				}
				if v < 0 || v > 100 {
					t.Errorf("rsi[%d] = %v out of [0, 100]", i, v)
				}
			}
		})
	}
}

func TestRSIMonotonicRise(t *testing.T) {
	if got := RSI(rising(60, 100, 1), 14); got != 100 {
		t.Errorf("RSI of strictly rising series = %v, want 100", got)
	}
}

func TestRSIFlatSeriesNeutral(t *testing.T) {
	// no gains and no losses: avg loss is zero, clamps to 100 per the
	// zero-loss rule
	if got := RSI(flat(30, 50), 14); got != 100 {
		t.Errorf("RSI of flat series = %v, want 100", got)
	}
}

func TestRSIShortSeriesFallsBackToNeutral(t *testing.T) {
	if got := RSI([]float64{1, 2, 3}, 14); got != 50 {
		t.Errorf("RSI of short series = %v, want neutral 50", got)
	}
}

func TestMACDHistogramIdentity(t *testing.T) {
	closes := sawtooth(120, 100, 3)
	result := DefaultMACD(closes)
	if len(result.MACD) != len(closes) || len(result.Signal) != len(closes) || len(result.Histogram) != len(closes) {
		t.Fatalf("series lengths differ from input")
	}
	for i := range result.MACD {
		want := result.MACD[i] - result.Signal[i]
		if !almostEqual(result.Histogram[i], want, 1e-9) {
			t.Errorf("histogram[%d] = %v, want macd-signal = %v", i, result.Histogram[i], want)
		}
	}
}

func TestBollingerBandOrdering(t *testing.T) {
	closes := sawtooth(80, 100, 5)
	bands := DefaultBollingerBands(closes)
	for i := range bands.Middle {
		if math.IsNaN(bands.Middle[i]) {
			continue
		}
		if bands.Upper[i] < bands.Middle[i] || bands.Middle[i] < bands.Lower[i] {
			t.Errorf("band ordering violated at %d: %v %v %v",
				i, bands.Lower[i], bands.Middle[i], bands.Upper[i])
		}
	}
}

func TestBollingerCollapsesOnConstantSeries(t *testing.T) {
	bands := DefaultBollingerBands(flat(40, 75))
	last := len(bands.Middle) - 1
	if bands.Upper[last] != bands.Middle[last] || bands.Lower[last] != bands.Middle[last] {
		t.Errorf("constant series should collapse bands to the middle, got %v %v %v",
			bands.Lower[last], bands.Middle[last], bands.Upper[last])
	}
}

func TestMovingAveragesWindows(t *testing.T) {
	closes := rising(130, 10, 0.5)
	mas := MovingAverages(closes)
	for _, w := range MAWindows {
		series, ok := mas[w]
		if !ok {
			t.Fatalf("missing window %d", w)
		}
		if len(series) != len(closes) {
			t.Errorf("window %d: length %d, want %d", w, len(series), len(closes))
		}
	}
}

func TestAnnualizedVolatilityOfFlatSeriesIsZero(t *testing.T) {
	returns := PctReturns(flat(50, 100))
	if got := AnnualizedVolatility(returns); got != 0 {
		t.Errorf("volatility = %v, want 0", got)
	}
	if got := SharpeRatio(returns); got != 0 {
		t.Errorf("sharpe of zero-volatility series = %v, want 0", got)
	}
}

func TestMaxDrawdown(t *testing.T) {
	// 100 -> 110 -> 55: drawdown 50% from the peak
	closes := []float64{100, 110, 55}
	got := MaxDrawdown(PctReturns(closes))
	if !almostEqual(got, 0.5, 1e-9) {
		t.Errorf("max drawdown = %v, want 0.5", got)
	}
}

func TestYearRange(t *testing.T) {
	highs := make([]float64, 300)
	lows := make([]float64, 300)
	for i := range highs {
		highs[i] = 100 + float64(i)
		lows[i] = 50 + float64(i)
	}
	// the spike sits outside the trailing 252 bars and must be ignored
	highs[10] = 10000
	lows[10] = 1
	high, low := YearRange(highs, lows)
	if high != 100+299 {
		t.Errorf("year high = %v, want %v", high, 100.0+299)
	}
	if low != 50+48 {
		t.Errorf("year low = %v, want %v", low, 50.0+48)
	}
}

// helpers

func rising(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func falling(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start - float64(i)*step
	}
	return out
}

func flat(n int, value float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

func sawtooth(n int, base, amplitude float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = base + amplitude
		} else {
			out[i] = base - amplitude
		}
	}
	return out
}
